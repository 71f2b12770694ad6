package orderrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

type OrderDTO struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TrackingNumber    string         `gorm:"size:32;uniqueIndex;not null"`
	CustomerID        uuid.UUID      `gorm:"type:uuid;not null;index"`
	AddressID         uuid.UUID      `gorm:"type:uuid;not null"`
	VoucherID         *uuid.UUID     `gorm:"type:uuid;index"`
	VoucherCode       string         `gorm:"size:64"`
	SubtotalAmount    int64          `gorm:"not null"`
	ShippingFee       int64          `gorm:"not null"`
	DiscountAmount    int64          `gorm:"not null"`
	FinalAmount       int64          `gorm:"not null;check:final_amount >= 0"`
	PaymentMethod     string         `gorm:"size:24;not null"`
	PaymentStatus     string         `gorm:"size:16;not null;index"`
	OrderStatus       string         `gorm:"size:16;not null;index"`
	ReturnStatus      string         `gorm:"size:16"`
	Note              string         `gorm:"type:text"`
	CreatedAt         time.Time      `gorm:"not null;index"`
	CompletedAt       *time.Time
	PaymentRef        string         `gorm:"size:64"`
	ReturnReason      string         `gorm:"size:32"`
	ReturnEvidence    string         `gorm:"type:text"`
	ReturnRequestedAt *time.Time
	Lines             []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type OrderLineDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Position       int       `gorm:"not null"`
	UnitID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity       int       `gorm:"not null;check:quantity > 0"`
	UnitPrice      int64     `gorm:"not null"`
	Subtotal       int64     `gorm:"not null"`
	ReturnQuantity int       `gorm:"not null;default:0"`
}

func (OrderLineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(o *order.Order) (OrderDTO, error) {
	s := o.Snapshot()

	var voucherID *uuid.UUID
	if s.VoucherID != nil {
		raw := s.VoucherID.Value()
		voucherID = &raw
	}

	var evidence string
	if len(s.ReturnEvidence) > 0 {
		raw, err := json.Marshal(s.ReturnEvidence)
		if err != nil {
			return OrderDTO{}, err
		}
		evidence = string(raw)
	}

	lines := make([]OrderLineDTO, 0, len(s.Lines))
	for i, l := range s.Lines {
		lines = append(lines, OrderLineDTO{
			ID:             l.ID().Value(),
			OrderID:        s.ID.Value(),
			Position:       i,
			UnitID:         l.UnitID().Value(),
			Quantity:       l.Quantity(),
			UnitPrice:      int64(l.UnitPrice()),
			Subtotal:       int64(l.Subtotal()),
			ReturnQuantity: l.ReturnQuantity(),
		})
	}

	return OrderDTO{
		ID:                s.ID.Value(),
		TrackingNumber:    s.TrackingNumber,
		CustomerID:        s.CustomerID.Value(),
		AddressID:         s.AddressID.Value(),
		VoucherID:         voucherID,
		VoucherCode:       s.VoucherCode,
		SubtotalAmount:    int64(s.Subtotal),
		ShippingFee:       int64(s.ShippingFee),
		DiscountAmount:    int64(s.Discount),
		FinalAmount:       int64(s.Final),
		PaymentMethod:     s.PaymentMethod.String(),
		PaymentStatus:     s.PaymentStatus.String(),
		OrderStatus:       s.Status.String(),
		ReturnStatus:      s.ReturnStatus.Persisted(),
		Note:              s.Note,
		CreatedAt:         s.CreatedAt.UTC(),
		CompletedAt:       s.CompletedAt,
		PaymentRef:        s.PaymentRef,
		ReturnReason:      string(s.ReturnReason),
		ReturnEvidence:    evidence,
		ReturnRequestedAt: s.ReturnRequestedAt,
		Lines:             lines,
	}, nil
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	method, err := order.ParsePaymentMethod(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.OrderStatus)
	if err != nil {
		return nil, err
	}
	returnStatus, err := order.ParseReturnStatus(dto.ReturnStatus)
	if err != nil {
		return nil, err
	}

	var evidence []string
	if dto.ReturnEvidence != "" {
		if err = json.Unmarshal([]byte(dto.ReturnEvidence), &evidence); err != nil {
			return nil, err
		}
	}

	var voucherID *kernel.UUID
	if dto.VoucherID != nil {
		id := kernel.UUIDFrom(*dto.VoucherID)
		voucherID = &id
	}

	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		line, lineErr := order.RestoreLine(
			kernel.UUIDFrom(l.ID),
			kernel.UUIDFrom(l.UnitID),
			l.Quantity,
			kernel.Money(l.UnitPrice),
			l.ReturnQuantity,
		)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                kernel.UUIDFrom(dto.ID),
		TrackingNumber:    dto.TrackingNumber,
		CustomerID:        kernel.UUIDFrom(dto.CustomerID),
		AddressID:         kernel.UUIDFrom(dto.AddressID),
		VoucherID:         voucherID,
		VoucherCode:       dto.VoucherCode,
		Subtotal:          kernel.Money(dto.SubtotalAmount),
		ShippingFee:       kernel.Money(dto.ShippingFee),
		Discount:          kernel.Money(dto.DiscountAmount),
		Final:             kernel.Money(dto.FinalAmount),
		PaymentMethod:     method,
		PaymentStatus:     paymentStatus,
		Status:            status,
		ReturnStatus:      returnStatus,
		Note:              dto.Note,
		CreatedAt:         dto.CreatedAt,
		CompletedAt:       dto.CompletedAt,
		PaymentRef:        dto.PaymentRef,
		ReturnReason:      order.ReturnReason(dto.ReturnReason),
		ReturnEvidence:    evidence,
		ReturnRequestedAt: dto.ReturnRequestedAt,
		Lines:             lines,
	})
}
