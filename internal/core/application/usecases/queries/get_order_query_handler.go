package queries

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/logging"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler serves order lookups, read-through a cache when one
// is configured. Cache failures degrade to a database read.
type GetOrderQueryHandler struct {
	db    *gorm.DB
	cache ports.Cache
	ttl   time.Duration
}

// NewGetOrderQueryHandler accepts a nil cache.
func NewGetOrderQueryHandler(db *gorm.DB, cache ports.Cache, ttl time.Duration) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, cache: cache, ttl: ttl}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	view, hit := h.fromCache(ctx, query.trackingNumber)
	if !hit {
		var err error
		view, err = h.load(ctx, query.trackingNumber)
		if err != nil {
			return GetOrderQueryResponse{}, err
		}
		h.toCache(ctx, view)
	}

	if query.customerID != nil && view.CustomerID != query.customerID.String() {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("trackingNumber", query.trackingNumber)
	}
	return view, nil
}

type orderRow struct {
	ID                uuid.UUID
	TrackingNumber    string
	CustomerID        uuid.UUID
	AddressID         uuid.UUID
	VoucherCode       string
	SubtotalAmount    int64
	ShippingFee       int64
	DiscountAmount    int64
	FinalAmount       int64
	PaymentMethod     string
	PaymentStatus     string
	OrderStatus       string
	ReturnStatus      string
	ReturnReason      string
	ReturnEvidence    string
	Note              string
	CreatedAt         time.Time
	CompletedAt       *time.Time
	ReturnRequestedAt *time.Time

	DeliveryStatus *string
	ShipperID      *uuid.UUID
	AssignedAt     *time.Time
	ReceivedAt     *time.Time
	DeliveredAt    *time.Time
	ProofImage     *string
}

type lineRow struct {
	ID             uuid.UUID
	UnitID         uuid.UUID
	Quantity       int
	UnitPrice      int64
	Subtotal       int64
	ReturnQuantity int
}

func (h GetOrderQueryHandler) load(ctx context.Context, trackingNumber string) (GetOrderQueryResponse, error) {
	db := h.db.WithContext(ctx)

	var row orderRow
	res := db.Raw(`
		SELECT
			o.id, o.tracking_number, o.customer_id, o.address_id, o.voucher_code,
			o.subtotal_amount, o.shipping_fee, o.discount_amount, o.final_amount,
			o.payment_method, o.payment_status, o.order_status,
			o.return_status, o.return_reason, o.return_evidence, o.note,
			o.created_at, o.completed_at, o.return_requested_at,
			a.status AS delivery_status, a.shipper_id, a.assigned_at,
			a.received_at, a.delivered_at, a.proof_image
		FROM orders o
		LEFT JOIN delivery_assignments a ON a.order_id = o.id
		WHERE o.tracking_number = ?
	`, trackingNumber).Scan(&row)
	if res.Error != nil {
		return GetOrderQueryResponse{}, res.Error
	}
	if res.RowsAffected == 0 {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("trackingNumber", trackingNumber)
	}

	var lines []lineRow
	err := db.Raw(`
		SELECT id, unit_id, quantity, unit_price, subtotal, return_quantity
		FROM order_lines
		WHERE order_id = ?
		ORDER BY position
	`, row.ID).Scan(&lines).Error
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return row.view(lines)
}

func (r orderRow) view(lines []lineRow) (GetOrderQueryResponse, error) {
	var evidence []string
	if r.ReturnEvidence != "" {
		if err := json.Unmarshal([]byte(r.ReturnEvidence), &evidence); err != nil {
			return GetOrderQueryResponse{}, err
		}
	}

	view := GetOrderQueryResponse{
		ID:                r.ID.String(),
		TrackingNumber:    r.TrackingNumber,
		CustomerID:        r.CustomerID.String(),
		AddressID:         r.AddressID.String(),
		VoucherCode:       r.VoucherCode,
		SubtotalAmount:    r.SubtotalAmount,
		ShippingFee:       r.ShippingFee,
		DiscountAmount:    r.DiscountAmount,
		FinalAmount:       r.FinalAmount,
		PaymentMethod:     r.PaymentMethod,
		PaymentStatus:     r.PaymentStatus,
		Status:            r.OrderStatus,
		ReturnStatus:      r.ReturnStatus,
		ReturnReason:      r.ReturnReason,
		ReturnEvidence:    evidence,
		Note:              r.Note,
		CreatedAt:         r.CreatedAt.UTC(),
		CompletedAt:       r.CompletedAt,
		ReturnRequestedAt: r.ReturnRequestedAt,
		Lines:             make([]OrderLineView, 0, len(lines)),
	}
	for _, l := range lines {
		view.Lines = append(view.Lines, OrderLineView{
			ID:             l.ID.String(),
			UnitID:         l.UnitID.String(),
			Quantity:       l.Quantity,
			UnitPrice:      l.UnitPrice,
			Subtotal:       l.Subtotal,
			ReturnQuantity: l.ReturnQuantity,
		})
	}

	if r.DeliveryStatus != nil {
		d := &DeliveryView{
			Status:      *r.DeliveryStatus,
			ReceivedAt:  r.ReceivedAt,
			DeliveredAt: r.DeliveredAt,
		}
		if r.AssignedAt != nil {
			d.AssignedAt = r.AssignedAt.UTC()
		}
		if r.ShipperID != nil {
			d.ShipperID = r.ShipperID.String()
		}
		if r.ProofImage != nil {
			d.ProofImage = *r.ProofImage
		}
		view.Delivery = d
	}
	return view, nil
}

func (h GetOrderQueryHandler) fromCache(ctx context.Context, trackingNumber string) (GetOrderQueryResponse, bool) {
	if h.cache == nil {
		return GetOrderQueryResponse{}, false
	}
	raw, err := h.cache.Get(ctx, ports.OrderCacheKey(trackingNumber))
	if err != nil {
		if !errors.Is(err, ports.ErrCacheMiss) {
			logging.FromContext(ctx).WarnContext(ctx, "order cache read failed",
				"tracking_number", trackingNumber, "error", err)
		}
		return GetOrderQueryResponse{}, false
	}
	var view GetOrderQueryResponse
	if err = json.Unmarshal([]byte(raw), &view); err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "discarding malformed cached order",
			"tracking_number", trackingNumber, "error", err)
		return GetOrderQueryResponse{}, false
	}
	return view, true
}

func (h GetOrderQueryHandler) toCache(ctx context.Context, view GetOrderQueryResponse) {
	if h.cache == nil {
		return
	}
	raw, err := json.Marshal(view)
	if err != nil {
		return
	}
	if err = h.cache.Set(ctx, ports.OrderCacheKey(view.TrackingNumber), string(raw), h.ttl); err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "order cache write failed",
			"tracking_number", view.TrackingNumber, "error", err)
	}
}
