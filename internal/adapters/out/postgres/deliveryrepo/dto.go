package deliveryrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type AssignmentDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"`
	Status      string     `gorm:"size:16;not null;index"`
	ShipperID   *uuid.UUID `gorm:"type:uuid;index"`
	AssignedAt  time.Time  `gorm:"not null"`
	ReceivedAt  *time.Time
	DeliveredAt *time.Time
	ProofImage  string     `gorm:"size:512"`
}

func (AssignmentDTO) TableName() string {
	return "delivery_assignments"
}

func fromDomain(a *delivery.Assignment) AssignmentDTO {
	s := a.Snapshot()
	var shipperID *uuid.UUID
	if s.ShipperID != nil {
		raw := s.ShipperID.Value()
		shipperID = &raw
	}
	return AssignmentDTO{
		ID:          s.ID.Value(),
		OrderID:     s.OrderID.Value(),
		Status:      s.Status.String(),
		ShipperID:   shipperID,
		AssignedAt:  s.AssignedAt.UTC(),
		ReceivedAt:  s.ReceivedAt,
		DeliveredAt: s.DeliveredAt,
		ProofImage:  s.ProofImage,
	}
}

func toDomain(dto AssignmentDTO) (*delivery.Assignment, error) {
	status, err := delivery.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	var shipperID *kernel.UUID
	if dto.ShipperID != nil {
		id := kernel.UUIDFrom(*dto.ShipperID)
		shipperID = &id
	}
	return delivery.RestoreAssignment(delivery.Snapshot{
		ID:          kernel.UUIDFrom(dto.ID),
		OrderID:     kernel.UUIDFrom(dto.OrderID),
		Status:      status,
		ShipperID:   shipperID,
		AssignedAt:  dto.AssignedAt,
		ReceivedAt:  dto.ReceivedAt,
		DeliveredAt: dto.DeliveredAt,
		ProofImage:  dto.ProofImage,
	})
}
