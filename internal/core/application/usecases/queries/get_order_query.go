package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery or NewGetCustomerOrderQuery constructor",
	)
)

// GetOrderQuery reads one order by tracking number, with its lines and
// delivery assignment.
//
// Example:
//
//	query, err := NewGetCustomerOrderQuery(customerID, "ord260504k7q2zx")
//	view, err := handler.Handle(ctx, query)
//	fmt.Println(view.Status, view.FinalAmount)
type GetOrderQuery struct {
	trackingNumber string
	customerID     *kernel.UUID
	guard          guard.ConstructorGuard
}

// NewGetOrderQuery reads any order. Used by staff.
func NewGetOrderQuery(trackingNumber string) (GetOrderQuery, error) {
	tn, err := normalizeTrackingNumber(trackingNumber)
	if err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{trackingNumber: tn, guard: guard.NewConstructorGuard()}, nil
}

// NewGetCustomerOrderQuery only finds orders placed by customerID. Someone
// else's order is reported as not found.
func NewGetCustomerOrderQuery(customerID kernel.UUID, trackingNumber string) (GetOrderQuery, error) {
	tn, tnErr := normalizeTrackingNumber(trackingNumber)
	if err := errors.Join(requireID("customerID", customerID), tnErr); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{trackingNumber: tn, customerID: &customerID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) TrackingNumber() string { return q.trackingNumber }

type OrderLineView struct {
	ID             string `json:"id"`
	UnitID         string `json:"unit_id"`
	Quantity       int    `json:"quantity"`
	UnitPrice      int64  `json:"unit_price"`
	Subtotal       int64  `json:"subtotal"`
	ReturnQuantity int    `json:"return_quantity"`
}

type DeliveryView struct {
	Status      string     `json:"status"`
	ShipperID   string     `json:"shipper_id,omitempty"`
	AssignedAt  time.Time  `json:"assigned_at"`
	ReceivedAt  *time.Time `json:"received_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	ProofImage  string     `json:"proof_image,omitempty"`
}

// GetOrderQueryResponse is the order read model. It is also the cached form,
// so every field round-trips through JSON.
type GetOrderQueryResponse struct {
	ID                string          `json:"id"`
	TrackingNumber    string          `json:"tracking_number"`
	CustomerID        string          `json:"customer_id"`
	AddressID         string          `json:"address_id"`
	VoucherCode       string          `json:"voucher_code,omitempty"`
	SubtotalAmount    int64           `json:"subtotal_amount"`
	ShippingFee       int64           `json:"shipping_fee"`
	DiscountAmount    int64           `json:"discount_amount"`
	FinalAmount       int64           `json:"final_amount"`
	PaymentMethod     string          `json:"payment_method"`
	PaymentStatus     string          `json:"payment_status"`
	Status            string          `json:"order_status"`
	ReturnStatus      string          `json:"return_status,omitempty"`
	ReturnReason      string          `json:"return_reason,omitempty"`
	ReturnEvidence    []string        `json:"return_evidence,omitempty"`
	Note              string          `json:"note,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	CompletedAt       *time.Time      `json:"completed_at,omitempty"`
	ReturnRequestedAt *time.Time      `json:"return_requested_at,omitempty"`
	Lines             []OrderLineView `json:"lines"`
	Delivery          *DeliveryView   `json:"delivery,omitempty"`
}
