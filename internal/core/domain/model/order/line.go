package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Line is one purchased SKU. Its price is frozen at checkout.
type Line struct {
	id             kernel.UUID
	unitID         kernel.UUID
	quantity       int
	unitPrice      kernel.Money
	returnQuantity int
}

func NewLine(id, unitID kernel.UUID, quantity int, unitPrice kernel.Money) (*Line, error) {
	return RestoreLine(id, unitID, quantity, unitPrice, 0)
}

func RestoreLine(id, unitID kernel.UUID, quantity int, unitPrice kernel.Money, returnQuantity int) (*Line, error) {
	var problems []error
	if err := id.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := unitID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("unitID", err))
	}
	if quantity <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if err := unitPrice.Validate(); err != nil {
		problems = append(problems, err)
	}
	if returnQuantity < 0 || returnQuantity > quantity {
		problems = append(problems, errs.NewValueIsOutOfRangeError("returnQuantity", returnQuantity, 0, quantity))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	return &Line{
		id:             id,
		unitID:         unitID,
		quantity:       quantity,
		unitPrice:      unitPrice,
		returnQuantity: returnQuantity,
	}, nil
}

func (l *Line) ID() kernel.UUID         { return l.id }
func (l *Line) UnitID() kernel.UUID     { return l.unitID }
func (l *Line) Quantity() int           { return l.quantity }
func (l *Line) UnitPrice() kernel.Money { return l.unitPrice }
func (l *Line) ReturnQuantity() int     { return l.returnQuantity }

// Subtotal is unitPrice * quantity.
func (l *Line) Subtotal() kernel.Money {
	return l.unitPrice.Times(l.quantity)
}

// Restock is an instruction to put quantity units of a SKU back in stock.
type Restock struct {
	UnitID   kernel.UUID
	Quantity int
}

// ReturnItem names a line and how many of its units the customer sends back.
type ReturnItem struct {
	LineID   kernel.UUID
	Quantity int
}
