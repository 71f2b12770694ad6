package inventory

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrUnitIsNotConstructed = errors.New("Unit must be created via NewUnit or RestoreUnit")
)

// InsufficientStockError names the unit and how much was asked for.
// Available is -1 when the adapter could not read it back.
type InsufficientStockError struct {
	UnitID    kernel.UUID
	Requested int
	Available int
}

func NewInsufficientStockError(unitID kernel.UUID, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{UnitID: unitID, Requested: requested, Available: available}
}

func (e *InsufficientStockError) Error() string {
	if e.Available < 0 {
		return fmt.Sprintf("%s: unit %s, requested %d", ErrInsufficientStock, e.UnitID, e.Requested)
	}
	return fmt.Sprintf("%s: unit %s, requested %d, available %d",
		ErrInsufficientStock, e.UnitID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// Unit is a concrete SKU. stock never goes below zero.
type Unit struct {
	id              kernel.UUID
	productID       kernel.UUID
	color           string
	size            string
	stock           int
	priceAdjustment decimal.Decimal
	guard           guard.ConstructorGuard
}

func NewUnit(id, productID kernel.UUID, color, size string, stock int, priceAdjustment decimal.Decimal) (*Unit, error) {
	u := &Unit{
		color:           color,
		size:            size,
		priceAdjustment: priceAdjustment,
		guard:           guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		u.setID(id),
		u.setProductID(productID),
		u.setStock(stock),
	); err != nil {
		return nil, err
	}
	return u, nil
}

// RestoreUnit rebuilds a unit from storage.
func RestoreUnit(id, productID kernel.UUID, color, size string, stock int, priceAdjustment decimal.Decimal) (*Unit, error) {
	return NewUnit(id, productID, color, size, stock, priceAdjustment)
}

func (u *Unit) Validate() error {
	if u == nil {
		return ErrUnitIsNotConstructed
	}
	return u.guard.Validate(ErrUnitIsNotConstructed)
}

func (u *Unit) ID() kernel.UUID                  { return u.id }
func (u *Unit) ProductID() kernel.UUID           { return u.productID }
func (u *Unit) Color() string                    { return u.color }
func (u *Unit) Size() string                     { return u.size }
func (u *Unit) Stock() int                       { return u.stock }
func (u *Unit) PriceAdjustment() decimal.Decimal { return u.priceAdjustment }

// Reserve takes qty units out of stock, or leaves the unit untouched and
// returns *InsufficientStockError.
func (u *Unit) Reserve(qty int) error {
	if err := ValidateQuantity(qty); err != nil {
		return err
	}
	if u.stock < qty {
		return NewInsufficientStockError(u.id, qty, u.stock)
	}
	u.stock -= qty
	return nil
}

// Release puts qty units back. One call per physical restitution.
func (u *Unit) Release(qty int) error {
	if err := ValidateQuantity(qty); err != nil {
		return err
	}
	u.stock += qty
	return nil
}

// ValidateQuantity rejects non-positive reservation and restock amounts.
func ValidateQuantity(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", qty))
	}
	return nil
}

func (u *Unit) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *Unit) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productID", err)
	}
	u.productID = id
	return nil
}

func (u *Unit) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock", fmt.Errorf("%d is negative", stock))
	}
	u.stock = stock
	return nil
}
