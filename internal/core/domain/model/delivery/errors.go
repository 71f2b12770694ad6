package delivery

import "errors"

var (
	ErrAlreadyClaimed             = errors.New("delivery already claimed")
	ErrAlreadyDelivered           = errors.New("delivery already delivered")
	ErrOrderNotConfirmed          = errors.New("order is not confirmed")
	ErrInvalidProofImage          = errors.New("invalid proof image")
	ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment or RestoreAssignment")
)
