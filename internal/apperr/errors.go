package apperr

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrDuplicateName   = errors.New("duplicate name")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidGoal     = errors.New("invalid goal")
)
