package carbon

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("not found")
	ErrUserNotFound        = fmt.Errorf("user %w", ErrNotFound)
	ErrInvalidAmount       = fmt.Errorf("invalid amount: %w", ErrValidation)
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrDuplicate           = errors.New("already applied")
)
