package resources

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrBookUnavailable     = errors.New("book is not available")
	ErrLoanLimitReached    = errors.New("loan limit reached")
	ErrRenewalLimitReached = errors.New("renewal limit reached")
	ErrLoanClosed          = errors.New("loan is not active")
)

// remoteErr translates a store error for what, wrapping ErrNotFound for missing records.
func remoteErr(err error, what string, id uint) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return fmt.Errorf("%s %d: %w", what, id, err)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
