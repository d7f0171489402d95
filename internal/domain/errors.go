package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrDuplicateEmail        = errors.New("email already registered")
	ErrInvalidIntent         = errors.New("invalid checkout intent")
	ErrGatewayUnavailable    = errors.New("payment gateway unavailable")
	ErrPaymentIncomplete     = errors.New("payment not completed")
	ErrDanglingReference     = errors.New("booking or ticket no longer exists")
	ErrDuplicateTransaction  = errors.New("transaction already settled")
	ErrInsufficientInventory = errors.New("not enough available sits")
)

// PersistenceError reports a settlement transition that stopped partway
// through. The flags record which sub-steps were applied, so a caller can
// re-invoke settlement and have it resume past them.
type PersistenceError struct {
	PaymentApplied bool
	BookingApplied bool
	TicketApplied  bool
	Err            error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("settlement transition incomplete (payment=%t booking=%t ticket=%t): %v",
		e.PaymentApplied, e.BookingApplied, e.TicketApplied, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
