package port

import (
	"errors"
	"fmt"
)

var (
	// ErrPromoNotFound is returned when a referenced promo does not exist.
	ErrPromoNotFound = errors.New("promo not found")
	// ErrPromoNotActive is returned when accrual or a draw targets a promo
	// that is not currently accepting the operation.
	ErrPromoNotActive = errors.New("promo is not active")
	// ErrDuplicateOrder marks an insert that collided with the
	// (promo_id, order_id) uniqueness constraint. Under webhook redelivery
	// this is the expected "already processed" outcome, not a failure.
	ErrDuplicateOrder = errors.New("order already recorded for promo")
	// ErrWinnerExists guards the at-most-one-winner rule.
	ErrWinnerExists = errors.New("winner already drawn for promo")
	// ErrNoEntries is returned by a draw on an empty ledger.
	ErrNoEntries = errors.New("promo has no entries")
	// ErrWinnerNotFound is returned when a promo has no winner yet.
	ErrWinnerNotFound = errors.New("no winner for promo")
	// ErrInvalidStatusTransition is returned for illegal promo lifecycle
	// moves, including any attempt to leave the terminal "ended" state.
	ErrInvalidStatusTransition = errors.New("invalid promo status transition")
)

// ValidationError reports malformed input. It is the caller's fault and is
// never retried automatically.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError with a formatted message.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// CapReachedError rejects a manual entry for a customer or IP that is
// already at the configured cap. Manual entries are all-or-nothing: they
// refuse rather than clamp.
type CapReachedError struct {
	Scope   string // "email" or "ip"
	Current int
	Max     int
}

func (e *CapReachedError) Error() string {
	return fmt.Sprintf("entry cap reached for %s: %d of %d", e.Scope, e.Current, e.Max)
}
