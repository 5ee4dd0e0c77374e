package rental

import "fmt"

// Error taxonomy surfaced verbatim to callers. The engine performs no
// silent recovery; persistence retries are the caller's responsibility.

// ValidationError reports malformed or out-of-range input. Always
// caller-fixable, never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing referenced entity.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// ConflictError reports that the underlying state already changed, e.g. a
// terminal bid touched again or a lost approval race.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

// InvalidStateError reports a trip operation attempted from the wrong
// trip state.
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string { return e.Reason }
