package mood

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMood is matched by validation errors about a mood index.
	ErrInvalidMood = errors.New("mood: invalid mood index")
	// ErrInvalidDateKey is matched by validation errors about a date key.
	ErrInvalidDateKey = errors.New("mood: invalid date key")
)

// ValidationError reports input rejected before any I/O.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
	err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("mood: invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.err }

func invalidMood(i int) error {
	return &ValidationError{
		Field:  "mood index",
		Value:  i,
		Reason: fmt.Sprintf("must be between %d and %d", MinIndex, MaxIndex),
		err:    ErrInvalidMood,
	}
}

// PersistenceError reports a failed read, write or flush of the backing store.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("mood: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsPersistence reports whether err is a *PersistenceError.
func IsPersistence(err error) bool {
	var p *PersistenceError
	return errors.As(err, &p)
}
