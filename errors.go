package prefroom

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for runtime operations of generated code.
var (
	// ErrNotInitialized is raised when a component accessor is called before
	// the component was bootstrapped with its Init function.
	ErrNotInitialized = errors.New("prefroom: component is not initialized")
)

// NotInitializedError is the value generated GetInstance functions panic
// with when the component registry holds no instance.
type NotInitializedError struct {
	name string
}

// Error returns the error string.
func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("prefroom: %s is not initialized, call its Init function first", e.name)
}

// Is reports whether the target error matches NotInitializedError.
// This allows errors.Is(err, ErrNotInitialized) to return true.
func (e *NotInitializedError) Is(err error) bool {
	return err == ErrNotInitialized
}

// Name returns the name of the uninitialized component.
func (e *NotInitializedError) Name() string {
	return e.name
}

// NewNotInitializedError returns a new NotInitializedError for the given component.
func NewNotInitializedError(name string) *NotInitializedError {
	return &NotInitializedError{name: name}
}

// IsNotInitialized returns true if the error is a NotInitializedError.
func IsNotInitialized(err error) bool {
	if err == nil {
		return false
	}
	var e *NotInitializedError
	return errors.As(err, &e) || errors.Is(err, ErrNotInitialized)
}

// Recover converts a NotInitializedError panic raised by a generated
// GetInstance function into an error stored in errp. Other panics are
// re-raised.
//
//	func load(ctx prefroom.Context) (err error) {
//		defer prefroom.Recover(&err)
//		c := PreferenceComponent_App_GetInstance(ctx)
//		...
//	}
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(*NotInitializedError); ok {
		*errp = e
		return
	}
	panic(r)
}
