package catalog

import (
	"errors"
	"fmt"
	"runtime/debug"
)

var (
	ErrNavigation     = errors.New("navigation error")
	ErrClassification = errors.New("classification error")
	ErrAction         = errors.New("action error")
	ErrBatch          = errors.New("batch error")
)

// Error carries the failure kind, the book it belongs to (if any) and the
// stack at the point the failure was observed.
type Error struct {
	Kind  error
	URL   string
	Err   error
	Stack string
}

func (e *Error) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == e.Kind }

// NewError wraps err and records the current goroutine stack.
func NewError(kind error, bookURL string, err error) *Error {
	return &Error{Kind: kind, URL: bookURL, Err: err, Stack: string(debug.Stack())}
}

// FromPanic converts a recovered value into an Error. It must be called from
// the deferred function that recovered so the stack still shows the panic site.
func FromPanic(kind error, bookURL string, v any) *Error {
	err, ok := v.(error)
	if !ok {
		err = fmt.Errorf("panic: %v", v)
	}
	return &Error{Kind: kind, URL: bookURL, Err: err, Stack: string(debug.Stack())}
}

// StackOf returns the recorded stack of err, or "" when there is none.
func StackOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Stack
	}
	return ""
}
