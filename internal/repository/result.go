package repository

import (
	"errors"
	"fmt"
)

// FailureKind classifies why an operation failed
type FailureKind string

// FailureKind constants
const (
	// KindTransport means no usable response was obtained
	KindTransport FailureKind = "transport"
	// KindApplication means the server answered with an error
	KindApplication FailureKind = "application"
	// KindValidation means the request was rejected before sending
	KindValidation FailureKind = "validation"
)

// Failure is the error half of a Result
type Failure struct {
	Kind       FailureKind
	Message    string
	HTTPStatus int // 0 when no response was received
	Err        error
}

func (f *Failure) Error() string {
	if f.HTTPStatus > 0 {
		return fmt.Sprintf("%s failure (status %d): %s", f.Kind, f.HTTPStatus, f.Message)
	}
	return fmt.Sprintf("%s failure: %s", f.Kind, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// AsFailure extracts a Failure from err
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// Result carries either a value or a Failure, never both
type Result[T any] struct {
	value   T
	failure *Failure
}

// Ok wraps a successful value
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Fail wraps a failure
func Fail[T any](f *Failure) Result[T] {
	if f == nil {
		f = &Failure{Kind: KindApplication, Message: "unknown failure"}
	}
	return Result[T]{failure: f}
}

// IsSuccess reports whether the result carries a value
func (r Result[T]) IsSuccess() bool {
	return r.failure == nil
}

// Value returns the carried value; the zero value on failure
func (r Result[T]) Value() T {
	return r.value
}

// Failure returns the failure, or nil on success
func (r Result[T]) Failure() *Failure {
	return r.failure
}

// Message returns the failure message, or an empty string on success
func (r Result[T]) Message() string {
	if r.failure == nil {
		return ""
	}
	return r.failure.Message
}

// Get returns the value and the failure as an error
func (r Result[T]) Get() (T, error) {
	if r.failure != nil {
		var zero T
		return zero, r.failure
	}
	return r.value, nil
}
