// Package status carries expected operational failures as values: a numeric
// code plus a human-readable message. Contract violations inside the runtime
// are not statuses, they panic.
package status

import (
	"errors"
	"fmt"
)

// Status is an error with a numeric code. The zero code means "unclassified".
type Status struct {
	code  int
	msg   string
	cause error
}

// New creates a status with the given code and message.
func New(code int, msg string) *Status {
	return &Status{code: code, msg: msg}
}

// Errorf creates a status with a formatted message.
func Errorf(code int, format string, args ...any) *Status {
	return &Status{code: code, msg: fmt.Sprintf(format, args...)}
}

// Wrap creates a status around an underlying cause. The cause is reachable
// via errors.Unwrap / errors.Is / errors.As.
func Wrap(code int, msg string, cause error) *Status {
	return &Status{code: code, msg: msg, cause: cause}
}

func (s *Status) Error() string {
	if s.cause != nil {
		return fmt.Sprintf("%s (%d): %v", s.msg, s.code, s.cause)
	}
	return fmt.Sprintf("%s (%d)", s.msg, s.code)
}

// Code returns the numeric code.
func (s *Status) Code() int { return s.code }

// Message returns the message without the code or cause.
func (s *Status) Message() string { return s.msg }

func (s *Status) Unwrap() error { return s.cause }

// Code extracts the status code from err, unwrapping as needed.
// It returns 0 when err is nil or carries no status.
func Code(err error) int {
	var s *Status
	if errors.As(err, &s) {
		return s.code
	}
	return 0
}

// Result pairs a value with an error; exactly one of the two is meaningful.
type Result[T any] struct {
	value T
	err   error
}

// OK creates a successful result.
func OK[T any](v T) Result[T] { return Result[T]{value: v} }

// Err creates a failed result. It panics when err is nil.
func Err[T any](err error) Result[T] {
	if err == nil {
		panic("status: Err with nil error")
	}
	return Result[T]{err: err}
}

// IsOK reports whether the result holds a value.
func (r Result[T]) IsOK() bool { return r.err == nil }

// Err returns the error, nil for successful results.
func (r Result[T]) Err() error { return r.err }

// Unpack returns the value and the error in Go's usual shape.
func (r Result[T]) Unpack() (T, error) { return r.value, r.err }

// MustOK returns the value and panics on a failed result. Use it only where
// a failure is a programming error.
func (r Result[T]) MustOK() T {
	if r.err != nil {
		panic(fmt.Sprintf("status: MustOK on failed result: %v", r.err))
	}
	return r.value
}
