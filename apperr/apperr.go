// Package apperr holds the error taxonomy shared by the builder, the
// submission controller and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount is wrapped by every ValidationError raised for a
	// non-numeric or non-positive amount.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNotFound marks a read whose object is Absent.
	ErrNotFound = errors.New("not found")

	// ErrPending is returned when a control already has a submission in flight.
	ErrPending = errors.New("submission already pending")
)

// ValidationError is bad user input caught before any network call.
type ValidationError struct {
	Field  string
	Reason string
	err    error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation: %s", e.Reason)
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

func Invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// InvalidAmount is a ValidationError that also matches ErrInvalidAmount.
func InvalidAmount(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...), err: ErrInvalidAmount}
}

// InsufficientFunds means the coin inventory cannot cover a payment.
type InsufficientFunds struct {
	CoinType  string
	Required  uint64
	Available uint64
}

func (e *InsufficientFunds) Error() string {
	return fmt.Sprintf("insufficient funds: %s: required %d, available %d", e.CoinType, e.Required, e.Available)
}

// SubmissionError carries the signer's message verbatim.
type SubmissionError struct {
	Message string
}

func (e *SubmissionError) Error() string {
	return e.Message
}

func NotFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsInsufficientFunds(err error) bool {
	var f *InsufficientFunds
	return errors.As(err, &f)
}

func IsSubmission(err error) bool {
	var s *SubmissionError
	return errors.As(err, &s)
}
