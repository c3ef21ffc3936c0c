package model

import "errors"

// ErrInvalidInput is the sentinel matched by every InvalidInputError
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError reports input that is not well-formed text
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Reason == "" {
		return ErrInvalidInput.Error()
	}
	return ErrInvalidInput.Error() + ": " + e.Reason
}

// Is lets errors.Is(err, ErrInvalidInput) match
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInvalidInputError creates an InvalidInputError with the given reason
func NewInvalidInputError(reason string) *InvalidInputError {
	return &InvalidInputError{Reason: reason}
}
