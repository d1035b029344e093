// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Dataset errors.
	ErrEmptyDataset    = errors.New("dataset contains no items")
	ErrIndexOutOfRange = errors.New("index out of range")

	// Reclassification errors.
	ErrInvalidGradeLabel = errors.New("invalid grade label")
	ErrPairIncomplete    = errors.New("card pair is missing a side")
	ErrDestinationExists = errors.New("destination file already exists")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
