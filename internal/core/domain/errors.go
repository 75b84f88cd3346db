package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrGoalNotFound = fmt.Errorf("goal %w", ErrNotFound)
	ErrTaskNotFound = fmt.Errorf("task %w", ErrNotFound)

	ErrDateFormat = errors.New("invalid date format for start_date or planned_end_date, use YYYY-MM-DD or a valid date-time")

	ErrNoGoalFields = NewValidationError("", "at least one field is required to update (name, start_date, planned_end_date)")
	ErrNoTaskFields = NewValidationError("", "at least one field is required to update (title, description, completed)")
)

type ValidationError struct {
	Field   string
	Message string
	Details []FieldError
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
