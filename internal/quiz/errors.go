package quiz

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfiguration = errors.New("invalid quiz configuration")
	ErrInvalidAnswer        = errors.New("invalid answer")
	ErrAlreadyAnswered      = errors.New("question already answered")
	ErrNotAnswered          = errors.New("question not answered yet")
	ErrCompleted            = errors.New("quiz already completed")
)

// ValidationError describes a malformed quiz definition
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets callers match any ValidationError with errors.Is(err, ErrInvalidConfiguration)
func (e ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}
