package workflow

import (
	"errors"
	"fmt"
)

var (
	ErrStageInProgress   = errors.New("a generation stage is already in progress")
	ErrInvalidTransition = errors.New("action not allowed in the current state")
)

// ValidationError is an input problem detected before any remote call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StageError is a failed remote call. Message is the banner text.
type StageError struct {
	Stage   Stage
	Message string
	Err     error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %s", e.Stage, e.Message)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func invalidTransition(action string, from Status) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, action, from)
}
