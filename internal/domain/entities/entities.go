package entities

import (
	"context"
	"errors"
	"fmt"
)

// Common errors
var (
	ErrContactExists       = errors.New("already exists")
	ErrContactNotFound     = errors.New("does not exist")
	ErrUnknownAction       = errors.New("unknown action")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrUnsupportedMode     = errors.New("unsupported theme mode")
	ErrToolMissing         = errors.New("required tool is not installed")
)

// Contact is one phonebook entry. Name is the primary key.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Alias string `json:"alias"`
}

// ThemeMode is the system appearance requested by the theme action.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
	ThemeAuto  ThemeMode = "auto"
)

// ThemeModes lists the accepted theme modes in display order.
func ThemeModes() []ThemeMode {
	return []ThemeMode{ThemeLight, ThemeDark, ThemeAuto}
}

// FailureKind classifies a failed Result. It is never serialized.
type FailureKind string

const (
	FailureNone          FailureKind = ""
	FailureValidation    FailureKind = "validation"
	FailureConflict      FailureKind = "conflict"
	FailureNotFound      FailureKind = "not_found"
	FailureUnknownAction FailureKind = "unknown_action"
	FailureExternal      FailureKind = "external"
	FailurePersistence   FailureKind = "persistence"
	FailureInternal      FailureKind = "internal"
)

// ValidationError reports a rejected input before any side effect happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error for field
func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ActionError is returned when a platform command cannot be run or fails.
type ActionError struct {
	Action Action
	Reason string
	Err    error
}

func (e *ActionError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("%s failed: %v", e.Action, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// Result is the uniform envelope returned by every front end.
type Result struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    []Contact   `json:"data,omitempty"`
	Kind    FailureKind `json:"-"`
}

// Succeeded builds a successful result
func Succeeded(message string, data ...Contact) Result {
	return Result{Success: true, Message: message, Data: data}
}

// Failed builds a failed result of the given kind
func Failed(kind FailureKind, message string) Result {
	return Result{Success: false, Message: message, Kind: kind}
}

// FailureKindOf maps an error returned by the service layer to a FailureKind.
func FailureKindOf(err error) FailureKind {
	var validationErr *ValidationError
	var actionErr *ActionError

	switch {
	case err == nil:
		return FailureNone
	case errors.As(err, &validationErr):
		return FailureValidation
	case errors.Is(err, ErrContactExists):
		return FailureConflict
	case errors.Is(err, ErrContactNotFound):
		return FailureNotFound
	case errors.Is(err, ErrUnknownAction):
		return FailureUnknownAction
	case errors.As(err, &actionErr):
		return FailureExternal
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return FailureInternal
	default:
		return FailurePersistence
	}
}
