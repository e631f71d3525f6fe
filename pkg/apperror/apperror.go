package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Sentinel kinds. Callers branch with errors.Is; the HTTP layer maps them
// to status codes in StatusCode.
var (
	// ErrConfiguration marks a fatal deployment problem (e.g. missing API key).
	// Detected before any network call is attempted, never retried.
	ErrConfiguration = errors.New("configuration error")

	// ErrUpstream marks a non-2xx answer from an LLM provider.
	ErrUpstream = errors.New("upstream request error")

	// ErrTimeout marks an upstream call that exceeded its time budget.
	// Kept distinct from ErrUpstream so the caller can suggest a shorter request.
	ErrTimeout = errors.New("upstream timeout")

	// ErrUnauthorized marks a rejected credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation marks malformed or empty caller input.
	ErrValidation = errors.New("validation error")
)

// Error couples a kind with a human-readable message and an optional cause.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func Configuration(message string) *Error {
	return &Error{Kind: ErrConfiguration, Message: message}
}

func Upstream(message string, cause error) *Error {
	return &Error{Kind: ErrUpstream, Message: message, Cause: cause}
}

func Timeout(message string, cause error) *Error {
	return &Error{Kind: ErrTimeout, Message: message, Cause: cause}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}

func Validation(message string) *Error {
	return &Error{Kind: ErrValidation, Message: message}
}

// StatusCode maps an error to the HTTP status the caller contract defines.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrTimeout):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

// UserMessage returns the message shown to the end user. Timeouts get an
// actionable hint instead of the raw transport detail.
func UserMessage(err error) string {
	if errors.Is(err, ErrTimeout) {
		return "The AI provider took too long to respond. Try a shorter request."
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
