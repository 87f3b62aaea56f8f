package task

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError carries field-level problems detected before any request.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, name := range e.Fields.Fields() {
		if name == "" {
			parts = append(parts, e.Fields[name])
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "invalid task: " + strings.Join(parts, "; ")
}

// APIError reports a request the remote store rejected or could not serve.
type APIError struct {
	Status  int    // HTTP status, 0 when no response was received
	Message string // server-supplied detail, may be empty
	Err     error  // transport or decoding error, may be nil
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
	case e.Message != "":
		return "api error: " + e.Message
	case e.Err != nil && e.Status != 0:
		return fmt.Sprintf("api error (%d): %v", e.Status, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("api error: %v", e.Err)
	case e.Status != 0:
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return "api error"
}

// Unwrap returns the underlying error.
func (e *APIError) Unwrap() error {
	return e.Err
}

// NotFoundError reports that the target id no longer exists remotely.
type NotFoundError struct {
	ID      string
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("task %s: %s", e.ID, e.Message)
	}
	return fmt.Sprintf("task %s not found", e.ID)
}

// FetchError reports a failed collection load.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch tasks: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// UserMessage returns the server-supplied detail carried by err, or
// fallback when there is none.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var notFound *NotFoundError
	if errors.As(err, &notFound) && notFound.Message != "" {
		return notFound.Message
	}
	return fallback
}

// IsValidation reports whether err is a ValidationError and returns its fields.
func IsValidation(err error) (FieldErrors, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields, true
	}
	return nil, false
}
