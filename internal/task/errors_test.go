package task

import (
	"errors"
	"fmt"
	"testing"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"api detail", &APIError{Status: 500, Message: "Failed to create task: db down"}, "Failed to create task: db down"},
		{"api no detail", &APIError{Status: 502}, "fallback"},
		{"transport", &APIError{Err: errors.New("connection refused")}, "fallback"},
		{"not found", &NotFoundError{ID: "1", Message: "Task not found"}, "Task not found"},
		{"wrapped", fmt.Errorf("update: %w", &APIError{Message: "nope"}), "nope"},
		{"fetch wraps api", &FetchError{Err: &APIError{Message: "Failed to retrieve tasks"}}, "Failed to retrieve tasks"},
		{"plain", errors.New("boom"), "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err, "fallback"); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorStrings(t *testing.T) {
	ve := &ValidationError{Fields: FieldErrors{"title": "Title is required"}}
	if ve.Error() != "invalid task: title: Title is required" {
		t.Errorf("ValidationError: got %q", ve.Error())
	}

	nf := &NotFoundError{ID: "42"}
	if nf.Error() != "task 42 not found" {
		t.Errorf("NotFoundError: got %q", nf.Error())
	}

	cause := errors.New("dial tcp: refused")
	fe := &FetchError{Err: &APIError{Err: cause}}
	if !errors.Is(fe, cause) {
		t.Error("FetchError should unwrap to the transport error")
	}
}
