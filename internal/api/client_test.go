package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nibzard/taskboard/internal/task"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestNewDefaults(t *testing.T) {
	if got := New("").BaseURL(); got != DefaultBaseURL {
		t.Errorf("BaseURL: got %q, want %q", got, DefaultBaseURL)
	}
	if got := New("http://example.test/").BaseURL(); got != "http://example.test" {
		t.Errorf("BaseURL: got %q", got)
	}
	c := New("", WithTimeout(3*time.Second))
	if c.client.Timeout != 3*time.Second {
		t.Errorf("Timeout: got %v", c.client.Timeout)
	}

	hc := &http.Client{}
	c = New("", WithHTTPClient(hc), WithTimeout(time.Second))
	if c.client != hc || hc.Timeout != time.Second {
		t.Errorf("WithHTTPClient: got %p timeout %v", c.client, c.client.Timeout)
	}
	if New("", WithHTTPClient(nil)).client == nil {
		t.Error("nil HTTP client should keep the default")
	}
}

func TestListTasks(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/tasks" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, `[
			{"id":"b","title":"Second","description":null,"category":"work","estimated_time":30,
			 "created_at":"2026-01-02T10:00:00Z","updated_at":"2026-01-02T10:00:00Z"},
			{"id":"a","title":"First","description":"d","category":"urgent","estimated_time":null,
			 "created_at":"2026-01-01T10:00:00Z","updated_at":"2026-01-01T10:00:00Z"}
		]`)
	})

	tasks, err := c.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("len: got %d, want 2", len(tasks))
	}
	if tasks[0].ID != "b" || tasks[0].Description != "" || tasks[0].EstimatedTime == nil || *tasks[0].EstimatedTime != 30 {
		t.Errorf("tasks[0]: got %+v", tasks[0])
	}
	if tasks[1].Category != task.CategoryUrgent || tasks[1].EstimatedTime != nil {
		t.Errorf("tasks[1]: got %+v", tasks[1])
	}
}

func TestListTasksEmptyArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	})
	tasks, err := c.ListTasks(context.Background())
	if err != nil || tasks == nil || len(tasks) != 0 {
		t.Fatalf("ListTasks: got %v, %v", tasks, err)
	}
}

func TestCreateTaskSendsBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method: got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type: got %q", ct)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["title"] != "Buy milk" {
			t.Errorf("title: got %v", body["title"])
		}
		if _, ok := body["description"]; ok {
			t.Error("empty description should be omitted")
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":"1","title":"Buy milk","category":"personal",
			"created_at":"2026-01-01T10:00:00Z","updated_at":"2026-01-01T10:00:00Z"}`)
	})

	created, err := c.CreateTask(context.Background(), task.CreateInput{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if created.ID != "1" || created.Category != task.CategoryPersonal {
		t.Errorf("created: got %+v", created)
	}
}

func TestUpdateTaskSendsOnlySetFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/tasks/abc" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		data, _ := io.ReadAll(r.Body)
		if got := strings.TrimSpace(string(data)); got != `{"category":"urgent"}` {
			t.Errorf("body: got %s", got)
		}
		io.WriteString(w, `{"id":"abc","title":"t","category":"urgent",
			"created_at":"2026-01-01T10:00:00Z","updated_at":"2026-01-01T11:00:00Z"}`)
	})

	cat := task.CategoryUrgent
	updated, err := c.UpdateTask(context.Background(), "abc", task.UpdateInput{Category: &cat})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.Category != task.CategoryUrgent {
		t.Errorf("category: got %q", updated.Category)
	}
}

func TestDeleteTaskNoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/tasks/abc" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	if err := c.DeleteTask(context.Background(), "abc"); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
}

func TestErrorDecoding(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantStatus  int
		wantMessage string
		notFound    bool
	}{
		{name: "string detail", status: 500, body: `{"detail":"Failed to create task: db down"}`, wantStatus: 500, wantMessage: "Failed to create task: db down"},
		{name: "structured detail", status: 422, body: `{"detail":[{"loc":["body","title"],"msg":"field required"}]}`, wantStatus: 422},
		{name: "no body", status: 502, body: ``, wantStatus: 502},
		{name: "not json", status: 500, body: `<html>oops</html>`, wantStatus: 500},
		{name: "not found", status: 404, body: `{"detail":"Task not found"}`, wantMessage: "Task not found", notFound: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})
			err := c.DeleteTask(context.Background(), "x")
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.notFound {
				var nf *task.NotFoundError
				if !errors.As(err, &nf) {
					t.Fatalf("expected NotFoundError, got %T", err)
				}
				if nf.ID != "x" || nf.Message != tt.wantMessage {
					t.Errorf("not found: got %+v", nf)
				}
				return
			}
			var apiErr *task.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %T", err)
			}
			if apiErr.Status != tt.wantStatus || apiErr.Message != tt.wantMessage {
				t.Errorf("APIError: got %+v", apiErr)
			}
		})
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c := New(srv.URL)
	srv.Close()

	_, err := c.ListTasks(context.Background())
	var apiErr *task.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T (%v)", err, err)
	}
	if apiErr.Status != 0 || apiErr.Err == nil {
		t.Errorf("APIError: got %+v", apiErr)
	}
	if got := task.UserMessage(err, "Failed to load tasks"); got != "Failed to load tasks" {
		t.Errorf("UserMessage: got %q", got)
	}
}

func TestMalformedSuccessBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{not json`)
	})
	if _, err := c.ListTasks(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}
