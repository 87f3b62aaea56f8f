package devserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nibzard/taskboard/internal/api"
	"github.com/nibzard/taskboard/internal/task"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testClock() func() time.Time {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	return func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
}

func newTestServer() *Server {
	return New(WithClock(testClock()))
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeTask(t *testing.T, w *httptest.ResponseRecorder) taskResponse {
	t.Helper()
	var resp taskResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v (%s)", err, w.Body.String())
	}
	return resp
}

func decodeDetail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v (%s)", err, w.Body.String())
	}
	return resp.Detail
}

func TestHealth(t *testing.T) {
	w := doJSON(t, newTestServer(), http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
}

func TestCreateCategorizes(t *testing.T) {
	s := newTestServer()
	w := doJSON(t, s, http.MethodPost, "/api/tasks", `{"title":"Client meeting","estimated_time":45}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status: got %d (%s)", w.Code, w.Body.String())
	}
	resp := decodeTask(t, w)
	if resp.ID == "" || resp.Category != task.CategoryWork {
		t.Errorf("response: got %+v", resp)
	}
	if resp.Description != nil {
		t.Errorf("description: got %q, want null", *resp.Description)
	}
	if resp.EstimatedTime == nil || *resp.EstimatedTime != 45 {
		t.Errorf("estimated_time: got %v", resp.EstimatedTime)
	}
	if resp.UpdatedAt.Before(resp.CreatedAt) {
		t.Error("updated_at before created_at")
	}
}

func TestCreateWithPatternStrategy(t *testing.T) {
	s := New(WithCategorizer(NewCategorizer(StrategyPattern)))
	w := doJSON(t, s, http.MethodPost, "/api/tasks", `{"title":"Fix it!!"}`)
	if got := decodeTask(t, w).Category; got != task.CategoryUrgent {
		t.Errorf("category: got %q", got)
	}
}

func TestCreateRejectsInvalid(t *testing.T) {
	tests := []struct {
		name, body, want string
	}{
		{"missing title", `{}`, "Title is required"},
		{"empty body", ``, "Title is required"},
		{"too long estimate", `{"title":"x","estimated_time":1441}`, "Estimated time cannot exceed 24 hours"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			newTestServer().Handler().ServeHTTP(w, req)
			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status: got %d", w.Code)
			}
			if got := decodeDetail(t, w); got != tt.want {
				t.Errorf("detail: got %q, want %q", got, tt.want)
			}
		})
	}

	w := doJSON(t, newTestServer(), http.MethodPost, "/api/tasks", `{"title":"x","estimated_time":"soon"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("type mismatch status: got %d", w.Code)
	}
}

func TestListNewestFirst(t *testing.T) {
	s := newTestServer()
	for _, title := range []string{"first", "second", "third"} {
		if w := doJSON(t, s, http.MethodPost, "/api/tasks", `{"title":"`+title+`"}`); w.Code != http.StatusCreated {
			t.Fatalf("create %s: %d", title, w.Code)
		}
	}
	w := doJSON(t, s, http.MethodGet, "/api/tasks", "")
	var list []taskResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 || list[0].Title != "third" || list[2].Title != "first" {
		t.Errorf("order: got %+v", list)
	}
}

func TestListEmptyIsArray(t *testing.T) {
	w := doJSON(t, newTestServer(), http.MethodGet, "/api/tasks", "")
	if got := bytes.TrimSpace(w.Body.Bytes()); string(got) != "[]" {
		t.Errorf("body: got %s", got)
	}
}

func TestUpdateAndGet(t *testing.T) {
	s := newTestServer()
	created := decodeTask(t, doJSON(t, s, http.MethodPost, "/api/tasks", `{"title":"Buy milk"}`))

	w := doJSON(t, s, http.MethodPut, "/api/tasks/"+created.ID, `{"category":"urgent","description":"2%"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", w.Code, w.Body.String())
	}
	updated := decodeTask(t, w)
	if updated.Category != task.CategoryUrgent || updated.Title != "Buy milk" {
		t.Errorf("updated: got %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Error("updated_at not refreshed")
	}

	got := decodeTask(t, doJSON(t, s, http.MethodGet, "/api/tasks/"+created.ID, ""))
	if got.Description == nil || *got.Description != "2%" {
		t.Errorf("get: got %+v", got)
	}
}

func TestUpdateEmptyBodyUnchanged(t *testing.T) {
	s := newTestServer()
	created := decodeTask(t, doJSON(t, s, http.MethodPost, "/api/tasks", `{"title":"x"}`))
	got := decodeTask(t, doJSON(t, s, http.MethodPut, "/api/tasks/"+created.ID, `{}`))
	if !got.UpdatedAt.Equal(created.UpdatedAt) {
		t.Errorf("updated_at changed on empty update")
	}
}

func TestUpdateRejectsBadCategory(t *testing.T) {
	s := newTestServer()
	created := decodeTask(t, doJSON(t, s, http.MethodPost, "/api/tasks", `{"title":"x"}`))
	w := doJSON(t, s, http.MethodPut, "/api/tasks/"+created.ID, `{"category":"someday"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d", w.Code)
	}
	if got := decodeDetail(t, w); got != "Category must be one of work, personal, urgent" {
		t.Errorf("detail: got %q", got)
	}
}

func TestMissingIDs(t *testing.T) {
	s := newTestServer()
	for _, req := range []struct{ method, body string }{
		{http.MethodGet, ""},
		{http.MethodPut, `{"title":"y"}`},
		{http.MethodDelete, ""},
	} {
		w := doJSON(t, s, req.method, "/api/tasks/nope", req.body)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s: status %d", req.method, w.Code)
			continue
		}
		if got := decodeDetail(t, w); got != "Task not found" {
			t.Errorf("%s: detail %q", req.method, got)
		}
	}
}

func TestDelete(t *testing.T) {
	s := newTestServer()
	created := decodeTask(t, doJSON(t, s, http.MethodPost, "/api/tasks", `{"title":"x"}`))
	if w := doJSON(t, s, http.MethodDelete, "/api/tasks/"+created.ID, ""); w.Code != http.StatusNoContent {
		t.Fatalf("status: got %d", w.Code)
	}
	if w := doJSON(t, s, http.MethodGet, "/api/tasks/"+created.ID, ""); w.Code != http.StatusNotFound {
		t.Errorf("after delete: got %d", w.Code)
	}
}

// The api client and the devserver agree on the wire format.
func TestClientRoundTrip(t *testing.T) {
	srv := httptest.NewServer(newTestServer().Handler())
	defer srv.Close()
	c := api.New(srv.URL)
	ctx := context.Background()

	created, err := c.CreateTask(ctx, task.CreateInput{Title: "Quarterly report", EstimatedTime: task.Minutes(90)})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if created.Category != task.CategoryWork {
		t.Errorf("category: got %q", created.Category)
	}

	if _, err := c.UpdateTask(ctx, created.ID, task.UpdateInput{Title: task.String("Annual report")}); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	tasks, err := c.ListTasks(ctx)
	if err != nil || len(tasks) != 1 || tasks[0].Title != "Annual report" {
		t.Fatalf("ListTasks: %v, %+v", err, tasks)
	}

	if err := c.DeleteTask(ctx, created.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	err = c.DeleteTask(ctx, created.ID)
	if got := task.UserMessage(err, "Failed to delete task"); got != "Task not found" {
		t.Errorf("second delete: got %q (%v)", got, err)
	}

	_, err = c.CreateTask(ctx, task.CreateInput{})
	if got := task.UserMessage(err, "Failed to create task"); got != "Title is required" {
		t.Errorf("invalid create: got %q", got)
	}
}
