// Package api is the HTTP client for the remote task service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nibzard/taskboard/internal/task"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8000"

const (
	tasksPath       = "/api/tasks"
	defaultTimeout  = 10 * time.Second
	maxErrorBodyLen = 64 << 10
)

// Client talks to the task service over JSON. It satisfies store.Remote.
type Client struct {
	baseURL string
	client  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithTimeout sets the per-request timeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// New creates a client for baseURL. An empty baseURL selects DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service root the client sends requests to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListTasks fetches every task, newest first.
func (c *Client) ListTasks(ctx context.Context) ([]task.Task, error) {
	var tasks []task.Task
	if err := c.do(ctx, http.MethodGet, tasksPath, nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, nil
}

// CreateTask posts a new task and returns the stored record.
func (c *Client) CreateTask(ctx context.Context, in task.CreateInput) (task.Task, error) {
	var created task.Task
	if err := c.do(ctx, http.MethodPost, tasksPath, in, &created); err != nil {
		return task.Task{}, err
	}
	return created, nil
}

// UpdateTask sends a partial update for id.
func (c *Client) UpdateTask(ctx context.Context, id string, in task.UpdateInput) (task.Task, error) {
	var updated task.Task
	if err := c.do(ctx, http.MethodPut, taskPath(id), in, &updated); err != nil {
		return task.Task{}, withID(err, id)
	}
	return updated, nil
}

// DeleteTask removes id.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, taskPath(id), nil, nil); err != nil {
		return withID(err, id)
	}
	return nil
}

func taskPath(id string) string {
	return tasksPath + "/" + url.PathEscape(id)
}

func withID(err error, id string) error {
	var nf *task.NotFoundError
	if errors.As(err, &nf) && nf.ID == "" {
		nf.ID = id
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &task.APIError{Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &task.APIError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &task.APIError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &task.APIError{Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// decodeError maps a non-2xx response to a typed error. Only a string
// "detail" field is surfaced to users; structured details such as
// request validation reports are dropped.
func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
	message := detailMessage(data)
	if resp.StatusCode == http.StatusNotFound {
		return &task.NotFoundError{Message: message}
	}
	return &task.APIError{Status: resp.StatusCode, Message: message}
}

func detailMessage(data []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err != nil {
		return ""
	}
	return strings.TrimSpace(detail)
}
