// Package store keeps a local mirror of the remote task collection.
//
// Every mutation is confirm-then-apply: the local collection changes only
// after the remote store acknowledged the request, so local state is never
// ahead of the server and failures need no rollback. Operations are not
// serialized against each other; concurrent mutations are applied in the
// order their responses arrive.
package store

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskboard/internal/task"
)

// Remote is the authoritative task store the local mirror follows.
type Remote interface {
	ListTasks(ctx context.Context) ([]task.Task, error)
	CreateTask(ctx context.Context, in task.CreateInput) (task.Task, error)
	UpdateTask(ctx context.Context, id string, in task.UpdateInput) (task.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// EventKind names the local mutation that produced an Event.
type EventKind string

const (
	EventLoaded  EventKind = "loaded"
	EventCreated EventKind = "created"
	EventUpdated EventKind = "updated"
	EventRemoved EventKind = "removed"
)

// Event describes a change to the local collection.
type Event struct {
	Kind EventKind
	ID   string    // affected task id, empty for EventLoaded
	Task task.Task // new task state for created/updated
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for operation tracing.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store is the exclusive owner of the local task collection.
type Store struct {
	remote Remote
	logger *log.Logger
	state  collection
	subs   subscribers
}

// New creates an empty store backed by remote.
func New(remote Remote, opts ...Option) *Store {
	s := &Store{
		remote: remote,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches the full collection and replaces local state with it.
// On failure local state keeps its previous value and a *task.FetchError
// is returned.
func (s *Store) Load(ctx context.Context) ([]task.Task, error) {
	tasks, err := s.remote.ListTasks(ctx)
	if err != nil {
		s.logger.Warn("load failed", "err", err)
		return nil, &task.FetchError{Err: err}
	}

	dropped := s.state.replace(tasks)
	if dropped > 0 {
		s.logger.Warn("dropped duplicate task ids from load", "count", dropped)
	}
	s.logger.Debug("loaded tasks", "count", s.state.len())
	s.subs.publish(Event{Kind: EventLoaded})
	return s.state.snapshot(), nil
}

// Create sanitizes and validates in, sends it to the remote store and,
// once accepted, prepends the returned task to the collection.
func (s *Store) Create(ctx context.Context, in task.CreateInput) (task.Task, error) {
	in = task.SanitizeCreate(in)
	if fields := task.ValidateCreate(in); fields != nil {
		return task.Task{}, &task.ValidationError{Fields: fields}
	}

	created, err := s.remote.CreateTask(ctx, in)
	if err != nil {
		s.logger.Warn("create failed", "err", err)
		return task.Task{}, asAPIError(err)
	}

	s.state.prepend(created)
	s.logger.Debug("created task", "task_id", created.ID, "category", created.Category)
	s.subs.publish(Event{Kind: EventCreated, ID: created.ID, Task: created})
	return created, nil
}

// Update sanitizes and validates the present fields of in, sends the
// partial update and, once accepted, replaces the local entry with the
// server's version.
func (s *Store) Update(ctx context.Context, id string, in task.UpdateInput) (task.Task, error) {
	in = task.SanitizeUpdate(in)
	if fields := task.ValidateUpdate(in); fields != nil {
		return task.Task{}, &task.ValidationError{Fields: fields}
	}

	updated, err := s.remote.UpdateTask(ctx, id, in)
	if err != nil {
		s.logger.Warn("update failed", "task_id", id, "err", err)
		return task.Task{}, asAPIError(err)
	}

	if !s.state.replaceByID(id, updated) {
		s.logger.Debug("updated task no longer held locally", "task_id", id)
		return updated, nil
	}
	s.logger.Debug("updated task", "task_id", id)
	s.subs.publish(Event{Kind: EventUpdated, ID: id, Task: updated})
	return updated, nil
}

// Remove deletes id remotely and, once accepted, drops the local entry.
func (s *Store) Remove(ctx context.Context, id string) error {
	if err := s.remote.DeleteTask(ctx, id); err != nil {
		s.logger.Warn("delete failed", "task_id", id, "err", err)
		return asAPIError(err)
	}

	if s.state.removeByID(id) {
		s.logger.Debug("removed task", "task_id", id)
		s.subs.publish(Event{Kind: EventRemoved, ID: id})
	}
	return nil
}

// Tasks returns a copy of the collection in display order.
func (s *Store) Tasks() []task.Task {
	return s.state.snapshot()
}

// Len returns the number of tasks held locally.
func (s *Store) Len() int {
	return s.state.len()
}

// Get returns the local task with id.
func (s *Store) Get(id string) (task.Task, bool) {
	return s.state.get(id)
}

// Subscribe registers fn for change events and returns a function that
// removes the subscription. fn runs after the change is applied, on the
// goroutine that completed the operation.
func (s *Store) Subscribe(fn func(Event)) func() {
	return s.subs.add(fn)
}

// asAPIError keeps typed remote errors and wraps anything else.
func asAPIError(err error) error {
	var apiErr *task.APIError
	var notFound *task.NotFoundError
	if errors.As(err, &apiErr) || errors.As(err, &notFound) {
		return err
	}
	return &task.APIError{Err: err}
}
