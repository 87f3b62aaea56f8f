// Package board runs the user-facing task workflow: it drives the store,
// reports outcomes through the notification queue and routes deletions
// through the confirmation gate.
package board

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskboard/internal/confirm"
	"github.com/nibzard/taskboard/internal/group"
	"github.com/nibzard/taskboard/internal/notify"
	"github.com/nibzard/taskboard/internal/store"
	"github.com/nibzard/taskboard/internal/task"
)

// Messages shown after each operation.
const (
	MsgCreated = "Task created successfully!"
	MsgUpdated = "Task updated successfully!"
	MsgDeleted = "Task deleted successfully!"

	FallbackLoad   = "Failed to load tasks"
	FallbackCreate = "Failed to create task"
	FallbackUpdate = "Failed to update task"
	FallbackDelete = "Failed to delete task"
)

// Board owns one session's store, notification queue and deletion gate.
type Board struct {
	Store    *store.Store
	Toasts   *notify.Queue
	Deletion *confirm.Gate
	logger   *log.Logger
}

// Option configures a Board.
type Option func(*Board)

// WithLogger sets the board logger.
func WithLogger(logger *log.Logger) Option {
	return func(b *Board) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithQueue replaces the notification queue.
func WithQueue(q *notify.Queue) Option {
	return func(b *Board) {
		b.Toasts = q
	}
}

// New creates a board over remote. The store shares the board's logger.
func New(remote store.Remote, opts ...Option) *Board {
	b := &Board{
		Toasts: notify.New(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.Store = store.New(remote, store.WithLogger(b.logger.WithPrefix("store")))
	b.Deletion = confirm.NewGate(b.Store)
	return b
}

// Load refreshes the collection. Failures are reported as an error toast
// and returned.
func (b *Board) Load(ctx context.Context) error {
	if _, err := b.Store.Load(ctx); err != nil {
		b.Toasts.Error(task.UserMessage(err, FallbackLoad))
		return err
	}
	return nil
}

// Create submits a new task. Validation problems are returned as field
// errors and never reach the notification queue.
func (b *Board) Create(ctx context.Context, in task.CreateInput) (task.FieldErrors, error) {
	created, err := b.Store.Create(ctx, in)
	if fields, ok := task.IsValidation(err); ok {
		return fields, err
	}
	if err != nil {
		b.Toasts.Error(task.UserMessage(err, FallbackCreate))
		return nil, err
	}
	b.logger.Info("task created", "task_id", created.ID, "category", created.Category)
	b.Toasts.Success(MsgCreated)
	return nil, nil
}

// Update applies a partial update to id.
func (b *Board) Update(ctx context.Context, id string, in task.UpdateInput) (task.FieldErrors, error) {
	_, err := b.Store.Update(ctx, id, in)
	if fields, ok := task.IsValidation(err); ok {
		return fields, err
	}
	if err != nil {
		b.Toasts.Error(task.UserMessage(err, FallbackUpdate))
		return nil, err
	}
	b.logger.Info("task updated", "task_id", id)
	b.Toasts.Success(MsgUpdated)
	return nil, nil
}

// RequestDelete asks for confirmation before removing id.
func (b *Board) RequestDelete(id string) {
	b.Deletion.Request(id)
}

// CancelDelete dismisses the pending confirmation.
func (b *Board) CancelDelete() {
	b.Deletion.Cancel()
}

// ConfirmDelete removes the pending task. It does nothing when no
// deletion is pending.
func (b *Board) ConfirmDelete(ctx context.Context) error {
	id, err := b.Deletion.Confirm(ctx)
	if id == "" {
		return nil
	}
	if err != nil {
		b.Toasts.Error(task.UserMessage(err, FallbackDelete))
		return err
	}
	b.logger.Info("task deleted", "task_id", id)
	b.Toasts.Success(MsgDeleted)
	return nil
}

// Groups returns the current collection partitioned for display.
func (b *Board) Groups() group.Groups {
	return group.Group(b.Store.Tasks())
}
