// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nibzard/taskboard/internal/task"
)

// FakeRemote is an in-memory remote task store for tests. It satisfies
// store.Remote and assigns ids, categories and timestamps the way the
// real server does.
type FakeRemote struct {
	mu     sync.Mutex
	tasks  []task.Task
	nextID int
	now    func() time.Time

	// Category assigned to created tasks. Defaults to personal.
	Category task.Category

	// Error injection for testing
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error

	// Call counters
	ListCalls   int
	CreateCalls int
	UpdateCalls int
	DeleteCalls int

	// Last request bodies
	LastCreate task.CreateInput
	LastUpdate task.UpdateInput
}

// NewFakeRemote creates an empty FakeRemote with a fixed clock.
func NewFakeRemote() *FakeRemote {
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	return &FakeRemote{
		Category: task.CategoryPersonal,
		now: func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Minute)
		},
	}
}

// AddTask seeds a task at the end of the remote collection.
func (f *FakeRemote) AddTask(id, title string, category task.Category) task.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := f.now()
	t := task.Task{
		ID:        id,
		Title:     title,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.tasks = append(f.tasks, t)
	return t
}

// Tasks returns a copy of the remote collection.
func (f *FakeRemote) Tasks() []task.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]task.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// ListTasks implements store.Remote.
func (f *FakeRemote) ListTasks(ctx context.Context) ([]task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]task.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

// CreateTask implements store.Remote.
func (f *FakeRemote) CreateTask(ctx context.Context, in task.CreateInput) (task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	f.LastCreate = in
	if f.CreateErr != nil {
		return task.Task{}, f.CreateErr
	}

	f.nextID++
	now := f.now()
	t := task.Task{
		ID:            fmt.Sprintf("%d", f.nextID),
		Title:         in.Title,
		Description:   in.Description,
		Category:      f.Category,
		EstimatedTime: in.EstimatedTime,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	f.tasks = append([]task.Task{t}, f.tasks...)
	return t, nil
}

// UpdateTask implements store.Remote.
func (f *FakeRemote) UpdateTask(ctx context.Context, id string, in task.UpdateInput) (task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateCalls++
	f.LastUpdate = in
	if f.UpdateErr != nil {
		return task.Task{}, f.UpdateErr
	}

	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		t := &f.tasks[i]
		if in.Title != nil {
			t.Title = *in.Title
		}
		if in.Description != nil {
			t.Description = *in.Description
		}
		if in.Category != nil {
			t.Category = *in.Category
		}
		if in.EstimatedTime != nil {
			t.EstimatedTime = in.EstimatedTime
		}
		if !in.IsEmpty() {
			t.UpdatedAt = f.now()
		}
		return *t, nil
	}
	return task.Task{}, &task.NotFoundError{ID: id, Message: "Task not found"}
}

// DeleteTask implements store.Remote.
func (f *FakeRemote) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	if f.DeleteErr != nil {
		return f.DeleteErr
	}

	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return &task.NotFoundError{ID: id, Message: "Task not found"}
}

// CountByTitle returns how many remote tasks have the given title,
// ignoring case and surrounding whitespace.
func (f *FakeRemote) CountByTitle(title string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := strings.ToLower(strings.TrimSpace(title))
	n := 0
	for _, t := range f.tasks {
		if strings.ToLower(strings.TrimSpace(t.Title)) == want {
			n++
		}
	}
	return n
}
