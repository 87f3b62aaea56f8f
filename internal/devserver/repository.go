package devserver

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nibzard/taskboard/internal/task"
)

// memoryRepo keeps tasks in memory for the lifetime of the process.
type memoryRepo struct {
	mu    sync.RWMutex
	tasks map[string]task.Task
	now   func() time.Time
	newID func() string
}

func newMemoryRepo(now func() time.Time) *memoryRepo {
	if now == nil {
		now = time.Now
	}
	return &memoryRepo{
		tasks: make(map[string]task.Task),
		now:   now,
		newID: uuid.NewString,
	}
}

func (r *memoryRepo) create(in task.CreateInput, category task.Category) task.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now().UTC()
	t := task.Task{
		ID:            r.newID(),
		Title:         in.Title,
		Description:   in.Description,
		Category:      category,
		EstimatedTime: copyInt(in.EstimatedTime),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	r.tasks[t.ID] = t
	return t
}

// list returns every task, newest first.
func (r *memoryRepo) list() []task.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]task.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *memoryRepo) get(id string) (task.Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tasks[id]
	return t, ok
}

// update applies the set fields of in. An empty update returns the task
// as stored without touching updated_at.
func (r *memoryRepo) update(id string, in task.UpdateInput) (task.Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return task.Task{}, false
	}
	if in.IsEmpty() {
		return t, true
	}
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
		t.EstimatedTime = copyInt(in.EstimatedTime)
	}
	if now := r.now().UTC(); now.After(t.UpdatedAt) {
		t.UpdatedAt = now
	}
	r.tasks[id] = t
	return t, true
}

func (r *memoryRepo) delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return false
	}
	delete(r.tasks, id)
	return true
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
