package store

import (
	"sync"

	"github.com/nibzard/taskboard/internal/task"
)

// collection is the mutex-guarded task slice. Ids are unique.
type collection struct {
	mu    sync.RWMutex
	tasks []task.Task
}

// replace swaps in tasks wholesale and returns how many duplicate ids were dropped.
func (c *collection) replace(tasks []task.Task) int {
	seen := make(map[string]bool, len(tasks))
	next := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		next = append(next, t)
	}

	c.mu.Lock()
	c.tasks = next
	c.mu.Unlock()
	return len(tasks) - len(next)
}

// prepend puts t at the front, dropping any older entry with the same id.
func (c *collection) prepend(t task.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := make([]task.Task, 0, len(c.tasks)+1)
	next = append(next, t)
	for _, existing := range c.tasks {
		if existing.ID != t.ID {
			next = append(next, existing)
		}
	}
	c.tasks = next
}

func (c *collection) replaceByID(id string, t task.Task) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks[i] = t
			return true
		}
	}
	return false
}

func (c *collection) removeByID(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks = append(c.tasks[:i:i], c.tasks[i+1:]...)
			return true
		}
	}
	return false
}

func (c *collection) get(id string) (task.Task, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return task.Task{}, false
}

func (c *collection) snapshot() []task.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]task.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

func (c *collection) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tasks)
}

// subscribers is a registry of change listeners.
type subscribers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(Event)
}

func (s *subscribers) add(fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fns == nil {
		s.fns = make(map[int]func(Event))
	}
	id := s.next
	s.next++
	s.fns[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.fns, id)
	}
}

func (s *subscribers) publish(e Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.fns))
	for _, fn := range s.fns {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}
