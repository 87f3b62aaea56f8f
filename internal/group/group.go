// Package group partitions a task collection by category for display.
package group

import (
	"github.com/nibzard/taskboard/internal/task"
)

// Groups is a read-only partition of a collection. Within each slice,
// tasks keep their input order.
type Groups struct {
	Urgent   []task.Task
	Work     []task.Task
	Personal []task.Task
}

// Section is one non-empty group ready for rendering.
type Section struct {
	Category task.Category
	Title    string
	Tasks    []task.Task
}

// Group partitions tasks by category. Tasks with an unrecognized category
// land in Personal, the server's default, so every task appears exactly once.
func Group(tasks []task.Task) Groups {
	g := Groups{
		Urgent:   []task.Task{},
		Work:     []task.Task{},
		Personal: []task.Task{},
	}
	for _, t := range tasks {
		switch t.Category {
		case task.CategoryUrgent:
			g.Urgent = append(g.Urgent, t)
		case task.CategoryWork:
			g.Work = append(g.Work, t)
		default:
			g.Personal = append(g.Personal, t)
		}
	}
	return g
}

// Of returns the partition for category c.
func (g Groups) Of(c task.Category) []task.Task {
	switch c {
	case task.CategoryUrgent:
		return g.Urgent
	case task.CategoryWork:
		return g.Work
	default:
		return g.Personal
	}
}

// Len returns the total number of tasks across all partitions.
func (g Groups) Len() int {
	return len(g.Urgent) + len(g.Work) + len(g.Personal)
}

// Flatten concatenates urgent, work and personal in that order.
func (g Groups) Flatten() []task.Task {
	out := make([]task.Task, 0, g.Len())
	out = append(out, g.Urgent...)
	out = append(out, g.Work...)
	return append(out, g.Personal...)
}

// Sections returns the non-empty partitions in display order. Empty
// partitions are omitted rather than rendered as placeholders.
func (g Groups) Sections() []Section {
	var out []Section
	for _, c := range task.Categories {
		tasks := g.Of(c)
		if len(tasks) == 0 {
			continue
		}
		out = append(out, Section{Category: c, Title: Title(c), Tasks: tasks})
	}
	return out
}

// Title returns the section heading for c.
func Title(c task.Category) string {
	switch c {
	case task.CategoryUrgent:
		return "Urgent"
	case task.CategoryWork:
		return "Work"
	case task.CategoryPersonal:
		return "Personal"
	}
	return string(c)
}
