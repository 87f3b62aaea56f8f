// Package task defines task records, input cleaning, and client-side validation.
package task

import (
	"time"
)

// Category is the server-assigned bucket of a task.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryUrgent   Category = "urgent"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryUrgent, CategoryWork, CategoryPersonal}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryUrgent:
		return true
	}
	return false
}

// Field limits shared by the validator, the form and the devserver.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
	MaxEstimatedTime     = 1440
)

// Task is a single task as returned by the remote store.
type Task struct {
	ID            string    `json:"id" yaml:"id"`
	Title         string    `json:"title" yaml:"title"`
	Description   string    `json:"description,omitempty" yaml:"description,omitempty"`
	Category      Category  `json:"category" yaml:"category"`
	EstimatedTime *int      `json:"estimated_time,omitempty" yaml:"estimated_time,omitempty"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" yaml:"updated_at"`
}

// CreateInput is the body of a create request. The remote store assigns
// id, category and timestamps.
type CreateInput struct {
	Title         string `json:"title" yaml:"title"`
	Description   string `json:"description,omitempty" yaml:"description,omitempty"`
	EstimatedTime *int   `json:"estimated_time,omitempty" yaml:"estimated_time,omitempty"`
}

// UpdateInput is a partial update; nil fields are left unchanged remotely.
type UpdateInput struct {
	Title         *string   `json:"title,omitempty" yaml:"title,omitempty"`
	Description   *string   `json:"description,omitempty" yaml:"description,omitempty"`
	Category      *Category `json:"category,omitempty" yaml:"category,omitempty"`
	EstimatedTime *int      `json:"estimated_time,omitempty" yaml:"estimated_time,omitempty"`
}

// IsEmpty returns true if the update carries no fields.
func (u UpdateInput) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Category == nil && u.EstimatedTime == nil
}

// Minutes returns a pointer to n, for building inputs.
func Minutes(n int) *int {
	return &n
}

// String returns a pointer to s, for building update inputs.
func String(s string) *string {
	return &s
}
