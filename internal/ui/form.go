package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/taskboard/internal/task"
)

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldEstimate
	fieldCount
)

// taskForm collects a new task.
type taskForm struct {
	title       textinput.Model
	description textarea.Model
	estimate    textinput.Model
	focus       formField
	errors      task.FieldErrors
	submitting  bool
}

func newTaskForm() *taskForm {
	title := textinput.New()
	title.Placeholder = "What needs to be done?"
	title.CharLimit = task.MaxTitleLength
	title.Width = 56

	description := textarea.New()
	description.Placeholder = "Add details about this task..."
	description.CharLimit = task.MaxDescriptionLength
	description.ShowLineNumbers = false
	description.SetWidth(58)
	description.SetHeight(3)

	estimate := textinput.New()
	estimate.Placeholder = "How long will it take?"
	estimate.CharLimit = 4
	estimate.Width = 24

	f := &taskForm{
		title:       title,
		description: description,
		estimate:    estimate,
	}
	f.setFocus(fieldTitle)
	return f
}

func (f *taskForm) setFocus(field formField) tea.Cmd {
	f.focus = field
	f.title.Blur()
	f.description.Blur()
	f.estimate.Blur()
	switch field {
	case fieldDescription:
		return f.description.Focus()
	case fieldEstimate:
		return f.estimate.Focus()
	default:
		return f.title.Focus()
	}
}

func (f *taskForm) next() tea.Cmd {
	return f.setFocus((f.focus + 1) % fieldCount)
}

func (f *taskForm) prev() tea.Cmd {
	return f.setFocus((f.focus + fieldCount - 1) % fieldCount)
}

func (f *taskForm) reset() {
	f.title.Reset()
	f.description.Reset()
	f.estimate.Reset()
	f.errors = nil
	f.submitting = false
	f.setFocus(fieldTitle)
}

func (f *taskForm) setWidth(width int) {
	w := width - 8
	if w < 20 {
		w = 20
	}
	if w > 80 {
		w = 80
	}
	f.title.Width = w - 2
	f.description.SetWidth(w)
}

// input builds the create request from the current field values. An
// estimate that is not a whole number is reported as a field error.
func (f *taskForm) input() (task.CreateInput, task.FieldErrors) {
	minutes, err := task.ParseEstimatedTime(f.estimate.Value())
	if fields, ok := task.IsValidation(err); ok {
		return task.CreateInput{}, fields
	}
	return task.CreateInput{
		Title:         strings.TrimSpace(f.title.Value()),
		Description:   strings.TrimSpace(f.description.Value()),
		EstimatedTime: minutes,
	}, nil
}

// update routes a message to the focused widget.
func (f *taskForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	case fieldEstimate:
		f.estimate, cmd = f.estimate.Update(msg)
	default:
		f.title, cmd = f.title.Update(msg)
	}
	return cmd
}

func (f *taskForm) view() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Add New Task") + "\n\n")

	writeField(&b, "Title *", f.title.View(), f.errors["title"])
	writeField(&b, "Description", f.description.View(), f.errors["description"])
	writeField(&b, "Estimated Time (minutes)", f.estimate.View(), f.errors["estimated_time"])

	if f.submitting {
		b.WriteString(faintStyle.Render("Adding..."))
	} else {
		b.WriteString(faintStyle.Render("enter/ctrl+s add task • tab next field • esc cancel"))
	}
	return formStyle.Render(b.String())
}

func writeField(b *strings.Builder, label, widget, errMsg string) {
	b.WriteString(labelStyle.Render(label) + "\n")
	b.WriteString(widget + "\n")
	if errMsg != "" {
		b.WriteString(errorStyle.Render(errMsg) + "\n")
	}
	b.WriteString("\n")
}
