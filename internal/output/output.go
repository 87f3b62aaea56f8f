// Package output renders task collections for the non-interactive commands.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nibzard/taskboard/internal/group"
	"github.com/nibzard/taskboard/internal/task"
)

// Format selects a renderer.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Empty-state copy shared with the interactive board.
const (
	EmptyTitle = "No tasks yet"
	EmptyHint  = "Create your first task to get started!"
)

// ParseFormat validates a format name. An empty name selects text.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, json or yaml)", name)
}

// Options controls text rendering.
type Options struct {
	Verbose bool
}

// Render writes tasks to w in the given format.
func Render(w io.Writer, format Format, tasks []task.Task, opts Options) error {
	switch format {
	case FormatJSON:
		return RenderJSON(w, tasks)
	case FormatYAML:
		return RenderYAML(w, tasks)
	default:
		return RenderText(w, tasks, opts)
	}
}

// RenderJSON writes tasks as an indented JSON array.
func RenderJSON(w io.Writer, tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tasks)
}

// RenderYAML writes tasks as a YAML sequence.
func RenderYAML(w io.Writer, tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tasks); err != nil {
		return err
	}
	return enc.Close()
}

// RenderText writes tasks grouped by category with per-section counts.
// Empty sections are skipped.
func RenderText(w io.Writer, tasks []task.Task, opts Options) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintf(w, "%s\n%s\n", EmptyTitle, EmptyHint)
		return err
	}

	var b strings.Builder
	for i, section := range group.Group(tasks).Sections() {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s (%d):\n", section.Title, len(section.Tasks))
		for _, t := range section.Tasks {
			writeTask(&b, t, opts.Verbose)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeTask(b *strings.Builder, t task.Task, verbose bool) {
	fmt.Fprintf(b, "  %s [%s] %s", CategoryIcon(t.Category), t.ID, t.Title)
	if est := FormatEstimate(t.EstimatedTime); est != "" {
		fmt.Fprintf(b, " (%s)", est)
	}
	b.WriteString("\n")
	if !verbose {
		return
	}
	if t.Description != "" {
		fmt.Fprintf(b, "      Details: %s\n", t.Description)
	}
	fmt.Fprintf(b, "      Created: %s\n", t.CreatedAt.Local().Format("2006-01-02 15:04"))
}

// CategoryIcon returns the marker shown next to tasks of category c.
func CategoryIcon(c task.Category) string {
	switch c {
	case task.CategoryUrgent:
		return "🔥"
	case task.CategoryWork:
		return "💼"
	default:
		return "🏠"
	}
}

// FormatEstimate renders an estimate in minutes as "45m", "2h" or "1h 30m".
// A nil estimate renders as "".
func FormatEstimate(minutes *int) string {
	if minutes == nil {
		return ""
	}
	m := *minutes
	switch {
	case m < 60:
		return fmt.Sprintf("%dm", m)
	case m%60 == 0:
		return fmt.Sprintf("%dh", m/60)
	default:
		return fmt.Sprintf("%dh %dm", m/60, m%60)
	}
}
