package ui

import (
	"fmt"
	"strings"

	"github.com/nibzard/taskboard/internal/group"
	"github.com/nibzard/taskboard/internal/notify"
	"github.com/nibzard/taskboard/internal/output"
	"github.com/nibzard/taskboard/internal/task"
)

const (
	modalTitle = "Delete Task"
	modalBody  = "Are you sure you want to delete this task? This action cannot be undone."
)

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)
	writeToasts(&b, m.board.Toasts.Messages())

	if id, pending := m.board.Deletion.Pending(); pending {
		writeModal(&b, id, m.deleting)
		writeFooter(&b, "y/enter delete • n/esc cancel")
		return b.String()
	}

	if m.mode == modeForm {
		b.WriteString(m.form.view() + "\n\n")
		writeFooter(&b, "ctrl+c quit")
		return b.String()
	}

	if m.loading {
		b.WriteString(m.spinner.View() + " Loading tasks...\n\n")
		writeFooter(&b, "q quit")
		return b.String()
	}

	groups := m.board.Groups()
	if groups.Len() == 0 {
		writeEmpty(&b)
		writeFooter(&b, "a add • r reload • q quit")
		return b.String()
	}

	m.writeSections(&b, groups)
	if m.mode == modeEdit {
		writeFooter(&b, "enter save • esc cancel")
	} else {
		writeFooter(&b, "a add • e edit • d delete • r reload • x dismiss • j/k move • q quit")
	}
	return b.String()
}

func writeTitle(b *strings.Builder) {
	b.WriteString(titleStyle.Render("Smart Todo List") + "\n")
	b.WriteString(subtitleStyle.Render("Organize your tasks with automatic categorization") + "\n\n")
}

func writeToasts(b *strings.Builder, msgs []notify.Message) {
	for _, msg := range msgs {
		style, icon := toastStyle(msg.Kind)
		b.WriteString(style.Render(icon+" "+msg.Text) + "\n")
	}
	if len(msgs) > 0 {
		b.WriteString("\n")
	}
}

func writeModal(b *strings.Builder, id string, deleting bool) {
	body := headerStyle.Render(modalTitle) + "\n\n" + modalBody
	if deleting {
		body += "\n\n" + faintStyle.Render("Deleting...")
	}
	b.WriteString(modalStyle.Render(body) + "\n")
	b.WriteString(faintStyle.Render("task "+id) + "\n\n")
}

func writeEmpty(b *strings.Builder) {
	b.WriteString(headerStyle.Render(output.EmptyTitle) + "\n")
	b.WriteString(subtitleStyle.Render(output.EmptyHint) + "\n\n")
}

func (m *tuiModel) writeSections(b *strings.Builder, groups group.Groups) {
	idx := 0
	for _, section := range groups.Sections() {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d)", section.Title, len(section.Tasks))) + "\n")
		for _, t := range section.Tasks {
			m.writeTask(b, t, idx == m.cursor)
			idx++
		}
		b.WriteString("\n")
	}
}

func (m *tuiModel) writeTask(b *strings.Builder, t task.Task, selected bool) {
	marker := "  "
	if selected {
		marker = selectedStyle.Render("> ")
	}

	title := t.Title
	if selected && m.mode == modeEdit && m.editID == t.ID {
		title = m.editInput.View()
	} else if selected {
		title = selectedStyle.Render(title)
	}

	line := marker + badgeStyle(t.Category).Render(string(t.Category)) + " " + title
	if est := output.FormatEstimate(t.EstimatedTime); est != "" {
		line += faintStyle.Render("  " + est)
	}
	line += faintStyle.Render("  " + t.CreatedAt.Local().Format("Jan 2, 2006"))
	b.WriteString(line + "\n")

	if t.Description != "" {
		b.WriteString("    " + faintStyle.Render(truncate(t.Description, m.descriptionWidth())) + "\n")
	}
	if selected && m.mode == modeEdit && m.editErr != "" {
		b.WriteString("    " + errorStyle.Render(m.editErr) + "\n")
	}
}

func (m *tuiModel) descriptionWidth() int {
	if m.width <= 0 {
		return 72
	}
	if w := m.width - 6; w > 20 {
		return w
	}
	return 20
}

func writeFooter(b *strings.Builder, keys string) {
	b.WriteString(faintStyle.Render(keys) + "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
