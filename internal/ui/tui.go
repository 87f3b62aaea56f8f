// Package ui provides the interactive terminal board.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/taskboard/internal/board"
	"github.com/nibzard/taskboard/internal/confirm"
	"github.com/nibzard/taskboard/internal/notify"
	"github.com/nibzard/taskboard/internal/store"
	"github.com/nibzard/taskboard/internal/task"
)

const (
	defaultToastDuration = 3 * time.Second
	eventBuffer          = 64
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	toastDuration time.Duration
	logger        *log.Logger
}

// WithToastDuration sets how long notifications stay on screen.
func WithToastDuration(d time.Duration) TUIOption {
	return func(c *tuiConfig) {
		if d > 0 {
			c.toastDuration = d
		}
	}
}

// WithLogger sets the logger for UI events.
func WithLogger(logger *log.Logger) TUIOption {
	return func(c *tuiConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// RunTUI runs the interactive board until the user quits or ctx is done.
func RunTUI(ctx context.Context, b *board.Board, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	model := newTUIModel(ctx, b, opts...)
	defer model.close()
	return runProgram(ctx, model)
}

func runProgram(ctx context.Context, model *tuiModel) error {
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type mode int

const (
	modeList mode = iota
	modeForm
	modeEdit
)

type tuiModel struct {
	ctx           context.Context
	board         *board.Board
	logger        *log.Logger
	toastDuration time.Duration

	events      chan tea.Msg
	done        chan struct{}
	unsubscribe []func()

	mode      mode
	loading   bool
	deleting  bool
	cursor    int
	width     int
	form      *taskForm
	editInput textinput.Model
	editID    string
	editErr   string
	spinner   spinner.Model
}

type loadedMsg struct{ err error }

type createdMsg struct {
	fields task.FieldErrors
	err    error
}

type updatedMsg struct {
	fields task.FieldErrors
	err    error
}

type deletedMsg struct{ err error }

type storeChangedMsg struct{ event store.Event }

type toastShownMsg struct{ id string }

type toastExpiredMsg struct{ id string }

type eventsClosedMsg struct{}

func newTUIModel(ctx context.Context, b *board.Board, opts ...TUIOption) *tuiModel {
	c := &tuiConfig{
		toastDuration: defaultToastDuration,
		logger:        log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	edit := textinput.New()
	edit.CharLimit = task.MaxTitleLength

	m := &tuiModel{
		ctx:           ctx,
		board:         b,
		logger:        c.logger,
		toastDuration: c.toastDuration,
		events:        make(chan tea.Msg, eventBuffer),
		done:          make(chan struct{}),
		loading:       true,
		form:          newTaskForm(),
		editInput:     edit,
		spinner:       s,
	}
	m.unsubscribe = append(m.unsubscribe,
		b.Store.Subscribe(func(ev store.Event) {
			m.send(storeChangedMsg{event: ev})
		}),
		// Removals are not forwarded. The model removes toasts from inside
		// Update, and the view reads Toasts.Messages on every render.
		b.Toasts.Subscribe(func(ev notify.Event) {
			if ev.Shown != nil {
				m.send(toastShownMsg{id: ev.Shown.ID})
			}
		}),
	)
	return m
}

// send delivers a board event to the program. It gives up once the
// program has exited.
func (m *tuiModel) send(msg tea.Msg) {
	select {
	case m.events <- msg:
	case <-m.done:
	}
}

func (m *tuiModel) close() {
	select {
	case <-m.done:
		return
	default:
	}
	close(m.done)
	for _, unsub := range m.unsubscribe {
		unsub()
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd(), waitForEvent(m.events, m.done))
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.form.setWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.loading && !m.form.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.logger.Warn("load failed", "err", msg.err)
		}
		m.clampCursor()
		return m, nil

	case createdMsg:
		m.form.submitting = false
		if msg.fields != nil {
			m.form.errors = msg.fields
			return m, nil
		}
		if msg.err != nil {
			m.logger.Warn("create failed", "err", msg.err)
			return m, nil
		}
		m.form.reset()
		m.mode = modeList
		m.cursor = 0
		return m, nil

	case updatedMsg:
		if msg.fields != nil {
			m.editErr = firstFieldError(msg.fields)
			return m, nil
		}
		if msg.err != nil {
			m.logger.Warn("update failed", "err", msg.err)
		}
		m.stopEditing()
		return m, nil

	case deletedMsg:
		m.deleting = false
		if msg.err != nil {
			m.logger.Warn("delete failed", "err", msg.err)
		}
		m.clampCursor()
		return m, nil

	case storeChangedMsg:
		m.clampCursor()
		return m, waitForEvent(m.events, m.done)

	case toastShownMsg:
		return m, tea.Batch(expireToast(msg.id, m.toastDuration), waitForEvent(m.events, m.done))

	case toastExpiredMsg:
		m.board.Toasts.Remove(msg.id)
		return m, nil

	case eventsClosedMsg:
		return m, nil
	}

	return m, nil
}

func (m *tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.board.Deletion.State() == confirm.Awaiting {
		return m.handleConfirmKey(msg)
	}

	switch m.mode {
	case modeForm:
		return m.handleFormKey(msg)
	case modeEdit:
		return m.handleEditKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "a":
		m.mode = modeForm
		return m, m.form.setFocus(fieldTitle)
	case "e":
		if t, ok := m.selected(); ok {
			m.mode = modeEdit
			m.editID = t.ID
			m.editErr = ""
			m.editInput.SetValue(t.Title)
			m.editInput.CursorEnd()
			return m, m.editInput.Focus()
		}
	case "d", "delete":
		if t, ok := m.selected(); ok {
			m.board.RequestDelete(t.ID)
		}
	case "r", "f5":
		if !m.loading {
			m.loading = true
			return m, tea.Batch(m.loadCmd(), m.spinner.Tick)
		}
	case "x":
		if id, ok := m.board.Toasts.Oldest(); ok {
			m.board.Toasts.Remove(id)
		}
	case "j", "down":
		if m.cursor < m.board.Store.Len()-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = m.board.Store.Len() - 1
		m.clampCursor()
	}
	return m, nil
}

func (m *tuiModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if m.deleting {
			return m, nil
		}
		m.deleting = true
		return m, m.deleteCmd()
	case "n", "esc", "q":
		if !m.deleting {
			m.board.CancelDelete()
		}
	}
	return m, nil
}

func (m *tuiModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.form.errors = nil
		return m, nil
	case "tab":
		return m, m.form.next()
	case "shift+tab":
		return m, m.form.prev()
	case "ctrl+s":
		return m, m.submitForm()
	case "enter":
		if m.form.focus != fieldDescription {
			return m, m.submitForm()
		}
	}
	if m.form.submitting {
		return m, nil
	}
	return m, m.form.update(msg)
}

func (m *tuiModel) submitForm() tea.Cmd {
	if m.form.submitting {
		return nil
	}
	m.form.errors = nil
	in, fields := m.form.input()
	if fields != nil {
		m.form.errors = fields
		return nil
	}
	m.form.submitting = true
	return tea.Batch(m.createCmd(in), m.spinner.Tick)
}

func (m *tuiModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.stopEditing()
		return m, nil
	case "enter":
		return m, m.saveEdit()
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

// saveEdit sends the edited title when it is non-empty and changed.
func (m *tuiModel) saveEdit() tea.Cmd {
	current, ok := m.board.Store.Get(m.editID)
	title := strings.TrimSpace(m.editInput.Value())
	// The input starts from the stored title, which is already escaped.
	// Entities in it are escaped a second time when an edit is saved.
	if !ok || title == "" || title == current.Title {
		m.stopEditing()
		return nil
	}
	return m.updateCmd(m.editID, task.UpdateInput{Title: &title})
}

func (m *tuiModel) stopEditing() {
	m.mode = modeList
	m.editID = ""
	m.editErr = ""
	m.editInput.Blur()
	m.editInput.Reset()
}

// selected returns the task under the cursor in display order.
func (m *tuiModel) selected() (task.Task, bool) {
	tasks := m.board.Groups().Flatten()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return task.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *tuiModel) clampCursor() {
	n := m.board.Store.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) loadCmd() tea.Cmd {
	b, ctx := m.board, m.ctx
	return func() tea.Msg {
		return loadedMsg{err: b.Load(ctx)}
	}
}

func (m *tuiModel) createCmd(in task.CreateInput) tea.Cmd {
	b, ctx := m.board, m.ctx
	return func() tea.Msg {
		fields, err := b.Create(ctx, in)
		return createdMsg{fields: fields, err: err}
	}
}

func (m *tuiModel) updateCmd(id string, in task.UpdateInput) tea.Cmd {
	b, ctx := m.board, m.ctx
	return func() tea.Msg {
		fields, err := b.Update(ctx, id, in)
		return updatedMsg{fields: fields, err: err}
	}
}

func (m *tuiModel) deleteCmd() tea.Cmd {
	b, ctx := m.board, m.ctx
	return func() tea.Msg {
		return deletedMsg{err: b.ConfirmDelete(ctx)}
	}
}

func waitForEvent(ch <-chan tea.Msg, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-ch:
			return msg
		case <-done:
			return eventsClosedMsg{}
		}
	}
}

func expireToast(id string, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func firstFieldError(fields task.FieldErrors) string {
	names := fields.Fields()
	if len(names) == 0 {
		return ""
	}
	return fields[names[0]]
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
