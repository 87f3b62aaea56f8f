// Package notify holds transient user-facing messages (toasts).
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a message.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Message is a single visible notification.
type Message struct {
	ID        string
	Kind      Kind
	Text      string
	CreatedAt time.Time
}

// Event is delivered to subscribers when the message list changes.
type Event struct {
	Shown   *Message // set when a message was added
	Removed string   // id of a removed message
}

// Option configures a Queue.
type Option func(*Queue)

// WithIDFunc overrides message id generation.
func WithIDFunc(fn func() string) Option {
	return func(q *Queue) {
		q.newID = fn
	}
}

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(q *Queue) {
		q.now = now
	}
}

// Queue owns the list of visible messages. Dismissal timers are the
// caller's concern; the queue only adds and removes.
type Queue struct {
	mu       sync.Mutex
	messages []Message
	subs     map[int]func(Event)
	nextSub  int
	newID    func() string
	now      func() time.Time
}

// New creates an empty queue.
func New(opts ...Option) *Queue {
	q := &Queue{
		subs:  make(map[int]func(Event)),
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Show appends a message and returns its id.
func (q *Queue) Show(kind Kind, text string) string {
	q.mu.Lock()
	msg := Message{
		ID:        q.newID(),
		Kind:      kind,
		Text:      text,
		CreatedAt: q.now(),
	}
	q.messages = append(q.messages, msg)
	subs := q.subscribers()
	q.mu.Unlock()

	for _, fn := range subs {
		shown := msg
		fn(Event{Shown: &shown})
	}
	return msg.ID
}

// Success shows a success message.
func (q *Queue) Success(text string) string { return q.Show(KindSuccess, text) }

// Error shows an error message.
func (q *Queue) Error(text string) string { return q.Show(KindError, text) }

// Info shows an informational message.
func (q *Queue) Info(text string) string { return q.Show(KindInfo, text) }

// Remove drops the message with id. Unknown ids are ignored.
func (q *Queue) Remove(id string) {
	q.mu.Lock()
	idx := -1
	for i := range q.messages {
		if q.messages[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		q.mu.Unlock()
		return
	}
	q.messages = append(q.messages[:idx], q.messages[idx+1:]...)
	subs := q.subscribers()
	q.mu.Unlock()

	for _, fn := range subs {
		fn(Event{Removed: id})
	}
}

// Oldest returns the id of the oldest visible message.
func (q *Queue) Oldest() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.messages) == 0 {
		return "", false
	}
	return q.messages[0].ID, true
}

// Messages returns a copy of the visible messages, oldest first.
func (q *Queue) Messages() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Message, len(q.messages))
	copy(out, q.messages)
	return out
}

// Len returns the number of visible messages.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.messages)
}

// Subscribe registers fn for change events and returns a function that
// removes the subscription. fn runs on the goroutine that made the change.
func (q *Queue) Subscribe(fn func(Event)) func() {
	q.mu.Lock()
	defer q.mu.Unlock()
	id := q.nextSub
	q.nextSub++
	q.subs[id] = fn
	return func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		delete(q.subs, id)
	}
}

// subscribers snapshots the subscriber set; callers hold q.mu.
func (q *Queue) subscribers() []func(Event) {
	out := make([]func(Event), 0, len(q.subs))
	for _, fn := range q.subs {
		out = append(out, fn)
	}
	return out
}
