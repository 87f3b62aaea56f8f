package notify

import (
	"fmt"
	"testing"
	"time"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("m%d", n)
	}
}

func TestShowAppendsInOrder(t *testing.T) {
	q := New(WithIDFunc(sequentialIDs()))

	first := q.Success("Task created successfully!")
	second := q.Error("Failed to delete task")

	if first != "m1" || second != "m2" {
		t.Fatalf("ids: got %q, %q", first, second)
	}
	msgs := q.Messages()
	if len(msgs) != 2 {
		t.Fatalf("len: got %d, want 2", len(msgs))
	}
	if msgs[0].Kind != KindSuccess || msgs[1].Kind != KindError {
		t.Errorf("kinds: got %s, %s", msgs[0].Kind, msgs[1].Kind)
	}
	if msgs[1].Text != "Failed to delete task" {
		t.Errorf("text: got %q", msgs[1].Text)
	}
}

func TestShowDefaultIDsAreUnique(t *testing.T) {
	q := New()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := q.Info("hello")
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestRemove(t *testing.T) {
	q := New(WithIDFunc(sequentialIDs()))
	a := q.Info("a")
	b := q.Info("b")
	c := q.Info("c")

	q.Remove(b)
	msgs := q.Messages()
	if len(msgs) != 2 || msgs[0].ID != a || msgs[1].ID != c {
		t.Errorf("after remove: got %+v", msgs)
	}

	// Unknown and repeated ids are no-ops.
	q.Remove("missing")
	q.Remove(b)
	if q.Len() != 2 {
		t.Errorf("len: got %d, want 2", q.Len())
	}
}

func TestOldest(t *testing.T) {
	q := New(WithIDFunc(sequentialIDs()))
	if _, ok := q.Oldest(); ok {
		t.Error("empty queue should have no oldest message")
	}
	q.Info("a")
	q.Info("b")
	if id, _ := q.Oldest(); id != "m1" {
		t.Errorf("oldest: got %q, want m1", id)
	}
}

func TestSubscribe(t *testing.T) {
	q := New(WithIDFunc(sequentialIDs()))
	var events []Event
	unsubscribe := q.Subscribe(func(e Event) {
		events = append(events, e)
	})

	id := q.Success("ok")
	q.Remove("nope")
	q.Remove(id)
	unsubscribe()
	q.Info("unseen")

	if len(events) != 2 {
		t.Fatalf("events: got %d, want 2", len(events))
	}
	if events[0].Shown == nil || events[0].Shown.ID != id {
		t.Errorf("first event: got %+v", events[0])
	}
	if events[1].Removed != id {
		t.Errorf("second event: got %+v", events[1])
	}
}

func TestCreatedAtUsesClock(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	q := New(WithClock(func() time.Time { return fixed }))
	q.Info("x")
	if got := q.Messages()[0].CreatedAt; !got.Equal(fixed) {
		t.Errorf("CreatedAt: got %v, want %v", got, fixed)
	}
}

func TestMessagesReturnsCopy(t *testing.T) {
	q := New()
	q.Info("x")
	msgs := q.Messages()
	msgs[0].Text = "changed"
	if q.Messages()[0].Text != "x" {
		t.Error("Messages should return a copy")
	}
}
