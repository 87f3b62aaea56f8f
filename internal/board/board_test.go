package board_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/nibzard/taskboard/internal/board"
	"github.com/nibzard/taskboard/internal/notify"
	"github.com/nibzard/taskboard/internal/task"
	"github.com/nibzard/taskboard/internal/testutil"
)

func lastToast(t *testing.T, b *board.Board) notify.Message {
	t.Helper()
	msgs := b.Toasts.Messages()
	if len(msgs) == 0 {
		t.Fatal("expected a toast")
	}
	return msgs[len(msgs)-1]
}

func TestCreateSuccessShowsToast(t *testing.T) {
	remote := testutil.NewFakeRemote()
	b := board.New(remote)

	fields, err := b.Create(context.Background(), task.CreateInput{Title: "Buy milk"})
	if err != nil || fields != nil {
		t.Fatalf("Create: %v, %v", fields, err)
	}
	msg := lastToast(t, b)
	if msg.Kind != notify.KindSuccess || msg.Text != board.MsgCreated {
		t.Errorf("toast: got %+v", msg)
	}
	if b.Store.Len() != 1 {
		t.Errorf("Len: got %d, want 1", b.Store.Len())
	}
}

func TestCreateValidationSkipsToasts(t *testing.T) {
	remote := testutil.NewFakeRemote()
	b := board.New(remote)

	fields, err := b.Create(context.Background(), task.CreateInput{Title: ""})
	if err == nil || fields["title"] != "Title is required" {
		t.Fatalf("Create: got %v, %v", fields, err)
	}
	if b.Toasts.Len() != 0 {
		t.Errorf("toasts: got %d, want 0", b.Toasts.Len())
	}
	if remote.CreateCalls != 0 {
		t.Errorf("CreateCalls: got %d, want 0", remote.CreateCalls)
	}
}

func TestFailureToastsUseDetailOrFallback(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"detail", &task.APIError{Status: 500, Message: "Failed to create task: boom"}, "Failed to create task: boom"},
		{"no detail", errors.New("connection refused"), board.FallbackCreate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := testutil.NewFakeRemote()
			remote.CreateErr = tt.err
			b := board.New(remote)

			if _, err := b.Create(context.Background(), task.CreateInput{Title: "x"}); err == nil {
				t.Fatal("expected error")
			}
			msg := lastToast(t, b)
			if msg.Kind != notify.KindError || msg.Text != tt.want {
				t.Errorf("toast: got %+v, want %q", msg, tt.want)
			}
		})
	}
}

func TestLoadFailureToast(t *testing.T) {
	remote := testutil.NewFakeRemote()
	remote.ListErr = errors.New("dial tcp: refused")
	b := board.New(remote)

	if err := b.Load(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if msg := lastToast(t, b); msg.Text != board.FallbackLoad {
		t.Errorf("toast: got %q", msg.Text)
	}
}

func TestUpdateToasts(t *testing.T) {
	remote := testutil.NewFakeRemote()
	remote.AddTask("a", "old", task.CategoryWork)
	b := board.New(remote)
	if err := b.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	if _, err := b.Update(context.Background(), "a", task.UpdateInput{Title: task.String("new")}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if msg := lastToast(t, b); msg.Text != board.MsgUpdated {
		t.Errorf("toast: got %q", msg.Text)
	}

	if _, err := b.Update(context.Background(), "zzz", task.UpdateInput{Title: task.String("new")}); err == nil {
		t.Fatal("expected not found")
	}
	if msg := lastToast(t, b); msg.Text != "Task not found" {
		t.Errorf("toast: got %q", msg.Text)
	}
}

func TestDeleteFlow(t *testing.T) {
	remote := testutil.NewFakeRemote()
	remote.AddTask("1", "Buy milk", task.CategoryPersonal)
	b := board.New(remote)
	if err := b.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Confirm without a request does nothing.
	if err := b.ConfirmDelete(context.Background()); err != nil {
		t.Fatal(err)
	}
	if remote.DeleteCalls != 0 || b.Toasts.Len() != 0 {
		t.Errorf("idle confirm had effects: calls=%d toasts=%d", remote.DeleteCalls, b.Toasts.Len())
	}

	b.RequestDelete("1")
	b.CancelDelete()
	if err := b.ConfirmDelete(context.Background()); err != nil {
		t.Fatal(err)
	}
	if b.Store.Len() != 1 {
		t.Fatal("cancelled delete removed the task")
	}

	b.RequestDelete("1")
	if err := b.ConfirmDelete(context.Background()); err != nil {
		t.Fatalf("ConfirmDelete: %v", err)
	}
	if b.Store.Len() != 0 {
		t.Errorf("Len: got %d, want 0", b.Store.Len())
	}
	if msg := lastToast(t, b); msg.Text != board.MsgDeleted {
		t.Errorf("toast: got %q", msg.Text)
	}
	if _, pending := b.Deletion.Pending(); pending {
		t.Error("gate should be idle")
	}
}

func TestDeleteFailureToast(t *testing.T) {
	remote := testutil.NewFakeRemote()
	remote.AddTask("1", "x", task.CategoryWork)
	remote.DeleteErr = &task.APIError{Status: 500}
	b := board.New(remote)
	if err := b.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	b.RequestDelete("1")
	if err := b.ConfirmDelete(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if msg := lastToast(t, b); msg.Kind != notify.KindError || msg.Text != board.FallbackDelete {
		t.Errorf("toast: got %+v", msg)
	}
	if b.Store.Len() != 1 {
		t.Error("failed delete removed the task locally")
	}
	if _, pending := b.Deletion.Pending(); pending {
		t.Error("gate should return to idle after a failed delete")
	}
}

func TestGroupsReflectStore(t *testing.T) {
	remote := testutil.NewFakeRemote()
	remote.AddTask("1", "a", task.CategoryUrgent)
	remote.AddTask("2", "b", task.CategoryWork)
	b := board.New(remote)
	if err := b.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	g := b.Groups()
	if len(g.Urgent) != 1 || len(g.Work) != 1 || len(g.Personal) != 0 {
		t.Errorf("groups: got %+v", g)
	}
}

func TestWithQueueSharesNotifications(t *testing.T) {
	n := 0
	q := notify.New(notify.WithIDFunc(func() string {
		n++
		return fmt.Sprintf("toast-%d", n)
	}))
	b := board.New(testutil.NewFakeRemote(), board.WithQueue(q))

	if _, err := b.Create(context.Background(), task.CreateInput{Title: "Buy milk"}); err != nil {
		t.Fatal(err)
	}
	msgs := q.Messages()
	if len(msgs) != 1 || msgs[0].ID != "toast-1" || msgs[0].Text != board.MsgCreated {
		t.Fatalf("queue messages = %+v", msgs)
	}
}
