// Package confirm gates destructive actions behind explicit confirmation.
package confirm

import (
	"context"
	"sync"
)

// Remover performs the guarded removal.
type Remover interface {
	Remove(ctx context.Context, id string) error
}

// State is the gate's position in its state machine.
type State int

const (
	// Idle means no confirmation is pending.
	Idle State = iota
	// Awaiting means an id is waiting for confirm or cancel.
	Awaiting
)

func (s State) String() string {
	if s == Awaiting {
		return "awaiting-confirmation"
	}
	return "idle"
}

// Gate holds at most one pending deletion id. A new request while one is
// pending replaces it.
type Gate struct {
	remover Remover

	mu       sync.Mutex
	pending  string
	removing map[string]bool
}

// NewGate creates an idle gate that removes through remover.
func NewGate(remover Remover) *Gate {
	return &Gate{
		remover:  remover,
		removing: make(map[string]bool),
	}
}

// Request marks id as awaiting confirmation.
func (g *Gate) Request(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = id
}

// Pending returns the id awaiting confirmation.
func (g *Gate) Pending() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending, g.pending != ""
}

// State reports whether a confirmation is pending.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == "" {
		return Idle
	}
	return Awaiting
}

// Cancel returns the gate to idle without removing anything.
func (g *Gate) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = ""
}

// Confirm removes the pending id and returns the gate to idle once the
// removal resolves, whether it succeeded or not. It returns the id it
// acted on; when idle, or when that id is already being removed, it does
// nothing and returns "".
//
// A Request for another id that arrives while the removal is in flight
// stays pending afterwards.
func (g *Gate) Confirm(ctx context.Context) (string, error) {
	g.mu.Lock()
	id := g.pending
	if id == "" || g.removing[id] {
		g.mu.Unlock()
		return "", nil
	}
	g.removing[id] = true
	g.mu.Unlock()

	err := g.remover.Remove(ctx, id)

	g.mu.Lock()
	delete(g.removing, id)
	if g.pending == id {
		g.pending = ""
	}
	g.mu.Unlock()
	return id, err
}
