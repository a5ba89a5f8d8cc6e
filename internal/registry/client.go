// Package registry talks to the external domain registry. The workflow uses
// it for exactly two things: asking what state a name is in, and requesting
// deletion of a name that exists there. Both calls are best-effort from the
// workflow's point of view.
package registry

import (
	"context"
	"strings"
	"sync"
	"time"
)

// State is the registry's view of a name.
type State string

const (
	// StateUnknown means the registry has never provisioned this name.
	StateUnknown   State = "unknown"
	StateDNSNeeded State = "dns needed"
	StateReady     State = "ready"
	StateOnHold    State = "on hold"
	StateDeleted   State = "deleted"
)

// Client queries and mutates the external registry. Implementations own their
// retry and timeout policy; the workflow treats failures as log-and-continue.
type Client interface {
	State(ctx context.Context, name string) (State, error)
	Delete(ctx context.Context, name string) error
}

// MockClient is a deterministic registry for dev and tests. It uses a
// configurable latency to mimic real-world calls.
type MockClient struct {
	Latency time.Duration

	mu      sync.Mutex
	states  map[string]State
	deleted []string
}

func NewMockClient(latency time.Duration) *MockClient {
	return &MockClient{Latency: latency, states: map[string]State{}}
}

// SetState seeds the registry state for a name.
func (c *MockClient) SetState(name string, state State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states[strings.ToLower(name)] = state
}

func (c *MockClient) State(_ context.Context, name string) (State, error) {
	time.Sleep(c.Latency)
	c.mu.Lock()
	defer c.mu.Unlock()
	if state, ok := c.states[strings.ToLower(name)]; ok {
		return state, nil
	}
	return StateUnknown, nil
}

func (c *MockClient) Delete(_ context.Context, name string) error {
	time.Sleep(c.Latency)
	c.mu.Lock()
	defer c.mu.Unlock()
	key := strings.ToLower(name)
	c.states[key] = StateDeleted
	c.deleted = append(c.deleted, key)
	return nil
}

// Deleted lists the names deletion was requested for. Test helper.
func (c *MockClient) Deleted() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.deleted))
	copy(out, c.deleted)
	return out
}
