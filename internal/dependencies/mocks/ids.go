package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/blockgame-go/internal/dependencies/ids"
)

// MockIDs is a mock implementation of ids.Generator for testing
type MockIDs struct {
	// Queued IDs are returned first, then "id-1", "id-2", ...
	Queued []string
	issued int
	mu     sync.Mutex
}

// Ensure MockIDs implements Generator
var _ ids.Generator = (*MockIDs)(nil)

// NewMockIDs creates a new MockIDs
func NewMockIDs() *MockIDs {
	return &MockIDs{}
}

// NewID returns the next queued ID or a sequential one
func (g *MockIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.issued++
	if len(g.Queued) > 0 {
		id := g.Queued[0]
		g.Queued = g.Queued[1:]
		return id
	}
	return fmt.Sprintf("id-%d", g.issued)
}

// QueueIDs adds IDs to be returned in order
func (g *MockIDs) QueueIDs(values ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Queued = append(g.Queued, values...)
}
