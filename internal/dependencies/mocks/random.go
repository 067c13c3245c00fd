package mocks

import (
	"sync"

	"github.com/mcoot/blockgame-go/internal/dependencies/random"
)

// MockRandom replays queued draws. An empty queue yields 0, so every pick
// lands on the first candidate.
type MockRandom struct {
	mu    sync.Mutex
	queue []int
}

var _ random.Random = (*MockRandom)(nil)

func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn pops the next queued value reduced into [0, n)
func (r *MockRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.queue) == 0 || n <= 0 {
		return 0
	}
	v := r.queue[0]
	r.queue = r.queue[1:]
	return v % n
}

// QueueIntn appends values for upcoming Intn calls
func (r *MockRandom) QueueIntn(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queue = append(r.queue, values...)
}

// Pending reports how many queued values have not been drawn
func (r *MockRandom) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}
