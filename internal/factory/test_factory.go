package factory

import (
	"time"

	"github.com/mcoot/blockgame-go/internal/dependencies/mocks"
	"github.com/mcoot/blockgame-go/internal/storage"
	"github.com/mcoot/blockgame-go/internal/storage/memory"
	"github.com/mcoot/blockgame-go/internal/testutil"
)

// TestApp is an App wired to controllable clock, random and ID sources
type TestApp struct {
	*App

	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	MockIDs    *mocks.MockIDs
}

// NewTestApp builds a TestApp on in-memory storage
func NewTestApp() *TestApp {
	return NewTestAppWithStorage(memory.New())
}

// NewTestAppWithStorage builds a TestApp on the given store. The clock
// starts at 2024-01-01 12:00 UTC and the random queue starts empty, so
// every draw returns zero until values are queued.
func NewTestAppWithStorage(store storage.Storage) *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockIDs := mocks.NewMockIDs()

	return &TestApp{
		App:        newWithDependencies(store, mockClock, mockRandom, mockIDs, testutil.NopLogger()),
		MockClock:  mockClock,
		MockRandom: mockRandom,
		MockIDs:    mockIDs,
	}
}
