package factory

import (
	"time"

	"github.com/rpswager/rpswager/internal/dependencies/mocks"
	ledgermemory "github.com/rpswager/rpswager/internal/ledger/memory"
	"github.com/rpswager/rpswager/internal/services/auth"
	"github.com/rpswager/rpswager/internal/services/match"
	"github.com/rpswager/rpswager/internal/storage/memory"
	"github.com/rpswager/rpswager/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom

	// Concrete backends for direct inspection
	MemoryStorage *memory.Storage
	MemoryLedger  *ledgermemory.Ledger
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	custody := ledgermemory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(
		store,
		custody,
		mockClock,
		mockRandom,
		match.DefaultConfig(),
		auth.DefaultConfig(),
		testutil.NopLogger(),
	)

	return &TestApp{
		App:           app,
		MockClock:     mockClock,
		MockRandom:    mockRandom,
		MemoryStorage: store,
		MemoryLedger:  custody,
	}
}
