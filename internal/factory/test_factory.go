package factory

import (
	"time"

	"github.com/mcoot/minesweeper/internal/dependencies/mocks"
	"github.com/mcoot/minesweeper/internal/services/board"
	"github.com/mcoot/minesweeper/internal/services/timer"
	"github.com/mcoot/minesweeper/internal/storage/memory"
	"github.com/mcoot/minesweeper/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	return NewTestAppWithConfig(board.DefaultConfig())
}

// NewTestAppWithConfig creates a mocked App with the given board policy
func NewTestAppWithConfig(boardCfg board.Config) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, boardCfg, timer.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
