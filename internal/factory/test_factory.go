package factory

import (
	"time"

	"github.com/gamearcade/matchserv/internal/dependencies/mocks"
	"github.com/gamearcade/matchserv/internal/server"
	"github.com/gamearcade/matchserv/internal/store/memory"
	"github.com/gamearcade/matchserv/internal/testutil"
	"github.com/gamearcade/matchserv/internal/transport"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom

	// Sender captures all outbound frames
	Sender *testutil.RecordingSender
}

// NewTestApp creates an App configured for testing with mocked dependencies
// and a recording sender in place of a real transport.
func NewTestApp() *TestApp {
	accountStore := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	sender := testutil.NewRecordingSender()
	logger := testutil.NopLogger()

	app := newWithDependencies(accountStore, mockClock, mockRandom, logger)

	events := make(chan transport.Event, server.EventBuffer)
	app.Server = server.New(events, app.Accounts, app.Queue, app.Rooms, sender, mockClock, logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		Sender:     sender,
	}
}
