package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gamearcade/matchserv/internal/testutil"
	"github.com/gamearcade/matchserv/internal/transport"
)

func newTestTransport() *Transport {
	events := make(chan transport.Event, 8)
	return New(events, testutil.NopLogger())
}

func register(t *Transport, id int64) *conn {
	c := &conn{
		id:   id,
		send: make(chan string, sendBuffer),
		done: make(chan struct{}),
	}
	t.mu.Lock()
	t.conns[c.id] = c
	t.mu.Unlock()
	return c
}

// teardown mirrors the handler's cleanup sequence.
func teardown(t *Transport, c *conn) {
	t.mu.Lock()
	delete(t.conns, c.id)
	t.mu.Unlock()
	close(c.done)
}

func TestSendToUnknownConnectionIsNoOp(t *testing.T) {
	tr := newTestTransport()

	assert.NotPanics(t, func() { tr.Send(42, "SUCCESS|TURN|Is your turn") })
}

func TestDeliverAfterTeardownDoesNotPanic(t *testing.T) {
	tr := newTestTransport()
	c := register(tr, 1)

	// A sender can resolve the conn, lose the CPU, and only push the frame
	// after the handler has finished tearing the connection down.
	teardown(tr, c)

	assert.NotPanics(t, func() { tr.deliver(c, "SUCCESS|TURN|Is your turn") })
	assert.NotPanics(t, func() { tr.Send(1, "ERROR|TURN|Opponent's turn") })
}

func TestDeliverDropsWhenBufferFull(t *testing.T) {
	tr := newTestTransport()
	c := register(tr, 1)

	for i := 0; i < sendBuffer; i++ {
		tr.deliver(c, "frame")
	}

	assert.NotPanics(t, func() { tr.deliver(c, "one too many") })
	assert.Len(t, c.send, sendBuffer)
}

func TestTeardownIsVisibleToNewSends(t *testing.T) {
	tr := newTestTransport()
	c := register(tr, 1)
	teardown(tr, c)

	tr.Send(1, "frame")
	assert.Empty(t, c.send)
}
