// Package ws provides the websocket transport: it upgrades HTTP requests,
// assigns connection ids, and turns socket traffic into ordered events for
// the core server.
package ws

import (
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gamearcade/matchserv/internal/transport"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024

	// sendBuffer is the per-connection outbound queue; a client that falls
	// this far behind starts losing frames rather than stalling the core.
	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Transport owns all live websocket connections and implements
// transport.Sender for the core.
type Transport struct {
	events chan<- transport.Event
	logger *slog.Logger

	nextID atomic.Int64

	mu    sync.RWMutex
	conns map[int64]*conn
}

type conn struct {
	id   int64
	ws   *websocket.Conn
	send chan string
	done chan struct{}
}

// New creates a transport pushing events into the given channel
func New(events chan<- transport.Event, logger *slog.Logger) *Transport {
	return &Transport{
		events: events,
		logger: logger,
		conns:  make(map[int64]*conn),
	}
}

// Ensure Transport implements the sender contract
var _ transport.Sender = (*Transport)(nil)

// Handler upgrades an HTTP request and serves the connection until it
// closes. Connect and disconnect events bracket the data events, in order.
func (t *Transport) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
			return
		}

		c := &conn{
			id:   t.nextID.Add(1),
			ws:   ws,
			send: make(chan string, sendBuffer),
			done: make(chan struct{}),
		}

		t.mu.Lock()
		t.conns[c.id] = c
		t.mu.Unlock()

		t.events <- transport.Event{Type: transport.EventConnect, ConnID: c.id}

		go t.writePump(c)
		t.readPump(c)

		// The send channel is never closed: a sender that resolved the conn
		// just before this teardown may still push into it. Closing done
		// stops the write pump instead; leftover frames are dropped with the
		// channel.
		t.mu.Lock()
		delete(t.conns, c.id)
		t.mu.Unlock()
		close(c.done)

		t.events <- transport.Event{Type: transport.EventDisconnect, ConnID: c.id}
	}
}

// Send enqueues a frame for the connection. Unknown connections and full
// buffers drop the frame; the core never blocks on a slow client.
func (t *Transport) Send(connID int64, frame string) {
	t.mu.RLock()
	c, ok := t.conns[connID]
	t.mu.RUnlock()
	if !ok {
		return
	}

	t.deliver(c, frame)
}

// deliver enqueues without blocking. Safe to call on a conn that has
// already been torn down.
func (t *Transport) deliver(c *conn, frame string) {
	select {
	case c.send <- frame:
	default:
		t.logger.Warn("dropping frame - client buffer full", slog.Int64("conn_id", c.id))
	}
}

func (t *Transport) readPump(c *conn) {
	defer c.ws.Close()

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				t.logger.Warn("websocket read error",
					slog.Int64("conn_id", c.id),
					slog.String("error", err.Error()),
				)
			}
			return
		}

		t.events <- transport.Event{Type: transport.EventData, ConnID: c.id, Data: string(message)}
	}
}

func (t *Transport) writePump(c *conn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case frame := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
