// Package server glues the connection registry, account directory,
// matchmaking queue, and room manager behind a single serialized event loop.
package server

import (
	"context"
	"log/slog"

	"github.com/gamearcade/matchserv/internal/accounts"
	"github.com/gamearcade/matchserv/internal/dependencies/clock"
	"github.com/gamearcade/matchserv/internal/game"
	"github.com/gamearcade/matchserv/internal/matchmaking"
	"github.com/gamearcade/matchserv/internal/protocol"
	"github.com/gamearcade/matchserv/internal/transport"
)

// EventBuffer is the recommended capacity for the transport -> core queue.
const EventBuffer = 1024

// Server consumes transport events strictly in arrival order. That single
// consumer goroutine is the only serialization point: matchmaking pairing,
// turn enforcement, and cascading disconnect cleanup all rely on no other
// event interleaving mid-operation.
type Server struct {
	registry   *Registry
	accounts   *accounts.Directory
	queue      *matchmaking.Queue
	rooms      *game.Manager
	dispatcher *Dispatcher
	sender     transport.Sender
	logger     *slog.Logger

	events chan transport.Event
}

// New wires a server over the given collaborators. The events channel is
// shared with the transport, which pushes into it.
func New(
	events chan transport.Event,
	accounts *accounts.Directory,
	queue *matchmaking.Queue,
	rooms *game.Manager,
	sender transport.Sender,
	clock clock.Clock,
	logger *slog.Logger,
) *Server {
	registry := NewRegistry()
	return &Server{
		registry:   registry,
		accounts:   accounts,
		queue:      queue,
		rooms:      rooms,
		dispatcher: NewDispatcher(registry, accounts, queue, rooms, sender, clock, logger),
		sender:     sender,
		logger:     logger,
		events:     events,
	}
}

// Events returns the channel the transport pushes into.
func (s *Server) Events() chan<- transport.Event {
	return s.events
}

// Run drains the event channel until the context is cancelled. It is the
// only goroutine that mutates core state.
func (s *Server) Run(ctx context.Context) {
	s.logger.Info("event loop started")
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("event loop stopped")
			return
		case ev := <-s.events:
			s.HandleEvent(ctx, ev)
		}
	}
}

// HandleEvent processes one transport event synchronously. Outside of Run
// it must only be called from a single goroutine.
func (s *Server) HandleEvent(ctx context.Context, ev transport.Event) {
	switch ev.Type {
	case transport.EventConnect:
		s.handleConnect(ev.ConnID)
	case transport.EventData:
		s.dispatcher.Dispatch(ctx, ev.ConnID, ev.Data)
	case transport.EventDisconnect:
		s.handleDisconnect(ev.ConnID)
	}
}

func (s *Server) handleConnect(connID int64) {
	s.registry.OnConnect(connID)
	s.logger.Info("connection", slog.Int64("conn_id", connID))
}

// handleDisconnect performs the cascading cleanup: session, queue entry,
// seated room (with opponent notification), and spectator memberships.
// Every step is idempotent; operating on an already-absent entity is a
// no-op.
func (s *Server) handleDisconnect(connID int64) {
	s.logger.Info("disconnection", slog.Int64("conn_id", connID))

	session := s.registry.OnDisconnect(connID)
	if session == nil {
		return
	}

	s.queue.Remove(connID)

	if room, ok := s.rooms.FindByParticipant(connID); ok {
		opponent := room.Opponent(connID)
		s.sender.Send(opponent.ConnID,
			protocol.Failure(protocol.TagFindMatch, "The other player has disconnected").Encode())
		s.rooms.Destroy(room)
	}

	// Spectator standing is dropped silently, no notification to players.
	s.rooms.DropSpectator(connID)
}

// Registry exposes the connection registry for observers and tests.
func (s *Server) Registry() *Registry {
	return s.registry
}
