// Package game implements the game room state machine and its manager.
package game

import (
	"log/slog"
	"sort"

	"github.com/gamearcade/matchserv/internal/dependencies/clock"
	"github.com/gamearcade/matchserv/internal/dependencies/random"
	"github.com/gamearcade/matchserv/internal/model"
)

// Manager creates and destroys rooms and resolves lookups by room id or by
// seated participant. Room ids are strictly increasing and never reused.
type Manager struct {
	clock  clock.Clock
	random random.Random
	logger *slog.Logger

	nextID   int64
	rooms    map[int64]*Room
	byPlayer map[int64]*Room
}

// NewManager creates a new room manager
func NewManager(clock clock.Clock, random random.Random, logger *slog.Logger) *Manager {
	return &Manager{
		clock:    clock,
		random:   random,
		logger:   logger,
		nextID:   1,
		rooms:    make(map[int64]*Room),
		byPlayer: make(map[int64]*Room),
	}
}

// CreateRoom seats the two sessions in a fresh room with an empty board.
// Which seat moves first is a uniform random choice.
func (m *Manager) CreateRoom(a, b *model.Session) *Room {
	turn := model.SlotPlayer2
	if m.random.Intn(2) == 1 {
		turn = model.SlotPlayer1
	}

	room := &Room{
		ID:         m.nextID,
		Player1:    a,
		Player2:    b,
		Turn:       turn,
		Status:     StatusInProgress,
		spectators: make(map[int64]*model.Session),
		CreatedAt:  m.clock.Now(),
	}
	m.nextID++

	m.rooms[room.ID] = room
	m.byPlayer[a.ConnID] = room
	m.byPlayer[b.ConnID] = room

	m.logger.Info("room created",
		slog.Int64("room_id", room.ID),
		slog.String("player1", a.Account.Name),
		slog.String("player2", b.Account.Name),
	)
	return room
}

// FindByParticipant resolves the room in which the connection holds a seat.
// Spectating does not count as participating.
func (m *Manager) FindByParticipant(connID int64) (*Room, bool) {
	room, ok := m.byPlayer[connID]
	return room, ok
}

// FindByID resolves a room by id. The only by-id lookup on the wire is a
// spectate request, so a miss is ErrSpectateTargetNotFound.
func (m *Manager) FindByID(roomID int64) (*Room, error) {
	room, ok := m.rooms[roomID]
	if !ok {
		return nil, model.ErrSpectateTargetNotFound
	}
	return room, nil
}

// Destroy removes the room from the manager; subsequent lookups fail. Safe
// to call on an already-destroyed room.
func (m *Manager) Destroy(room *Room) {
	if _, ok := m.rooms[room.ID]; !ok {
		return
	}
	delete(m.rooms, room.ID)
	delete(m.byPlayer, room.Player1.ConnID)
	delete(m.byPlayer, room.Player2.ConnID)

	m.logger.Info("room destroyed", slog.Int64("room_id", room.ID))
}

// DropSpectator removes the connection from every room it is watching.
func (m *Manager) DropSpectator(connID int64) {
	for _, room := range m.rooms {
		room.RemoveSpectator(connID)
	}
}

// ListRooms returns all live rooms ordered by id, for spectate listings and
// external observers.
func (m *Manager) ListRooms() []*Room {
	result := make([]*Room, 0, len(m.rooms))
	for _, room := range m.rooms {
		result = append(result, room)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Count returns the number of live rooms.
func (m *Manager) Count() int {
	return len(m.rooms)
}
