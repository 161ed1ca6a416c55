package game

import (
	"sort"
	"time"

	"github.com/gamearcade/matchserv/internal/model"
)

// Status represents the lifecycle state of a room's match.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
)

// Room owns one two-player match: board, turn state, chat log, and
// spectator set. Rooms are only mutated from the server's event loop, so
// they carry no locking of their own.
type Room struct {
	ID      int64
	Player1 *model.Session
	Player2 *model.Session

	Board  model.Board
	Turn   model.PlayerSlot
	Status Status
	Winner model.PlayerSlot

	Chat       []model.ChatMessage
	spectators map[int64]*model.Session

	CreatedAt time.Time
}

// SlotOf returns the seat held by the given connection, or SlotNone for
// spectators and strangers.
func (r *Room) SlotOf(connID int64) model.PlayerSlot {
	switch connID {
	case r.Player1.ConnID:
		return model.SlotPlayer1
	case r.Player2.ConnID:
		return model.SlotPlayer2
	default:
		return model.SlotNone
	}
}

// IsPlayer reports whether the connection holds one of the two seats.
func (r *Room) IsPlayer(connID int64) bool {
	return r.SlotOf(connID) != model.SlotNone
}

// PlayerAt returns the session seated in the given slot.
func (r *Room) PlayerAt(slot model.PlayerSlot) *model.Session {
	if slot == model.SlotPlayer1 {
		return r.Player1
	}
	return r.Player2
}

// Opponent returns the session seated opposite the given connection, or nil
// if the connection is not a player.
func (r *Room) Opponent(connID int64) *model.Session {
	switch connID {
	case r.Player1.ConnID:
		return r.Player2
	case r.Player2.ConnID:
		return r.Player1
	default:
		return nil
	}
}

// ApplyMove accepts a client-submitted full board. Only turn ownership is
// validated; the grid itself is trusted verbatim. On acceptance the turn
// flips and the win check runs; a completed line finishes the room and all
// further moves are rejected.
func (r *Room) ApplyMove(connID int64, board model.Board) error {
	slot := r.SlotOf(connID)
	if slot == model.SlotNone {
		return model.ErrRoomNotFound
	}
	if r.Status == StatusFinished || slot != r.Turn {
		return model.ErrNotYourTurn
	}

	r.Board = board
	r.Turn = r.Turn.Other()

	if winner, won := r.Board.Winner(); won {
		r.Status = StatusFinished
		r.Winner = winner
	}
	return nil
}

// Restart clears the board. Turn and status are left alone; a finished room
// stays finished.
func (r *Room) Restart() {
	r.Board = model.Board{}
}

// AddChatMessage appends to the room's chat log and returns the entry.
func (r *Room) AddChatMessage(speaker, text string, at time.Time) model.ChatMessage {
	msg := model.ChatMessage{Speaker: speaker, Text: text, SentAt: at}
	r.Chat = append(r.Chat, msg)
	return msg
}

// AddSpectator grants the session read-only standing. Adding a seated
// player or an existing spectator is a no-op.
func (r *Room) AddSpectator(session *model.Session) {
	if r.IsPlayer(session.ConnID) {
		return
	}
	r.spectators[session.ConnID] = session
}

// RemoveSpectator drops the session from the spectator set; absent entries
// are a no-op.
func (r *Room) RemoveSpectator(connID int64) {
	delete(r.spectators, connID)
}

// IsSpectator reports whether the connection is watching this room.
func (r *Room) IsSpectator(connID int64) bool {
	_, ok := r.spectators[connID]
	return ok
}

// Spectators returns the spectator sessions ordered by connection id.
func (r *Room) Spectators() []*model.Session {
	result := make([]*model.Session, 0, len(r.spectators))
	for _, s := range r.spectators {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ConnID < result[j].ConnID })
	return result
}

// Recipients returns every connection that receives room broadcasts: both
// players followed by the spectators.
func (r *Room) Recipients() []int64 {
	ids := []int64{r.Player1.ConnID, r.Player2.ConnID}
	for _, s := range r.Spectators() {
		ids = append(ids, s.ConnID)
	}
	return ids
}

// Label is the human-readable room title used in spectate listings.
func (r *Room) Label() string {
	return r.Player1.Account.Name + " vs " + r.Player2.Account.Name
}
