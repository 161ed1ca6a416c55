// Package matchmaking implements the FIFO queue of logged-in sessions
// waiting for an opponent.
package matchmaking

import (
	"github.com/gamearcade/matchserv/internal/model"
)

// Queue is a FIFO waiting list keyed by connection id. A session appears at
// most once; pairing pops the two longest-waiting entries. The queue never
// blocks and is only touched from the server's event loop.
type Queue struct {
	entries []*model.Session
	queued  map[int64]bool
}

// New creates an empty queue
func New() *Queue {
	return &Queue{
		queued: make(map[int64]bool),
	}
}

// Enqueue appends a session unless it is already waiting.
func (q *Queue) Enqueue(session *model.Session) error {
	if q.queued[session.ConnID] {
		return model.ErrAlreadyQueued
	}
	q.entries = append(q.entries, session)
	q.queued[session.ConnID] = true
	return nil
}

// DequeuePair removes and returns the two longest-waiting sessions in
// arrival order. It returns ErrNotEnoughPlayers, leaving the queue
// unchanged, when fewer than two sessions are waiting.
func (q *Queue) DequeuePair() (*model.Session, *model.Session, error) {
	if len(q.entries) < 2 {
		return nil, nil, model.ErrNotEnoughPlayers
	}
	first, second := q.entries[0], q.entries[1]
	q.entries = q.entries[2:]
	delete(q.queued, first.ConnID)
	delete(q.queued, second.ConnID)
	return first, second, nil
}

// Remove drops the session with the given connection id. Removing an absent
// session is a no-op.
func (q *Queue) Remove(connID int64) {
	if !q.queued[connID] {
		return
	}
	delete(q.queued, connID)
	for i, s := range q.entries {
		if s.ConnID == connID {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			break
		}
	}
}

// Contains reports whether the connection is waiting in the queue.
func (q *Queue) Contains(connID int64) bool {
	return q.queued[connID]
}

// Len returns the number of waiting sessions.
func (q *Queue) Len() int {
	return len(q.entries)
}
