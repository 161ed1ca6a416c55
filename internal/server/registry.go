package server

import (
	"sort"
	"time"

	"github.com/gamearcade/matchserv/internal/model"
)

// Registry tracks live connection ids and the sessions bound to them. It
// holds no game state; the Server cascades into the queue and room manager
// when a connection goes away.
type Registry struct {
	connected map[int64]bool
	sessions  map[int64]*model.Session
	byAccount map[string]int64
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		connected: make(map[int64]bool),
		sessions:  make(map[int64]*model.Session),
		byAccount: make(map[string]int64),
	}
}

// OnConnect records a new anonymous connection.
func (r *Registry) OnConnect(connID int64) {
	r.connected[connID] = true
}

// OnDisconnect removes the connection and returns the session it held, if
// any, so the caller can cascade cleanup. Idempotent.
func (r *Registry) OnDisconnect(connID int64) *model.Session {
	delete(r.connected, connID)
	session, ok := r.sessions[connID]
	if !ok {
		return nil
	}
	delete(r.sessions, connID)
	delete(r.byAccount, session.Account.Name)
	return session
}

// Bind creates a session for the connection. A connection holds at most one
// session, and an account may be live on at most one connection.
func (r *Registry) Bind(connID int64, account model.Account, at time.Time) (*model.Session, error) {
	if _, ok := r.sessions[connID]; ok {
		return nil, model.ErrAlreadyLoggedIn
	}
	if _, ok := r.byAccount[account.Name]; ok {
		return nil, model.ErrAlreadyLoggedIn
	}

	session := &model.Session{
		ConnID:     connID,
		Account:    account,
		LoggedInAt: at,
	}
	r.sessions[connID] = session
	r.byAccount[account.Name] = connID
	return session, nil
}

// IsConnected reports whether the connection id is live.
func (r *Registry) IsConnected(connID int64) bool {
	return r.connected[connID]
}

// IsLoggedIn reports whether the connection holds a session.
func (r *Registry) IsLoggedIn(connID int64) bool {
	_, ok := r.sessions[connID]
	return ok
}

// SessionFor returns the session bound to the connection, if any.
func (r *Registry) SessionFor(connID int64) (*model.Session, bool) {
	session, ok := r.sessions[connID]
	return session, ok
}

// ListConnectedIDs returns all live connection ids in ascending order, for
// external observers.
func (r *Registry) ListConnectedIDs() []int64 {
	ids := make([]int64, 0, len(r.connected))
	for id := range r.connected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SessionCount returns the number of logged-in connections.
func (r *Registry) SessionCount() int {
	return len(r.sessions)
}
