package memory

import (
	"context"
	"sync"

	"github.com/gamearcade/matchserv/internal/model"
	"github.com/gamearcade/matchserv/internal/store"
)

// Store is an in-memory implementation of the account store. It is the
// default backend for standalone runs and the workhorse for tests.
type Store struct {
	mu       sync.RWMutex
	accounts []model.Account
}

// New creates a new in-memory store instance
func New() *Store {
	return &Store{}
}

// Ensure Store implements the interface
var _ store.AccountStore = (*Store)(nil)

func (s *Store) Load(ctx context.Context) ([]model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.Account, len(s.accounts))
	copy(result, s.accounts)
	return result, nil
}

func (s *Store) Save(ctx context.Context, accounts []model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = make([]model.Account, len(accounts))
	copy(s.accounts, accounts)
	return nil
}
