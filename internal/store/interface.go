package store

import (
	"context"

	"github.com/gamearcade/matchserv/internal/model"
)

// AccountStore is the persistence collaborator for the account directory.
// Load returns the full set in registration order; Save rewrites the full
// current set. Format and location are the implementation's concern.
type AccountStore interface {
	Load(ctx context.Context) ([]model.Account, error)
	Save(ctx context.Context, accounts []model.Account) error
}
