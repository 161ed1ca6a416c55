// Package accounts owns the set of registered accounts, backed by an
// injected persistence store.
package accounts

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gamearcade/matchserv/internal/model"
	"github.com/gamearcade/matchserv/internal/store"
)

// Directory holds all registered accounts. Lookup is by exact name match:
// names are case-sensitive and never trimmed or normalized, so any mismatch
// is a distinct account.
type Directory struct {
	store  store.AccountStore
	logger *slog.Logger

	ordered []model.Account
	byName  map[string]int
}

// New creates an empty directory. Call Load before serving traffic.
func New(store store.AccountStore, logger *slog.Logger) *Directory {
	return &Directory{
		store:  store,
		logger: logger,
		byName: make(map[string]int),
	}
}

// Load rebuilds the in-memory set from the store. An empty or missing store
// yields an empty directory rather than a startup failure.
func (d *Directory) Load(ctx context.Context) error {
	accounts, err := d.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading accounts: %w", err)
	}

	d.ordered = accounts
	d.byName = make(map[string]int, len(accounts))
	for i, a := range accounts {
		d.byName[a.Name] = i
	}

	d.logger.Info("account directory loaded", slog.Int("accounts", len(accounts)))
	return nil
}

// Register creates a new account and flushes the full set through the
// store. The flush is synchronous so a login immediately after registration
// always sees the account.
func (d *Directory) Register(ctx context.Context, name, password string) (model.Account, error) {
	if _, exists := d.byName[name]; exists {
		return model.Account{}, model.ErrUserAlreadyExists
	}

	account := model.Account{Name: name, Password: password}
	d.ordered = append(d.ordered, account)
	d.byName[name] = len(d.ordered) - 1

	if err := d.store.Save(ctx, d.ordered); err != nil {
		d.logger.Error("failed to persist accounts",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return model.Account{}, fmt.Errorf("saving accounts: %w", err)
	}

	d.logger.Info("account registered", slog.String("name", name))
	return account, nil
}

// Authenticate checks credentials by equality against the stored password.
func (d *Directory) Authenticate(name, password string) (model.Account, error) {
	idx, ok := d.byName[name]
	if !ok {
		return model.Account{}, model.ErrUserNotFound
	}
	account := d.ordered[idx]
	if account.Password != password {
		return model.Account{}, model.ErrWrongPassword
	}
	return account, nil
}

// Exists reports whether an account with this exact name is registered.
func (d *Directory) Exists(name string) bool {
	_, ok := d.byName[name]
	return ok
}

// Count returns the number of registered accounts.
func (d *Directory) Count() int {
	return len(d.ordered)
}
