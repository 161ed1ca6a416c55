package file

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gamearcade/matchserv/internal/model"
	"github.com/gamearcade/matchserv/internal/store"
)

// Store persists accounts as a plain text file, one "name,password" record
// per line. A missing file is an empty directory, not an error, so a fresh
// deployment starts cleanly.
type Store struct {
	path string
}

// New creates a file store writing to the given path
func New(path string) *Store {
	return &Store{path: path}
}

// Ensure Store implements the interface
var _ store.AccountStore = (*Store)(nil)

func (s *Store) Load(ctx context.Context) ([]model.Account, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading account store: %w", err)
	}

	var accounts []model.Account
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		name, password, ok := strings.Cut(line, ",")
		if !ok {
			return nil, fmt.Errorf("malformed account record %q", line)
		}
		accounts = append(accounts, model.Account{Name: name, Password: password})
	}
	return accounts, nil
}

func (s *Store) Save(ctx context.Context, accounts []model.Account) error {
	var sb strings.Builder
	for _, a := range accounts {
		sb.WriteString(a.Name)
		sb.WriteString(",")
		sb.WriteString(a.Password)
		sb.WriteString("\n")
	}

	// Write-then-rename so a crash mid-save cannot truncate the store.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("writing account store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing account store: %w", err)
	}
	return nil
}
