package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamearcade/matchserv/internal/model"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "accounts.txt"))

	accounts, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "accounts.txt"))
	ctx := context.Background()

	want := []model.Account{
		{Name: "alice", Password: "p1"},
		{Name: "bob", Password: "p2"},
	}
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveRewritesFullSet(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "accounts.txt"))
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, []model.Account{
		{Name: "alice", Password: "p1"},
	}))
	require.NoError(t, s.Save(ctx, []model.Account{
		{Name: "alice", Password: "p1"},
		{Name: "bob", Password: "p2"},
	}))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRecordFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.txt")
	s := New(path)

	require.NoError(t, s.Save(context.Background(), []model.Account{
		{Name: "alice", Password: "p1"},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "alice,p1\n", string(data))
}

func TestLoadSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.txt")
	require.NoError(t, os.WriteFile(path, []byte("alice,p1\n\nbob,p2\n"), 0o644))

	got, err := New(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Account{
		{Name: "alice", Password: "p1"},
		{Name: "bob", Password: "p2"},
	}, got)
}

func TestLoadRejectsMalformedRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.txt")
	require.NoError(t, os.WriteFile(path, []byte("alice-no-delimiter\n"), 0o644))

	_, err := New(path).Load(context.Background())
	assert.Error(t, err)
}
