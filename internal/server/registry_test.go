package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamearcade/matchserv/internal/model"
)

var bindTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestRegistryBindOnePerConnection(t *testing.T) {
	r := NewRegistry()
	r.OnConnect(1)

	_, err := r.Bind(1, model.Account{Name: "alice", Password: "p1"}, bindTime)
	require.NoError(t, err)

	_, err = r.Bind(1, model.Account{Name: "bob", Password: "p2"}, bindTime)
	assert.ErrorIs(t, err, model.ErrAlreadyLoggedIn)
}

func TestRegistryBindOneConnectionPerAccount(t *testing.T) {
	r := NewRegistry()
	r.OnConnect(1)
	r.OnConnect(2)

	_, err := r.Bind(1, model.Account{Name: "alice", Password: "p1"}, bindTime)
	require.NoError(t, err)

	_, err = r.Bind(2, model.Account{Name: "alice", Password: "p1"}, bindTime)
	assert.ErrorIs(t, err, model.ErrAlreadyLoggedIn)
}

func TestRegistryDisconnectFreesAccount(t *testing.T) {
	r := NewRegistry()
	r.OnConnect(1)
	_, err := r.Bind(1, model.Account{Name: "alice", Password: "p1"}, bindTime)
	require.NoError(t, err)

	session := r.OnDisconnect(1)
	require.NotNil(t, session)
	assert.Equal(t, "alice", session.Account.Name)
	assert.False(t, r.IsConnected(1))

	r.OnConnect(2)
	_, err = r.Bind(2, model.Account{Name: "alice", Password: "p1"}, bindTime)
	assert.NoError(t, err)
}

func TestRegistryDisconnectAnonymous(t *testing.T) {
	r := NewRegistry()
	r.OnConnect(1)

	assert.Nil(t, r.OnDisconnect(1))
	assert.Nil(t, r.OnDisconnect(1))
}

func TestRegistryListConnectedIDsOrdered(t *testing.T) {
	r := NewRegistry()
	r.OnConnect(3)
	r.OnConnect(1)
	r.OnConnect(2)

	assert.Equal(t, []int64{1, 2, 3}, r.ListConnectedIDs())
}
