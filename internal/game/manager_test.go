package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/gamearcade/matchserv/internal/dependencies/mocks"
	"github.com/gamearcade/matchserv/internal/model"
	"github.com/gamearcade/matchserv/internal/testutil"
)

type ManagerSuite struct {
	suite.Suite
	manager *Manager
	random  *mocks.MockRandom
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	clock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.manager = NewManager(clock, s.random, testutil.NopLogger())
}

func (s *ManagerSuite) session(connID int64, name string) *model.Session {
	return &model.Session{ConnID: connID, Account: model.Account{Name: name}}
}

func (s *ManagerSuite) TestRoomIDsStrictlyIncrease() {
	first := s.manager.CreateRoom(s.session(1, "alice"), s.session(2, "bob"))
	second := s.manager.CreateRoom(s.session(3, "carol"), s.session(4, "dave"))

	s.Equal(int64(1), first.ID)
	s.Equal(int64(2), second.ID)

	// Destroying a room never frees its id for reuse.
	s.manager.Destroy(second)
	third := s.manager.CreateRoom(s.session(5, "erin"), s.session(6, "frank"))
	s.Equal(int64(3), third.ID)
}

func (s *ManagerSuite) TestFirstTurnFollowsRandomChoice() {
	s.random.QueueIntn(1, 0)

	first := s.manager.CreateRoom(s.session(1, "alice"), s.session(2, "bob"))
	s.Equal(model.SlotPlayer1, first.Turn)

	second := s.manager.CreateRoom(s.session(3, "carol"), s.session(4, "dave"))
	s.Equal(model.SlotPlayer2, second.Turn)
}

func (s *ManagerSuite) TestFindByParticipantResolvesPlayers() {
	alice := s.session(1, "alice")
	bob := s.session(2, "bob")
	room := s.manager.CreateRoom(alice, bob)

	found, ok := s.manager.FindByParticipant(alice.ConnID)
	s.Require().True(ok)
	s.Same(room, found)

	found, ok = s.manager.FindByParticipant(bob.ConnID)
	s.Require().True(ok)
	s.Same(room, found)

	_, ok = s.manager.FindByParticipant(99)
	s.False(ok)
}

func (s *ManagerSuite) TestFindByIDResolvesLiveRoom() {
	room := s.manager.CreateRoom(s.session(1, "alice"), s.session(2, "bob"))

	found, err := s.manager.FindByID(room.ID)
	s.Require().NoError(err)
	s.Same(room, found)

	_, err = s.manager.FindByID(42)
	s.ErrorIs(err, model.ErrSpectateTargetNotFound)
}

func (s *ManagerSuite) TestSpectatingIsNotParticipating() {
	room := s.manager.CreateRoom(s.session(1, "alice"), s.session(2, "bob"))
	carol := s.session(3, "carol")
	room.AddSpectator(carol)

	_, ok := s.manager.FindByParticipant(carol.ConnID)
	s.False(ok)
}

func (s *ManagerSuite) TestDestroyForgetsRoom() {
	room := s.manager.CreateRoom(s.session(1, "alice"), s.session(2, "bob"))

	s.manager.Destroy(room)

	_, err := s.manager.FindByID(room.ID)
	s.ErrorIs(err, model.ErrSpectateTargetNotFound)
	_, ok := s.manager.FindByParticipant(1)
	s.False(ok)
	s.Equal(0, s.manager.Count())

	// Destroying again is a no-op.
	s.manager.Destroy(room)
}

func (s *ManagerSuite) TestDropSpectatorSweepsAllRooms() {
	first := s.manager.CreateRoom(s.session(1, "alice"), s.session(2, "bob"))
	second := s.manager.CreateRoom(s.session(3, "carol"), s.session(4, "dave"))
	erin := s.session(5, "erin")
	first.AddSpectator(erin)
	second.AddSpectator(erin)

	s.manager.DropSpectator(erin.ConnID)

	s.False(first.IsSpectator(erin.ConnID))
	s.False(second.IsSpectator(erin.ConnID))
}

func (s *ManagerSuite) TestListRoomsOrderedByID() {
	s.manager.CreateRoom(s.session(1, "alice"), s.session(2, "bob"))
	s.manager.CreateRoom(s.session(3, "carol"), s.session(4, "dave"))

	rooms := s.manager.ListRooms()
	s.Require().Len(rooms, 2)
	s.Equal(int64(1), rooms[0].ID)
	s.Equal(int64(2), rooms[1].ID)
}
