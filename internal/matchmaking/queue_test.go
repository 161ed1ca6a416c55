package matchmaking

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/gamearcade/matchserv/internal/model"
)

type QueueSuite struct {
	suite.Suite
	queue *Queue
}

func TestQueueSuite(t *testing.T) {
	suite.Run(t, new(QueueSuite))
}

func (s *QueueSuite) SetupTest() {
	s.queue = New()
}

func (s *QueueSuite) session(connID int64, name string) *model.Session {
	return &model.Session{ConnID: connID, Account: model.Account{Name: name}}
}

func (s *QueueSuite) TestEnqueueGrowsQueue() {
	s.Require().NoError(s.queue.Enqueue(s.session(1, "alice")))
	s.Equal(1, s.queue.Len())
	s.True(s.queue.Contains(1))
}

func (s *QueueSuite) TestEnqueueRejectsDuplicate() {
	alice := s.session(1, "alice")
	s.Require().NoError(s.queue.Enqueue(alice))

	err := s.queue.Enqueue(alice)
	s.ErrorIs(err, model.ErrAlreadyQueued)
	s.Equal(1, s.queue.Len())
}

func (s *QueueSuite) TestDequeuePairNeedsTwoSessions() {
	_, _, err := s.queue.DequeuePair()
	s.ErrorIs(err, model.ErrNotEnoughPlayers)

	s.Require().NoError(s.queue.Enqueue(s.session(1, "alice")))
	_, _, err = s.queue.DequeuePair()
	s.ErrorIs(err, model.ErrNotEnoughPlayers)
	s.Equal(1, s.queue.Len())
}

func (s *QueueSuite) TestDequeuePairReturnsLongestWaitingInOrder() {
	s.Require().NoError(s.queue.Enqueue(s.session(1, "alice")))
	s.Require().NoError(s.queue.Enqueue(s.session(2, "bob")))
	s.Require().NoError(s.queue.Enqueue(s.session(3, "carol")))

	first, second, err := s.queue.DequeuePair()
	s.Require().NoError(err)
	s.Equal("alice", first.Account.Name)
	s.Equal("bob", second.Account.Name)

	s.Equal(1, s.queue.Len())
	s.False(s.queue.Contains(1))
	s.False(s.queue.Contains(2))
	s.True(s.queue.Contains(3))
}

func (s *QueueSuite) TestDequeuedSessionCanRequeue() {
	alice := s.session(1, "alice")
	s.Require().NoError(s.queue.Enqueue(alice))
	s.Require().NoError(s.queue.Enqueue(s.session(2, "bob")))
	_, _, err := s.queue.DequeuePair()
	s.Require().NoError(err)

	s.NoError(s.queue.Enqueue(alice))
}

func (s *QueueSuite) TestRemoveDropsOnlyTargetSession() {
	s.Require().NoError(s.queue.Enqueue(s.session(1, "alice")))
	s.Require().NoError(s.queue.Enqueue(s.session(2, "bob")))
	s.Require().NoError(s.queue.Enqueue(s.session(3, "carol")))

	s.queue.Remove(2)

	s.Equal(2, s.queue.Len())
	first, second, err := s.queue.DequeuePair()
	s.Require().NoError(err)
	s.Equal("alice", first.Account.Name)
	s.Equal("carol", second.Account.Name)
}

func (s *QueueSuite) TestRemoveAbsentIsNoOp() {
	s.queue.Remove(42)
	s.Equal(0, s.queue.Len())

	s.Require().NoError(s.queue.Enqueue(s.session(1, "alice")))
	s.queue.Remove(42)
	s.Equal(1, s.queue.Len())
}
