package testutil

import (
	"github.com/gamearcade/matchserv/internal/transport"
)

// SentFrame records one outbound frame and its destination.
type SentFrame struct {
	ConnID int64
	Frame  string
}

// RecordingSender captures outbound traffic for assertions.
type RecordingSender struct {
	Sent []SentFrame
}

// Ensure RecordingSender implements the sender contract
var _ transport.Sender = (*RecordingSender)(nil)

// NewRecordingSender creates an empty recording sender
func NewRecordingSender() *RecordingSender {
	return &RecordingSender{}
}

// Send records the frame.
func (s *RecordingSender) Send(connID int64, frame string) {
	s.Sent = append(s.Sent, SentFrame{ConnID: connID, Frame: frame})
}

// FramesFor returns all frames sent to the given connection, in order.
func (s *RecordingSender) FramesFor(connID int64) []string {
	var frames []string
	for _, f := range s.Sent {
		if f.ConnID == connID {
			frames = append(frames, f.Frame)
		}
	}
	return frames
}

// LastFor returns the most recent frame sent to the connection, or "".
func (s *RecordingSender) LastFor(connID int64) string {
	frames := s.FramesFor(connID)
	if len(frames) == 0 {
		return ""
	}
	return frames[len(frames)-1]
}

// Reset clears the recorded traffic.
func (s *RecordingSender) Reset() {
	s.Sent = nil
}
