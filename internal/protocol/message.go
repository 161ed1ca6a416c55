// Package protocol implements the wire codec for the match server.
//
// Frames are newline-free, field-delimited text with a fixed leading type
// tag. Fields are joined by '|' and must not themselves contain it; a frame
// whose field count does not match its tag is malformed and gets dropped by
// the dispatcher rather than answered.
package protocol

import (
	"errors"
	"strings"
)

// Delimiter separates fields within a frame. It is reserved: no field may
// contain it.
const Delimiter = "|"

// Tag identifies the type of a frame.
type Tag string

// Client -> server tags.
const (
	TagLogin        Tag = "LOGIN"
	TagRegister     Tag = "REGISTER"
	TagFindMatch    Tag = "FIND_MATCH"
	TagMove         Tag = "MOVE"
	TagRestart      Tag = "RESTART"
	TagChat         Tag = "CHAT"
	TagSpectateList Tag = "SPECTATE_LIST"
	TagSpectateGame Tag = "SPECTATE_GAME"
	TagLeaveGame    Tag = "LEAVE_GAME"
)

// Server-originated tags.
const (
	TagTurn     Tag = "TURN"
	TagGameOver Tag = "GAME_OVER"
)

// Status is the leading field of every server -> client frame.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusError   Status = "ERROR"
)

var (
	ErrEmptyFrame    = errors.New("empty frame")
	ErrUnknownTag    = errors.New("unknown message tag")
	ErrFieldCount    = errors.New("wrong field count for tag")
	ErrReservedDelim = errors.New("field contains reserved delimiter")
)

// fieldCounts maps each inbound tag to its required field count.
var fieldCounts = map[Tag]int{
	TagLogin:        2,
	TagRegister:     2,
	TagFindMatch:    0,
	TagMove:         1,
	TagRestart:      0,
	TagChat:         1,
	TagSpectateList: 0,
	TagSpectateGame: 1,
	TagLeaveGame:    0,
}

// Message is a decoded client -> server frame.
type Message struct {
	Tag    Tag
	Fields []string
}

// Decode parses a raw inbound frame. It rejects unknown tags and frames
// whose field count does not match the tag.
func Decode(raw string) (Message, error) {
	raw = strings.TrimRight(raw, "\r\n")
	if raw == "" {
		return Message{}, ErrEmptyFrame
	}

	parts := strings.Split(raw, Delimiter)
	tag := Tag(parts[0])

	want, ok := fieldCounts[tag]
	if !ok {
		return Message{}, ErrUnknownTag
	}
	if len(parts)-1 != want {
		return Message{}, ErrFieldCount
	}

	return Message{Tag: tag, Fields: parts[1:]}, nil
}

// Encode renders a client -> server frame.
func (m Message) Encode() (string, error) {
	parts := make([]string, 0, len(m.Fields)+1)
	parts = append(parts, string(m.Tag))
	for _, f := range m.Fields {
		if strings.Contains(f, Delimiter) {
			return "", ErrReservedDelim
		}
		parts = append(parts, f)
	}
	return strings.Join(parts, Delimiter), nil
}

// Response is a server -> client frame: a status, the tag it answers or
// announces, a human-readable reason, and any payload fields.
type Response struct {
	Status  Status
	Tag     Tag
	Reason  string
	Payload []string
}

// Success builds a SUCCESS response.
func Success(tag Tag, reason string, payload ...string) Response {
	return Response{Status: StatusSuccess, Tag: tag, Reason: reason, Payload: payload}
}

// Failure builds an ERROR response.
func Failure(tag Tag, reason string, payload ...string) Response {
	return Response{Status: StatusError, Tag: tag, Reason: reason, Payload: payload}
}

// Encode renders the response as a wire frame.
func (r Response) Encode() string {
	parts := make([]string, 0, len(r.Payload)+3)
	parts = append(parts, string(r.Status), string(r.Tag), r.Reason)
	parts = append(parts, r.Payload...)
	return strings.Join(parts, Delimiter)
}

// DecodeResponse parses a server -> client frame. Used by the client CLI
// and by tests asserting on outbound traffic.
func DecodeResponse(raw string) (Response, error) {
	raw = strings.TrimRight(raw, "\r\n")
	parts := strings.Split(raw, Delimiter)
	if len(parts) < 3 {
		return Response{}, ErrFieldCount
	}
	status := Status(parts[0])
	if status != StatusSuccess && status != StatusError {
		return Response{}, ErrUnknownTag
	}
	return Response{
		Status:  status,
		Tag:     Tag(parts[1]),
		Reason:  parts[2],
		Payload: parts[3:],
	}, nil
}
