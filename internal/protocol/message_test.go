package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeValidFrames(t *testing.T) {
	cases := []struct {
		raw    string
		tag    Tag
		fields []string
	}{
		{"LOGIN|alice|p1", TagLogin, []string{"alice", "p1"}},
		{"REGISTER|bob|secret", TagRegister, []string{"bob", "secret"}},
		{"FIND_MATCH", TagFindMatch, []string{}},
		{"MOVE|1 0 0 0 0 0 0 0 0", TagMove, []string{"1 0 0 0 0 0 0 0 0"}},
		{"RESTART", TagRestart, []string{}},
		{"CHAT|good game", TagChat, []string{"good game"}},
		{"SPECTATE_LIST", TagSpectateList, []string{}},
		{"SPECTATE_GAME|3", TagSpectateGame, []string{"3"}},
		{"LEAVE_GAME", TagLeaveGame, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			msg, err := Decode(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.tag, msg.Tag)
			assert.Equal(t, tc.fields, msg.Fields)
		})
	}
}

func TestDecodeRejectsMalformedFrames(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		err  error
	}{
		{"empty", "", ErrEmptyFrame},
		{"unknown tag", "NOPE|x", ErrUnknownTag},
		{"login missing password", "LOGIN|alice", ErrFieldCount},
		{"login extra field", "LOGIN|alice|p1|extra", ErrFieldCount},
		{"find match with field", "FIND_MATCH|x", ErrFieldCount},
		{"chat with embedded delimiter", "CHAT|a|b", ErrFieldCount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.raw)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestMessageEncodeRejectsReservedDelimiter(t *testing.T) {
	msg := Message{Tag: TagChat, Fields: []string{"hello|world"}}
	_, err := msg.Encode()
	assert.ErrorIs(t, err, ErrReservedDelim)
}

func TestMessageEncodeRoundTrip(t *testing.T) {
	msg := Message{Tag: TagLogin, Fields: []string{"alice", "p1"}}
	frame, err := msg.Encode()
	require.NoError(t, err)
	assert.Equal(t, "LOGIN|alice|p1", frame)

	decoded, err := Decode(frame)
	require.NoError(t, err)
	assert.Equal(t, msg, decoded)
}

func TestResponseEncode(t *testing.T) {
	resp := Success(TagFindMatch, "Match found", "Player1", "bob", "7")
	assert.Equal(t, "SUCCESS|FIND_MATCH|Match found|Player1|bob|7", resp.Encode())

	resp = Failure(TagLogin, "Wrong password")
	assert.Equal(t, "ERROR|LOGIN|Wrong password", resp.Encode())
}

func TestDecodeResponse(t *testing.T) {
	resp, err := DecodeResponse("SUCCESS|MOVE|Board has been updated|1 0 0 0 0 0 0 0 0")
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Equal(t, TagMove, resp.Tag)
	assert.Equal(t, "Board has been updated", resp.Reason)
	assert.Equal(t, []string{"1 0 0 0 0 0 0 0 0"}, resp.Payload)

	_, err = DecodeResponse("SUCCESS|MOVE")
	assert.ErrorIs(t, err, ErrFieldCount)

	_, err = DecodeResponse("MAYBE|MOVE|reason")
	assert.Error(t, err)
}
