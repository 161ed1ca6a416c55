package model

import (
	"strings"
)

// Mark is the occupant of a single board cell.
type Mark uint8

const (
	MarkEmpty Mark = 0
	MarkP1    Mark = 1
	MarkP2    Mark = 2
)

// PlayerSlot identifies one of the two seats in a room.
type PlayerSlot int

const (
	SlotNone    PlayerSlot = 0
	SlotPlayer1 PlayerSlot = 1
	SlotPlayer2 PlayerSlot = 2
)

// Mark returns the board mark belonging to this slot.
func (s PlayerSlot) Mark() Mark {
	return Mark(s)
}

// Other returns the opposing slot.
func (s PlayerSlot) Other() PlayerSlot {
	switch s {
	case SlotPlayer1:
		return SlotPlayer2
	case SlotPlayer2:
		return SlotPlayer1
	default:
		return SlotNone
	}
}

// String returns the slot name used in match-found payloads.
func (s PlayerSlot) String() string {
	switch s {
	case SlotPlayer1:
		return "Player1"
	case SlotPlayer2:
		return "Player2"
	default:
		return "None"
	}
}

// Board is the 3x3 grid, row-major. Cells transition Empty -> Mark exactly
// once under correct client behavior; the server trusts the submitted grid
// and only arbitrates whose turn it is.
type Board [9]Mark

// winningLines enumerates the 8 ways to win: rows, then columns, then
// diagonals. Order matters for which line is reported first.
var winningLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

// ParseBoard decodes the wire representation: nine space-separated cells,
// each "0", "1" or "2".
func ParseBoard(s string) (Board, error) {
	var b Board
	cells := strings.Split(s, " ")
	if len(cells) != len(b) {
		return Board{}, ErrMalformedBoard
	}
	for i, cell := range cells {
		switch cell {
		case "0":
			b[i] = MarkEmpty
		case "1":
			b[i] = MarkP1
		case "2":
			b[i] = MarkP2
		default:
			return Board{}, ErrMalformedBoard
		}
	}
	return b, nil
}

// String encodes the board in its wire representation.
func (b Board) String() string {
	cells := make([]string, len(b))
	for i, m := range b {
		cells[i] = string('0' + byte(m))
	}
	return strings.Join(cells, " ")
}

// Winner reports the slot holding a completed line, if any. Lines are
// checked rows first, then columns, then diagonals.
func (b Board) Winner() (PlayerSlot, bool) {
	for _, line := range winningLines {
		m := b[line[0]]
		if m != MarkEmpty && b[line[1]] == m && b[line[2]] == m {
			return PlayerSlot(m), true
		}
	}
	return SlotNone, false
}
