package model

import "errors"

// Common errors used across the application. All of these are protocol-level
// failures reported back to the triggering connection; none are fatal.
var (
	// Account errors
	ErrUserNotFound      = errors.New("user not found")
	ErrWrongPassword     = errors.New("wrong password")
	ErrUserAlreadyExists = errors.New("user already exists")

	// Session errors
	ErrAlreadyLoggedIn = errors.New("user already logged in")
	ErrNotLoggedIn     = errors.New("not logged in")

	// Matchmaking errors
	ErrAlreadyQueued    = errors.New("already in matchmaking queue")
	ErrNotEnoughPlayers = errors.New("not enough players to match")

	// Room errors
	ErrRoomNotFound           = errors.New("room not found")
	ErrNotYourTurn            = errors.New("not this player's turn")
	ErrSpectateTargetNotFound = errors.New("spectate target not found")

	// Board errors
	ErrMalformedBoard = errors.New("malformed board state")
)
