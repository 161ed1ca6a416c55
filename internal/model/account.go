package model

import "time"

// Account is a registered user identity. Names are unique, case-sensitive
// keys; passwords are opaque credentials compared by equality.
type Account struct {
	Name     string
	Password string
}

// Session binds a live connection to an authenticated account. A connection
// holds at most one session, and an account is bound to at most one live
// session at a time.
type Session struct {
	ConnID     int64
	Account    Account
	LoggedInAt time.Time
}

// ChatMessage is one entry in a room's append-only chat log.
type ChatMessage struct {
	Speaker string
	Text    string
	SentAt  time.Time
}
