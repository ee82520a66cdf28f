package domain

import "errors"

var (
	// ErrNameRequired is returned when a player tries to join without a name.
	ErrNameRequired = errors.New("player name is required")
	// ErrSessionIDRequired is returned when a join is attempted without a session ID.
	ErrSessionIDRequired = errors.New("session id is required")
	// ErrNoActiveSession rejects a mutation against a session that already ended.
	ErrNoActiveSession = errors.New("no active session")
	// ErrInvalidQuestion indicates a question violates the selection invariants.
	ErrInvalidQuestion = errors.New("invalid question")
)
