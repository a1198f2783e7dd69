package session

import (
	"errors"
)

// Sentinel kinds for session errors. These allow errors.Is from callers.
var (
	ErrNotLoggedIn    = errors.New("no player logged in")
	ErrNoPlayer       = errors.New("player not resolved")
	ErrEmptyMission   = errors.New("guessed mission text is empty")
	ErrSelfAccusation = errors.New("self accusation is forbidden")
)
