package roster

import (
	"errors"
)

// Sentinel kinds for resolution failures. These allow errors.Is from callers.
var (
	ErrNoMatch   = errors.New("no matching player")
	ErrAmbiguous = errors.New("ambiguous player name")
)
