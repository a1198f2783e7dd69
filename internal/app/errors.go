package service

import (
	"errors"
)

// Sentinel kinds for controller errors. These allow errors.Is from callers.
var (
	ErrNoGateway       = errors.New("no gateway configured")
	ErrAccessDenied    = errors.New("admin access denied")
	ErrStaleResponse   = errors.New("stale response discarded")
	ErrAlreadyLoggedIn = errors.New("already logged in")
)
