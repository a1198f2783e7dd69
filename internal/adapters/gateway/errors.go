package gateway

import (
	"errors"
)

// Sentinel kinds for gateway errors. These allow errors.Is from callers.
var (
	ErrGateway       = errors.New("gateway request failed")
	ErrReadOnly      = errors.New("gateway is read-only")
	ErrUnknownPlayer = errors.New("player unknown to gateway")
)
