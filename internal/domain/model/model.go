// Package model contains domain models passed between layers.
package model

// Player is a registered roster entry.
// No two players in a game share the same Display; the resolver
// relies on that to reject ambiguous matches.
type Player struct {
	ID      string // opaque backend identifier
	Display string // human-readable name as registered
}

// Mission is the secret task assigned to a player.
type Mission struct {
	Text string
}

// Target is the player a mission is aimed at. Only the display name
// is ever revealed to the assigned killer.
type Target struct {
	Display string
}

// Assignment is the payload a player receives on login.
type Assignment struct {
	Player      Player
	Mission     Mission
	Target      Target
	MissionDone bool
}

// Guess is an accusation submitted by a player against a suspected killer.
type Guess struct {
	PlayerID    string
	AccusedID   string
	MissionText string
}
