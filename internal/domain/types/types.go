// Package types contains common types used across the application
package types

// Row represents a leaderboard row as served by the game backend.
type Row struct {
	Display            string `json:"display"`
	Points             int    `json:"points"`
	MissionDone        bool   `json:"mission_done"`
	DiscoveredByTarget bool   `json:"discovered_by_target"`
	FoundKiller        bool   `json:"found_killer"`
	GuessKillerDisplay string `json:"guess_killer_display"`
	GuessMission       string `json:"guess_mission"`
}
