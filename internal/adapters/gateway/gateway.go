// Package gateway defines the data-fetch contract between the client
// core and the game backend, with two implementations: the remote HTTP
// API and the static-files variant.
package gateway

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/veiga/killer/internal/domain/model"
	"github.com/veiga/killer/internal/domain/types"
)

// Gateway is the data source consumed by the client core. Mutating
// calls exist on the remote API only; the static variant rejects them
// with ErrReadOnly.
type Gateway interface {
	// Players fetches the roster for this game instance.
	Players(ctx context.Context) ([]model.Player, error)

	// Mission fetches the assignment for a resolved player.
	Mission(ctx context.Context, player model.Player) (model.Assignment, error)

	// ReportMissionDone persists the mission-done flag.
	ReportMissionDone(ctx context.Context, playerID string) error

	// SubmitGuess records an accusation.
	SubmitGuess(ctx context.Context, g model.Guess) error

	// Leaderboard fetches the admin leaderboard rows.
	Leaderboard(ctx context.Context) ([]types.Row, error)
}

// wireID tolerates backends that serve ids as JSON numbers or strings.
type wireID string

func (w *wireID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*w = wireID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*w = wireID(n.String())
	return nil
}

func (w wireID) MarshalJSON() ([]byte, error) {
	// Numeric ids go back on the wire as numbers.
	if _, err := strconv.ParseInt(string(w), 10, 64); err == nil {
		return []byte(w), nil
	}
	return json.Marshal(string(w))
}

// wirePlayer mirrors the backend player shape.
type wirePlayer struct {
	ID      wireID `json:"id"`
	Display string `json:"display"`
}

func (p wirePlayer) toModel() model.Player {
	return model.Player{ID: string(p.ID), Display: p.Display}
}

// wireAssignment mirrors the /api/mission payload.
type wireAssignment struct {
	OK     *bool  `json:"ok,omitempty"`
	Error  string `json:"error,omitempty"`
	Player struct {
		ID      wireID `json:"id"`
		Display string `json:"display"`
	} `json:"player"`
	Mission struct {
		Text string `json:"text"`
	} `json:"mission"`
	Target struct {
		Display string `json:"display"`
	} `json:"target"`
	MissionDone bool `json:"mission_done"`
}

func (a wireAssignment) toModel(fallback model.Player) model.Assignment {
	out := model.Assignment{
		Player:      model.Player{ID: string(a.Player.ID), Display: a.Player.Display},
		Mission:     model.Mission{Text: a.Mission.Text},
		Target:      model.Target{Display: a.Target.Display},
		MissionDone: a.MissionDone,
	}
	// Some backend versions omit the player echo; keep the resolved one.
	if out.Player.ID == "" {
		out.Player = fallback
	}
	return out
}
