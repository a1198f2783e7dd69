package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/veiga/killer/internal/domain/model"
	"github.com/veiga/killer/internal/domain/types"
)

// File names read by the static variant.
const (
	playersFile  = "players.json"
	missionsFile = "missions.json"
)

// Static serves roster and missions from local JSON files. It backs
// the no-server variant of the game; nothing is ever written, so
// mutating calls fail with ErrReadOnly.
type Static struct {
	dir string
}

// NewStatic creates a static-files gateway reading from dir.
func NewStatic(dir string) *Static {
	return &Static{dir: dir}
}

// Players implements Gateway.
func (s *Static) Players(ctx context.Context) ([]model.Player, error) {
	var wire []wirePlayer
	if err := s.read(playersFile, &wire); err != nil {
		return nil, err
	}
	players := make([]model.Player, 0, len(wire))
	for _, p := range wire {
		players = append(players, p.toModel())
	}
	return players, nil
}

// Mission implements Gateway. Assignments are keyed by player id in
// missions.json.
func (s *Static) Mission(ctx context.Context, player model.Player) (model.Assignment, error) {
	var wire map[string]wireAssignment
	if err := s.read(missionsFile, &wire); err != nil {
		return model.Assignment{}, err
	}
	a, ok := wire[player.ID]
	if !ok {
		return model.Assignment{}, fmt.Errorf("%w: %s", ErrUnknownPlayer, player.Display)
	}
	return a.toModel(player), nil
}

// ReportMissionDone implements Gateway.
func (s *Static) ReportMissionDone(ctx context.Context, playerID string) error {
	return ErrReadOnly
}

// SubmitGuess implements Gateway.
func (s *Static) SubmitGuess(ctx context.Context, g model.Guess) error {
	return ErrReadOnly
}

// Leaderboard implements Gateway.
func (s *Static) Leaderboard(ctx context.Context) ([]types.Row, error) {
	return nil, ErrReadOnly
}

func (s *Static) read(name string, out any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrGateway, name, err)
	}
	return nil
}
