// Package session holds the single live client session and its state
// machine: LoggedOut -> MissionActive -> GuessPending, returning to
// LoggedOut on logout or countdown expiry.
package session

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/veiga/killer/internal/domain/model"
)

// State identifies which screen the session is on.
type State int

const (
	LoggedOut State = iota
	MissionActive
	GuessPending
)

// String returns a short name for logging.
func (s State) String() string {
	switch s {
	case LoggedOut:
		return "logged_out"
	case MissionActive:
		return "mission_active"
	case GuessPending:
		return "guess_pending"
	default:
		return "unknown"
	}
}

// View is a read-only copy of the session handed to renderers.
type View struct {
	State       State
	Player      model.Player
	Mission     model.Mission
	Target      model.Target
	MissionDone bool
}

// Session owns the logged-in player, their assignment, and the
// completion flag. Exactly one Session is live per client; all fields
// are populated atomically on Login and fully cleared on Logout.
type Session struct {
	mu          sync.RWMutex
	state       State
	player      model.Player
	mission     model.Mission
	target      model.Target
	missionDone bool

	// generation changes on every Login/Logout; async completions
	// compare it to detect that their result is stale.
	generation string
}

// New creates an empty, logged-out session.
func New() *Session {
	return &Session{}
}

// Login populates the session from a resolved assignment and moves to
// MissionActive. An assignment without a resolved player is rejected.
func (s *Session) Login(a model.Assignment) error {
	if a.Player.ID == "" || a.Player.Display == "" {
		return ErrNoPlayer
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = MissionActive
	s.player = a.Player
	s.mission = a.Mission
	s.target = a.Target
	s.missionDone = a.MissionDone
	s.generation = uuid.NewString()
	return nil
}

// Logout clears every field. The resulting session is identical to one
// that never logged in, except that the generation keeps changing so
// in-flight fetches from the previous login can detect staleness.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = LoggedOut
	s.player = model.Player{}
	s.mission = model.Mission{}
	s.target = model.Target{}
	s.missionDone = false
	s.generation = ""
}

// MarkMissionDone flags the mission as completed. Idempotent: marking
// an already-done mission is a no-op at the state level.
func (s *Session) MarkMissionDone() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == LoggedOut {
		return ErrNotLoggedIn
	}
	s.missionDone = true
	return nil
}

// EnterGuess moves to the accusation screen. Requires a logged-in player.
func (s *Session) EnterGuess() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == LoggedOut {
		return ErrNotLoggedIn
	}
	s.state = GuessPending
	return nil
}

// ValidateGuess checks an accusation before it is submitted: the guessed
// mission text must not be blank, the accused must have resolved, and
// self-accusation is forbidden. The session is never mutated here.
func (s *Session) ValidateGuess(accused model.Player, missionText string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case s.state == LoggedOut:
		return ErrNotLoggedIn
	case accused.ID == "":
		return ErrNoPlayer
	case strings.TrimSpace(missionText) == "":
		return ErrEmptyMission
	case accused.ID == s.player.ID:
		return ErrSelfAccusation
	}
	return nil
}

// Player returns the logged-in player, if any.
func (s *Session) Player() (model.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player, s.state != LoggedOut
}

// State returns the current machine state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Generation returns the current login generation token. Empty while
// logged out.
func (s *Session) Generation() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Snapshot returns a copy of the session for rendering. Callers never
// observe a partially-updated session.
func (s *Session) Snapshot() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{
		State:       s.state,
		Player:      s.player,
		Mission:     s.mission,
		Target:      s.target,
		MissionDone: s.missionDone,
	}
}
