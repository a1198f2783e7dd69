// Package app wires the roster index, session state machine, countdown
// and gateway into the single client controller. One Service instance
// owns one player session; nothing here is a package-level singleton,
// so tests run independent controllers side by side.
package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/veiga/killer/internal/adapters/gateway"
	"github.com/veiga/killer/internal/adapters/render"
	"github.com/veiga/killer/internal/domain/countdown"
	"github.com/veiga/killer/internal/domain/model"
	"github.com/veiga/killer/internal/domain/roster"
	"github.com/veiga/killer/internal/domain/session"
	"github.com/veiga/killer/pkg/logger"
	"github.com/veiga/killer/pkg/metrics"
)

// Default controller configuration constants.
const (
	defaultMissionTimeout = 10 // seconds of mission viewing before forced logout
)

// Service is the client controller. Handlers take s.mu, release it
// around gateway calls (the only suspension points), and re-check the
// session generation afterwards so a completion that raced a logout or
// expiry is discarded instead of resurrecting stale state.
type Service struct {
	mu sync.Mutex

	roster    *roster.Index
	session   *session.Session
	countdown *countdown.Controller
	gateway   gateway.Gateway
	renderer  render.Renderer

	adminName      string
	adminPassword  string
	missionTimeout int

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithGateway sets the data gateway (remote API or static files).
func WithGateway(g gateway.Gateway) Option {
	return func(s *Service) {
		if g != nil {
			s.gateway = g
		}
	}
}

// WithRenderer sets the render sink.
func WithRenderer(r render.Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAdminName sets the display name that unlocks the leaderboard.
func WithAdminName(name string) Option {
	return func(s *Service) {
		s.adminName = name
	}
}

// WithAdminPassword sets the leaderboard password.
func WithAdminPassword(password string) Option {
	return func(s *Service) {
		s.adminPassword = password
	}
}

// WithMissionTimeout sets the mission-view budget in seconds.
func WithMissionTimeout(seconds int) Option {
	return func(s *Service) {
		if seconds > 0 {
			s.missionTimeout = seconds
		}
	}
}

// WithCountdownInterval overrides the countdown tick interval (tests).
func WithCountdownInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.countdown = countdown.New(countdown.WithInterval(d))
		}
	}
}

// New constructs a controller with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		roster:         roster.New(),
		session:        session.New(),
		countdown:      countdown.New(),
		renderer:       render.NewTerminal(os.Stdout),
		missionTimeout: defaultMissionTimeout,
		logger:         logger.Named("app"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the roster. Gateway failure is surfaced but leaves the
// controller usable; Login retries the load lazily.
func (s *Service) Start(ctx context.Context) error {
	if s.gateway == nil {
		return ErrNoGateway
	}
	players, err := s.gateway.Players(ctx)
	if err != nil {
		s.renderer.RenderAlert("Could not load the player list.")
		return fmt.Errorf("load players: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.roster.Load(players)
	s.logger.Info(ctx, "roster loaded", logger.Int("players", len(players)))
	s.renderSessionLocked()
	return nil
}

// Login resolves the free-text name, fetches the mission, populates the
// session and starts the countdown.
func (s *Service) Login(ctx context.Context, name string) error {
	if s.gateway == nil {
		return ErrNoGateway
	}

	s.mu.Lock()
	if s.roster.Len() == 0 {
		s.mu.Unlock()
		if err := s.Start(ctx); err != nil {
			return err
		}
		s.mu.Lock()
	}
	if s.session.State() != session.LoggedOut {
		s.renderer.RenderAlert("Log out before logging in as someone else.")
		s.mu.Unlock()
		return ErrAlreadyLoggedIn
	}
	player, err := s.roster.Resolve(name)
	if err != nil {
		s.renderer.RenderAlert("Pick a valid name from the player list (no fuzzy guesses).")
		s.mu.Unlock()
		return fmt.Errorf("resolve %q: %w", name, err)
	}
	s.mu.Unlock()

	a, err := s.gateway.Mission(ctx, player)
	if err != nil {
		s.renderer.RenderAlert("Could not fetch your mission.")
		return fmt.Errorf("fetch mission: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.State() != session.LoggedOut {
		// Another login completed while this mission fetch was in flight.
		s.logger.Warn(ctx, "discarding stale login response", logger.String("player", player.Display))
		return ErrStaleResponse
	}
	if err := s.session.Login(a); err != nil {
		s.renderer.RenderAlert("Login failed.")
		return fmt.Errorf("login: %w", err)
	}
	metrics.RecordSessionStarted()
	s.logger.Info(ctx, "player logged in",
		logger.String("player", a.Player.Display),
		logger.Bool("missionDone", a.MissionDone),
	)
	s.renderSessionLocked()
	gen := s.session.Generation()
	s.countdown.OnExpire(func() { s.expire(gen) })
	s.countdown.Start(s.missionTimeout)
	s.renderer.RenderCountdown(s.missionTimeout)
	return nil
}

// MarkMissionDone persists the completion flag and sets it locally.
// The gateway call is re-issued even when the flag is already set.
func (s *Service) MarkMissionDone(ctx context.Context) error {
	s.mu.Lock()
	player, ok := s.session.Player()
	if !ok {
		s.renderer.RenderAlert("Session expired. Go back and log in again.")
		s.logoutLocked()
		s.mu.Unlock()
		return fmt.Errorf("mark mission done: %w", session.ErrNotLoggedIn)
	}
	gen := s.session.Generation()
	s.mu.Unlock()

	if err := s.gateway.ReportMissionDone(ctx, player.ID); err != nil {
		s.renderer.RenderAlert("Could not record your mission.")
		return fmt.Errorf("report mission done: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.Generation() != gen {
		s.logger.Warn(ctx, "discarding stale mission_done response", logger.String("player", player.Display))
		return ErrStaleResponse
	}
	if err := s.session.MarkMissionDone(); err != nil {
		return fmt.Errorf("mark mission done: %w", err)
	}
	metrics.RecordMissionDone()
	s.renderSessionLocked()
	return nil
}

// EnterGuess moves to the accusation screen and stops the countdown:
// guessing is not time-boxed.
func (s *Service) EnterGuess() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.EnterGuess(); err != nil {
		s.renderer.RenderAlert("You must log in before accusing anyone.")
		return fmt.Errorf("enter guess: %w", err)
	}
	s.countdown.Stop()
	s.renderSessionLocked()
	return nil
}

// SubmitGuess resolves the accused name, validates the accusation and
// submits it. Validation failures leave the session untouched.
func (s *Service) SubmitGuess(ctx context.Context, accusedName, missionText string) error {
	s.mu.Lock()
	player, ok := s.session.Player()
	if !ok {
		s.renderer.RenderAlert("Session expired. Go back and log in again.")
		s.logoutLocked()
		s.mu.Unlock()
		return fmt.Errorf("submit guess: %w", session.ErrNotLoggedIn)
	}

	accused, rerr := s.roster.Resolve(accusedName)
	if rerr != nil {
		s.renderer.RenderAlert("Pick a valid killer from the player list.")
		s.mu.Unlock()
		return fmt.Errorf("resolve accused %q: %w", accusedName, rerr)
	}

	if verr := s.session.ValidateGuess(accused, missionText); verr != nil {
		s.renderAlertForValidation(verr)
		s.mu.Unlock()
		return fmt.Errorf("validate guess: %w", verr)
	}
	gen := s.session.Generation()
	s.mu.Unlock()

	g := model.Guess{
		PlayerID:    player.ID,
		AccusedID:   accused.ID,
		MissionText: strings.TrimSpace(missionText),
	}
	if err := s.gateway.SubmitGuess(ctx, g); err != nil {
		s.renderer.RenderAlert("Could not record your guess.")
		return fmt.Errorf("submit guess: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.Generation() != gen {
		s.logger.Warn(ctx, "discarding stale guess response", logger.String("player", player.Display))
		return ErrStaleResponse
	}
	metrics.RecordGuessSubmitted()
	s.logger.Info(ctx, "guess submitted",
		logger.String("player", player.Display),
		logger.String("accused", accused.Display),
	)
	s.renderer.RenderAlert("Guess recorded.")
	return nil
}

// Logout clears the session and stops any active countdown.
func (s *Service) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logoutLocked()
}

// Leaderboard fetches and renders the admin table. Only the configured
// admin player with the right password gets through; the password is a
// plain comparison, not a security boundary.
func (s *Service) Leaderboard(ctx context.Context, password string) error {
	s.mu.Lock()
	player, ok := s.session.Player()
	if !ok || player.Display != s.adminName {
		s.renderer.RenderAlert("Access denied.")
		s.mu.Unlock()
		return ErrAccessDenied
	}
	if s.adminPassword == "" || strings.TrimSpace(password) != s.adminPassword {
		s.renderer.RenderAlert("Wrong password.")
		s.mu.Unlock()
		return ErrAccessDenied
	}
	gen := s.session.Generation()
	s.mu.Unlock()

	rows, err := s.gateway.Leaderboard(ctx)
	if err != nil {
		s.renderer.RenderAlert("Could not load the leaderboard.")
		return fmt.Errorf("fetch leaderboard: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.Generation() != gen {
		s.logger.Warn(ctx, "discarding stale leaderboard response")
		return ErrStaleResponse
	}
	s.renderer.RenderLeaderboard(rows)
	return nil
}

// View returns the current session snapshot and whether the admin box
// is visible for the logged-in player.
func (s *Service) View() (session.View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.session.Snapshot()
	return v, s.isAdmin(v.Player)
}

// State returns the current session state.
func (s *Service) State() session.State {
	return s.session.State()
}

// Remaining reports the seconds left on the active countdown.
func (s *Service) Remaining() int {
	return s.countdown.Remaining()
}

// expire is the countdown callback: force logout after the mission-view
// budget. The generation token was captured when the countdown started;
// a callback that outlived its run carries a stale token and is
// discarded, like any other late async response. Expiry only applies
// while the mission screen is up; a player who moved on to guessing is
// left alone.
func (s *Service) expire(gen string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen == "" || s.session.Generation() != gen {
		return
	}
	if s.session.State() != session.MissionActive {
		return
	}
	player, _ := s.session.Player()
	metrics.RecordSessionExpired()
	s.logger.Info(context.Background(), "session expired", logger.String("player", player.Display))
	s.logoutLocked()
}

// logoutLocked clears everything. Must be called with s.mu held.
func (s *Service) logoutLocked() {
	s.countdown.Stop()
	s.session.Logout()
	s.renderSessionLocked()
}

// renderSessionLocked pushes the current snapshot to the render sink.
// Must be called with s.mu held.
func (s *Service) renderSessionLocked() {
	v := s.session.Snapshot()
	s.renderer.RenderSession(v, s.isAdmin(v.Player))
}

func (s *Service) isAdmin(p model.Player) bool {
	return s.adminName != "" && p.Display == s.adminName
}

func (s *Service) renderAlertForValidation(err error) {
	switch {
	case err == session.ErrSelfAccusation:
		s.renderer.RenderAlert("You cannot accuse yourself.")
	case err == session.ErrEmptyMission:
		s.renderer.RenderAlert("Describe the mission you suspect.")
	default:
		s.renderer.RenderAlert("Invalid guess.")
	}
}
