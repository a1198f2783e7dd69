// Package cli implements the interactive terminal flow on top of the
// client controller. It only reads input and dispatches; all game
// policy lives in the domain packages.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	service "github.com/veiga/killer/internal/app"
	"github.com/veiga/killer/internal/domain/session"
	"github.com/veiga/killer/pkg/logger"
)

// Loop drives one player's terminal session.
type Loop struct {
	svc    *service.Service
	in     *bufio.Scanner
	out    io.Writer
	logger logger.Logger
}

// New creates a loop reading commands from in and prompting on out.
func New(svc *service.Service, in io.Reader, out io.Writer) *Loop {
	return &Loop{
		svc:    svc,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger.Named("cli"),
	}
}

// Run processes commands until quit, EOF, or context cancellation.
// Command errors are already rendered by the controller; the loop just
// keeps going so the UI always returns to a navigable state.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch l.svc.State() {
		case session.LoggedOut:
			if done := l.home(ctx); done {
				return nil
			}
		case session.MissionActive:
			if done := l.mission(ctx); done {
				return nil
			}
		case session.GuessPending:
			if done := l.guess(ctx); done {
				return nil
			}
		}
	}
}

// home handles the login screen. Returns true to quit.
func (l *Loop) home(ctx context.Context) bool {
	line, ok := l.prompt("name (or quit)> ")
	if !ok {
		return true
	}
	switch strings.ToLower(line) {
	case "":
		return false
	case "quit", "exit":
		return true
	}
	_ = l.svc.Login(ctx, line)
	return false
}

// mission handles the mission screen commands. Returns true to quit.
func (l *Loop) mission(ctx context.Context) bool {
	if r := l.svc.Remaining(); r > 0 {
		fmt.Fprintf(l.out, "(%ds left) ", r)
	}
	line, ok := l.prompt("done | guess | admin <password> | home | quit> ")
	if !ok {
		return true
	}

	cmd, arg := splitCommand(line)
	switch cmd {
	case "":
	case "done":
		_ = l.svc.MarkMissionDone(ctx)
	case "guess":
		_ = l.svc.EnterGuess()
	case "admin":
		_ = l.svc.Leaderboard(ctx, arg)
	case "home":
		l.svc.Logout()
	case "quit", "exit":
		return true
	default:
		l.logger.Debug(ctx, "unknown command", logger.String("command", cmd))
		fmt.Fprintln(l.out, "unknown command:", cmd)
	}
	return false
}

// guess handles the accusation flow. Returns true to quit.
func (l *Loop) guess(ctx context.Context) bool {
	accused, ok := l.prompt("killer name (or home)> ")
	if !ok {
		return true
	}
	switch strings.ToLower(accused) {
	case "":
		return false
	case "home":
		l.svc.Logout()
		return false
	case "quit", "exit":
		return true
	}

	mission, ok := l.prompt("what was their mission?> ")
	if !ok {
		return true
	}
	_ = l.svc.SubmitGuess(ctx, accused, mission)
	return false
}

// prompt prints the prompt and reads one trimmed line. ok is false on EOF.
func (l *Loop) prompt(p string) (string, bool) {
	fmt.Fprint(l.out, p)
	if !l.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(l.in.Text()), true
}

func splitCommand(line string) (cmd, arg string) {
	parts := strings.SplitN(line, " ", 2)
	cmd = strings.ToLower(strings.TrimSpace(parts[0]))
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}
	return cmd, arg
}
