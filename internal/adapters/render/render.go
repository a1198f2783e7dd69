// Package render defines the render-sink contract the client core
// pushes screen updates through, and its terminal implementation.
package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/veiga/killer/internal/domain/session"
	"github.com/veiga/killer/internal/domain/types"
)

// Renderer receives state updates from the controller. Implementations
// must not call back into the controller.
type Renderer interface {
	// RenderSession redraws the current screen. admin reports whether
	// the admin box is visible for the logged-in player.
	RenderSession(v session.View, admin bool)

	// RenderCountdown shows the remaining mission-view seconds.
	RenderCountdown(remaining int)

	// RenderLeaderboard draws the admin table. An empty slice renders
	// a placeholder row, never a bare header.
	RenderLeaderboard(rows []types.Row)

	// RenderAlert shows a user-facing message.
	RenderAlert(msg string)
}

// Terminal renders to a text stream.
type Terminal struct {
	w io.Writer
}

// NewTerminal creates a renderer writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

// RenderSession implements Renderer.
func (t *Terminal) RenderSession(v session.View, admin bool) {
	switch v.State {
	case session.LoggedOut:
		fmt.Fprintln(t.w, "\n=== Killer ===")
		fmt.Fprintln(t.w, "Enter your name to see your mission.")
	case session.MissionActive:
		fmt.Fprintf(t.w, "\nLogged in: %s\n", v.Player.Display)
		fmt.Fprintf(t.w, "Mission: %s\n", orDash(v.Mission.Text))
		fmt.Fprintf(t.w, "Target:  %s\n", orDash(v.Target.Display))
		if v.MissionDone {
			fmt.Fprintln(t.w, "Status:  mission already declared done")
		} else {
			fmt.Fprintln(t.w, "Status:  mission not declared yet")
		}
		if admin {
			fmt.Fprintln(t.w, "Admin:   leaderboard available (admin <password>)")
		}
	case session.GuessPending:
		fmt.Fprintf(t.w, "\n%s, who is your killer?\n", v.Player.Display)
	}
}

// RenderCountdown implements Renderer.
func (t *Terminal) RenderCountdown(remaining int) {
	fmt.Fprintf(t.w, "Time left: %ds\n", remaining)
}

// RenderLeaderboard implements Renderer.
func (t *Terminal) RenderLeaderboard(rows []types.Row) {
	tw := tabwriter.NewWriter(t.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAYER\tPOINTS\tDONE\tDISCOVERED\tFOUND KILLER\tGUESSED KILLER\tGUESSED MISSION")
	if len(rows) == 0 {
		fmt.Fprintln(tw, "(no data)\t\t\t\t\t\t")
		_ = tw.Flush()
		return
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			orDash(r.Display),
			r.Points,
			yesNo(r.MissionDone),
			yesNo(r.DiscoveredByTarget),
			yesNo(r.FoundKiller),
			orDash(r.GuessKillerDisplay),
			orDash(r.GuessMission),
		)
	}
	_ = tw.Flush()
}

// RenderAlert implements Renderer.
func (t *Terminal) RenderAlert(msg string) {
	fmt.Fprintf(t.w, "! %s\n", msg)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
