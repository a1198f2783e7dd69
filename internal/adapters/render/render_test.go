package render_test

import (
	"bytes"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/veiga/killer/internal/adapters/render"
	"github.com/veiga/killer/internal/domain/model"
	"github.com/veiga/killer/internal/domain/session"
	"github.com/veiga/killer/internal/domain/types"
)

func TestTerminalSession(t *testing.T) {
	Convey("Given a terminal renderer", t, func() {
		var buf bytes.Buffer
		r := render.NewTerminal(&buf)

		Convey("The logged-out screen shows the login prompt", func() {
			r.RenderSession(session.View{State: session.LoggedOut}, false)
			So(buf.String(), ShouldContainSubstring, "Enter your name")
		})

		Convey("The mission screen shows mission, target, and status", func() {
			r.RenderSession(session.View{
				State:   session.MissionActive,
				Player:  model.Player{ID: "1", Display: "Léa"},
				Mission: model.Mission{Text: "swap two shoes"},
				Target:  model.Target{Display: "Marc"},
			}, false)
			out := buf.String()
			So(out, ShouldContainSubstring, "Léa")
			So(out, ShouldContainSubstring, "swap two shoes")
			So(out, ShouldContainSubstring, "Marc")
			So(out, ShouldContainSubstring, "not declared")
			So(out, ShouldNotContainSubstring, "Admin")
		})

		Convey("The admin box only shows for the admin player", func() {
			r.RenderSession(session.View{
				State:  session.MissionActive,
				Player: model.Player{ID: "1", Display: "Lucas"},
			}, true)
			So(buf.String(), ShouldContainSubstring, "Admin")
		})
	})
}

func TestTerminalLeaderboard(t *testing.T) {
	Convey("Given a terminal renderer", t, func() {
		var buf bytes.Buffer
		r := render.NewTerminal(&buf)

		Convey("Rows render as a table", func() {
			r.RenderLeaderboard([]types.Row{
				{Display: "Léa", Points: 3, MissionDone: true, GuessKillerDisplay: "Marc"},
			})
			out := buf.String()
			So(out, ShouldContainSubstring, "PLAYER")
			So(out, ShouldContainSubstring, "Léa")
			So(out, ShouldContainSubstring, "yes")
			So(out, ShouldContainSubstring, "Marc")
		})

		Convey("An empty leaderboard renders the placeholder row", func() {
			r.RenderLeaderboard(nil)
			So(buf.String(), ShouldContainSubstring, "(no data)")
		})
	})
}
