package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/veiga/killer/internal/adapters/render"
	service "github.com/veiga/killer/internal/app"
	"github.com/veiga/killer/internal/cli"
	"github.com/veiga/killer/internal/domain/model"
	"github.com/veiga/killer/internal/domain/types"
)

// scriptGateway is a minimal in-memory gateway for driving the loop.
type scriptGateway struct {
	guesses []model.Guess
	doneIDs []string
}

func (g *scriptGateway) Players(ctx context.Context) ([]model.Player, error) {
	return []model.Player{
		{ID: "1", Display: "Léa"},
		{ID: "2", Display: "Marc"},
	}, nil
}

func (g *scriptGateway) Mission(ctx context.Context, p model.Player) (model.Assignment, error) {
	return model.Assignment{
		Player:  p,
		Mission: model.Mission{Text: "swap two shoes"},
		Target:  model.Target{Display: "Marc"},
	}, nil
}

func (g *scriptGateway) ReportMissionDone(ctx context.Context, playerID string) error {
	g.doneIDs = append(g.doneIDs, playerID)
	return nil
}

func (g *scriptGateway) SubmitGuess(ctx context.Context, guess model.Guess) error {
	g.guesses = append(g.guesses, guess)
	return nil
}

func (g *scriptGateway) Leaderboard(ctx context.Context) ([]types.Row, error) {
	return []types.Row{{Display: "Léa", Points: 1}}, nil
}

func runScript(t *testing.T, gw *scriptGateway, script string) string {
	t.Helper()
	var out bytes.Buffer
	svc := service.New(
		service.WithGateway(gw),
		service.WithRenderer(render.NewTerminal(&out)),
		service.WithAdminName("Lucas"),
		service.WithAdminPassword("sesame"),
		service.WithMissionTimeout(100_000),
		service.WithCountdownInterval(time.Millisecond),
	)
	loop := cli.New(svc, strings.NewReader(script), &out)
	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("loop: %v", err)
	}
	svc.Logout()
	return out.String()
}

func TestLoopFullFlow(t *testing.T) {
	Convey("Given a scripted play session", t, func() {
		gw := &scriptGateway{}
		out := runScript(t, gw, "Léa\ndone\nguess\nMarc\nstole my fork\nhome\nquit\n")

		Convey("The mission screen was shown", func() {
			So(out, ShouldContainSubstring, "swap two shoes")
			So(out, ShouldContainSubstring, "Marc")
		})

		Convey("The mission was declared done", func() {
			So(gw.doneIDs, ShouldResemble, []string{"1"})
		})

		Convey("The guess reached the gateway", func() {
			So(gw.guesses, ShouldResemble, []model.Guess{
				{PlayerID: "1", AccusedID: "2", MissionText: "stole my fork"},
			})
		})
	})
}

func TestLoopRejectsUnknownName(t *testing.T) {
	Convey("Given a login attempt with an unknown name", t, func() {
		gw := &scriptGateway{}
		out := runScript(t, gw, "nobody\nquit\n")

		Convey("The loop stays on the login screen with an alert", func() {
			So(out, ShouldContainSubstring, "valid name")
			So(gw.doneIDs, ShouldBeEmpty)
		})
	})
}

func TestLoopReportsUnknownCommand(t *testing.T) {
	Convey("Given a mission-screen command the loop does not know", t, func() {
		gw := &scriptGateway{}
		out := runScript(t, gw, "Léa\nfrobnicate\nquit\n")

		Convey("The loop says so and keeps going", func() {
			So(out, ShouldContainSubstring, "unknown command: frobnicate")
			So(gw.doneIDs, ShouldBeEmpty)
		})
	})
}

func TestLoopQuitsOnEOF(t *testing.T) {
	Convey("Given input that ends without a quit command", t, func() {
		gw := &scriptGateway{}
		out := runScript(t, gw, "Léa\n")

		Convey("The loop exits cleanly after the script", func() {
			So(out, ShouldContainSubstring, "swap two shoes")
		})
	})
}
