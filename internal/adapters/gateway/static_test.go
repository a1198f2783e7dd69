package gateway_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/veiga/killer/internal/adapters/gateway"
	"github.com/veiga/killer/internal/domain/model"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestStaticGateway(t *testing.T) {
	Convey("Given a directory with game fixtures", t, func() {
		dir := t.TempDir()
		writeFixture(t, dir, "players.json", `[{"id":1,"display":"Léa"},{"id":2,"display":"Marc"}]`)
		writeFixture(t, dir, "missions.json", `{
			"1": {"mission":{"text":"swap two shoes"},"target":{"display":"Marc"},"mission_done":true}
		}`)
		g := gateway.NewStatic(dir)

		Convey("Players loads the roster", func() {
			players, err := g.Players(context.Background())
			So(err, ShouldBeNil)
			So(players, ShouldHaveLength, 2)
			So(players[0].Display, ShouldEqual, "Léa")
		})

		Convey("Mission resolves the assignment by player id", func() {
			a, err := g.Mission(context.Background(), model.Player{ID: "1", Display: "Léa"})
			So(err, ShouldBeNil)
			So(a.Mission.Text, ShouldEqual, "swap two shoes")
			So(a.Target.Display, ShouldEqual, "Marc")
			So(a.MissionDone, ShouldBeTrue)
			So(a.Player.Display, ShouldEqual, "Léa")
		})

		Convey("An unknown player fails with ErrUnknownPlayer", func() {
			_, err := g.Mission(context.Background(), model.Player{ID: "9", Display: "Nobody"})
			So(errors.Is(err, gateway.ErrUnknownPlayer), ShouldBeTrue)
		})

		Convey("Mutating calls are rejected as read-only", func() {
			So(errors.Is(g.ReportMissionDone(context.Background(), "1"), gateway.ErrReadOnly), ShouldBeTrue)

			err := g.SubmitGuess(context.Background(), model.Guess{PlayerID: "1", AccusedID: "2", MissionText: "x"})
			So(errors.Is(err, gateway.ErrReadOnly), ShouldBeTrue)

			_, err = g.Leaderboard(context.Background())
			So(errors.Is(err, gateway.ErrReadOnly), ShouldBeTrue)
		})
	})

	Convey("Given a missing fixtures directory", t, func() {
		g := gateway.NewStatic("/nonexistent")

		Convey("Players fails with ErrGateway", func() {
			_, err := g.Players(context.Background())
			So(errors.Is(err, gateway.ErrGateway), ShouldBeTrue)
		})
	})
}
