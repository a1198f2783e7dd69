package session_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/veiga/killer/internal/domain/model"
	"github.com/veiga/killer/internal/domain/session"
)

func assignment() model.Assignment {
	return model.Assignment{
		Player:  model.Player{ID: "1", Display: "Léa"},
		Mission: model.Mission{Text: "make the target say banana"},
		Target:  model.Target{Display: "Marc"},
	}
}

func TestSessionLifecycle(t *testing.T) {
	Convey("Given a fresh session", t, func() {
		s := session.New()
		empty := s.Snapshot()

		Convey("It starts logged out with no player", func() {
			So(s.State(), ShouldEqual, session.LoggedOut)
			_, ok := s.Player()
			So(ok, ShouldBeFalse)
			So(s.Generation(), ShouldBeBlank)
		})

		Convey("Login populates every field atomically", func() {
			So(s.Login(assignment()), ShouldBeNil)

			v := s.Snapshot()
			So(v.State, ShouldEqual, session.MissionActive)
			So(v.Player.Display, ShouldEqual, "Léa")
			So(v.Mission.Text, ShouldEqual, "make the target say banana")
			So(v.Target.Display, ShouldEqual, "Marc")
			So(v.MissionDone, ShouldBeFalse)
			So(s.Generation(), ShouldNotBeBlank)
		})

		Convey("Login without a resolved player is rejected", func() {
			err := s.Login(model.Assignment{})
			So(err, ShouldEqual, session.ErrNoPlayer)
			So(s.State(), ShouldEqual, session.LoggedOut)
		})

		Convey("Login then logout restores the identical empty session", func() {
			So(s.Login(assignment()), ShouldBeNil)
			s.Logout()
			So(s.Snapshot(), ShouldResemble, empty)
			So(s.Generation(), ShouldBeBlank)
		})

		Convey("Each login mints a fresh generation token", func() {
			So(s.Login(assignment()), ShouldBeNil)
			first := s.Generation()
			s.Logout()
			So(s.Login(assignment()), ShouldBeNil)
			So(s.Generation(), ShouldNotEqual, first)
		})
	})
}

func TestMarkMissionDone(t *testing.T) {
	Convey("Given a logged-in session", t, func() {
		s := session.New()
		So(s.Login(assignment()), ShouldBeNil)

		Convey("Marking the mission done sets the flag", func() {
			So(s.MarkMissionDone(), ShouldBeNil)
			So(s.Snapshot().MissionDone, ShouldBeTrue)
		})

		Convey("Marking again is a no-op", func() {
			So(s.MarkMissionDone(), ShouldBeNil)
			So(s.MarkMissionDone(), ShouldBeNil)
			So(s.Snapshot().MissionDone, ShouldBeTrue)
		})

		Convey("It also works from the guess screen", func() {
			So(s.EnterGuess(), ShouldBeNil)
			So(s.MarkMissionDone(), ShouldBeNil)
		})
	})

	Convey("Given a logged-out session", t, func() {
		s := session.New()

		Convey("Marking the mission done fails", func() {
			So(s.MarkMissionDone(), ShouldEqual, session.ErrNotLoggedIn)
		})
	})
}

func TestGuessFlow(t *testing.T) {
	Convey("Given a logged-in session", t, func() {
		s := session.New()
		So(s.Login(assignment()), ShouldBeNil)

		Convey("EnterGuess moves to the guess screen", func() {
			So(s.EnterGuess(), ShouldBeNil)
			So(s.State(), ShouldEqual, session.GuessPending)
		})

		Convey("A valid accusation passes validation", func() {
			accused := model.Player{ID: "2", Display: "Marc"}
			So(s.ValidateGuess(accused, "steal my fork"), ShouldBeNil)
		})

		Convey("Self-accusation fails and leaves the session unchanged", func() {
			before := s.Snapshot()
			self := model.Player{ID: "1", Display: "Léa"}
			So(s.ValidateGuess(self, "any text"), ShouldEqual, session.ErrSelfAccusation)
			So(s.Snapshot(), ShouldResemble, before)
		})

		Convey("Blank mission text fails", func() {
			accused := model.Player{ID: "2", Display: "Marc"}
			So(s.ValidateGuess(accused, "   "), ShouldEqual, session.ErrEmptyMission)
		})

		Convey("An unresolved accused fails", func() {
			So(s.ValidateGuess(model.Player{}, "some text"), ShouldEqual, session.ErrNoPlayer)
		})
	})

	Convey("Given a logged-out session", t, func() {
		s := session.New()

		Convey("EnterGuess is rejected", func() {
			So(s.EnterGuess(), ShouldEqual, session.ErrNotLoggedIn)
		})

		Convey("Validation is rejected", func() {
			accused := model.Player{ID: "2", Display: "Marc"}
			So(s.ValidateGuess(accused, "text"), ShouldEqual, session.ErrNotLoggedIn)
		})
	})
}
