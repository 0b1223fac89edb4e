package game

import (
	"errors"
	"reflect"
	"testing"
)

func TestApply_RejectionLeavesSnapshotUntouched(t *testing.T) {
	g := runningGame(Classic)

	got, err := Apply(g, SendHint{UserID: "b1", Word: "tree", Count: 2})
	if !errors.Is(err, ErrNotPlayersTurn) {
		t.Fatalf("expected notPlayersTurn, got %v", err)
	}
	if !reflect.DeepEqual(got, g) {
		t.Fatalf("rejected action must return the snapshot unchanged")
	}
}

func TestApply_ZeroCountHintRejected(t *testing.T) {
	g := runningGame(Classic)

	got, err := Apply(g, SendHint{UserID: "r1", Word: "fruit", Count: 0})
	if !errors.Is(err, ErrNoHint) {
		t.Fatalf("expected noHint for a zero-count clue, got %v", err)
	}
	if got.InterceptPhase || got.HintWordCount != 0 {
		t.Fatalf("intercept window must not open without a clue: phase=%v count=%d",
			got.InterceptPhase, got.HintWordCount)
	}
	if !reflect.DeepEqual(got, g) {
		t.Fatalf("rejected clue must return the snapshot unchanged")
	}
}

func TestApply_FullClassicMatch(t *testing.T) {
	g := lobbyGame(Classic)

	g, err := Apply(g, StartGame{Config: g.Config, Board: testBoard(), Now: 1000})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	g, err = Apply(g, SendHint{UserID: "r1", Word: "things", Count: 3})
	if err != nil {
		t.Fatalf("hint: %v", err)
	}

	for i, cell := range [][2]int{{0, 0}, {0, 1}, {1, 2}} {
		g, err = Apply(g, RevealWord{UserID: "r2", Row: cell[0], Col: cell[1], Now: int64(2000 + i)})
		if err != nil {
			t.Fatalf("reveal %d: %v", i, err)
		}
	}

	if g.State != Ended || g.Winner != Red {
		t.Fatalf("expected red to win by exhaustion, got %v/%v", g.State, g.Winner)
	}

	// Post-game actions against a running-only validator fail cleanly.
	if _, err := Apply(g, SendHint{UserID: "b1", Word: "late", Count: 1}); !errors.Is(err, ErrGameIsNotRunning) {
		t.Fatalf("expected gameIsNotRunning after the match, got %v", err)
	}

	// And a restart brings the same roster back to setup.
	g, err = Apply(g, RestartGame{})
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if g.State != Idle || len(g.Players) != 4 {
		t.Fatalf("expected an idle 4-player lobby, got %v/%d", g.State, len(g.Players))
	}
}

func TestApply_RosterActionsAlwaysPass(t *testing.T) {
	g := runningGame(Classic)

	g, err := Apply(g, AddPlayer{UserID: "late1"})
	if err != nil {
		t.Fatalf("joining a running match must pass, got %v", err)
	}
	if _, ok := g.PlayerOf("late1"); !ok {
		t.Fatalf("late joiner missing from roster")
	}

	if _, err := Apply(g, RemovePlayer{UserID: "late1"}); err != nil {
		t.Fatalf("leaving must pass, got %v", err)
	}
}

func TestValidate_CoversEveryActionKind(t *testing.T) {
	g := runningGame(Classic)
	actions := []Action{
		AddPlayer{UserID: "x"},
		RemovePlayer{UserID: "x"},
		JoinTeam{UserID: "x", Team: Red},
		SetSpyMaster{UserID: "x", Team: Red},
		RandomizeTeams{},
		UpdateConfig{},
		StartGame{},
		SendHint{},
		RevealWord{},
		InterceptWord{},
		ChangeTurn{},
		ForceChangeTurn{},
		RestartGame{},
	}
	for _, a := range actions {
		// Outcome varies per action; the point is that neither dispatch
		// panics on any member of the closed set.
		_ = Validate(g, a)
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("Reduce panicked on %T: %v", a, r)
				}
			}()
			_ = Reduce(g, a)
		}()
	}
}
