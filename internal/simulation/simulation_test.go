package simulation

import (
	"errors"
	"testing"

	cerr "github.com/MarziyaHasanova31/battleship/internal/error"
	mb "github.com/MarziyaHasanova31/battleship/models/battleship"
)

func newGame(t *testing.T, seed int64, rule mb.EndRule) *mb.Game {
	t.Helper()
	cfg := mb.DefaultGameConfig()
	cfg.EndRule = rule

	game, err := mb.NewBattleshipGameManager().CreateGame(cfg, mb.NewRandomSource(seed))
	if err != nil {
		t.Fatal(err)
	}
	return game
}

func TestRunUntilGameOver(t *testing.T) {
	tests := []struct {
		name string
		rule mb.EndRule
	}{
		{name: "all fleets sunk", rule: mb.EndRuleAllFleetsSunk},
		{name: "any fleet sunk", rule: mb.EndRuleAnyFleetSunk},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			game := newGame(t, 1, test.rule)

			var observed int
			report, err := Run(game, mb.NewRandomSource(2), WithObserver(func(TurnRecord) { observed++ }))
			if err != nil {
				t.Fatal(err)
			}

			if !game.IsGameOver() {
				t.Fatal("run returned before the game was over")
			}
			if report.Winner == "" {
				t.Fatal("expected a winner")
			}
			if observed != len(report.Turns) {
				t.Fatalf("observer saw %d turns, report has %d", observed, len(report.Turns))
			}

			for i, stats := range report.Stats {
				if stats.Hits+stats.Misses != stats.Shots {
					t.Fatalf("player %d: hits %d + misses %d != shots %d", i, stats.Hits, stats.Misses, stats.Shots)
				}
				if stats.Accuracy < 0 || stats.Accuracy > 100 {
					t.Fatalf("player %d: accuracy out of range: %f", i, stats.Accuracy)
				}
			}

			if test.rule == mb.EndRuleAllFleetsSunk {
				if report.Stats[0].Hits != 8 || report.Stats[1].Hits != 7 {
					t.Fatalf("expected every ship cell hit, got %d and %d", report.Stats[0].Hits, report.Stats[1].Hits)
				}
			}
		})
	}
}

func TestRunTurnLimit(t *testing.T) {
	game := newGame(t, 3, mb.EndRuleAllFleetsSunk)

	report, err := Run(game, mb.NewRandomSource(4), WithMaxTurns(5))
	if !errors.Is(err, cerr.ErrTurnLimitReached) {
		t.Fatalf("expected turn limit, got: %v", err)
	}
	if len(report.Turns) != 5 {
		t.Fatalf("expected recorded turns: %d\tgot: %d", 5, len(report.Turns))
	}
}

func TestRunAccuracy(t *testing.T) {
	b1, _ := mb.NewBoard(1)
	b2, _ := mb.NewBoard(1)
	s1, _ := mb.NewShipAt(0, 0, 1, mb.OrientationHorizontal)
	s2, _ := mb.NewShipAt(0, 0, 1, mb.OrientationHorizontal)
	if err := b1.PlaceShip(s1); err != nil {
		t.Fatal(err)
	}
	if err := b2.PlaceShip(s2); err != nil {
		t.Fatal(err)
	}

	game, err := mb.NewGame(mb.NewPlayer("A", b1), mb.NewPlayer("B", b2))
	if err != nil {
		t.Fatal(err)
	}

	report, err := Run(game, mb.NewRandomSource(0))
	if err != nil {
		t.Fatal(err)
	}
	if report.Winner != "A" {
		t.Fatalf("expected winner: A\tgot: %s", report.Winner)
	}
	for _, stats := range report.Stats {
		if stats.Accuracy != 100 {
			t.Fatalf("%s: expected accuracy 100\tgot: %f", stats.Name, stats.Accuracy)
		}
	}
}
