package battleship

import (
	"errors"
	"testing"

	cerr "github.com/MarziyaHasanova31/battleship/internal/error"
)

// newTestGame builds two size x size boards, each holding a single ship
// of length one at the given position.
func newTestGame(t *testing.T, size int, first, second Coordinates, opts ...GameOption) *Game {
	t.Helper()
	b1, b2 := mustBoard(t, size), mustBoard(t, size)
	mustPlace(t, b1, first.X, first.Y, 1, OrientationHorizontal)
	mustPlace(t, b2, second.X, second.Y, 1, OrientationHorizontal)

	game, err := NewGame(NewPlayer("Player 1", b1), NewPlayer("Player 2", b2), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return game
}

func TestNewGameRejectsNilPlayer(t *testing.T) {
	if _, err := NewGame(NewPlayer("only", mustBoard(t, 3)), nil); !errors.Is(err, cerr.ErrNilPlayer) {
		t.Fatalf("expected nil player error, got: %v", err)
	}
	if _, err := NewGame(NewPlayer("no board", nil), NewPlayer("other", mustBoard(t, 3))); !errors.Is(err, cerr.ErrNilPlayer) {
		t.Fatalf("expected nil player error, got: %v", err)
	}
}

func TestGameInitialState(t *testing.T) {
	game := newTestGame(t, 3, NewCoordinates(0, 0), NewCoordinates(1, 1))

	if game.CurrentPlayerIndex() != 0 {
		t.Fatalf("expected current player: %d\tgot: %d", 0, game.CurrentPlayerIndex())
	}
	if game.CurrentPlayer().Name() != "Player 1" || game.Opponent().Name() != "Player 2" {
		t.Fatalf("unexpected players: %s vs %s", game.CurrentPlayer().Name(), game.Opponent().Name())
	}
	if game.IsGameOver() {
		t.Fatal("game with ships on both boards must not be over")
	}
	if _, ok := game.Winner(); ok {
		t.Fatal("no winner expected before any turn")
	}
}

func TestTurnAlternation(t *testing.T) {
	b1, b2 := mustBoard(t, 10), mustBoard(t, 10)
	p1, p2 := NewPlayer("A", b1), NewPlayer("B", b2)
	src := NewRandomSource(11)
	if _, err := p1.PlaceFleet([]int{3, 4}, src); err != nil {
		t.Fatal(err)
	}
	if _, err := p2.PlaceFleet([]int{3, 5}, src); err != nil {
		t.Fatal(err)
	}

	game, err := NewGame(p1, p2)
	if err != nil {
		t.Fatal(err)
	}

	for n := 1; n <= 12; n++ {
		cell := (n - 1) / 2
		if _, err := game.PlayTurn(cell%10, cell/10); err != nil {
			t.Fatalf("turn %d: %v", n, err)
		}
		if game.CurrentPlayerIndex() != n%2 {
			t.Fatalf("after %d turns expected current player: %d\tgot: %d", n, n%2, game.CurrentPlayerIndex())
		}
		if game.Turns() != n {
			t.Fatalf("expected turns: %d\tgot: %d", n, game.Turns())
		}
	}
}

func TestPlayTurnAttacksOpponent(t *testing.T) {
	game := newTestGame(t, 3, NewCoordinates(0, 0), NewCoordinates(2, 2))

	// Player 1 shoots at Player 2's board.
	result, err := game.PlayTurn(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if result.Outcome != OutcomeHit {
		t.Fatalf("expected Hit\tgot: %s", result.Outcome)
	}
	if cell, _ := game.Players()[0].Board().Cell(2, 2); cell != CellStateEmpty {
		t.Fatalf("attacker's own board must be untouched, got: %s", cell)
	}

	// Player 2 shoots at Player 1's board.
	result, err = game.PlayTurn(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if result.Outcome != OutcomeMiss {
		t.Fatalf("expected Miss\tgot: %s", result.Outcome)
	}
}

func TestRejectedMoveTurnPolicy(t *testing.T) {
	tests := []struct {
		name            string
		consume         bool
		expectedCurrent int
	}{
		{name: "rejected move keeps the turn", consume: false, expectedCurrent: 0},
		{name: "rejected move consumes the turn", consume: true, expectedCurrent: 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			game := newTestGame(t, 3, NewCoordinates(0, 0), NewCoordinates(1, 1), WithInvalidMoveConsumesTurn(test.consume))

			if _, err := game.PlayTurn(3, 0); !errors.Is(err, cerr.ErrInvalidCoordinate) {
				t.Fatalf("expected invalid coordinate, got: %v", err)
			}
			if game.CurrentPlayerIndex() != test.expectedCurrent {
				t.Fatalf("expected current player: %d\tgot: %d", test.expectedCurrent, game.CurrentPlayerIndex())
			}
		})
	}

	game := newTestGame(t, 3, NewCoordinates(0, 0), NewCoordinates(1, 1))
	if _, err := game.PlayTurn(2, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := game.PlayTurn(2, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := game.PlayTurn(2, 2); !errors.Is(err, cerr.ErrDuplicateAttack) {
		t.Fatalf("expected duplicate attack, got: %v", err)
	}
	if game.CurrentPlayerIndex() != 0 {
		t.Fatalf("duplicate attack must keep the turn, current: %d", game.CurrentPlayerIndex())
	}
}

func TestIsGameOverAllFleetsSunk(t *testing.T) {
	game := newTestGame(t, 2, NewCoordinates(0, 0), NewCoordinates(1, 1))

	if _, err := game.PlayTurn(1, 1); err != nil {
		t.Fatal(err)
	}
	if game.IsGameOver() {
		t.Fatal("game must go on while a ship cell is left on either board")
	}
	winner, ok := game.Winner()
	if !ok || winner.Name() != "Player 1" {
		t.Fatalf("expected Player 1 to be recorded as winner, got: %v", winner)
	}

	if _, err := game.PlayTurn(0, 0); err != nil {
		t.Fatal(err)
	}
	if !game.IsGameOver() {
		t.Fatal("game must be over once no ship cell remains")
	}
	if winner, _ := game.Winner(); winner.Name() != "Player 1" {
		t.Fatalf("winner must not change after the game is decided, got: %s", winner.Name())
	}

	if _, err := game.PlayTurn(1, 0); !errors.Is(err, cerr.ErrGameOver) {
		t.Fatalf("expected game over, got: %v", err)
	}
}

func TestIsGameOverAnyFleetSunk(t *testing.T) {
	game := newTestGame(t, 2, NewCoordinates(0, 0), NewCoordinates(1, 1), WithEndRule(EndRuleAnyFleetSunk))

	if _, err := game.PlayTurn(0, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := game.PlayTurn(0, 0); err != nil {
		t.Fatal(err)
	}
	if !game.IsGameOver() {
		t.Fatal("game must be over once one fleet is destroyed")
	}
	winner, ok := game.Winner()
	if !ok || winner.Name() != "Player 2" {
		t.Fatalf("expected Player 2 to win, got: %v", winner)
	}
	if _, err := game.PlayTurn(1, 1); !errors.Is(err, cerr.ErrGameOver) {
		t.Fatalf("expected game over, got: %v", err)
	}
}

func TestSingleShipGame(t *testing.T) {
	board := mustBoard(t, 10)
	defender := NewPlayer("Defender", board)
	ship, _ := NewShip(1)
	if err := defender.PlaceShips([]*Ship{ship}, NewRandomSource(5)); err != nil {
		t.Fatal(err)
	}

	game, err := NewGame(NewPlayer("Attacker", mustBoard(t, 10)), defender)
	if err != nil {
		t.Fatal(err)
	}

	origin := ship.Origin()
	result, err := game.PlayTurn(origin.X, origin.Y)
	if err != nil {
		t.Fatal(err)
	}
	if result.Outcome != OutcomeHit {
		t.Fatalf("expected Hit\tgot: %s", result.Outcome)
	}
	if !game.IsGameOver() {
		t.Fatal("game must be over after sinking the only ship")
	}
}

func TestReferenceFleetScenario(t *testing.T) {
	p1 := NewPlayer("Player 1", mustBoard(t, 10))
	p2 := NewPlayer("Player 2", mustBoard(t, 10))
	src := NewRandomSource(2024)

	if _, err := p1.PlaceFleet([]int{3, 4}, src); err != nil {
		t.Fatal(err)
	}
	if _, err := p2.PlaceFleet([]int{3, 5}, src); err != nil {
		t.Fatal(err)
	}

	if got := p1.Board().CountCells(CellStateShip); got != 7 {
		t.Fatalf("expected ship cells on Player 1: %d\tgot: %d", 7, got)
	}
	if got := p2.Board().CountCells(CellStateShip); got != 8 {
		t.Fatalf("expected ship cells on Player 2: %d\tgot: %d", 8, got)
	}
}
