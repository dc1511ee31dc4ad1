package battleship

import (
	"errors"
	"testing"

	cerr "github.com/MarziyaHasanova31/battleship/internal/error"
)

func TestPlaceShipsSingleShip(t *testing.T) {
	board := mustBoard(t, 10)
	player := NewPlayer("Test Player", board)

	ship, _ := NewShip(1)
	if err := player.PlaceShips([]*Ship{ship}, NewRandomSource(1)); err != nil {
		t.Fatal(err)
	}

	if got := board.CountCells(CellStateShip); got != 1 {
		t.Fatalf("expected ship cells: %d\tgot: %d", 1, got)
	}

	origin := ship.Origin()
	result, err := board.Attack(origin.X, origin.Y)
	if err != nil {
		t.Fatal(err)
	}
	if result.Outcome != OutcomeHit {
		t.Fatalf("expected Hit at %s\tgot: %s", origin, result.Outcome)
	}
	if !board.AllShipsSunk() {
		t.Fatal("board should be cleared after sinking its only ship")
	}
}

func TestPlaceShipsNeverOverlap(t *testing.T) {
	fleet := []int{5, 4, 3, 3, 2}

	for seed := int64(0); seed < 200; seed++ {
		board := mustBoard(t, 10)
		player := NewPlayer("seeded", board)

		ships, err := player.PlaceFleet(fleet, NewRandomSource(seed))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}

		seen := make(map[Coordinates]int)
		for i, ship := range ships {
			for _, c := range ship.Footprint() {
				if !board.IsValidMove(c.X, c.Y) {
					t.Fatalf("seed %d: ship %d out of bounds at %s", seed, i, c)
				}
				if other, prs := seen[c]; prs {
					t.Fatalf("seed %d: ships %d and %d overlap at %s", seed, other, i, c)
				}
				seen[c] = i
			}
		}

		if got := board.CountCells(CellStateShip); got != 17 {
			t.Fatalf("seed %d: expected ship cells: %d\tgot: %d", seed, 17, got)
		}
	}
}

func TestPlaceShipsIsDeterministicForSeed(t *testing.T) {
	place := func() []Coordinates {
		player := NewPlayer("seeded", mustBoard(t, 10))
		ships, err := player.PlaceFleet([]int{4, 3, 2}, NewRandomSource(42))
		if err != nil {
			t.Fatal(err)
		}
		origins := make([]Coordinates, len(ships))
		for i, ship := range ships {
			origins[i] = ship.Origin()
		}
		return origins
	}

	first, second := place(), place()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("ship %d: same seed placed at %s and %s", i, first[i], second[i])
		}
	}
}

func TestPlaceShipsCannotFit(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		fleet []int
	}{
		{name: "ship longer than grid", size: 3, fleet: []int{4}},
		{name: "grid full before last ship", size: 3, fleet: []int{3, 3, 3, 1}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			board := mustBoard(t, test.size)
			player := NewPlayer("crowded", board)

			_, err := player.PlaceFleet(test.fleet, NewRandomSource(7))
			if !errors.Is(err, cerr.ErrCannotPlaceShip) {
				t.Fatalf("expected cannot place ship, got: %v", err)
			}
			if got := board.CountCells(CellStateShip); got != 0 {
				t.Fatalf("failed placement must leave the board empty, ship cells: %d", got)
			}
			if len(board.Ships()) != 0 {
				t.Fatalf("failed placement must not register ships, got: %d", len(board.Ships()))
			}
		})
	}
}

func TestPlaceShipsKeepsExistingShips(t *testing.T) {
	board := mustBoard(t, 4)
	mustPlace(t, board, 0, 0, 4, OrientationHorizontal)
	player := NewPlayer("existing", board)

	ships, err := player.PlaceFleet([]int{4, 4, 4}, NewRandomSource(3))
	if err != nil {
		t.Fatal(err)
	}
	for _, ship := range ships {
		for _, c := range ship.Footprint() {
			if c.Y == 0 {
				t.Fatalf("ship placed over existing row 0 at %s", c)
			}
		}
	}
	if got := board.CountCells(CellStateShip); got != 16 {
		t.Fatalf("expected ship cells: %d\tgot: %d", 16, got)
	}
}

func TestPlaceShipsRejectsPlacedShips(t *testing.T) {
	board := mustBoard(t, 10)
	player := NewPlayer("again", board)
	ships, err := NewShips(2)
	if err != nil {
		t.Fatal(err)
	}

	if err := player.PlaceShips(ships, NewRandomSource(1)); err != nil {
		t.Fatal(err)
	}
	if err := player.PlaceShips(ships, NewRandomSource(2)); !errors.Is(err, cerr.ErrShipAlreadyPlaced) {
		t.Fatalf("expected ship already placed, got: %v", err)
	}

	twice := []*Ship{{length: 1}}
	twice = append(twice, twice[0])
	if err := player.PlaceShips(twice, NewRandomSource(3)); !errors.Is(err, cerr.ErrShipAlreadyPlaced) {
		t.Fatalf("expected same ship listed twice to be rejected, got: %v", err)
	}

	if got := board.CountCells(CellStateShip); got != 2 {
		t.Fatalf("expected ship cells: %d\tgot: %d", 2, got)
	}

	// Every cell can still be resolved and the fleet ends up sunk
	for y := 0; y < board.Size(); y++ {
		for x := 0; x < board.Size(); x++ {
			if _, err := board.Attack(x, y); err != nil {
				t.Fatalf("attack (%d,%d): %v", x, y, err)
			}
		}
	}
	if !board.AllShipsSunk() || !ships[0].IsSunk() {
		t.Fatalf("expected fleet sunk, remaining: %d\thits: %d", board.ShipCellsRemaining(), ships[0].Hits())
	}
}

func TestPlaceShipsFailureKeepsShipsUnplaced(t *testing.T) {
	board := mustBoard(t, 3)
	player := NewPlayer("crowded", board)
	ships, err := NewShips(3, 3, 3, 1)
	if err != nil {
		t.Fatal(err)
	}

	if err := player.PlaceShips(ships, NewRandomSource(7)); !errors.Is(err, cerr.ErrCannotPlaceShip) {
		t.Fatalf("expected cannot place ship, got: %v", err)
	}
	for i, ship := range ships {
		if ship.IsPlaced() {
			t.Fatalf("ship %d must not be placed after a failed roster", i)
		}
		if ship.Origin() != (Coordinates{}) || ship.Orientation() != OrientationHorizontal {
			t.Fatalf("ship %d: expected untouched placement\tgot: %s %s", i, ship.Origin(), ship.Orientation())
		}
	}

	// The same ships fit once the roster is feasible
	if err := player.PlaceShips(ships[:3], NewRandomSource(7)); err != nil {
		t.Fatal(err)
	}
}
