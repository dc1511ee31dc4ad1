package battleship

import (
	"bytes"
	"fmt"
	"strconv"
	"text/tabwriter"

	cerr "github.com/MarziyaHasanova31/battleship/internal/error"
)

const (
	DefaultGridSize int = 10

	// Largest board a GameConfig accepts; boards come from untrusted clients.
	MaxGridSize int = 26
)

// CellState values are part of the wire and storage format; keep the
// numeric encoding stable.
type CellState uint8

const (
	CellStateEmpty CellState = iota
	CellStateShip
	CellStateHit
	CellStateMiss
)

func (c CellState) String() string {
	switch c {
	case CellStateShip:
		return "ship"
	case CellStateHit:
		return "hit"
	case CellStateMiss:
		return "miss"
	default:
		return "empty"
	}
}

const noOccupant = -1

type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewCoordinates(x, y int) Coordinates {
	return Coordinates{X: x, Y: y}
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

type Outcome uint8

const (
	OutcomeMiss Outcome = iota
	OutcomeHit
)

func (o Outcome) String() string {
	if o == OutcomeHit {
		return "Hit"
	}
	return "Miss"
}

type AttackResult struct {
	Coordinates
	Outcome    Outcome
	ShipStatus ShipStatus
	ShipLength int
}

// Board is a size x size grid indexed as cells[y][x]. Every ship cell
// keeps the index of the ship that occupies it so a hit updates the
// cell and the ship together.
type Board struct {
	size      int
	cells     [][]CellState
	occupants [][]int
	ships     []*Ship
	remaining int
}

func NewBoard(size int) (*Board, error) {
	if size <= 0 {
		return nil, cerr.ErrBoardSize(size)
	}

	b := &Board{
		size:      size,
		cells:     make([][]CellState, size),
		occupants: make([][]int, size),
	}
	for y := 0; y < size; y++ {
		b.cells[y] = make([]CellState, size)
		b.occupants[y] = make([]int, size)
		for x := 0; x < size; x++ {
			b.occupants[y][x] = noOccupant
		}
	}
	return b, nil
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) Ships() []*Ship {
	ships := make([]*Ship, len(b.ships))
	copy(ships, b.ships)
	return ships
}

func (b *Board) IsValidMove(x, y int) bool {
	return x >= 0 && x < b.size && y >= 0 && y < b.size
}

func (b *Board) Cell(x, y int) (CellState, error) {
	if !b.IsValidMove(x, y) {
		return CellStateEmpty, cerr.ErrXorYOutOfGridBound(x, y)
	}
	return b.cells[y][x], nil
}

func (b *Board) IsHit(x, y int) (bool, error) {
	state, err := b.Cell(x, y)
	if err != nil {
		return false, err
	}
	return state == CellStateShip, nil
}

// CanPlace reports whether a ship of the given length fits entirely
// inside the grid starting at origin without touching an occupied cell.
func (b *Board) CanPlace(origin Coordinates, length int, orientation Orientation) bool {
	if length <= 0 {
		return false
	}
	for _, c := range footprint(origin, length, orientation) {
		if !b.IsValidMove(c.X, c.Y) || b.cells[c.Y][c.X] != CellStateEmpty {
			return false
		}
	}
	return true
}

// PlaceShip marks the ship's footprint and registers the ship. The
// board is left untouched when the footprint is out of bounds, overlaps
// another ship, or the ship is already registered with a board.
func (b *Board) PlaceShip(ship *Ship) error {
	if ship.placed {
		return cerr.ErrShipPlacedTwice(ship.origin.X, ship.origin.Y, ship.length)
	}

	cells := ship.Footprint()
	for _, c := range cells {
		if !b.IsValidMove(c.X, c.Y) {
			return cerr.ErrXorYOutOfGridBound(c.X, c.Y)
		}
		if b.cells[c.Y][c.X] != CellStateEmpty {
			return cerr.ErrShipOverlapAt(c.X, c.Y)
		}
	}

	idx := len(b.ships)
	b.ships = append(b.ships, ship)
	for _, c := range cells {
		b.cells[c.Y][c.X] = CellStateShip
		b.occupants[c.Y][c.X] = idx
	}
	b.remaining += len(cells)
	ship.placed = true
	return nil
}

// Attack resolves a shot at (x, y). Cells that were already resolved
// are reported with ErrDuplicateAttack together with their previous
// outcome and are not modified.
func (b *Board) Attack(x, y int) (AttackResult, error) {
	result := AttackResult{Coordinates: NewCoordinates(x, y)}
	if !b.IsValidMove(x, y) {
		return result, cerr.ErrXorYOutOfGridBound(x, y)
	}

	switch b.cells[y][x] {
	case CellStateHit:
		result.Outcome = OutcomeHit
		return result, cerr.ErrAttackPositionAlreadyFilled(x, y)

	case CellStateMiss:
		result.Outcome = OutcomeMiss
		return result, cerr.ErrAttackPositionAlreadyFilled(x, y)

	case CellStateShip:
		idx := b.occupants[y][x]
		if idx < 0 || idx >= len(b.ships) {
			return result, fmt.Errorf("%w: ship cell (%d,%d) has no registered ship", cerr.ErrInvariantViolation, x, y)
		}
		ship := b.ships[idx]
		status, err := ship.Hit()
		if err != nil {
			return result, err
		}

		b.cells[y][x] = CellStateHit
		b.remaining--
		result.Outcome = OutcomeHit
		result.ShipStatus = status
		result.ShipLength = ship.Length()
		return result, nil

	default:
		b.cells[y][x] = CellStateMiss
		result.Outcome = OutcomeMiss
		return result, nil
	}
}

// OpenCells lists, row by row, the cells that have not been attacked yet.
func (b *Board) OpenCells() []Coordinates {
	var open []Coordinates
	for y := range b.cells {
		for x, c := range b.cells[y] {
			if c == CellStateEmpty || c == CellStateShip {
				open = append(open, NewCoordinates(x, y))
			}
		}
	}
	return open
}

func (b *Board) ShipCellsRemaining() int {
	return b.remaining
}

func (b *Board) AllShipsSunk() bool {
	return b.remaining == 0
}

func (b *Board) CountCells(state CellState) int {
	var n int
	for y := range b.cells {
		for _, c := range b.cells[y] {
			if c == state {
				n++
			}
		}
	}
	return n
}

// Bits flattens ship occupancy row by row; hit ship cells count as
// occupied.
func (b *Board) Bits() []uint8 {
	bits := make([]uint8, 0, b.size*b.size)
	for y := range b.cells {
		for _, c := range b.cells[y] {
			if c == CellStateShip || c == CellStateHit {
				bits = append(bits, 1)
			} else {
				bits = append(bits, 0)
			}
		}
	}
	return bits
}

// Grid returns a copy of the cell states indexed as [y][x].
func (b *Board) Grid() [][]CellState {
	grid := make([][]CellState, b.size)
	for y := range b.cells {
		grid[y] = make([]CellState, b.size)
		copy(grid[y], b.cells[y])
	}
	return grid
}

func (b *Board) checkDimensions() error {
	if len(b.cells) != b.size || len(b.occupants) != b.size {
		return cerr.ErrGridDimensions(b.size, len(b.cells))
	}
	for y := range b.cells {
		if len(b.cells[y]) != b.size || len(b.occupants[y]) != b.size {
			return cerr.ErrGridDimensions(b.size, len(b.cells))
		}
	}
	return nil
}

func (b *Board) clone() *Board {
	c := &Board{
		size:      b.size,
		cells:     b.Grid(),
		occupants: make([][]int, b.size),
		ships:     b.Ships(),
		remaining: b.remaining,
	}
	for y := range b.occupants {
		c.occupants[y] = make([]int, b.size)
		copy(c.occupants[y], b.occupants[y])
	}
	return c
}

func (b *Board) String() string {
	return b.Render(true)
}

// Render draws the grid with column numbers on top and row numbers on
// the left. With revealShips false, untouched ship cells are drawn as
// water so the board can be shown to the opponent.
func (b *Board) Render(revealShips bool) string {
	var buffer bytes.Buffer
	tw := tabwriter.NewWriter(&buffer, 3, 0, 1, ' ', 0)

	fmt.Fprint(tw, "\t")
	for x := 0; x < b.size; x++ {
		fmt.Fprint(tw, strconv.Itoa(x)+"\t")
	}
	fmt.Fprint(tw, "\n")

	for y := 0; y < b.size; y++ {
		fmt.Fprint(tw, strconv.Itoa(y)+"\t")
		for x := 0; x < b.size; x++ {
			switch b.cells[y][x] {
			case CellStateShip:
				if revealShips {
					fmt.Fprint(tw, "S\t")
				} else {
					fmt.Fprint(tw, "~\t")
				}
			case CellStateHit:
				fmt.Fprint(tw, "X\t")
			case CellStateMiss:
				fmt.Fprint(tw, "O\t")
			default:
				fmt.Fprint(tw, "~\t")
			}
		}
		fmt.Fprint(tw, "\n")
	}
	tw.Flush()
	return buffer.String()
}
