package battleship

import (
	cerr "github.com/MarziyaHasanova31/battleship/internal/error"
)

type Orientation uint8

const (
	OrientationHorizontal Orientation = iota
	OrientationVertical
)

var orientations = [2]Orientation{OrientationHorizontal, OrientationVertical}

func (o Orientation) String() string {
	if o == OrientationVertical {
		return "vertical"
	}
	return "horizontal"
}

// Offset returns the step taken from the origin for each further cell
// of a footprint.
func (o Orientation) Offset() (dx, dy int) {
	if o == OrientationVertical {
		return 0, 1
	}
	return 1, 0
}

type ShipStatus uint8

const (
	ShipStatusNone ShipStatus = iota
	ShipStatusWounded
	ShipStatusDestroyed
)

func (s ShipStatus) String() string {
	switch s {
	case ShipStatusWounded:
		return "wounded"
	case ShipStatusDestroyed:
		return "destroyed"
	default:
		return ""
	}
}

type Ship struct {
	origin      Coordinates
	length      int
	orientation Orientation
	hits        int

	// set once a board has registered the ship
	placed bool
}

// NewShip returns a ship that is not placed yet. Its origin and
// orientation are assigned by Player.PlaceShips or Ship.Place.
func NewShip(length int) (*Ship, error) {
	if length <= 0 {
		return nil, cerr.ErrShipLength(length)
	}
	return &Ship{length: length}, nil
}

func NewShipAt(x, y, length int, orientation Orientation) (*Ship, error) {
	ship, err := NewShip(length)
	if err != nil {
		return nil, err
	}
	ship.Place(NewCoordinates(x, y), orientation)
	return ship, nil
}

func NewShips(lengths ...int) ([]*Ship, error) {
	ships := make([]*Ship, 0, len(lengths))
	for _, l := range lengths {
		ship, err := NewShip(l)
		if err != nil {
			return nil, err
		}
		ships = append(ships, ship)
	}
	return ships, nil
}

// Place sets where the ship goes. It has no effect on a board the ship
// is already registered with.
func (sh *Ship) Place(origin Coordinates, orientation Orientation) {
	sh.origin = origin
	sh.orientation = orientation
}

// Hit registers one more hit on the ship. A ship that is already
// destroyed cannot be hit again.
func (sh *Ship) Hit() (ShipStatus, error) {
	if sh.hits >= sh.length {
		return ShipStatusDestroyed, cerr.ErrShipAlreadyDestroyed(sh.length)
	}

	sh.hits++
	if sh.hits == sh.length {
		return ShipStatusDestroyed, nil
	}
	return ShipStatusWounded, nil
}

func (sh *Ship) IsSunk() bool {
	return sh.hits == sh.length
}

func (sh *Ship) Footprint() []Coordinates {
	return footprint(sh.origin, sh.length, sh.orientation)
}

func (sh *Ship) Origin() Coordinates {
	return sh.origin
}

func (sh *Ship) Length() int {
	return sh.length
}

func (sh *Ship) Orientation() Orientation {
	return sh.orientation
}

func (sh *Ship) Hits() int {
	return sh.hits
}

func (sh *Ship) IsPlaced() bool {
	return sh.placed
}

func footprint(origin Coordinates, length int, orientation Orientation) []Coordinates {
	dx, dy := orientation.Offset()
	cells := make([]Coordinates, length)
	for i := 0; i < length; i++ {
		cells[i] = NewCoordinates(origin.X+i*dx, origin.Y+i*dy)
	}
	return cells
}
