package battleship

import (
	"math/rand"

	cerr "github.com/MarziyaHasanova31/battleship/internal/error"

	"github.com/google/uuid"
)

// RandomSource is the only source of randomness the game uses.
// *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

func NewRandomSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

type Player struct {
	uuid  string
	name  string
	board *Board
}

func NewPlayer(name string, board *Board) *Player {
	return &Player{
		uuid:  uuid.NewString()[:10],
		name:  name,
		board: board,
	}
}

func (p *Player) Uuid() string {
	return p.uuid
}

func (p *Player) Name() string {
	return p.name
}

func (p *Player) Board() *Board {
	return p.board
}

type placement struct {
	origin      Coordinates
	orientation Orientation
}

// PlaceShips puts every ship on the player's board at a random in-bounds
// position that does not overlap previously placed ships. Each ship is
// drawn uniformly from all placements that currently fit, so the loop
// always terminates. If any ship has no room left the board is not
// modified and ErrCannotPlaceShip is returned. Ships already registered
// with a board are rejected with ErrShipAlreadyPlaced. On error neither
// the board nor the ships change.
func (p *Player) PlaceShips(ships []*Ship, src RandomSource) error {
	seen := make(map[*Ship]bool, len(ships))
	for _, ship := range ships {
		if ship.placed || seen[ship] {
			return cerr.ErrShipPlacedTwice(ship.origin.X, ship.origin.Y, ship.length)
		}
		seen[ship] = true
	}

	// Stand-ins keep the caller's ships untouched until every ship fits
	scratch := p.board.clone()
	base := len(scratch.ships)
	chosen := make([]placement, len(ships))
	for i, ship := range ships {
		candidates := scratch.placements(ship.Length())
		if len(candidates) == 0 {
			return cerr.ErrShipPlacementImpossible(i, ship.Length(), scratch.size)
		}

		chosen[i] = candidates[src.Intn(len(candidates))]
		standIn := &Ship{length: ship.length}
		standIn.Place(chosen[i].origin, chosen[i].orientation)
		if err := scratch.PlaceShip(standIn); err != nil {
			return err
		}
	}

	for i, ship := range ships {
		ship.Place(chosen[i].origin, chosen[i].orientation)
		ship.placed = true
		scratch.ships[base+i] = ship
	}
	*p.board = *scratch
	return nil
}

// PlaceFleet builds ships from a roster of lengths and places them.
func (p *Player) PlaceFleet(lengths []int, src RandomSource) ([]*Ship, error) {
	ships, err := NewShips(lengths...)
	if err != nil {
		return nil, err
	}
	if err := p.PlaceShips(ships, src); err != nil {
		return nil, err
	}
	return ships, nil
}

// placements lists, in a fixed order, every origin and orientation
// at which a ship of the given length fits.
func (b *Board) placements(length int) []placement {
	var candidates []placement
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			for _, o := range orientations {
				origin := NewCoordinates(x, y)
				if b.CanPlace(origin, length, o) {
					candidates = append(candidates, placement{origin: origin, orientation: o})
				}
			}
		}
	}
	return candidates
}
