package battleship

import (
	"errors"

	cerr "github.com/MarziyaHasanova31/battleship/internal/error"

	"github.com/google/uuid"
)

type EndRule uint8

const (
	// The game is over once no ship cell is left on either board.
	EndRuleAllFleetsSunk EndRule = iota
	// The game is over as soon as one fleet is destroyed.
	EndRuleAnyFleetSunk
)

func (r EndRule) String() string {
	if r == EndRuleAnyFleetSunk {
		return "any"
	}
	return "all"
}

const noWinner = -1

type Game struct {
	uuid                    string
	players                 [2]*Player
	current                 int
	turns                   int
	winner                  int
	finished                bool
	rule                    EndRule
	invalidMoveConsumesTurn bool
}

type GameOption func(*Game)

func WithEndRule(rule EndRule) GameOption {
	return func(g *Game) {
		g.rule = rule
	}
}

// WithInvalidMoveConsumesTurn makes out-of-bound and repeated attacks
// pass the turn to the other player instead of letting the current
// player try again.
func WithInvalidMoveConsumesTurn(consume bool) GameOption {
	return func(g *Game) {
		g.invalidMoveConsumesTurn = consume
	}
}

func NewGame(first, second *Player, opts ...GameOption) (*Game, error) {
	for _, p := range []*Player{first, second} {
		if p == nil || p.board == nil {
			return nil, cerr.ErrNilPlayer
		}
		if err := p.board.checkDimensions(); err != nil {
			return nil, err
		}
	}

	g := &Game{
		uuid:    uuid.NewString(),
		players: [2]*Player{first, second},
		winner:  noWinner,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *Game) Uuid() string {
	return g.uuid
}

// returns the players in the order they were given to NewGame.
func (g *Game) Players() []*Player {
	return []*Player{g.players[0], g.players[1]}
}

func (g *Game) CurrentPlayerIndex() int {
	return g.current
}

func (g *Game) CurrentPlayer() *Player {
	return g.players[g.current]
}

func (g *Game) Opponent() *Player {
	return g.players[1-g.current]
}

func (g *Game) Turns() int {
	return g.turns
}

func (g *Game) EndRule() EndRule {
	return g.rule
}

// PlayTurn attacks the opponent of the current player at (x, y) and
// passes the turn. A rejected attack (out of bounds or already
// resolved) keeps the turn with the current player unless the game was
// created with WithInvalidMoveConsumesTurn(true).
func (g *Game) PlayTurn(x, y int) (AttackResult, error) {
	if g.IsGameOver() {
		return AttackResult{Coordinates: NewCoordinates(x, y)}, cerr.ErrGameFinished(g.uuid)
	}

	defender := g.Opponent()
	result, err := defender.board.Attack(x, y)
	if err != nil {
		if g.invalidMoveConsumesTurn && isRejectedMove(err) {
			g.switchPlayer()
		}
		return result, err
	}

	if g.winner == noWinner && defender.board.AllShipsSunk() {
		g.winner = g.current
	}
	g.switchPlayer()
	return result, nil
}

func (g *Game) switchPlayer() {
	g.turns++
	g.current = (g.current + 1) % 2
}

// IsGameOver applies the game's end rule to both boards. A game whose
// boards hold no ships at all is over immediately.
func (g *Game) IsGameOver() bool {
	if g.finished {
		return true
	}

	sunk := 0
	for _, p := range g.players {
		if p.board.AllShipsSunk() {
			sunk++
		}
	}

	switch g.rule {
	case EndRuleAnyFleetSunk:
		g.finished = sunk > 0
	default:
		g.finished = sunk == len(g.players)
	}
	return g.finished
}

// Winner returns the player who first destroyed the opposing fleet.
func (g *Game) Winner() (*Player, bool) {
	if g.winner == noWinner {
		return nil, false
	}
	return g.players[g.winner], true
}

func isRejectedMove(err error) bool {
	return errors.Is(err, cerr.ErrInvalidCoordinate) || errors.Is(err, cerr.ErrDuplicateAttack)
}
