// Package simulation drives a game with randomly chosen attacks until it
// is over, the way a console demo or a load test would.
package simulation

import (
	"errors"
	"fmt"

	"github.com/dariubs/percent"

	cerr "github.com/MarziyaHasanova31/battleship/internal/error"
	mb "github.com/MarziyaHasanova31/battleship/models/battleship"
)

type TurnRecord struct {
	Turn       int
	Actor      string
	Target     mb.Coordinates
	Outcome    mb.Outcome
	ShipStatus mb.ShipStatus
	Err        error
}

type PlayerStats struct {
	Name     string
	Shots    int
	Hits     int
	Misses   int
	Rejected int
	Accuracy float64
}

type Report struct {
	Turns  []TurnRecord
	Winner string
	Stats  [2]PlayerStats
}

type options struct {
	maxTurns int
	observer func(TurnRecord)
}

type Option func(*options)

// WithMaxTurns bounds the number of attack attempts.
func WithMaxTurns(n int) Option {
	return func(o *options) {
		o.maxTurns = n
	}
}

// WithObserver is called after every attack attempt.
func WithObserver(fn func(TurnRecord)) Option {
	return func(o *options) {
		o.observer = fn
	}
}

// Run plays random attacks until the game is over. Each attack targets a
// cell of the opponent's board that has not been attacked yet, chosen
// uniformly with src.
func Run(game *mb.Game, src mb.RandomSource, opts ...Option) (Report, error) {
	size := game.Opponent().Board().Size()
	o := options{maxTurns: size*size*2 + 1}
	for _, opt := range opts {
		opt(&o)
	}

	var report Report
	players := game.Players()
	for i, p := range players {
		report.Stats[i].Name = p.Name()
	}

	for attempt := 1; !game.IsGameOver(); attempt++ {
		if attempt > o.maxTurns {
			finalize(&report, game)
			return report, cerr.ErrMaxTurns(o.maxTurns)
		}

		actor := game.CurrentPlayerIndex()
		target, err := PickTarget(game.Opponent().Board(), src)
		if err != nil {
			finalize(&report, game)
			return report, err
		}
		result, err := game.PlayTurn(target.X, target.Y)

		rec := TurnRecord{
			Turn:       attempt,
			Actor:      players[actor].Name(),
			Target:     target,
			Outcome:    result.Outcome,
			ShipStatus: result.ShipStatus,
			Err:        err,
		}
		report.Turns = append(report.Turns, rec)

		stats := &report.Stats[actor]
		switch {
		case err == nil && result.Outcome == mb.OutcomeHit:
			stats.Shots++
			stats.Hits++
		case err == nil:
			stats.Shots++
			stats.Misses++
		case errors.Is(err, cerr.ErrDuplicateAttack), errors.Is(err, cerr.ErrInvalidCoordinate):
			stats.Rejected++
		default:
			finalize(&report, game)
			return report, err
		}

		if o.observer != nil {
			o.observer(rec)
		}
	}

	finalize(&report, game)
	return report, nil
}

// PickTarget chooses a random cell of board that has not been attacked.
func PickTarget(board *mb.Board, src mb.RandomSource) (mb.Coordinates, error) {
	open := board.OpenCells()
	if len(open) == 0 {
		return mb.Coordinates{}, fmt.Errorf("%w: no cell left to attack", cerr.ErrInvariantViolation)
	}
	return open[src.Intn(len(open))], nil
}

func finalize(report *Report, game *mb.Game) {
	for i := range report.Stats {
		if report.Stats[i].Shots > 0 {
			report.Stats[i].Accuracy = percent.PercentOf(report.Stats[i].Hits, report.Stats[i].Shots)
		}
	}
	if winner, ok := game.Winner(); ok {
		report.Winner = winner.Name()
	}
}
