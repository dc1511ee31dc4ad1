package error

import (
	"errors"
	"fmt"
)

const (
	ConstErrAttackFailed = "attack operation failed"
)

var (
	ErrInvalidCoordinate  = errors.New("coordinate out of grid bound")
	ErrCannotPlaceShip    = errors.New("cannot place ship")
	ErrDuplicateAttack    = errors.New("position already attacked")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrShipOverlap        = errors.New("ship overlaps another ship")
	ErrInvalidShipLength  = errors.New("invalid ship length")
	ErrInvalidBoardSize   = errors.New("invalid board size")
	ErrGameOver           = errors.New("game is already over")
	ErrGameNotExist       = errors.New("game does not exist")
	ErrInvalidGameConfig  = errors.New("invalid game config")
	ErrSessionNotFound    = errors.New("session not found")
	ErrTurnLimitReached   = errors.New("turn limit reached")
	ErrNilPlayer          = errors.New("player is nil")
	ErrShipAlreadyPlaced  = errors.New("ship is already placed on a board")
)

func ErrXorYOutOfGridBound(x, y int) error {
	return fmt.Errorf("%w\tx: %d\ty: %d", ErrInvalidCoordinate, x, y)
}

func ErrAttackPositionAlreadyFilled(x, y int) error {
	return fmt.Errorf("%w\tx: %d\ty: %d", ErrDuplicateAttack, x, y)
}

func ErrShipPlacementImpossible(index, length, gridSize int) error {
	return fmt.Errorf("%w: ship %d (length %d) does not fit on a %dx%d grid", ErrCannotPlaceShip, index, length, gridSize, gridSize)
}

func ErrShipOverlapAt(x, y int) error {
	return fmt.Errorf("%w\tx: %d\ty: %d", ErrShipOverlap, x, y)
}

func ErrShipLength(length int) error {
	return fmt.Errorf("%w: %d", ErrInvalidShipLength, length)
}

func ErrBoardSize(size int) error {
	return fmt.Errorf("%w: %d", ErrInvalidBoardSize, size)
}

func ErrShipAlreadyDestroyed(length int) error {
	return fmt.Errorf("%w: hit on destroyed ship of length %d", ErrInvariantViolation, length)
}

func ErrGridDimensions(expected, rows int) error {
	return fmt.Errorf("%w: grid must be %dx%d, got %d rows", ErrInvariantViolation, expected, expected, rows)
}

func ErrGameNotExists(gameUuid string) error {
	return fmt.Errorf("%w, uuid: %s", ErrGameNotExist, gameUuid)
}

func ErrGameFinished(gameUuid string) error {
	return fmt.Errorf("%w, uuid: %s", ErrGameOver, gameUuid)
}

func ErrGameConfig(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidGameConfig, reason)
}

func ErrSessionNotExists(sessionId string) error {
	return fmt.Errorf("%w, id: %s", ErrSessionNotFound, sessionId)
}

func ErrMaxTurns(maxTurns int) error {
	return fmt.Errorf("%w: game still running after %d turns", ErrTurnLimitReached, maxTurns)
}

func ErrShipPlacedTwice(x, y, length int) error {
	return fmt.Errorf("%w: ship of length %d at (%d,%d)", ErrShipAlreadyPlaced, length, x, y)
}
