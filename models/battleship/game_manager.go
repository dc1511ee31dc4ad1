package battleship

import (
	"fmt"
	"sync"

	cerr "github.com/MarziyaHasanova31/battleship/internal/error"
)

type GameConfig struct {
	BoardSize               int
	PlayerNames             [2]string
	Fleets                  [2][]int
	EndRule                 EndRule
	InvalidMoveConsumesTurn bool
}

func DefaultGameConfig() GameConfig {
	return GameConfig{
		BoardSize:   DefaultGridSize,
		PlayerNames: [2]string{"Player 1", "Player 2"},
		Fleets:      [2][]int{{3, 4}, {3, 5}},
		EndRule:     EndRuleAllFleetsSunk,
	}
}

func (cfg GameConfig) Validate() error {
	if cfg.BoardSize <= 0 || cfg.BoardSize > MaxGridSize {
		return cerr.ErrGameConfig(fmt.Sprintf("board size must be between 1 and %d, got %d", MaxGridSize, cfg.BoardSize))
	}
	if cfg.EndRule != EndRuleAllFleetsSunk && cfg.EndRule != EndRuleAnyFleetSunk {
		return cerr.ErrGameConfig(fmt.Sprintf("unknown end rule %d", cfg.EndRule))
	}

	for i, fleet := range cfg.Fleets {
		cells := 0
		for _, l := range fleet {
			if l <= 0 || l > cfg.BoardSize {
				return cerr.ErrGameConfig(fmt.Sprintf("fleet %d has ship of length %d on a %dx%d grid", i, l, cfg.BoardSize, cfg.BoardSize))
			}
			cells += l
		}
		if cells > cfg.BoardSize*cfg.BoardSize {
			return cerr.ErrGameConfig(fmt.Sprintf("fleet %d needs %d cells, grid has %d", i, cells, cfg.BoardSize*cfg.BoardSize))
		}
	}
	return nil
}

type GameManager interface {
	CreateGame(cfg GameConfig, src RandomSource) (*Game, error)
	GetGame(gameUuid string) (*Game, error)
	TerminateGame(gameUuid string)
	CountGames() int
}

type BattleshipGameManager struct {
	games map[string]*Game
	mu    sync.RWMutex
}

var _ GameManager = (*BattleshipGameManager)(nil)

func NewBattleshipGameManager() *BattleshipGameManager {
	return &BattleshipGameManager{
		games: make(map[string]*Game, 10),
	}
}

// CreateGame sets up both players with randomly placed fleets and
// registers the game.
func (bgm *BattleshipGameManager) CreateGame(cfg GameConfig, src RandomSource) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var players [2]*Player
	for i := range players {
		board, err := NewBoard(cfg.BoardSize)
		if err != nil {
			return nil, err
		}
		players[i] = NewPlayer(cfg.PlayerNames[i], board)
		if _, err := players[i].PlaceFleet(cfg.Fleets[i], src); err != nil {
			return nil, err
		}
	}

	game, err := NewGame(players[0], players[1], WithEndRule(cfg.EndRule), WithInvalidMoveConsumesTurn(cfg.InvalidMoveConsumesTurn))
	if err != nil {
		return nil, err
	}

	bgm.mu.Lock()
	bgm.games[game.Uuid()] = game
	bgm.mu.Unlock()
	return game, nil
}

func (bgm *BattleshipGameManager) GetGame(gameUuid string) (*Game, error) {
	bgm.mu.RLock()
	game, prs := bgm.games[gameUuid]
	bgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExists(gameUuid)
	}

	return game, nil
}

func (bgm *BattleshipGameManager) TerminateGame(gameUuid string) {
	bgm.mu.Lock()
	delete(bgm.games, gameUuid)
	bgm.mu.Unlock()
}

func (bgm *BattleshipGameManager) CountGames() int {
	bgm.mu.RLock()
	defer bgm.mu.RUnlock()
	return len(bgm.games)
}
