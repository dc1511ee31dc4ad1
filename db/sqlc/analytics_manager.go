package sqlc

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	mb "github.com/MarziyaHasanova31/battleship/models/battleship"
)

type AnalyticsManager struct {
	queries Querier
}

func NewAnalyticsManager(queries Querier) *AnalyticsManager {
	return &AnalyticsManager{queries: queries}
}

func (a *AnalyticsManager) IncrementGamesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	return a.queries.AnalyticsIncrementGamesCreatedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) IncrementGamesFinishedCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	return a.queries.AnalyticsIncrementGamesFinishedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetGamesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	return a.queries.AnalyticsGetGamesCreatedCount(ctx, serverIpNet)
}

type finalBoard struct {
	Player string  `json:"player"`
	Grid   [][]int `json:"grid"`
}

// RecordGameResult stores the outcome of a finished game together with
// both final grids.
func (a *AnalyticsManager) RecordGameResult(ctx context.Context, game *mb.Game) error {
	gameUuid, err := uuid.Parse(game.Uuid())
	if err != nil {
		return err
	}

	params := InsertGameResultParams{
		GameUuid: gameUuid,
		Turns:    int32(game.Turns()),
	}
	if winner, ok := game.Winner(); ok {
		params.Winner = sql.NullString{String: winner.Name(), Valid: true}
	}

	boards := make([]finalBoard, 0, 2)
	for _, p := range game.Players() {
		boards = append(boards, finalBoard{Player: p.Name(), Grid: GridToInts(p.Board().Grid())})
	}
	raw, err := json.Marshal(boards)
	if err != nil {
		return err
	}
	params.FinalBoards = pqtype.NullRawMessage{RawMessage: raw, Valid: true}

	return a.queries.InsertGameResult(ctx, params)
}

func (a *AnalyticsManager) GetGameResult(ctx context.Context, gameUuid string) (GameResult, error) {
	id, err := uuid.Parse(gameUuid)
	if err != nil {
		return GameResult{}, err
	}
	return a.queries.GetGameResult(ctx, id)
}

// GridToInts converts cell states to plain integers; encoding/json would
// otherwise write each row as a base64 byte string.
func GridToInts(grid [][]mb.CellState) [][]int {
	out := make([][]int, len(grid))
	for y := range grid {
		out[y] = make([]int, len(grid[y]))
		for x, c := range grid[y] {
			out[y][x] = int(c)
		}
	}
	return out
}
