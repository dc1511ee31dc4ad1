package api

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/MarziyaHasanova31/battleship/internal/commit"
	cerr "github.com/MarziyaHasanova31/battleship/internal/error"
	"github.com/MarziyaHasanova31/battleship/internal/simulation"
	mb "github.com/MarziyaHasanova31/battleship/models/battleship"
	mc "github.com/MarziyaHasanova31/battleship/models/connection"
)

type Request struct {
	payload []byte
}

func NewRequest(payload []byte) Request {
	return Request{payload: payload}
}

// HandleCreateGame creates a game from the server defaults overridden by
// the request and commits to both fleet layouts.
func (r Request) HandleCreateGame(gm mb.GameManager, defaults mb.GameConfig, src mb.RandomSource) (*mb.Game, []*commit.Commitment, mc.Message[mc.RespCreateGame]) {
	var reqCreateGame mc.Message[mc.ReqCreateGame]
	if err := json.Unmarshal(r.payload, &reqCreateGame); err != nil {
		return nil, nil, mc.NewErrMessage[mc.RespCreateGame](mc.CodeCreateGame, err, "invalid create game payload")
	}

	cfg, err := gameConfigFromReq(defaults, reqCreateGame.Payload)
	if err != nil {
		return nil, nil, mc.NewErrMessage[mc.RespCreateGame](mc.CodeCreateGame, err, "invalid game config")
	}

	game, err := gm.CreateGame(cfg, src)
	if err != nil {
		return nil, nil, mc.NewErrMessage[mc.RespCreateGame](mc.CodeCreateGame, err, "failed to create game")
	}

	players := game.Players()
	commitments := make([]*commit.Commitment, 0, len(players))
	respPlayers := make([]mc.RespPlayer, 0, len(players))
	for _, p := range players {
		c, err := commit.NewRandom(p.Board().Bits())
		if err != nil {
			gm.TerminateGame(game.Uuid())
			return nil, nil, mc.NewErrMessage[mc.RespCreateGame](mc.CodeCreateGame, err, "failed to commit fleet")
		}
		commitments = append(commitments, c)
		respPlayers = append(respPlayers, mc.RespPlayer{Uuid: p.Uuid(), Name: p.Name(), Commitment: c.RootHex()})
	}

	resp := mc.NewMessage[mc.RespCreateGame](mc.CodeCreateGame)
	resp.AddPayload(mc.RespCreateGame{
		GameUuid:  game.Uuid(),
		BoardSize: cfg.BoardSize,
		EndRule:   game.EndRule().String(),
		Players:   respPlayers,
	})
	return game, commitments, resp
}

func gameConfigFromReq(defaults mb.GameConfig, req mc.ReqCreateGame) (mb.GameConfig, error) {
	cfg := defaults
	if req.BoardSize != 0 {
		cfg.BoardSize = req.BoardSize
	}

	switch len(req.Fleets) {
	case 0:
	case 1:
		cfg.Fleets = [2][]int{req.Fleets[0], req.Fleets[0]}
	case 2:
		cfg.Fleets = [2][]int{req.Fleets[0], req.Fleets[1]}
	default:
		return cfg, cerr.ErrGameConfig(fmt.Sprintf("expected at most 2 fleets, got %d", len(req.Fleets)))
	}

	if len(req.Players) > 2 {
		return cfg, cerr.ErrGameConfig(fmt.Sprintf("expected at most 2 players, got %d", len(req.Players)))
	}
	for i, name := range req.Players {
		if name != "" {
			cfg.PlayerNames[i] = name
		}
	}

	switch req.EndRule {
	case "":
	case mb.EndRuleAllFleetsSunk.String():
		cfg.EndRule = mb.EndRuleAllFleetsSunk
	case mb.EndRuleAnyFleetSunk.String():
		cfg.EndRule = mb.EndRuleAnyFleetSunk
	default:
		return cfg, cerr.ErrGameConfig("unknown end rule " + req.EndRule)
	}
	return cfg, cfg.Validate()
}

// HandleAttack plays the current player's turn at the requested cell.
func (r Request) HandleAttack(game *mb.Game, commitments []*commit.Commitment) mc.Message[mc.RespAttack] {
	if game == nil {
		return mc.NewErrMessage[mc.RespAttack](mc.CodeAttack, cerr.ErrGameNotExist, cerr.ConstErrAttackFailed)
	}

	var reqAttack mc.Message[mc.ReqAttack]
	if err := json.Unmarshal(r.payload, &reqAttack); err != nil {
		return mc.NewErrMessage[mc.RespAttack](mc.CodeAttack, err, cerr.ConstErrAttackFailed)
	}

	return attack(game, commitments, mc.CodeAttack, reqAttack.Payload.X, reqAttack.Payload.Y)
}

// HandleAutoAttack lets the server pick a random cell the current player
// has not attacked yet.
func (r Request) HandleAutoAttack(game *mb.Game, commitments []*commit.Commitment, src mb.RandomSource) mc.Message[mc.RespAttack] {
	if game == nil {
		return mc.NewErrMessage[mc.RespAttack](mc.CodeAutoAttack, cerr.ErrGameNotExist, cerr.ConstErrAttackFailed)
	}
	if game.IsGameOver() {
		return mc.NewErrMessage[mc.RespAttack](mc.CodeAutoAttack, cerr.ErrGameFinished(game.Uuid()), cerr.ConstErrAttackFailed)
	}

	target, err := simulation.PickTarget(game.Opponent().Board(), src)
	if err != nil {
		return mc.NewErrMessage[mc.RespAttack](mc.CodeAutoAttack, err, cerr.ConstErrAttackFailed)
	}
	return attack(game, commitments, mc.CodeAutoAttack, target.X, target.Y)
}

// attack plays the turn and, when it resolved a cell, opens that cell of
// the defender's committed layout.
func attack(game *mb.Game, commitments []*commit.Commitment, code uint8, x, y int) mc.Message[mc.RespAttack] {
	actor := game.CurrentPlayer()
	defenderIdx := 1 - game.CurrentPlayerIndex()
	result, err := game.PlayTurn(x, y)

	resp := mc.NewMessage[mc.RespAttack](code)
	payload := mc.RespAttack{
		Actor:      actor.Name(),
		X:          result.X,
		Y:          result.Y,
		Outcome:    result.Outcome.String(),
		NextPlayer: game.CurrentPlayer().Name(),
		IsGameOver: game.IsGameOver(),
	}
	if result.ShipStatus != mb.ShipStatusNone {
		payload.ShipStatus = result.ShipStatus.String()
	}
	if err == nil && defenderIdx < len(commitments) && commitments[defenderIdx] != nil {
		payload.Proof = proveCell(game.Players()[defenderIdx].Board(), commitments[defenderIdx], x, y)
	}
	resp.AddPayload(payload)

	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrAttackFailed)
	}
	return resp
}

// HandleBoard renders one player's grid. Ships that were not hit are
// only drawn when reveal is set.
func (r Request) HandleBoard(game *mb.Game) mc.Message[mc.RespBoard] {
	if game == nil {
		return mc.NewErrMessage[mc.RespBoard](mc.CodeBoard, cerr.ErrGameNotExist, "no game in session")
	}

	var reqBoard mc.Message[mc.ReqBoard]
	if err := json.Unmarshal(r.payload, &reqBoard); err != nil {
		return mc.NewErrMessage[mc.RespBoard](mc.CodeBoard, err, "invalid board payload")
	}

	players := game.Players()
	idx := reqBoard.Payload.PlayerIndex
	if idx < 0 || idx >= len(players) {
		return mc.NewErrMessage[mc.RespBoard](mc.CodeBoard, fmt.Errorf("player index %d out of range", idx), "invalid player index")
	}

	resp := mc.NewMessage[mc.RespBoard](mc.CodeBoard)
	resp.AddPayload(mc.RespBoard{
		Player: players[idx].Name(),
		Board:  players[idx].Board().Render(reqBoard.Payload.Reveal),
	})
	return resp
}

// NewEndGameMessage reports the winner and reveals both layouts with
// the salts of their commitments.
func NewEndGameMessage(game *mb.Game, commitments []*commit.Commitment) mc.Message[mc.RespEndGame] {
	if game == nil {
		return mc.NewErrMessage[mc.RespEndGame](mc.CodeEndGame, cerr.ErrGameNotExist, "no game in session")
	}

	payload := mc.RespEndGame{Turns: game.Turns()}
	if winner, ok := game.Winner(); ok {
		payload.Winner = winner.Name()
	}

	for i, p := range game.Players() {
		reveal := mc.RespReveal{Player: p.Name(), Bits: bitsToInts(p.Board().Bits())}
		if i < len(commitments) && commitments[i] != nil {
			reveal.Commitment = commitments[i].RootHex()
			reveal.Salt = commitments[i].SaltHex()
		}
		payload.Reveals = append(payload.Reveals, reveal)
	}

	resp := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)
	resp.AddPayload(payload)
	return resp
}

func proveCell(board *mb.Board, c *commit.Commitment, x, y int) *commit.CellProof {
	idx := y*board.Size() + x
	proof, err := c.Prove(idx, board.Bits()[idx])
	if err != nil {
		log.Println("failed to open committed cell:", err)
		return nil
	}
	return &proof
}
