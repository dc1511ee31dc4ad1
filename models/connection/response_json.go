package connection

import "github.com/MarziyaHasanova31/battleship/internal/commit"

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespPlayer struct {
	Uuid       string `json:"uuid"`
	Name       string `json:"name"`
	Commitment string `json:"commitment"`
}

type RespCreateGame struct {
	GameUuid  string       `json:"game_uuid"`
	BoardSize int          `json:"board_size"`
	EndRule   string       `json:"end_rule"`
	Players   []RespPlayer `json:"players"`
}

type RespAttack struct {
	Actor      string `json:"actor"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Outcome    string `json:"outcome"`
	ShipStatus string `json:"ship_status,omitempty"`
	NextPlayer string `json:"next_player"`
	IsGameOver bool   `json:"is_game_over"`

	// Opens the attacked cell against the defender's commitment
	Proof *commit.CellProof `json:"proof,omitempty"`
}

// RespReveal discloses a player's layout and salt so the commitment
// sent at game creation can be checked.
type RespReveal struct {
	Player     string `json:"player"`
	Commitment string `json:"commitment"`
	Salt       string `json:"salt"`
	Bits       []int  `json:"bits"`
}

type RespEndGame struct {
	Winner  string       `json:"winner,omitempty"`
	Turns   int          `json:"turns"`
	Reveals []RespReveal `json:"reveals"`
}

type RespBoard struct {
	Player string `json:"player"`
	Board  string `json:"board"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
