package connection

const (
	CodeSessionID uint8 = iota
	CodeReceivedInvalidSessionID
	CodeCreateGame
	CodeAttack

	// Server picks a random open cell for the current player
	CodeAutoAttack
	CodeEndGame
	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent

	// Rendered view of one player's grid
	CodeBoard
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
