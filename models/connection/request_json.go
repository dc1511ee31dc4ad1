package connection

type ReqCreateGame struct {
	BoardSize int      `json:"board_size,omitempty"`
	Fleets    [][]int  `json:"fleets,omitempty"`
	Players   []string `json:"players,omitempty"`

	// "all" or "any"
	EndRule string `json:"end_rule,omitempty"`
}

type ReqAttack struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type ReqBoard struct {
	PlayerIndex int  `json:"player_index"`
	Reveal      bool `json:"reveal"`
}
