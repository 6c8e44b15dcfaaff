package request

// StartRequest is the request body for starting a game.
// Omitted fields fall back to a 10x10 medium board.
type StartRequest struct {
	Width      *int   `json:"width,omitempty"`
	Height     *int   `json:"height,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

// PositionRequest is the request body for revealing or flagging a cell
type PositionRequest struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}
