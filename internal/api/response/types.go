package response

import (
	"github.com/mcoot/minesweeper/internal/model"
)

// Game is the board snapshot sent to clients. Grids are indexed [y][x].
type Game struct {
	Width          int      `json:"width"`
	Height         int      `json:"height"`
	Board          [][]int  `json:"board"`
	Revealed       [][]bool `json:"revealed"`
	Mines          [][]bool `json:"mines"`
	Flagged        [][]bool `json:"flagged"`
	RemainingMines int      `json:"remaining_mines"`
	ElapsedTime    int      `json:"elapsed_time"`
	GameOver       bool     `json:"game_over"`
	Win            *bool    `json:"win"` // null until the game is over
}

// GameFromSnapshot converts a model.Snapshot
func GameFromSnapshot(s model.Snapshot) Game {
	return Game{
		Width:          s.Width,
		Height:         s.Height,
		Board:          s.Adjacent,
		Revealed:       s.Revealed,
		Mines:          s.Mines,
		Flagged:        s.Flagged,
		RemainingMines: s.RemainingMines,
		ElapsedTime:    s.ElapsedTime,
		GameOver:       s.GameOver,
		Win:            s.Win,
	}
}

// ActionResponse is the response for reveal and flag
type ActionResponse struct {
	Result bool `json:"result"`
	Game   Game `json:"game"`
}

// HealthResponse is the response for the health check
type HealthResponse struct {
	Status string `json:"status"`
}
