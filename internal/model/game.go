package model

import "time"

// GameID uniquely identifies a game
type GameID string

// GameState represents the phase of a game
type GameState string

const (
	GameStateActive GameState = "active" // Cells can still be revealed and flagged
	GameStateWon    GameState = "won"    // Every safe cell revealed
	GameStateLost   GameState = "lost"   // A mine was revealed
)

// IsTerminal returns true for won and lost games
func (s GameState) IsTerminal() bool {
	return s == GameStateWon || s == GameStateLost
}

// Game is a board plus the bookkeeping the server keeps around it
type Game struct {
	ID    GameID
	Board *Board

	CreatedAt  time.Time
	UpdatedAt  time.Time
	FinishedAt *time.Time // Set on the terminal transition
}

// State returns the state of the game's board
func (g *Game) State() GameState {
	return g.Board.State()
}
