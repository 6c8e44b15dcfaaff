package model

// Snapshot is the player-visible projection of a board.
// Grids are row-major: Grid[y][x].
type Snapshot struct {
	Width          int
	Height         int
	Difficulty     Difficulty
	Adjacent       [][]int  // Adjacent mine count for revealed safe cells, 0 otherwise
	Revealed       [][]bool
	Mines          [][]bool // Revealed mines, or every mine once the game is over
	Flagged        [][]bool
	RemainingMines int
	ElapsedTime    int
	GameOver       bool
	Win            *bool
}
