package model

// Board dimension bounds, inclusive
const (
	MinBoardSize = 5
	MaxBoardSize = 30
)

// Position identifies a cell on the board
type Position struct {
	X int // 0-indexed from left
	Y int // 0-indexed from top
}

// CellState is the player-visible state of a cell
type CellState string

const (
	CellHidden   CellState = "hidden"
	CellRevealed CellState = "revealed"
	CellFlagged  CellState = "flagged"
)

// Cell is a single square of the grid
type Cell struct {
	IsMine        bool
	State         CellState
	AdjacentMines int // Mines in the 8-neighbourhood, always 0 for mine cells
}

// Board is a Minesweeper grid together with its game state
type Board struct {
	Width      int
	Height     int
	Difficulty Difficulty
	MineCount  int
	Cells      []Cell // Row-major: Cells[y*Width+x]

	FlaggedCount  int
	RevealedCount int  // Revealed non-mine cells
	ElapsedTime   int  // Seconds, advanced by ticks only
	GameOver      bool
	Win           *bool // nil until the game ends

	// FirstRevealSafe moves a mine hit by the first reveal elsewhere
	FirstRevealSafe bool
}

// ValidDimensions reports whether width and height are within board bounds
func ValidDimensions(width, height int) bool {
	return width >= MinBoardSize && width <= MaxBoardSize &&
		height >= MinBoardSize && height <= MaxBoardSize
}

// IsValidPosition returns true if the position is within bounds
func (b *Board) IsValidPosition(pos Position) bool {
	return pos.X >= 0 && pos.X < b.Width && pos.Y >= 0 && pos.Y < b.Height
}

// Index returns the arena index of a position. The position must be valid.
func (b *Board) Index(pos Position) int {
	return pos.Y*b.Width + pos.X
}

// PositionOf returns the position of an arena index
func (b *Board) PositionOf(idx int) Position {
	return Position{X: idx % b.Width, Y: idx / b.Width}
}

// Cell returns the cell at the given position, or nil if out of bounds
func (b *Board) Cell(pos Position) *Cell {
	if !b.IsValidPosition(pos) {
		return nil
	}
	return &b.Cells[b.Index(pos)]
}

// Neighbors appends the arena indices of the 8-neighbourhood of idx to buf.
// Edge and corner cells have fewer neighbours.
func (b *Board) Neighbors(idx int, buf []int) []int {
	x, y := idx%b.Width, idx/b.Width
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= b.Width || ny < 0 || ny >= b.Height {
				continue
			}
			buf = append(buf, ny*b.Width+nx)
		}
	}
	return buf
}

// SafeCellCount returns the number of non-mine cells
func (b *Board) SafeCellCount() int {
	return b.Width*b.Height - b.MineCount
}

// RemainingMines returns the mine count minus placed flags.
// Goes negative when the player over-flags.
func (b *Board) RemainingMines() int {
	return b.MineCount - b.FlaggedCount
}

// State derives the game state from the terminal flags
func (b *Board) State() GameState {
	switch {
	case !b.GameOver:
		return GameStateActive
	case b.Win != nil && *b.Win:
		return GameStateWon
	default:
		return GameStateLost
	}
}
