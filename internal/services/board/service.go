package board

import (
	"fmt"
	"log/slog"

	"github.com/mcoot/minesweeper/internal/dependencies/random"
	"github.com/mcoot/minesweeper/internal/model"
)

// Config holds board engine settings
type Config struct {
	// FirstRevealSafe guarantees the first reveal of a board never hits a mine
	FirstRevealSafe bool
}

// DefaultConfig returns the default engine settings
func DefaultConfig() Config {
	return Config{
		FirstRevealSafe: false,
	}
}

// Service is the board engine: it creates boards and applies player actions
type Service struct {
	random random.Random
	cfg    Config
	logger *slog.Logger
}

// New creates a new board Service
func New(random random.Random, cfg Config, logger *slog.Logger) *Service {
	return &Service{
		random: random,
		cfg:    cfg,
		logger: logger,
	}
}

// RevealResult describes the effect of a reveal
type RevealResult struct {
	Changed  bool // False when the reveal was a no-op
	HitMine  bool
	Revealed int // Cells revealed by this call, flood fill included
}

// Create builds a board with mines placed uniformly at random
func (s *Service) Create(width, height int, difficulty model.Difficulty) (*model.Board, error) {
	if !model.ValidDimensions(width, height) {
		return nil, model.ErrInvalidDimensions
	}
	count, err := difficulty.MineCount(width, height)
	if err != nil {
		return nil, err
	}

	indices := s.random.Sample(width*height, count)
	mines := make([]model.Position, len(indices))
	for i, idx := range indices {
		mines[i] = model.Position{X: idx % width, Y: idx / width}
	}

	b, err := FromLayout(width, height, difficulty, mines)
	if err != nil {
		return nil, err
	}
	b.FirstRevealSafe = s.cfg.FirstRevealSafe
	return b, nil
}

// FromLayout builds a board with mines at exactly the given positions
func FromLayout(width, height int, difficulty model.Difficulty, mines []model.Position) (*model.Board, error) {
	if !model.ValidDimensions(width, height) {
		return nil, model.ErrInvalidDimensions
	}
	if !difficulty.IsValid() {
		return nil, model.ErrInvalidDifficulty
	}
	if len(mines) == 0 || len(mines) >= width*height {
		return nil, fmt.Errorf("%w: %d mines on a %dx%d board", model.ErrInvalidLayout, len(mines), width, height)
	}

	b := &model.Board{
		Width:      width,
		Height:     height,
		Difficulty: difficulty,
		MineCount:  len(mines),
		Cells:      make([]model.Cell, width*height),
	}
	for i := range b.Cells {
		b.Cells[i].State = model.CellHidden
	}

	for _, pos := range mines {
		if !b.IsValidPosition(pos) {
			return nil, fmt.Errorf("mine at (%d,%d): %w", pos.X, pos.Y, model.ErrOutOfBounds)
		}
		cell := &b.Cells[b.Index(pos)]
		if cell.IsMine {
			return nil, fmt.Errorf("%w: duplicate mine at (%d,%d)", model.ErrInvalidLayout, pos.X, pos.Y)
		}
		cell.IsMine = true
	}

	computeAdjacency(b)
	return b, nil
}

// Reveal opens the cell at pos. Revealing a zero cell flood-fills its
// connected zero region and the numbered cells bordering it.
func (s *Service) Reveal(b *model.Board, pos model.Position) (RevealResult, error) {
	if !b.IsValidPosition(pos) {
		return RevealResult{}, model.ErrOutOfBounds
	}
	if b.GameOver {
		return RevealResult{}, nil
	}

	idx := b.Index(pos)
	if b.Cells[idx].State != model.CellHidden {
		return RevealResult{}, nil
	}

	if b.FirstRevealSafe && b.RevealedCount == 0 && b.Cells[idx].IsMine {
		s.relocateMine(b, idx)
	}

	cell := &b.Cells[idx]
	cell.State = model.CellRevealed

	if cell.IsMine {
		finish(b, false)
		return RevealResult{Changed: true, HitMine: true, Revealed: 1}, nil
	}

	b.RevealedCount++
	revealed := 1
	if cell.AdjacentMines == 0 {
		revealed += floodFill(b, idx)
	}

	if b.RevealedCount == b.SafeCellCount() {
		finish(b, true)
	}

	return RevealResult{Changed: true, Revealed: revealed}, nil
}

// Flag toggles a flag on a hidden cell. Returns false for no-ops.
func (s *Service) Flag(b *model.Board, pos model.Position) (bool, error) {
	if !b.IsValidPosition(pos) {
		return false, model.ErrOutOfBounds
	}
	if b.GameOver {
		return false, nil
	}

	cell := b.Cell(pos)
	switch cell.State {
	case model.CellHidden:
		cell.State = model.CellFlagged
		b.FlaggedCount++
	case model.CellFlagged:
		cell.State = model.CellHidden
		b.FlaggedCount--
	default:
		return false, nil
	}
	return true, nil
}

// Tick advances the elapsed time by one second while the game is active
func (s *Service) Tick(b *model.Board) bool {
	if b.GameOver {
		return false
	}
	b.ElapsedTime++
	return true
}

// Status projects the board into what the player is allowed to see.
// Mine positions are only exposed for revealed cells until the game ends.
func (s *Service) Status(b *model.Board) model.Snapshot {
	snap := model.Snapshot{
		Width:          b.Width,
		Height:         b.Height,
		Difficulty:     b.Difficulty,
		Adjacent:       make([][]int, b.Height),
		Revealed:       make([][]bool, b.Height),
		Mines:          make([][]bool, b.Height),
		Flagged:        make([][]bool, b.Height),
		RemainingMines: b.RemainingMines(),
		ElapsedTime:    b.ElapsedTime,
		GameOver:       b.GameOver,
	}
	if b.Win != nil {
		win := *b.Win
		snap.Win = &win
	}

	for y := 0; y < b.Height; y++ {
		snap.Adjacent[y] = make([]int, b.Width)
		snap.Revealed[y] = make([]bool, b.Width)
		snap.Mines[y] = make([]bool, b.Width)
		snap.Flagged[y] = make([]bool, b.Width)
		for x := 0; x < b.Width; x++ {
			cell := b.Cells[y*b.Width+x]
			revealed := cell.State == model.CellRevealed

			snap.Revealed[y][x] = revealed
			snap.Flagged[y][x] = cell.State == model.CellFlagged
			snap.Mines[y][x] = cell.IsMine && (revealed || b.GameOver)
			if revealed && !cell.IsMine {
				snap.Adjacent[y][x] = cell.AdjacentMines
			}
		}
	}
	return snap
}

// relocateMine moves the mine at idx to the first mine-free cell in
// row-major order and recomputes adjacency counts
func (s *Service) relocateMine(b *model.Board, idx int) {
	for i := range b.Cells {
		if i == idx || b.Cells[i].IsMine {
			continue
		}
		b.Cells[idx].IsMine = false
		b.Cells[i].IsMine = true
		computeAdjacency(b)

		from, to := b.PositionOf(idx), b.PositionOf(i)
		s.logger.Debug("mine moved off first reveal",
			slog.Int("from_x", from.X),
			slog.Int("from_y", from.Y),
			slog.Int("to_x", to.X),
			slog.Int("to_y", to.Y),
		)
		return
	}
}

// floodFill reveals the region around a zero cell using an explicit
// work-list of cell indices. Each cell is pushed at most once because it
// is marked revealed before being pushed.
func floodFill(b *model.Board, start int) int {
	revealed := 0
	stack := []int{start}
	neighbors := make([]int, 0, 8)

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		neighbors = b.Neighbors(idx, neighbors[:0])
		for _, n := range neighbors {
			cell := &b.Cells[n]
			if cell.State != model.CellHidden || cell.IsMine {
				continue
			}
			cell.State = model.CellRevealed
			b.RevealedCount++
			revealed++
			if cell.AdjacentMines == 0 {
				stack = append(stack, n)
			}
		}
	}
	return revealed
}

// computeAdjacency fills AdjacentMines for every safe cell
func computeAdjacency(b *model.Board) {
	neighbors := make([]int, 0, 8)
	for i := range b.Cells {
		b.Cells[i].AdjacentMines = 0
		if b.Cells[i].IsMine {
			continue
		}
		neighbors = b.Neighbors(i, neighbors[:0])
		for _, n := range neighbors {
			if b.Cells[n].IsMine {
				b.Cells[i].AdjacentMines++
			}
		}
	}
}

// finish performs the one-time terminal transition
func finish(b *model.Board, win bool) {
	b.GameOver = true
	b.Win = &win
}

// Interface for dependency injection
type ServiceInterface interface {
	Create(width, height int, difficulty model.Difficulty) (*model.Board, error)
	Reveal(b *model.Board, pos model.Position) (RevealResult, error)
	Flag(b *model.Board, pos model.Position) (bool, error)
	Tick(b *model.Board) bool
	Status(b *model.Board) model.Snapshot
}

var _ ServiceInterface = (*Service)(nil)
