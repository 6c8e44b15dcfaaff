package game

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mcoot/minesweeper/internal/dependencies/clock"
	"github.com/mcoot/minesweeper/internal/dependencies/random"
	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/services/board"
	"github.com/mcoot/minesweeper/internal/storage"
)

const gameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Listener is called with every change to the current game.
// Listeners run while the controller lock is held and must not block.
type Listener func(event model.Event)

// Controller owns the current game and serializes every action on it
type Controller struct {
	mu sync.Mutex

	storage      storage.Storage
	boardService *board.Service
	clock        clock.Clock
	random       random.Random
	logger       *slog.Logger

	listeners []Listener
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	boardService *board.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:      storage,
		boardService: boardService,
		clock:        clock,
		random:       random,
		logger:       logger,
	}
}

// Subscribe registers a listener for game events
func (c *Controller) Subscribe(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// Start replaces the current game with a fresh board
func (c *Controller) Start(ctx context.Context, width, height int, difficulty model.Difficulty) (model.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, err := c.boardService.Create(width, height, difficulty)
	if err != nil {
		return model.Snapshot{}, err
	}

	previous, err := c.storage.GetCurrentGame(ctx)
	if err != nil && !errors.Is(err, model.ErrGameNotStarted) {
		return model.Snapshot{}, err
	}

	now := c.clock.Now()
	game := &model.Game{
		ID:        model.GameID(c.random.String(12, gameIDAlphabet)),
		Board:     b,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return model.Snapshot{}, err
	}
	if err := c.storage.SetCurrentGame(ctx, game.ID); err != nil {
		return model.Snapshot{}, err
	}
	if previous != "" && previous != game.ID {
		if err := c.storage.DeleteGame(ctx, previous); err != nil {
			c.logger.Warn("failed to delete previous game",
				slog.String("game_id", string(previous)),
				slog.String("error", err.Error()),
			)
		}
	}

	c.logger.Info("game started",
		slog.String("game_id", string(game.ID)),
		slog.Int("width", b.Width),
		slog.Int("height", b.Height),
		slog.String("difficulty", string(b.Difficulty)),
		slog.Int("mine_count", b.MineCount),
	)

	snap := c.boardService.Status(b)
	c.notify(model.EventGameStarted, game.ID, nil, snap)
	return snap, nil
}

// Reveal opens a cell on the current board
func (c *Controller) Reveal(ctx context.Context, pos model.Position) (board.RevealResult, model.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.loadCurrent(ctx)
	if err != nil {
		return board.RevealResult{}, model.Snapshot{}, err
	}

	result, err := c.boardService.Reveal(game.Board, pos)
	if err != nil {
		return board.RevealResult{}, model.Snapshot{}, err
	}
	if !result.Changed {
		return result, c.boardService.Status(game.Board), nil
	}

	if err := c.save(ctx, game); err != nil {
		return board.RevealResult{}, model.Snapshot{}, err
	}

	eventType := model.EventCellRevealed
	switch game.State() {
	case model.GameStateWon:
		eventType = model.EventGameWon
	case model.GameStateLost:
		eventType = model.EventGameLost
	}

	snap := c.boardService.Status(game.Board)
	c.notify(eventType, game.ID, &pos, snap)
	return result, snap, nil
}

// Flag toggles a flag on the current board. Returns false for no-ops.
func (c *Controller) Flag(ctx context.Context, pos model.Position) (bool, model.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.loadCurrent(ctx)
	if err != nil {
		return false, model.Snapshot{}, err
	}

	toggled, err := c.boardService.Flag(game.Board, pos)
	if err != nil {
		return false, model.Snapshot{}, err
	}
	if !toggled {
		return false, c.boardService.Status(game.Board), nil
	}

	if err := c.save(ctx, game); err != nil {
		return false, model.Snapshot{}, err
	}

	snap := c.boardService.Status(game.Board)
	c.notify(model.EventCellFlagged, game.ID, &pos, snap)
	return true, snap, nil
}

// Tick advances the current game's timer by one second
func (c *Controller) Tick(ctx context.Context) (model.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.loadCurrent(ctx)
	if err != nil {
		return model.Snapshot{}, err
	}

	if !c.boardService.Tick(game.Board) {
		return c.boardService.Status(game.Board), nil
	}

	if err := c.save(ctx, game); err != nil {
		return model.Snapshot{}, err
	}

	snap := c.boardService.Status(game.Board)
	c.notify(model.EventTimerTicked, game.ID, nil, snap)
	return snap, nil
}

// Status returns the player-visible state of the current game
func (c *Controller) Status(ctx context.Context) (model.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.loadCurrent(ctx)
	if err != nil {
		return model.Snapshot{}, err
	}
	return c.boardService.Status(game.Board), nil
}

// CurrentGame returns the current game record
func (c *Controller) CurrentGame(ctx context.Context) (*model.Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadCurrent(ctx)
}

// loadCurrent fetches the current game. A dangling pointer (e.g. an
// expired Redis entry) is reported the same as no game at all.
func (c *Controller) loadCurrent(ctx context.Context) (*model.Game, error) {
	id, err := c.storage.GetCurrentGame(ctx)
	if err != nil {
		return nil, err
	}

	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			return nil, model.ErrGameNotStarted
		}
		return nil, err
	}
	return game, nil
}

// save stamps the game and persists it, logging the terminal transition once
func (c *Controller) save(ctx context.Context, game *model.Game) error {
	now := c.clock.Now()
	game.UpdatedAt = now

	if state := game.State(); state.IsTerminal() && game.FinishedAt == nil {
		game.FinishedAt = &now

		msg := "game lost"
		if state == model.GameStateWon {
			msg = "game won"
		}
		c.logger.Info(msg,
			slog.String("game_id", string(game.ID)),
			slog.Int("elapsed_time", game.Board.ElapsedTime),
			slog.Int("revealed", game.Board.RevealedCount),
		)
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

func (c *Controller) notify(eventType model.EventType, id model.GameID, pos *model.Position, snap model.Snapshot) {
	event := model.Event{
		Type:      eventType,
		Timestamp: c.clock.Now(),
		GameID:    id,
		Position:  pos,
		Snapshot:  snap,
	}
	for _, l := range c.listeners {
		l(event)
	}
}

// Interface for dependency injection
type ControllerInterface interface {
	Start(ctx context.Context, width, height int, difficulty model.Difficulty) (model.Snapshot, error)
	Reveal(ctx context.Context, pos model.Position) (board.RevealResult, model.Snapshot, error)
	Flag(ctx context.Context, pos model.Position) (bool, model.Snapshot, error)
	Tick(ctx context.Context) (model.Snapshot, error)
	Status(ctx context.Context) (model.Snapshot, error)
	CurrentGame(ctx context.Context) (*model.Game, error)
	Subscribe(l Listener)
}

var _ ControllerInterface = (*Controller)(nil)
