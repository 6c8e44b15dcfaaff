package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/minesweeper/internal/api/sse"
	"github.com/mcoot/minesweeper/internal/dependencies/clock"
	"github.com/mcoot/minesweeper/internal/dependencies/random"
	"github.com/mcoot/minesweeper/internal/services/board"
	"github.com/mcoot/minesweeper/internal/services/game"
	"github.com/mcoot/minesweeper/internal/services/timer"
	"github.com/mcoot/minesweeper/internal/storage"
	"github.com/mcoot/minesweeper/internal/storage/memory"
	redisstorage "github.com/mcoot/minesweeper/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	BoardService   *board.Service
	GameController *game.Controller
	Timer          *timer.Service

	// Event streaming
	Hub         *sse.Hub
	Broadcaster *sse.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// BoardConfig holds board engine policy
	BoardConfig board.Config
	// TimerConfig holds the tick interval (zero value ticks every second)
	TimerConfig timer.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, cfg.BoardConfig, cfg.TimerConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	boardCfg board.Config,
	timerCfg timer.Config,
	logger *slog.Logger,
) *App {
	boardService := board.New(rnd, boardCfg, logger.With(slog.String("component", "board")))
	gameController := game.NewController(store, boardService, clk, rnd, logger)
	timerService := timer.New(gameController, clk, timerCfg, logger.With(slog.String("component", "timer")))

	hub := sse.NewHub(logger)
	go hub.Run()

	broadcaster := sse.NewBroadcaster(hub, logger)
	gameController.Subscribe(broadcaster.HandleEvent)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		BoardService:   boardService,
		GameController: gameController,
		Timer:          timerService,
		Hub:            hub,
		Broadcaster:    broadcaster,
	}
}

// Close stops the event hub and releases storage connections
func (a *App) Close() error {
	a.Hub.Close()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
