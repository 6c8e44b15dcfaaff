package timer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mcoot/minesweeper/internal/dependencies/clock"
	"github.com/mcoot/minesweeper/internal/model"
)

// Ticker is the game operation driven by the timer
type Ticker interface {
	Tick(ctx context.Context) (model.Snapshot, error)
}

// Config holds timer settings
type Config struct {
	Interval time.Duration
}

// DefaultConfig ticks once per second
func DefaultConfig() Config {
	return Config{
		Interval: time.Second,
	}
}

// Service advances the current game's clock on a fixed interval
type Service struct {
	target Ticker
	clock  clock.Clock
	cfg    Config
	logger *slog.Logger
}

// New creates a new timer Service
func New(target Ticker, clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	return &Service{
		target: target,
		clock:  clock,
		cfg:    cfg,
		logger: logger,
	}
}

// Run ticks until ctx is cancelled
func (s *Service) Run(ctx context.Context) {
	ticker := s.clock.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.logger.Debug("timer started", slog.Duration("interval", s.cfg.Interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("timer stopped")
			return
		case <-ticker.C():
			if _, err := s.target.Tick(ctx); err != nil && !errors.Is(err, model.ErrGameNotStarted) {
				s.logger.Warn("tick failed", slog.String("error", err.Error()))
			}
		}
	}
}
