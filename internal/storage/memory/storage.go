package memory

import (
	"context"
	"sync"

	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	games   map[model.GameID]*model.Game
	current model.GameID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games: make(map[model.GameID]*model.Game),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	if s.current == id {
		s.current = ""
	}
	return nil
}

// Current game operations

func (s *Storage) SetCurrentGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = id
	return nil
}

func (s *Storage) GetCurrentGame(ctx context.Context) (model.GameID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == "" {
		return "", model.ErrGameNotStarted
	}
	return s.current, nil
}
