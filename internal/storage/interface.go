package storage

import (
	"context"

	"github.com/mcoot/minesweeper/internal/model"
)

// Storage defines the interface for game persistence
type Storage interface {
	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error

	// Current game pointer. GetCurrentGame returns model.ErrGameNotStarted
	// when no game has been started.
	SetCurrentGame(ctx context.Context, id model.GameID) error
	GetCurrentGame(ctx context.Context) (model.GameID, error)
}
