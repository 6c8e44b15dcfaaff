package redis

import (
	"fmt"

	"github.com/mcoot/minesweeper/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "mines"

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// currentGameKey returns the Redis key holding the current game ID
func currentGameKey() string {
	return fmt.Sprintf("%s:current", keyPrefix)
}
