package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/storage"
)

// deleteGameScript deletes a game and clears the current pointer if it
// still refers to that game
var deleteGameScript = redis.NewScript(`
redis.call("DEL", KEYS[1])
if redis.call("GET", KEYS[2]) == ARGV[1] then
	redis.call("DEL", KEYS[2])
end
return 1
`)

// saveGameScript writes a game and, while it is still the current game,
// extends the current pointer to the same TTL. ARGV[2] is the TTL in
// milliseconds; zero means no expiry.
var saveGameScript = redis.NewScript(`
local ttl = tonumber(ARGV[2])
if ttl > 0 then
	redis.call("SET", KEYS[1], ARGV[1], "PX", ttl)
	if redis.call("GET", KEYS[2]) == ARGV[3] then
		redis.call("PEXPIRE", KEYS[2], ttl)
	end
else
	redis.call("SET", KEYS[1], ARGV[1])
end
return 1
`)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	keys := []string{gameKey(game.ID), currentGameKey()}
	ttl := max(s.cfg.GameTTL.Milliseconds(), 0)
	return saveGameScript.Run(ctx, s.client, keys, data, ttl, string(game.ID)).Err()
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	keys := []string{gameKey(id), currentGameKey()}
	return deleteGameScript.Run(ctx, s.client, keys, string(id)).Err()
}

// Current game operations

func (s *Storage) SetCurrentGame(ctx context.Context, id model.GameID) error {
	return s.client.Set(ctx, currentGameKey(), string(id), s.cfg.GameTTL).Err()
}

func (s *Storage) GetCurrentGame(ctx context.Context) (model.GameID, error) {
	id, err := s.client.Get(ctx, currentGameKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrGameNotStarted
		}
		return "", err
	}
	return model.GameID(id), nil
}
