package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/mcoot/minesweeper/internal/api/response"
	"github.com/mcoot/minesweeper/internal/model"
)

// StateEvent is the SSE event name carrying a game snapshot
const StateEvent = "state"

// Broadcaster turns game events into SSE messages
type Broadcaster struct {
	hub    *Hub
	logger *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hub:    hub,
		logger: logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// HandleEvent broadcasts the snapshot carried by a game event.
// It never blocks, so it is safe to register as a controller listener.
func (b *Broadcaster) HandleEvent(event model.Event) {
	msg, err := StateMessage(event.Snapshot)
	if err != nil {
		b.logger.Error("sse failed to encode snapshot",
			slog.String("game_id", string(event.GameID)),
			slog.Any("error", err))
		return
	}
	b.hub.Broadcast(msg)
}

// StateMessage formats a snapshot as a "state" SSE message
func StateMessage(snap model.Snapshot) ([]byte, error) {
	data, err := json.Marshal(response.GameFromSnapshot(snap))
	if err != nil {
		return nil, err
	}
	return formatSSEMessage(StateEvent, string(data)), nil
}
