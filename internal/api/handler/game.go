package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/mcoot/minesweeper/internal/api/request"
	"github.com/mcoot/minesweeper/internal/api/response"
	"github.com/mcoot/minesweeper/internal/api/sse"
	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/services/game"
)

const (
	defaultWidth  = 10
	defaultHeight = 10
)

// GameHandler handles game endpoints
type GameHandler struct {
	controller *game.Controller
	hub        *sse.Hub
	logger     *slog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(controller *game.Controller, hub *sse.Hub, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		controller: controller,
		hub:        hub,
		logger:     logger,
	}
}

// Start handles POST /start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	width, height := defaultWidth, defaultHeight
	if req.Width != nil {
		width = *req.Width
	}
	if req.Height != nil {
		height = *req.Height
	}

	difficulty, err := model.ParseDifficulty(req.Difficulty)
	if err != nil {
		WriteError(w, err)
		return
	}

	snap, err := h.controller.Start(r.Context(), width, height, difficulty)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromSnapshot(snap))
}

// Reveal handles POST /reveal
func (h *GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	pos, err := decodePosition(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, snap, err := h.controller.Reveal(r.Context(), pos)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ActionResponse{
		Result: result.Changed && !result.HitMine,
		Game:   response.GameFromSnapshot(snap),
	})
}

// Flag handles POST /flag
func (h *GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	pos, err := decodePosition(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	toggled, snap, err := h.controller.Flag(r.Context(), pos)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ActionResponse{
		Result: toggled,
		Game:   response.GameFromSnapshot(snap),
	})
}

// Status handles GET /status
func (h *GameHandler) Status(w http.ResponseWriter, r *http.Request) {
	snap, err := h.controller.Status(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromSnapshot(snap))
}

// Events handles GET /events, streaming a state event per change
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	err := sse.ServeSSE(w, r, h.hub, func() ([]byte, error) {
		snap, err := h.controller.Status(r.Context())
		if errors.Is(err, model.ErrGameNotStarted) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return sse.StateMessage(snap)
	})
	if err != nil {
		WriteError(w, err)
	}
}

// decodeBody decodes a JSON body, treating an empty body as an empty object
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func decodePosition(r *http.Request) (model.Position, error) {
	var req request.PositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return model.Position{}, NewInvalidRequestError("invalid request body")
	}
	if req.X == nil || req.Y == nil {
		return model.Position{}, NewInvalidRequestError("x and y are required")
	}
	return model.Position{X: *req.X, Y: *req.Y}, nil
}
