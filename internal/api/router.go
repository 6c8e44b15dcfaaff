package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/minesweeper/internal/api/handler"
	"github.com/mcoot/minesweeper/internal/api/middleware"
	"github.com/mcoot/minesweeper/internal/api/sse"
	"github.com/mcoot/minesweeper/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
	Hub            *sse.Hub

	// AllowedOrigins for CORS; empty allows any origin
	AllowedOrigins []string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.Hub, cfg.Logger)

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(mux.CORSMethodMiddleware(r))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Paths match the browser frontend
	r.HandleFunc("/start", gameHandler.Start).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/reveal", gameHandler.Reveal).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/flag", gameHandler.Flag).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/status", gameHandler.Status).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/events", gameHandler.Events).Methods(http.MethodGet)

	r.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	return r
}
