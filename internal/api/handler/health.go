package handler

import (
	"net/http"

	"github.com/mcoot/minesweeper/internal/api/response"
)

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok"})
}
