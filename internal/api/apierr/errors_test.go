package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/minesweeper/internal/model"
)

func TestWriteErrorMapsModelErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid dimensions", model.ErrInvalidDimensions, http.StatusBadRequest, CodeInvalidDimensions},
		{"invalid difficulty", model.ErrInvalidDifficulty, http.StatusBadRequest, CodeInvalidDifficulty},
		{"out of bounds", model.ErrOutOfBounds, http.StatusBadRequest, CodeOutOfBounds},
		{"wrapped out of bounds", fmt.Errorf("mine at (9,9): %w", model.ErrOutOfBounds), http.StatusBadRequest, CodeOutOfBounds},
		{"not started", model.ErrGameNotStarted, http.StatusBadRequest, CodeGameNotStarted},
		{"invalid request", NewInvalidRequestError("bad body"), http.StatusBadRequest, CodeInvalidRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteError(rr, tt.err)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
			assert.Equal(t, tt.status, Status(tt.err))
		})
	}
}

func TestInvalidRequestKeepsMessage(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, NewInvalidRequestError("x and y are required"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "x and y are required", resp.Error.Message)
}
