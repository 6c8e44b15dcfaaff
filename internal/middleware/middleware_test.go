package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func decodeLog(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLoggingRecordsStatusAndSize(t *testing.T) {
	logger, buf := captureLogger()
	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/reveal", nil))

	entry := decodeLog(t, buf)
	assert.Equal(t, "http request", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "/reveal", entry["path"])
	assert.EqualValues(t, http.StatusTeapot, entry["status"])
	assert.EqualValues(t, 5, entry["size"])
}

func TestLoggingDefaultsToOK(t *testing.T) {
	logger, buf := captureLogger()
	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{}"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/status", nil))

	entry := decodeLog(t, buf)
	assert.Equal(t, "INFO", entry["level"])
	assert.EqualValues(t, http.StatusOK, entry["status"])
}

func TestLoggingWriterSupportsFlush(t *testing.T) {
	logger, _ := captureLogger()
	rr := httptest.NewRecorder()
	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		require.True(t, ok)
		flusher.Flush()
	}))

	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/events", nil))
	assert.True(t, rr.Flushed)
}

func TestRecoveryCallsHandler(t *testing.T) {
	logger, buf := captureLogger()
	var recovered any
	h := Recovery(logger, func(w http.ResponseWriter, r *http.Request, err any) {
		recovered = err
		w.WriteHeader(http.StatusInternalServerError)
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "boom", recovered)
	assert.Equal(t, "panic recovered", decodeLog(t, buf)["msg"])
}

func TestRecoveryRepanicsAbort(t *testing.T) {
	logger, _ := captureLogger()
	h := Recovery(logger, func(w http.ResponseWriter, r *http.Request, err any) {
		t.Error("abort should not reach the panic handler")
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/status", nil))
	})
}
