package sse

import (
	"net/http"
	"time"
)

const (
	// Time between keepalive pings
	pingPeriod = 15 * time.Second

	// Buffer size for outgoing messages
	sendBufferSize = 64
)

// Client represents a connected SSE client
type Client struct {
	remote      string
	send        chan []byte
	connectedAt time.Time
}

// NewClient creates a new SSE client
func NewClient(remote string) *Client {
	return &Client{
		remote:      remote,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
	}
}

// InitialFunc produces the first message of a stream. A nil message
// writes nothing.
type InitialFunc func() ([]byte, error)

// ServeSSE streams hub messages to the client until it disconnects.
// initial runs after the client is registered, so no broadcast made while
// it builds the message is missed. An error from initial is returned
// before any response is written.
func ServeSSE(w http.ResponseWriter, r *http.Request, hub *Hub, initial InitialFunc) error {
	// Check if SSE is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return nil
	}

	client := NewClient(r.RemoteAddr)
	if !hub.Register(client) {
		http.Error(w, "Server shutting down", http.StatusServiceUnavailable)
		return nil
	}
	defer hub.Unregister(client)

	var first []byte
	if initial != nil {
		msg, err := initial()
		if err != nil {
			return err
		}
		first = msg
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	w.WriteHeader(http.StatusOK)
	if first != nil {
		_, _ = w.Write(first)
	}
	flusher.Flush()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-client.send:
			if !ok {
				// Hub closed the channel
				return nil
			}
			if _, err := w.Write(message); err != nil {
				return nil
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return nil
			}
			flusher.Flush()

		case <-r.Context().Done():
			return nil
		}
	}
}
