package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/minesweeper/internal/api"
	"github.com/mcoot/minesweeper/internal/factory"
	"github.com/mcoot/minesweeper/internal/services/timer"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "mines-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/mines")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// Fast ticks so elapsed time moves during the test
	app, err := factory.New(factory.Config{
		Logger:      logger,
		TimerConfig: timer.Config{Interval: 20 * time.Millisecond},
	})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		Hub:            app.Hub,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go app.Timer.Run(ctx)

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			cancel()
			_ = app.Close()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = server.Shutdown(shutdownCtx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type gameResponse struct {
	Width          int      `json:"width"`
	Height         int      `json:"height"`
	Board          [][]int  `json:"board"`
	Revealed       [][]bool `json:"revealed"`
	Mines          [][]bool `json:"mines"`
	Flagged        [][]bool `json:"flagged"`
	RemainingMines int      `json:"remaining_mines"`
	ElapsedTime    int      `json:"elapsed_time"`
	GameOver       bool     `json:"game_over"`
	Win            *bool    `json:"win"`
}

type actionResponse struct {
	Result bool         `json:"result"`
	Game   gameResponse `json:"game"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func TestCLIHealth(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	server := startTestServer(t)
	defer server.shutdown()
	cli := newCLIRunner(t, server.addr)

	output, err := cli.run("health")
	require.NoError(t, err, output)

	var health healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &health))
	assert.Equal(t, "ok", health.Status)
}

func TestCLIGameFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	server := startTestServer(t)
	defer server.shutdown()
	cli := newCLIRunner(t, server.addr)

	// Status before any game
	output, err := cli.run("status")
	require.Error(t, err)
	assert.Contains(t, output, "GAME_NOT_STARTED")

	// Start an expert board
	output, err = cli.run("start", "--width", "12", "--height", "8", "--difficulty", "expert")
	require.NoError(t, err, output)

	var game gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	assert.Equal(t, 12, game.Width)
	assert.Equal(t, 8, game.Height)
	assert.Equal(t, 24, game.RemainingMines)
	assert.Nil(t, game.Win)

	// Flag and unflag a corner
	output, err = cli.run("flag", "11", "7")
	require.NoError(t, err, output)
	var action actionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &action))
	assert.True(t, action.Result)
	assert.True(t, action.Game.Flagged[7][11])
	assert.Equal(t, 23, action.Game.RemainingMines)

	output, err = cli.run("flag", "11", "7")
	require.NoError(t, err, output)
	require.NoError(t, json.Unmarshal([]byte(output), &action))
	assert.False(t, action.Game.Flagged[7][11])

	// Reveal a cell; whatever it is, it is now revealed or the game is lost
	output, err = cli.run("reveal", "0", "0")
	require.NoError(t, err, output)
	require.NoError(t, json.Unmarshal([]byte(output), &action))
	assert.True(t, action.Game.Revealed[0][0])
	if action.Game.GameOver {
		require.NotNil(t, action.Game.Win)
		assert.Equal(t, action.Game.Mines[0][0], !*action.Game.Win)
	}

	// Out-of-bounds coordinates are rejected
	output, err = cli.run("reveal", "--", "-1", "-1")
	require.Error(t, err)
	assert.Contains(t, output, "OUT_OF_BOUNDS")

	// The timer advances the game clock
	require.Eventually(t, func() bool {
		output, err := cli.run("status")
		if err != nil {
			return false
		}
		var g gameResponse
		if json.Unmarshal([]byte(output), &g) != nil {
			return false
		}
		return g.GameOver || g.ElapsedTime > 0
	}, 5*time.Second, 50*time.Millisecond)
}

func TestCLIEventsStream(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	server := startTestServer(t)
	defer server.shutdown()
	cli := newCLIRunner(t, server.addr)

	var stdout bytes.Buffer
	events := exec.Command(cli.binaryPath, "--server", server.addr, "events", "--json")
	events.Stdout = &stdout
	require.NoError(t, events.Start())

	// Give the stream a moment to connect before generating events
	time.Sleep(300 * time.Millisecond)

	output, err := cli.run("start", "--width", "5", "--height", "5")
	require.NoError(t, err, output)
	time.Sleep(300 * time.Millisecond)

	require.NoError(t, events.Process.Signal(os.Interrupt))
	_ = events.Wait()

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], `"event":"state"`)
}
