package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Game:
		o.printGame(v)
	case ActionResult:
		o.printActionResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Game response type (matches API)
type Game struct {
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

// ActionResult is the response for reveal and flag
type ActionResult struct {
	Result bool `json:"result"`
	Game   Game `json:"game"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

// StatusText describes the game outcome
func (g Game) StatusText() string {
	switch {
	case !g.GameOver:
		return "in progress"
	case g.Win != nil && *g.Win:
		return "won"
	default:
		return "lost"
	}
}

// cellSymbol renders one cell: # hidden, F flag, * mine, . empty, or a digit
func (g Game) cellSymbol(x, y int) string {
	switch {
	case g.Mines[y][x] && (g.Revealed[y][x] || !g.Flagged[y][x]):
		return "*"
	case g.Flagged[y][x]:
		return "F"
	case !g.Revealed[y][x]:
		return "#"
	case g.Board[y][x] == 0:
		return "."
	default:
		return fmt.Sprintf("%d", g.Board[y][x])
	}
}

func (o *Output) printGame(g Game) {
	_, _ = fmt.Fprint(o.w, RenderBoard(g))
	_, _ = fmt.Fprintf(o.w, "Mines remaining: %d\n", g.RemainingMines)
	_, _ = fmt.Fprintf(o.w, "Time: %ds\n", g.ElapsedTime)
	_, _ = fmt.Fprintf(o.w, "Status: %s\n", g.StatusText())
}

// RenderBoard draws the grid with column and row headers
func RenderBoard(g Game) string {
	if g.Width == 0 || len(g.Board) != g.Height {
		return ""
	}

	var b strings.Builder
	border := "    +" + strings.Repeat("---", g.Width) + "+\n"

	// Column headers
	b.WriteString("      ")
	for x := 0; x < g.Width; x++ {
		fmt.Fprintf(&b, "%-3d", x)
	}
	b.WriteString("\n")
	b.WriteString(border)

	for y := 0; y < g.Height; y++ {
		fmt.Fprintf(&b, " %2d |", y)
		for x := 0; x < g.Width; x++ {
			fmt.Fprintf(&b, " %s ", g.cellSymbol(x, y))
		}
		b.WriteString("|\n")
	}

	b.WriteString(border)
	return b.String()
}

func (o *Output) printActionResult(a ActionResult) {
	if !a.Result && !a.Game.GameOver {
		_, _ = fmt.Fprintln(o.w, "No change")
	}
	o.printGame(a.Game)
}

func (o *Output) printHealthResult(h HealthResult) {
	_, _ = fmt.Fprintf(o.w, "Status: %s\n", h.Status)
}
