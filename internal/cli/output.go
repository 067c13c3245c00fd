package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcoot/blockgame-go/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	if w == nil {
		w = os.Stdout
	}
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == OutputJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == OutputJSON {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == OutputJSON {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Session:
		o.printSession(v)
	case response.SessionList:
		o.printSessionList(v)
	case response.Move:
		o.printMove(v)
	case response.Placement:
		o.printPlacement(v)
	case response.Clear:
		o.printClear(v)
	case response.Batch:
		o.printBatch(v.Batch)
		fmt.Fprintf(o.w, "State: %s\n", v.State)
	case response.Fit:
		o.printFit(v)
	case response.GameOver:
		o.printGameOver(v)
	case response.VariantList:
		o.printVariantList(v)
	case response.BestScore:
		fmt.Fprintf(o.w, "Best (%s): %d\n", v.Variant, v.Best)
	case response.Autoplay:
		o.printAutoplay(v)
	case response.Event:
		o.printEvent(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult is the health response plus the server it came from
type HealthResult struct {
	Status string `json:"status"`
	Server string `json:"server,omitempty"`
}

func (o *Output) printSession(s response.Session) {
	fmt.Fprintf(o.w, "Session: %s (%s, %s)\n", s.ID, s.Variant, s.Catalog)
	fmt.Fprintf(o.w, "State: %s\n", s.State)
	o.printScore(s.Score)
	if s.PendingResolve {
		fmt.Fprintln(o.w, "Pending resolve: yes")
	}
	if s.ObstaclesPlaced > 0 {
		fmt.Fprintf(o.w, "Obstacles: %d of %d remaining\n", s.ObstaclesRemaining, s.ObstaclesPlaced)
	}
	if s.Booster != nil {
		o.printBooster(*s.Booster)
	}

	fmt.Fprintln(o.w)
	o.printGrid(s.Grid)

	if len(s.Batch) > 0 {
		fmt.Fprintln(o.w)
		o.printBatch(s.Batch)
	}
}

func (o *Output) printScore(s response.Score) {
	fmt.Fprintf(o.w, "Score: %d  Combo: %d  Best: %d  Lines: %d\n", s.Score, s.Combo, s.Best, s.LinesCleared)
}

func (o *Output) printBooster(b response.Booster) {
	if b.Active {
		fmt.Fprintf(o.w, "Booster: x%d active, %ds left (%d coins)\n", b.Multiplier, b.RemainingSeconds, b.Coins)
		return
	}
	fmt.Fprintf(o.w, "Booster: %d coins (costs %d)\n", b.Coins, b.Cost)
}

func (o *Output) printSessionList(l response.SessionList) {
	if len(l.Sessions) == 0 {
		fmt.Fprintln(o.w, "No sessions")
		return
	}
	fmt.Fprintf(o.w, "Sessions (%d):\n", len(l.Sessions))
	for _, id := range l.Sessions {
		fmt.Fprintf(o.w, "  - %s\n", id)
	}
}

// printGrid renders grid rows with column and row headers
func (o *Output) printGrid(rows []string) {
	if len(rows) == 0 {
		return
	}

	size := len(rows)
	border := "   +" + strings.Repeat("--", size) + "-+"

	var sb strings.Builder
	sb.WriteString("    ")
	for col := 0; col < size; col++ {
		fmt.Fprintf(&sb, " %d", col%10)
	}
	sb.WriteString("\n")
	sb.WriteString(border + "\n")
	for row, line := range rows {
		fmt.Fprintf(&sb, "%2d |", row)
		for _, c := range line {
			fmt.Fprintf(&sb, " %c", c)
		}
		sb.WriteString(" |\n")
	}
	sb.WriteString(border + "\n")

	fmt.Fprint(o.w, sb.String())
}

// printBatch lays the batch shapes out side by side
func (o *Output) printBatch(batch []response.Piece) {
	if len(batch) == 0 {
		fmt.Fprintln(o.w, "Batch: empty")
		return
	}

	fmt.Fprintln(o.w, "Batch:")

	height := 0
	widths := make([]int, len(batch))
	for i, p := range batch {
		height = max(height, len(p.Shape.Rows))
		for _, r := range p.Shape.Rows {
			widths[i] = max(widths[i], len(r))
		}
		widths[i] = max(widths[i], len(p.ID), len(p.Shape.ID))
	}

	cols := make([]string, len(batch))
	for i, p := range batch {
		cols[i] = pad(p.ID, widths[i])
	}
	o.printColumns(cols)
	for i, p := range batch {
		cols[i] = pad(p.Shape.ID, widths[i])
	}
	o.printColumns(cols)

	for line := 0; line < height; line++ {
		for i, p := range batch {
			row := ""
			if line < len(p.Shape.Rows) {
				row = p.Shape.Rows[line]
			}
			cols[i] = pad(row, widths[i])
		}
		o.printColumns(cols)
	}
}

func (o *Output) printColumns(cols []string) {
	fmt.Fprintf(o.w, "  %s\n", strings.TrimRight(strings.Join(cols, "   "), " "))
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func (o *Output) printPlacement(p response.Placement) {
	fmt.Fprintf(o.w, "Placed %s (%s) at (%d,%d): +%d\n", p.PieceID, p.ShapeID, p.Origin.X, p.Origin.Y, p.Points)
}

func (o *Output) printClear(c response.Clear) {
	if c.LinesCleared == 0 {
		fmt.Fprintln(o.w, "No lines cleared")
		return
	}
	fmt.Fprintf(o.w, "Cleared %d line(s) rows=%v cols=%v: +%d", c.LinesCleared, c.Rows, c.Cols, c.Points)
	if c.Multiplier > 1 {
		fmt.Fprintf(o.w, " (x%d)", c.Multiplier)
	}
	fmt.Fprintln(o.w)
	if c.ObstaclesCleared > 0 {
		fmt.Fprintf(o.w, "Obstacles cleared: %d\n", c.ObstaclesCleared)
	}
}

func (o *Output) printMove(m response.Move) {
	o.printPlacement(m.Placement)
	if m.Clear.LinesCleared > 0 {
		o.printClear(m.Clear)
	}
	if len(m.Refilled) > 0 {
		fmt.Fprintf(o.w, "Batch refilled with %d piece(s)\n", len(m.Refilled))
	}
	fmt.Fprintln(o.w)
	o.printSession(m.Session)
}

func (o *Output) printFit(f response.Fit) {
	yesNo := func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	}
	fmt.Fprintf(o.w, "Piece %s at (%d,%d): %s\n", f.PieceID, f.Origin.X, f.Origin.Y, yesNo(f.CanPlace))
	fmt.Fprintf(o.w, "Fits anywhere: %s\n", yesNo(f.CanPlaceAnywhere))
}

func (o *Output) printGameOver(g response.GameOver) {
	if g.GameOver {
		fmt.Fprintf(o.w, "Game over (state: %s)\n", g.State)
		return
	}
	fmt.Fprintf(o.w, "Moves available (state: %s)\n", g.State)
}

func (o *Output) printVariantList(l response.VariantList) {
	fmt.Fprintln(o.w, "Variants:")
	for _, v := range l.Variants {
		var flags []string
		if v.SmartGeneration {
			flags = append(flags, "smart")
		}
		if v.Combo {
			flags = append(flags, "combo")
		}
		if v.Booster {
			flags = append(flags, "booster")
		}
		if v.ObstacleCount > 0 {
			flags = append(flags, fmt.Sprintf("obstacles=%d", v.ObstacleCount))
		}
		fmt.Fprintf(o.w, "  - %s: %s catalog, %dx%d grid, batch %d", v.Name, v.Catalog, v.GridSize, v.GridSize, v.BatchSize)
		if len(flags) > 0 {
			fmt.Fprintf(o.w, " [%s]", strings.Join(flags, ", "))
		}
		fmt.Fprintln(o.w)
	}
	fmt.Fprintf(o.w, "Strategies: %s\n", strings.Join(l.Strategies, ", "))
}

func (o *Output) printAutoplay(a response.Autoplay) {
	fmt.Fprintf(o.w, "Autoplay (%s): %d move(s)\n", a.Strategy, len(a.Moves))
	for i, m := range a.Moves {
		line := fmt.Sprintf("  %2d. %s at (%d,%d): +%d", i+1, m.PieceID, m.Origin.X, m.Origin.Y, m.Points)
		if m.LinesCleared > 0 {
			line += fmt.Sprintf(" [%d line(s)]", m.LinesCleared)
		}
		fmt.Fprintln(o.w, line)
	}
	fmt.Fprintf(o.w, "Final score: %d (state: %s)\n\n", a.Score, a.State)
	o.printSession(a.Session)
}

func (o *Output) printEvent(e response.Event) {
	timestamp := e.Timestamp.Format("15:04:05")
	if e.Payload == nil {
		fmt.Fprintf(o.w, "[%s] %s\n", timestamp, e.Type)
		return
	}
	data, _ := json.Marshal(e.Payload)
	fmt.Fprintf(o.w, "[%s] %s: %s\n", timestamp, e.Type, string(data))
}

func (o *Output) printHealthResult(h HealthResult) {
	if h.Server != "" {
		fmt.Fprintf(o.w, "Server: %s\n", h.Server)
	}
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
}
