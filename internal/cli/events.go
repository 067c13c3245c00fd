package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/mcoot/blockgame-go/internal/api/response"
)

func newEventsCmd() *cobra.Command {
	var (
		jsonOutput bool
		count      int
	)

	cmd := &cobra.Command{
		Use:   "events <session-id>",
		Short: "Stream websocket events from a session",
		Long: `Connect to the session's websocket endpoint and stream events in real-time.

Events include:
  - session_started: Session created
  - session_reset: Session reset to a fresh game
  - piece_placed: A piece was placed on the grid
  - lines_cleared: Rows or columns were cleared
  - batch_refilled: A new batch of pieces was dealt
  - booster_activated: The score booster was bought
  - game_over: No piece in the batch fits anywhere
  - won: Every obstacle was cleared

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return streamEvents(ctx, cmd.OutOrStdout(), cfg.ServerURL, args[0], jsonOutput, count)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")
	cmd.Flags().IntVar(&count, "count", 0, "Exit after this many events (0 streams until interrupted)")

	return cmd
}

// eventsURL converts the HTTP server URL into the session's websocket URL
func eventsURL(serverURL, sessionID string) (string, error) {
	u, err := url.Parse(strings.TrimSuffix(serverURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "http", "":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported server URL scheme %q", u.Scheme)
	}

	u.Path += "/api/v1/sessions/" + sessionID + "/events"
	return u.String(), nil
}

func streamEvents(ctx context.Context, w io.Writer, serverURL, sessionID string, jsonOutput bool, count int) error {
	wsURL, err := eventsURL(serverURL, sessionID)
	if err != nil {
		return err
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if errors.Is(err, websocket.ErrBadHandshake) && resp != nil {
			return fmt.Errorf("connection refused: HTTP %d", resp.StatusCode)
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Unblock ReadMessage on cancellation
	go func() {
		<-ctx.Done()
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = conn.Close()
	}()

	out := NewOutput(OutputText, w)
	if !jsonOutput {
		fmt.Fprintf(w, "Connected to session %s\n", sessionID)
	}

	received := 0
	for count <= 0 || received < count {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				if !jsonOutput {
					fmt.Fprintln(w, "\nDisconnected")
				}
				return nil
			}
			return fmt.Errorf("stream error: %w", err)
		}
		received++

		if jsonOutput {
			fmt.Fprintln(w, string(data))
			continue
		}

		var event response.Event
		if err := json.Unmarshal(data, &event); err != nil {
			fmt.Fprintf(w, "unparseable event: %s\n", string(data))
			continue
		}
		out.Print(event)
	}

	return nil
}
