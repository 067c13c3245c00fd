package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/blockgame-go/internal/api"
	"github.com/mcoot/blockgame-go/internal/api/request"
	"github.com/mcoot/blockgame-go/internal/api/response"
	"github.com/mcoot/blockgame-go/internal/factory"
	"github.com/mcoot/blockgame-go/internal/model"
	"github.com/mcoot/blockgame-go/internal/testutil"
)

func startServer(t *testing.T) (*httptest.Server, *factory.TestApp) {
	t.Helper()

	// Empty random queue: every dealt piece is a monomino
	app := factory.NewTestApp()
	router := api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		GameController: app.GameController,
		BotService:     app.BotService,
		HubManager:     app.HubManager,
		IDs:            app.IDs,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		app.HubManager.Close()
		srv.Close()
	})
	return srv, app
}

func run(t *testing.T, serverURL string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{"--server", serverURL}, args...))

	err := cmd.Execute()
	return buf.String(), err
}

func runJSON[T any](t *testing.T, serverURL string, args ...string) T {
	t.Helper()

	out, err := run(t, serverURL, append([]string{"-o", "json"}, args...)...)
	require.NoError(t, err, out)

	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestHealth(t *testing.T) {
	srv, _ := startServer(t)

	result := runJSON[HealthResult](t, srv.URL, "health")
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, srv.URL, result.Server)

	out, err := run(t, srv.URL, "-o", "text", "health")
	require.NoError(t, err)
	assert.Equal(t, "Server: "+srv.URL+"\nStatus: ok\n", out)
}

func TestSessionNewText(t *testing.T) {
	srv, _ := startServer(t)

	out, err := run(t, srv.URL, "-o", "text", "session", "new")
	require.NoError(t, err, out)

	assert.Contains(t, out, "Session: id-1 (combo, ")
	assert.Contains(t, out, "State: playing")
	assert.Contains(t, out, "Score: 0  Combo: 0  Best: 0  Lines: 0")
	assert.Contains(t, out, "     0 1 2 3 4 5 6 7\n")
	assert.Contains(t, out, " 7 | . . . . . . . . |\n")
	assert.Contains(t, out, "Batch:\n  p1     p2     p3\n  mono   mono   mono\n  #      #      #\n")
}

func TestSessionNewOverrides(t *testing.T) {
	srv, _ := startServer(t)

	session := runJSON[response.Session](t, srv.URL,
		"session", "new", "--variant", "booster", "--grid-size", "6", "--batch-size", "2", "--smart=false")

	assert.Equal(t, "booster", session.Variant)
	assert.Equal(t, 6, session.GridSize)
	assert.Len(t, session.Batch, 2)
	require.NotNil(t, session.Booster)
	assert.Zero(t, session.Booster.Coins)
	assert.Equal(t, 5, session.Booster.Cost)

	_, err := run(t, srv.URL, "session", "new", "--variant", "classic", "--booster")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(INVALID_CONFIG)")
}

func TestSessionPlay(t *testing.T) {
	srv, _ := startServer(t)

	session := runJSON[response.Session](t, srv.URL, "session", "new")

	fit := runJSON[response.Fit](t, srv.URL, "session", "fit", session.ID, "p1", "0", "0")
	assert.True(t, fit.CanPlace)

	move := runJSON[response.Move](t, srv.URL, "session", "place", session.ID, "p1", "0", "0")
	assert.Equal(t, 10, move.Score)
	assert.Equal(t, "#.......", move.Session.Grid[0])

	fit = runJSON[response.Fit](t, srv.URL, "session", "fit", session.ID, "p2", "0", "0")
	assert.False(t, fit.CanPlace)
	assert.True(t, fit.CanPlaceAnywhere)

	out, err := run(t, srv.URL, "-o", "text", "session", "place", session.ID, "p2", "1", "0")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Placed p2 (mono) at (1,0): +10\n")
	assert.Contains(t, out, " 0 | # # . . . . . . |\n")

	gameOver := runJSON[response.GameOver](t, srv.URL, "session", "gameover", session.ID)
	assert.False(t, gameOver.GameOver)

	got := runJSON[response.Session](t, srv.URL, "session", "get", session.ID)
	assert.Equal(t, 20, got.Score.Score)
	require.Len(t, got.Batch, 1)
	assert.Equal(t, "p3", got.Batch[0].ID)
}

func TestSessionTryPlaceResolve(t *testing.T) {
	srv, _ := startServer(t)
	session := runJSON[response.Session](t, srv.URL, "session", "new")

	placement := runJSON[response.Placement](t, srv.URL, "session", "try-place", session.ID, "p1", "2", "2")
	assert.Equal(t, 10, placement.Points)

	_, err := run(t, srv.URL, "session", "refill", session.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(RESOLVE_PENDING)")

	out, err := run(t, srv.URL, "-o", "text", "session", "resolve", session.ID)
	require.NoError(t, err, out)
	assert.Equal(t, "No lines cleared\n", out)
}

func TestSessionErrors(t *testing.T) {
	srv, _ := startServer(t)

	_, err := run(t, srv.URL, "session", "get", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(SESSION_NOT_FOUND)")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "SESSION_NOT_FOUND", apiErr.Code)

	_, err = run(t, srv.URL, "-o", "yaml", "health")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown output format "yaml"`)

	_, err = run(t, srv.URL, "session", "place", "missing", "p1", "x", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid x "x"`)

	_, err = run(t, srv.URL, "session", "new", "--variant", "tetris")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(UNKNOWN_VARIANT)")

	_, err = run(t, srv.URL, "session", "fit", "missing", "p1", "0")
	require.Error(t, err)
}

func TestSessionAutoplayAndBest(t *testing.T) {
	srv, _ := startServer(t)
	session := runJSON[response.Session](t, srv.URL, "session", "new")

	result := runJSON[response.Autoplay](t, srv.URL, "session", "autoplay", session.ID, "--max-moves", "16")
	assert.Equal(t, "greedy", result.Strategy)
	assert.Len(t, result.Moves, 16)
	assert.Equal(t, 360, result.Score)

	best := runJSON[response.BestScore](t, srv.URL, "best", "combo")
	assert.Equal(t, 360, best.Best)

	out, err := run(t, srv.URL, "-o", "text", "best", "combo")
	require.NoError(t, err)
	assert.Equal(t, "Best (combo): 360\n", out)

	_, err = run(t, srv.URL, "session", "autoplay", session.ID, "--strategy", "psychic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(UNKNOWN_STRATEGY)")
}

func TestSessionListDeleteReset(t *testing.T) {
	srv, _ := startServer(t)
	session := runJSON[response.Session](t, srv.URL, "session", "new")
	runJSON[response.Move](t, srv.URL, "session", "place", session.ID, "p1", "0", "0")

	reset := runJSON[response.Session](t, srv.URL, "session", "reset", session.ID)
	assert.Zero(t, reset.Score.Score)
	assert.Equal(t, 10, reset.Score.Best)

	list := runJSON[response.SessionList](t, srv.URL, "session", "list")
	assert.Equal(t, []string{session.ID}, list.Sessions)

	out, err := run(t, srv.URL, "-o", "text", "session", "delete", session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Session deleted\n", out)

	out, err = run(t, srv.URL, "-o", "text", "session", "list")
	require.NoError(t, err)
	assert.Equal(t, "No sessions\n", out)
}

func TestVariants(t *testing.T) {
	srv, _ := startServer(t)

	list := runJSON[response.VariantList](t, srv.URL, "variants")
	assert.NotEmpty(t, list.Variants)
	assert.ElementsMatch(t, []string{"greedy", "random"}, list.Strategies)

	out, err := run(t, srv.URL, "-o", "text", "variants")
	require.NoError(t, err)
	assert.Contains(t, out, "  - classic: ")
	assert.Contains(t, out, "Strategies: ")
}

func TestVerboseTrace(t *testing.T) {
	srv, _ := startServer(t)

	out, err := run(t, srv.URL, "-v", "-o", "json", "health")
	require.NoError(t, err)
	assert.Contains(t, out, "> GET "+srv.URL+"/api/v1/health\n")
	assert.Contains(t, out, "< 200 OK\n")
}

func TestStreamEvents(t *testing.T) {
	srv, app := startServer(t)

	apiClient := NewClient(srv.URL, time.Second)
	var session response.Session
	require.NoError(t, apiClient.Post("/api/v1/sessions", nil, &session))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var buf bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- streamEvents(ctx, &buf, srv.URL, session.ID, true, 1)
	}()

	require.Eventually(t, func() bool {
		hub := app.HubManager.GetHub(model.SessionID(session.ID))
		return hub != nil && hub.ClientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	var move response.Move
	require.NoError(t, apiClient.Post("/api/v1/sessions/"+session.ID+"/place",
		request.PlaceRequest{PieceID: "p1", X: 0, Y: 0}, &move))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("timed out waiting for event")
	}

	var event response.Event
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &event))
	assert.Equal(t, "piece_placed", event.Type)
	assert.Equal(t, session.ID, event.SessionID)
}

func TestStreamEventsUnknownSession(t *testing.T) {
	srv, _ := startServer(t)

	var buf bytes.Buffer
	err := streamEvents(context.Background(), &buf, srv.URL, "missing", false, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestEventsURL(t *testing.T) {
	tests := []struct {
		server  string
		want    string
		wantErr bool
	}{
		{server: "http://localhost:8080", want: "ws://localhost:8080/api/v1/sessions/abc/events"},
		{server: "https://example.com/", want: "wss://example.com/api/v1/sessions/abc/events"},
		{server: "http://host/prefix", want: "ws://host/prefix/api/v1/sessions/abc/events"},
		{server: "ftp://host", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.server, func(t *testing.T) {
			got, err := eventsURL(tt.server, "abc")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
