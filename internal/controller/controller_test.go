package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/lgbarn/chess-engine-go/internal/config"
	"github.com/lgbarn/chess-engine-go/internal/errors"
	"github.com/lgbarn/chess-engine-go/internal/output"
	"github.com/lgbarn/chess-engine-go/internal/service"
	"github.com/lgbarn/chess-engine-go/internal/testutil"
)

func newTestApp(t *testing.T) (*fiber.App, *service.GameManager) {
	t.Helper()
	cfg := config.NewConfigBuilder().
		WithDepth(1).
		WithLog(io.Discard).
		WithVerbosity(config.Quiet).
		Build()
	games := service.NewGameManager(cfg)
	t.Cleanup(games.Close)
	return NewApp(cfg, games), games
}

func do(t *testing.T, app *fiber.App, method, path, body string, out interface{}) int {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func TestGameRoutes(t *testing.T) {
	app, _ := newTestApp(t)

	var created service.GameState
	if code := do(t, app, http.MethodPost, "/api/games", `{"engine":"black"}`, &created); code != fiber.StatusCreated {
		t.Fatalf("POST /api/games = %d; want %d", code, fiber.StatusCreated)
	}
	testutil.AssertEqual(t, created.Engine, "black")
	path := "/api/games/" + created.ID

	var list struct {
		Games []string `json:"games"`
	}
	do(t, app, http.MethodGet, "/api/games", "", &list)
	testutil.AssertEqual(t, list.Games, []string{created.ID})

	var moved service.GameState
	if code := do(t, app, http.MethodPost, path+"/moves", `{"move":"e2e4"}`, &moved); code != fiber.StatusOK {
		t.Fatalf("POST moves = %d; want 200", code)
	}
	testutil.AssertEqual(t, len(moved.History), 2, "engine reply missing")
	testutil.AssertEqual(t, moved.SideToMove, "white")

	var got service.GameState
	do(t, app, http.MethodGet, path, "", &got)
	testutil.AssertEqual(t, got.FEN, moved.FEN)

	var engineMoved service.GameState
	if code := do(t, app, http.MethodPost, path+"/engine", "", &engineMoved); code != fiber.StatusOK {
		t.Fatalf("POST engine = %d; want 200", code)
	}
	testutil.AssertEqual(t, len(engineMoved.History), 3)
	testutil.AssertTrue(t, engineMoved.History[2].Engine, "engine ply not marked")

	req := httptest.NewRequest(http.MethodGet, path+"/pgn", nil)
	resp, err := app.Test(req, -1)
	testutil.AssertNoError(t, err)
	pgn, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, resp.StatusCode, fiber.StatusOK)
	testutil.AssertEqual(t, resp.Header.Get(fiber.HeaderContentType), "application/x-chess-pgn")
	if !strings.Contains(string(pgn), "1. e4 ") || !strings.Contains(string(pgn), `[White "Player"]`) {
		t.Errorf("GET pgn = %q; want movetext starting 1. e4", pgn)
	}

	var rec output.JSONGame
	if code := do(t, app, http.MethodGet, path+"/pgn?format=json", "", &rec); code != fiber.StatusOK {
		t.Fatalf("GET pgn?format=json = %d; want 200", code)
	}
	testutil.AssertEqual(t, rec.PlyCount, 3)
	testutil.AssertEqual(t, rec.Moves[0].UCI, "e2e4")

	if code := do(t, app, http.MethodDelete, path, "", nil); code != fiber.StatusNoContent {
		t.Errorf("DELETE = %d; want %d", code, fiber.StatusNoContent)
	}
	if code := do(t, app, http.MethodGet, path, "", nil); code != fiber.StatusNotFound {
		t.Errorf("GET deleted game = %d; want %d", code, fiber.StatusNotFound)
	}
}

func TestGameRoutes_Errors(t *testing.T) {
	app, games := newTestApp(t)
	st, err := games.CreateGame(context.Background(), service.NewGame{})
	testutil.AssertNoError(t, err)
	mated, err := games.CreateGame(context.Background(), service.NewGame{FEN: "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1"})
	testutil.AssertNoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"unknown game", http.MethodGet, "/api/games/nope", "", fiber.StatusNotFound},
		{"illegal move", http.MethodPost, "/api/games/" + st.ID + "/moves", `{"move":"e2e5"}`, fiber.StatusUnprocessableEntity},
		{"bad square", http.MethodPost, "/api/games/" + st.ID + "/moves", `{"move":"x9e4"}`, fiber.StatusBadRequest},
		{"missing move", http.MethodPost, "/api/games/" + st.ID + "/moves", `{}`, fiber.StatusBadRequest},
		{"malformed body", http.MethodPost, "/api/games/" + st.ID + "/moves", `{"move":`, fiber.StatusBadRequest},
		{"game over", http.MethodPost, "/api/games/" + mated.ID + "/moves", `{"move":"g8h8"}`, fiber.StatusConflict},
		{"bad fen", http.MethodPost, "/api/games", `{"fen":"8/8 w"}`, fiber.StatusBadRequest},
		{"bad engine side", http.MethodPost, "/api/games", `{"engine":"red"}`, fiber.StatusBadRequest},
		{"unknown game engine", http.MethodPost, "/api/games/nope/engine", "", fiber.StatusNotFound},
		{"unknown game pgn", http.MethodGet, "/api/games/nope/pgn", "", fiber.StatusNotFound},
		{"websocket without upgrade", http.MethodGet, "/ws/games/" + st.ID, "", fiber.StatusUpgradeRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.want == fiber.StatusUpgradeRequired {
				if code := do(t, app, tt.method, tt.path, tt.body, nil); code != tt.want {
					t.Errorf("%s %s = %d; want %d", tt.method, tt.path, code, tt.want)
				}
				return
			}
			var body map[string]interface{}
			code := do(t, app, tt.method, tt.path, tt.body, &body)
			if code != tt.want {
				t.Errorf("%s %s = %d; want %d (body %v)", tt.method, tt.path, code, tt.want, body)
			}
			if _, ok := body["error"]; !ok {
				t.Errorf("response %v has no error field", body)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("game x: %w", errors.ErrGameNotFound), fiber.StatusNotFound},
		{&errors.MoveError{Err: errors.ErrGameOver}, fiber.StatusConflict},
		{&errors.MoveError{Err: errors.ErrNotYourTurn}, fiber.StatusConflict},
		{&errors.MoveError{Err: errors.ErrIllegalMove}, fiber.StatusUnprocessableEntity},
		{&errors.MoveError{Err: errors.ErrLeavesKingInCheck}, fiber.StatusUnprocessableEntity},
		{&errors.ParseError{Err: errors.ErrInvalidFEN}, fiber.StatusBadRequest},
		{errors.ErrUnknownStrategy, fiber.StatusBadRequest},
		{&errors.MoveError{Err: errors.ErrPoolStopped}, fiber.StatusServiceUnavailable},
		{errors.ErrNoMove, fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("statusFor(%v) = %d; want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestHandleMessage(t *testing.T) {
	_, games := newTestApp(t)
	wsc := NewWebSocketController(games, nil)
	st, err := games.CreateGame(context.Background(), service.NewGame{})
	testutil.AssertNoError(t, err)

	move, err := newMessage(MessageTypeMove, MoveRequest{Move: "e2e4"})
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, wsc.handleMessage(context.Background(), st.ID, move))

	testutil.AssertNoError(t, wsc.handleMessage(context.Background(), st.ID, Message{Type: MessageTypeEngine}))

	got, err := games.GetGameState(st.ID)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(got.History), 2)

	bad, err := newMessage(MessageTypeMove, MoveRequest{Move: "e1e5"})
	testutil.AssertNoError(t, err)
	if err := wsc.handleMessage(context.Background(), st.ID, bad); err == nil {
		t.Error("handleMessage(illegal move) = nil; want error")
	}
	if err := wsc.handleMessage(context.Background(), st.ID, Message{Type: "resign"}); err == nil {
		t.Error("handleMessage(unknown type) = nil; want error")
	}
	if err := wsc.handleMessage(context.Background(), st.ID, Message{Type: MessageTypeMove, Payload: []byte("{")}); err == nil {
		t.Error("handleMessage(bad payload) = nil; want error")
	}
}

type recordingWriter struct {
	msgs []interface{}
	err  error
}

func (w *recordingWriter) WriteJSON(v interface{}) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, v)
	return nil
}

func TestReply(t *testing.T) {
	var logBuf strings.Builder
	cfg := config.NewConfigBuilder().
		WithLog(&logBuf).
		WithVerbosity(config.Normal).
		Build()
	wsc := NewWebSocketController(nil, cfg.Logger())

	ok := &recordingWriter{}
	wsc.reply(&conn{ws: ok}, "g1", "illegal move")
	if len(ok.msgs) != 1 {
		t.Fatalf("reply() wrote %d messages; want 1", len(ok.msgs))
	}
	msg, isMsg := ok.msgs[0].(Message)
	if !isMsg || msg.Type != MessageTypeError {
		t.Errorf("reply() wrote %+v; want an error message", ok.msgs[0])
	}
	if logBuf.Len() != 0 {
		t.Errorf("reply() logged %q on a successful write", logBuf.String())
	}

	wsc.reply(&conn{ws: &recordingWriter{err: fmt.Errorf("broken pipe")}}, "g1", "illegal move")
	if got := logBuf.String(); !strings.Contains(got, "game g1: write error: broken pipe") {
		t.Errorf("log = %q; want write error for game g1", got)
	}
}
