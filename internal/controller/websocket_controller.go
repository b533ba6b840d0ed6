package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/chess-engine-go/internal/config"
	"github.com/lgbarn/chess-engine-go/internal/service"
)

// WebSocketController serves live game sessions over a websocket: it pushes
// every new game state and accepts move and engine requests.
type WebSocketController struct {
	games *service.GameManager
	log   *config.Logger
}

// NewWebSocketController creates a controller backed by games. A nil log
// discards connection diagnostics.
func NewWebSocketController(games *service.GameManager, log *config.Logger) *WebSocketController {
	return &WebSocketController{games: games, log: log}
}

// jsonWriter is the write half of a websocket connection.
type jsonWriter interface {
	WriteJSON(v interface{}) error
}

// conn serialises writes; the update pump and the read loop share it.
type conn struct {
	mu sync.Mutex
	ws jsonWriter
}

func (c *conn) send(t MessageType, payload interface{}) error {
	msg, err := newMessage(t, payload)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(msg)
}

// reply sends an error message to the client, logging a failed write.
func (wsc *WebSocketController) reply(c *conn, gameID, text string) {
	if err := c.send(MessageTypeError, text); err != nil {
		wsc.log.Logf(config.Normal, "game %s: write error: %v", gameID, err)
	}
}

// HandleConnection streams game states to the client and applies the
// moves it sends until either side closes.
func (wsc *WebSocketController) HandleConnection(ws *websocket.Conn) {
	gameID := ws.Params("gameId")
	c := &conn{ws: ws}

	updates, cancel, err := wsc.games.Subscribe(gameID)
	if err != nil {
		wsc.log.Logf(config.Quiet, "failed to subscribe to game %s: %v", gameID, err)
		wsc.reply(c, gameID, err.Error())
		ws.Close()
		return
	}
	defer cancel()

	state, err := wsc.games.GetGameState(gameID)
	if err == nil {
		err = c.send(MessageTypeGameState, state)
	}
	if err != nil {
		wsc.log.Logf(config.Quiet, "game %s: %v", gameID, err)
		return
	}

	go func() {
		for s := range updates {
			if err := c.send(MessageTypeGameState, s); err != nil {
				wsc.log.Logf(config.Normal, "game %s: write error: %v", gameID, err)
				return
			}
		}
	}()

	for {
		messageType, raw, err := ws.ReadMessage()
		if err != nil {
			wsc.log.Logf(config.Verbose, "game %s: read error: %v", gameID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			wsc.reply(c, gameID, fmt.Sprintf("parse error: %v", err))
			continue
		}
		if err := wsc.handleMessage(context.Background(), gameID, msg); err != nil {
			wsc.log.Logf(config.Verbose, "game %s: handle error: %v", gameID, err)
			wsc.reply(c, gameID, err.Error())
		}
	}
}

// handleMessage applies one client message. Resulting states reach the
// client through its subscription.
func (wsc *WebSocketController) handleMessage(ctx context.Context, gameID string, msg Message) error {
	switch msg.Type {
	case MessageTypeMove:
		var req MoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		_, err := wsc.games.MakeMove(ctx, gameID, req.Move)
		return err

	case MessageTypeEngine:
		_, err := wsc.games.EngineMove(ctx, gameID)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}
