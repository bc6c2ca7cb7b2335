package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/chessrules/internal/middleware"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/benbeisheim/chessrules/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals(middleware.LocalGameID).(string)
	playerID, _ := c.Locals(middleware.LocalPlayerID).(string)
	log.Debugf("websocket opened for game %s by %s", gameID, playerID)

	// every write to c, from the game's broadcasts or from this loop, goes through conn
	conn := service.NewSyncConn(c)

	// Register this connection with the game
	if err := wsc.gameService.RegisterConnection(gameID, playerID, conn); err != nil {
		log.Warnf("failed to register connection: %v", err)
		wsc.sendError(conn, err)
		closeConn(conn)
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, conn)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("read error: %v", err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(conn, fmt.Errorf("parse message: %w", err))
			continue
		}

		if err := wsc.handleMessage(conn, gameID, playerID, msg); err != nil {
			log.Debugf("game %s: message from %s rejected: %v", gameID, playerID, err)
			wsc.sendError(conn, err)
		}
	}
}

func closeConn(conn service.Conn) {
	if err := conn.Close(); err != nil {
		log.Debugf("close connection: %v", err)
	}
}

// handleMessage dispatches one client message. Successful moves and undos reach
// the client through the game's broadcast.
func (wsc *WebSocketController) handleMessage(conn service.Conn, gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return fmt.Errorf("parse move: %w", err)
		}
		return wsc.gameService.HandleMove(gameID, playerID, move.Move)

	case ws.MessageTypeUndo:
		return wsc.gameService.HandleUndo(gameID, playerID)

	case ws.MessageTypeGameState:
		state, err := wsc.gameService.GetGameState(gameID)
		if err != nil {
			return err
		}
		reply, err := ws.NewMessage(ws.MessageTypeGameState, state)
		if err != nil {
			return err
		}
		return conn.WriteJSON(reply)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(conn service.Conn, cause error) {
	msg, err := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: cause.Error()})
	if err != nil {
		log.Errorf("marshal error message: %v", err)
		return
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Debugf("send error message: %v", err)
	}
}
