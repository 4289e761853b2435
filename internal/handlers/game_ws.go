// internal/handlers/game_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/middleware"
	"github.com/jason-s-yu/uno/internal/models"
	"github.com/jason-s-yu/uno/internal/session"
	"github.com/sirupsen/logrus"
)

// GameMessage is one inbound request on the game socket. The acting player is fixed
// by the playerId the socket was opened with.
type GameMessage = models.GameAction

// GameReply answers exactly one GameMessage.
type GameReply struct {
	Type     string      `json:"type"`
	Response interface{} `json:"response,omitempty"`
	Message  string      `json:"message,omitempty"`
}

// GameWSHandler upgrades GET /api/game/{gameId}/ws?playerId=... after checking that the
// player is seated in the game. Each text message gets one reply; nothing is pushed.
func GameWSHandler(gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, ok := pathGameID(w, r)
		if !ok {
			return
		}
		playerID, err := uuid.Parse(r.URL.Query().Get("playerId"))
		if err != nil {
			writeFailure(w, session.CodeInvalidRequest, "Invalid playerId")
			return
		}
		if state := gs.Games.GetGameState(r.Context(), gameID, playerID); !state.Success {
			writeJSON(w, statusFor(state.Result), state)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"game"},
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			gs.Logger.Warnf("WebSocket accept error for game %s: %v", gameID, err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "Internal server error during handler exit.")

		if c.Subprotocol() != "game" {
			c.Close(BadSubprotocolError, "Client must use the 'game' subprotocol.")
			return
		}
		middleware.LogWebSocketConnect(gs.Logger, r.RemoteAddr, r.URL.Path)

		err = readGameMessages(r.Context(), c, gs, gameID, playerID)
		middleware.LogWebSocketDisconnect(gs.Logger, r.RemoteAddr, r.URL.Path, err)
	}
}

// readGameMessages serves requests until the client goes away. A nil return means the
// socket closed normally.
func readGameMessages(ctx context.Context, c *websocket.Conn, gs *GameServer, gameID, playerID uuid.UUID) error {
	log := gs.Logger.WithFields(logrus.Fields{"game_id": gameID, "player_id": playerID})
	for {
		msgType, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		if msgType != websocket.MessageText {
			log.Warnf("Ignoring non-text message type %d", msgType)
			continue
		}

		var msg GameMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.WithError(err).Debug("invalid JSON on game socket")
			if err := sendWsError(ctx, c, "Invalid JSON format."); err != nil {
				return err
			}
			continue
		}

		reply, res := handleGameMessage(ctx, gs, gameID, playerID, msg)
		if err := sendWsMessage(ctx, c, reply); err != nil {
			return err
		}
		if res.Code == session.CodeGameNotFound {
			c.Close(GameExpiredError, "Game not found")
			return nil
		}
	}
}

// handleGameMessage dispatches one request to the session service.
func handleGameMessage(ctx context.Context, gs *GameServer, gameID, playerID uuid.UUID, msg GameMessage) (GameReply, session.Result) {
	switch msg.Type {
	case models.ActionPlayCard:
		resp := gs.Games.PlayCard(ctx, gameID, session.PlayCardRequest{
			PlayerID:    playerID,
			CardID:      msg.CardID,
			ChosenColor: msg.ChosenColor,
			CalledUno:   msg.CalledUno,
		})
		return GameReply{Type: msg.Type, Response: resp}, resp.Result
	case models.ActionDrawCard:
		resp := gs.Games.DrawCard(ctx, gameID, session.DrawCardRequest{PlayerID: playerID})
		return GameReply{Type: msg.Type, Response: resp}, resp.Result
	case models.ActionGetState:
		resp := gs.Games.GetGameState(ctx, gameID, playerID)
		return GameReply{Type: msg.Type, Response: resp}, resp.Result
	default:
		res := session.Result{Code: session.CodeInvalidRequest, Message: fmt.Sprintf("Unknown action type: %s", msg.Type)}
		return GameReply{Type: "error", Message: res.Message}, res
	}
}

// sendWsMessage marshals message and writes it with a timeout.
func sendWsMessage(ctx context.Context, c *websocket.Conn, message interface{}) error {
	msgBytes, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal websocket message: %w", err)
	}
	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return c.Write(writeCtx, websocket.MessageText, msgBytes)
}

func sendWsError(ctx context.Context, c *websocket.Conn, errorMsg string) error {
	return sendWsMessage(ctx, c, GameReply{Type: "error", Message: errorMsg})
}
