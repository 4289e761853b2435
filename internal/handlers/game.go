// internal/handlers/game.go
package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/session"
)

// StartGameHandler handles POST /api/game/start.
func StartGameHandler(gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req session.StartGameRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeFailure(w, session.CodeInvalidRequest, "Invalid request body")
			return
		}
		resp := gs.Games.StartGame(r.Context(), req)
		writeJSON(w, statusFor(resp.Result), resp)
	}
}

// PlayCardHandler handles POST /api/game/{gameId}/play.
func PlayCardHandler(gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, ok := pathGameID(w, r)
		if !ok {
			return
		}
		var req session.PlayCardRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeFailure(w, session.CodeInvalidRequest, "Invalid request body")
			return
		}
		resp := gs.Games.PlayCard(r.Context(), gameID, req)
		writeJSON(w, statusFor(resp.Result), resp)
	}
}

// DrawCardHandler handles POST /api/game/{gameId}/draw.
func DrawCardHandler(gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, ok := pathGameID(w, r)
		if !ok {
			return
		}
		var req session.DrawCardRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeFailure(w, session.CodeInvalidRequest, "Invalid request body")
			return
		}
		resp := gs.Games.DrawCard(r.Context(), gameID, req)
		writeJSON(w, statusFor(resp.Result), resp)
	}
}

// GameStateHandler handles GET /api/game/{gameId}?playerId=...
func GameStateHandler(gs *GameServer) http.HandlerFunc {
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
		resp := gs.Games.GetGameState(r.Context(), gameID, playerID)
		writeJSON(w, statusFor(resp.Result), resp)
	}
}
