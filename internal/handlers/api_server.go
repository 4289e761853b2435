// internal/handlers/api_server.go
package handlers

import (
	"net/http"

	"github.com/jason-s-yu/uno/internal/middleware"
)

// NewRouter wires every route onto a fresh mux, each behind the request logger.
func NewRouter(gs *GameServer) http.Handler {
	mux := http.NewServeMux()
	logged := middleware.LogMiddleware(gs.Logger)

	mux.Handle("POST /api/game/start", logged(StartGameHandler(gs)))
	mux.Handle("POST /api/game/{gameId}/play", logged(PlayCardHandler(gs)))
	mux.Handle("POST /api/game/{gameId}/draw", logged(DrawCardHandler(gs)))
	mux.Handle("GET /api/game/{gameId}", logged(GameStateHandler(gs)))
	mux.Handle("GET /api/game/{gameId}/ws", logged(GameWSHandler(gs)))
	mux.HandleFunc("GET /healthz", HealthHandler)

	return mux
}

// HealthHandler reports liveness only.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
