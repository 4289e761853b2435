// internal/handlers/game_server.go
package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/session"
	"github.com/sirupsen/logrus"
)

// GameService is the session API the handlers expose. *session.Service implements it.
type GameService interface {
	StartGame(ctx context.Context, req session.StartGameRequest) session.StartGameResponse
	PlayCard(ctx context.Context, gameID uuid.UUID, req session.PlayCardRequest) session.PlayCardResponse
	DrawCard(ctx context.Context, gameID uuid.UUID, req session.DrawCardRequest) session.DrawCardResponse
	GetGameState(ctx context.Context, gameID, playerID uuid.UUID) session.GameStateResponse
}

// GameServer holds what the game handlers share. It keeps no game state; every request
// goes through the session service.
type GameServer struct {
	Games  GameService
	Logger *logrus.Logger
}

func NewGameServer(games GameService, logger *logrus.Logger) *GameServer {
	return &GameServer{Games: games, Logger: logger}
}
