// internal/session/service.go
package session

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/cache"
	"github.com/jason-s-yu/uno/internal/game"
	"github.com/sirupsen/logrus"
)

// Store persists whole-game snapshots between requests. LoadGame returns
// cache.ErrGameNotFound for unknown or expired games.
type Store interface {
	SaveGame(ctx context.Context, g *game.Game) error
	LoadGame(ctx context.Context, id uuid.UUID) (*game.Game, error)
}

// ActionPublisher receives the events of every successful action.
type ActionPublisher interface {
	PublishGameActions(ctx context.Context, gameID uuid.UUID, events game.Events)
}

// Service runs one action per request: load, apply, save, view. It holds no game state
// of its own.
type Service struct {
	store     Store
	publisher ActionPublisher
	logger    *logrus.Logger
	newRand   func() game.Rand
}

// Option customizes a Service.
type Option func(*Service)

// WithPublisher forwards action events to p after each successful save.
func WithPublisher(p ActionPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithRand overrides the randomness source used for new games and bot turns.
func WithRand(newRand func() game.Rand) Option {
	return func(s *Service) { s.newRand = newRand }
}

func NewService(store Store, logger *logrus.Logger, opts ...Option) *Service {
	s := &Service{
		store:   store,
		logger:  logger,
		newRand: func() game.Rand { return game.NewRand() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartGame deals a new game for a single human against three bots.
func (s *Service) StartGame(ctx context.Context, req StartGameRequest) StartGameResponse {
	name := strings.TrimSpace(req.PlayerName)
	if name == "" {
		return StartGameResponse{Result: failure(CodeInvalidRequest, "Player name is required")}
	}

	g, err := game.NewGame(name, s.newRand())
	if err != nil {
		s.logger.WithError(err).Error("failed to create game")
		return StartGameResponse{Result: failure(CodeInternal, "Failed to start game: "+err.Error())}
	}
	if err := s.store.SaveGame(ctx, g); err != nil {
		s.logger.WithError(err).WithField("game_id", g.ID).Error("failed to save new game")
		return StartGameResponse{Result: failure(CodeInternal, "Failed to start game: "+err.Error())}
	}

	human, _ := g.HumanPlayer()
	s.logger.WithFields(logrus.Fields{
		"game_id":   g.ID,
		"player_id": human.ID,
		"action":    "start",
	}).Info("game started")

	state := g.View(human.ID)
	return StartGameResponse{
		Result:    Result{Success: true, Message: "Game started successfully"},
		GameID:    g.ID,
		GameState: &state,
	}
}

// PlayCard plays a card for the human and runs the bot turns that follow.
func (s *Service) PlayCard(ctx context.Context, gameID uuid.UUID, req PlayCardRequest) PlayCardResponse {
	var events game.Events
	state, res := s.apply(ctx, gameID, req.PlayerID, "play_card", func(g *game.Game) error {
		return g.PlayCard(req.PlayerID, req.CardID, req.ChosenColor, req.CalledUno, &events)
	}, &events)
	if !res.Success {
		return PlayCardResponse{Result: res}
	}
	res.Message = "Card played successfully"
	return PlayCardResponse{Result: res, GameState: state, Events: events}
}

// DrawCard draws for a human with nothing to play and runs the bot turns that follow.
func (s *Service) DrawCard(ctx context.Context, gameID uuid.UUID, req DrawCardRequest) DrawCardResponse {
	var (
		events game.Events
		played bool
	)
	state, res := s.apply(ctx, gameID, req.PlayerID, "draw_card", func(g *game.Game) error {
		var err error
		played, err = g.DrawCard(req.PlayerID, &events)
		return err
	}, &events)
	if !res.Success {
		return DrawCardResponse{Result: res}
	}
	res.Message = "Card drawn"
	return DrawCardResponse{Result: res, CardWasPlayed: played, GameState: state, Events: events}
}

// GetGameState returns the current view for playerID without changing anything.
func (s *Service) GetGameState(ctx context.Context, gameID, playerID uuid.UUID) GameStateResponse {
	g, res := s.load(ctx, gameID)
	if !res.Success {
		return GameStateResponse{Result: res}
	}
	if _, ok := g.Player(playerID); !ok {
		return GameStateResponse{Result: failure(CodePlayerNotFound, "Player not found")}
	}
	state := g.View(playerID)
	return GameStateResponse{Result: Result{Success: true, Message: "OK"}, GameState: &state}
}

// apply is the read-modify-write cycle shared by the actions. The game is only saved,
// and events only published, when op succeeds.
func (s *Service) apply(ctx context.Context, gameID, playerID uuid.UUID, action string, op func(*game.Game) error, events *game.Events) (*game.GameState, Result) {
	log := s.logger.WithFields(logrus.Fields{
		"game_id":   gameID,
		"player_id": playerID,
		"action":    action,
	})

	g, res := s.load(ctx, gameID)
	if !res.Success {
		return nil, res
	}
	g.SetRand(s.newRand())

	if err := op(g); err != nil {
		res := classify(err)
		if res.Code == CodeInternal || res.Code == CodeDeckExhausted {
			log.WithError(err).Error("action aborted")
		} else {
			log.WithError(err).Debug("action rejected")
		}
		return nil, res
	}

	if err := s.store.SaveGame(ctx, g); err != nil {
		log.WithError(err).Error("failed to save game")
		return nil, failure(CodeInternal, "Failed to save game")
	}
	if s.publisher != nil {
		s.publisher.PublishGameActions(ctx, gameID, *events)
	}

	entry := log.WithField("events", len(*events))
	if g.GameOver {
		entry = entry.WithField("winner_id", g.WinnerID)
	}
	entry.Info("action applied")

	state := g.View(playerID)
	return &state, Result{Success: true}
}

func (s *Service) load(ctx context.Context, gameID uuid.UUID) (*game.Game, Result) {
	g, err := s.store.LoadGame(ctx, gameID)
	if errors.Is(err, cache.ErrGameNotFound) {
		return nil, failure(CodeGameNotFound, "Game not found")
	}
	if err != nil {
		s.logger.WithError(err).WithField("game_id", gameID).Error("failed to load game")
		return nil, failure(CodeInternal, "Failed to load game")
	}
	return g, Result{Success: true}
}

// classify maps engine errors onto response codes and client messages.
func classify(err error) Result {
	switch {
	case errors.Is(err, game.ErrGameOver):
		return failure(CodeGameOver, "Game is over")
	case errors.Is(err, game.ErrUnknownPlayer):
		return failure(CodePlayerNotFound, "Player not found")
	case errors.Is(err, game.ErrNotYourTurn):
		return failure(CodeNotYourTurn, "Not your turn")
	case errors.Is(err, game.ErrCardNotInHand):
		return failure(CodeCardNotInHand, "Card not found in your hand")
	case errors.Is(err, game.ErrIllegalCard):
		return failure(CodeIllegalCard, "Card cannot be played")
	case errors.Is(err, game.ErrColorRequired):
		return failure(CodeColorRequired, "You must choose a color for a wild card")
	case errors.Is(err, game.ErrMustPlay):
		return failure(CodeMustPlay, "You have playable cards, you must play one")
	case errors.Is(err, game.ErrDeckExhausted):
		return failure(CodeDeckExhausted, "The deck is empty")
	default:
		return failure(CodeInternal, "Failed to apply action: "+err.Error())
	}
}

func failure(code Code, msg string) Result {
	return Result{Success: false, Message: msg, Code: code}
}
