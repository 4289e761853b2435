package session

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/game"
	"github.com/jason-s-yu/uno/internal/models"
)

// Code classifies a failed request for clients and for HTTP status mapping.
type Code string

const (
	CodeGameNotFound   Code = "game_not_found"
	CodePlayerNotFound Code = "player_not_found"
	CodeNotYourTurn    Code = "not_your_turn"
	CodeCardNotInHand  Code = "card_not_in_hand"
	CodeIllegalCard    Code = "illegal_card"
	CodeColorRequired  Code = "color_required"
	CodeMustPlay       Code = "must_play"
	CodeGameOver       Code = "game_over"
	CodeDeckExhausted  Code = "deck_exhausted"
	CodeInvalidRequest Code = "invalid_request"
	CodeInternal       Code = "internal"
)

// Result is embedded in every response. Code is empty on success.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    Code   `json:"code,omitempty"`
}

type StartGameRequest struct {
	PlayerName string `json:"playerName"`
}

type StartGameResponse struct {
	Result
	GameID    uuid.UUID       `json:"gameId,omitempty"`
	GameState *game.GameState `json:"gameState,omitempty"`
}

// PlayCardRequest plays one card from the player's hand. CalledUno defaults to false:
// a human who plays down to a single card without setting it is penalized with a
// PlayerFailedToCallUno event and two drawn cards.
type PlayCardRequest struct {
	PlayerID    uuid.UUID     `json:"playerId"`
	CardID      uuid.UUID     `json:"cardId"`
	ChosenColor *models.Color `json:"chosenColor,omitempty"`
	CalledUno   bool          `json:"calledUno,omitempty"`
}

type PlayCardResponse struct {
	Result
	GameState *game.GameState `json:"gameState,omitempty"`
	Events    game.Events     `json:"events,omitempty"`
}

type DrawCardRequest struct {
	PlayerID uuid.UUID `json:"playerId"`
}

type DrawCardResponse struct {
	Result
	CardWasPlayed bool            `json:"cardWasPlayed"`
	GameState     *game.GameState `json:"gameState,omitempty"`
	Events        game.Events     `json:"events,omitempty"`
}

type GameStateResponse struct {
	Result
	GameState *game.GameState `json:"gameState,omitempty"`
}
