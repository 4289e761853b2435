package game

import "errors"

// Validation failures. The session layer turns these into failure responses.
var (
	ErrGameOver      = errors.New("game is over")
	ErrUnknownPlayer = errors.New("player not found")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrCardNotInHand = errors.New("card not found in hand")
	ErrIllegalCard   = errors.New("card cannot be played")
	ErrColorRequired = errors.New("a color must be chosen for a wild card")
	ErrMustPlay      = errors.New("player holds a playable card")
)

// Invariant violations. These abort the current action.
var (
	ErrDeckExhausted = errors.New("no cards left in deck")
	ErrPlayerCount   = errors.New("game requires exactly 4 players")
	ErrInvalidState  = errors.New("invalid game state")
)
