package models

import "github.com/google/uuid"

// Action types accepted on the game websocket.
const (
	ActionPlayCard = "play_card"
	ActionDrawCard = "draw_card"
	ActionGetState = "get_state"
)

// GameAction captures a player's in-game move as sent over the websocket. The acting
// player is the one the socket was opened for.
type GameAction struct {
	Type        string    `json:"type"`
	CardID      uuid.UUID `json:"cardId,omitempty"`
	ChosenColor *Color    `json:"chosenColor,omitempty"`
	CalledUno   bool      `json:"calledUno,omitempty"`
}
