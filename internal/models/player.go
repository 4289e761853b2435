package models

import "github.com/google/uuid"

// Player is a seat at the table. Players never change after the game is created.
type Player struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	IsHuman bool      `json:"isHuman"`
}

// NewPlayer creates a player with a random ID.
func NewPlayer(name string, isHuman bool) Player {
	return Player{ID: uuid.New(), Name: name, IsHuman: isHuman}
}
