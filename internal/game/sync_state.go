// internal/game/sync_state.go
package game

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/models"
)

// PlayerState is one seat as seen by the requesting player. Cards is only filled in
// for the requester's own hand, and only when the requester is human.
type PlayerState struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	IsHuman   bool          `json:"isHuman"`
	CardCount int           `json:"cardCount"`
	Cards     []models.Card `json:"cards"`
}

// GameState is the client-facing view of a game.
type GameState struct {
	GameID          uuid.UUID     `json:"gameId"`
	Players         []PlayerState `json:"players"`
	TopCard         *models.Card  `json:"topCard"`
	CurrentColor    models.Color  `json:"currentColor"`
	CurrentPlayerID uuid.UUID     `json:"currentPlayerId"`
	Direction       Direction     `json:"direction"`
	DeckCardCount   int           `json:"deckCardCount"`
	GameOver        bool          `json:"gameOver"`
	WinnerID        *uuid.UUID    `json:"winnerId,omitempty"`
}

// View builds the game state visible to forPlayer. Bot hands are only ever counted.
func (g *Game) View(forPlayer uuid.UUID) GameState {
	gs := GameState{
		GameID:          g.ID,
		Players:         make([]PlayerState, 0, len(g.Players)),
		CurrentColor:    g.ActiveColor,
		CurrentPlayerID: g.CurrentPlayer().ID,
		Direction:       g.Direction,
		DeckCardCount:   g.Deck.Len(),
		GameOver:        g.GameOver,
	}
	if top, ok := g.TopDiscard(); ok {
		gs.TopCard = &top
	}
	if g.GameOver {
		winner := g.WinnerID
		gs.WinnerID = &winner
	}

	for _, p := range g.Players {
		hand := g.Hand(p.ID)
		ps := PlayerState{
			ID:        p.ID,
			Name:      p.Name,
			IsHuman:   p.IsHuman,
			CardCount: hand.Len(),
			Cards:     []models.Card{},
		}
		if p.IsHuman && p.ID == forPlayer {
			ps.Cards = append(ps.Cards, hand.Cards...)
		}
		gs.Players = append(gs.Players, ps)
	}
	return gs
}
