package game

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/models"
)

// PileKind tags which role a pile plays on the table.
type PileKind string

const (
	PileDeck    PileKind = "deck"
	PileDiscard PileKind = "discard"
	PileHand    PileKind = "hand"
)

// Pile is an ordered stack of cards. The top of the pile is the last element.
// Deck, discard and hands share this shape; Kind tells them apart.
type Pile struct {
	Kind  PileKind      `json:"kind"`
	Cards []models.Card `json:"cards"`
}

// NewPile returns an empty pile of the given kind.
func NewPile(kind PileKind) *Pile {
	return &Pile{Kind: kind, Cards: []models.Card{}}
}

func (p *Pile) Len() int {
	return len(p.Cards)
}

// Top returns the top card without removing it.
func (p *Pile) Top() (models.Card, bool) {
	if len(p.Cards) == 0 {
		return models.Card{}, false
	}
	return p.Cards[len(p.Cards)-1], true
}

// Push puts cards on top of the pile, in order.
func (p *Pile) Push(cards ...models.Card) {
	p.Cards = append(p.Cards, cards...)
}

// Pop removes and returns the top card.
func (p *Pile) Pop() (models.Card, bool) {
	c, ok := p.Top()
	if !ok {
		return c, false
	}
	p.Cards = p.Cards[:len(p.Cards)-1]
	return c, true
}

// IndexOf returns the position of the card with the given ID, or -1.
func (p *Pile) IndexOf(cardID uuid.UUID) int {
	for i, c := range p.Cards {
		if c.ID == cardID {
			return i
		}
	}
	return -1
}

// RemoveAt removes and returns the card at index i. i must be in range.
func (p *Pile) RemoveAt(i int) models.Card {
	c := p.Cards[i]
	p.Cards = append(p.Cards[:i], p.Cards[i+1:]...)
	return c
}
