package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"

	"github.com/jason-s-yu/uno/internal/models"
)

// Rand is the randomness the engine needs. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a math/rand source seeded from crypto/rand, or from the clock if
// crypto/rand is unavailable.
func NewRand() *rand.Rand {
	var b [8]byte
	seed := time.Now().UnixNano()
	if _, err := crand.Read(b[:]); err == nil {
		seed = int64(binary.LittleEndian.Uint64(b[:]))
	}
	return rand.New(rand.NewSource(seed))
}

// NewDeck builds the canonical 108-card deck in a fixed order. Per color: one Zero,
// two each of One..Nine, two Skip, two Reverse and two DrawTwo. Then four Wild and
// four WildDrawFour.
func NewDeck() *Pile {
	deck := NewPile(PileDeck)
	for _, color := range models.Colors {
		deck.Push(models.NewCard(color, models.Zero))
		for _, v := range models.NumberValues[1:] {
			deck.Push(models.NewCard(color, v), models.NewCard(color, v))
		}
		for _, v := range []models.Value{models.Skip, models.Reverse, models.DrawTwo} {
			deck.Push(models.NewCard(color, v), models.NewCard(color, v))
		}
	}
	for i := 0; i < 4; i++ {
		deck.Push(models.NewCard(models.Wild, models.WildCard))
		deck.Push(models.NewCard(models.Wild, models.WildDrawFour))
	}
	return deck
}

// Shuffle reorders cards in place with a Fisher-Yates shuffle.
func Shuffle(cards []models.Card, rng Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
