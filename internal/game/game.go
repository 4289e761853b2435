// internal/game/game.go
package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/models"
)

// Direction is the order in which seats take turns.
type Direction string

const (
	Clockwise        Direction = "Clockwise"
	CounterClockwise Direction = "CounterClockwise"
)

// Game holds the entire state of one table. It is persisted as a whole after every
// action and loaded again for the next one.
type Game struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	Players     []models.Player     `json:"players"`
	Deck        *Pile               `json:"deck"`
	DiscardPile *Pile               `json:"discardPile"`
	Hands       map[uuid.UUID]*Pile `json:"hands"`

	CurrentPlayerIndex int          `json:"currentPlayerIndex"`
	Direction          Direction    `json:"direction"`
	ActiveColor        models.Color `json:"activeColor"` // color the next play must match; set by wild plays

	GameOver bool      `json:"gameOver"`
	WinnerID uuid.UUID `json:"winnerId"` // uuid.Nil until GameOver

	rng Rand
}

// NewGame seats one human named playerName and three bots, then shuffles a fresh deck
// and deals.
func NewGame(playerName string, rng Rand) (*Game, error) {
	players := make([]models.Player, 0, PlayerCount)
	players = append(players, models.NewPlayer(playerName, true))
	for i := 1; i <= BotCount; i++ {
		players = append(players, models.NewPlayer(fmt.Sprintf("Bot %d", i), false))
	}
	return NewGameWithPlayers(players, NewDeck(), rng)
}

// NewGameWithPlayers builds a game around the given seats and deck and deals it.
func NewGameWithPlayers(players []models.Player, deck *Pile, rng Rand) (*Game, error) {
	if len(players) != PlayerCount {
		return nil, fmt.Errorf("%w: got %d", ErrPlayerCount, len(players))
	}
	if rng == nil {
		rng = NewRand()
	}
	deck.Kind = PileDeck
	g := &Game{
		ID:          uuid.New(),
		CreatedAt:   time.Now().UTC(),
		Players:     players,
		Deck:        deck,
		DiscardPile: NewPile(PileDiscard),
		Hands:       make(map[uuid.UUID]*Pile, len(players)),
		Direction:   Clockwise,
		rng:         rng,
	}
	for _, p := range players {
		g.Hands[p.ID] = NewPile(PileHand)
	}
	if err := g.deal(); err != nil {
		return nil, err
	}
	return g, nil
}

// deal shuffles, gives InitialHandSize cards to each seat in order, and flips the first
// non-wild card to start the discard pile.
func (g *Game) deal() error {
	Shuffle(g.Deck.Cards, g.random())

	for _, p := range g.Players {
		hand := g.Hands[p.ID]
		for i := 0; i < InitialHandSize; i++ {
			c, ok := g.Deck.Pop()
			if !ok {
				return fmt.Errorf("%w: dealing to %s", ErrDeckExhausted, p.Name)
			}
			hand.Push(c)
		}
	}

	for i := g.Deck.Len() - 1; i >= 0; i-- {
		if g.Deck.Cards[i].IsWild() {
			continue
		}
		first := g.Deck.RemoveAt(i)
		g.DiscardPile.Push(first)
		g.ActiveColor = first.Color
		return nil
	}
	return fmt.Errorf("%w: no non-wild card to start the discard pile", ErrDeckExhausted)
}

// SetRand attaches the randomness source used for bot choices. Restored snapshots have
// none until this is called.
func (g *Game) SetRand(rng Rand) {
	g.rng = rng
}

func (g *Game) random() Rand {
	if g.rng == nil {
		g.rng = NewRand()
	}
	return g.rng
}

// CurrentPlayer returns the seat whose turn it is.
func (g *Game) CurrentPlayer() models.Player {
	return g.Players[g.CurrentPlayerIndex]
}

// Player looks up a seat by ID.
func (g *Game) Player(id uuid.UUID) (models.Player, bool) {
	for _, p := range g.Players {
		if p.ID == id {
			return p, true
		}
	}
	return models.Player{}, false
}

// HumanPlayer returns the first human seat.
func (g *Game) HumanPlayer() (models.Player, bool) {
	for _, p := range g.Players {
		if p.IsHuman {
			return p, true
		}
	}
	return models.Player{}, false
}

// Hand returns the pile held by the given player, or nil.
func (g *Game) Hand(id uuid.UUID) *Pile {
	return g.Hands[id]
}

// TopDiscard returns the card on top of the discard pile.
func (g *Game) TopDiscard() (models.Card, bool) {
	return g.DiscardPile.Top()
}

// IsMatch reports whether card may be played on the current discard.
func (g *Game) IsMatch(card models.Card) bool {
	if card.IsWild() || card.Color == g.ActiveColor {
		return true
	}
	top, ok := g.TopDiscard()
	return ok && card.Value == top.Value
}

// PlayableCards returns the cards in the player's hand that IsMatch accepts.
func (g *Game) PlayableCards(playerID uuid.UUID) []models.Card {
	hand := g.Hand(playerID)
	if hand == nil {
		return nil
	}
	var out []models.Card
	for _, c := range hand.Cards {
		if g.IsMatch(c) {
			out = append(out, c)
		}
	}
	return out
}

// NextTurn moves the current seat one step in the current direction.
func (g *Game) NextTurn() {
	n := len(g.Players)
	step := 1
	if g.Direction == CounterClockwise {
		step = -1
	}
	g.CurrentPlayerIndex = ((g.CurrentPlayerIndex+step)%n + n) % n
}

// Reverse flips the direction of play.
func (g *Game) Reverse() {
	if g.Direction == Clockwise {
		g.Direction = CounterClockwise
	} else {
		g.Direction = Clockwise
	}
}

// CardCount is the number of cards across deck, discard and all hands.
func (g *Game) CardCount() int {
	total := g.Deck.Len() + g.DiscardPile.Len()
	for _, h := range g.Hands {
		total += h.Len()
	}
	return total
}

// Validate checks a loaded snapshot for structural damage: seat count, one hand per
// seat, the full deck with every card in exactly one place, and a usable discard pile.
func (g *Game) Validate() error {
	if len(g.Players) != PlayerCount {
		return fmt.Errorf("%w: %d players", ErrInvalidState, len(g.Players))
	}
	if g.Deck == nil || g.DiscardPile == nil {
		return fmt.Errorf("%w: missing deck or discard pile", ErrInvalidState)
	}
	if g.CurrentPlayerIndex < 0 || g.CurrentPlayerIndex >= len(g.Players) {
		return fmt.Errorf("%w: current player index %d", ErrInvalidState, g.CurrentPlayerIndex)
	}
	if g.Direction != Clockwise && g.Direction != CounterClockwise {
		return fmt.Errorf("%w: direction %q", ErrInvalidState, g.Direction)
	}
	if g.DiscardPile.Len() == 0 {
		return fmt.Errorf("%w: empty discard pile", ErrInvalidState)
	}
	if !isPlayableColor(g.ActiveColor) {
		return fmt.Errorf("%w: active color %q", ErrInvalidState, g.ActiveColor)
	}
	if len(g.Hands) != len(g.Players) {
		return fmt.Errorf("%w: %d hands for %d players", ErrInvalidState, len(g.Hands), len(g.Players))
	}
	piles := []*Pile{g.Deck, g.DiscardPile}
	for _, p := range g.Players {
		h, ok := g.Hands[p.ID]
		if !ok || h == nil {
			return fmt.Errorf("%w: no hand for player %s", ErrInvalidState, p.ID)
		}
		piles = append(piles, h)
	}
	seen := make(map[uuid.UUID]struct{}, DeckSize)
	mix := make(map[cardFace]int)
	for _, pile := range piles {
		for _, c := range pile.Cards {
			if _, dup := seen[c.ID]; dup {
				return fmt.Errorf("%w: card %s appears twice", ErrInvalidState, c.ID)
			}
			seen[c.ID] = struct{}{}
			mix[cardFace{c.Color, c.Value}]++
		}
	}
	if len(seen) != DeckSize {
		return fmt.Errorf("%w: %d cards on the table, want %d", ErrInvalidState, len(seen), DeckSize)
	}
	for face, want := range deckMix {
		if mix[face] != want {
			return fmt.Errorf("%w: %d copies of %s %s, want %d", ErrInvalidState, mix[face], face.color, face.value, want)
		}
	}
	return nil
}

// cardFace is a card without its identity.
type cardFace struct {
	color models.Color
	value models.Value
}

// deckMix counts each face in a fresh deck. With the total already fixed at DeckSize,
// matching every expected face also rules out unknown ones.
var deckMix = func() map[cardFace]int {
	mix := make(map[cardFace]int)
	for _, c := range NewDeck().Cards {
		mix[cardFace{c.Color, c.Value}]++
	}
	return mix
}()

func isPlayableColor(c models.Color) bool {
	for _, color := range models.Colors {
		if c == color {
			return true
		}
	}
	return false
}
