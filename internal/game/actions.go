package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/models"
)

// PlayCard plays cardID from the player's hand. chosenColor is required for wild cards.
// When the play leaves the player with a single card, calledUno says whether they
// announced it. Every resulting bot turn runs before PlayCard returns, and all events
// are appended to events in order.
func (g *Game) PlayCard(playerID, cardID uuid.UUID, chosenColor *models.Color, calledUno bool, events *Events) error {
	if events == nil {
		events = &Events{}
	}
	player, err := g.checkTurn(playerID)
	if err != nil {
		return err
	}
	hand := g.Hand(playerID)
	idx := hand.IndexOf(cardID)
	if idx < 0 {
		return ErrCardNotInHand
	}
	card := hand.Cards[idx]
	if !g.IsMatch(card) {
		return fmt.Errorf("%w: %s on %s", ErrIllegalCard, card, g.ActiveColor)
	}
	if card.IsWild() && !isChoosable(chosenColor) {
		return ErrColorRequired
	}

	if err := g.play(player, idx, chosenColor, calledUno, events); err != nil {
		return err
	}
	return g.endTurn(events)
}

// DrawCard takes the top card of the deck for a player who has nothing playable. A
// drawn card that matches is played immediately. Reports whether that happened.
func (g *Game) DrawCard(playerID uuid.UUID, events *Events) (bool, error) {
	if events == nil {
		events = &Events{}
	}
	player, err := g.checkTurn(playerID)
	if err != nil {
		return false, err
	}
	if len(g.PlayableCards(playerID)) > 0 {
		return false, ErrMustPlay
	}

	played, err := g.drawTurn(player, events)
	if err != nil {
		return played, err
	}
	return played, g.endTurn(events)
}

// checkTurn validates that playerID may act right now.
func (g *Game) checkTurn(playerID uuid.UUID) (models.Player, error) {
	if g.GameOver {
		return models.Player{}, ErrGameOver
	}
	player, ok := g.Player(playerID)
	if !ok {
		return models.Player{}, ErrUnknownPlayer
	}
	if g.CurrentPlayer().ID != playerID {
		return models.Player{}, ErrNotYourTurn
	}
	return player, nil
}

// endTurn advances past the acting seat and lets the bots play until a human is up.
func (g *Game) endTurn(events *Events) error {
	if g.GameOver {
		return nil
	}
	g.NextTurn()
	return g.processBotTurns(events)
}

// play moves the card at hand index idx onto the discard pile and resolves it.
// Legality has already been checked.
func (g *Game) play(player models.Player, idx int, chosenColor *models.Color, calledUno bool, events *Events) error {
	hand := g.Hand(player.ID)
	card := hand.RemoveAt(idx)
	g.DiscardPile.Push(card)
	g.ActiveColor = card.Color

	ev := events.add(EventPlayCard, player.ID)
	ev.CardIdx = intPtr(idx)
	ev.Card = cardPtr(card)

	if card.IsWild() && isChoosable(chosenColor) {
		g.ActiveColor = *chosenColor
		events.add(EventChooseColor, player.ID).Color = colorPtr(*chosenColor)
	}

	if err := g.checkUno(player, calledUno, events); err != nil {
		return err
	}
	if g.checkTerminal(player, events) {
		return nil
	}
	return g.applyCardEffect(player, card, events)
}

// applyCardEffect resolves the action part of a played card. Color choice for wild
// cards is handled in play.
func (g *Game) applyCardEffect(player models.Player, card models.Card, events *Events) error {
	switch card.Value {
	case models.Skip:
		events.add(EventSkip, player.ID)
		g.NextTurn()
	case models.Reverse:
		g.Reverse()
		events.add(EventReverse, player.ID)
	case models.DrawTwo:
		events.add(EventDrawTwo, player.ID)
		g.NextTurn()
		return g.forceDraw(g.CurrentPlayer(), DrawTwoCount, events)
	case models.WildDrawFour:
		events.add(EventWildDrawFour, player.ID)
		g.NextTurn()
		return g.forceDraw(g.CurrentPlayer(), DrawFourCount, events)
	}
	return nil
}

// checkUno handles a player going down to one card. Bots always call it.
func (g *Game) checkUno(player models.Player, calledUno bool, events *Events) error {
	if g.Hand(player.ID).Len() != 1 {
		return nil
	}
	if calledUno || !player.IsHuman {
		events.add(EventPlayerCalledUno, player.ID)
		return nil
	}
	events.add(EventPlayerFailedToCallUno, player.ID)
	return g.forceDraw(player, UnoPenaltyCards, events)
}

// checkTerminal ends the game if the player has emptied their hand.
func (g *Game) checkTerminal(player models.Player, events *Events) bool {
	if g.Hand(player.ID).Len() > 0 {
		return false
	}
	g.GameOver = true
	g.WinnerID = player.ID
	events.add(EventGameOver, player.ID)
	return true
}

// drawTurn draws one card for the player and plays it if it matches.
func (g *Game) drawTurn(player models.Player, events *Events) (bool, error) {
	card, idx, err := g.drawOne(player, events)
	if err != nil {
		return false, err
	}
	if !g.IsMatch(card) {
		return false, nil
	}
	var chosen *models.Color
	if card.IsWild() {
		chosen = colorPtr(MostCommonColorInHand(g, player.ID))
	}
	return true, g.play(player, idx, chosen, true, events)
}

// forceDraw deals n cards to the player. Forced cards are never auto-played.
func (g *Game) forceDraw(player models.Player, n int, events *Events) error {
	for i := 0; i < n; i++ {
		if _, _, err := g.drawOne(player, events); err != nil {
			return err
		}
	}
	return nil
}

// drawOne moves the top of the deck into the player's hand. The card is only shown in
// the event when the player is human.
func (g *Game) drawOne(player models.Player, events *Events) (models.Card, int, error) {
	card, ok := g.Deck.Pop()
	if !ok {
		return models.Card{}, -1, ErrDeckExhausted
	}
	hand := g.Hand(player.ID)
	hand.Push(card)
	idx := hand.Len() - 1

	ev := events.add(EventDrawCard, player.ID)
	if player.IsHuman {
		ev.CardIdx = intPtr(idx)
		ev.Card = cardPtr(card)
	}
	return card, idx, nil
}

func isChoosable(c *models.Color) bool {
	return c != nil && *c != models.Wild && c.Valid()
}

func intPtr(i int) *int                     { return &i }
func cardPtr(c models.Card) *models.Card    { return &c }
func colorPtr(c models.Color) *models.Color { return &c }
