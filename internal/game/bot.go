package game

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/models"
)

// SelectRandomPlayableCard picks uniformly among the player's legal cards. The bool is
// false when nothing in the hand can be played.
func SelectRandomPlayableCard(g *Game, playerID uuid.UUID, rng Rand) (models.Card, bool) {
	playable := g.PlayableCards(playerID)
	if len(playable) == 0 {
		return models.Card{}, false
	}
	return playable[rng.Intn(len(playable))], true
}

// MostCommonColorInHand returns the color the player holds most of, ignoring wild
// cards. Ties go to the earlier color in models.Colors; an all-wild or empty hand
// yields Red.
func MostCommonColorInHand(g *Game, playerID uuid.UUID) models.Color {
	counts := make(map[models.Color]int, len(models.Colors))
	if hand := g.Hand(playerID); hand != nil {
		for _, c := range hand.Cards {
			if !c.IsWild() {
				counts[c.Color]++
			}
		}
	}
	best, bestCount := models.Red, 0
	for _, color := range models.Colors {
		if counts[color] > bestCount {
			best, bestCount = color, counts[color]
		}
	}
	return best
}

// processBotTurns plays consecutive bot seats until a human is up or the game ends.
func (g *Game) processBotTurns(events *Events) error {
	for !g.GameOver && !g.CurrentPlayer().IsHuman {
		if err := g.botTurn(g.CurrentPlayer(), events); err != nil {
			return err
		}
		if g.GameOver {
			return nil
		}
		g.NextTurn()
	}
	return nil
}

// botTurn plays a random legal card, or draws once when there is none.
func (g *Game) botTurn(player models.Player, events *Events) error {
	card, ok := SelectRandomPlayableCard(g, player.ID, g.random())
	if !ok {
		_, err := g.drawTurn(player, events)
		return err
	}
	var chosen *models.Color
	if card.IsWild() {
		chosen = colorPtr(MostCommonColorInHand(g, player.ID))
	}
	return g.play(player, g.Hand(player.ID).IndexOf(card.ID), chosen, true, events)
}
