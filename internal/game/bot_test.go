package game

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectRandomPlayableCard(t *testing.T) {
	redTwo := card(models.Red, models.Two)
	wild := card(models.Wild, models.WildCard)
	g := riggedGame(t, [][]models.Card{
		nil,
		{redTwo, card(models.Blue, models.Three), wild},
		{card(models.Blue, models.Three)},
		nil,
	}, card(models.Red, models.Five), nil)
	rng := rand.New(rand.NewSource(5))

	picked := make(map[uuid.UUID]int)
	for i := 0; i < 200; i++ {
		c, ok := SelectRandomPlayableCard(g, seat(g, 1), rng)
		require.True(t, ok)
		picked[c.ID]++
	}
	assert.Len(t, picked, 2)
	assert.Positive(t, picked[redTwo.ID])
	assert.Positive(t, picked[wild.ID])

	_, ok := SelectRandomPlayableCard(g, seat(g, 2), rng)
	assert.False(t, ok)
	_, ok = SelectRandomPlayableCard(g, uuid.New(), rng)
	assert.False(t, ok)
}

func TestMostCommonColorInHand(t *testing.T) {
	tests := []struct {
		name string
		hand []models.Card
		want models.Color
	}{
		{"empty hand", nil, models.Red},
		{"only wilds", []models.Card{card(models.Wild, models.WildCard), card(models.Wild, models.WildDrawFour)}, models.Red},
		{"clear winner", []models.Card{
			card(models.Green, models.One), card(models.Green, models.Two), card(models.Blue, models.Three),
			card(models.Wild, models.WildCard), card(models.Wild, models.WildCard), card(models.Wild, models.WildCard),
		}, models.Green},
		{"tie goes to earlier color", []models.Card{
			card(models.Yellow, models.One), card(models.Blue, models.Two),
		}, models.Blue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := riggedGame(t, [][]models.Card{tt.hand, nil, nil, nil}, card(models.Red, models.Five), nil)
			assert.Equal(t, tt.want, MostCommonColorInHand(g, seat(g, 0)))
		})
	}
}

func TestBotPlaysWildWithItsMostCommonColor(t *testing.T) {
	redTwo := card(models.Red, models.Two)
	g := riggedGame(t, [][]models.Card{
		{redTwo, card(models.Blue, models.One), card(models.Blue, models.Three)},
		{card(models.Wild, models.WildCard), card(models.Yellow, models.Eight), card(models.Yellow, models.Four)},
		filler(2, models.Blue, models.Eight),
		filler(2, models.Blue, models.Eight),
	}, card(models.Green, models.Five), filler(2, models.Green, models.Nine))
	g.ActiveColor = models.Red

	var events Events
	require.NoError(t, g.PlayCard(seat(g, 0), redTwo.ID, nil, false, &events))

	chosen := events.OfType(EventChooseColor)
	require.Len(t, chosen, 1)
	assert.Equal(t, seat(g, 1), chosen[0].PlayerID)
	assert.Equal(t, models.Yellow, *chosen[0].Color)
	assert.Equal(t, models.Yellow, g.ActiveColor)
}

func TestBotCallsUnoAutomatically(t *testing.T) {
	redTwo := card(models.Red, models.Two)
	g := riggedGame(t, [][]models.Card{
		{redTwo, card(models.Blue, models.One), card(models.Blue, models.Three)},
		{card(models.Red, models.Nine), card(models.Blue, models.Eight)},
		filler(2, models.Blue, models.Eight),
		filler(2, models.Blue, models.Eight),
	}, card(models.Red, models.Five), filler(2, models.Green, models.Eight))

	var events Events
	require.NoError(t, g.PlayCard(seat(g, 0), redTwo.ID, nil, false, &events))

	assert.Equal(t, []uuid.UUID{seat(g, 1)}, actors(events, EventPlayerCalledUno))
	assert.Empty(t, events.OfType(EventPlayerFailedToCallUno))
	assert.Equal(t, 1, g.Hand(seat(g, 1)).Len())
}

func TestViewHidesOtherHands(t *testing.T) {
	g := newSeededGame(t, 11)
	human := seat(g, 0)

	gs := g.View(human)
	assert.Equal(t, g.ID, gs.GameID)
	assert.Equal(t, human, gs.CurrentPlayerID)
	assert.Equal(t, DeckSize-PlayerCount*InitialHandSize-1, gs.DeckCardCount)
	require.NotNil(t, gs.TopCard)
	assert.Equal(t, g.ActiveColor, gs.CurrentColor)
	assert.Nil(t, gs.WinnerID)

	require.Len(t, gs.Players, PlayerCount)
	assert.Len(t, gs.Players[0].Cards, InitialHandSize)
	for _, p := range gs.Players[1:] {
		assert.Equal(t, InitialHandSize, p.CardCount)
		assert.Empty(t, p.Cards)
	}

	// a stranger sees no cards at all
	for _, p := range g.View(uuid.New()).Players {
		assert.Empty(t, p.Cards)
	}
	// asking as a bot does not reveal that bot's hand
	assert.Empty(t, g.View(seat(g, 1)).Players[1].Cards)
}
