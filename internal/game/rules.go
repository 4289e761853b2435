// internal/game/rules.go
package game

// Fixed table rules. There are no house-rule variants.
const (
	PlayerCount     = 4 // seats at every table: 1 human + 3 bots
	BotCount        = PlayerCount - 1
	InitialHandSize = 7   // cards dealt to each player
	DeckSize        = 108 // cards in the canonical deck
	UnoPenaltyCards = 2   // drawn when a human goes down to one card without calling Uno
	DrawTwoCount    = 2
	DrawFourCount   = 4
)
