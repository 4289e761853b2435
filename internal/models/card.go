// internal/models/card.go
package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Color is the color printed on a card, or the table's active color.
type Color string

const (
	Red    Color = "Red"
	Blue   Color = "Blue"
	Green  Color = "Green"
	Yellow Color = "Yellow"
	Wild   Color = "Wild"
)

// Colors lists the playable colors in enumeration order. Ties in color counting are
// broken by this order.
var Colors = []Color{Red, Blue, Green, Yellow}

// Valid reports whether c is one of the five known colors.
func (c Color) Valid() bool {
	switch c {
	case Red, Blue, Green, Yellow, Wild:
		return true
	}
	return false
}

// Value is the face value of a card.
type Value string

const (
	Zero         Value = "Zero"
	One          Value = "One"
	Two          Value = "Two"
	Three        Value = "Three"
	Four         Value = "Four"
	Five         Value = "Five"
	Six          Value = "Six"
	Seven        Value = "Seven"
	Eight        Value = "Eight"
	Nine         Value = "Nine"
	Skip         Value = "Skip"
	Reverse      Value = "Reverse"
	DrawTwo      Value = "DrawTwo"
	WildCard     Value = "Wild"
	WildDrawFour Value = "WildDrawFour"
)

// NumberValues holds Zero through Nine, indexed by the number they represent.
var NumberValues = []Value{Zero, One, Two, Three, Four, Five, Six, Seven, Eight, Nine}

// Card is an immutable color/value pair with a unique identity.
type Card struct {
	ID    uuid.UUID `json:"id"`
	Color Color     `json:"color"`
	Value Value     `json:"value"`
}

// NewCard returns a card with a freshly generated ID.
func NewCard(color Color, value Value) Card {
	return Card{ID: uuid.New(), Color: color, Value: value}
}

// IsWild reports whether the card is Wild colored (Wild or WildDrawFour).
func (c Card) IsWild() bool {
	return c.Color == Wild
}

func (c Card) String() string {
	if c.IsWild() {
		return string(c.Value)
	}
	return fmt.Sprintf("%s %s", c.Color, c.Value)
}
