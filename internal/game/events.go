package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/models"
)

// GameEventType names something that happened during an action.
type GameEventType string

const (
	EventPlayCard              GameEventType = "PlayCard"
	EventDrawCard              GameEventType = "DrawCard"
	EventGameOver              GameEventType = "GameOver"
	EventSkip                  GameEventType = "Skip"
	EventReverse               GameEventType = "Reverse"
	EventDrawTwo               GameEventType = "DrawTwo"
	EventChooseColor           GameEventType = "ChooseColor"
	EventWildDrawFour          GameEventType = "WildDrawFour"
	EventPlayerCalledUno       GameEventType = "PlayerCalledUno"
	EventPlayerFailedToCallUno GameEventType = "PlayerFailedToCallUno"
)

// GameEvent records one step of an action. Events are returned to the caller and
// never stored with the game.
type GameEvent struct {
	Type      GameEventType `json:"type"`
	Timestamp time.Time     `json:"timestamp"`
	PlayerID  uuid.UUID     `json:"playerId"`
	CardIdx   *int          `json:"cardIdx,omitempty"`
	Card      *models.Card  `json:"card,omitempty"`
	Color     *models.Color `json:"color,omitempty"`
}

// Events is the ordered log for a single action, including any bot turns it caused.
// The engine only ever appends to it.
type Events []GameEvent

func (e *Events) add(typ GameEventType, playerID uuid.UUID) *GameEvent {
	*e = append(*e, GameEvent{Type: typ, Timestamp: time.Now().UTC(), PlayerID: playerID})
	return &(*e)[len(*e)-1]
}

// OfType returns the events of the given type, in order.
func (e Events) OfType(typ GameEventType) []GameEvent {
	var out []GameEvent
	for _, ev := range e {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}
