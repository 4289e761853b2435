package game

import (
	"encoding/json"
	"fmt"
)

// MarshalSnapshot serializes the full game for storage.
func (g *Game) MarshalSnapshot() ([]byte, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal game %s: %w", g.ID, err)
	}
	return data, nil
}

// UnmarshalSnapshot restores a game written by MarshalSnapshot and validates it.
// The returned game has no randomness source attached; see SetRand.
func UnmarshalSnapshot(data []byte) (*Game, error) {
	var g Game
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game snapshot: %w", err)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}
