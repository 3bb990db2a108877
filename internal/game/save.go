/*
Package game
File: save.go
Description:
    Whole-session state serialization for the save store. The snapshot is
    plain JSON of the live model structs; the random source and tuning
    are deliberately excluded, so a restored session continues under the
    server's current tuning and seed.
*/

package game

import (
	"encoding/json"
	"fmt"
)

// SaveState is the serialized form of a session.
type SaveState struct {
	Day         int                `json:"day"`
	Player      *Player            `json:"player"`
	Regions     map[string]*Region `json:"regions"`
	RegionOrder []string           `json:"region_order"`
	Rivals      []*Rival           `json:"rivals"`
}

// MarshalState serializes the full session under the read lock.
func (s *Session) MarshalState() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := SaveState{
		Day:         s.Day,
		Player:      s.Player,
		Regions:     s.Regions,
		RegionOrder: s.regionOrder,
		Rivals:      s.Rivals,
	}
	return json.Marshal(&state)
}

// RestoreState replaces the session's world with a previously marshaled
// one. The tuning and random source carry over from the running session.
func (s *Session) RestoreState(data []byte) error {
	var state SaveState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("decode save state: %w", err)
	}
	if state.Player == nil || len(state.Regions) == 0 {
		return fmt.Errorf("save state is incomplete")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Day = state.Day
	s.Player = state.Player
	s.Regions = state.Regions
	s.regionOrder = state.RegionOrder
	s.Rivals = state.Rivals
	return nil
}
