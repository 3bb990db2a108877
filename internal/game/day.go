/*
Package game
File: day.go
Description:
    The end-of-day turn sequence. Everything that moves by itself moves
    here, in a fixed order:

        1. Restock every region's shelves.
        2. Decay regional heat.
        3. Decay player market impact toward neutral.
        4. Decay rival pressure on stale markets.
        5. Run every rival's turn.
        6. Age active events, dropping the expired ones.
        7. Roll new events in the player's current region.

    The order matters: events created in step 7 must survive untouched
    into the next day, so aging always runs before rolling.
*/

package game

import "time"

// DayReport is the public record of one day tick: what day it now is,
// what happened on the street, and where the player stands.
type DayReport struct {
	Day          int            `json:"day"`
	Messages     []string       `json:"messages"`
	RegionHeat   map[string]int `json:"region_heat"`
	PlayerRegion string         `json:"player_region"`
	PlayerCash   float64        `json:"player_cash"`
	Timestamp    time.Time      `json:"timestamp"`
}

// AdvanceDay ticks the simulation forward one day and returns the report.
// The report is also handed to the attached day logger, if any.
func (s *Session) AdvanceDay() *DayReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Day++
	var messages []string

	s.restockAll()
	s.decayHeat()
	s.decayPlayerImpact()
	s.decayRivalImpact()

	messages = append(messages, s.runRivalTurns()...)

	for _, key := range s.regionOrder {
		messages = append(messages, s.ageEvents(s.Regions[key])...)
	}

	if region := s.region(s.Player.CurrentRegion); region != nil {
		messages = append(messages, s.rollDailyEvents(region)...)
	}

	report := &DayReport{
		Day:          s.Day,
		Messages:     messages,
		RegionHeat:   make(map[string]int, len(s.regionOrder)),
		PlayerRegion: s.Player.CurrentRegion,
		PlayerCash:   s.Player.Cash,
		Timestamp:    time.Now().UTC(),
	}
	for _, key := range s.regionOrder {
		report.RegionHeat[key] = s.Regions[key].CurrentHeat
	}

	if s.dayLog != nil {
		// Logging failures never block the simulation.
		_ = s.dayLog.LogDay(report)
	}

	return report
}
