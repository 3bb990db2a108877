/*
Package game
File: rivals.go
Description:
    The rival roster. Each rival works one drug in one home region; on an
    active day they either buy the market up (demand pressure) or flood
    it (supply pressure), depending on how aggressive they are. Their
    pressure on a market fades once they leave it alone for a few days.
*/

package game

import "fmt"

// runRivalTurns advances every rival by one day and returns the street
// chatter their actions produced.
func (s *Session) runRivalTurns() []string {
	var messages []string

	for _, rival := range s.Rivals {
		if rival.IsBusted {
			rival.BustedDaysRemaining--
			if rival.BustedDaysRemaining <= 0 {
				rival.IsBusted = false
				messages = append(messages, fmt.Sprintf("Word is %s is back in business.", rival.Name))
			}
			continue
		}

		// Lazy rivals sit most days out.
		if s.rng.Float64() > rival.ActivityLevel {
			continue
		}

		region := s.region(rival.PrimaryRegion)
		if region == nil {
			continue
		}
		market, ok := region.Markets[rival.PrimaryDrug]
		if !ok {
			continue
		}

		// Fresh rivals (sentinel -1) act immediately; everyone else waits
		// out a short random cooldown between moves.
		if rival.LastActionDay != -1 {
			cooldown := s.randIn(s.tuning.RivalCooldown)
			if s.Day-rival.LastActionDay < cooldown {
				continue
			}
		}

		if s.rng.Float64() < rival.Aggression {
			// Buying spree: demand pressure pushes the player's buy price up.
			push := 1.0 + (s.tuning.RivalBaseImpact + rival.Aggression*s.tuning.RivalAggressionScale)
			market.RivalDemandModifier *= push
			if market.RivalDemandModifier > s.tuning.RivalDemandCap {
				market.RivalDemandModifier = s.tuning.RivalDemandCap
			}
		} else {
			// Flooding the market: supply pressure drags sell prices down.
			drop := 1.0 - (s.tuning.RivalBaseImpact + (1.0-rival.Aggression)*s.tuning.RivalAggressionScale)
			market.RivalSupplyModifier *= drop
			if market.RivalSupplyModifier < s.tuning.RivalSupplyFloor {
				market.RivalSupplyModifier = s.tuning.RivalSupplyFloor
			}
		}

		rival.LastActionDay = s.Day
		market.LastRivalActivityDay = s.Day
	}

	return messages
}

// decayRivalImpact relaxes rival pressure on markets no rival has touched
// for a few days. Demand unwinds in flat steps, supply proportionally;
// neither ever crosses neutral.
func (s *Session) decayRivalImpact() {
	for _, key := range s.regionOrder {
		region := s.Regions[key]
		for _, drug := range region.DrugOrder {
			market := region.Markets[drug]
			if market.LastRivalActivityDay != -1 &&
				s.Day-market.LastRivalActivityDay <= s.tuning.RivalDecayAfterDays {
				continue
			}

			step := s.tuning.RivalDemandDecayStep
			switch {
			case market.RivalDemandModifier > 1.0:
				market.RivalDemandModifier -= step
				if market.RivalDemandModifier < 1.0 {
					market.RivalDemandModifier = 1.0
				}
			case market.RivalDemandModifier < 1.0:
				market.RivalDemandModifier += step
				if market.RivalDemandModifier > 1.0 {
					market.RivalDemandModifier = 1.0
				}
			}

			mult := s.tuning.RivalSupplyDecayMult
			switch {
			case market.RivalSupplyModifier < 1.0:
				market.RivalSupplyModifier *= 1.0 + mult
				if market.RivalSupplyModifier > 1.0 {
					market.RivalSupplyModifier = 1.0
				}
			case market.RivalSupplyModifier > 1.0:
				market.RivalSupplyModifier *= 1.0 - mult
				if market.RivalSupplyModifier < 1.0 {
					market.RivalSupplyModifier = 1.0
				}
			}
		}
	}
}

// bustRival takes a named rival off the street for a stretch of days.
// Returns false if the rival is unknown or already locked up.
func (s *Session) bustRival(name string, days int) bool {
	for _, rival := range s.Rivals {
		if rival.Name == name {
			if rival.IsBusted {
				return false
			}
			rival.IsBusted = true
			rival.BustedDaysRemaining = days
			return true
		}
	}
	return false
}

// freeRivals returns the rivals currently on the street.
func (s *Session) freeRivals() []*Rival {
	var free []*Rival
	for _, rival := range s.Rivals {
		if !rival.IsBusted {
			free = append(free, rival)
		}
	}
	return free
}
