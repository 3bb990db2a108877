/*
Package game
File: heat.go
Description:
    Regional heat: how much police attention a region carries. Heat rises
    when the player sells (scaled by drug tier) and when a crackdown hits,
    and bleeds off a little every day. Two threshold tables translate a
    heat level into a price markup and a stock squeeze.
*/

package game

import "math"

// thresholdFactor resolves a heat level against a threshold table: the
// value of the highest threshold not exceeding the level applies.
func thresholdFactor(table map[int]float64, heat int) float64 {
	factor := 1.0
	best := -1
	for threshold, f := range table {
		if heat >= threshold && threshold > best {
			best = threshold
			factor = f
		}
	}
	return factor
}

// heatPriceFactor returns the buy price markup for a region's heat.
func heatPriceFactor(t *Tuning, heat int) float64 {
	return thresholdFactor(t.HeatPriceThresholds, heat)
}

// heatStockFactor returns the restock/availability squeeze for a region's
// heat. Tier 1 street product is never squeezed; only the harder tiers
// dry up when police are watching.
func heatStockFactor(t *Tuning, heat int, tier int) float64 {
	if tier <= 1 {
		return 1.0
	}
	return thresholdFactor(t.HeatStockThresholds, heat)
}

// addHeat shifts a region's heat. Heat never drops below zero but has no
// ceiling; the threshold tables simply stay at their top bracket once a
// region runs hot enough.
func addHeat(region *Region, amount int) {
	region.CurrentHeat += amount
	if region.CurrentHeat < 0 {
		region.CurrentHeat = 0
	}
}

// saleHeat computes the heat a sale generates: per-unit heat by tier,
// reduced for players who keep their operation compartmentalized.
func (s *Session) saleHeat(tier, qty int) int {
	perUnit := s.tuning.HeatPerUnitByTier[tier]
	heat := float64(perUnit * qty)
	if s.Player.HasCapability(CapCompartmentalization) {
		heat *= 1.0 - s.tuning.DiscreetReduction
	}
	return int(math.Round(heat))
}

// decayHeat cools every region by a percentage of its current heat, at
// least one point, each day. Ghost protocol players cool the city faster.
func (s *Session) decayHeat() {
	rate := s.tuning.HeatDecayPercent
	if s.Player.HasCapability(CapGhostProtocol) {
		rate *= 1.0 + s.tuning.FastDecayBoost
	}
	for _, key := range s.regionOrder {
		region := s.Regions[key]
		if region.CurrentHeat <= 0 {
			continue
		}
		drop := int(math.Floor(float64(region.CurrentHeat) * rate))
		if drop < s.tuning.HeatDecayMinimum {
			drop = s.tuning.HeatDecayMinimum
		}
		addHeat(region, -drop)
	}
}

// RegionHeat reports a region's current heat level.
func (s *Session) RegionHeat(regionKey string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if region := s.region(regionKey); region != nil {
		return region.CurrentHeat
	}
	return 0
}
