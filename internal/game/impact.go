/*
Package game
File: impact.go
Description:
    Player market impact. Big purchases push a drug's buy price up and
    big sell-offs push its street price down; both effects fade a little
    each day until the market forgets the player was ever there.
*/

package game

// applyBuyImpact nudges a market's buy modifier up after a player purchase.
// The step scales with the fraction of a base lot traded, so even small
// buys move the needle a little.
func (s *Session) applyBuyImpact(market *DrugMarket, qty int) {
	step := float64(qty) / float64(s.tuning.ImpactUnitsBase) * s.tuning.ImpactFactorPerBase
	if step <= 0 {
		return
	}
	market.PlayerBuyImpactModifier += step
	if market.PlayerBuyImpactModifier > s.tuning.BuyImpactCap {
		market.PlayerBuyImpactModifier = s.tuning.BuyImpactCap
	}
}

// applySellImpact nudges a market's sell modifier down after a player sale.
// Compartmentalized players spread their sales out and dent the market less.
func (s *Session) applySellImpact(market *DrugMarket, qty int) {
	step := float64(qty) / float64(s.tuning.ImpactUnitsBase) * s.tuning.ImpactFactorPerBase
	if s.Player.HasCapability(CapCompartmentalization) {
		step *= 1.0 - s.tuning.DiscreetReduction
	}
	if step <= 0 {
		return
	}
	market.PlayerSellImpactModifier -= step
	if market.PlayerSellImpactModifier < s.tuning.SellImpactFloor {
		market.PlayerSellImpactModifier = s.tuning.SellImpactFloor
	}
}

// decayPlayerImpact walks every market's player modifiers one step back
// toward neutral, never overshooting 1.0.
func (s *Session) decayPlayerImpact() {
	rate := s.tuning.ImpactDecayRate
	for _, key := range s.regionOrder {
		region := s.Regions[key]
		for _, drug := range region.DrugOrder {
			market := region.Markets[drug]
			if market.PlayerBuyImpactModifier > 1.0 {
				market.PlayerBuyImpactModifier -= rate
				if market.PlayerBuyImpactModifier < 1.0 {
					market.PlayerBuyImpactModifier = 1.0
				}
			}
			if market.PlayerSellImpactModifier < 1.0 {
				market.PlayerSellImpactModifier += rate
				if market.PlayerSellImpactModifier > 1.0 {
					market.PlayerSellImpactModifier = 1.0
				}
			}
		}
	}
}
