/*
Package game
File: stock.go
Description:
    Shelf quantities: what a reader of the market sees as available, and
    the daily restock that refills every region. Availability is the raw
    quantity squeezed first by regional heat (harder tiers only), then by
    any live supply disruption.
*/

package game

import "math"

// randIn draws an inclusive integer from a tuning range.
func (s *Session) randIn(r IntRange) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + s.rng.Intn(r.Max-r.Min+1)
}

// randFloatIn draws a float from a tuning range.
func (s *Session) randFloatIn(r FloatRange) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + s.rng.Float64()*(r.Max-r.Min)
}

// AvailableStock reports how many units of a drug/quality the player can
// actually buy in a region right now.
func (s *Session) AvailableStock(regionKey, drug string, quality DrugQuality) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	region := s.region(regionKey)
	if region == nil {
		return 0
	}
	return availableStock(s.tuning, region, drug, quality)
}

func availableStock(t *Tuning, region *Region, drug string, quality DrugQuality) int {
	market, ok := region.Markets[drug]
	if !ok {
		return 0
	}
	entry, ok := market.Qualities[quality]
	if !ok {
		return 0
	}

	stock := int(math.Floor(float64(entry.Quantity) * heatStockFactor(t, region.CurrentHeat, market.Tier)))

	for _, ev := range region.ActiveEvents {
		if ev.Kind == EventSupplyDisruption && ev.targets(drug, quality) {
			reduced := int(math.Floor(float64(stock) * ev.Disruption.Factor))
			if reduced < ev.Disruption.MinStock {
				reduced = ev.Disruption.MinStock
			}
			stock = reduced
			break
		}
	}
	return stock
}

// restockAll refills every region. Runs at session start and once per day.
func (s *Session) restockAll() {
	for _, key := range s.regionOrder {
		s.restockRegion(s.Regions[key])
	}
}

// restockRegion refills one region's shelves:
//  1. Tier 1 street product restocks a deep standard-quality pile and
//     nothing else; higher tiers draw per-quality amounts squeezed by heat.
//  2. A live supply disruption overrides the draw with a near-empty shelf.
//  3. A live cheap stash dumps its extra units on top.
//  4. Any shelf with no price history gets its trend baseline primed.
func (s *Session) restockRegion(region *Region) {
	squeeze := heatStockFactor(s.tuning, region.CurrentHeat, 2)

	for _, drug := range region.DrugOrder {
		market := region.Markets[drug]
		for _, q := range marketQualities(market.Tier) {
			entry := market.Qualities[q]

			if market.Tier <= 1 {
				entry.Quantity = s.tuning.Tier1RestockAmount
			} else {
				var amount int
				switch q {
				case QualityPure:
					amount = s.randIn(s.tuning.StockRangePure)
				case QualityCut:
					amount = s.randIn(s.tuning.StockRangeCut)
				default:
					amount = s.randIn(s.tuning.StockRangeStandard)
				}
				entry.Quantity = int(math.Floor(float64(amount) * squeeze))
			}

			for _, ev := range region.ActiveEvents {
				if !ev.targets(drug, q) {
					continue
				}
				switch ev.Kind {
				case EventSupplyDisruption:
					// Disrupted supply lines barely deliver.
					max := ev.Disruption.MinStock
					if s.tuning.Events.SupplyDisruption.RestockOverride > max {
						max = s.tuning.Events.SupplyDisruption.RestockOverride
					}
					entry.Quantity = s.rng.Intn(max + 1)
				case EventCheapStash:
					entry.Quantity += ev.Stash.StockIncrease
				}
			}

			if entry.PreviousBuyPrice == nil || entry.PreviousSellPrice == nil {
				s.buyPrice(region, drug, q)
				s.sellPrice(region, drug, q)
			}
		}
	}
}
