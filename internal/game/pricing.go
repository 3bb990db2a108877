/*
Package game
File: pricing.go
Description:
    Live price resolution. A quote is computed fresh on every call from
    the market's base prices and its current modifier stack; nothing here
    writes anything except the previous-price cache used for trend data.

    Resolution order for a buy quote:
        1. base price x quality x player impact x rival demand
        2. cache the pre-event price for trend comparison
        3. regional heat markup
        4. black market override (wins outright while units remain)
        5. market crash (exclusive with other price events)
        6. first matching demand spike or cheap stash discount
        7. clamp at zero, round to cents
    Sell quotes skip heat entirely and only react to crashes and spikes.
*/

package game

import "math"

// qualityBuyMult scales a base buy price for purity.
func qualityBuyMult(q DrugQuality) float64 {
	switch q {
	case QualityCut:
		return 0.70
	case QualityPure:
		return 1.5
	default:
		return 1.0
	}
}

// qualitySellMult scales a base sell price for purity.
func qualitySellMult(q DrugQuality) float64 {
	switch q {
	case QualityCut:
		return 0.75
	case QualityPure:
		return 1.6
	default:
		return 1.0
	}
}

// roundCents rounds to two decimal places, half away from zero.
func roundCents(p float64) float64 {
	return math.Round(p*100) / 100
}

// BuyPrice returns what one unit costs the player right now, or 0 if the
// drug is not traded in the region or the shelf is empty with no demand
// spike propping it up.
func (s *Session) BuyPrice(regionKey, drug string, quality DrugQuality) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	region := s.region(regionKey)
	if region == nil {
		return 0
	}
	return s.buyPrice(region, drug, quality)
}

// SellPrice returns what the street pays per unit right now.
func (s *Session) SellPrice(regionKey, drug string, quality DrugQuality) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	region := s.region(regionKey)
	if region == nil {
		return 0
	}
	return s.sellPrice(region, drug, quality)
}

func (s *Session) buyPrice(region *Region, drug string, quality DrugQuality) float64 {
	market, ok := region.Markets[drug]
	if !ok {
		return 0
	}
	entry, ok := market.Qualities[quality]
	if !ok {
		return 0
	}

	// An empty shelf quotes nothing, unless a demand spike on this exact
	// drug and quality keeps buyers bidding on thin air.
	if entry.Quantity <= 0 && !hasDemandSpikeFor(region, drug, quality) {
		return 0
	}

	price := market.BaseBuyPrice * qualityBuyMult(quality) *
		market.PlayerBuyImpactModifier * market.RivalDemandModifier

	// Cache the pre-heat, pre-event price so trend arrows track the
	// underlying market rather than transient event noise.
	s.cachePreviousBuy(entry, price)

	price *= heatPriceFactor(s.tuning, region.CurrentHeat)

	// A live black market undercuts everything else while it has units.
	for _, ev := range region.ActiveEvents {
		if ev.Kind == EventBlackMarket && ev.targets(drug, quality) &&
			ev.BlackMarket.QuantityLeft > 0 && ev.DaysRemaining > 0 {
			return roundCents(math.Max(0, price*ev.BlackMarket.BuyMult))
		}
	}

	if crash := findCrash(region, drug, quality); crash != nil {
		price *= crash.Crash.Factor
		price = math.Max(price, crash.Crash.MinPrice)
	} else {
		// Only the first discount or spike that actually moves the price
		// applies; effects on the same shelf never stack, and a neutral
		// multiplier does not shadow a later live one.
		for _, ev := range region.ActiveEvents {
			if !ev.targets(drug, quality) {
				continue
			}
			if ev.Kind == EventDemandSpike && ev.Spike.BuyMult != 1.0 {
				price *= ev.Spike.BuyMult
				break
			}
			if ev.Kind == EventCheapStash && ev.Stash.BuyMult != 1.0 {
				price *= ev.Stash.BuyMult
				break
			}
		}
	}

	return roundCents(math.Max(0, price))
}

func (s *Session) sellPrice(region *Region, drug string, quality DrugQuality) float64 {
	market, ok := region.Markets[drug]
	if !ok {
		return 0
	}
	entry, ok := market.Qualities[quality]
	if !ok {
		return 0
	}

	price := market.BaseSellPrice * qualitySellMult(quality) *
		market.PlayerSellImpactModifier * market.RivalSupplyModifier

	s.cachePreviousSell(entry, price)

	if crash := findCrash(region, drug, quality); crash != nil {
		price *= crash.Crash.Factor
		price = math.Max(price, crash.Crash.MinPrice)
	} else {
		for _, ev := range region.ActiveEvents {
			if ev.Kind == EventDemandSpike && ev.targets(drug, quality) && ev.Spike.SellMult != 1.0 {
				price *= ev.Spike.SellMult
				break
			}
		}
	}

	return roundCents(math.Max(0, price))
}

// cachePreviousBuy refreshes the trend baseline when the underlying price
// has actually moved. Tiny float wobble below a cent is ignored.
func (s *Session) cachePreviousBuy(entry *MarketEntry, price float64) {
	if entry.PreviousBuyPrice == nil || math.Abs(*entry.PreviousBuyPrice-price) > 0.01 {
		p := price
		entry.PreviousBuyPrice = &p
	}
}

func (s *Session) cachePreviousSell(entry *MarketEntry, price float64) {
	if entry.PreviousSellPrice == nil || math.Abs(*entry.PreviousSellPrice-price) > 0.01 {
		p := price
		entry.PreviousSellPrice = &p
	}
}

// findCrash returns the live market crash covering a drug/quality, if any.
func findCrash(region *Region, drug string, quality DrugQuality) *MarketEvent {
	for _, ev := range region.ActiveEvents {
		if ev.Kind == EventMarketCrash && ev.targets(drug, quality) {
			return ev
		}
	}
	return nil
}

func hasDemandSpikeFor(region *Region, drug string, quality DrugQuality) bool {
	for _, ev := range region.ActiveEvents {
		if ev.Kind == EventDemandSpike && ev.targets(drug, quality) {
			return true
		}
	}
	return false
}
