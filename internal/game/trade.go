/*
Package game
File: trade.go
Description:
    The player-facing trade paths: buying off a shelf (or a black market
    stall), selling into the street, and settling a shady setup deal.
    Every path is all-or-nothing: validation first, then cash, stash and
    market state change together under the session lock.
*/

package game

import "fmt"

// TradeReceipt summarizes one completed buy or sell.
type TradeReceipt struct {
	Drug      string  `json:"drug"`
	Quality   string  `json:"quality"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
	CashAfter float64 `json:"cash_after"`
}

// BuyDrug purchases units in a region. A live black market on the shelf
// sells from its own pool at its own price and leaves the regular shelf
// untouched; otherwise units come off the shelf and the purchase nudges
// the player's buy impact on that market.
func (s *Session) BuyDrug(regionKey, drug string, quality DrugQuality, qty int) (*TradeReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if qty <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}
	region := s.region(regionKey)
	if region == nil {
		return nil, fmt.Errorf("unknown region %q", regionKey)
	}
	market, ok := region.Markets[drug]
	if !ok {
		return nil, fmt.Errorf("%s is not traded in %s", drug, region.Name)
	}
	entry, ok := market.Qualities[quality]
	if !ok {
		return nil, fmt.Errorf("no %s %s in %s", quality, drug, region.Name)
	}

	price := s.buyPrice(region, drug, quality)
	if price <= 0 {
		return nil, fmt.Errorf("%s %s is not available in %s right now", quality, drug, region.Name)
	}

	var blackMarket *MarketEvent
	for _, ev := range region.ActiveEvents {
		if ev.Kind == EventBlackMarket && ev.targets(drug, quality) &&
			ev.BlackMarket.QuantityLeft > 0 && ev.DaysRemaining > 0 {
			blackMarket = ev
			break
		}
	}

	if blackMarket != nil {
		if qty > blackMarket.BlackMarket.QuantityLeft {
			return nil, fmt.Errorf("the black market only has %d units left", blackMarket.BlackMarket.QuantityLeft)
		}
	} else {
		stock := availableStock(s.tuning, region, drug, quality)
		if qty > stock {
			return nil, fmt.Errorf("only %d units of %s %s available", stock, quality, drug)
		}
	}

	total := roundCents(price * float64(qty))
	if total > s.Player.Cash {
		return nil, fmt.Errorf("need $%.2f, have $%.2f", total, s.Player.Cash)
	}
	if s.Player.TotalUnits()+qty > s.Player.StashCapacity {
		return nil, fmt.Errorf("stash cannot hold %d more units", qty)
	}

	s.Player.Cash = roundCents(s.Player.Cash - total)
	s.Player.AddDrug(drug, quality, qty)

	if blackMarket != nil {
		blackMarket.BlackMarket.QuantityLeft -= qty
	} else {
		entry.Quantity -= qty
		s.applyBuyImpact(market, qty)
	}

	return &TradeReceipt{
		Drug:      drug,
		Quality:   quality.String(),
		Quantity:  qty,
		UnitPrice: price,
		Total:     total,
		CashAfter: s.Player.Cash,
	}, nil
}

// SellDrug sells units from the stash into a region's street market.
// Selling draws heat scaled by the drug's tier and leaves the shelf
// quantity alone; the street absorbs the units.
func (s *Session) SellDrug(regionKey, drug string, quality DrugQuality, qty int) (*TradeReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if qty <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}
	region := s.region(regionKey)
	if region == nil {
		return nil, fmt.Errorf("unknown region %q", regionKey)
	}
	market, ok := region.Markets[drug]
	if !ok {
		return nil, fmt.Errorf("%s has no buyers in %s", drug, region.Name)
	}

	if held := s.Player.Quantity(drug, quality); held < qty {
		return nil, fmt.Errorf("only holding %d units of %s %s", held, quality, drug)
	}

	price := s.sellPrice(region, drug, quality)
	if price <= 0 {
		return nil, fmt.Errorf("nobody in %s is paying for %s %s right now", region.Name, quality, drug)
	}

	total := roundCents(price * float64(qty))
	s.Player.RemoveDrug(drug, quality, qty)
	s.Player.Cash = roundCents(s.Player.Cash + total)

	s.applySellImpact(market, qty)
	addHeat(region, s.saleHeat(market.Tier, qty))

	return &TradeReceipt{
		Drug:      drug,
		Quality:   quality.String(),
		Quantity:  qty,
		UnitPrice: price,
		Total:     total,
		CashAfter: s.Player.Cash,
	}, nil
}

// RespondToSetup settles or declines a pending setup deal by event id.
// Declining just removes the offer; accepting moves cash and product at
// the deal price. Either way the event is gone afterwards.
func (s *Session) RespondToSetup(regionKey, eventID string, accept bool) (*TradeReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	region := s.region(regionKey)
	if region == nil {
		return nil, fmt.Errorf("unknown region %q", regionKey)
	}

	idx := -1
	for i, ev := range region.ActiveEvents {
		if ev.Kind == EventTheSetup && ev.ID == eventID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("no pending offer %q in %s", eventID, region.Name)
	}
	deal := region.ActiveEvents[idx].Setup

	if !accept {
		region.ActiveEvents = append(region.ActiveEvents[:idx], region.ActiveEvents[idx+1:]...)
		return nil, nil
	}

	total := roundCents(deal.PricePerUnit * float64(deal.Quantity))

	if deal.IsBuyDeal {
		if total > s.Player.Cash {
			return nil, fmt.Errorf("the deal costs $%.2f, have $%.2f", total, s.Player.Cash)
		}
		if s.Player.TotalUnits()+deal.Quantity > s.Player.StashCapacity {
			return nil, fmt.Errorf("stash cannot hold %d more units", deal.Quantity)
		}
		s.Player.Cash = roundCents(s.Player.Cash - total)
		s.Player.AddDrug(deal.Drug, deal.Quality, deal.Quantity)
	} else {
		if held := s.Player.Quantity(deal.Drug, deal.Quality); held < deal.Quantity {
			return nil, fmt.Errorf("the buyer wants %d units, only holding %d", deal.Quantity, held)
		}
		s.Player.RemoveDrug(deal.Drug, deal.Quality, deal.Quantity)
		s.Player.Cash = roundCents(s.Player.Cash + total)
	}

	region.ActiveEvents = append(region.ActiveEvents[:idx], region.ActiveEvents[idx+1:]...)

	return &TradeReceipt{
		Drug:      deal.Drug,
		Quality:   deal.Quality.String(),
		Quantity:  deal.Quantity,
		UnitPrice: deal.PricePerUnit,
		Total:     total,
		CashAfter: s.Player.Cash,
	}, nil
}
