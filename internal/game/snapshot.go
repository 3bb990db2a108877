/*
Package game
File: snapshot.go
Description:
    Read-only views of session state for the API layer. Snapshots copy
    everything out under the read lock so callers never hold a reference
    into live simulation state.
*/

package game

import (
	"fmt"
	"sort"
)

// RegionSummary is the listing view of one region.
type RegionSummary struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	Heat         int      `json:"heat"`
	ActiveEvents []string `json:"active_events"`
}

// RegionList returns every region in declaration order.
func (s *Session) RegionList() []RegionSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]RegionSummary, 0, len(s.regionOrder))
	for _, key := range s.regionOrder {
		region := s.Regions[key]
		out = append(out, RegionSummary{
			Key:          region.Key,
			Name:         region.Name,
			Heat:         region.CurrentHeat,
			ActiveEvents: activeEventKinds(region),
		})
	}
	return out
}

// Quote is one drug/quality row of a market snapshot.
type Quote struct {
	Drug      string  `json:"drug"`
	Quality   string  `json:"quality"`
	BuyPrice  float64 `json:"buy_price"`
	SellPrice float64 `json:"sell_price"`
	Stock     int     `json:"stock"`
	Tier      int     `json:"tier"`
}

// MarketSnapshot quotes every shelf of a region in a stable order.
func (s *Session) MarketSnapshot(regionKey string) ([]Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	region := s.region(regionKey)
	if region == nil {
		return nil, fmt.Errorf("unknown region %q", regionKey)
	}

	var quotes []Quote
	for _, drug := range region.DrugOrder {
		market := region.Markets[drug]
		for _, q := range marketQualities(market.Tier) {
			quotes = append(quotes, Quote{
				Drug:      drug,
				Quality:   q.String(),
				BuyPrice:  s.buyPrice(region, drug, q),
				SellPrice: s.sellPrice(region, drug, q),
				Stock:     availableStock(s.tuning, region, drug, q),
				Tier:      market.Tier,
			})
		}
	}
	return quotes, nil
}

// PlayerView is the API-facing copy of the player record.
type PlayerView struct {
	Cash          float64                   `json:"cash"`
	CurrentRegion string                    `json:"current_region"`
	StashUsed     int                       `json:"stash_used"`
	StashCapacity int                       `json:"stash_capacity"`
	Stash         map[string]map[string]int `json:"stash"`
	Capabilities  []string                  `json:"capabilities"`
	Day           int                       `json:"day"`
}

// PlayerSnapshot copies the player record out for display.
func (s *Session) PlayerSnapshot() PlayerView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view := PlayerView{
		Cash:          s.Player.Cash,
		CurrentRegion: s.Player.CurrentRegion,
		StashUsed:     s.Player.TotalUnits(),
		StashCapacity: s.Player.StashCapacity,
		Stash:         make(map[string]map[string]int),
		Day:           s.Day,
	}
	for drug, lots := range s.Player.Stash {
		view.Stash[drug] = make(map[string]int, len(lots))
		for q, qty := range lots {
			view.Stash[drug][q.String()] = qty
		}
	}
	for key, unlocked := range s.Player.Capabilities {
		if unlocked {
			view.Capabilities = append(view.Capabilities, key)
		}
	}
	sort.Strings(view.Capabilities)
	return view
}
