/*
Package game
File: session.go
Description:
    Session is the root object of one running simulation: the city, the
    rival roster, the player and the day counter, guarded by a single
    read/write lock. Every entry point the API layer calls lives on
    Session and takes the lock itself; unexported helpers assume it is
    already held.

    All randomness flows through one *rand.Rand created from the seed
    passed to NewSession, so a seeded session replays identically.
*/

package game

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// DayLogger receives one record per simulated day. The persistence layer
// provides a compressed JSONL implementation; a nil logger is skipped.
type DayLogger interface {
	LogDay(report *DayReport) error
}

// Session owns all mutable simulation state.
type Session struct {
	mu sync.RWMutex

	tuning *Tuning

	Regions     map[string]*Region
	regionOrder []string

	Rivals []*Rival
	Player *Player
	Day    int

	rng    *rand.Rand
	dayLog DayLogger
}

// NewSession builds a city from the tuning and seeds its random source.
// The same tuning and seed always produce the same run.
func NewSession(t *Tuning, seed int64) *Session {
	s := &Session{
		tuning:  t,
		Regions: make(map[string]*Region),
		Player:  NewPlayer(t),
		Day:     1,
		rng:     rand.New(rand.NewSource(seed)),
	}

	for _, rd := range t.Regions {
		region := &Region{
			Key:     rd.Key,
			Name:    rd.Name,
			Markets: make(map[string]*DrugMarket),
		}
		for _, dd := range rd.Drugs {
			market := &DrugMarket{
				BaseBuyPrice:             dd.BaseBuyPrice,
				BaseSellPrice:            dd.BaseSellPrice,
				Tier:                     dd.Tier,
				PlayerBuyImpactModifier:  1.0,
				PlayerSellImpactModifier: 1.0,
				RivalDemandModifier:      1.0,
				RivalSupplyModifier:      1.0,
				LastRivalActivityDay:     -1,
				Qualities:                make(map[DrugQuality]*MarketEntry),
			}
			for _, q := range marketQualities(dd.Tier) {
				market.Qualities[q] = &MarketEntry{}
			}
			region.Markets[dd.Key] = market
			region.DrugOrder = append(region.DrugOrder, dd.Key)
		}
		s.Regions[rd.Key] = region
		s.regionOrder = append(s.regionOrder, rd.Key)
	}

	for _, rv := range t.Rivals {
		s.Rivals = append(s.Rivals, &Rival{
			Name:          rv.Name,
			PrimaryDrug:   rv.PrimaryDrug,
			PrimaryRegion: rv.PrimaryRegion,
			Aggression:    rv.Aggression,
			ActivityLevel: rv.ActivityLevel,
			LastActionDay: -1,
		})
	}

	// Fill the shelves and prime price history before day one.
	s.restockAll()
	return s
}

// SetDayLogger attaches an optional per-day record sink.
func (s *Session) SetDayLogger(l DayLogger) {
	s.mu.Lock()
	s.dayLog = l
	s.mu.Unlock()
}

// RegionKeys returns the region keys in city declaration order.
func (s *Session) RegionKeys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, len(s.regionOrder))
	copy(keys, s.regionOrder)
	return keys
}

// CurrentDay returns the day counter.
func (s *Session) CurrentDay() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Day
}

// Travel moves the player to another region.
func (s *Session) Travel(regionKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Regions[regionKey]; !ok {
		return fmt.Errorf("unknown region %q", regionKey)
	}
	s.Player.CurrentRegion = regionKey
	return nil
}

// region returns a region or nil. Callers hold the lock.
func (s *Session) region(key string) *Region {
	return s.Regions[key]
}

// sortedQualities returns the fixed CUT -> STANDARD -> PURE order for
// walks over the player's stash, where every grade can appear.
func sortedQualities() []DrugQuality {
	return qualityOrder
}

// marketQualities lists the grades a market of the given tier shelves.
// Street tier product only moves at STANDARD; harder tiers carry every
// grade.
func marketQualities(tier int) []DrugQuality {
	if tier <= 1 {
		return []DrugQuality{QualityStandard}
	}
	return qualityOrder
}

// TrendDirection describes how a price moved since its last cached value.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendFlat   TrendDirection = "flat"
	TrendNoData TrendDirection = "none"
)

// Trend is one drug/quality price movement entry for the market analyst view.
type Trend struct {
	Drug        string         `json:"drug"`
	Quality     string         `json:"quality"`
	BuyTrend    TrendDirection `json:"buy_trend"`
	SellTrend   TrendDirection `json:"sell_trend"`
	CurrentBuy  float64        `json:"current_buy"`
	CurrentSell float64        `json:"current_sell"`
}

// MarketTrends compares live prices against the cached previous prices for
// every drug in a region. Only players with the market analyst capability
// get data; everyone else gets an error.
func (s *Session) MarketTrends(regionKey string) ([]Trend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Player.HasCapability(CapMarketAnalyst) {
		return nil, fmt.Errorf("market trend data requires the %s capability", CapMarketAnalyst)
	}
	region := s.region(regionKey)
	if region == nil {
		return nil, fmt.Errorf("unknown region %q", regionKey)
	}

	var trends []Trend
	for _, drug := range region.DrugOrder {
		market := region.Markets[drug]
		for _, q := range marketQualities(market.Tier) {
			entry := market.Qualities[q]
			buy := s.buyPrice(region, drug, q)
			sell := s.sellPrice(region, drug, q)
			trends = append(trends, Trend{
				Drug:        drug,
				Quality:     q.String(),
				BuyTrend:    trendOf(entry.PreviousBuyPrice, buy),
				SellTrend:   trendOf(entry.PreviousSellPrice, sell),
				CurrentBuy:  buy,
				CurrentSell: sell,
			})
		}
	}
	return trends, nil
}

func trendOf(prev *float64, current float64) TrendDirection {
	if prev == nil {
		return TrendNoData
	}
	switch {
	case current > *prev+0.01:
		return TrendUp
	case current < *prev-0.01:
		return TrendDown
	default:
		return TrendFlat
	}
}

// GrantCapability unlocks a capability on the player.
func (s *Session) GrantCapability(key string) {
	s.mu.Lock()
	s.Player.Capabilities[key] = true
	s.mu.Unlock()
}

// eventID mints a unique id for a market event. Identity is cosmetic, so
// it deliberately bypasses the seeded source and leaves replays untouched.
func (s *Session) eventID(kind EventKind) string {
	return fmt.Sprintf("%s-%d-%s", kind, s.Day, uuid.NewString()[:8])
}

// activeEventKinds lists the kinds currently live in a region, sorted
// for a stable listing.
func activeEventKinds(region *Region) []string {
	kinds := make([]string, 0, len(region.ActiveEvents))
	for _, ev := range region.ActiveEvents {
		kinds = append(kinds, string(ev.Kind))
	}
	sort.Strings(kinds)
	return kinds
}
