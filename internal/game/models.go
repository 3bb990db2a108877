/*
Package game
File: models.go
Description:
    Defines all data structures (Structs) used by the market simulation.
    This file serves as the "schema" for the engine: regions, per-drug
    markets, market events, rivals and the player record.

    No logic is performed here; this file is strictly for type definitions.
*/

package game

// DrugQuality is the closed set of quality grades a drug can be sold at.
// Tier 1 drugs only ever exist at STANDARD quality.
type DrugQuality int

const (
	QualityCut DrugQuality = iota + 1
	QualityStandard
	QualityPure
)

// qualityOrder fixes the iteration order wherever all qualities of a drug
// are walked, so restock and snapshot output are stable for a given seed.
var qualityOrder = []DrugQuality{QualityCut, QualityStandard, QualityPure}

func (q DrugQuality) String() string {
	switch q {
	case QualityCut:
		return "CUT"
	case QualityStandard:
		return "STANDARD"
	case QualityPure:
		return "PURE"
	}
	return "UNKNOWN"
}

// ParseQuality maps the wire/config spelling back to a DrugQuality.
// Unknown spellings come back as STANDARD.
func ParseQuality(s string) DrugQuality {
	switch s {
	case "CUT":
		return QualityCut
	case "PURE":
		return QualityPure
	default:
		return QualityStandard
	}
}

// MarketEntry is the per-quality slice of a drug market: how many units are
// on the shelf and the last prices the pricing engine computed for it.
// The previous prices are nil until primed, and back the UI's trend arrows.
type MarketEntry struct {
	Quantity          int      `json:"quantity"`
	PreviousBuyPrice  *float64 `json:"previous_buy_price,omitempty"`
	PreviousSellPrice *float64 `json:"previous_sell_price,omitempty"`
}

// DrugMarket holds one drug's market state within a single region.
// The four modifiers all start at 1.0 and are pushed away from neutral by
// player trades and rival activity, then decayed back daily.
type DrugMarket struct {
	BaseBuyPrice  float64 `json:"base_buy_price"`
	BaseSellPrice float64 `json:"base_sell_price"`
	Tier          int     `json:"tier"` // 1-3; controls qualities and heat sensitivity

	PlayerBuyImpactModifier  float64 `json:"player_buy_impact_modifier"`  // capped at 1.25
	PlayerSellImpactModifier float64 `json:"player_sell_impact_modifier"` // floored at 0.75
	RivalDemandModifier      float64 `json:"rival_demand_modifier"`       // capped at 2.0
	RivalSupplyModifier      float64 `json:"rival_supply_modifier"`       // floored at 0.5

	// LastRivalActivityDay is -1 until a rival first acts on this drug.
	LastRivalActivityDay int `json:"last_rival_activity_day"`

	Qualities map[DrugQuality]*MarketEntry `json:"qualities"`
}

// Region is a distinct area of the city with its own market, police heat
// and active events. A Region exclusively owns its market map and event
// list; nothing outside the session mutates them.
type Region struct {
	Key  string `json:"key"`
	Name string `json:"name"`

	// CurrentHeat is the accumulated police attention. Never negative.
	CurrentHeat int `json:"current_heat"`

	Markets map[string]*DrugMarket `json:"markets"`

	// DrugOrder preserves config order so daily passes iterate the market
	// deterministically under a fixed seed.
	DrugOrder []string `json:"drug_order"`

	ActiveEvents []*MarketEvent `json:"active_events"`
}

// EventKind discriminates the market event variants.
type EventKind string

const (
	EventDemandSpike      EventKind = "DEMAND_SPIKE"
	EventSupplyDisruption EventKind = "SUPPLY_DISRUPTION"
	EventPoliceCrackdown  EventKind = "POLICE_CRACKDOWN"
	EventCheapStash       EventKind = "CHEAP_STASH"
	EventTheSetup         EventKind = "THE_SETUP"
	EventRivalBusted      EventKind = "RIVAL_BUSTED"
	EventMarketCrash      EventKind = "DRUG_MARKET_CRASH"
	EventBlackMarket      EventKind = "BLACK_MARKET_OPPORTUNITY"
)

// SpikeEffect carries the price multipliers of a DEMAND_SPIKE.
type SpikeEffect struct {
	BuyMult  float64 `json:"buy_mult"`
	SellMult float64 `json:"sell_mult"`
}

// DisruptionEffect starves a drug's shelf: visible stock is multiplied by
// Factor and floored at MinStock while the event runs.
type DisruptionEffect struct {
	Factor   float64 `json:"factor"`
	MinStock int     `json:"min_stock"`
}

// CrackdownEffect records the one-shot heat bump applied when a
// POLICE_CRACKDOWN was created.
type CrackdownEffect struct {
	HeatIncrease int `json:"heat_increase"`
}

// StashEffect discounts buys and pads the next restock of its target.
type StashEffect struct {
	BuyMult       float64 `json:"buy_mult"`
	StockIncrease int     `json:"stock_increase"`
}

// CrashEffect collapses a drug's price: multiply by Factor, never below
// MinPrice.
type CrashEffect struct {
	Factor   float64 `json:"factor"`
	MinPrice float64 `json:"min_price"`
}

// BlackMarketEffect is a limited-quantity discount. QuantityLeft is
// decremented on each qualifying purchase; the event dies with it.
type BlackMarketEffect struct {
	BuyMult      float64 `json:"buy_mult"`
	QuantityLeft int     `json:"quantity_left"`
}

// SetupDeal is the one-shot offer behind THE_SETUP. The engine only carries
// the deal shape; accept/decline handling lives at the API layer.
type SetupDeal struct {
	Drug         string      `json:"drug"`
	Quality      DrugQuality `json:"quality"`
	Quantity     int         `json:"quantity"`
	PricePerUnit float64     `json:"price_per_unit"`
	IsBuyDeal    bool        `json:"is_buy_deal"`
}

// RivalBustEffect names the rival taken off the streets.
type RivalBustEffect struct {
	RivalName string `json:"rival_name"`
}

// MarketEvent is one active occurrence in a region. Kind selects exactly
// one of the payload pointers; the rest stay nil. Price and stock code
// switch on Kind so every variant is handled explicitly rather than by
// probing optional fields.
type MarketEvent struct {
	ID   string    `json:"id"`
	Kind EventKind `json:"kind"`

	// TargetDrug/TargetQuality identify the market slice the event bends.
	// HasTarget is false for region-wide kinds (POLICE_CRACKDOWN,
	// THE_SETUP, RIVAL_BUSTED).
	TargetDrug    string      `json:"target_drug,omitempty"`
	TargetQuality DrugQuality `json:"target_quality,omitempty"`
	HasTarget     bool        `json:"has_target"`

	StartDay      int `json:"start_day"`
	DaysRemaining int `json:"days_remaining"`

	Spike       *SpikeEffect       `json:"spike,omitempty"`
	Disruption  *DisruptionEffect  `json:"disruption,omitempty"`
	Crackdown   *CrackdownEffect   `json:"crackdown,omitempty"`
	Stash       *StashEffect       `json:"stash,omitempty"`
	Crash       *CrashEffect       `json:"crash,omitempty"`
	BlackMarket *BlackMarketEffect `json:"black_market,omitempty"`
	Setup       *SetupDeal         `json:"setup,omitempty"`
	RivalBust   *RivalBustEffect   `json:"rival_bust,omitempty"`
}

// targets reports whether the event bends exactly this (drug, quality).
func (ev *MarketEvent) targets(drug string, quality DrugQuality) bool {
	return ev.HasTarget && ev.TargetDrug == drug && ev.TargetQuality == quality
}

// Rival is an autonomous competitor. Rivals are created once at session
// setup, never destroyed, and reference their region/drug by key only.
type Rival struct {
	Name          string  `json:"name"`
	PrimaryDrug   string  `json:"primary_drug"`
	PrimaryRegion string  `json:"primary_region"`
	Aggression    float64 `json:"aggression"`     // 0.0-1.0
	ActivityLevel float64 `json:"activity_level"` // 0.0-1.0

	IsBusted            bool `json:"is_busted"`
	BustedDaysRemaining int  `json:"busted_days_remaining"`

	// LastActionDay is -1 until the rival's first market action.
	LastActionDay int `json:"last_action_day"`
}
