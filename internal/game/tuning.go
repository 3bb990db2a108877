/*
Package game
File: tuning.go
Description:
    The tuning surface of the simulation, loaded once from 'streets.yaml'.
    It declares the city layout (regions, drugs, stock ranges), the rival
    roster, per-event parameter ranges, trigger chances, the event weight
    table and the two heat threshold tables.

    Everything here is pure data. Missing values fall back to the defaults
    below, so a partial YAML file still produces a playable city.
*/

package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DrugDef declares one drug in a region's market.
type DrugDef struct {
	Key           string  `yaml:"key" json:"key"`
	BaseBuyPrice  float64 `yaml:"base_buy_price" json:"base_buy_price"`
	BaseSellPrice float64 `yaml:"base_sell_price" json:"base_sell_price"`
	Tier          int     `yaml:"tier" json:"tier"`
}

// RegionDef declares one region and the drugs traded there.
type RegionDef struct {
	Key   string    `yaml:"key" json:"key"`
	Name  string    `yaml:"name" json:"name"`
	Drugs []DrugDef `yaml:"drugs" json:"drugs"`
}

// RivalDef declares one autonomous competitor.
type RivalDef struct {
	Name          string  `yaml:"name" json:"name"`
	PrimaryDrug   string  `yaml:"primary_drug" json:"primary_drug"`
	PrimaryRegion string  `yaml:"primary_region" json:"primary_region"`
	Aggression    float64 `yaml:"aggression" json:"aggression"`
	ActivityLevel float64 `yaml:"activity_level" json:"activity_level"`
}

// IntRange is an inclusive [Min, Max] sampling range.
type IntRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// FloatRange is an inclusive [Min, Max] sampling range.
type FloatRange struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// EventTuning groups the per-kind numeric ranges used by the creation
// routines. Only the fields relevant to a kind are read for it.
type EventTuning struct {
	DemandSpike struct {
		BuyMult  FloatRange `yaml:"buy_mult" json:"buy_mult"`
		SellMult FloatRange `yaml:"sell_mult" json:"sell_mult"`
		Duration IntRange   `yaml:"duration_days" json:"duration_days"`
	} `yaml:"demand_spike" json:"demand_spike"`

	SupplyDisruption struct {
		DurationDays    int     `yaml:"duration_days" json:"duration_days"`
		StockReduction  float64 `yaml:"stock_reduction_percent" json:"stock_reduction_percent"`
		MinStock        int     `yaml:"min_stock_after_event" json:"min_stock_after_event"`
		RestockOverride int     `yaml:"restock_override_max" json:"restock_override_max"` // near-empty shelf draw: [0, max]
	} `yaml:"supply_disruption" json:"supply_disruption"`

	PoliceCrackdown struct {
		Duration     IntRange `yaml:"duration_days" json:"duration_days"`
		HeatIncrease IntRange `yaml:"heat_increase" json:"heat_increase"`
	} `yaml:"police_crackdown" json:"police_crackdown"`

	CheapStash struct {
		BuyMult       FloatRange `yaml:"buy_mult" json:"buy_mult"`
		Duration      IntRange   `yaml:"duration_days" json:"duration_days"`
		StockIncrease IntRange   `yaml:"stock_increase" json:"stock_increase"`
	} `yaml:"cheap_stash" json:"cheap_stash"`

	TheSetup struct {
		Quantity      IntRange   `yaml:"quantity" json:"quantity"`
		BuyDealMult   FloatRange `yaml:"buy_deal_mult" json:"buy_deal_mult"`
		SellDealMult  FloatRange `yaml:"sell_deal_mult" json:"sell_deal_mult"`
		DurationDays  int        `yaml:"duration_days" json:"duration_days"`
		MinCashFactor float64    `yaml:"min_cash_factor" json:"min_cash_factor"`
		MinQtyFactor  float64    `yaml:"min_quantity_factor" json:"min_quantity_factor"`
		MinUnitPrice  float64    `yaml:"min_unit_price" json:"min_unit_price"`
	} `yaml:"the_setup" json:"the_setup"`

	RivalBusted struct {
		Duration IntRange `yaml:"duration_days" json:"duration_days"`
	} `yaml:"rival_busted" json:"rival_busted"`

	MarketCrash struct {
		DurationDays   int     `yaml:"duration_days" json:"duration_days"`
		PriceReduction float64 `yaml:"price_reduction_percent" json:"price_reduction_percent"`
		MinPrice       float64 `yaml:"minimum_price_after_crash" json:"minimum_price_after_crash"`
	} `yaml:"market_crash" json:"market_crash"`

	BlackMarket struct {
		Quantity       IntRange `yaml:"quantity" json:"quantity"`
		PriceReduction float64  `yaml:"price_reduction_percent" json:"price_reduction_percent"`
		DurationDays   int      `yaml:"duration_days" json:"duration_days"`
	} `yaml:"black_market" json:"black_market"`
}

// Tuning is the root configuration struct, mapping to 'streets.yaml'.
type Tuning struct {
	Regions []RegionDef `yaml:"regions" json:"regions"`
	Rivals  []RivalDef  `yaml:"rivals" json:"rivals"`

	StartingRegion string  `yaml:"starting_region" json:"starting_region"`
	StartingCash   float64 `yaml:"starting_cash" json:"starting_cash"`
	StashCapacity  int     `yaml:"stash_capacity" json:"stash_capacity"`

	// Independent per-day trigger chances (see events.go).
	BlackMarketChance   float64 `yaml:"black_market_chance" json:"black_market_chance"`
	MuggingChance       float64 `yaml:"mugging_chance" json:"mugging_chance"`
	FireSaleChance      float64 `yaml:"fire_sale_chance" json:"fire_sale_chance"`
	StandardEventChance float64 `yaml:"standard_event_chance" json:"standard_event_chance"`

	// EventWeights drives the weighted kind draw for standard events.
	EventWeights map[string]int `yaml:"event_weights" json:"event_weights"`

	// Heat threshold tables. Keys are ascending heat thresholds; the value
	// of the highest key not exceeding current heat applies.
	HeatPriceThresholds map[int]float64 `yaml:"heat_price_thresholds" json:"-"`
	HeatStockThresholds map[int]float64 `yaml:"heat_stock_thresholds" json:"-"`

	// Restock parameters.
	Tier1RestockAmount int      `yaml:"tier1_restock_amount" json:"tier1_restock_amount"`
	StockRangePure     IntRange `yaml:"stock_range_pure" json:"stock_range_pure"`
	StockRangeStandard IntRange `yaml:"stock_range_standard" json:"stock_range_standard"`
	StockRangeCut      IntRange `yaml:"stock_range_cut" json:"stock_range_cut"`

	// Player market impact.
	ImpactUnitsBase     int     `yaml:"impact_units_base" json:"impact_units_base"`
	ImpactFactorPerBase float64 `yaml:"impact_factor_per_base" json:"impact_factor_per_base"`
	BuyImpactCap        float64 `yaml:"buy_impact_cap" json:"buy_impact_cap"`
	SellImpactFloor     float64 `yaml:"sell_impact_floor" json:"sell_impact_floor"`
	ImpactDecayRate     float64 `yaml:"impact_decay_rate" json:"impact_decay_rate"`

	// Rival behaviour.
	RivalBaseImpact       float64 `yaml:"rival_base_impact" json:"rival_base_impact"`
	RivalAggressionScale  float64 `yaml:"rival_aggression_scale" json:"rival_aggression_scale"`
	RivalDemandCap        float64 `yaml:"rival_demand_cap" json:"rival_demand_cap"`
	RivalSupplyFloor      float64 `yaml:"rival_supply_floor" json:"rival_supply_floor"`
	RivalCooldown         IntRange `yaml:"rival_cooldown_days" json:"rival_cooldown_days"`
	RivalDecayAfterDays   int     `yaml:"rival_decay_after_days" json:"rival_decay_after_days"`
	RivalDemandDecayStep  float64 `yaml:"rival_demand_decay_step" json:"rival_demand_decay_step"`
	RivalSupplyDecayMult  float64 `yaml:"rival_supply_decay_mult" json:"rival_supply_decay_mult"`

	// Heat accrual and decay.
	HeatDecayPercent   float64     `yaml:"heat_decay_percent" json:"heat_decay_percent"`
	HeatDecayMinimum   int         `yaml:"heat_decay_minimum" json:"heat_decay_minimum"`
	FastDecayBoost     float64     `yaml:"fast_decay_boost" json:"fast_decay_boost"`
	HeatPerUnitByTier  map[int]int `yaml:"heat_per_unit_by_tier" json:"-"`
	DiscreetReduction  float64     `yaml:"discreet_reduction" json:"discreet_reduction"`

	// Immediate side-effect parameters.
	MuggingLossPercent  FloatRange `yaml:"mugging_loss_percent" json:"mugging_loss_percent"`
	FireSaleQtyPercent  float64    `yaml:"fire_sale_quantity_percent" json:"fire_sale_quantity_percent"`
	FireSalePenalty     float64    `yaml:"fire_sale_price_penalty" json:"fire_sale_price_penalty"`
	FireSaleMinGain     float64    `yaml:"fire_sale_min_gain" json:"fire_sale_min_gain"`
	FireSaleMinQty      int        `yaml:"fire_sale_min_quantity" json:"fire_sale_min_quantity"`
	FireSaleMinPrice    float64    `yaml:"fire_sale_min_price" json:"fire_sale_min_price"`
	FireSaleHeat        int        `yaml:"fire_sale_heat" json:"fire_sale_heat"`

	Events EventTuning `yaml:"events" json:"events"`
}

// DefaultTuning returns the built-in balance numbers. LoadTuning overlays
// the YAML file on top of these, so tests can run without any file at all.
func DefaultTuning() *Tuning {
	t := &Tuning{
		Regions: []RegionDef{
			{Key: "downtown", Name: "Downtown", Drugs: []DrugDef{
				{Key: "Weed", BaseBuyPrice: 50, BaseSellPrice: 80, Tier: 1},
				{Key: "Pills", BaseBuyPrice: 100, BaseSellPrice: 150, Tier: 2},
				{Key: "Coke", BaseBuyPrice: 1000, BaseSellPrice: 1500, Tier: 3},
			}},
			{Key: "docks", Name: "The Docks", Drugs: []DrugDef{
				{Key: "Weed", BaseBuyPrice: 40, BaseSellPrice: 70, Tier: 1},
				{Key: "Speed", BaseBuyPrice: 120, BaseSellPrice: 180, Tier: 2},
				{Key: "Heroin", BaseBuyPrice: 600, BaseSellPrice: 900, Tier: 3},
			}},
			{Key: "suburbs", Name: "Suburbs", Drugs: []DrugDef{
				{Key: "Weed", BaseBuyPrice: 60, BaseSellPrice: 100, Tier: 1},
				{Key: "Pills", BaseBuyPrice: 110, BaseSellPrice: 170, Tier: 2},
			}},
		},
		Rivals: []RivalDef{
			{Name: "The Chemist", PrimaryDrug: "Pills", PrimaryRegion: "downtown", Aggression: 0.6, ActivityLevel: 0.7},
			{Name: "Silas", PrimaryDrug: "Coke", PrimaryRegion: "downtown", Aggression: 0.8, ActivityLevel: 0.5},
			{Name: "Dockmaster Jones", PrimaryDrug: "Speed", PrimaryRegion: "docks", Aggression: 0.5, ActivityLevel: 0.6},
			{Name: "Mama Rosa", PrimaryDrug: "Weed", PrimaryRegion: "suburbs", Aggression: 0.4, ActivityLevel: 0.8},
			{Name: "Sergei", PrimaryDrug: "Heroin", PrimaryRegion: "docks", Aggression: 0.7, ActivityLevel: 0.6},
		},

		StartingRegion: "downtown",
		StartingCash:   2000,
		StashCapacity:  100,

		BlackMarketChance:   0.04,
		MuggingChance:       0.10,
		FireSaleChance:      0.02,
		StandardEventChance: 0.25,

		EventWeights: map[string]int{
			string(EventDemandSpike):      3,
			string(EventSupplyDisruption): 2,
			string(EventPoliceCrackdown):  1,
			string(EventCheapStash):       2,
			string(EventTheSetup):         1,
			string(EventRivalBusted):      1,
			string(EventMarketCrash):      1,
		},

		HeatPriceThresholds: map[int]float64{0: 1.0, 21: 1.05, 51: 1.10, 81: 1.15},
		HeatStockThresholds: map[int]float64{0: 1.0, 31: 0.75, 61: 0.50, 91: 0.25},

		Tier1RestockAmount: 10000,
		StockRangePure:     IntRange{Min: 10, Max: 50},
		StockRangeStandard: IntRange{Min: 20, Max: 100},
		StockRangeCut:      IntRange{Min: 30, Max: 150},

		ImpactUnitsBase:     10,
		ImpactFactorPerBase: 0.02,
		BuyImpactCap:        1.25,
		SellImpactFloor:     0.75,
		ImpactDecayRate:     0.01,

		RivalBaseImpact:      0.05,
		RivalAggressionScale: 0.15,
		RivalDemandCap:       2.0,
		RivalSupplyFloor:     0.5,
		RivalCooldown:        IntRange{Min: 1, Max: 3},
		RivalDecayAfterDays:  3,
		RivalDemandDecayStep: 0.05,
		RivalSupplyDecayMult: 0.1,

		HeatDecayPercent:  0.05,
		HeatDecayMinimum:  1,
		FastDecayBoost:    0.15,
		HeatPerUnitByTier: map[int]int{1: 1, 2: 2, 3: 4},
		DiscreetReduction: 0.25,

		MuggingLossPercent: FloatRange{Min: 0.05, Max: 0.15},
		FireSaleQtyPercent: 0.15,
		FireSalePenalty:    0.30,
		FireSaleMinGain:    50,
		FireSaleMinQty:     1,
		FireSaleMinPrice:   0.01,
		FireSaleHeat:       10,
	}

	t.Events.DemandSpike.BuyMult = FloatRange{Min: 1.0, Max: 1.3}
	t.Events.DemandSpike.SellMult = FloatRange{Min: 1.2, Max: 1.8}
	t.Events.DemandSpike.Duration = IntRange{Min: 2, Max: 4}

	t.Events.SupplyDisruption.DurationDays = 2
	t.Events.SupplyDisruption.StockReduction = 0.75
	t.Events.SupplyDisruption.MinStock = 1
	t.Events.SupplyDisruption.RestockOverride = 4

	t.Events.PoliceCrackdown.Duration = IntRange{Min: 2, Max: 4}
	t.Events.PoliceCrackdown.HeatIncrease = IntRange{Min: 10, Max: 30}

	t.Events.CheapStash.BuyMult = FloatRange{Min: 0.6, Max: 0.8}
	t.Events.CheapStash.Duration = IntRange{Min: 1, Max: 2}
	t.Events.CheapStash.StockIncrease = IntRange{Min: 50, Max: 150}

	t.Events.TheSetup.Quantity = IntRange{Min: 20, Max: 100}
	t.Events.TheSetup.BuyDealMult = FloatRange{Min: 0.2, Max: 0.4}
	t.Events.TheSetup.SellDealMult = FloatRange{Min: 2.0, Max: 3.5}
	t.Events.TheSetup.DurationDays = 1
	t.Events.TheSetup.MinCashFactor = 0.5
	t.Events.TheSetup.MinQtyFactor = 0.25
	t.Events.TheSetup.MinUnitPrice = 1.0

	t.Events.RivalBusted.Duration = IntRange{Min: 5, Max: 10}

	t.Events.MarketCrash.DurationDays = 2
	t.Events.MarketCrash.PriceReduction = 0.60
	t.Events.MarketCrash.MinPrice = 1.0

	t.Events.BlackMarket.Quantity = IntRange{Min: 20, Max: 50}
	t.Events.BlackMarket.PriceReduction = 0.50
	t.Events.BlackMarket.DurationDays = 1

	return t
}

// LoadTuning reads the YAML tuning file over the defaults. A file that
// declares its own regions or rivals replaces the built-in city wholesale.
func LoadTuning(path string) (*Tuning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tuning: %w", err)
	}

	t := DefaultTuning()
	if err := yaml.Unmarshal(raw, t); err != nil {
		return nil, fmt.Errorf("parse tuning: %w", err)
	}
	if len(t.Regions) == 0 {
		return nil, fmt.Errorf("tuning %s declares no regions", path)
	}
	for _, r := range t.Regions {
		for _, d := range r.Drugs {
			if d.Tier < 1 || d.Tier > 3 {
				return nil, fmt.Errorf("drug %s in %s has tier %d (want 1-3)", d.Key, r.Key, d.Tier)
			}
			if d.BaseBuyPrice <= 0 || d.BaseSellPrice <= 0 {
				return nil, fmt.Errorf("drug %s in %s has non-positive base price", d.Key, r.Key)
			}
		}
	}
	return t, nil
}
