/*
Package game
File: stock_test.go
Description:
    Availability and restock tests: heat squeeze tiers, supply disruption
    floors, and the shape of a daily restock.
*/

package game

import "testing"

func TestAvailableStockHeatSqueeze(t *testing.T) {
	s := newTestSession(t)
	region := s.Regions["downtown"]
	region.Markets["Coke"].Qualities[QualityPure].Quantity = 100
	region.Markets["Weed"].Qualities[QualityStandard].Quantity = 100

	cases := []struct {
		heat     int
		wantCoke int
	}{
		{0, 100},
		{31, 75},
		{61, 50},
		{91, 25},
	}
	for _, tc := range cases {
		region.CurrentHeat = tc.heat
		if got := s.AvailableStock("downtown", "Coke", QualityPure); got != tc.wantCoke {
			t.Errorf("heat %d: Coke stock = %d, want %d", tc.heat, got, tc.wantCoke)
		}
		// Tier 1 street product never dries up from heat.
		if got := s.AvailableStock("downtown", "Weed", QualityStandard); got != 100 {
			t.Errorf("heat %d: Weed stock = %d, want 100", tc.heat, got)
		}
	}
}

func TestAvailableStockDisruption(t *testing.T) {
	s := newTestSession(t)
	region := s.Regions["downtown"]
	region.Markets["Pills"].Qualities[QualityStandard].Quantity = 40
	region.ActiveEvents = append(region.ActiveEvents, &MarketEvent{
		ID: "dis", Kind: EventSupplyDisruption,
		TargetDrug: "Pills", TargetQuality: QualityStandard, HasTarget: true,
		DaysRemaining: 2,
		Disruption:    &DisruptionEffect{Factor: 0.25, MinStock: 1},
	})

	if got := s.AvailableStock("downtown", "Pills", QualityStandard); got != 10 {
		t.Errorf("disrupted stock = %d, want 10", got)
	}

	// The floor holds even when the squeeze would round to zero.
	region.Markets["Pills"].Qualities[QualityStandard].Quantity = 2
	if got := s.AvailableStock("downtown", "Pills", QualityStandard); got != 1 {
		t.Errorf("disrupted stock = %d, want floor 1", got)
	}
}

func TestTier1Restock(t *testing.T) {
	s := newTestSession(t)
	region := s.Regions["downtown"]
	s.restockRegion(region)

	weed := region.Markets["Weed"]
	if got := weed.Qualities[QualityStandard].Quantity; got != 10000 {
		t.Errorf("tier 1 STANDARD restock = %d, want 10000", got)
	}
	// Street tier product never shelves CUT or PURE at all.
	if _, ok := weed.Qualities[QualityCut]; ok {
		t.Error("tier 1 market carries a CUT shelf")
	}
	if _, ok := weed.Qualities[QualityPure]; ok {
		t.Error("tier 1 market carries a PURE shelf")
	}
	if got := s.AvailableStock("downtown", "Weed", QualityPure); got != 0 {
		t.Errorf("tier 1 PURE stock = %d, want 0", got)
	}
}

func TestRestockRangesHigherTiers(t *testing.T) {
	s := newTestSession(t)
	region := s.Regions["downtown"]
	s.restockRegion(region)

	ranges := map[DrugQuality]IntRange{
		QualityPure:     {Min: 10, Max: 50},
		QualityStandard: {Min: 20, Max: 100},
		QualityCut:      {Min: 30, Max: 150},
	}
	for _, drug := range []string{"Pills", "Coke"} {
		market := region.Markets[drug]
		for q, r := range ranges {
			got := market.Qualities[q].Quantity
			if got < r.Min || got > r.Max {
				t.Errorf("%s %s restock = %d, want in [%d, %d]", drug, q, got, r.Min, r.Max)
			}
		}
	}
}

func TestRestockUnderHeatSqueezesHigherTiers(t *testing.T) {
	s := newTestSession(t)
	region := s.Regions["downtown"]
	region.CurrentHeat = 91 // squeeze factor 0.25

	s.restockRegion(region)

	// Max possible draw is 150 * 0.25.
	for _, q := range []DrugQuality{QualityCut, QualityStandard, QualityPure} {
		if got := region.Markets["Pills"].Qualities[q].Quantity; got > 37 {
			t.Errorf("hot restock Pills %s = %d, want <= 37", q, got)
		}
	}
	if got := region.Markets["Weed"].Qualities[QualityStandard].Quantity; got != 10000 {
		t.Errorf("hot restock Weed = %d, want 10000", got)
	}
}

func TestRestockDisruptionOverride(t *testing.T) {
	s := newTestSession(t)
	region := s.Regions["downtown"]
	region.ActiveEvents = append(region.ActiveEvents, &MarketEvent{
		ID: "dis", Kind: EventSupplyDisruption,
		TargetDrug: "Coke", TargetQuality: QualityPure, HasTarget: true,
		DaysRemaining: 2,
		Disruption:    &DisruptionEffect{Factor: 0.25, MinStock: 1},
	})

	for i := 0; i < 10; i++ {
		s.restockRegion(region)
		got := region.Markets["Coke"].Qualities[QualityPure].Quantity
		if got > s.tuning.Events.SupplyDisruption.RestockOverride {
			t.Fatalf("disrupted restock = %d, want <= %d", got, s.tuning.Events.SupplyDisruption.RestockOverride)
		}
	}
}

func TestRestockCheapStashBonus(t *testing.T) {
	s := newTestSession(t)
	region := s.Regions["downtown"]
	region.ActiveEvents = append(region.ActiveEvents, &MarketEvent{
		ID: "stash", Kind: EventCheapStash,
		TargetDrug: "Pills", TargetQuality: QualityStandard, HasTarget: true,
		DaysRemaining: 1,
		Stash:         &StashEffect{BuyMult: 0.7, StockIncrease: 100},
	})

	s.restockRegion(region)
	got := region.Markets["Pills"].Qualities[QualityStandard].Quantity
	// Base draw is 20-100, plus the stash bonus.
	if got < 120 || got > 200 {
		t.Errorf("stash-boosted restock = %d, want in [120, 200]", got)
	}
}
