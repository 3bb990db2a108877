/*
Package game
File: events_test.go
Description:
    Event lifecycle tests: creation factories, duplicate suppression,
    daily aging and expiry, and the two instant hazards.
*/

package game

import (
	"strings"
	"testing"
)

func TestAgeEventsExpiry(t *testing.T) {
	s := newTestSession(t)
	region := s.Regions["downtown"]
	region.ActiveEvents = append(region.ActiveEvents,
		&MarketEvent{
			ID: "short", Kind: EventDemandSpike,
			TargetDrug: "Coke", TargetQuality: QualityPure, HasTarget: true,
			DaysRemaining: 1,
			Spike:         &SpikeEffect{BuyMult: 1.2, SellMult: 1.5},
		},
		&MarketEvent{
			ID: "long", Kind: EventCheapStash,
			TargetDrug: "Pills", TargetQuality: QualityStandard, HasTarget: true,
			DaysRemaining: 2,
			Stash:         &StashEffect{BuyMult: 0.7, StockIncrease: 50},
		},
	)

	messages := s.ageEvents(region)
	if len(region.ActiveEvents) != 1 || region.ActiveEvents[0].ID != "long" {
		t.Fatalf("after one day: %d events left, want only 'long'", len(region.ActiveEvents))
	}
	if len(messages) != 1 || !strings.Contains(messages[0], "demand spike") {
		t.Errorf("expiry messages = %v, want one demand spike message", messages)
	}

	messages = s.ageEvents(region)
	if len(region.ActiveEvents) != 0 {
		t.Fatalf("after two days: %d events left, want 0", len(region.ActiveEvents))
	}
	if len(messages) != 1 || !strings.Contains(messages[0], "cheap stash") {
		t.Errorf("expiry messages = %v, want one cheap stash message", messages)
	}
}

func TestBlackMarketExpiresWhenDepleted(t *testing.T) {
	s := newTestSession(t)
	region := s.Regions["downtown"]
	region.ActiveEvents = append(region.ActiveEvents, &MarketEvent{
		ID: "bm", Kind: EventBlackMarket,
		TargetDrug: "Coke", TargetQuality: QualityPure, HasTarget: true,
		DaysRemaining: 3,
		BlackMarket:   &BlackMarketEffect{BuyMult: 0.5, QuantityLeft: 0},
	})

	messages := s.ageEvents(region)
	if len(region.ActiveEvents) != 0 {
		t.Fatalf("depleted black market survived aging")
	}
	if len(messages) != 1 || !strings.Contains(messages[0], "stock depleted") {
		t.Errorf("expiry messages = %v, want a 'stock depleted' message", messages)
	}
}

func TestCrackdownDuplicateSuppression(t *testing.T) {
	s := newTestSession(t)
	region := s.Regions["downtown"]

	ev, msg := createPoliceCrackdown(s, region)
	if ev == nil || msg == "" {
		t.Fatal("first crackdown was not created")
	}
	region.ActiveEvents = append(region.ActiveEvents, ev)

	if dup, _ := createPoliceCrackdown(s, region); dup != nil {
		t.Error("second crackdown created despite one being active")
	}
}

func TestCrackdownAddsHeatImmediately(t *testing.T) {
	s := newTestSession(t)
	region := s.Regions["downtown"]

	ev, _ := createPoliceCrackdown(s, region)
	if ev == nil {
		t.Fatal("crackdown was not created")
	}
	if region.CurrentHeat != ev.Crackdown.HeatIncrease {
		t.Errorf("region heat = %d, want %d", region.CurrentHeat, ev.Crackdown.HeatIncrease)
	}
	if ev.Crackdown.HeatIncrease < 10 || ev.Crackdown.HeatIncrease > 30 {
		t.Errorf("heat increase = %d, want in [10, 30]", ev.Crackdown.HeatIncrease)
	}
}

func TestDemandSpikeTargetsHigherTiersOnly(t *testing.T) {
	s := newTestSession(t)
	region := s.Regions["downtown"]

	for i := 0; i < 50; i++ {
		region.ActiveEvents = nil
		ev, _ := createDemandSpike(s, region)
		if ev == nil {
			continue
		}
		if tier := region.Markets[ev.TargetDrug].Tier; tier < 2 {
			t.Fatalf("demand spike targeted tier %d drug %s", tier, ev.TargetDrug)
		}
		if ev.Spike.BuyMult < 1.0 || ev.Spike.BuyMult > 1.3 {
			t.Fatalf("spike buy mult %.2f out of range", ev.Spike.BuyMult)
		}
		if ev.Spike.SellMult < 1.2 || ev.Spike.SellMult > 1.8 {
			t.Fatalf("spike sell mult %.2f out of range", ev.Spike.SellMult)
		}
	}
}

func TestCheapStashTargetsLowerTiersOnly(t *testing.T) {
	s := newTestSession(t)
	region := s.Regions["downtown"]

	for i := 0; i < 50; i++ {
		region.ActiveEvents = nil
		ev, _ := createCheapStash(s, region)
		if ev == nil {
			continue
		}
		tier := region.Markets[ev.TargetDrug].Tier
		if tier > 2 {
			t.Fatalf("cheap stash targeted tier %d drug %s", tier, ev.TargetDrug)
		}
		if tier == 1 && ev.TargetQuality != QualityStandard {
			t.Fatalf("cheap stash targeted %s on tier-1 %s", ev.TargetQuality, ev.TargetDrug)
		}
	}
}

func TestRivalBustedEvent(t *testing.T) {
	s := newTestSession(t)
	region := s.Regions["downtown"]

	ev, msg := createRivalBusted(s, region)
	if ev == nil {
		t.Fatal("rival busted event was not created")
	}
	if !strings.Contains(msg, ev.RivalBust.RivalName) {
		t.Errorf("message %q does not name the busted rival", msg)
	}

	busted := false
	for _, rival := range s.Rivals {
		if rival.Name == ev.RivalBust.RivalName {
			busted = rival.IsBusted
		}
	}
	if !busted {
		t.Errorf("rival %s was not marked busted", ev.RivalBust.RivalName)
	}
	if ev.DaysRemaining < 5 || ev.DaysRemaining > 10 {
		t.Errorf("bust duration = %d, want in [5, 10]", ev.DaysRemaining)
	}
}

func TestRivalBustedSkipsWhenAllLockedUp(t *testing.T) {
	s := newTestSession(t)
	region := s.Regions["downtown"]
	for _, rival := range s.Rivals {
		rival.IsBusted = true
		rival.BustedDaysRemaining = 5
	}

	if ev, _ := createRivalBusted(s, region); ev != nil {
		t.Error("rival busted event created with no free rivals")
	}
}

func TestSetupBuyDealRequiresCash(t *testing.T) {
	s := newTestSession(t)
	region := s.Regions["downtown"]
	s.Player.Cash = 0

	// With no cash, a buy deal can never fire; run enough attempts that a
	// buy deal would certainly have been drawn.
	for i := 0; i < 100; i++ {
		region.ActiveEvents = nil
		ev, _ := createTheSetup(s, region)
		if ev != nil && ev.Setup.IsBuyDeal {
			t.Fatal("buy deal offered to a broke player")
		}
	}
}

func TestSetupDealPriceFloor(t *testing.T) {
	s := newTestSession(t)
	region := s.Regions["downtown"]
	s.Player.Cash = 1e9
	s.Player.AddDrug("Pills", QualityStandard, 100)
	s.Player.AddDrug("Coke", QualityStandard, 100)

	for i := 0; i < 50; i++ {
		region.ActiveEvents = nil
		ev, _ := createTheSetup(s, region)
		if ev == nil {
			continue
		}
		if ev.Setup.PricePerUnit < 1.0 {
			t.Fatalf("deal price %.2f below the floor", ev.Setup.PricePerUnit)
		}
		if ev.Setup.Quantity < 20 || ev.Setup.Quantity > 100 {
			t.Fatalf("deal quantity %d out of range", ev.Setup.Quantity)
		}
	}
}

func TestPickWeightedKindCoversTable(t *testing.T) {
	s := newTestSession(t)

	seen := make(map[EventKind]bool)
	for i := 0; i < 2000; i++ {
		seen[s.pickWeightedKind()] = true
	}
	for kind := range s.tuning.EventWeights {
		if !seen[EventKind(kind)] {
			t.Errorf("kind %s never drawn", kind)
		}
	}
	if seen[EventBlackMarket] {
		t.Error("black market drawn from the standard weight table")
	}
}

func TestMuggingTakesCashSlice(t *testing.T) {
	s := newTestSession(t)
	region := s.Regions["downtown"]
	s.Player.Cash = 1000

	msg := s.handleMugging(region)
	if msg == "" {
		t.Fatal("mugging fizzled with cash on hand")
	}
	lost := 1000 - s.Player.Cash
	if lost < 50 || lost > 150 {
		t.Errorf("mugging took $%.0f, want 5%%-15%% of $1000", lost)
	}

	s.Player.Cash = 0
	if msg := s.handleMugging(region); msg != "" {
		t.Error("mugging hit a broke player")
	}
}

func TestFireSaleDumpsStash(t *testing.T) {
	s := newTestSession(t)
	region := s.Regions["downtown"]
	s.Player.Cash = 100
	s.Player.AddDrug("Coke", QualityPure, 40)
	heatBefore := region.CurrentHeat

	msg := s.handleFireSale(region)
	if msg == "" {
		t.Fatal("fire sale fizzled with a full stash")
	}
	if got := s.Player.Quantity("Coke", QualityPure); got != 34 {
		t.Errorf("units left = %d, want 34 (15%% of 40, ceiled)", got)
	}
	// 2400 * 0.7 = 1680 per unit, 6 units.
	if !almostEqual(s.Player.Cash, 100+6*1680.00) {
		t.Errorf("cash = %.2f, want %.2f", s.Player.Cash, 100+6*1680.00)
	}
	if region.CurrentHeat != heatBefore+s.tuning.FireSaleHeat {
		t.Errorf("heat = %d, want +%d", region.CurrentHeat, s.tuning.FireSaleHeat)
	}
}

func TestFireSaleFizzlesOnEmptyStash(t *testing.T) {
	s := newTestSession(t)
	if msg := s.handleFireSale(s.Regions["downtown"]); msg != "" {
		t.Error("fire sale fired with an empty stash")
	}
}

func TestDescribeMultiplierPlacement(t *testing.T) {
	spike := &MarketEvent{
		Kind: EventDemandSpike, TargetDrug: "Coke", TargetQuality: QualityPure,
		HasTarget: true, DaysRemaining: 3,
		Spike: &SpikeEffect{BuyMult: 1.5, SellMult: 1.8},
	}
	got := spike.Describe()
	if !strings.Contains(got, "B_Mult: 1.50") || !strings.Contains(got, "S_Mult: 1.80") {
		t.Errorf("spike description missing multipliers: %q", got)
	}

	stash := &MarketEvent{
		Kind: EventCheapStash, TargetDrug: "Weed", TargetQuality: QualityStandard,
		HasTarget: true, DaysRemaining: 2,
		Stash: &StashEffect{BuyMult: 0.6, StockIncrease: 40},
	}
	got = stash.Describe()
	if !strings.Contains(got, "B_Mult: 0.60") || !strings.Contains(got, "Stock Inc: +40") {
		t.Errorf("stash description missing multiplier or stock bonus: %q", got)
	}

	// A black market advertises its own quantity and discount line and
	// never the spike/stash style multiplier suffix.
	bm := &MarketEvent{
		Kind: EventBlackMarket, TargetDrug: "Pills", TargetQuality: QualityCut,
		HasTarget: true, DaysRemaining: 1,
		BlackMarket: &BlackMarketEffect{BuyMult: 0.5, QuantityLeft: 25},
	}
	got = bm.Describe()
	if !strings.Contains(got, "(Qty: 25), Buy_Mult: 0.50") {
		t.Errorf("black market description missing its own discount line: %q", got)
	}
	if strings.Contains(got, "B_Mult:") {
		t.Errorf("black market description borrowed the spike/stash multiplier suffix: %q", got)
	}

	crackdown := &MarketEvent{
		Kind: EventPoliceCrackdown, DaysRemaining: 4,
		Crackdown: &CrackdownEffect{HeatIncrease: 20},
	}
	if got = crackdown.Describe(); !strings.Contains(got, "Heat Inc: 20") {
		t.Errorf("crackdown description missing heat amount: %q", got)
	}
}

func TestPickTargetSkipsPhantomTierOneGrades(t *testing.T) {
	s := newTestSession(t)
	region := s.Regions["downtown"]

	// With eligibility narrowed to tier 1 only Weed qualifies, and Weed
	// moves at STANDARD alone; no draw may ever land on CUT or PURE.
	for i := 0; i < 60; i++ {
		tgt, ok := s.pickTarget(region, map[int]bool{1: true}, false)
		if !ok {
			t.Fatal("no eligible tier-1 target found")
		}
		if tgt.drug != "Weed" || tgt.quality != QualityStandard {
			t.Fatalf("draw %d landed on %s %s, want Weed STANDARD", i, tgt.quality, tgt.drug)
		}
	}
}
