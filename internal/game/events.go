/*
Package game
File: events.go
Description:
    The market event lifecycle: creation, daily aging and expiry, plus the
    two instant hazards (muggings and forced fire sales) that never become
    events at all.

    Creation is table driven. Each kind has a factory in eventFactories; a
    factory returns nil when the region cannot host the event right now
    (no eligible target, or the same event is already running). Expiry
    messages come from a second table keyed the same way.
*/

package game

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// Tier eligibility per event kind. Street-tier product is too plentiful
// for spikes or disruptions to matter; setups only cover serious weight.
var (
	spikeTiers      = map[int]bool{2: true, 3: true}
	disruptionTiers = map[int]bool{2: true, 3: true}
	stashTiers      = map[int]bool{1: true, 2: true}
	setupTiers      = map[int]bool{2: true, 3: true}
	anyTier         = map[int]bool{1: true, 2: true, 3: true}
)

// eventFactory builds one event for a region, or returns nil with an
// empty message when the event cannot fire there today.
type eventFactory func(s *Session, region *Region) (*MarketEvent, string)

var eventFactories = map[EventKind]eventFactory{
	EventDemandSpike:      createDemandSpike,
	EventSupplyDisruption: createSupplyDisruption,
	EventPoliceCrackdown:  createPoliceCrackdown,
	EventCheapStash:       createCheapStash,
	EventTheSetup:         createTheSetup,
	EventRivalBusted:      createRivalBusted,
	EventMarketCrash:      createMarketCrash,
	EventBlackMarket:      createBlackMarket,
}

// target is one (drug, quality) shelf an event could land on.
type target struct {
	drug    string
	quality DrugQuality
}

// pickTarget draws a random eligible shelf. Candidates walk DrugOrder and
// the fixed quality order so the same seed always sees the same list.
func (s *Session) pickTarget(region *Region, tiers map[int]bool, needStock bool) (target, bool) {
	var candidates []target
	for _, drug := range region.DrugOrder {
		market := region.Markets[drug]
		if !tiers[market.Tier] {
			continue
		}
		for _, q := range marketQualities(market.Tier) {
			if needStock && availableStock(s.tuning, region, drug, q) <= 0 {
				continue
			}
			candidates = append(candidates, target{drug: drug, quality: q})
		}
	}
	if len(candidates) == 0 {
		return target{}, false
	}
	return candidates[s.rng.Intn(len(candidates))], true
}

// hasEventOn reports whether an event of the given kind already covers a
// specific shelf in the region.
func hasEventOn(region *Region, kind EventKind, tgt target) bool {
	for _, ev := range region.ActiveEvents {
		if ev.Kind == kind && ev.targets(tgt.drug, tgt.quality) {
			return true
		}
	}
	return false
}

// hasEventOfKind reports whether any event of the kind is live in the region.
func hasEventOfKind(region *Region, kind EventKind) bool {
	for _, ev := range region.ActiveEvents {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func createDemandSpike(s *Session, region *Region) (*MarketEvent, string) {
	tgt, ok := s.pickTarget(region, spikeTiers, false)
	if !ok || hasEventOn(region, EventDemandSpike, tgt) {
		return nil, ""
	}
	cfg := s.tuning.Events.DemandSpike
	ev := &MarketEvent{
		ID:            s.eventID(EventDemandSpike),
		Kind:          EventDemandSpike,
		TargetDrug:    tgt.drug,
		TargetQuality: tgt.quality,
		HasTarget:     true,
		StartDay:      s.Day,
		DaysRemaining: s.randIn(cfg.Duration),
		Spike: &SpikeEffect{
			BuyMult:  s.randFloatIn(cfg.BuyMult),
			SellMult: s.randFloatIn(cfg.SellMult),
		},
	}
	msg := fmt.Sprintf("Market Buzz: Demand for %s %s is surging in %s for %d days!",
		tgt.quality, tgt.drug, region.Name, ev.DaysRemaining)
	return ev, msg
}

func createSupplyDisruption(s *Session, region *Region) (*MarketEvent, string) {
	tgt, ok := s.pickTarget(region, disruptionTiers, true)
	if !ok || hasEventOn(region, EventSupplyDisruption, tgt) {
		return nil, ""
	}
	cfg := s.tuning.Events.SupplyDisruption
	ev := &MarketEvent{
		ID:            s.eventID(EventSupplyDisruption),
		Kind:          EventSupplyDisruption,
		TargetDrug:    tgt.drug,
		TargetQuality: tgt.quality,
		HasTarget:     true,
		StartDay:      s.Day,
		DaysRemaining: cfg.DurationDays,
		Disruption: &DisruptionEffect{
			Factor:   1.0 - cfg.StockReduction,
			MinStock: cfg.MinStock,
		},
	}
	msg := fmt.Sprintf("Supply Alert! %s (%s) in %s is scarce after a supply chain disruption, for %d days!",
		tgt.drug, tgt.quality, region.Name, cfg.DurationDays)
	return ev, msg
}

func createPoliceCrackdown(s *Session, region *Region) (*MarketEvent, string) {
	if hasEventOfKind(region, EventPoliceCrackdown) {
		return nil, ""
	}
	cfg := s.tuning.Events.PoliceCrackdown
	duration := s.randIn(cfg.Duration)
	heat := s.randIn(cfg.HeatIncrease)
	ev := &MarketEvent{
		ID:            s.eventID(EventPoliceCrackdown),
		Kind:          EventPoliceCrackdown,
		StartDay:      s.Day,
		DaysRemaining: duration,
		Crackdown:     &CrackdownEffect{HeatIncrease: heat},
	}
	// The heat lands the moment the crackdown starts and decays on its own.
	addHeat(region, heat)
	msg := fmt.Sprintf("Police Alert: Increased police activity reported in %s for %d days! (Heat +%d)",
		region.Name, duration, heat)
	return ev, msg
}

func createCheapStash(s *Session, region *Region) (*MarketEvent, string) {
	tgt, ok := s.pickTarget(region, stashTiers, false)
	if !ok || hasEventOn(region, EventCheapStash, tgt) {
		return nil, ""
	}
	cfg := s.tuning.Events.CheapStash
	ev := &MarketEvent{
		ID:            s.eventID(EventCheapStash),
		Kind:          EventCheapStash,
		TargetDrug:    tgt.drug,
		TargetQuality: tgt.quality,
		HasTarget:     true,
		StartDay:      s.Day,
		DaysRemaining: s.randIn(cfg.Duration),
		Stash: &StashEffect{
			BuyMult:       s.randFloatIn(cfg.BuyMult),
			StockIncrease: s.randIn(cfg.StockIncrease),
		},
	}
	msg := fmt.Sprintf("Market Whisper: Heard about a cheap stash of %s %s in %s! Available for %d day(s).",
		tgt.quality, tgt.drug, region.Name, ev.DaysRemaining)
	return ev, msg
}

func createTheSetup(s *Session, region *Region) (*MarketEvent, string) {
	if hasEventOfKind(region, EventTheSetup) {
		return nil, ""
	}
	tgt, ok := s.pickTarget(region, setupTiers, false)
	if !ok {
		return nil, ""
	}
	market := region.Markets[tgt.drug]
	cfg := s.tuning.Events.TheSetup

	isBuyDeal := s.rng.Float64() < 0.5
	qty := s.randIn(cfg.Quantity)

	var pricePerUnit float64
	if isBuyDeal {
		pricePerUnit = market.BaseBuyPrice * qualityBuyMult(tgt.quality) * s.randFloatIn(cfg.BuyDealMult)
		// The contact only bothers with players who could plausibly pay.
		if s.Player.Cash < pricePerUnit*float64(qty)*cfg.MinCashFactor {
			return nil, ""
		}
	} else {
		pricePerUnit = market.BaseSellPrice * qualitySellMult(tgt.quality) * s.randFloatIn(cfg.SellDealMult)
		holdsAny := len(s.Player.Stash[tgt.drug]) > 0
		if !holdsAny && float64(s.Player.Quantity(tgt.drug, tgt.quality)) < float64(qty)*cfg.MinQtyFactor {
			return nil, ""
		}
	}
	pricePerUnit = roundCents(math.Max(cfg.MinUnitPrice, pricePerUnit))

	ev := &MarketEvent{
		ID:            s.eventID(EventTheSetup),
		Kind:          EventTheSetup,
		StartDay:      s.Day,
		DaysRemaining: cfg.DurationDays,
		Setup: &SetupDeal{
			Drug:         tgt.drug,
			Quality:      tgt.quality,
			Quantity:     qty,
			PricePerUnit: pricePerUnit,
			IsBuyDeal:    isBuyDeal,
		},
	}
	msg := fmt.Sprintf("Market Murmurs: A shady character in %s wants to make you an offer... It sounds too good to be true.",
		region.Name)
	return ev, msg
}

func createRivalBusted(s *Session, region *Region) (*MarketEvent, string) {
	free := s.freeRivals()
	if len(free) == 0 {
		return nil, ""
	}
	rival := free[s.rng.Intn(len(free))]

	for _, ev := range region.ActiveEvents {
		if ev.Kind == EventRivalBusted && ev.RivalBust.RivalName == rival.Name {
			return nil, ""
		}
	}

	days := s.randIn(s.tuning.Events.RivalBusted.Duration)
	s.bustRival(rival.Name, days)

	ev := &MarketEvent{
		ID:            s.eventID(EventRivalBusted),
		Kind:          EventRivalBusted,
		StartDay:      s.Day,
		DaysRemaining: days,
		RivalBust:     &RivalBustEffect{RivalName: rival.Name},
	}
	msg := fmt.Sprintf("Major News: Notorious dealer %s has been BUSTED! They'll be out of action for about %d days.",
		rival.Name, days)
	return ev, msg
}

func createMarketCrash(s *Session, region *Region) (*MarketEvent, string) {
	tgt, ok := s.pickTarget(region, anyTier, true)
	if !ok || hasEventOn(region, EventMarketCrash, tgt) {
		return nil, ""
	}
	cfg := s.tuning.Events.MarketCrash
	ev := &MarketEvent{
		ID:            s.eventID(EventMarketCrash),
		Kind:          EventMarketCrash,
		TargetDrug:    tgt.drug,
		TargetQuality: tgt.quality,
		HasTarget:     true,
		StartDay:      s.Day,
		DaysRemaining: cfg.DurationDays,
		Crash: &CrashEffect{
			Factor:   1.0 - cfg.PriceReduction,
			MinPrice: cfg.MinPrice,
		},
	}
	msg := fmt.Sprintf("Market Crash! Prices for %s (%s) have plummeted in %s for %d days!",
		tgt.drug, tgt.quality, region.Name, cfg.DurationDays)
	return ev, msg
}

func createBlackMarket(s *Session, region *Region) (*MarketEvent, string) {
	tgt, ok := s.pickTarget(region, anyTier, false)
	if !ok || hasEventOn(region, EventBlackMarket, tgt) {
		return nil, ""
	}
	cfg := s.tuning.Events.BlackMarket
	qty := s.randIn(cfg.Quantity)
	ev := &MarketEvent{
		ID:            s.eventID(EventBlackMarket),
		Kind:          EventBlackMarket,
		TargetDrug:    tgt.drug,
		TargetQuality: tgt.quality,
		HasTarget:     true,
		StartDay:      s.Day,
		DaysRemaining: cfg.DurationDays,
		BlackMarket: &BlackMarketEffect{
			BuyMult:      1.0 - cfg.PriceReduction,
			QuantityLeft: qty,
		},
	}
	msg := fmt.Sprintf("Black Market Alert! %s (%s) in %s available at %.0f%% discount. Qty: %d, for %d day(s).",
		tgt.drug, tgt.quality, region.Name, cfg.PriceReduction*100, qty, cfg.DurationDays)
	return ev, msg
}

// rollDailyEvents runs the day's event rolls for one region. The three
// hazard rolls are independent of each other and of the standard roll, so
// a very unlucky day can bring several at once.
func (s *Session) rollDailyEvents(region *Region) []string {
	var messages []string

	if s.rng.Float64() < s.tuning.BlackMarketChance {
		if ev, msg := createBlackMarket(s, region); ev != nil {
			region.ActiveEvents = append(region.ActiveEvents, ev)
			messages = append(messages, msg)
		}
	}
	if s.rng.Float64() < s.tuning.MuggingChance {
		if msg := s.handleMugging(region); msg != "" {
			messages = append(messages, msg)
		}
	}
	if s.rng.Float64() < s.tuning.FireSaleChance {
		if msg := s.handleFireSale(region); msg != "" {
			messages = append(messages, msg)
		}
	}

	if s.rng.Float64() < s.tuning.StandardEventChance {
		kind := s.pickWeightedKind()
		if factory, ok := eventFactories[kind]; ok {
			if ev, msg := factory(s, region); ev != nil {
				region.ActiveEvents = append(region.ActiveEvents, ev)
				messages = append(messages, msg)
			}
		}
	}

	return messages
}

// pickWeightedKind draws an event kind from the configured weight table.
// Keys are walked sorted so the draw is stable for a given seed.
func (s *Session) pickWeightedKind() EventKind {
	kinds := make([]string, 0, len(s.tuning.EventWeights))
	for kind := range s.tuning.EventWeights {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	var pool []EventKind
	for _, kind := range kinds {
		for i := 0; i < s.tuning.EventWeights[kind]; i++ {
			pool = append(pool, EventKind(kind))
		}
	}
	if len(pool) == 0 {
		return EventDemandSpike
	}
	return pool[s.rng.Intn(len(pool))]
}

// expiryMessage builds the street chatter for an event leaving a region.
var expiryMessages = map[EventKind]func(ev *MarketEvent, reason string) string{
	EventDemandSpike: func(ev *MarketEvent, reason string) string {
		return fmt.Sprintf("The demand spike for %s %s has cooled off (%s).", ev.TargetQuality, ev.TargetDrug, reason)
	},
	EventSupplyDisruption: func(ev *MarketEvent, reason string) string {
		return fmt.Sprintf("The supply chain disruption for %s %s has ended. Availability should return to normal. (%s).", ev.TargetQuality, ev.TargetDrug, reason)
	},
	EventPoliceCrackdown: func(ev *MarketEvent, reason string) string {
		return fmt.Sprintf("The increased police scrutiny seems to have subsided (%s).", reason)
	},
	EventCheapStash: func(ev *MarketEvent, reason string) string {
		return fmt.Sprintf("The cheap stash of %s %s is gone (%s).", ev.TargetQuality, ev.TargetDrug, reason)
	},
	EventTheSetup: func(ev *MarketEvent, reason string) string {
		return fmt.Sprintf("The shady offer regarding the %s %s deal has vanished (%s).", ev.Setup.Quality, ev.Setup.Drug, reason)
	},
	EventRivalBusted: func(ev *MarketEvent, reason string) string {
		return fmt.Sprintf("Looks like %s is back on the streets (%s).", ev.RivalBust.RivalName, reason)
	},
	EventMarketCrash: func(ev *MarketEvent, reason string) string {
		return fmt.Sprintf("The market for %s %s has recovered from the crash (%s).", ev.TargetQuality, ev.TargetDrug, reason)
	},
	EventBlackMarket: func(ev *MarketEvent, reason string) string {
		return fmt.Sprintf("The black market opportunity for %s %s has ended (%s).", ev.TargetQuality, ev.TargetDrug, reason)
	},
}

// ageEvents ticks every active event in a region down one day and drops
// the ones that ran out. A black market also dies the day its stock does.
func (s *Session) ageEvents(region *Region) []string {
	var messages []string
	var survivors []*MarketEvent

	for _, ev := range region.ActiveEvents {
		ev.DaysRemaining--

		expired := ev.DaysRemaining <= 0
		reason := "duration ended"
		if ev.Kind == EventBlackMarket && ev.BlackMarket.QuantityLeft <= 0 {
			if !expired {
				reason = "stock depleted"
			}
			expired = true
		}

		if !expired {
			survivors = append(survivors, ev)
			continue
		}
		if build, ok := expiryMessages[ev.Kind]; ok {
			messages = append(messages, fmt.Sprintf("Market Update in %s: %s", region.Name, build(ev, reason)))
		}
	}

	region.ActiveEvents = survivors
	return messages
}

// handleMugging takes a slice of the player's cash. Broke players have
// nothing worth stealing.
func (s *Session) handleMugging(region *Region) string {
	if s.Player.Cash <= 0 {
		return ""
	}
	lost := math.Floor(s.Player.Cash * s.randFloatIn(s.tuning.MuggingLossPercent))
	if lost <= 0 {
		return ""
	}
	s.Player.Cash -= lost
	return fmt.Sprintf("Street Danger! You were mugged in %s and lost $%s!",
		region.Name, humanize.Commaf(lost))
}

// handleFireSale forces the player to dump part of a random stash lot at
// a steep discount. Fizzles quietly when there is nothing to dump.
func (s *Session) handleFireSale(region *Region) string {
	var lots []target
	for _, drug := range sortedStashDrugs(s.Player) {
		for _, q := range sortedQualities() {
			if s.Player.Quantity(drug, q) > 0 {
				lots = append(lots, target{drug: drug, quality: q})
			}
		}
	}
	if len(lots) == 0 {
		return ""
	}

	lot := lots[s.rng.Intn(len(lots))]
	held := s.Player.Quantity(lot.drug, lot.quality)

	qty := int(math.Ceil(float64(held) * s.tuning.FireSaleQtyPercent))
	if qty < s.tuning.FireSaleMinQty {
		qty = s.tuning.FireSaleMinQty
	}
	if qty > held {
		qty = held
	}

	normal := s.sellPrice(region, lot.drug, lot.quality)
	if normal <= 0 {
		return ""
	}
	price := roundCents(math.Max(s.tuning.FireSaleMinPrice, normal*(1.0-s.tuning.FireSalePenalty)))

	gain := float64(qty) * price
	if gain > 0 && gain < s.tuning.FireSaleMinGain {
		gain = s.tuning.FireSaleMinGain
	}
	gain = roundCents(gain)
	if gain <= 0 {
		return ""
	}

	s.Player.RemoveDrug(lot.drug, lot.quality, qty)
	s.Player.Cash += gain
	addHeat(region, s.tuning.FireSaleHeat)

	return fmt.Sprintf("Bad Luck! You were forced into a fire sale in %s! Sold %d units of %s %s at $%s/unit. Total gain: $%s.",
		region.Name, qty, lot.quality, lot.drug, humanize.Commaf(price), humanize.Commaf(gain))
}

// sortedStashDrugs lists the player's stash drugs in a stable order so
// the fire sale draw is reproducible under a fixed seed.
func sortedStashDrugs(p *Player) []string {
	drugs := make([]string, 0, len(p.Stash))
	for drug := range p.Stash {
		drugs = append(drugs, drug)
	}
	sort.Strings(drugs)
	return drugs
}

// ActiveEvents returns copies of a region's live events for display.
func (s *Session) ActiveEvents(regionKey string) []MarketEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	region := s.region(regionKey)
	if region == nil {
		return nil
	}
	events := make([]MarketEvent, 0, len(region.ActiveEvents))
	for _, ev := range region.ActiveEvents {
		events = append(events, *ev)
	}
	return events
}

// Describe renders a one-line summary of the event for logs and listings.
// Buy multipliers show only for demand spikes and cheap stashes; a black
// market advertises its own quantity and discount instead.
func (ev *MarketEvent) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Event: %s", ev.Kind)
	switch {
	case ev.Kind == EventRivalBusted && ev.RivalBust != nil:
		fmt.Fprintf(&b, " (Target: %s)", ev.RivalBust.RivalName)
	case ev.Kind == EventBlackMarket && ev.HasTarget:
		fmt.Fprintf(&b, " for %s %s", ev.TargetQuality, ev.TargetDrug)
		if ev.BlackMarket != nil {
			fmt.Fprintf(&b, " (Qty: %d), Buy_Mult: %.2f", ev.BlackMarket.QuantityLeft, ev.BlackMarket.BuyMult)
		}
	case ev.HasTarget:
		fmt.Fprintf(&b, " for %s %s", ev.TargetQuality, ev.TargetDrug)
	case ev.Kind == EventTheSetup && ev.Setup != nil:
		action := "Sell"
		if ev.Setup.IsBuyDeal {
			action = "Buy"
		}
		fmt.Fprintf(&b, " (%s %d %s %s @ $%.2f)",
			action, ev.Setup.Quantity, ev.Setup.Quality, ev.Setup.Drug, ev.Setup.PricePerUnit)
	}
	fmt.Fprintf(&b, ", Days Left: %d", ev.DaysRemaining)
	if ev.Kind == EventDemandSpike && ev.Spike != nil {
		fmt.Fprintf(&b, ", B_Mult: %.2f, S_Mult: %.2f", ev.Spike.BuyMult, ev.Spike.SellMult)
	}
	if ev.Kind == EventCheapStash && ev.Stash != nil {
		fmt.Fprintf(&b, ", B_Mult: %.2f, Stock Inc: +%d", ev.Stash.BuyMult, ev.Stash.StockIncrease)
	}
	if ev.Kind == EventPoliceCrackdown && ev.Crackdown != nil {
		fmt.Fprintf(&b, ", Heat Inc: %d", ev.Crackdown.HeatIncrease)
	}
	return b.String()
}
