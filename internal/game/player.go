/*
Package game
File: player.go
Description:
    The player record: cash, stash contents, stash capacity, learned
    capabilities and current region. Stash quantities are keyed by drug
    then quality so partial lots of different purity never merge.
*/

package game

// Capability keys the player can unlock. Each one bends a single rule of
// the simulation; see heat.go and trends in session.go for where they bite.
const (
	CapGhostProtocol        = "ghost_protocol"        // heat decays faster
	CapCompartmentalization = "compartmentalization"  // selling draws less heat
	CapMarketAnalyst        = "market_analyst"        // unlocks price trend data
)

// Player holds everything the simulation tracks about the human trader.
type Player struct {
	Cash          float64                         `json:"cash"`
	Stash         map[string]map[DrugQuality]int  `json:"stash"`
	StashCapacity int                             `json:"stash_capacity"`
	Capabilities  map[string]bool                 `json:"capabilities"`
	CurrentRegion string                          `json:"current_region"`
}

// NewPlayer builds a fresh player from the tuning's starting values.
func NewPlayer(t *Tuning) *Player {
	return &Player{
		Cash:          t.StartingCash,
		Stash:         make(map[string]map[DrugQuality]int),
		StashCapacity: t.StashCapacity,
		Capabilities:  make(map[string]bool),
		CurrentRegion: t.StartingRegion,
	}
}

// Quantity reports how many units of a given drug and quality the player holds.
func (p *Player) Quantity(drug string, quality DrugQuality) int {
	if lots, ok := p.Stash[drug]; ok {
		return lots[quality]
	}
	return 0
}

// TotalUnits sums every lot in the stash, for capacity checks.
func (p *Player) TotalUnits() int {
	total := 0
	for _, lots := range p.Stash {
		for _, qty := range lots {
			total += qty
		}
	}
	return total
}

// AddDrug places units into the stash, creating the lot if needed.
func (p *Player) AddDrug(drug string, quality DrugQuality, qty int) {
	if qty <= 0 {
		return
	}
	lots, ok := p.Stash[drug]
	if !ok {
		lots = make(map[DrugQuality]int)
		p.Stash[drug] = lots
	}
	lots[quality] += qty
}

// RemoveDrug takes units out of the stash, deleting emptied lots so the
// stash map never accumulates zero entries. It reports whether the player
// actually held that many units.
func (p *Player) RemoveDrug(drug string, quality DrugQuality, qty int) bool {
	lots, ok := p.Stash[drug]
	if !ok || lots[quality] < qty {
		return false
	}
	lots[quality] -= qty
	if lots[quality] == 0 {
		delete(lots, quality)
	}
	if len(lots) == 0 {
		delete(p.Stash, drug)
	}
	return true
}

// HasCapability reports whether the player has unlocked a capability.
func (p *Player) HasCapability(key string) bool {
	return p.Capabilities[key]
}
