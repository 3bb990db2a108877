/*
Package game
File: heat_test.go
Description:
    Heat subsystem tests: threshold tables, sale heat by tier, the
    capability discounts and daily decay.
*/

package game

import "testing"

func TestThresholdFactor(t *testing.T) {
	table := map[int]float64{0: 1.0, 21: 1.05, 51: 1.10, 81: 1.15}

	cases := []struct {
		heat int
		want float64
	}{
		{0, 1.0},
		{20, 1.0},
		{21, 1.05},
		{50, 1.05},
		{51, 1.10},
		{80, 1.10},
		{81, 1.15},
		{100, 1.15},
	}
	for _, tc := range cases {
		if got := thresholdFactor(table, tc.heat); !almostEqual(got, tc.want) {
			t.Errorf("thresholdFactor(%d) = %.2f, want %.2f", tc.heat, got, tc.want)
		}
	}
}

func TestHeatStockFactorSparesTier1(t *testing.T) {
	tun := DefaultTuning()
	if got := heatStockFactor(tun, 95, 1); !almostEqual(got, 1.0) {
		t.Errorf("tier 1 squeeze = %.2f, want 1.0", got)
	}
	if got := heatStockFactor(tun, 95, 3); !almostEqual(got, 0.25) {
		t.Errorf("tier 3 squeeze = %.2f, want 0.25", got)
	}
}

func TestSaleHeatByTier(t *testing.T) {
	s := newTestSession(t)

	cases := []struct {
		tier, qty, want int
	}{
		{1, 10, 10},
		{2, 10, 20},
		{3, 10, 40},
	}
	for _, tc := range cases {
		if got := s.saleHeat(tc.tier, tc.qty); got != tc.want {
			t.Errorf("saleHeat(tier %d, qty %d) = %d, want %d", tc.tier, tc.qty, got, tc.want)
		}
	}
}

func TestSaleHeatCompartmentalization(t *testing.T) {
	s := newTestSession(t)
	s.Player.Capabilities[CapCompartmentalization] = true

	// 40 * 0.75 = 30.
	if got := s.saleHeat(3, 10); got != 30 {
		t.Errorf("discreet saleHeat = %d, want 30", got)
	}
}

func TestAddHeatFloorsAtZeroWithNoCeiling(t *testing.T) {
	region := &Region{}
	addHeat(region, 150)
	if region.CurrentHeat != 150 {
		t.Errorf("heat = %d, want 150", region.CurrentHeat)
	}
	// Stacked crackdowns keep piling on past the top threshold bracket.
	addHeat(region, 75)
	if region.CurrentHeat != 225 {
		t.Errorf("heat = %d, want 225", region.CurrentHeat)
	}
	addHeat(region, -300)
	if region.CurrentHeat != 0 {
		t.Errorf("heat = %d, want floor at 0", region.CurrentHeat)
	}
}

func TestDecayHeat(t *testing.T) {
	s := newTestSession(t)
	s.Regions["downtown"].CurrentHeat = 100
	s.Regions["docks"].CurrentHeat = 10
	s.Regions["suburbs"].CurrentHeat = 0

	s.decayHeat()

	if got := s.Regions["downtown"].CurrentHeat; got != 95 {
		t.Errorf("downtown heat = %d, want 95", got)
	}
	// 5% of 10 rounds down below the minimum step of 1.
	if got := s.Regions["docks"].CurrentHeat; got != 9 {
		t.Errorf("docks heat = %d, want 9", got)
	}
	if got := s.Regions["suburbs"].CurrentHeat; got != 0 {
		t.Errorf("suburbs heat = %d, want 0", got)
	}
}

func TestDecayHeatGhostProtocol(t *testing.T) {
	s := newTestSession(t)
	s.Player.Capabilities[CapGhostProtocol] = true
	s.Regions["downtown"].CurrentHeat = 100

	s.decayHeat()

	// 100 * 0.05 * 1.15 = 5.75, floored to 5.
	if got := s.Regions["downtown"].CurrentHeat; got != 95 {
		t.Errorf("downtown heat = %d, want 95", got)
	}
}
