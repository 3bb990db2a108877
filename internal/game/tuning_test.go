/*
Package game
File: tuning_test.go
Description:
    Tuning loader tests: YAML overlay on defaults, validation of the
    city layout, and schema validation of the shipped tuning file.
*/

package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

func writeTuningFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write tuning file: %v", err)
	}
	return path
}

func TestLoadTuningOverlaysDefaults(t *testing.T) {
	path := writeTuningFile(t, `
starting_cash: 5000
regions:
  - key: harbor
    name: Harbor
    drugs:
      - { key: Weed, base_buy_price: 30, base_sell_price: 55, tier: 1 }
`)
	tun, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}

	if tun.StartingCash != 5000 {
		t.Errorf("starting cash = %.0f, want 5000", tun.StartingCash)
	}
	// Declared regions replace the built-in city wholesale.
	if len(tun.Regions) != 1 || tun.Regions[0].Key != "harbor" {
		t.Errorf("regions = %+v, want just harbor", tun.Regions)
	}
	// Untouched keys keep their defaults.
	if tun.StandardEventChance != 0.25 || tun.Tier1RestockAmount != 10000 {
		t.Error("defaults lost during overlay")
	}
	if tun.Events.DemandSpike.SellMult.Max != 1.8 {
		t.Error("nested event defaults lost during overlay")
	}
}

func TestLoadTuningValidation(t *testing.T) {
	if _, err := LoadTuning(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file accepted")
	}

	bad := writeTuningFile(t, `regions: []`)
	if _, err := LoadTuning(bad); err == nil {
		t.Error("empty city accepted")
	}

	badTier := writeTuningFile(t, `
regions:
  - key: x
    name: X
    drugs:
      - { key: Weed, base_buy_price: 30, base_sell_price: 55, tier: 9 }
`)
	if _, err := LoadTuning(badTier); err == nil {
		t.Error("out-of-range tier accepted")
	}

	badPrice := writeTuningFile(t, `
regions:
  - key: x
    name: X
    drugs:
      - { key: Weed, base_buy_price: 0, base_sell_price: 55, tier: 1 }
`)
	if _, err := LoadTuning(badPrice); err == nil {
		t.Error("zero base price accepted")
	}
}

// TestShippedTuningMatchesSchema validates streets.yaml against the JSON
// schema shipped next to it, so the two can never drift apart silently.
func TestShippedTuningMatchesSchema(t *testing.T) {
	raw, err := os.ReadFile("../../streets.yaml")
	if err != nil {
		t.Skipf("streets.yaml not present: %v", err)
	}

	var doc interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("parse streets.yaml: %v", err)
	}

	schema, err := jsonschema.Compile("../../schemas/tuning.schema.json")
	if err != nil {
		t.Fatalf("compile schema: %v", err)
	}
	if err := schema.Validate(doc); err != nil {
		t.Fatalf("streets.yaml violates its schema: %v", err)
	}

	// The shipped file must also load cleanly through the real loader.
	if _, err := LoadTuning("../../streets.yaml"); err != nil {
		t.Fatalf("LoadTuning(streets.yaml): %v", err)
	}
}
