/*
Package config
File: env_test.go
Description:
    Environment loader tests: defaults without any variables set, and
    typed overrides.
*/

package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STREETS_PORT", "")
	t.Setenv("STREETS_TUNING", "")
	t.Setenv("STREETS_SEED", "")

	env := Load()
	if env.Port != "8090" || env.TuningPath != "streets.yaml" || env.Seed != 0 {
		t.Errorf("defaults = %+v", env)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STREETS_PORT", "9000")
	t.Setenv("STREETS_SEED", "12345")
	t.Setenv("STREETS_LOG_DIR", "/tmp/streets-logs")

	env := Load()
	if env.Port != "9000" || env.Seed != 12345 || env.LogDir != "/tmp/streets-logs" {
		t.Errorf("overrides = %+v", env)
	}
}

func TestLoadBadSeedFallsBack(t *testing.T) {
	t.Setenv("STREETS_SEED", "not-a-number")
	if env := Load(); env.Seed != 0 {
		t.Errorf("seed = %d, want fallback 0", env.Seed)
	}
}
