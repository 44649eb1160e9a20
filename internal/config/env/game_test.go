package env

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewGameConfigFromYAML(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		path := writeConfig(t, `
game:
  variants:
    - name: classic9
      grid_size: 9
      min_bet: 5
      max_prize: 100
      max_flips: 3
      min_winning_slots: 1
      max_winning_slots: 3
    - name: cause
      grid_size: 16
      min_bet: 20
      max_flips: 1
      min_winning_slots: 1
      max_winning_slots: 1
      cause_prize: true
`)

		cfg, err := NewGameConfigFromYAML(path)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}

		v, ok := cfg.Variant("classic9")
		if !ok {
			t.Fatal("classic9 not found")
		}
		if v.GridSize != 9 || v.MinBet != 5 || v.MaxPrize != 100 || v.MaxFlips != 3 {
			t.Errorf("unexpected variant: %+v", v)
		}

		if _, ok := cfg.Variant("cause"); !ok {
			t.Error("cause variant not found")
		}
		if len(cfg.Variants()) != 2 {
			t.Errorf("expected 2 variants, got %d", len(cfg.Variants()))
		}
	})

	t.Run("max flips above grid size is rejected", func(t *testing.T) {
		path := writeConfig(t, `
game:
  variants:
    - name: broken
      grid_size: 4
      min_bet: 5
      max_prize: 100
      max_flips: 5
      min_winning_slots: 1
      max_winning_slots: 1
`)

		if _, err := NewGameConfigFromYAML(path); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("empty variant list is rejected", func(t *testing.T) {
		path := writeConfig(t, "game:\n  variants: []\n")

		if _, err := NewGameConfigFromYAML(path); err == nil {
			t.Error("expected error for empty variants")
		}
	})

	t.Run("duplicate variant name is rejected", func(t *testing.T) {
		path := writeConfig(t, `
game:
  variants:
    - name: classic9
      grid_size: 9
      min_bet: 5
      max_prize: 100
      max_flips: 3
      min_winning_slots: 1
      max_winning_slots: 3
    - name: classic9
      grid_size: 12
      min_bet: 10
      max_prize: 200
      max_flips: 4
      min_winning_slots: 1
      max_winning_slots: 3
`)

		if _, err := NewGameConfigFromYAML(path); err == nil {
			t.Error("expected error for duplicate name")
		}
	})
}

func TestNewBalanceCacheConfigFromYAML(t *testing.T) {
	path := writeConfig(t, "balance_cache:\n  reconcile_interval: 10s\n")

	cfg, err := NewBalanceCacheConfigFromYAML(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ReconcileInterval().Seconds() != 10 {
		t.Errorf("expected 10s, got %s", cfg.ReconcileInterval())
	}
}
