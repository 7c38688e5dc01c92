package config

import "testing"

func TestLoadFromBytesDefaults(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`ground_sharing: soft`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GroundSharing != GroundSharingSoft {
		t.Errorf("GroundSharing = %q, want soft", cfg.GroundSharing)
	}
	if cfg.Penalties.ThreeInARow != 50 {
		t.Errorf("ThreeInARow = %d, want default 50", cfg.Penalties.ThreeInARow)
	}
	if cfg.Engine.Workers != 8 {
		t.Errorf("Workers = %d, want default 8", cfg.Engine.Workers)
	}
}

func TestLoadFromBytesInvalidPolicy(t *testing.T) {
	_, err := LoadFromBytes([]byte(`ground_sharing: maybe`))
	if err == nil {
		t.Fatal("expected error for invalid ground_sharing policy")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg, err := LoadFromFile("/nonexistent/solver.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GroundSharing != GroundSharingHard {
		t.Errorf("GroundSharing = %q, want the documented default \"hard\"", cfg.GroundSharing)
	}
}

func TestTierWeights(t *testing.T) {
	w := Default().Penalties.GroundSharing
	if w.Weight(1) != 1000 || w.Weight(2) != 500 || w.Weight(3) != 100 || w.Weight(4) != 10 {
		t.Errorf("unexpected tier weights: %+v", w)
	}
	if w.Weight(99) != 10 {
		t.Errorf("out-of-range tier should fall back to tier4 weight, got %d", w.Weight(99))
	}
}
