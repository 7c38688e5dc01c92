// Package config loads the solver policy file (solver.yaml): the knobs
// spec.md §9 says must be configurable rather than hard-coded — the
// ground-sharing hard-vs-soft choice, CP engine time budgets and worker
// count, and soft-penalty weights.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GroundSharingPolicy selects between the two formulations described in
// spec.md §9.
type GroundSharingPolicy string

const (
	// GroundSharingHard treats ground-sharing pairs as a hard mutual
	// exclusion constraint: at most one of a conflicting pair may be
	// home in any given week. This is the recommended default.
	GroundSharingHard GroundSharingPolicy = "hard"

	// GroundSharingSoft treats ground-sharing pairs as a soft penalty
	// weighted by division tier (1000/500/100/10 for tiers 1-4).
	GroundSharingSoft GroundSharingPolicy = "soft"
)

// TierWeights maps a division tier to its ground-sharing soft penalty,
// used only when GroundSharing == GroundSharingSoft.
type TierWeights struct {
	Tier1 int `yaml:"tier1"`
	Tier2 int `yaml:"tier2"`
	Tier3 int `yaml:"tier3"`
	Tier4 int `yaml:"tier4"`
}

// Weight returns the penalty for the given tier (1-4), falling back to
// the tier-4 weight for anything out of range.
func (w TierWeights) Weight(tier int) int {
	switch tier {
	case 1:
		return w.Tier1
	case 2:
		return w.Tier2
	case 3:
		return w.Tier3
	default:
		return w.Tier4
	}
}

// Penalties holds the soft-constraint penalty weights.
type Penalties struct {
	ThreeInARow   int `yaml:"three_in_a_row"`
	GroundSharing TierWeights `yaml:"ground_sharing_tiers"`
}

// Engine holds the settings for the constraint-solving engine
// (internal/solver/engine.go): time budgets and a worker count. There is
// no CP/SAT library in this module's dependency stack (see DESIGN.md);
// the time budgets set the deadline of the native randomized-restart
// local-search engine, which runs single-threaded, so Workers is
// validated but not otherwise read. The random seed is not part of this
// file; it comes from the caller (the CLI's --seed flag).
type Engine struct {
	MirroredTimeLimitSeconds int `yaml:"mirrored_time_limit_seconds"`
	FullTimeLimitFactor      int `yaml:"full_time_limit_factor"`
	Workers                  int `yaml:"workers"`
}

// Config is the solver policy loaded from solver.yaml.
type Config struct {
	GroundSharing GroundSharingPolicy `yaml:"ground_sharing"`
	Penalties     Penalties           `yaml:"penalties"`
	Engine        Engine              `yaml:"engine"`
}

// Default returns the recommended default policy: ground-sharing
// treated as a hard constraint (see spec.md §9), with the documented
// default penalty weights and engine settings.
func Default() *Config {
	return &Config{
		GroundSharing: GroundSharingHard,
		Penalties: Penalties{
			ThreeInARow: 50,
			GroundSharing: TierWeights{
				Tier1: 1000,
				Tier2: 500,
				Tier3: 100,
				Tier4: 10,
			},
		},
		Engine: Engine{
			MirroredTimeLimitSeconds: 300,
			FullTimeLimitFactor:      3,
			Workers:                 8,
		},
	}
}

// LoadFromBytes parses YAML bytes into a Config, filling in defaults
// for anything left unset, then validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing solver config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile reads and parses a solver.yaml file. If path does not
// exist, the documented defaults are returned rather than an error, so
// `fixturegen generate` works out of the box.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading solver config file: %w", err)
	}
	return LoadFromBytes(data)
}

func (c *Config) validate() error {
	switch c.GroundSharing {
	case GroundSharingHard, GroundSharingSoft:
	default:
		return fmt.Errorf("invalid ground_sharing policy %q: want \"hard\" or \"soft\"", c.GroundSharing)
	}
	if c.Engine.MirroredTimeLimitSeconds <= 0 {
		return fmt.Errorf("engine.mirrored_time_limit_seconds must be positive")
	}
	if c.Engine.FullTimeLimitFactor <= 0 {
		return fmt.Errorf("engine.full_time_limit_factor must be positive")
	}
	if c.Engine.Workers <= 0 {
		return fmt.Errorf("engine.workers must be positive")
	}
	if c.Penalties.ThreeInARow < 0 {
		return fmt.Errorf("penalties.three_in_a_row must not be negative")
	}
	return nil
}

const Template = `# Fixture generator solver policy
# ================================
# ground_sharing selects how teams that share a physical pitch are
# handled (see spec section 9): "hard" forbids both being home in the
# same week outright; "soft" allows it but penalizes it, weighted by
# division tier.
ground_sharing: hard

penalties:
  three_in_a_row: 50
  ground_sharing_tiers:
    tier1: 1000
    tier2: 500
    tier3: 100
    tier4: 10

engine:
  mirrored_time_limit_seconds: 300
  full_time_limit_factor: 3
  workers: 8
`
