// Package config loads the YAML settings that drive a generation pass.
package config

import (
	"fmt"
	"math"
	"os"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"github.com/samdwyer/dungeongrow/internal/collision"
)

// ArchetypeNone disables an optional archetype (corridor or wall).
const ArchetypeNone = "none"

// Config holds every setting of a generation pass. None of it changes while a
// pass is running.
type Config struct {
	// Seed for random number generation. Used for reproducible dungeon generation.
	// Zero is an ordinary seed here; the CLI swaps it for a time-based one.
	Seed int64 `yaml:"seed"`
	// SeedPhrase, when set, is hashed into the seed and overrides Seed.
	SeedPhrase string `yaml:"seed_phrase,omitempty"`

	Generation GenerationConfig `yaml:"generation"`
	Corridor   CorridorConfig   `yaml:"corridor"`
	Collision  CollisionConfig  `yaml:"collision"`
	Loops      LoopConfig       `yaml:"loops"`
	Walls      WallConfig       `yaml:"walls"`
	Skewer     SkewerConfig     `yaml:"skewer"`

	// Archetypes optionally points at a JSON catalogue that replaces the embedded one.
	Archetypes string `yaml:"archetypes,omitempty"`
}

type GenerationConfig struct {
	MaxRooms              int     `yaml:"max_rooms"`
	MaxAttemptsPerOpening int     `yaml:"max_attempts_per_opening"`
	MaxAdjustments        int     `yaml:"max_adjustments"`
	StartArchetype        string  `yaml:"start_archetype,omitempty"`
	TraversalCost         float64 `yaml:"traversal_cost"`
	SealLeftoverOpenings  bool    `yaml:"seal_leftover_openings"`
}

// CorridorConfig controls corridor length. A positive Length fixes every
// corridor at that length and overrides the range, as does a range whose
// bounds are equal. Otherwise each placement draws a length from
// [MinLength, MaxLength].
type CorridorConfig struct {
	Archetype  string  `yaml:"archetype,omitempty"`
	Length     float64 `yaml:"length,omitempty"`
	MinLength  float64 `yaml:"min_length"`
	MaxLength  float64 `yaml:"max_length"`
	AdjustStep float64 `yaml:"adjust_step"`
	// LimitReach treats a corridor longer than the source room's extent along
	// the corridor axis as a failed placement even when nothing overlaps.
	LimitReach bool `yaml:"limit_reach"`
}

// Fixed returns the length every corridor uses when lengths are not drawn
// from a range.
func (c CorridorConfig) Fixed() (float64, bool) {
	if c.Length > 0 {
		return c.Length, true
	}
	if c.MaxLength > c.MinLength {
		return 0, false
	}
	return c.MinLength, true
}

// Ranged reports whether corridor lengths are drawn from a range.
func (c CorridorConfig) Ranged() bool {
	_, fixed := c.Fixed()
	return !fixed
}

// Clamp limits an adjusted length. Ranged lengths stay inside the range;
// fixed lengths only stay non-negative, so adjustments can grow them by up to
// the adjustment budget.
func (c CorridorConfig) Clamp(length float64) float64 {
	lo, hi := 0.0, math.Inf(1)
	if c.Ranged() {
		lo, hi = c.MinLength, c.MaxLength
	}
	return math.Max(lo, math.Min(length, hi))
}

type CollisionConfig struct {
	Policy  string  `yaml:"policy"`
	Padding float64 `yaml:"padding"`
}

type LoopConfig struct {
	ChancePerOpening float64 `yaml:"chance_per_opening"`
	MaxDistance      float64 `yaml:"max_distance"`
	MaxConnections   int     `yaml:"max_connections"`
}

type WallConfig struct {
	Archetype string `yaml:"archetype,omitempty"`
}

// SkewerConfig tunes the pass that removes rooms a corridor runs straight through.
type SkewerConfig struct {
	Enabled         bool    `yaml:"enabled"`
	MinCoverage     float64 `yaml:"min_coverage"`
	CenterTolerance float64 `yaml:"center_tolerance"`
}

// Load reads a YAML file on top of the defaults, so keys missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	g := c.Generation
	if g.MaxRooms < 0 {
		return fmt.Errorf("generation.max_rooms cannot be negative")
	}
	if g.MaxAttemptsPerOpening < 0 {
		return fmt.Errorf("generation.max_attempts_per_opening cannot be negative")
	}
	if g.MaxAdjustments < 0 {
		return fmt.Errorf("generation.max_adjustments cannot be negative")
	}

	cor := c.Corridor
	if cor.Length < 0 || cor.MinLength < 0 || cor.MaxLength < 0 || cor.AdjustStep < 0 {
		return fmt.Errorf("corridor lengths cannot be negative")
	}
	if cor.MaxLength != 0 && cor.MinLength > cor.MaxLength {
		return fmt.Errorf("corridor.min_length cannot exceed corridor.max_length")
	}

	if c.Collision.Policy == "" {
		c.Collision.Policy = collision.PolicyShrink.String()
	}
	if _, err := collision.ParsePolicy(c.Collision.Policy); err != nil {
		return fmt.Errorf("collision.policy invalid: %w", err)
	}
	if c.Collision.Padding < 0 {
		return fmt.Errorf("collision.padding cannot be negative")
	}

	if c.Loops.ChancePerOpening < 0 || c.Loops.ChancePerOpening > 1 {
		return fmt.Errorf("loops.chance_per_opening must be within [0, 1]")
	}
	if c.Loops.MaxDistance < 0 {
		return fmt.Errorf("loops.max_distance cannot be negative")
	}
	if c.Loops.MaxConnections < 0 {
		return fmt.Errorf("loops.max_connections cannot be negative")
	}

	if c.Skewer.Enabled {
		if c.Skewer.MinCoverage <= 0 || c.Skewer.MinCoverage > 1 {
			return fmt.Errorf("skewer.min_coverage must be within (0, 1]")
		}
		if c.Skewer.CenterTolerance < 0 {
			return fmt.Errorf("skewer.center_tolerance cannot be negative")
		}
	}
	return nil
}

// CollisionPolicy returns the parsed collision policy.
func (c *Config) CollisionPolicy() collision.Policy {
	p, err := collision.ParsePolicy(c.Collision.Policy)
	if err != nil {
		return collision.PolicyShrink
	}
	return p
}

// ResolveSeed returns the seed a pass should use. A seed phrase always wins
// over the numeric seed so shared phrases reproduce the same layout.
func (c *Config) ResolveSeed() int64 {
	if c.SeedPhrase != "" {
		return SeedFromPhrase(c.SeedPhrase)
	}
	return c.Seed
}

// SeedFromPhrase hashes a phrase into a seed.
func SeedFromPhrase(phrase string) int64 {
	return int64(xxhash.Sum64String(phrase))
}
