package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default returns a configuration that grows a modest layout with a few loops.
func Default() Config {
	return Config{
		Generation: GenerationConfig{
			MaxRooms:              12,
			MaxAttemptsPerOpening: 8,
			MaxAdjustments:        4,
			TraversalCost:         1,
			SealLeftoverOpenings:  true,
		},
		Corridor: CorridorConfig{
			MinLength:  2,
			MaxLength:  6,
			AdjustStep: 1,
		},
		Collision: CollisionConfig{
			Policy:  "shrink",
			Padding: 0.1,
		},
		Loops: LoopConfig{
			ChancePerOpening: 0.3,
			MaxDistance:      12,
			MaxConnections:   3,
		},
		Skewer: SkewerConfig{
			Enabled:         true,
			MinCoverage:     0.9,
			CenterTolerance: 1,
		},
	}
}

// WriteDefault writes the default configuration to the provided path.
func WriteDefault(path string) error {
	cfg := Default()

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}

	return nil
}
