// Package main is the entry point for dungeongrow.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/samdwyer/dungeongrow/internal/config"
	"github.com/samdwyer/dungeongrow/internal/gamedata"
	"github.com/samdwyer/dungeongrow/internal/generate"
	"github.com/samdwyer/dungeongrow/internal/layoutio"
	"github.com/samdwyer/dungeongrow/internal/telemetry"
	"github.com/samdwyer/dungeongrow/internal/ui"
	"github.com/samdwyer/dungeongrow/internal/viewer"
)

func main() {
	configPath := flag.String("config", "dungeongrow.yml", "path to the YAML config, written with defaults if missing")
	seed := flag.Int64("seed", 0, "seed override (0 keeps the config seed)")
	phrase := flag.String("phrase", "", "seed phrase override")
	archetypes := flag.String("archetypes", "", "JSON archetype catalogue replacing the embedded one")
	view := flag.Bool("view", false, "browse the layout interactively")
	printMap := flag.Bool("print", false, "print the layout as text")
	export := flag.String("export", "", "write the layout as YAML to this path")
	scale := flag.Float64("scale", 1, "world units per map cell")
	verbosity := flag.Int("v", 0, "log verbosity")
	flag.Parse()

	// Load .env file for local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Note: .env file not loaded: %v", err)
	}
	setupOTelEnv()

	stdr.SetVerbosity(*verbosity)
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *phrase != "" {
		cfg.SeedPhrase = *phrase
	}
	if cfg.Seed == 0 && cfg.SeedPhrase == "" {
		cfg.Seed = time.Now().UnixNano()
	}
	if *archetypes != "" {
		cfg.Archetypes = *archetypes
	}

	catalogue, err := loadCatalogue(cfg.Archetypes)
	if err != nil {
		log.Fatalf("Failed to load archetypes: %v", err)
	}

	ctx := context.Background()

	if telemetry.Enabled() {
		shutdown, err := telemetry.Setup(ctx, logger)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	if *view {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			log.Fatalf("-view needs a terminal on stdout")
		}
		v, err := viewer.New(*cfg, catalogue, logger, *scale)
		if err != nil {
			log.Fatalf("Failed to initialize viewer: %v", err)
		}
		if err := v.Run(ctx); err != nil {
			log.Fatalf("Viewer error: %v", err)
		}
		return
	}

	if err := runBatch(ctx, *cfg, catalogue, logger, *printMap, *export, *scale); err != nil {
		log.Fatalf("%v", err)
	}
}

// runBatch generates one layout and reports it without a terminal UI.
func runBatch(ctx context.Context, cfg config.Config, catalogue *gamedata.Catalogue, logger logr.Logger, printMap bool, export string, scale float64) error {
	d, _ := generate.Build(ctx, cfg, catalogue, generate.WithLogger(logger))

	if printMap {
		fmt.Print(ui.Rasterize(d, scale).String())
	}
	if export != "" {
		if err := layoutio.WriteFile(export, d); err != nil {
			return err
		}
	}

	st := d.Stats
	fmt.Printf("seed %d: %d rooms, %d loops, %d corridors, %d sealed, %d leftover, %d skewered\n",
		d.Seed, st.RoomsPlaced, st.LoopEdges, st.Corridors, st.SealedOpenings, st.LeftoverOpenings, st.SkeweredRooms)
	if d.Path != nil {
		fmt.Printf("main path: %d rooms, length %.1f\n", len(d.Path.Rooms), d.Path.Length)
	}
	return nil
}

// loadConfig reads the config file, writing the defaults first if it does not exist.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := config.WriteDefault(path); err != nil {
			return nil, err
		}
		log.Printf("Wrote default config to %s", path)
	}
	return config.Load(path)
}

func loadCatalogue(path string) (*gamedata.Catalogue, error) {
	if path == "" {
		return gamedata.LoadCatalogue()
	}
	return gamedata.ReadCatalogue(path)
}

// setupOTelEnv points the OTLP exporter at Honeycomb when an API key is set in
// the environment. Without a key the exporter settings are left alone.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_DUNGEONGROW_API_KEY")
	if apiKey == "" {
		return
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}
	dataset := os.Getenv("HONEYCOMB_DUNGEONGROW_DATASET")
	if dataset == "" {
		dataset = "dungeongrow"
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
