// Package main is the entry point for consolefps.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/samdwyer/consolefps/internal/config"
	"github.com/samdwyer/consolefps/internal/game"
	"github.com/samdwyer/consolefps/internal/gamedata"
	"github.com/samdwyer/consolefps/internal/telemetry"
	"github.com/samdwyer/consolefps/internal/ui"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to a TOML config file")
	mapName := flag.String("map", "", fmt.Sprintf("embedded layout (%s) or path to a layout file", strings.Join(gamedata.Layouts(), ", ")))
	seed := flag.Int64("seed", 0, "generate a random layout with this seed")
	flag.Parse()

	// Load .env file for local development
	// This makes HONEYCOMB_CONSOLEFPS_API_KEY and CONSOLEFPS_* available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyFlags(&cfg, *mapName, *seed)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	os.Exit(serve(cfg))
}

// serve runs the game with cfg and returns the process exit code.
// Deferred cleanup runs before main exits.
func serve(cfg config.Config) int {
	// The terminal belongs to the renderer, so logs go to a file
	logger := log.Default()
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "consolefps: opening log file: %v\n", err)
			return 1
		}
		defer f.Close()
		log.SetOutput(f)
	}
	log.SetPrefix(fmt.Sprintf("[%s] ", telemetry.SessionID()[:8]))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		setupOTelEnv()
		shutdown, err := telemetry.Setup(ctx, cfg.Telemetry.ServiceName)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
			log.Printf("Game will run without observability")
		} else {
			defer func() {
				// ctx may already be cancelled by a signal
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(sctx); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	if err := run(ctx, cfg, logger); err != nil {
		log.Printf("Game error: %v", err)
		fmt.Fprintf(os.Stderr, "consolefps: %v\n", err)
		return 1
	}
	return 0
}

// run builds the world and drives the frame loop until quit or cancellation.
func run(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	sim, err := game.Setup(ctx, cfg)
	if err != nil {
		return fmt.Errorf("setting up game: %w", err)
	}

	palettes, err := gamedata.LoadPaletteRegistry()
	if err != nil {
		return fmt.Errorf("loading palettes: %w", err)
	}
	palette, err := palettes.Resolve(cfg.UI.Palette)
	if err != nil {
		return err
	}
	logger.Printf("palette %s (%d available)", palette.ID, palettes.Count())

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	defer screen.Close()

	keyboard := ui.NewKeyboard(time.Duration(cfg.UI.KeyHoldMS) * time.Millisecond)
	go screen.Pump(keyboard.HandleEvent)

	g := game.New(sim, game.NewSystemClock(), keyboard, ui.NewDisplay(screen, palette), game.Options{
		FPS:     cfg.Screen.FPS,
		ShowMap: cfg.UI.ShowMap,
		Logger:  logger,
	})
	return g.Run(ctx)
}

// applyFlags overrides the loaded config with command-line choices.
// A -map value naming an embedded layout selects it; anything else is read as a file.
func applyFlags(cfg *config.Config, mapName string, seed int64) {
	if mapName != "" {
		if _, err := gamedata.LoadLayout(mapName); err == nil {
			cfg.Map.Name = mapName
			cfg.Map.File = ""
		} else {
			cfg.Map.File = mapName
		}
		cfg.Map.Generate = false
	}
	if seed != 0 {
		cfg.Map.Generate = true
		cfg.Map.Seed = seed
		cfg.Map.File = ""
	}
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_CONSOLEFPS_API_KEY")
	if apiKey == "" {
		// Fall back to whatever OTEL_* variables are already set
		return
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	dataset := os.Getenv("HONEYCOMB_CONSOLEFPS_DATASET")
	if dataset == "" {
		dataset = telemetry.DefaultServiceName
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
