package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glucodash/config"
	"github.com/pthm-cable/glucodash/dashboard"
	"github.com/pthm-cable/glucodash/fetch"
	"github.com/pthm-cable/glucodash/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	dataDir := flag.String("data-dir", "", "Reading cache directory (overrides config)")
	outputDir := flag.String("output-dir", "", "Output directory for session CSV logs")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N frames (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		cfg.Fetch.DataDir = *dataDir
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	var session *telemetry.Session
	if *outputDir != "" {
		session = telemetry.NewSession()
	}

	src := fetch.NewFileStore(cfg.Fetch.DataDir, time.Duration(cfg.Fetch.FreshnessMinutes)*time.Minute)
	d := dashboard.New(cfg, src, dashboard.Options{Seed: rngSeed, Session: session})

	if *headless {
		// Headless mode - engines only, no raylib window
		slog.Info("starting headless dashboard",
			"seed", rngSeed,
			"players", len(cfg.Players),
			"max_ticks", *maxTicks,
		)

		d.Start()
		frame := time.NewTicker(time.Second / time.Duration(cfg.Screen.TargetFPS))
		defer frame.Stop()
		for range frame.C {
			d.Update()
			if *maxTicks > 0 && d.Tick() >= *maxTicks {
				break
			}
		}
	} else {
		rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Glucose PK")
		defer rl.CloseWindow()

		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

		d.Start()
		for !rl.WindowShouldClose() {
			d.Update()
			d.Draw()

			if *maxTicks > 0 && d.Tick() >= *maxTicks {
				break
			}
		}
	}

	d.Destroy()

	if session != nil {
		if err := session.WriteCSV(*outputDir); err != nil {
			slog.Error("failed to write session output", "error", err)
		} else {
			slog.Info("session output written", "dir", *outputDir, "ticks", session.Len())
		}
	}
}
