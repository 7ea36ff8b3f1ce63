// Package main is the entry point for riverlight.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/riverlight/internal/level"
	"github.com/samdwyer/riverlight/internal/telemetry"
	"github.com/samdwyer/riverlight/internal/ui"
	"github.com/samdwyer/riverlight/internal/viewer"
)

var log = logrus.New()

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.WithError(err).Debug(".env file not loaded")
	}

	if lvl, err := logrus.ParseLevel(os.Getenv("RIVERLIGHT_LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}

	cfg, err := level.FromEnv(level.DefaultConfig(), os.Getenv)
	if err != nil {
		log.WithError(err).Fatal("Invalid environment configuration")
	}
	printOnly := parseFlags(&cfg)

	ctx := context.Background()

	// Telemetry is optional: without an API key spans go to the no-op provider
	if setupOTelEnv() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.WithError(err).Warn("Telemetry setup failed, running without observability")
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.WithError(err).Error("Error shutting down telemetry")
				}
			}()
		}
	}

	if printOnly {
		if err := printLevel(ctx, cfg); err != nil {
			log.WithError(err).Fatal("Failed to generate level")
		}
		return
	}

	// The viewer owns the terminal; keep log output off it
	log.SetOutput(logFile())

	v, err := viewer.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize viewer")
	}
	if err := v.Run(ctx); err != nil {
		log.WithError(err).Fatal("Viewer error")
	}
}

// parseFlags overrides cfg with command line flags and reports whether the
// level should only be printed.
func parseFlags(cfg *level.Config) bool {
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 picks one)")
	flag.IntVar(&cfg.Size, "size", cfg.Size, "grid edge length (at least 4)")
	flag.IntVar(&cfg.Mirrors, "mirrors", cfg.Mirrors, "number of mirrors")
	flag.IntVar(&cfg.Rotators, "rotators", cfg.Rotators, "number of rotators")
	flag.BoolVar(&cfg.ExcludeMirrorCells, "exclude-mirror-cells", cfg.ExcludeMirrorCells,
		"keep rotators off cells that hold a mirror")
	flag.UintVar(&cfg.MaxAttempts, "attempts", cfg.MaxAttempts, "generation attempts before giving up")
	printOnly := flag.Bool("print", false, "print the level as text instead of opening the viewer")
	flag.Parse()
	return *printOnly
}

// printLevel generates one level and writes it to stdout.
func printLevel(ctx context.Context, cfg level.Config) error {
	l, err := level.Build(ctx, cfg, log)
	if err != nil {
		return err
	}

	stats := level.Analyze(l.Field)
	fmt.Printf("Level %s (seed %d)\n", l.ID, l.Seed)
	fmt.Printf("River:    %d/%d cells\n", stats.RiverCells, stats.RiverTarget)
	return ui.WriteText(os.Stdout, l.Field)
}

// logFile returns where viewer logs go: RIVERLIGHT_LOG_FILE if it can be
// opened, otherwise stderr.
func logFile() *os.File {
	path := os.Getenv("RIVERLIGHT_LOG_FILE")
	if path == "" {
		return os.Stderr
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.WithError(err).WithField("path", path).Warn("Cannot open log file, using stderr")
		return os.Stderr
	}
	return f
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
// It reports whether an exporter should be set up.
func setupOTelEnv() bool {
	apiKey := os.Getenv("HONEYCOMB_RIVERLIGHT_API_KEY")
	if apiKey == "" {
		return false
	}

	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	dataset := os.Getenv("HONEYCOMB_RIVERLIGHT_DATASET")
	if dataset == "" {
		dataset = "riverlight" // default dataset name
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	return true
}
