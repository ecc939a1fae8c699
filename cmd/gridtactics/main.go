// Package main is the entry point for gridtactics.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/samdwyer/gridtactics/internal/game"
	"github.com/samdwyer/gridtactics/internal/telemetry"
)

func main() {
	// HONEYCOMB_GRIDTACTICS_API_KEY usually comes from .env
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}
	setupOTelEnv()

	cfg, err := game.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	w, closeLog, err := telemetry.OpenLogFile(cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer closeLog()
	logger := telemetry.NewLogger(w, cfg.LogVerbosity)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.Telemetry {
		shutdown, err := telemetry.Setup(ctx, logger)
		if err != nil {
			// the game still works without traces
			logger.Error(err, "telemetry setup failed")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error(err, "telemetry shutdown")
				}
			}()
		}
	} else {
		telemetry.Disable(logger)
	}

	g, err := game.New(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}
	if err := g.Run(ctx); err != nil {
		g.Close()
		log.Fatalf("Game error: %v", err)
	}
}

// setupOTelEnv points the OTLP exporter at Honeycomb using our own env vars.
func setupOTelEnv() {
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// .env may hold an unexpanded reference, so build the header here
	apiKey := os.Getenv("HONEYCOMB_GRIDTACTICS_API_KEY")
	dataset := os.Getenv("HONEYCOMB_GRIDTACTICS_DATASET")
	if dataset == "" {
		dataset = "gridtactics"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
