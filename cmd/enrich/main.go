package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rtefood/geozones/internal/config"
	"github.com/rtefood/geozones/internal/enrich"
	"github.com/rtefood/geozones/internal/geocode"
	"github.com/rtefood/geozones/internal/logger"
	"github.com/rtefood/geozones/internal/zones"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"   env:"CONFIG_FILE" description:"Path to configuration file"`
	Zones      string `short:"z" long:"zones"    env:"ZONES_FILE"  description:"Path to the zones table (.csv or .xlsx)" required:"true"`
	Output     string `short:"o" long:"out"      env:"OUTPUT_FILE" description:"Output file path, updates the zones file in place if empty"`
	BatchSize  int    `short:"b" long:"batch"    env:"BATCH_SIZE"  description:"Checkpoint every N resolved zones"`
	IntervalMS int    `short:"i" long:"interval" env:"INTERVAL_MS" description:"Pause between lookups in milliseconds"`
}

func main() {
	// Optional .env for local runs
	_ = godotenv.Load()

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Flags override file settings
	if opts.Output != "" {
		cfg.Enrich.Output = opts.Output
	}
	if opts.BatchSize > 0 {
		cfg.Enrich.BatchSize = opts.BatchSize
	}
	if opts.IntervalMS > 0 {
		cfg.Nominatim.IntervalMS = opts.IntervalMS
	}
	if cfg.Enrich.Output == "" {
		cfg.Enrich.Output = opts.Zones
	}

	store, report, err := zones.Load(opts.Zones, cfg.Columns)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load zones")
	}
	if len(report.Skipped) > 0 {
		log.Warn().
			Int("skipped", len(report.Skipped)).
			Msg("Some source rows were dropped at load, they will pass through to the output untouched")
	}

	client := geocode.New(geocode.Options{
		Limiter:        &geocode.IntervalLimiter{Interval: cfg.Nominatim.Interval()},
		BaseURL:        cfg.Nominatim.BaseURL,
		UserAgent:      cfg.Nominatim.UserAgent,
		Zoom:           cfg.Nominatim.Zoom,
		Timeout:        cfg.Nominatim.Timeout(),
		CachePrecision: cfg.Nominatim.CachePrecision,
	})

	// Ctrl+C finishes the current zone, saves and exits
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	job := &enrich.Enricher{
		Store:     store,
		Resolver:  client,
		Output:    cfg.Enrich.Output,
		BatchSize: cfg.Enrich.BatchSize,
	}

	result, err := job.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Enrichment failed")
	}

	if result.Stopped {
		log.Warn().Msg("Enrichment interrupted, progress saved")
		os.Exit(130)
	}
}
