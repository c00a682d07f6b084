package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/rtefood/geozones/internal/config"
	"github.com/rtefood/geozones/internal/logger"
	"github.com/rtefood/geozones/internal/metrics"
	"github.com/rtefood/geozones/internal/server"
	"github.com/rtefood/geozones/internal/zones"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config" env:"CONFIG_FILE"    description:"Path to configuration file"`
	Zones      string `short:"z" long:"zones"  env:"ZONES_FILE"     description:"Path to the zones table (.csv or .xlsx)" required:"true"`
	Addr       string `short:"a" long:"addr"   env:"LISTEN_ADDRESS" description:"Address to listen on"                    default:"0.0.0.0"`
	Port       int    `short:"p" long:"port"   env:"LISTEN_PORT"    description:"Port to listen on"                       default:"8080"`
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

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	store, report, err := zones.Load(opts.Zones, cfg.Columns)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load zones")
	}
	if len(report.Skipped) > 0 {
		log.Warn().
			Int("skipped", len(report.Skipped)).
			Msg("Some source rows were dropped at load")
	}

	srvCtx := server.NewServerContext(store)

	// Routes
	mux := http.NewServeMux()
	mux.HandleFunc("/api/check", srvCtx.HandleCheck)
	mux.HandleFunc("/api/restaurants", srvCtx.HandleRestaurants)
	mux.HandleFunc("/api/stats", srvCtx.HandleStats)
	mux.HandleFunc("/api/zones", srvCtx.HandleZones)
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/", srvCtx.HandleIndex)

	handler := server.RequestLogger(mux)

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	log.Info().
		Str("addr", listenAddr).
		Int("zones_loaded", store.Len()).
		Msg("Web server started")

	if err := http.ListenAndServe(listenAddr, handler); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
