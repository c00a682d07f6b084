package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rtefood/geozones/internal/config"
	"github.com/rtefood/geozones/internal/logger"
	"github.com/rtefood/geozones/internal/zones"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string   `short:"c" long:"config" env:"CONFIG_FILE" description:"Path to configuration file"`
	Zones      string   `short:"z" long:"zones"  env:"ZONES_FILE"  description:"Path to the zones table (.csv or .xlsx)" required:"true"`
	Lat        *float64 `long:"lat" description:"Latitude of the point to check"`
	Lon        *float64 `long:"lon" description:"Longitude of the point to check"`
	Stats      bool     `short:"s" long:"stats"  description:"Print store statistics instead of a point check"`
	Format     string   `short:"f" long:"format" description:"Output format" choice:"text" choice:"json" default:"text"`
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

	if !opts.Stats && (opts.Lat == nil || opts.Lon == nil) {
		fmt.Fprintln(os.Stderr, "Error: --lat and --lon are required unless --stats is set")
		os.Exit(1)
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	store, _, err := zones.Load(opts.Zones, cfg.Columns)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading zones: %v\n", err)
		os.Exit(1)
	}

	if opts.Stats {
		printStats(store, opts.Format)
		return
	}

	printCheck(store, *opts.Lat, *opts.Lon, opts.Format)
}

func printStats(store *zones.Store, format string) {
	stats := store.Stats()

	if format == "json" {
		writeJSON(stats)
		return
	}

	fmt.Printf("Zones:       %d\n", stats.TotalZones)
	fmt.Printf("Partners:    %d\n", stats.DistinctPartners)
	fmt.Printf("Restaurants: %d\n", stats.DistinctRestaurants)
	fmt.Printf("Cities:      %d\n", stats.DistinctCities)

	if len(stats.PartnerDistribution) > 0 {
		fmt.Println("Zones per partner:")
		for _, e := range stats.PartnerDistribution {
			fmt.Printf("  %s: %d\n", e.Name, e.Count)
		}
	}
	if len(stats.CityDistribution) > 0 {
		fmt.Println("Zones per city:")
		for _, e := range stats.CityDistribution {
			fmt.Printf("  %s: %d\n", e.Name, e.Count)
		}
	}
}

func printCheck(store *zones.Store, lat, lon float64, format string) {
	matches, err := store.PointInZones(lat, lon)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error querying zones: %v\n", err)
		os.Exit(1)
	}
	groups := zones.GroupByRestaurant(matches, store.Mapping())

	if format == "json" {
		if matches == nil {
			matches = []*zones.Record{}
		}
		if groups == nil {
			groups = []zones.RestaurantGroup{}
		}
		writeJSON(map[string]interface{}{
			"lat":         lat,
			"lon":         lon,
			"in_zone":     len(matches) > 0,
			"zones":       matches,
			"count":       len(groups),
			"restaurants": groups,
		})
		return
	}

	if len(matches) == 0 {
		fmt.Printf("Point (%v, %v) is outside all zones\n", lat, lon)
		return
	}

	cols := store.Mapping()
	fmt.Printf("Point (%v, %v) is inside %d zone(s)\n", lat, lon, len(matches))
	for _, rec := range matches {
		name := rec.Attrs.Text(cols.ZoneName)
		if name == "" {
			name = "-"
		}
		partner := rec.Attrs.Text(cols.Partner)
		if partner == "" {
			partner = "-"
		}
		fmt.Printf("  #%d %s (%s)\n", rec.ID, name, partner)
	}

	fmt.Printf("Restaurants delivering here: %d\n", len(groups))
	for _, g := range groups {
		partner := g.Partner
		if partner == "" {
			partner = "-"
		}
		fmt.Printf("  %s (%s) via %d zone(s)\n", g.RestaurantID, partner, len(g.Zones))
	}
}

func writeJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling data: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(data))
}
