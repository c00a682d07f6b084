// Package enrich fills the city attribute of loaded zones by reverse
// geocoding each zone centroid, checkpointing progress to the output
// file as it goes.
package enrich

import (
	"context"

	"github.com/rtefood/geozones/internal/metrics"
	"github.com/rtefood/geozones/internal/table"
	"github.com/rtefood/geozones/internal/zones"

	"github.com/rs/zerolog/log"
)

// DefaultBatchSize is the checkpoint cadence when none is configured.
const DefaultBatchSize = 10

// CityResolver turns a coordinate into a city name. An empty name with
// a nil error means the position resolved to no known locality.
type CityResolver interface {
	ReverseCity(ctx context.Context, lat, lon float64) (string, error)
}

// Enricher walks the store and resolves a city for every zone that does
// not have one yet. Zones that already carry a city are left untouched,
// so an interrupted run picks up where the previous one stopped.
type Enricher struct {
	Store     *zones.Store
	Resolver  CityResolver
	Output    string
	BatchSize int
}

// Report sums up one enrichment run.
type Report struct {
	Pending     int  `json:"pending"`
	Processed   int  `json:"processed"`
	Resolved    int  `json:"resolved"`
	Failed      int  `json:"failed"`
	Skipped     int  `json:"skipped"`
	Checkpoints int  `json:"checkpoints"`
	Stopped     bool `json:"stopped"`
}

// Run resolves cities for all pending zones. Progress is persisted to
// the output file every BatchSize resolved zones and once more at the
// end, so a run cut short by an error or a stop signal keeps what it
// already resolved. Lookup failures are counted and retried on the
// next run, they never abort the pass.
func (e *Enricher) Run(ctx context.Context) (*Report, error) {
	if e.Store.Len() == 0 {
		return nil, &zones.DataSourceError{Path: e.Store.Source(), Err: zones.ErrNoZones}
	}
	if !table.Supported(e.Output) {
		return nil, &table.FormatError{Path: e.Output}
	}

	batch := e.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}

	cols := e.Store.Mapping()
	e.Store.EnsureColumn(cols.City)

	report := &Report{}
	for _, rec := range e.Store.Records() {
		if rec.Attrs.Text(cols.City) == "" {
			report.Pending++
		}
	}

	log.Info().
		Str("output", e.Output).
		Int("zones", e.Store.Len()).
		Int("pending", report.Pending).
		Int("batch", batch).
		Msg("Enrichment started")

	for _, rec := range e.Store.Records() {
		if ctx.Err() != nil {
			report.Stopped = true
			log.Warn().Int("processed", report.Processed).Msg("Stop requested, enrichment interrupted")
			break
		}
		if rec.Attrs.Text(cols.City) != "" {
			continue
		}

		report.Processed++

		if rec.Geometry.Empty() {
			report.Skipped++
			log.Warn().Int("zone", rec.ID).Msg("Zone has no usable geometry, skipped")
			continue
		}

		centroid := rec.Geometry.Centroid()
		city, err := e.Resolver.ReverseCity(ctx, centroid.Lat, centroid.Lon)
		if err != nil {
			report.Failed++
			log.Warn().Int("zone", rec.ID).Err(err).Msg("City lookup failed, will retry next run")
			continue
		}
		if city == "" {
			log.Debug().Int("zone", rec.ID).Msg("No city at zone centroid")
			continue
		}

		e.Store.SetAttribute(rec, cols.City, table.String(city))
		report.Resolved++
		metrics.EnrichedTotal.Inc()
		log.Debug().Int("zone", rec.ID).Str("city", city).Msg("Zone enriched")

		// The checkpoint cadence counts resolved zones, not attempts.
		if report.Resolved%batch == 0 {
			if err := zones.Save(e.Output, e.Store.Base(), e.Store); err != nil {
				return report, err
			}
			report.Checkpoints++
			metrics.CheckpointsTotal.Inc()
			log.Info().Int("resolved", report.Resolved).Msg("Checkpoint saved")
		}
	}

	// Final save runs even after a stop so no resolved city is lost.
	if err := zones.Save(e.Output, e.Store.Base(), e.Store); err != nil {
		return report, err
	}

	log.Info().
		Int("pending", report.Pending).
		Int("processed", report.Processed).
		Int("resolved", report.Resolved).
		Int("failed", report.Failed).
		Int("skipped", report.Skipped).
		Bool("stopped", report.Stopped).
		Msg("Enrichment finished")

	return report, nil
}
