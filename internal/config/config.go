// Package config handles configuration loading and shared data structures.
package config

import (
	"os"
	"time"

	"github.com/rtefood/geozones/internal/enrich"
	"github.com/rtefood/geozones/internal/geocode"
	"github.com/rtefood/geozones/internal/zones"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Columns   zones.Columns `yaml:"columns"`
	Nominatim Nominatim     `yaml:"nominatim"`
	Enrich    Enrich        `yaml:"enrich"`
}

// Nominatim holds the reverse-geocoding client settings.
type Nominatim struct {
	BaseURL        string `yaml:"base_url,omitempty"`
	UserAgent      string `yaml:"user_agent,omitempty"`
	Zoom           int    `yaml:"zoom,omitempty"`
	TimeoutMS      int    `yaml:"timeout_ms,omitempty"`
	IntervalMS     int    `yaml:"interval_ms,omitempty"`
	CachePrecision int    `yaml:"cache_precision,omitempty"`
}

// Timeout returns the per-lookup timeout as a duration.
func (n *Nominatim) Timeout() time.Duration {
	return time.Duration(n.TimeoutMS) * time.Millisecond
}

// Interval returns the pause enforced between lookups as a duration.
func (n *Nominatim) Interval() time.Duration {
	return time.Duration(n.IntervalMS) * time.Millisecond
}

// Enrich holds the city-enrichment job settings.
type Enrich struct {
	Output    string `yaml:"output,omitempty"`
	BatchSize int    `yaml:"batch_size,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Columns: zones.DefaultColumns(),
		Nominatim: Nominatim{
			BaseURL:        geocode.DefaultBaseURL,
			UserAgent:      geocode.DefaultUserAgent,
			Zoom:           geocode.DefaultZoom,
			TimeoutMS:      10000,
			IntervalMS:     1000,
			CachePrecision: 6,
		},
		Enrich: Enrich{
			BatchSize: enrich.DefaultBatchSize,
		},
	}
}

// Load reads and parses the YAML configuration file from the specified
// path, overriding the defaults field by field. An empty path returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
