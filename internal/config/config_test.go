package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmptyPathGivesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "WKT", cfg.Columns.Boundary)
	assert.Equal(t, "city", cfg.Columns.City)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.Nominatim.BaseURL)
	assert.Equal(t, 10, cfg.Nominatim.Zoom)
	assert.Equal(t, 10, cfg.Enrich.BatchSize)
	assert.Equal(t, time.Second, cfg.Nominatim.Interval())
	assert.Equal(t, 10*time.Second, cfg.Nominatim.Timeout())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
columns:
  city: Город
nominatim:
  interval_ms: 250
enrich:
  output: enriched.xlsx
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Город", cfg.Columns.City)
	assert.Equal(t, 250*time.Millisecond, cfg.Nominatim.Interval())
	assert.Equal(t, "enriched.xlsx", cfg.Enrich.Output)

	// untouched keys keep their defaults
	assert.Equal(t, "WKT", cfg.Columns.Boundary)
	assert.Equal(t, 10, cfg.Enrich.BatchSize)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.Nominatim.BaseURL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("columns: [not, a, mapping"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
