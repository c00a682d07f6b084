// Package geocode resolves coordinates to city names through a
// Nominatim-compatible reverse geocoding endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rtefood/geozones/internal/metrics"

	"github.com/rs/zerolog/log"
)

// Defaults applied by New when the corresponding option is unset.
const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "geozones/1.0 (+https://github.com/rtefood/geozones)"
	DefaultZoom      = 10
	DefaultTimeout   = 10 * time.Second
)

// LookupError reports a failed reverse geocoding call. Every failure
// kind lands here: transport errors, unexpected statuses and bodies
// that do not decode.
type LookupError struct {
	Err    error
	Lat    float64
	Lon    float64
	Status int
}

func (e *LookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("reverse geocode (%.6f, %.6f): %v", e.Lat, e.Lon, e.Err)
	}

	return fmt.Sprintf("reverse geocode (%.6f, %.6f): status %d", e.Lat, e.Lon, e.Status)
}

func (e *LookupError) Unwrap() error { return e.Err }

// Options configures a Client.
type Options struct {
	Limiter        Limiter
	BaseURL        string
	UserAgent      string
	Zoom           int
	Timeout        time.Duration
	CachePrecision int
}

// Client queries a Nominatim-compatible reverse endpoint. Calls are
// paced by the limiter strictly after each round trip completes, so
// the first call of a run is never delayed.
type Client struct {
	http      *http.Client
	limiter   Limiter
	cache     *Cache
	baseURL   string
	userAgent string
	zoom      int
}

// New builds a client, filling unset options with the package
// defaults. A nil limiter disables pacing, cache precision 0 disables
// lookup memoization.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Zoom <= 0 {
		opts.Zoom = DefaultZoom
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Limiter == nil {
		opts.Limiter = NopLimiter{}
	}

	return &Client{
		http:      &http.Client{Timeout: opts.Timeout},
		limiter:   opts.Limiter,
		cache:     NewCache(opts.CachePrecision),
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		userAgent: opts.UserAgent,
		zoom:      opts.Zoom,
	}
}

// ReverseCity resolves (lat, lon) to a locality name. The first
// non-empty of city, town, village, municipality and county wins. An
// empty name with a nil error means the position resolved to nothing;
// a *LookupError means the call itself failed and may be retried.
func (c *Client) ReverseCity(ctx context.Context, lat, lon float64) (string, error) {
	if city, ok := c.cache.Get(lat, lon); ok {
		metrics.LookupCacheHitsTotal.Inc()
		return city, nil
	}

	start := time.Now()
	metrics.LookupsTotal.Inc()

	city, err := c.lookup(ctx, lat, lon)

	metrics.LookupDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	// Ignoring error as an interrupted pause does not invalidate the
	// finished lookup
	_ = c.limiter.Wait(ctx)

	if err != nil {
		metrics.LookupFailuresTotal.Inc()
		return "", err
	}

	if city != "" {
		c.cache.Put(lat, lon, city)
	}
	log.Trace().Float64("lat", lat).Float64("lon", lon).Str("city", city).Msg("Reverse geocoded")

	return city, nil
}

func (c *Client) lookup(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("zoom", strconv.Itoa(c.zoom))
	q.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", &LookupError{Lat: lat, Lon: lon, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &LookupError{Lat: lat, Lon: lon, Err: err}
	}
	// Explicitly ignore close error as it's a read-only operation
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &LookupError{Lat: lat, Lon: lon, Status: resp.StatusCode}
	}

	var body reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &LookupError{Lat: lat, Lon: lon, Err: err}
	}

	return body.Address.locality(), nil
}

type reverseResponse struct {
	Address reverseAddress `json:"address"`
}

type reverseAddress struct {
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	Municipality string `json:"municipality"`
	County       string `json:"county"`
}

// locality picks the most specific place name present.
func (a reverseAddress) locality() string {
	for _, v := range []string{a.City, a.Town, a.Village, a.Municipality, a.County} {
		if v != "" {
			return v
		}
	}

	return ""
}
