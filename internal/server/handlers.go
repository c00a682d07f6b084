// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rtefood/geozones/internal/zones"
)

// checkResponse answers a point containment query.
type checkResponse struct {
	Lat    float64     `json:"lat"`
	Lon    float64     `json:"lon"`
	InZone bool        `json:"in_zone"`
	Zones  []zoneEntry `json:"zones"`
}

type zoneEntry struct {
	ID         int               `json:"id"`
	Attributes *zones.Attributes `json:"attributes"`
}

// restaurantsResponse answers a delivery availability query.
type restaurantsResponse struct {
	Lat         float64                 `json:"lat"`
	Lon         float64                 `json:"lon"`
	Count       int                     `json:"count"`
	Restaurants []zones.RestaurantGroup `json:"restaurants"`
}

// HandleCheck serves the zones covering a point.
func (s *ServerContext) HandleCheck(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := coords(w, r)
	if !ok {
		return
	}

	zs, err := s.Store.PointInZones(lat, lon)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	resp := checkResponse{
		Lat:    lat,
		Lon:    lon,
		InZone: len(zs) > 0,
		Zones:  make([]zoneEntry, 0, len(zs)),
	}
	for _, rec := range zs {
		resp.Zones = append(resp.Zones, zoneEntry{ID: rec.ID, Attributes: rec.Attrs})
	}

	writeJSON(w, resp)
}

// HandleRestaurants serves point coverage grouped by restaurant.
func (s *ServerContext) HandleRestaurants(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := coords(w, r)
	if !ok {
		return
	}

	groups, err := s.Store.RestaurantsForPoint(lat, lon)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if groups == nil {
		groups = []zones.RestaurantGroup{}
	}

	writeJSON(w, restaurantsResponse{
		Lat:         lat,
		Lon:         lon,
		Count:       len(groups),
		Restaurants: groups,
	})
}

// HandleStats serves zone counts and attribute distributions.
func (s *ServerContext) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Store.Stats())
}

// HandleZones serves every zone boundary as GeoJSON for map rendering.
func (s *ServerContext) HandleZones(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/geo+json")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(s.Store.GeoJSON())
}

// HandleIndex serves the main HTML application.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && strings.Contains(r.URL.Path, ".") {
		http.NotFound(w, r)
		return
	}

	etag := fmt.Sprintf(`"%x"`, len(s.IndexHTML))

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.IndexHTML)
}

// coords pulls the lat/lon query parameters, answering 400 on bad input.
func coords(w http.ResponseWriter, r *http.Request) (lat, lon float64, ok bool) {
	lat, err := coord(r, "lat")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}

	lon, err = coord(r, "lon")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}

	return lat, lon, true
}

func coord(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing query parameter %q", name)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("query parameter %q is not a number", name)
	}

	return v, nil
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(v)
}

// writeStoreError maps a store failure onto a status: a source with no
// zones answers 503, anything else is internal.
func writeStoreError(w http.ResponseWriter, err error) {
	var srcErr *zones.DataSourceError
	if errors.As(err, &srcErr) {
		writeError(w, http.StatusServiceUnavailable, "no zones loaded")
		return
	}

	writeError(w, http.StatusInternalServerError, "query failed")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
