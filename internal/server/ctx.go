package server

import (
	"github.com/rtefood/geozones/assets"
	"github.com/rtefood/geozones/internal/zones"

	"github.com/rs/zerolog/log"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Store     *zones.Store
	IndexHTML []byte
}

// NewServerContext initializes the context around a loaded zone store.
func NewServerContext(store *zones.Store) *ServerContext {
	log.Info().
		Str("source", store.Source()).
		Int("zones", store.Len()).
		Msg("Server context initialized")

	return &ServerContext{
		Store:     store,
		IndexHTML: assets.Index,
	}
}
