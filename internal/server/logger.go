package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rtefood/geozones/internal/metrics"

	"github.com/rs/zerolog/log"
)

// RequestLogger is a middleware to log and count HTTP requests.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := &responseWriterWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, strconv.Itoa(ww.statusCode)).Inc()
		metrics.HTTPRequestDurationMs.Observe(float64(elapsed.Microseconds()) / 1000)

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.statusCode).
			Str("ip", r.RemoteAddr).
			Dur("duration", elapsed).
			Msg("Request processed")
	})
}

type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code before writing to the underlying response writer.
func (w *responseWriterWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}
