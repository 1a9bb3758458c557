package obs

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
)

// Metrics tracks dev backend counters.
type Metrics struct {
	requests       atomic.Int64
	bookings       atomic.Int64
	cacheHits      atomic.Int64
	providerErrors atomic.Int64
	rateLimited    atomic.Int64
	logger         *slog.Logger
}

// NewMetrics creates a new Metrics instance.
func NewMetrics(logger *slog.Logger) *Metrics {
	return &Metrics{
		logger: logger,
	}
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	m.requests.Add(1)
}

// IncBookings increments the completed bookings counter.
func (m *Metrics) IncBookings() {
	m.bookings.Add(1)
}

// IncCacheHits increments the cache hits counter.
func (m *Metrics) IncCacheHits() {
	m.cacheHits.Add(1)
}

// IncProviderErrors increments the provider errors counter.
func (m *Metrics) IncProviderErrors() {
	m.providerErrors.Add(1)
}

// IncRateLimited increments the rejected-by-rate-limit counter.
func (m *Metrics) IncRateLimited() {
	m.rateLimited.Add(1)
}

// Snapshot returns current metric values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Requests:       m.requests.Load(),
		Bookings:       m.bookings.Load(),
		CacheHits:      m.cacheHits.Load(),
		ProviderErrors: m.providerErrors.Load(),
		RateLimited:    m.rateLimited.Load(),
	}
}

// MetricsSnapshot represents a point-in-time snapshot of metrics.
type MetricsSnapshot struct {
	Requests       int64
	Bookings       int64
	CacheHits      int64
	ProviderErrors int64
	RateLimited    int64
}

// HealthHandler returns a handler for /healthz requests.
func HealthHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write health response", "error", err)
		}
	}
}

// MetricsHandler returns a handler for /metrics requests in Prometheus text format.
func (m *Metrics) MetricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := m.Snapshot()
		counters := []struct {
			name  string
			help  string
			value int64
		}{
			{"requests_total", "Total number of requests", s.Requests},
			{"bookings_total", "Total number of completed bookings", s.Bookings},
			{"cache_hits_total", "Total number of offer cache hits", s.CacheHits},
			{"provider_errors_total", "Total number of provider errors", s.ProviderErrors},
			{"rate_limited_total", "Total number of rate limited requests", s.RateLimited},
		}

		var b strings.Builder
		for _, c := range counters {
			fmt.Fprintf(&b, "# HELP %s %s\n# TYPE %s counter\n%s %d\n", c.name, c.help, c.name, c.name, c.value)
		}

		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(b.String())); err != nil {
			m.logger.Error("failed to write metrics", "error", err)
		}
	}
}
