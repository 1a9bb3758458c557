package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/arunpandian9159/Booking-agent/internal/providers"
)

// profile describes how flaky a mock upstream is.
type profile struct {
	minLatency  time.Duration
	jitter      time.Duration
	failureRate float64
}

var profiles = map[string]profile{
	"mock1": {minLatency: 50 * time.Millisecond, jitter: 150 * time.Millisecond, failureRate: 0.10},
	"mock2": {minLatency: 75 * time.Millisecond, jitter: 225 * time.Millisecond, failureRate: 0.15},
	"mock3": {minLatency: 60 * time.Millisecond, jitter: 180 * time.Millisecond, failureRate: 0.10},
}

// Mock serves static offers with simulated latency and failures.
type Mock struct {
	profile profile
	offers  *providers.Static
	logger  *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMock creates a new Mock upstream named name.
func NewMock(name string, p profile, logger *slog.Logger) *Mock {
	return &Mock{
		profile: p,
		offers:  providers.NewStatic(name),
		logger:  logger,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// simulate waits for a random latency and then fails at the profile's rate.
func (m *Mock) simulate(ctx context.Context) error {
	m.mu.Lock()
	latency := m.profile.minLatency + time.Duration(m.rng.Int63n(int64(m.profile.jitter)+1))
	fail := m.rng.Float64() < m.profile.failureRate
	m.mu.Unlock()

	select {
	case <-time.After(latency):
	case <-ctx.Done():
		return context.Cause(ctx)
	}
	if fail {
		return providers.ErrProviderUnavailable
	}
	return nil
}

// FlightsHandler handles /flights?from=&to=&date= requests.
func (m *Mock) FlightsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := providers.Query{
		Origin:      strings.TrimSpace(q.Get("from")),
		Destination: strings.TrimSpace(q.Get("to")),
		Date:        strings.TrimSpace(q.Get("date")),
	}
	if query.Origin == "" || query.Destination == "" || query.Date == "" {
		http.Error(w, "missing required parameters", http.StatusBadRequest)
		return
	}
	if err := m.simulate(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	flights, err := m.offers.Flights(r.Context(), query)
	m.respond(w, flights, err)
}

// HotelsHandler handles /hotels?city=&checkin=&nights= requests.
func (m *Mock) HotelsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	city := strings.TrimSpace(q.Get("city"))
	checkin := strings.TrimSpace(q.Get("checkin"))
	if city == "" || checkin == "" {
		http.Error(w, "missing required parameters", http.StatusBadRequest)
		return
	}
	nights, err := strconv.Atoi(q.Get("nights"))
	if err != nil || nights <= 0 {
		http.Error(w, "invalid nights", http.StatusBadRequest)
		return
	}
	if err := m.simulate(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	hotels, err := m.offers.Hotels(r.Context(), providers.Query{Destination: city, Date: checkin, Nights: nights})
	m.respond(w, hotels, err)
}

func (m *Mock) respond(w http.ResponseWriter, v any, err error) {
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		m.logger.Error("failed to encode response", "error", err)
	}
}

// Routes returns the mux serving the mock upstream API.
func (m *Mock) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /flights", m.FlightsHandler)
	mux.HandleFunc("GET /hotels", m.HotelsHandler)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			m.logger.Error("failed to write healthz response", "error", err)
		}
	})
	return mux
}
