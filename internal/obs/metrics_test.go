package obs_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/arunpandian9159/Booking-agent/internal/obs"
)

func TestMetricsHandler(t *testing.T) {
	m := obs.NewMetrics(slog.New(slog.DiscardHandler))
	m.IncRequests()
	m.IncRequests()
	m.IncBookings()
	m.IncRateLimited()

	w := httptest.NewRecorder()
	m.MetricsHandler()(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		"# TYPE requests_total counter\nrequests_total 2\n",
		"bookings_total 1\n",
		"cache_hits_total 0\n",
		"rate_limited_total 1\n",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q:\n%s", want, body)
		}
	}
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	obs.HealthHandler(slog.New(slog.DiscardHandler))(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK || w.Body.String() != "OK" {
		t.Errorf("healthz = %d %q", w.Code, w.Body.String())
	}
}
