package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/arunpandian9159/Booking-agent/internal/catalog"
	"github.com/arunpandian9159/Booking-agent/internal/config"
	"github.com/arunpandian9159/Booking-agent/internal/middleware"
	"github.com/arunpandian9159/Booking-agent/internal/obs"
	"github.com/arunpandian9159/Booking-agent/internal/providers"
	"github.com/arunpandian9159/Booking-agent/internal/search"
	"github.com/arunpandian9159/Booking-agent/internal/search/cache"
	"github.com/arunpandian9159/Booking-agent/internal/search/ratelimit"
	"github.com/arunpandian9159/Booking-agent/internal/search/types"
)

// Origin is the departure airport of every package.
const Origin = "MAA"

// defaultLeadTime is how far ahead a booking without a date departs.
const defaultLeadTime = 14 * 24 * time.Hour

const maxBodySize = 1 << 20

// Handler handles HTTP requests.
type Handler struct {
	catalog     *catalog.Catalog
	aggregator  *search.Aggregator
	cache       *cache.Cache
	rateLimiter *ratelimit.Limiter
	metrics     *obs.Metrics
	logger      *slog.Logger
	format      string
	now         func() time.Time
}

// New creates a new Handler. format is config.FormatStructured or
// config.FormatText.
func New(
	cat *catalog.Catalog,
	aggregator *search.Aggregator,
	offerCache *cache.Cache,
	rateLimiter *ratelimit.Limiter,
	metrics *obs.Metrics,
	logger *slog.Logger,
	format string,
) *Handler {
	return &Handler{
		catalog:     cat,
		aggregator:  aggregator,
		cache:       offerCache,
		rateLimiter: rateLimiter,
		metrics:     metrics,
		logger:      logger,
		format:      format,
		now:         time.Now,
	}
}

// Routes registers every endpoint on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /destinations", h.DestinationsHandler)
	mux.HandleFunc("GET /packages", h.PackagesHandler)
	mux.HandleFunc("POST /book", h.BookHandler)
}

// DestinationsResponse is the body of GET /destinations.
type DestinationsResponse struct {
	Destinations []string `json:"destinations"`
}

// PackageSummary is one entry of GET /packages.
type PackageSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PackagesResponse is the body of GET /packages.
type PackagesResponse struct {
	Packages []PackageSummary `json:"packages"`
}

// BookRequest is the body of POST /book.
type BookRequest struct {
	Plan     string `json:"plan"`
	Customer string `json:"customer"`
	Date     string `json:"date"`
}

// BookResponse is the body of a successful POST /book. Result is either a
// StructuredResult or a text report.
type BookResponse struct {
	Status string `json:"status"`
	Result any    `json:"result"`
}

// DestinationsHandler handles /destinations requests.
func (h *Handler) DestinationsHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.IncRequests()
	writeJSON(w, h.logger, http.StatusOK, DestinationsResponse{Destinations: h.catalog.Destinations()})
}

// PackagesHandler handles /packages requests. An unknown or missing
// destination yields an empty list.
func (h *Handler) PackagesHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.IncRequests()
	destination := r.URL.Query().Get("destination")

	pkgs := h.catalog.Packages(destination)
	resp := PackagesResponse{Packages: make([]PackageSummary, 0, len(pkgs))}
	for _, p := range pkgs {
		resp.Packages = append(resp.Packages, PackageSummary{ID: p.ID, Name: p.Name})
	}
	writeJSON(w, h.logger, http.StatusOK, resp)
}

// BookHandler handles /book requests.
func (h *Handler) BookHandler(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	h.metrics.IncRequests()
	requestID := middleware.RequestID(r.Context())

	ip := ExtractIP(r)
	if !h.rateLimiter.Allow(ip) {
		h.metrics.IncRateLimited()
		h.logger.Warn("rate limit exceeded", "request_id", requestID, "ip", ip)
		if d := h.rateLimiter.RetryAfter(ip); d > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(d.Round(time.Second).Seconds())))
		}
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(h.rateLimiter.Remaining(ip)))

	var body BookRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&body); err != nil {
		h.logger.Debug("invalid request body", "request_id", requestID, "error", err, "ip", ip)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	params, err := ParseBookRequest(body, h.now())
	if err != nil {
		h.logger.Debug("invalid booking", "request_id", requestID, "error", err, "ip", ip)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pkg, ok := h.catalog.Get(params.Plan)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("package %q not found", params.Plan))
		return
	}

	q := providers.Query{
		Origin:      Origin,
		Destination: pkg.City,
		Date:        params.Date,
		Nights:      pkg.Nights,
	}
	result, cacheHit, err := h.cache.GetOrFetch(r.Context(), h.cache.Key(q), func(ctx context.Context) (*types.Result, error) {
		return h.aggregator.Search(ctx, q)
	})
	if err != nil {
		h.logger.Error("search failed",
			"request_id", requestID,
			"error", err,
			"plan", pkg.ID,
			"date", params.Date,
			"ip", ip,
		)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	if cacheHit {
		h.metrics.IncCacheHits()
	}

	var out any
	if sr, ok := Structured(result); ok && h.format == config.FormatStructured {
		out = sr
	} else {
		out = TextReport(pkg, params, result)
	}

	h.metrics.IncBookings()
	h.logger.Info("booking completed",
		"request_id", requestID,
		"plan", pkg.ID,
		"date", params.Date,
		"cache_hit", cacheHit,
		"providers_failed", result.ProvidersFailed,
		"duration_ms", time.Since(startTime).Milliseconds(),
	)
	writeJSON(w, h.logger, http.StatusOK, BookResponse{Status: "booking_completed", Result: out})
}

// BookParams holds a validated booking.
type BookParams struct {
	Plan     string
	Customer string
	Date     string
}

// ParseBookRequest validates body. An empty date departs two weeks after today.
func ParseBookRequest(body BookRequest, today time.Time) (*BookParams, error) {
	plan := strings.TrimSpace(body.Plan)
	if plan == "" {
		return nil, errors.New("plan is required")
	}

	date := strings.TrimSpace(body.Date)
	if date == "" {
		date = today.Add(defaultLeadTime).Format(time.DateOnly)
	} else if _, err := time.Parse(time.DateOnly, date); err != nil {
		return nil, errors.New("date must be in YYYY-MM-DD format")
	}

	return &BookParams{
		Plan:     plan,
		Customer: strings.TrimSpace(body.Customer),
		Date:     date,
	}, nil
}

// ExtractIP extracts the client IP from the request.
// Checks X-Forwarded-For, X-Real-IP, then falls back to RemoteAddr.
func ExtractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Can't change status after WriteHeader, just log
		logger.Error("failed to encode response", "error", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
