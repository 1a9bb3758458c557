package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/arunpandian9159/Booking-agent/internal/obs"
	"github.com/arunpandian9159/Booking-agent/internal/providers"
	"github.com/arunpandian9159/Booking-agent/internal/search/types"
)

// Aggregator aggregates offers from multiple providers.
type Aggregator struct {
	providers []providers.Provider
	timeout   time.Duration
	metrics   *obs.Metrics
	logger    *slog.Logger
}

// NewAggregator creates a new Aggregator.
func NewAggregator(providers []providers.Provider, timeout time.Duration, metrics *obs.Metrics, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		providers: providers,
		timeout:   timeout,
		metrics:   metrics,
		logger:    logger,
	}
}

// Search queries all providers concurrently and picks the best offer: the
// cheapest flight and the best-rated hotel, ties going to the cheaper hotel.
// A provider counts as failed if either of its lookups fails.
func (a *Aggregator) Search(ctx context.Context, q providers.Query) (*types.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		flightMap = make(map[string]types.Flight)
		hotelMap  = make(map[string]types.Hotel)
		succeeded int
		failed    int
		errs      []error
	)

	for _, provider := range a.providers {
		wg.Go(func() {
			flights, err := provider.Flights(ctx, q)
			var hotels []providers.Hotel
			if err == nil {
				hotels, err = provider.Hotels(ctx, q)
			}
			if err != nil {
				mu.Lock()
				failed++
				errs = append(errs, err)
				mu.Unlock()
				a.metrics.IncProviderErrors()
				return
			}

			mu.Lock()
			defer mu.Unlock()
			succeeded++
			for _, f := range flights {
				normalized := normalizeFlight(f)
				if normalized == nil {
					continue
				}
				// Dedup by flight_id, keep lowest price
				if existing, ok := flightMap[normalized.FlightID]; !ok || normalized.Price < existing.Price {
					flightMap[normalized.FlightID] = *normalized
				}
			}
			for _, h := range hotels {
				normalized := normalizeHotel(h)
				if normalized == nil {
					continue
				}
				existing, ok := hotelMap[normalized.HotelID]
				if !ok || normalized.Price < existing.Price {
					if ok && normalized.Name == "" {
						normalized.Name = existing.Name
					}
					hotelMap[normalized.HotelID] = *normalized
				}
			}
		})
	}

	wg.Wait()

	if len(errs) > 0 {
		a.logger.Error("provider search errors",
			"destination", q.Destination,
			"failed_count", failed,
			"errors", errs)

		if failed == len(a.providers) {
			return nil, errs[0]
		}
	}

	flights := make([]types.Flight, 0, len(flightMap))
	for _, f := range flightMap {
		flights = append(flights, f)
	}
	sort.Slice(flights, func(i, j int) bool {
		if flights[i].Price != flights[j].Price {
			return flights[i].Price < flights[j].Price
		}
		return flights[i].FlightID < flights[j].FlightID
	})

	hotels := make([]types.Hotel, 0, len(hotelMap))
	for _, h := range hotelMap {
		hotels = append(hotels, h)
	}
	sort.Slice(hotels, func(i, j int) bool {
		if hotels[i].Price != hotels[j].Price {
			return hotels[i].Price < hotels[j].Price
		}
		return hotels[i].HotelID < hotels[j].HotelID
	})

	result := &types.Result{
		Flights:            flights,
		Hotels:             hotels,
		ProvidersTotal:     len(a.providers),
		ProvidersSucceeded: succeeded,
		ProvidersFailed:    failed,
	}
	if len(flights) > 0 {
		best := flights[0]
		result.BestFlight = &best
	}
	result.BestHotel = bestRated(hotels)
	return result, nil
}

// bestRated expects hotels sorted by price, so the first of equally rated
// hotels is the cheaper one.
func bestRated(hotels []types.Hotel) *types.Hotel {
	if len(hotels) == 0 {
		return nil
	}
	best := hotels[0]
	for _, h := range hotels[1:] {
		if h.Rating > best.Rating {
			best = h
		}
	}
	return &best
}

func normalizeFlight(f providers.Flight) *types.Flight {
	// Drop invalid data
	id := strings.TrimSpace(f.FlightID)
	if id == "" || f.Price <= 0 {
		return nil
	}

	return &types.Flight{
		FlightID: id,
		Carrier:  strings.ToUpper(strings.TrimSpace(f.Carrier)),
		From:     strings.ToUpper(strings.TrimSpace(f.From)),
		To:       strings.ToUpper(strings.TrimSpace(f.To)),
		Date:     strings.TrimSpace(f.Date),
		Currency: normalizeCurrency(f.Currency),
		Price:    f.Price,
	}
}

func normalizeHotel(h providers.Hotel) *types.Hotel {
	hotelID := strings.TrimSpace(h.HotelID)
	if hotelID == "" || h.Price <= 0 {
		return nil
	}

	rating := h.Rating
	if rating < 0 || rating > 5 {
		rating = 0
	}

	return &types.Hotel{
		HotelID:  hotelID,
		Name:     strings.TrimSpace(h.Name),
		MealPlan: strings.TrimSpace(h.MealPlan),
		Nights:   h.Nights,
		Currency: normalizeCurrency(h.Currency),
		Price:    h.Price,
		Rating:   rating,
	}
}

func normalizeCurrency(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return "INR"
	}
	return c
}
