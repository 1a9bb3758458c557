package providers

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
)

// Static serves deterministic offers derived from the provider name and the
// destination. It backs the dev server when no upstream is configured and the
// mock upstream binary.
type Static struct {
	name string
}

// NewStatic creates a new Static provider.
func NewStatic(name string) *Static {
	return &Static{name: name}
}

// Name returns the provider name.
func (s *Static) Name() string {
	return s.name
}

var carriers = []string{"6E", "AI", "UK", "SG"}

// Flights returns three flights for q, priced from a per-route seed.
func (s *Static) Flights(ctx context.Context, q Query) ([]Flight, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	to := strings.ToUpper(strings.TrimSpace(q.Destination))
	if to == "" {
		return nil, nil
	}
	from := strings.ToUpper(strings.TrimSpace(q.Origin))
	seed := s.seed(from + to)

	flights := make([]Flight, 0, 3)
	for i := range 3 {
		flights = append(flights, Flight{
			FlightID: fmt.Sprintf("%s-%s%s-%d", s.name, from, to, i+1),
			Carrier:  carriers[(seed+uint64(i))%uint64(len(carriers))],
			From:     from,
			To:       to,
			Date:     q.Date,
			Currency: "INR",
			Price:    round2(3000 + float64((seed>>uint(i*4))%4000)),
		})
	}
	return flights, nil
}

var hotelTemplates = []struct {
	suffix   string
	name     string
	mealPlan string
	perNight float64
	rating   float64
}{
	{"SEA", "Sea View Resort", "Breakfast", 4200, 4.5},
	{"HER", "Heritage Inn", "MAP", 3100, 4.2},
	{"RM", "", "CP", 1800, 3.9},
	{"BUD", "Budget Stay", "EP", 1200, 3.4},
}

// Hotels returns a fixed set of hotels in q.Destination. One of them has no
// name, as upstream room-only listings do.
func (s *Static) Hotels(ctx context.Context, q Query) ([]Hotel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	city := strings.ToUpper(strings.TrimSpace(q.Destination))
	if city == "" {
		return nil, nil
	}
	nights := max(q.Nights, 1)
	// +/- 10% per provider so aggregation has something to choose from
	factor := 0.9 + float64(s.seed(city)%21)/100

	hotels := make([]Hotel, 0, len(hotelTemplates))
	for _, t := range hotelTemplates {
		hotels = append(hotels, Hotel{
			HotelID:  city + "-" + t.suffix,
			Name:     t.name,
			City:     city,
			MealPlan: t.mealPlan,
			Nights:   nights,
			Currency: "INR",
			Price:    round2(t.perNight * factor * float64(nights)),
			Rating:   t.rating,
		})
	}
	return hotels, nil
}

func (s *Static) seed(key string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s.name + "|" + key))
	return h.Sum64()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
