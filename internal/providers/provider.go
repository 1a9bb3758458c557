package providers

import (
	"context"
	"errors"
)

// Query describes one trip to price.
type Query struct {
	Origin      string
	Destination string
	Date        string
	Nights      int
}

// Flight represents a flight offer from a provider.
type Flight struct {
	FlightID string  `json:"flight_id"`
	Carrier  string  `json:"carrier"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	Date     string  `json:"date"`
	Currency string  `json:"currency"`
	Price    float64 `json:"price"`
}

// Hotel represents a hotel offer from a provider. Name may be empty when the
// provider only knows the room.
type Hotel struct {
	HotelID  string  `json:"hotel_id"`
	Name     string  `json:"name"`
	City     string  `json:"city"`
	MealPlan string  `json:"meal_plan"`
	Nights   int     `json:"nights"`
	Currency string  `json:"currency"`
	Price    float64 `json:"price"`
	Rating   float64 `json:"rating"`
}

// Provider defines the interface for flight and hotel providers.
type Provider interface {
	Name() string
	Flights(ctx context.Context, q Query) ([]Flight, error)
	Hotels(ctx context.Context, q Query) ([]Hotel, error)
}

// ErrProviderUnavailable is returned when a provider is unavailable.
var ErrProviderUnavailable = errors.New("provider unavailable")
