package types

// Result represents aggregated offers for one trip.
type Result struct {
	Flights            []Flight `json:"flights"`
	Hotels             []Hotel  `json:"hotels"`
	BestFlight         *Flight  `json:"best_flight,omitempty"`
	BestHotel          *Hotel   `json:"best_hotel,omitempty"`
	ProvidersTotal     int      `json:"-"`
	ProvidersSucceeded int      `json:"-"`
	ProvidersFailed    int      `json:"-"`
}

// Flight represents a normalized flight offer.
type Flight struct {
	FlightID string  `json:"flight_id"`
	Carrier  string  `json:"carrier"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	Date     string  `json:"date"`
	Currency string  `json:"currency"`
	Price    float64 `json:"price"`
}

// Hotel represents a normalized hotel offer. Name is empty when unknown.
type Hotel struct {
	HotelID  string  `json:"hotel_id"`
	Name     string  `json:"name"`
	MealPlan string  `json:"meal_plan"`
	Nights   int     `json:"nights"`
	Currency string  `json:"currency"`
	Price    float64 `json:"price"`
	Rating   float64 `json:"rating"`
}
