package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arunpandian9159/Booking-agent/internal/catalog"
	"github.com/arunpandian9159/Booking-agent/internal/search/types"
)

// FlightSummary is the flight half of a structured result.
type FlightSummary struct {
	From  string  `json:"from"`
	To    string  `json:"to"`
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// HotelSummary is the hotel half of a structured result. Name is omitted
// when the provider did not supply one.
type HotelSummary struct {
	Name   string  `json:"name,omitempty"`
	Price  float64 `json:"price"`
	Rating float64 `json:"rating"`
}

// StructuredResult is the best offer as an object.
type StructuredResult struct {
	Flight *FlightSummary `json:"flight,omitempty"`
	Hotel  *HotelSummary  `json:"hotel,omitempty"`
}

// Structured builds the best-offer object. It reports false when the result
// holds neither a flight nor a hotel.
func Structured(r *types.Result) (StructuredResult, bool) {
	var sr StructuredResult
	if f := r.BestFlight; f != nil {
		sr.Flight = &FlightSummary{From: f.From, To: f.To, Date: f.Date, Price: f.Price}
	}
	if h := r.BestHotel; h != nil {
		sr.Hotel = &HotelSummary{Name: h.Name, Price: h.Price, Rating: h.Rating}
	}
	return sr, sr.Flight != nil || sr.Hotel != nil
}

// TextReport renders the booking as a plain-text report with markdown tables.
// Hotels without a known name get an empty name cell.
func TextReport(pkg catalog.Package, params *BookParams, r *types.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Package: %s\n", pkg.Name)
	if params.Customer != "" {
		fmt.Fprintf(&b, "Customer: %s\n", params.Customer)
	}
	fmt.Fprintf(&b, "Departure: %s\n", params.Date)
	b.WriteString("Status: Complete\n")

	fmt.Fprintf(&b, "\nFlight Details (%s to %s)\n", Origin, pkg.City)
	if len(r.Flights) == 0 {
		b.WriteString("No flights found.\n")
	} else {
		writeRow(&b, "From", "To", "Date", "Carrier", "Price")
		b.WriteString("|------|----|------|---------|-------|\n")
		for _, f := range r.Flights {
			writeRow(&b, f.From, f.To, f.Date, f.Carrier, money(f.Price, f.Currency))
		}
	}

	b.WriteString("\nHotel Details\n")
	if len(r.Hotels) == 0 {
		b.WriteString("No hotels found.\n")
	} else {
		writeRow(&b, "Hotel Name", "Meal Plan", "Nights", "Room Price")
		b.WriteString("|------------|-----------|--------|------------|\n")
		for _, h := range r.Hotels {
			nights := ""
			if h.Nights > 0 {
				nights = strconv.Itoa(h.Nights)
			}
			writeRow(&b, h.Name, h.MealPlan, nights, money(h.Price, h.Currency))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeRow(b *strings.Builder, cells ...string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(strings.ReplaceAll(c, "|", `\|`))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

func money(amount float64, currency string) string {
	return strconv.FormatFloat(amount, 'f', 2, 64) + " " + currency
}
