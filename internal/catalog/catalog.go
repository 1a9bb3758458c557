// Package catalog holds the travel packages offered by the dev backend.
package catalog

import (
	"sort"
	"strings"
)

// Package is a bookable trip. DestinationName lists the destinations the
// package covers, comma-separated; City is the IATA code used for pricing.
type Package struct {
	ID              string
	Name            string
	DestinationName string
	City            string
	Nights          int
}

// Destinations splits DestinationName into trimmed, non-empty names.
func (p Package) Destinations() []string {
	var out []string
	for _, d := range strings.Split(p.DestinationName, ",") {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}

// Catalog is an immutable, ordered set of packages.
type Catalog struct {
	packages []Package
	byID     map[string]Package
}

// New creates a Catalog. Later packages with a duplicate ID are ignored.
func New(pkgs []Package) *Catalog {
	c := &Catalog{byID: make(map[string]Package, len(pkgs))}
	for _, p := range pkgs {
		if _, ok := c.byID[p.ID]; ok || p.ID == "" {
			continue
		}
		c.byID[p.ID] = p
		c.packages = append(c.packages, p)
	}
	return c
}

// Destinations returns the sorted union of every package's destinations.
func (c *Catalog) Destinations() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range c.packages {
		for _, d := range p.Destinations() {
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out
}

// Packages returns the packages that list destination exactly.
func (c *Catalog) Packages(destination string) []Package {
	out := make([]Package, 0)
	for _, p := range c.packages {
		for _, d := range p.Destinations() {
			if d == destination {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// Get looks up a package by ID.
func (c *Catalog) Get(id string) (Package, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Default returns the built-in sample catalog.
func Default() *Catalog {
	return New([]Package{
		{ID: "goa-beach-4n", Name: "Goa Beach Escape", DestinationName: "Goa", City: "GOI", Nights: 4},
		{ID: "goa-heritage-3n", Name: "Old Goa Heritage Trail", DestinationName: "Goa, Panaji", City: "GOI", Nights: 3},
		{ID: "kerala-backwaters-5n", Name: "Kerala Backwaters", DestinationName: "Kochi, Alleppey, Munnar", City: "COK", Nights: 5},
		{ID: "munnar-hills-3n", Name: "Munnar Tea Hills", DestinationName: "Munnar", City: "COK", Nights: 3},
		{ID: "andaman-islands-6n", Name: "Andaman Island Hopper", DestinationName: "Port Blair, Havelock", City: "IXZ", Nights: 6},
		{ID: "kashmir-valley-5n", Name: "Kashmir Valley Retreat", DestinationName: "Srinagar, Gulmarg, Pahalgam", City: "SXR", Nights: 5},
		{ID: "rajasthan-forts-6n", Name: "Royal Rajasthan Forts", DestinationName: "Jaipur, Udaipur, Jodhpur", City: "JAI", Nights: 6},
		{ID: "manali-snow-4n", Name: "Manali Snow Getaway", DestinationName: "Manali", City: "KUU", Nights: 4},
		{ID: "sikkim-monasteries-5n", Name: "Sikkim Monasteries", DestinationName: "Gangtok, Pelling", City: "IXB", Nights: 5},
	})
}
