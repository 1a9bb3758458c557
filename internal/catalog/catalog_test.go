package catalog_test

import (
	"reflect"
	"testing"

	"github.com/arunpandian9159/Booking-agent/internal/catalog"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Package{
		{ID: "p1", Name: "Beach", DestinationName: "Goa, Panaji"},
		{ID: "p2", Name: "Hills", DestinationName: " Munnar ,, Goa"},
		{ID: "p3", Name: "Nowhere", DestinationName: ""},
		{ID: "p1", Name: "Duplicate", DestinationName: "Delhi"},
	})
}

func TestCatalog_Destinations(t *testing.T) {
	got := testCatalog().Destinations()
	want := []string{"Goa", "Munnar", "Panaji"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Destinations() = %v, want %v", got, want)
	}
}

func TestCatalog_Packages(t *testing.T) {
	tests := []struct {
		destination string
		wantIDs     []string
	}{
		{destination: "Goa", wantIDs: []string{"p1", "p2"}},
		{destination: "Munnar", wantIDs: []string{"p2"}},
		{destination: "goa", wantIDs: []string{}},
		{destination: "Delhi", wantIDs: []string{}},
		{destination: "", wantIDs: []string{}},
	}

	c := testCatalog()
	for _, tt := range tests {
		t.Run(tt.destination, func(t *testing.T) {
			ids := []string{}
			for _, p := range c.Packages(tt.destination) {
				ids = append(ids, p.ID)
			}
			if !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Errorf("Packages(%q) = %v, want %v", tt.destination, ids, tt.wantIDs)
			}
		})
	}
}

func TestCatalog_Get(t *testing.T) {
	c := testCatalog()
	p, ok := c.Get("p1")
	if !ok || p.Name != "Beach" {
		t.Errorf("Get(p1) = %+v, %v; first definition should win", p, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should fail")
	}
}

func TestDefault(t *testing.T) {
	c := catalog.Default()
	dests := c.Destinations()
	if len(dests) == 0 {
		t.Fatal("default catalog has no destinations")
	}
	for _, d := range dests {
		pkgs := c.Packages(d)
		if len(pkgs) == 0 {
			t.Errorf("destination %q has no packages", d)
		}
		for _, p := range pkgs {
			if p.City == "" || p.Nights <= 0 {
				t.Errorf("package %q is not priceable: %+v", p.ID, p)
			}
		}
	}
}
