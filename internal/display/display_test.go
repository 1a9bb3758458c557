package display_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/arunpandian9159/Booking-agent/internal/display"
	"github.com/arunpandian9159/Booking-agent/internal/offer"
)

func TestRenderer_Tree(t *testing.T) {
	var buf bytes.Buffer
	r := display.NewRenderer(&buf, true)
	if r.Styled() {
		t.Fatal("renderer for a buffer must not be styled")
	}

	tree := offer.DisplayTree{
		offer.TextBlock("Package: Goa Escape\n  Status: Complete"),
		offer.TitledList("Flight",
			offer.Item{Key: "From", Value: "NYC"},
			offer.Item{Key: "Price", Value: "500"},
		),
		offer.Table(offer.NormalizedTable{
			Headers: []string{"Hotel Name", "Price"},
			Rows:    [][]string{{"Hotel 1", "100"}, {"Ritz", "200"}},
		}),
	}
	out := r.Tree(tree)

	for _, want := range []string{
		"Package: Goa Escape\n  Status: Complete",
		"Flight\n  From: NYC\n  Price: 500",
		"Hotel Name",
		"Hotel 1",
		"Ritz",
		"200",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("plain output contains ANSI escapes:\n%s", out)
	}

	// text, list and table appear in tree order
	if strings.Index(out, "Package:") > strings.Index(out, "Flight") ||
		strings.Index(out, "Flight") > strings.Index(out, "Hotel Name") {
		t.Errorf("nodes out of order:\n%s", out)
	}
}

func TestRenderer_TableRowsOnSeparateLines(t *testing.T) {
	r := display.NewRenderer(&bytes.Buffer{}, true)
	out := r.Tree(offer.DisplayTree{offer.Table(offer.NormalizedTable{
		Headers: []string{"A", "B"},
		Rows:    [][]string{{"1", "2"}, {"3", "4"}},
	})})

	var rowLines int
	for _, ln := range strings.Split(out, "\n") {
		if strings.Contains(ln, "1") && strings.Contains(ln, "2") ||
			strings.Contains(ln, "3") && strings.Contains(ln, "4") {
			rowLines++
		}
	}
	if rowLines != 2 {
		t.Errorf("found %d data lines, want 2:\n%s", rowLines, out)
	}
}

func TestRenderer_Indicators(t *testing.T) {
	r := display.NewRenderer(&bytes.Buffer{}, false)

	if got := r.ErrorText("plan is required"); got != "Error: plan is required" {
		t.Errorf("ErrorText() = %q", got)
	}
	if got := r.ProgressText("Booking..."); got != "Booking..." {
		t.Errorf("ProgressText() = %q", got)
	}
	if r.Width() != 0 {
		t.Errorf("Width() = %d, want 0 for a non-terminal", r.Width())
	}
}

func TestRenderer_EmptyTree(t *testing.T) {
	r := display.NewRenderer(&bytes.Buffer{}, true)
	if got := r.Tree(nil); got != "" {
		t.Errorf("Tree(nil) = %q, want empty", got)
	}
}

func TestRenderer_TableWidth(t *testing.T) {
	wide := offer.NormalizedTable{
		Headers: []string{"Hotel Name", "Meal Plan", "Room Price"},
		Rows: [][]string{
			{"Grand Hyatt Goa Resort and Spa Bambolim", "Continental Plan with dinner", "18500.00 INR"},
		},
	}

	tests := []struct {
		name      string
		width     int
		wantFit   bool
		wantWider bool
	}{
		{name: "unlimited", width: 0, wantWider: true},
		{name: "narrow terminal", width: 40, wantFit: true},
		{name: "wide terminal", width: 200, wantFit: true},
		{name: "negative is unlimited", width: -5, wantWider: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := display.NewRenderer(&bytes.Buffer{}, true)
			r.SetWidth(tt.width)

			out := r.Tree(offer.DisplayTree{offer.Table(wide)})
			got := lipgloss.Width(out)
			if tt.wantFit && got > tt.width {
				t.Errorf("table is %d columns wide, want at most %d:\n%s", got, tt.width, out)
			}
			if tt.wantWider && got <= 40 {
				t.Errorf("table is %d columns wide, want it unclipped:\n%s", got, out)
			}
			if !strings.Contains(out, "Hotel") {
				t.Errorf("output lost the header:\n%s", out)
			}
		})
	}
}
