package flow

import (
	"slices"

	"github.com/arunpandian9159/Booking-agent/internal/offer"
)

// Labels shown by the form.
const (
	SubmitLabel             = "Book Now"
	SelectDestinationLabel  = "Select a destination"
	NoDestinationsLabel     = "No destinations available"
	SelectPackageLabel      = "Select a package"
	NoPackagesLabel         = "No packages available"
	BookingInProgressLabel  = "Finding the best offer..."
	LoadingDestinationLabel = "Loading destinations..."
	LoadingPackagesLabel    = "Loading packages..."
)

// Option is one entry of a selector. Value "" marks a placeholder.
type Option struct {
	Value    string
	Label    string
	Disabled bool
}

// Selector is a drop-down list.
type Selector struct {
	Visible  bool
	Loading  bool
	Options  []Option
	Selected string
}

// Input is a text field.
type Input struct {
	Value   string
	Invalid bool
}

// ResultView is the result area.
type ResultView struct {
	Status ResultStatus
	Tree   offer.DisplayTree
	Error  string
}

// View is everything the form displays for a State.
type View struct {
	Stage          Stage
	Destination    Selector
	Package        Selector
	DetailsVisible bool
	Name           Input
	Date           Input
	MinDate        string
	SubmitLabel    string
	SubmitEnabled  bool
	PackageInvalid bool
	Result         ResultView
}

// Render derives the view of s.
func Render(s State) View {
	v := View{
		Stage:       s.Stage(),
		MinDate:     MinDate,
		SubmitLabel: SubmitLabel,
		Result: ResultView{
			Status: s.Result,
			Tree:   s.Tree,
			Error:  s.Err,
		},
	}

	v.Destination = Selector{
		Visible:  true,
		Loading:  !s.DestinationsLoaded,
		Selected: s.Destination,
	}
	if s.DestinationsLoaded {
		v.Destination.Options = destinationOptions(s.Destinations)
	}

	if s.Destination != "" {
		v.Package = Selector{
			Visible:  s.PackagesLoaded,
			Loading:  s.packageSeq != 0,
			Selected: s.Package,
		}
		if s.PackagesLoaded {
			v.Package.Options = packageOptions(s)
		}
	}

	v.DetailsVisible = s.Package != ""
	if v.DetailsVisible {
		v.Name = Input{Value: s.Name, Invalid: slices.Contains(s.Invalid, FieldName)}
		v.Date = Input{Value: s.Date, Invalid: slices.Contains(s.Invalid, FieldDate)}
		v.SubmitEnabled = s.bookSeq == 0
	}
	v.PackageInvalid = slices.Contains(s.Invalid, FieldPackage)
	return v
}

func destinationOptions(dests []string) []Option {
	if len(dests) == 0 {
		return []Option{{Label: NoDestinationsLabel, Disabled: true}}
	}
	opts := make([]Option, 0, len(dests)+1)
	opts = append(opts, Option{Label: SelectDestinationLabel})
	for _, d := range dests {
		opts = append(opts, Option{Value: d, Label: d})
	}
	return opts
}

func packageOptions(s State) []Option {
	if len(s.Packages) == 0 {
		return []Option{{Label: NoPackagesLabel, Disabled: true}}
	}
	opts := make([]Option, 0, len(s.Packages)+1)
	opts = append(opts, Option{Label: SelectPackageLabel})
	for _, p := range s.Packages {
		opts = append(opts, Option{Value: p.ID, Label: p.Name})
	}
	return opts
}
