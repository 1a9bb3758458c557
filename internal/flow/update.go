package flow

import (
	"strings"

	"github.com/arunpandian9159/Booking-agent/internal/backend"
	"github.com/arunpandian9159/Booking-agent/internal/offer"
)

// Event is an input to Update: a user action or a backend reply.
type Event interface {
	isEvent()
}

// DestinationsLoaded carries the reply to LoadDestinations.
type DestinationsLoaded struct {
	Destinations []string
	Err          error
}

// DestinationSelected is the user picking a destination; "" is the placeholder.
type DestinationSelected struct {
	Destination string
}

// PackagesLoaded carries the reply to FetchPackages.
type PackagesLoaded struct {
	Seq      uint64
	Packages []backend.Package
	Err      error
}

// PackageSelected is the user picking a package id; "" is the placeholder.
type PackageSelected struct {
	ID string
}

// NameChanged is an edit of the customer name.
type NameChanged struct {
	Name string
}

// DateChanged is an edit of the travel date.
type DateChanged struct {
	Date string
}

// Submitted is the user pressing the submit button.
type Submitted struct{}

// BookingFinished carries the rendered reply to Book.
type BookingFinished struct {
	Seq  uint64
	Tree offer.DisplayTree
	Err  error
}

func (DestinationsLoaded) isEvent()  {}
func (DestinationSelected) isEvent() {}
func (PackagesLoaded) isEvent()      {}
func (PackageSelected) isEvent()     {}
func (NameChanged) isEvent()         {}
func (DateChanged) isEvent()         {}
func (Submitted) isEvent()           {}
func (BookingFinished) isEvent()     {}

// Command is a side effect requested by Update.
type Command interface {
	isCommand()
}

// LoadDestinations fetches the destination list.
type LoadDestinations struct{}

// FetchPackages fetches the packages of a destination.
type FetchPackages struct {
	Seq         uint64
	Destination string
}

// Book submits a booking.
type Book struct {
	Seq     uint64
	Request backend.BookRequest
}

func (LoadDestinations) isCommand() {}
func (FetchPackages) isCommand()    {}
func (Book) isCommand()             {}

// Init returns the initial state and the command that loads destinations.
func Init() (State, []Command) {
	return State{}, []Command{LoadDestinations{}}
}

// Update applies ev to s. Replies whose sequence number no longer matches the
// pending request are ignored.
func Update(s State, ev Event) (State, []Command) {
	switch ev := ev.(type) {
	case DestinationsLoaded:
		s.DestinationsLoaded = true
		s.Destinations = ev.Destinations
		if ev.Err != nil {
			s.Destinations = nil
			s = fail(s, ev.Err)
		}
		return s, nil

	case DestinationSelected:
		if ev.Destination == s.Destination {
			return s, nil
		}
		s.Destination = ev.Destination
		s = clearPackage(s)
		s.Packages = nil
		s.PackagesLoaded = false
		s.packageSeq = 0
		if ev.Destination == "" {
			return s, nil
		}
		s.seq++
		s.packageSeq = s.seq
		return s, []Command{FetchPackages{Seq: s.seq, Destination: ev.Destination}}

	case PackagesLoaded:
		if ev.Seq == 0 || ev.Seq != s.packageSeq {
			return s, nil
		}
		s.packageSeq = 0
		s.PackagesLoaded = true
		s.Packages = ev.Packages
		if ev.Err != nil {
			s.Packages = nil
			s = fail(s, ev.Err)
		}
		return s, nil

	case PackageSelected:
		if ev.ID == s.Package {
			return s, nil
		}
		if ev.ID != "" && !hasPackage(s.Packages, ev.ID) {
			return s, nil
		}
		s = clearPackage(s)
		s.Package = ev.ID
		return s, nil

	case NameChanged:
		if s.Package == "" {
			return s, nil
		}
		s.Name = ev.Name
		return revalidate(s), nil

	case DateChanged:
		if s.Package == "" {
			return s, nil
		}
		s.Date = ev.Date
		return revalidate(s), nil

	case Submitted:
		if s.bookSeq != 0 {
			return s, nil
		}
		if invalid := validate(s); len(invalid) > 0 {
			s.Invalid = invalid
			return s, nil
		}
		s.Invalid = nil
		s.seq++
		s.bookSeq = s.seq
		s.Result = ResultInProgress
		s.Tree = nil
		s.Err = ""
		return s, []Command{Book{
			Seq: s.seq,
			Request: backend.BookRequest{
				Plan:     s.Package,
				Customer: strings.TrimSpace(s.Name),
				Date:     strings.TrimSpace(s.Date),
			},
		}}

	case BookingFinished:
		if ev.Seq == 0 || ev.Seq != s.bookSeq {
			return s, nil
		}
		s.bookSeq = 0
		if ev.Err != nil {
			return fail(s, ev.Err), nil
		}
		s.Result = ResultReady
		s.Tree = ev.Tree
		s.Err = ""
		return s, nil
	}
	return s, nil
}

// clearPackage resets everything below the destination selector, including
// any booking still in flight.
func clearPackage(s State) State {
	s.Package = ""
	s.Name = ""
	s.Date = ""
	s.Invalid = nil
	s.Result = ResultNone
	s.Tree = nil
	s.Err = ""
	s.bookSeq = 0
	return s
}

func revalidate(s State) State {
	if s.Invalid == nil {
		return s
	}
	s.Invalid = validate(s)
	if len(s.Invalid) == 0 {
		s.Invalid = nil
	}
	return s
}

func fail(s State, err error) State {
	s.Result = ResultFailed
	s.Tree = nil
	s.Err = err.Error()
	return s
}
