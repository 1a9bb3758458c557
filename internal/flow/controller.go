package flow

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/arunpandian9159/Booking-agent/internal/backend"
	"github.com/arunpandian9159/Booking-agent/internal/offer"
)

// Backend is the booking API the controller talks to.
type Backend interface {
	Destinations(ctx context.Context) ([]string, error)
	Packages(ctx context.Context, destination string) ([]backend.Package, error)
	Book(ctx context.Context, req backend.BookRequest) (json.RawMessage, error)
}

// Controller executes commands against a Backend and turns the replies into events.
type Controller struct {
	backend  Backend
	renderer *offer.Renderer
	logger   *slog.Logger
}

// NewController creates a new Controller.
func NewController(b Backend, renderer *offer.Renderer, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if renderer == nil {
		renderer = offer.NewRenderer(logger)
	}
	return &Controller{
		backend:  b,
		renderer: renderer,
		logger:   logger,
	}
}

// Execute performs cmd and returns the event carrying its outcome.
func (c *Controller) Execute(ctx context.Context, cmd Command) Event {
	switch cmd := cmd.(type) {
	case LoadDestinations:
		dests, err := c.backend.Destinations(ctx)
		if err != nil {
			c.logger.Warn("failed to load destinations", "error", err)
		}
		return DestinationsLoaded{Destinations: dests, Err: err}

	case FetchPackages:
		pkgs, err := c.backend.Packages(ctx, cmd.Destination)
		if err != nil {
			c.logger.Warn("failed to load packages",
				"destination", cmd.Destination,
				"error", err)
		}
		return PackagesLoaded{Seq: cmd.Seq, Packages: pkgs, Err: err}

	case Book:
		raw, err := c.backend.Book(ctx, cmd.Request)
		if err != nil {
			c.logger.Warn("booking failed",
				"plan", cmd.Request.Plan,
				"error", err)
			return BookingFinished{Seq: cmd.Seq, Err: err}
		}
		c.logger.Info("booking completed", "plan", cmd.Request.Plan)
		return BookingFinished{Seq: cmd.Seq, Tree: c.renderer.RenderRaw(raw)}
	}
	return nil
}

// Start returns the initial state with destinations loaded.
func (c *Controller) Start(ctx context.Context) State {
	s, cmds := Init()
	return c.run(ctx, s, cmds)
}

// Dispatch applies ev and synchronously executes every command it triggers
// until the flow is quiescent.
func (c *Controller) Dispatch(ctx context.Context, s State, ev Event) State {
	s, cmds := Update(s, ev)
	return c.run(ctx, s, cmds)
}

func (c *Controller) run(ctx context.Context, s State, cmds []Command) State {
	for len(cmds) > 0 {
		cmd := cmds[0]
		cmds = cmds[1:]
		ev := c.Execute(ctx, cmd)
		if ev == nil {
			continue
		}
		var next []Command
		s, next = Update(s, ev)
		cmds = append(cmds, next...)
	}
	return s
}
