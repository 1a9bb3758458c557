package app_test

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arunpandian9159/Booking-agent/internal/app"
	"github.com/arunpandian9159/Booking-agent/internal/backend"
	"github.com/arunpandian9159/Booking-agent/internal/config"
	"github.com/arunpandian9159/Booking-agent/internal/flow"
	"github.com/arunpandian9159/Booking-agent/internal/offer"
)

func testConfig(format string) config.Server {
	return config.Server{
		Port:            "0",
		ResultFormat:    format,
		ProviderTimeout: 2 * time.Second,
		RateLimit:       100,
		CacheTTL:        time.Minute,
		LogLevel:        "info",
	}
}

// The CLI flow against the real dev backend, for both result formats.
func TestEndToEnd(t *testing.T) {
	tests := []struct {
		format   string
		wantKind offer.NodeKind
	}{
		{format: config.FormatStructured, wantKind: offer.NodeTitledList},
		{format: config.FormatText, wantKind: offer.NodeText},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			server := app.New(testConfig(tt.format), slog.New(slog.DiscardHandler))
			defer server.Close()
			srv := httptest.NewServer(server.Handler)
			defer srv.Close()

			ctrl := flow.NewController(backend.NewClient(srv.URL), nil, nil)
			ctx := context.Background()

			s := ctrl.Start(ctx)
			if len(s.Destinations) == 0 {
				t.Fatalf("no destinations: %s", s.Err)
			}
			s = ctrl.Dispatch(ctx, s, flow.DestinationSelected{Destination: "Goa"})
			if len(s.Packages) == 0 {
				t.Fatalf("no packages for Goa: %s", s.Err)
			}
			s = ctrl.Dispatch(ctx, s, flow.PackageSelected{ID: s.Packages[0].ID})
			s = ctrl.Dispatch(ctx, s, flow.NameChanged{Name: "Asha"})
			s = ctrl.Dispatch(ctx, s, flow.DateChanged{Date: "2024-05-01"})
			s = ctrl.Dispatch(ctx, s, flow.Submitted{})

			if s.Result != flow.ResultReady {
				t.Fatalf("result = %v, err = %q", s.Result, s.Err)
			}
			if len(s.Tree) == 0 || s.Tree[0].Kind != tt.wantKind {
				t.Errorf("tree = %#v", s.Tree)
			}
		})
	}
}

func TestEndToEnd_MissingPlan(t *testing.T) {
	server := app.New(testConfig(config.FormatText), slog.New(slog.DiscardHandler))
	defer server.Close()
	srv := httptest.NewServer(server.Handler)
	defer srv.Close()

	_, err := backend.NewClient(srv.URL).Book(context.Background(), backend.BookRequest{})
	if err == nil || err.Error() != "plan is required" {
		t.Errorf("error = %v, want plan is required", err)
	}
}
