package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/arunpandian9159/Booking-agent/internal/backend"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...backend.Option) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return backend.NewClient(srv.URL+"/", opts...)
}

func TestClient_Destinations(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/destinations" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"destinations":["Goa","Paris"]}`))
	})

	got, err := c.Destinations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"Goa", "Paris"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Destinations() = %v, want %v", got, want)
	}
}

func TestClient_Packages(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("destination"); got != "New York" {
			t.Errorf("destination = %q, want %q", got, "New York")
		}
		_, _ = w.Write([]byte(`{"packages":[{"id":"p1","name":"Big Apple Weekend"}]}`))
	})

	got, err := c.Packages(context.Background(), "New York")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []backend.Package{{ID: "p1", Name: "Big Apple Weekend"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Packages() = %v, want %v", got, want)
	}
}

func TestClient_PackagesEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"packages":[]}`))
	})

	got, err := c.Packages(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Packages() = %v, want empty", got)
	}
}

func TestClient_Book(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/book" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %q", ct)
		}
		var req backend.BookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		want := backend.BookRequest{Plan: "p1", Customer: "Asha", Date: "2024-05-01"}
		if req != want {
			t.Errorf("body = %+v, want %+v", req, want)
		}
		_, _ = w.Write([]byte(`{"status":"booking_completed","result":"Package: Goa"}`))
	})

	raw, err := c.Book(context.Background(), backend.BookRequest{Plan: "p1", Customer: "Asha", Date: "2024-05-01"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `"Package: Goa"` {
		t.Errorf("result = %s", raw)
	}
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "error member with 400",
			status:      http.StatusBadRequest,
			body:        `{"error":"plan is required"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "plan is required",
		},
		{
			name:        "error member with 200",
			status:      http.StatusOK,
			body:        `{"error":"no availability"}`,
			wantStatus:  http.StatusOK,
			wantMessage: "no availability",
		},
		{
			name:        "bare 500",
			status:      http.StatusInternalServerError,
			body:        `oops`,
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "backend returned status 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Book(context.Background(), backend.BookRequest{Plan: "p1"})
			var apiErr *backend.Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %v, want *backend.Error", err)
			}
			if apiErr.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.wantStatus)
			}
			if apiErr.Error() != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", apiErr.Error(), tt.wantMessage)
			}
		})
	}
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, backend.WithTimeout(20*time.Millisecond))
	defer close(release)

	_, err := c.Destinations(context.Background())
	if !errors.Is(err, backend.ErrTimeout) {
		t.Errorf("error = %v, want ErrTimeout", err)
	}
}

func TestClient_ContextDeadline(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Packages(ctx, "Goa")
	if !errors.Is(err, backend.ErrTimeout) {
		t.Errorf("error = %v, want ErrTimeout", err)
	}
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := backend.NewClient(url)
	_, err := c.Destinations(context.Background())
	if err == nil {
		t.Fatal("expected error for closed server")
	}
	var apiErr *backend.Error
	if errors.As(err, &apiErr) {
		t.Errorf("transport failure reported as backend error: %v", err)
	}
}

func TestClient_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"destinations":`))
	})

	if _, err := c.Destinations(context.Background()); err == nil {
		t.Error("expected parse error")
	}
}
