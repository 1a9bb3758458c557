package main

import (
	"bytes"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	appserver "github.com/arunpandian9159/Booking-agent/internal/app"
	"github.com/arunpandian9159/Booking-agent/internal/config"
)

// isolate keeps config files and BOOKING_ variables of the host out of the test.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	for _, key := range []string{"BOOKING_BACKEND_URL", "BOOKING_TIMEOUT", "BOOKING_LOG_LEVEL", "BOOKING_LOG_FILE", "BOOKING_PLAIN"} {
		t.Setenv(key, "")
	}
}

func devBackend(t *testing.T, format string) string {
	t.Helper()
	server := appserver.New(config.Server{
		Port:            "0",
		ResultFormat:    format,
		ProviderTimeout: 2 * time.Second,
		RateLimit:       100,
		CacheTTL:        time.Minute,
		LogLevel:        "info",
	}, slog.New(slog.DiscardHandler))
	t.Cleanup(server.Close)
	srv := httptest.NewServer(server.Handler)
	t.Cleanup(srv.Close)
	return srv.URL
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	a := &app{}
	defer a.close()
	root := rootCmd(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--plain", "--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestDestinationsAndPackages(t *testing.T) {
	isolate(t)
	url := devBackend(t, config.FormatText)

	out, err := execute(t, "", "--backend", url, "destinations")
	if err != nil {
		t.Fatalf("destinations: %v", err)
	}
	if !strings.Contains(out, "Goa\n") {
		t.Errorf("destinations output = %q", out)
	}

	out, err = execute(t, "", "--backend", url, "packages", "Goa")
	if err != nil {
		t.Fatalf("packages: %v", err)
	}
	if !strings.Contains(out, "goa-beach-4n\tGoa Beach Escape") {
		t.Errorf("packages output = %q", out)
	}

	out, err = execute(t, "", "--backend", url, "packages", "Atlantis")
	if err != nil {
		t.Fatalf("packages: %v", err)
	}
	if strings.TrimSpace(out) != "No packages available" {
		t.Errorf("packages output = %q", out)
	}
}

func TestBook(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		args    []string
		want    []string
		wantErr string
	}{
		{
			name:   "text report",
			format: config.FormatText,
			args:   []string{"--destination", "Goa", "--package", "Goa Beach Escape", "--name", "Asha", "--date", "2024-05-01"},
			want:   []string{"Package: Goa Beach Escape", "Customer: Asha", "Hotel Name", "Meal Plan"},
		},
		{
			name:   "structured",
			format: config.FormatStructured,
			args:   []string{"--destination", "Goa", "--package", "goa-beach-4n", "--name", "Asha", "--date", "2024-05-01"},
			want:   []string{"Flight", "From: MAA", "To: GOI", "Hotel"},
		},
		{
			name:    "missing name",
			format:  config.FormatText,
			args:    []string{"--destination", "Goa", "--package", "goa-beach-4n", "--date", "2024-05-01"},
			wantErr: "missing or invalid: name",
		},
		{
			name:    "date too early",
			format:  config.FormatText,
			args:    []string{"--destination", "Goa", "--package", "goa-beach-4n", "--name", "Asha", "--date", "2023-12-31"},
			wantErr: "missing or invalid: date",
		},
		{
			name:    "unknown package",
			format:  config.FormatText,
			args:    []string{"--destination", "Goa", "--package", "nope", "--name", "Asha", "--date", "2024-05-01"},
			wantErr: `package "nope" not available for Goa`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			url := devBackend(t, tt.format)

			args := append([]string{"--backend", url, "book"}, tt.args...)
			out, err := execute(t, "", args...)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("book: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestBook_BackendDown(t *testing.T) {
	isolate(t)
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	_, err := execute(t, "", "--backend", url, "--timeout", "1s",
		"book", "--destination", "Goa", "--package", "goa-beach-4n", "--name", "Asha", "--date", "2024-05-01")
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestRender(t *testing.T) {
	const hotels = "| Hotel Name | Meal Plan |\n|---|---|\n|  | CP |\n| Ritz | MAP |"

	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr string
	}{
		{
			name:  "book response with text result",
			input: `{"status":"booking_completed","result":"` + strings.ReplaceAll(hotels, "\n", `\n`) + `"}`,
			want:  []string{"Hotel 1", "Ritz", "MAP"},
		},
		{
			name:  "bare structured result",
			input: `{"flight":{"from":"MAA","to":"GOI","price":4500}}`,
			want:  []string{"Flight", "From: MAA", "Price: 4500", "Date: -"},
		},
		{
			name:  "plain text",
			input: "Package: Goa\nStatus: Complete\n",
			want:  []string{"Package: Goa", "Status: Complete"},
		},
		{
			name:    "error response",
			input:   `{"error":"plan is required"}`,
			wantErr: "plan is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			out, err := execute(t, tt.input, "render")
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestRender_File(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "result.json")
	if err := os.WriteFile(path, []byte(`{"hotel":{"name":"Sea View","rating":4.5}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "", "render", path)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Sea View") || !strings.Contains(out, "Rating: 4.5") {
		t.Errorf("output = %q", out)
	}
}

func TestLogFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "tripbook.log")

	if _, err := execute(t, "{}", "--log-file", path, "render"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}
