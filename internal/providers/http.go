package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// HTTPProvider queries an upstream serving /flights and /hotels.
type HTTPProvider struct {
	name       string
	baseURL    string
	httpClient *http.Client
}

// NewHTTPProvider creates a new HTTPProvider.
func NewHTTPProvider(name, baseURL string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name returns the provider name.
func (p *HTTPProvider) Name() string {
	return p.name
}

// Flights fetches flight offers for q.
func (p *HTTPProvider) Flights(ctx context.Context, q Query) ([]Flight, error) {
	params := url.Values{}
	params.Set("from", q.Origin)
	params.Set("to", q.Destination)
	params.Set("date", q.Date)

	var flights []Flight
	if err := p.get(ctx, "/flights", params, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

// Hotels fetches hotel offers for q.
func (p *HTTPProvider) Hotels(ctx context.Context, q Query) ([]Hotel, error) {
	params := url.Values{}
	params.Set("city", q.Destination)
	params.Set("checkin", q.Date)
	params.Set("nights", strconv.Itoa(q.Nights))

	var hotels []Hotel
	if err := p.get(ctx, "/hotels", params, &hotels); err != nil {
		return nil, err
	}
	return hotels, nil
}

func (p *HTTPProvider) get(ctx context.Context, path string, params url.Values, out any) error {
	u, err := url.Parse(p.baseURL + path)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: request failed: %w", p.name, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s: provider returned status %d: %s", p.name, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: failed to parse response: %w", p.name, err)
	}
	return nil
}
