// Package geocode resolves destination names to coordinates through a
// Nominatim-compatible search endpoint.
//
// Geocoding is best-effort everywhere it is used: a nil result or an error
// must never block saving the destination name itself.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Result is a resolved coordinate pair.
type Result struct {
	Lat float64
	Lon float64
}

// Geocoder resolves a free-text destination name to coordinates.
// A nil Result with a nil error means the name could not be resolved.
type Geocoder interface {
	Geocode(ctx context.Context, destination string) (*Result, error)
}

// Client is a Geocoder backed by a Nominatim-style HTTP API
// (GET {base}/search?format=json&q=…&limit=1).
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient constructs a Client for the given base URL (no trailing slash
// required). The client carries a short timeout; geocoding is an interactive
// nice-to-have and must not hold up a save.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 5 * time.Second},
	}
}

// searchResult matches the subset of the Nominatim response we need.
// Nominatim returns coordinates as JSON strings.
type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves destination to its best-match coordinates.
// Returns (nil, nil) when the API has no match for the name.
func (c *Client) Geocode(ctx context.Context, destination string) (*Result, error) {
	u := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", c.baseURL, url.QueryEscape(destination))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("geocode.Client.Geocode: build request: %w", err)
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", "tripledger-api/1.0")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode.Client.Geocode: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode.Client.Geocode: unexpected status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("geocode.Client.Geocode: decode: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("geocode.Client.Geocode: parse lat %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("geocode.Client.Geocode: parse lon %q: %w", results[0].Lon, err)
	}

	return &Result{Lat: lat, Lon: lon}, nil
}
