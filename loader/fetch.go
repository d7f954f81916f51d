package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/skymesh/routegraph/network"
)

// Fetcher downloads airport and route datasets over HTTP with retries.
type Fetcher struct {
	client      *retryablehttp.Client
	airportsURL string
	routesURL   string
}

// NewFetcher creates a Fetcher for the given dataset URLs.
func NewFetcher(airportsURL, routesURL string) *Fetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = 5
	client.RetryWaitMin = time.Second
	client.HTTPClient.Timeout = 90 * time.Second
	client.Logger = nil

	return &Fetcher{
		client:      client,
		airportsURL: airportsURL,
		routesURL:   routesURL,
	}
}

// FetchAirports downloads and parses the airports dataset. The skipped
// count reports rows dropped by validation.
func (f *Fetcher) FetchAirports(ctx context.Context) ([]network.AirportRecord, int, error) {
	body, err := f.get(ctx, f.airportsURL)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch airports: %w", err)
	}
	defer body.Close()

	return ParseAirports(body)
}

// FetchRoutes downloads and parses the routes dataset.
func (f *Fetcher) FetchRoutes(ctx context.Context) ([]network.RouteRecord, int, error) {
	body, err := f.get(ctx, f.routesURL)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch routes: %w", err)
	}
	defer body.Close()

	return ParseRoutes(body)
}

func (f *Fetcher) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("wrong status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}
