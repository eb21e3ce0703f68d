package collector

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"SignalSentinel/internal/model"
)

// Fetcher defines the interface for fetching daily bars.
type Fetcher interface {
	// FetchDailyBars returns up to days of the most recent daily bars. Bars
	// may arrive unsorted; the Collector normalizes them.
	FetchDailyBars(ctx context.Context, symbol string, days int) (model.Series, error)
	Name() string
}

// newHTTPClient builds a client with optional proxy support.
func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}
