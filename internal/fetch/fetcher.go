// Package fetch retrieves pages as parsed documents. The plain HTTP fetcher
// covers most sources; the browser fetcher exists because some sports sites
// block Go's HTTP client fingerprint and only serve a real browser.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	Timeout   = 30 * time.Second

	// MinRequestInterval spaces requests to avoid rate limiting.
	MinRequestInterval = 500 * time.Millisecond
)

// Fetcher fetches a URL and returns the parsed document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// HTTPFetcher fetches pages over plain HTTP with a browser user agent and a
// minimum interval between requests.
type HTTPFetcher struct {
	client *http.Client

	mu          sync.Mutex
	lastRequest time.Time
	interval    time.Duration
}

// NewHTTPFetcher creates a rate-limited HTTP fetcher.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		client:   &http.Client{Timeout: Timeout},
		interval: MinRequestInterval,
	}
}

// Fetch retrieves the URL and parses the response body.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	f.throttle()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	return doc, nil
}

func (f *HTTPFetcher) throttle() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.lastRequest.IsZero() {
		if elapsed := time.Since(f.lastRequest); elapsed < f.interval {
			time.Sleep(f.interval - elapsed)
		}
	}
	f.lastRequest = time.Now()
}
