package crawl

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/fortuna/gridiron/internal/fetch"
)

// DefaultWorkers bounds the per-season fan-out.
const DefaultWorkers = 8

// Driver walks season index pages and fans game-page fetches out to a
// bounded worker pool.
type Driver struct {
	fetcher fetch.Fetcher
	base    string
	workers int
}

// NewDriver creates a crawl driver. base and workers fall back to defaults
// when zero-valued.
func NewDriver(fetcher fetch.Fetcher, base string, workers int) *Driver {
	if base == "" {
		base = DefaultBaseURL
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Driver{fetcher: fetcher, base: base, workers: workers}
}

// Season fetches and parses one season's index page.
func (d *Driver) Season(ctx context.Context, year int) ([]Week, error) {
	doc, err := d.fetcher.Fetch(ctx, IndexURL(d.base, year))
	if err != nil {
		return nil, fmt.Errorf("fetching season %d index: %w", year, err)
	}
	return ParseIndex(doc), nil
}

// Base returns the site root the driver resolves game paths against.
func (d *Driver) Base() string {
	return d.base
}

// ForEachGame runs fn for every URL on the bounded pool. The first error
// cancels the remaining fetches and is returned.
func (d *Driver) ForEachGame(ctx context.Context, urls []string, fn func(ctx context.Context, url string) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)

	for _, url := range urls {
		url := url
		g.Go(func() error {
			return fn(ctx, url)
		})
	}

	return g.Wait()
}
