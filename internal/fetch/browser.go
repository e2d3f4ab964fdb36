package fetch

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

// BrowserFetcher renders pages in headless Chrome. Used when a source rejects
// plain HTTP clients.
type BrowserFetcher struct {
	allocCtx context.Context
	cancel   context.CancelFunc

	mu          sync.Mutex
	lastRequest time.Time
	interval    time.Duration
}

// NewBrowserFetcher starts a headless Chrome allocator.
func NewBrowserFetcher() (*BrowserFetcher, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(UserAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &BrowserFetcher{
		allocCtx: allocCtx,
		cancel:   cancel,
		interval: MinRequestInterval,
	}, nil
}

// Close releases the browser.
func (f *BrowserFetcher) Close() {
	if f.cancel != nil {
		f.cancel()
	}
}

// Fetch navigates to the URL and returns the rendered document.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	f.throttle()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browserCtx, cancelBrowser := chromedp.NewContext(f.allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, Timeout)
	defer cancelTimeout()

	var htmlContent string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(`body`, chromedp.ByQuery),
		chromedp.OuterHTML(`html`, &htmlContent, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp error: %w", err)
	}
	if htmlContent == "" {
		return nil, fmt.Errorf("empty HTML content returned for %s", url)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	return doc, nil
}

func (f *BrowserFetcher) throttle() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.lastRequest.IsZero() {
		if elapsed := time.Since(f.lastRequest); elapsed < f.interval {
			time.Sleep(f.interval - elapsed)
		}
	}
	f.lastRequest = time.Now()
}
