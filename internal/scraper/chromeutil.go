package scraper

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
)

// newChildBrowserContext creates a new child chromedp context derived from
// the given parent context. Detail pages open here so navigation does not
// alter the state of the search-result tab.
// The caller is responsible for calling the returned cancel function.
func newChildBrowserContext(parent context.Context) (context.Context, context.CancelFunc) {
	return chromedp.NewContext(parent)
}

// waitVisible waits for sel to become visible, bounded by timeout.
func waitVisible(ctx context.Context, sel string, timeout time.Duration) error {
	c, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return chromedp.Run(c, chromedp.WaitVisible(sel, chromedp.ByQuery))
}
