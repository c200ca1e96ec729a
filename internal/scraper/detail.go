package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// fetchReviewsChrome opens a result card's detail page in a child chromedp
// context, switches to the reviews view, scrolls the reviews pane until the
// scroll policy stops, and parses the visible blocks. The parent context's
// search-result tab is left untouched.
func (s *Scraper) fetchReviewsChrome(parent context.Context, href string) ([]ReviewRecord, error) {
	child, cancelChild := newChildBrowserContext(parent)
	defer cancelChild()

	if err := chromedp.Run(child, chromedp.Navigate(href)); err != nil {
		return nil, fmt.Errorf("open detail panel: %w", err)
	}
	if err := waitVisible(child, detailSel, 30*time.Second); err != nil {
		return nil, fmt.Errorf("detail panel not visible: %w", err)
	}

	var clicked bool
	_ = chromedp.Run(child, chromedp.Evaluate(reviewsTabScript, &clicked))
	if clicked {
		s.pause(child)
	}
	if err := waitVisible(child, anyReviewSel, 15*time.Second); err != nil {
		return nil, fmt.Errorf("reviews section not visible: %w", err)
	}
	if s.MaxReviews == 0 {
		return []ReviewRecord{}, nil
	}

	tracker := newScrollTracker(s.MaxReviews, s.MaxScrollSteps)
	for {
		if err := chromedp.Run(child, chromedp.Evaluate(reviewsScrollScript, nil)); err != nil {
			return nil, fmt.Errorf("scroll reviews: %w", err)
		}
		s.pause(child)

		var visible int
		if err := chromedp.Run(child, chromedp.Evaluate(reviewCountScript, &visible)); err != nil {
			return nil, fmt.Errorf("count reviews: %w", err)
		}
		if v := tracker.observe(visible); v != scrollContinue {
			s.log.Debug().Stringer("verdict", v).Int("visible", visible).Msg("scroll loop finished")
			break
		}
	}

	var html string
	if err := chromedp.Run(child, chromedp.OuterHTML(detailSel, &html, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("read reviews pane: %w", err)
	}
	return parseReviewBlocks(html, s.MaxReviews)
}
