package scraper

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL      = "https://www.google.com/maps/search/"
	defaultMaxHospitals = 10
	defaultMaxReviews   = 60

	feedSel   = `div[role="feed"]`
	detailSel = `div[role="main"]`
	// Either review-block variant satisfies the "reviews section present" wait.
	anyReviewSel = reviewBlockSel + ", " + reviewAltSel
)

// Scraper holds reusable configuration between runs.
type Scraper struct {
	Query          string
	BaseURL        string
	MaxHospitals   int
	MaxReviews     int
	Headless       bool
	OverallTimeout time.Duration
	StepDelay      time.Duration
	Jitter         time.Duration
	ListScrolls    int
	MaxScrollSteps int

	log     zerolog.Logger
	limiter *rate.Limiter

	// fetchReviews drives the detail panel for one result card. Swappable
	// so the per-hospital loop can be exercised without a browser.
	fetchReviews func(ctx context.Context, href string) ([]ReviewRecord, error)
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithBaseURL sets the maps search endpoint the query is appended to.
func WithBaseURL(u string) Option {
	return func(s *Scraper) {
		if u != "" {
			s.BaseURL = u
		}
	}
}

// WithMaxHospitals bounds the number of result cards processed. Negative
// values are clamped to 0.
func WithMaxHospitals(n int) Option {
	if n < 0 {
		n = 0
	}
	return func(s *Scraper) { s.MaxHospitals = n }
}

// WithMaxReviews bounds the number of reviews extracted per hospital.
// Negative values are clamped to 0.
func WithMaxReviews(n int) Option {
	if n < 0 {
		n = 0
	}
	return func(s *Scraper) { s.MaxReviews = n }
}

// WithHeadless sets whether to run Chrome in headless mode.
func WithHeadless(b bool) Option { return func(s *Scraper) { s.Headless = b } }

// WithOverallTimeout bounds the whole browser session. Negative values are
// clamped to 0 (no timeout).
func WithOverallTimeout(d time.Duration) Option {
	if d < 0 {
		d = 0
	}
	return func(s *Scraper) { s.OverallTimeout = d }
}

// WithStepDelay sets the minimum pacing between page interactions.
func WithStepDelay(d time.Duration) Option {
	if d < 0 {
		d = 0
	}
	return func(s *Scraper) { s.StepDelay = d }
}

// WithJitter adds up to d of random extra delay on top of the step pacing.
func WithJitter(d time.Duration) Option {
	if d < 0 {
		d = 0
	}
	return func(s *Scraper) { s.Jitter = d }
}

// WithLogger sets the logger used for per-hospital progress and skips.
func WithLogger(l zerolog.Logger) Option { return func(s *Scraper) { s.log = l } }

// New constructs a Scraper for the given search query using the provided
// functional options.
func New(query string, opts ...Option) *Scraper {
	s := &Scraper{
		Query:          query,
		BaseURL:        defaultBaseURL,
		MaxHospitals:   defaultMaxHospitals,
		MaxReviews:     defaultMaxReviews,
		Headless:       true,
		OverallTimeout: 10 * time.Minute,
		StepDelay:      1500 * time.Millisecond,
		Jitter:         1500 * time.Millisecond,
		ListScrolls:    5,
		MaxScrollSteps: 30,
		log:            zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.StepDelay > 0 {
		s.limiter = rate.NewLimiter(rate.Every(s.StepDelay), 1)
	}
	s.fetchReviews = s.fetchReviewsChrome
	return s
}

// Run drives a browser session end to end: search the query, collect result
// cards, extract each hospital's reviews, and return the assembled records
// in feed order. A search-phase failure is fatal and returns an error;
// per-hospital failures are logged and skipped.
func (s *Scraper) Run(ctx context.Context) ([]HospitalRecord, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"),
	)

	ctx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	if s.OverallTimeout > 0 {
		var toCancel context.CancelFunc
		ctx, toCancel = context.WithTimeout(ctx, s.OverallTimeout)
		defer toCancel()
	}

	searchURL := s.BaseURL + url.QueryEscape(s.Query)
	s.log.Info().Str("url", searchURL).Msg("searching")
	if err := chromedp.Run(ctx, chromedp.Navigate(searchURL)); err != nil {
		return nil, fmt.Errorf("navigate search: %w", err)
	}
	_ = chromedp.Run(ctx, chromedp.Evaluate(consentScript, nil))
	if err := waitVisible(ctx, feedSel, 45*time.Second); err != nil {
		return nil, fmt.Errorf("result feed not visible: %w", err)
	}

	cards, err := s.collectCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect result cards: %w", err)
	}
	s.log.Info().Int("hospitals", len(cards)).Msg("collected result cards")

	return s.processCards(ctx, cards), nil
}

// collectCards scrolls the feed to load more listings, then parses the
// rendered cards, capped at MaxHospitals.
func (s *Scraper) collectCards(ctx context.Context) ([]resultCard, error) {
	for i := 0; i < s.ListScrolls; i++ {
		if err := chromedp.Run(ctx, chromedp.Evaluate(feedScrollScript, nil)); err != nil {
			return nil, err
		}
		s.pause(ctx)
	}
	var html string
	if err := chromedp.Run(ctx, chromedp.OuterHTML(feedSel, &html, chromedp.ByQuery)); err != nil {
		return nil, err
	}
	return parseResultCards(html, s.MaxHospitals)
}

// processCards extracts reviews for each card in order. A card whose detail
// panel cannot be scraped produces no record and does not stop the loop.
func (s *Scraper) processCards(ctx context.Context, cards []resultCard) []HospitalRecord {
	records := make([]HospitalRecord, 0, len(cards))
	for _, card := range cards {
		s.pause(ctx)
		reviews, err := s.fetchReviews(ctx, card.Href)
		if err != nil {
			s.log.Warn().Err(err).Str("hospital", card.Name).Msg("skipping hospital")
			continue
		}
		records = append(records, HospitalRecord{
			Name:    card.Name,
			Rating:  card.Rating,
			Address: card.Address,
			Reviews: reviews,
		})
		s.log.Info().Str("hospital", card.Name).Int("reviews", len(reviews)).Msg("scraped hospital")
	}
	return records
}

// pause enforces the step pacing plus a random jitter, mimicking human
// interaction speed.
func (s *Scraper) pause(ctx context.Context) {
	if s.limiter != nil {
		_ = s.limiter.Wait(ctx)
	}
	if s.Jitter > 0 {
		time.Sleep(time.Duration(rand.Int63n(int64(s.Jitter))))
	}
}
