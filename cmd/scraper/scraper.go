package main

import (
	"context"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"gmaps-hospital-reviews/internal/logger"
	"gmaps-hospital-reviews/internal/scraper"
)

func main() {
	_ = godotenv.Load()

	var (
		query        string
		maxHospitals int
		maxReviews   int
		headless     bool
		timeout      time.Duration
		delay        time.Duration
		jitter       time.Duration
		output       string
		format       string
		baseURL      string
	)

	flag.StringVar(&query, "query", envOr("SEARCH_QUERY", "top hospitals in Istanbul, Turkey"), "maps search query")
	flag.StringVar(&baseURL, "base-url", envOr("SEARCH_BASE_URL", "https://www.google.com/maps/search/"), "maps search endpoint the query is appended to")
	flag.IntVar(&maxHospitals, "max-hospitals", envInt("MAX_HOSPITALS", 10), "max number of hospitals to process")
	flag.IntVar(&maxReviews, "max-reviews", envInt("MAX_REVIEWS", 60), "max number of reviews per hospital")
	flag.BoolVar(&headless, "headless", envBool("HEADLESS", true), "run headless Chrome")
	flag.DurationVar(&timeout, "timeout", envDuration("OVERALL_TIMEOUT", 10*time.Minute), "overall timeout for the browser session")
	flag.DurationVar(&delay, "delay", envDuration("STEP_DELAY", 1500*time.Millisecond), "minimum delay between page interactions")
	flag.DurationVar(&jitter, "jitter", envDuration("STEP_JITTER", 1500*time.Millisecond), "random extra delay on top of -delay")
	flag.StringVar(&output, "out", envOr("OUTPUT_FILE", "hospital_reviews.json"), "output file path")
	flag.StringVar(&format, "format", envOr("OUTPUT_FORMAT", "json"), "output format: json or csv")
	flag.Parse()

	log := logger.New(os.Getenv("APP_ENV"))

	s := scraper.New(query,
		scraper.WithBaseURL(baseURL),
		scraper.WithMaxHospitals(maxHospitals),
		scraper.WithMaxReviews(maxReviews),
		scraper.WithHeadless(headless),
		scraper.WithOverallTimeout(timeout),
		scraper.WithStepDelay(delay),
		scraper.WithJitter(jitter),
		scraper.WithLogger(log),
	)

	records, err := s.Run(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("scrape failed")
		os.Exit(1)
	}

	if err := scraper.Save(output, format, records); err != nil {
		log.Error().Err(err).Str("file", output).Msg("write output")
		os.Exit(1)
	}
	log.Info().Int("hospitals", len(records)).Str("file", output).Msg("scrape complete")
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}
