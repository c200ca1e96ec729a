package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	resultCardSel  = "div.Nv2PK"
	cardNameSel    = "div.qBF1Pd"
	cardLinkSel    = "a.hfpxzc"
	cardRatingSel  = "span.MW4etd"
	cardInfoSel    = "div.W4Efsd span"
	reviewBlockSel = "div.jJc9Ad"
	reviewAltSel   = "div[data-review-id]"
	reviewAuthSel  = "div.d4r55"
	reviewStarSel  = "span[aria-label*='star']"
	reviewTextSel  = "span.wiI7pd"
	reviewDateSel  = "span.rsqaWe"
)

// resultCard is one hospital listing parsed from the search-result feed.
type resultCard struct {
	Name    string
	Href    string
	Rating  *float64
	Address *string
}

// parseResultCards extracts up to max result cards from the feed's rendered
// HTML, in document order. Cards without a name or a detail link carry
// nothing to scrape and are dropped.
func parseResultCards(html string, max int) ([]resultCard, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var cards []resultCard
	doc.Find(resultCardSel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(cards) >= max {
			return false
		}
		name := cleanText(s.Find(cardNameSel).First().Text())
		href := strings.TrimSpace(s.Find(cardLinkSel).First().AttrOr("href", ""))
		if name == "" || href == "" {
			return true
		}
		card := resultCard{
			Name:   name,
			Href:   href,
			Rating: ratingFromLabel(s.Find(cardRatingSel).First().Text()),
		}
		if addr := cleanText(s.Find(cardInfoSel).Last().Text()); addr != "" {
			addr = stripTypePrefix(strings.TrimLeft(addr, "·• "))
			if addr != "" {
				card.Address = &addr
			}
		}
		cards = append(cards, card)
		return true
	})
	return cards, nil
}

// parseReviewBlocks extracts up to max reviews from the detail panel's
// rendered HTML. Blocks re-rendered at new positions during scrolling are
// dropped by content identity. A field the markup does not expose stays nil.
func parseReviewBlocks(html string, max int) ([]ReviewRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	blocks := doc.Find(reviewBlockSel)
	if blocks.Length() == 0 {
		blocks = doc.Find(reviewAltSel)
	}

	reviews := make([]ReviewRecord, 0, max)
	seen := make(map[string]struct{})
	blocks.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(reviews) >= max {
			return false
		}
		rec := ReviewRecord{
			Author: optionalText(s.Find(reviewAuthSel).First().Text()),
			Text:   optionalText(s.Find(reviewTextSel).First().Text()),
			Date:   optionalText(s.Find(reviewDateSel).First().Text()),
		}
		if star := s.Find(reviewStarSel).First(); star.Length() > 0 {
			rec.Rating = ratingFromLabel(star.AttrOr("aria-label", ""))
		}
		if rec.Author == nil && rec.Text == nil && rec.Date == nil && rec.Rating == nil {
			return true
		}
		if _, dup := seen[rec.key()]; dup {
			return true
		}
		seen[rec.key()] = struct{}{}
		reviews = append(reviews, rec)
		return true
	})
	return reviews, nil
}
