package scraper

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	ratingRe     = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
)

// typePrefixes are listing-type labels that Google Maps prepends to the
// address line of a result card.
var typePrefixes = []string{
	"General hospital",
	"Private hospital",
	"University hospital",
	"State hospital",
	"Hospital",
	"Medical Center",
}

// cleanText collapses runs of whitespace and drops emoji and other symbol
// runes that review text is frequently decorated with.
func cleanText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.In(r, unicode.So, unicode.Sk, unicode.Co, unicode.Cs) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(b.String(), " "))
}

// optionalText cleans s and returns nil when nothing remains, so absent
// fields end up as JSON null instead of "".
func optionalText(s string) *string {
	cleaned := cleanText(s)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

// ratingFromLabel extracts a star rating from strings like "5 stars",
// "Rated 4.5 out of 5" or a bare "4,3". Returns nil when no number is found.
func ratingFromLabel(label string) *float64 {
	match := ratingRe.FindString(label)
	if match == "" {
		return nil
	}
	match = strings.ReplaceAll(match, ",", ".")
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil
	}
	return &v
}

// stripTypePrefix removes a leading listing-type label from an address line.
func stripTypePrefix(addr string) string {
	for _, p := range typePrefixes {
		if len(addr) > len(p) && strings.EqualFold(addr[:len(p)], p) {
			return strings.TrimLeft(strings.TrimSpace(addr[len(p):]), "·• ")
		}
	}
	return addr
}
