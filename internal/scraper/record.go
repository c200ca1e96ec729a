package scraper

// HospitalRecord is one search result together with the reviews extracted
// from its detail panel. Optional fields are nil when the page did not
// expose them, so they serialize as JSON null rather than an empty string.
type HospitalRecord struct {
	Name    string         `json:"name"`
	Rating  *float64       `json:"rating"`
	Address *string        `json:"address"`
	Reviews []ReviewRecord `json:"reviews"`
}

// ReviewRecord is a single review block. Every field is optional.
type ReviewRecord struct {
	Author *string  `json:"author"`
	Rating *float64 `json:"rating"`
	Text   *string  `json:"text"`
	Date   *string  `json:"date"`
}

// key identifies a review across repeated scroll passes. The reviews pane
// re-renders blocks at new positions while scrolling, so identity is derived
// from content rather than DOM order.
func (r ReviewRecord) key() string {
	return derefString(r.Author) + "|" + derefString(r.Text) + "|" + derefString(r.Date)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
