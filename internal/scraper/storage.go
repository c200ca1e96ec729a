package scraper

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// EncodeJSON encodes the records as a pretty JSON array. Absent optional
// fields come out as null.
func EncodeJSON(records []HospitalRecord) ([]byte, error) {
	return json.MarshalIndent(records, "", "  ")
}

// SaveJSON writes the records as a single JSON document, replacing any
// previous file wholesale.
func SaveJSON(path string, records []HospitalRecord) error {
	data, err := EncodeJSON(records)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// EncodeCSV flattens the records into one row per review, with header.
// Hospitals without reviews still get a row so they appear in the output.
func EncodeCSV(records []HospitalRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"hospital", "hospital_rating", "address", "author", "rating", "text", "date"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, rec := range records {
		base := []string{rec.Name, formatRating(rec.Rating), derefString(rec.Address)}
		if len(rec.Reviews) == 0 {
			if err := w.Write(append(base, "", "", "", "")); err != nil {
				return nil, err
			}
			continue
		}
		for _, rv := range rec.Reviews {
			row := append(append([]string{}, base...),
				derefString(rv.Author), formatRating(rv.Rating), derefString(rv.Text), derefString(rv.Date))
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveCSV writes the records as CSV to the given file path.
func SaveCSV(path string, records []HospitalRecord) error {
	data, err := EncodeCSV(records)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Save writes the records to path in the given format ("json" or "csv").
func Save(path, format string, records []HospitalRecord) error {
	switch format {
	case "json":
		return SaveJSON(path, records)
	case "csv":
		return SaveCSV(path, records)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func formatRating(r *float64) string {
	if r == nil {
		return ""
	}
	return strconv.FormatFloat(*r, 'f', -1, 64)
}
