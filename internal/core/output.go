package core

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/jszwec/csvutil"
)

// OutputColumns is the fixed header of the import file.
var OutputColumns = []string{"device_profile", "device_name", "device_numbers", "location", "status"}

// unsafeFileChars matches everything not allowed in the company part of a filename.
var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9_\-]`)

// SanitizeCompany lowercases the company name, turns spaces into
// underscores and drops every other character outside [A-Za-z0-9_-].
func SanitizeCompany(company string) string {
	s := strings.ReplaceAll(strings.ToLower(company), " ", "_")
	return unsafeFileChars.ReplaceAllString(s, "")
}

// OutputFileName returns {company}_{YYYYMMDD}_{device}.csv for the given
// conversion date.
func OutputFileName(company, deviceID string, date time.Time) string {
	return fmt.Sprintf("%s_%s_%s.csv", SanitizeCompany(company), date.Format("20060102"), deviceID)
}

// WriteCSV writes the header row followed by one line per record.
// The header is written even when there are no records.
func WriteCSV(w io.Writer, records []OutputRecord) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	enc.AutoHeader = false

	if err := enc.EncodeHeader(OutputRecord{}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("write record %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteCSV writes the conversion output as CSV.
func (r *ConversionResult) WriteCSV(w io.Writer) error {
	return WriteCSV(w, r.Records)
}

// WriteFile writes the import file into dir under its generated name and
// returns the path written. An empty dir means the working directory.
func (r *ConversionResult) WriteFile(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, r.FileName)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create output: %w", err)
	}
	if err := r.WriteCSV(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close output: %w", err)
	}
	return path, nil
}
