// Package core provides the business logic for inventory conversion.
// This package has no UI dependencies and can be used by any frontend.
package core

import (
	"fmt"
	"time"
)

// DefaultStatus is the status written on every output record.
const DefaultStatus = "UNASSIGNED"

// Placeholder tokens substituted into a numbers template.
const (
	TokenMAC  = "<<MAC>>"
	TokenSN   = "<<SN>>"
	TokenFSAN = "<<FSAN>>"
)

// Device profile labels used by the provisioning system.
const (
	ProfileONT    = "ADTN_ONT"
	ProfileRouter = "ADTN_ROUTER"
)

// DeviceDefinition describes one supported hardware model.
type DeviceDefinition struct {
	ID              string // Device type identifier: "SDX622V"
	Profile         string // Provisioning profile: "ADTN_ONT"
	NumbersTemplate string // Pipe-delimited key=value template with placeholder tokens
}

// HeaderIndex maps column names (lowercase) to their position in a row.
type HeaderIndex map[string]int

// Row is a single data row of an input table.
type Row struct {
	Line  int      // 1-indexed line/row number in the source file
	Cells []string // Raw cell text in header order
	Err   error    // Non-nil if the reader could not decode this row
}

// Table is an input inventory file: a header row followed by data rows.
type Table struct {
	FileName string
	Headers  []string // Trimmed header text in file order
	Rows     []Row
}

// Index builds the header index for the table.
func (t *Table) Index() HeaderIndex {
	return MakeHeaderIndex(t.Headers)
}

// ResolvedColumns holds the header chosen for each field role.
// An empty string means no header matched.
type ResolvedColumns struct {
	Serial string `json:"serial"`
	MAC    string `json:"mac"`
	FSAN   string `json:"fsan"`
}

// RowFields are the trimmed values extracted from one row.
type RowFields struct {
	Serial string
	MAC    string
	FSAN   string
}

// OutputRecord is one line of the provisioning import file.
type OutputRecord struct {
	DeviceProfile string `csv:"device_profile" json:"device_profile"`
	DeviceName    string `csv:"device_name" json:"device_name"`
	DeviceNumbers string `csv:"device_numbers" json:"device_numbers"`
	Location      string `csv:"location" json:"location"`
	Status        string `csv:"status" json:"status"`
}

// RowWarning records a row that was skipped during conversion.
type RowWarning struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

func (w RowWarning) String() string {
	return fmt.Sprintf("row %d: %s", w.Line, w.Reason)
}

// ConversionRequest carries the operator's selections for one conversion.
type ConversionRequest struct {
	DeviceID          string
	Location          string // LocationWarehouse, LocationITG or a custom value
	LocationConfirmed bool   // Must be true when Location is a custom value
	Company           string
}

// ConversionResult contains the output of a conversion.
type ConversionResult struct {
	ID        string
	Device    DeviceDefinition
	Location  string
	Company   string
	FileName  string
	Columns   ResolvedColumns
	TotalRows int
	Records   []OutputRecord
	Warnings  []RowWarning
	Duration  time.Duration
}

// Skipped returns the number of rows omitted from the output.
func (r *ConversionResult) Skipped() int {
	return len(r.Warnings)
}
