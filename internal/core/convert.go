package core

// convert.go assembles the provisioning import table from an input table.
//
// The flow for one conversion:
//  1. Look up the selected device (template + profile)
//  2. Resolve the serial/MAC/FSAN columns once against the headers
//  3. Abort if serial or MAC is unresolved, naming the missing columns
//  4. Transform every row; rows that fail extraction are skipped and
//     recorded as warnings, blank rows are ignored
//
// Convert is pure: it touches no files and keeps no state between calls.

import (
	"fmt"
	"time"
)

// Convert builds the output records for a table.
// now supplies the conversion date used in the output filename.
func Convert(table *Table, req ConversionRequest, now time.Time) (*ConversionResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	def, err := Lookup(req.DeviceID)
	if err != nil {
		return nil, err
	}

	cols := ResolveColumns(table.Headers)
	if missing := cols.Missing(); len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	result := &ConversionResult{
		Device:   def,
		Location: req.Location,
		Company:  req.Company,
		FileName: OutputFileName(req.Company, def.ID, now),
		Columns:  cols,
		Records:  make([]OutputRecord, 0, len(table.Rows)),
	}

	idx := table.Index()
	for _, row := range table.Rows {
		if row.Err == nil && isEmptyRow(row) {
			continue
		}
		result.TotalRows++

		rec, err := buildRecord(row, idx, cols, def, req.Location)
		if err != nil {
			result.Warnings = append(result.Warnings, RowWarning{
				Line:   row.Line,
				Reason: err.Error(),
			})
			continue
		}
		result.Records = append(result.Records, rec)
	}

	return result, nil
}

// buildRecord transforms one row into an output record.
func buildRecord(row Row, idx HeaderIndex, cols ResolvedColumns, def DeviceDefinition, location string) (OutputRecord, error) {
	fields, err := ExtractFields(row, idx, cols)
	if err != nil {
		return OutputRecord{}, fmt.Errorf("extract fields: %w", err)
	}

	return OutputRecord{
		DeviceProfile: def.Profile,
		DeviceName:    def.ID,
		DeviceNumbers: RenderNumbers(def.NumbersTemplate, fields),
		Location:      location,
		Status:        DefaultStatus,
	}, nil
}
