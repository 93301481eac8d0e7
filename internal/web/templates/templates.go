// Package templates holds the templ components rendered by the web server.
// Edit the .templ files and run templ generate; the _templ.go files are generated.
package templates

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.960 generate

import (
	"strings"

	"github.com/JonMunkholm/adtran-import/internal/core"
)

// DeviceOption is one entry of the device selector.
type DeviceOption struct {
	ID       string
	Profile  string
	Template string
	Preview  string // Template rendered with sample values
}

// FormValues are the operator's previous selections, re-rendered after an error.
type FormValues struct {
	DeviceID       string
	Location       string // "WAREHOUSE", "ITG" or "custom"
	CustomLocation string
	Confirmed      bool
	Company        string
}

// FormData is everything the conversion form needs.
type FormData struct {
	Devices   []DeviceOption
	Presets   []string
	Values    FormValues
	MaxSizeMB int64
	Error     *core.UserMessage
}

// PreviewData summarizes a conversion without downloading it.
type PreviewData struct {
	FileName  string
	Device    string
	Location  string
	Columns   core.ResolvedColumns
	TotalRows int
	Records   []core.OutputRecord // First few records only
	Warnings  []string
}

// Written is the number of rows that end up in the import file.
func (d PreviewData) Written() int {
	return d.TotalRows - len(d.Warnings)
}

func columnsSummary(c core.ResolvedColumns) string {
	var parts []string
	for _, col := range []struct{ label, header string }{
		{"Serial", c.Serial},
		{"MAC", c.MAC},
		{"FSAN", c.FSAN},
	} {
		if col.header != "" {
			parts = append(parts, col.label+" = \""+col.header+"\"")
		}
	}
	return strings.Join(parts, ", ")
}
