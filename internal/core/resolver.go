package core

// resolver.go maps field roles (serial, MAC, FSAN) to the actual column
// headers of an uploaded table.
//
// Inventory exports name their columns inconsistently ("Serial Number",
// "SN", "MAC Addresses", ...). Each role has a priority-ordered list of
// case-insensitive patterns; the first pattern that matches any header wins,
// and headers are scanned in file order for each pattern.

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldRole identifies a value extracted from each row.
type FieldRole string

const (
	RoleSerial FieldRole = "serial"
	RoleMAC    FieldRole = "mac"
	RoleFSAN   FieldRole = "fsan"
)

// roleSpec describes how a role is resolved.
type roleSpec struct {
	Role      FieldRole
	HumanName string // Shown to the operator when the column is missing
	Required  bool
	Patterns  []*regexp.Regexp
}

var roleSpecs = []roleSpec{
	{
		Role:      RoleSerial,
		HumanName: "Serial Number",
		Required:  true,
		Patterns:  compilePatterns(`^serial number$`, `^serial$`, `^sn$`),
	},
	{
		Role:      RoleMAC,
		HumanName: "MAC Address",
		Required:  true,
		Patterns:  compilePatterns(`^mac$`, `^mac address(es)?$`),
	},
	{
		Role:      RoleFSAN,
		HumanName: "FSAN",
		Patterns:  compilePatterns(`^fsan$`),
	},
}

// compilePatterns compiles patterns as case-insensitive regular expressions.
func compilePatterns(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile("(?i)" + p)
	}
	return out
}

// ResolveColumn returns the first header matching the patterns.
// Patterns are tried in priority order; for each pattern the headers are
// scanned in their given order. Matching is a regexp search, so a pattern
// only requires an exact header when it is anchored with ^...$.
func ResolveColumn(headers []string, patterns []*regexp.Regexp) (string, bool) {
	for _, pat := range patterns {
		for _, h := range headers {
			if pat.MatchString(h) {
				return h, true
			}
		}
	}
	return "", false
}

// ResolveColumns resolves every field role against a table's headers.
func ResolveColumns(headers []string) ResolvedColumns {
	var cols ResolvedColumns
	for _, spec := range roleSpecs {
		h, ok := ResolveColumn(headers, spec.Patterns)
		if !ok {
			continue
		}
		cols.set(spec.Role, h)
	}
	return cols
}

// Get returns the header resolved for a role, or "" if unresolved.
func (c ResolvedColumns) Get(role FieldRole) string {
	switch role {
	case RoleSerial:
		return c.Serial
	case RoleMAC:
		return c.MAC
	case RoleFSAN:
		return c.FSAN
	default:
		return ""
	}
}

func (c *ResolvedColumns) set(role FieldRole, header string) {
	switch role {
	case RoleSerial:
		c.Serial = header
	case RoleMAC:
		c.MAC = header
	case RoleFSAN:
		c.FSAN = header
	}
}

// Missing returns the human names of required roles that were not resolved,
// in the order Serial Number, MAC Address.
func (c ResolvedColumns) Missing() []string {
	var missing []string
	for _, spec := range roleSpecs {
		if spec.Required && c.Get(spec.Role) == "" {
			missing = append(missing, spec.HumanName)
		}
	}
	return missing
}

// MissingColumnsError is returned when required columns cannot be resolved.
type MissingColumnsError struct {
	Columns []string // Human names, e.g. "MAC Address"
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("Missing required columns: %s", strings.Join(e.Columns, ", "))
}
