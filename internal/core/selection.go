package core

import (
	"fmt"
	"strings"
)

// Preset locations offered to the operator. Anything else is a custom
// location and must be explicitly confirmed, because the provisioning
// system matches location names exactly (case, spelling, spacing).
const (
	LocationWarehouse = "WAREHOUSE"
	LocationITG       = "ITG"
)

// PresetLocations returns the preset locations in display order.
func PresetLocations() []string {
	return []string{LocationWarehouse, LocationITG}
}

// IsPresetLocation reports whether loc is one of the preset locations.
func IsPresetLocation(loc string) bool {
	return loc == LocationWarehouse || loc == LocationITG
}

// SelectionError reports an invalid or incomplete operator selection.
type SelectionError struct {
	Field   string // "device", "location", "location_confirmed" or "company"
	Message string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("invalid selection: %s", e.Message)
}

// Validate checks that every selection required before conversion is present.
// The device id is checked against the catalog.
func (r ConversionRequest) Validate() error {
	if strings.TrimSpace(r.DeviceID) == "" {
		return &SelectionError{Field: "device", Message: "select a device type"}
	}
	if _, err := Lookup(r.DeviceID); err != nil {
		return err
	}
	if strings.TrimSpace(r.Location) == "" {
		return &SelectionError{Field: "location", Message: "select or enter a location"}
	}
	if !IsPresetLocation(r.Location) && !r.LocationConfirmed {
		return &SelectionError{
			Field:   "location_confirmed",
			Message: fmt.Sprintf("confirm that custom location %q exactly matches the name in the provisioning system", r.Location),
		}
	}
	if strings.TrimSpace(r.Company) == "" {
		return &SelectionError{Field: "company", Message: "enter a company name"}
	}
	return nil
}
