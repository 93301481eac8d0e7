package core

import (
	"fmt"
	"strings"
	"sync"
)

var (
	registry   = make(map[string]DeviceDefinition)
	order      []string
	registryMu sync.RWMutex
)

// UnknownDeviceError is returned when a device type is not in the catalog.
type UnknownDeviceError struct {
	DeviceID string
}

func (e *UnknownDeviceError) Error() string {
	return fmt.Sprintf("unknown device type: %q", e.DeviceID)
}

// Register adds a device definition to the catalog.
// Panics if the id is empty or already registered.
func Register(def DeviceDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if def.ID == "" {
		panic("device definition has empty id")
	}
	if _, exists := registry[def.ID]; exists {
		panic(fmt.Sprintf("device already registered: %s", def.ID))
	}

	registry[def.ID] = def
	order = append(order, def.ID)
}

// Lookup returns the definition for a device type.
// Returns *UnknownDeviceError if the id is not registered.
func Lookup(id string) (DeviceDefinition, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[strings.TrimSpace(id)]
	if !ok {
		return DeviceDefinition{}, &UnknownDeviceError{DeviceID: id}
	}
	return def, nil
}

// Devices returns all registered definitions in registration order.
func Devices() []DeviceDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]DeviceDefinition, 0, len(order))
	for _, id := range order {
		result = append(result, registry[id])
	}
	return result
}

// DeviceIDs returns the registered device type identifiers in registration order.
func DeviceIDs() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	ids := make([]string, len(order))
	copy(ids, order)
	return ids
}

// DeviceCount returns the number of registered devices.
func DeviceCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered devices.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]DeviceDefinition)
	order = nil
}

// Placeholders returns the placeholder tokens present in a template,
// in the fixed order MAC, SN, FSAN.
func Placeholders(template string) []string {
	var found []string
	for _, tok := range []string{TokenMAC, TokenSN, TokenFSAN} {
		if strings.Contains(template, tok) {
			found = append(found, tok)
		}
	}
	return found
}

// Sample values used to preview a template before converting.
const (
	SampleMAC    = "A1B2C3D4E5F6"
	SampleSerial = "SN123456"
	SampleFSAN   = "FSAN0001"
)

// PreviewNumbers renders a device's template with sample values so the
// operator can check it against the provisioning system.
func PreviewNumbers(def DeviceDefinition) string {
	return RenderNumbers(def.NumbersTemplate, RowFields{
		Serial: SampleSerial,
		MAC:    SampleMAC,
		FSAN:   SampleFSAN,
	})
}
