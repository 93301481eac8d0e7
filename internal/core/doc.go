// Package core provides the business logic for converting Adtran inventory
// files into provisioning import files.
//
// The package has no UI or transport dependencies. The web server, the CLI
// and the terminal form all drive the same [Service].
//
// # Device Catalog
//
// Supported hardware models are registered at init time using [Register],
// normally by importing the devices subpackage for its side effects:
//
//	import _ "github.com/JonMunkholm/adtran-import/internal/core/devices"
//
// Each [DeviceDefinition] carries a provisioning profile and a numbers
// template containing the <<MAC>>, <<SN>> and <<FSAN>> placeholders.
//
// # Conversion
//
// A conversion is a pure function of the input table and the operator's
// selections:
//
//  1. [ReadTable] loads a CSV or XLSX file (first worksheet) into a [Table]
//  2. [ResolveColumns] finds the serial, MAC and FSAN columns by header
//  3. [Convert] renders one [OutputRecord] per non-blank row
//  4. [WriteCSV] writes the fixed five-column import file
//
// Rows the reader could not decode are skipped and reported as
// [RowWarning]s; a missing serial or MAC column aborts the conversion with
// a [MissingColumnsError].
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each category has a code for support reference (FILE, VAL, DEV, SEL,
// UPL, RATE, ERR).
package core
