package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "missing columns are shown verbatim",
			err:         &MissingColumnsError{Columns: []string{"MAC Address"}},
			wantCode:    "VAL004",
			wantMessage: "Missing required columns: MAC Address",
		},
		{
			name:        "wrapped missing columns",
			err:         fmt.Errorf("convert: %w", &MissingColumnsError{Columns: []string{"Serial Number", "MAC Address"}}),
			wantCode:    "VAL004",
			wantMessage: "Missing required columns: Serial Number, MAC Address",
		},
		{
			name:        "unknown device",
			err:         &UnknownDeviceError{DeviceID: "XYZ-1"},
			wantCode:    "DEV001",
			wantMessage: `Unknown device type "XYZ-1"`,
		},
		{
			name:        "unconfirmed custom location",
			err:         &SelectionError{Field: "location_confirmed", Message: "confirm the location"},
			wantCode:    "SEL003",
			wantMessage: "Confirm the location",
		},
		{
			name:        "missing company",
			err:         &SelectionError{Field: "company", Message: "enter a company name"},
			wantCode:    "SEL004",
			wantMessage: "Enter a company name",
		},
		{
			name:        "file too large",
			err:         &FileTooLargeError{Limit: 10 * 1024 * 1024},
			wantCode:    "FILE001",
			wantMessage: "File exceeds maximum size limit (10MB)",
		},
		{
			name:        "empty file inside unreadable",
			err:         &UnreadableFileError{FileName: "a.csv", Err: ErrEmptyFile},
			wantCode:    "FILE005",
			wantMessage: "The uploaded file is empty",
		},
		{
			name:        "unsupported extension",
			err:         &UnreadableFileError{FileName: "a.pdf", Err: ErrUnsupportedFileType},
			wantCode:    "FILE003",
			wantMessage: "Unsupported file type",
		},
		{
			name:        "corrupt workbook",
			err:         &UnreadableFileError{FileName: "a.xlsx", Err: errors.New("zip: not a valid zip file")},
			wantCode:    "FILE002",
			wantMessage: "The file could not be read",
		},
		{
			name:        "limiter busy",
			err:         ErrTooManyConversions,
			wantCode:    "UPL002",
			wantMessage: "Too many conversions in progress",
		},
		{
			name:        "context cancelled",
			err:         fmt.Errorf("acquire: %w", context.Canceled),
			wantCode:    "UPL004",
			wantMessage: "Request was cancelled",
		},
		{
			name:        "no file pattern",
			err:         errors.New("no file provided"),
			wantCode:    "FILE004",
			wantMessage: "No file was selected",
		},
		{
			name:        "request body too large pattern",
			err:         errors.New("http: request body too large"),
			wantCode:    "FILE001",
			wantMessage: "File exceeds maximum size limit",
		},
		{
			name:        "rate limit pattern",
			err:         errors.New("rate limit exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("EMPTY FILE uploaded"),
			wantCode:    "FILE005",
			wantMessage: "The uploaded file is empty",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(ErrTooManyConversions)

	expected := "Too many conversions in progress (Code: UPL002). Please wait a moment and try again"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}

	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error is not user facing", nil, false},
		{"typed error is user facing", &UnknownDeviceError{DeviceID: "X"}, true},
		{"unknown error is not user facing", errors.New("random internal error xyz"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}
