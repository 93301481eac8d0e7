package core

// # Error Codes Reference
//
// Technical errors are mapped to user-facing messages with a code that
// operators can quote when asking for help.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: the upload exceeds the size limit
//	FILE002 - Unreadable file: the file could not be parsed as CSV or XLSX
//	FILE003 - Unsupported file type: extension is not .csv/.tsv/.txt/.xlsx/.xlsm
//	FILE004 - No file: no file was attached to the request
//	FILE005 - Empty file: no header row found
//
// # Column Errors (VAL004)
//
//	VAL004 - Missing required columns: serial number and/or MAC address
//	         column could not be found. The message names the columns.
//
// # Selection Errors (DEV001, SEL001-SEL099)
//
//	DEV001 - Unknown device type
//	SEL001 - No device type selected
//	SEL002 - No location selected or entered
//	SEL003 - Custom location not confirmed
//	SEL004 - No company name entered
//
// # Conversion Errors (UPL002-UPL005)
//
//	UPL002 - System busy: too many conversions in progress
//	UPL004 - Request cancelled
//	UPL005 - Request timeout
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error. Check the server logs for the technical error.
//
// Typed errors from this package are matched first with errors.As. Other
// errors fall back to case-insensitive substring patterns; the first
// matching pattern wins.

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern maps a technical error substring to a user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var (
	msgFileTooLarge = UserMessage{
		Message: "File exceeds maximum size limit",
		Action:  "Split the inventory into smaller files",
		Code:    "FILE001",
	}
	msgUnreadable = UserMessage{
		Message: "The file could not be read",
		Action:  "Export the inventory again as CSV or XLSX",
		Code:    "FILE002",
	}
	msgUnsupported = UserMessage{
		Message: "Unsupported file type",
		Action:  "Upload a .csv or .xlsx file",
		Code:    "FILE003",
	}
	msgNoFile = UserMessage{
		Message: "No file was selected",
		Action:  "Choose an inventory file to convert",
		Code:    "FILE004",
	}
	msgEmptyFile = UserMessage{
		Message: "The uploaded file is empty",
		Action:  "Upload a file with a header row and device rows",
		Code:    "FILE005",
	}
	msgBusy = UserMessage{
		Message: "Too many conversions in progress",
		Action:  "Please wait a moment and try again",
		Code:    "UPL002",
	}
	msgCancelled = UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "UPL004",
	}
	msgTimeout = UserMessage{
		Message: "Request timed out",
		Action:  "Try a smaller file or check your connection",
		Code:    "UPL005",
	}
)

var selectionCodes = map[string]string{
	"device":             "SEL001",
	"location":           "SEL002",
	"location_confirmed": "SEL003",
	"company":            "SEL004",
}

// errorPatterns are checked in order after the typed errors.
var errorPatterns = []errorPattern{
	{pattern: "file too large", msg: msgFileTooLarge},
	{pattern: "request body too large", msg: msgFileTooLarge},
	{pattern: "unsupported file type", msg: msgUnsupported},
	{pattern: "empty file", msg: msgEmptyFile},
	{pattern: "no file provided", msg: msgNoFile},
	{pattern: "unreadable input file", msg: msgUnreadable},
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "Required column is missing from the file",
			Action:  "Check that the file has Serial Number and MAC Address columns",
			Code:    "VAL004",
		},
	},
	{
		pattern: "unknown device type",
		msg: UserMessage{
			Message: "Unknown device type",
			Action:  "Pick a device type from the list",
			Code:    "DEV001",
		},
	},
	{pattern: "too many concurrent conversions", msg: msgBusy},
	{pattern: "context canceled", msg: msgCancelled},
	{pattern: "context deadline exceeded", msg: msgTimeout},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error into a user-friendly message.
// Returns an empty UserMessage for nil errors.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	if msg, ok := mapTypedError(err); ok {
		return msg
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// mapTypedError handles this package's error types. Messages that name
// columns or selections are passed through so the operator sees them verbatim.
func mapTypedError(err error) (UserMessage, bool) {
	var (
		missing    *MissingColumnsError
		unknown    *UnknownDeviceError
		selection  *SelectionError
		tooLarge   *FileTooLargeError
		unreadable *UnreadableFileError
	)

	switch {
	case errors.As(err, &missing):
		return UserMessage{
			Message: missing.Error(),
			Action:  "Check the file's headers; accepted names include Serial Number, SN, MAC and MAC Address",
			Code:    "VAL004",
		}, true

	case errors.As(err, &unknown):
		return UserMessage{
			Message: fmt.Sprintf("Unknown device type %q", unknown.DeviceID),
			Action:  "Pick a device type from the list",
			Code:    "DEV001",
		}, true

	case errors.As(err, &selection):
		code, ok := selectionCodes[selection.Field]
		if !ok {
			code = "SEL001"
		}
		return UserMessage{
			Message: strings.ToUpper(selection.Message[:1]) + selection.Message[1:],
			Action:  "Complete the form and submit again",
			Code:    code,
		}, true

	case errors.As(err, &tooLarge):
		msg := msgFileTooLarge
		msg.Message = fmt.Sprintf("File exceeds maximum size limit (%dMB)", tooLarge.Limit/(1024*1024))
		return msg, true

	case errors.Is(err, ErrTooManyConversions):
		return msgBusy, true

	case errors.Is(err, context.Canceled):
		return msgCancelled, true

	case errors.Is(err, context.DeadlineExceeded):
		return msgTimeout, true

	case errors.As(err, &unreadable):
		switch {
		case errors.Is(unreadable.Err, ErrEmptyFile):
			return msgEmptyFile, true
		case errors.Is(unreadable.Err, ErrUnsupportedFileType):
			return msgUnsupported, true
		}
		return msgUnreadable, true
	}

	return UserMessage{}, false
}

// FormatUserError returns a formatted user-friendly error string.
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether the error maps to a specific message
// rather than the generic fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
