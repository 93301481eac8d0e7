package web

// This file contains shared helpers used across handlers: multipart form
// parsing into a conversion request, and JSON responses.

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/adtran-import/internal/core"
	"github.com/JonMunkholm/adtran-import/internal/logging"
	"github.com/JonMunkholm/adtran-import/internal/web/templates"
)

// multipartMemory is how much of a multipart form is kept in memory
// before spilling to temporary files.
const multipartMemory = 32 << 20

// customLocation is the form value selecting the free-text location field.
const customLocation = "custom"

// conversionForm is a parsed conversion request together with the uploaded
// file. Close must be called when done.
type conversionForm struct {
	FileName string
	File     io.ReadCloser
	Request  core.ConversionRequest
	Values   templates.FormValues
}

func (f *conversionForm) Close() error {
	if f.File == nil {
		return nil
	}
	return f.File.Close()
}

// parseConversionForm reads the multipart fields shared by the preview and
// convert endpoints: file, device, location, custom_location,
// location_confirmed and company.
//
// location may be a preset, "custom" (use custom_location), or, for API
// clients, the custom text itself. The returned form carries the submitted
// values even on error so the page can re-render them.
func (s *Server) parseConversionForm(w http.ResponseWriter, r *http.Request) (*conversionForm, error) {
	limit := s.service.MaxFileSize()
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartMemory)

	form := &conversionForm{}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if isBodyTooLarge(err) {
			return form, &core.FileTooLargeError{Limit: limit}
		}
		return form, &core.UnreadableFileError{FileName: "upload", Err: err}
	}

	form.Values = templates.FormValues{
		DeviceID:       strings.TrimSpace(r.FormValue("device")),
		Location:       r.FormValue("location"),
		CustomLocation: r.FormValue("custom_location"),
		Confirmed:      parseBool(r.FormValue("location_confirmed")),
		Company:        strings.TrimSpace(r.FormValue("company")),
	}

	location := form.Values.Location
	if location == customLocation {
		location = form.Values.CustomLocation
	}
	form.Request = core.ConversionRequest{
		DeviceID:          form.Values.DeviceID,
		Location:          location,
		LocationConfirmed: form.Values.Confirmed,
		Company:           form.Values.Company,
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return form, errNoFile
		}
		return form, &core.UnreadableFileError{FileName: "upload", Err: err}
	}
	form.File = file
	form.FileName = header.Filename
	if header.Size > limit {
		return form, &core.FileTooLargeError{Limit: limit}
	}

	return form, nil
}

func isBodyTooLarge(err error) bool {
	var maxBytes *http.MaxBytesError
	return errors.As(err, &maxBytes) || strings.Contains(err.Error(), "request body too large")
}

// parseBool accepts checkbox and API spellings of true.
func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "yes":
		return true
	}
	b, _ := strconv.ParseBool(strings.TrimSpace(v))
	return b
}

// writeJSON encodes v as JSON with status 200.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	writeJSONStatus(w, r, http.StatusOK, v)
}

// writeJSONStatus encodes v as JSON with the given status.
// Encoding errors are only logged since headers are already sent.
func writeJSONStatus(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("json encode error", "error", err)
	}
}

// deviceOptions builds the form's device selector from the catalog.
func (s *Server) deviceOptions() []templates.DeviceOption {
	devices := s.service.ListDevices()
	opts := make([]templates.DeviceOption, len(devices))
	for i, d := range devices {
		opts[i] = templates.DeviceOption{
			ID:       d.ID,
			Profile:  d.Profile,
			Template: d.NumbersTemplate,
			Preview:  core.PreviewNumbers(d),
		}
	}
	return opts
}
