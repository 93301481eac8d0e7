package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/adtran-import/internal/core"
	"github.com/JonMunkholm/adtran-import/internal/logging"
	"github.com/JonMunkholm/adtran-import/internal/web/templates"
)

// previewRecords is how many output records a preview returns.
const previewRecords = 10

// maxWarningHeaders caps the X-Conversion-Warning headers on a download.
const maxWarningHeaders = 50

// PreviewResponse summarizes a conversion without producing the file.
type PreviewResponse struct {
	ConversionID string               `json:"conversion_id"`
	FileName     string               `json:"file_name"`
	Device       string               `json:"device"`
	Profile      string               `json:"profile"`
	Location     string               `json:"location"`
	Columns      core.ResolvedColumns `json:"columns"`
	TotalRows    int                  `json:"total_rows"`
	RecordCount  int                  `json:"record_count"`
	Skipped      int                  `json:"skipped"`
	Warnings     []core.RowWarning    `json:"warnings"`
	Records      []core.OutputRecord  `json:"records"`
}

// convert parses the form and runs the conversion.
func (s *Server) convert(w http.ResponseWriter, r *http.Request) (*conversionForm, *core.ConversionResult, error) {
	form, err := s.parseConversionForm(w, r)
	if err != nil {
		return form, nil, err
	}
	defer form.Close()

	ctx := withRequestMetadata(r.Context(), r)
	result, err := s.service.ConvertFile(ctx, form.FileName, form.File, form.Request)
	return form, result, err
}

// handlePreviewJSON runs a conversion and returns a JSON summary with the
// first few records.
func (s *Server) handlePreviewJSON(w http.ResponseWriter, r *http.Request) {
	_, result, err := s.convert(w, r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	warnings := result.Warnings
	if warnings == nil {
		warnings = []core.RowWarning{}
	}
	writeJSON(w, r, PreviewResponse{
		ConversionID: result.ID,
		FileName:     result.FileName,
		Device:       result.Device.ID,
		Profile:      result.Device.Profile,
		Location:     result.Location,
		Columns:      result.Columns,
		TotalRows:    result.TotalRows,
		RecordCount:  len(result.Records),
		Skipped:      result.Skipped(),
		Warnings:     warnings,
		Records:      firstRecords(result.Records),
	})
}

// handlePreviewPage is the HTML counterpart of handlePreviewJSON.
func (s *Server) handlePreviewPage(w http.ResponseWriter, r *http.Request) {
	form, result, err := s.convert(w, r)
	if err != nil {
		s.formError(w, r, form, err)
		return
	}

	renderHTML(w, r, http.StatusOK, templates.Page("Preview", templates.PreviewPage(templates.PreviewData{
		FileName:  result.FileName,
		Device:    result.Device.ID,
		Location:  result.Location,
		Columns:   result.Columns,
		TotalRows: result.TotalRows,
		Records:   firstRecords(result.Records),
		Warnings:  warningStrings(result.Warnings),
	})))
}

// handleConvert runs a conversion and streams the import file as a CSV
// attachment. Row counts and skipped-row warnings are reported in
// X-Conversion-* headers.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	form, result, err := s.convert(w, r)
	if err != nil {
		if wantsJSON(r) {
			s.respondError(w, r, err, statusFor(err))
		} else {
			s.formError(w, r, form, err)
		}
		return
	}

	var buf bytes.Buffer
	if err := result.WriteCSV(&buf); err != nil {
		s.respondError(w, r, fmt.Errorf("write output: %w", err), http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "text/csv; charset=utf-8")
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	h.Set("X-Conversion-Id", result.ID)
	h.Set("X-Conversion-Rows", strconv.Itoa(len(result.Records)))
	h.Set("X-Conversion-Skipped", strconv.Itoa(result.Skipped()))
	for i, warn := range result.Warnings {
		if i == maxWarningHeaders {
			break
		}
		h.Add("X-Conversion-Warning", warn.String())
	}

	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).Warn("download interrupted",
			"conversion_id", result.ID, "error", err)
	}
}

// formError re-renders the form with the operator's values and the mapped
// error message.
func (s *Server) formError(w http.ResponseWriter, r *http.Request, form *conversionForm, err error) {
	status := statusFor(err)
	msg := core.MapError(err)
	s.logError(r, err, status, msg)

	var values templates.FormValues
	if form != nil {
		values = form.Values
	}
	s.renderForm(w, r, status, values, &msg)
}

func firstRecords(records []core.OutputRecord) []core.OutputRecord {
	if len(records) > previewRecords {
		return records[:previewRecords]
	}
	if records == nil {
		return []core.OutputRecord{}
	}
	return records
}

func warningStrings(warnings []core.RowWarning) []string {
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = w.String()
	}
	return out
}
