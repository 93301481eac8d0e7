package web

// errors.go provides unified error response handling for the web layer.
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err, status), or statusFor(err) to pick one
//  3. Error is mapped via core.MapError to a user-friendly message
//  4. Technical error is logged with the request ID for correlation
//  5. User message is rendered as JSON (API), an alert fragment (HTMX), or
//     a full page

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/adtran-import/internal/core"
	"github.com/JonMunkholm/adtran-import/internal/logging"
	"github.com/JonMunkholm/adtran-import/internal/web/templates"
	"github.com/a-h/templ"
)

// ErrorResponse represents the JSON structure for API error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// errNoFile is returned when the multipart form has no file part.
var errNoFile = errors.New("no file provided")

// statusFor picks the HTTP status for a conversion error.
func statusFor(err error) int {
	var (
		selection  *core.SelectionError
		unknown    *core.UnknownDeviceError
		missing    *core.MissingColumnsError
		tooLarge   *core.FileTooLargeError
		unreadable *core.UnreadableFileError
		maxBytes   *http.MaxBytesError
	)

	switch {
	case errors.As(err, &selection), errors.As(err, &unknown), errors.Is(err, errNoFile):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge), errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &missing), errors.As(err, &unreadable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrTooManyConversions):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs the technical error and writes the mapped user message
// in the format the client expects.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)
	s.logError(r, err, statusCode, userMsg)

	switch {
	case wantsJSON(r):
		writeJSONStatus(w, r, statusCode, ErrorResponse{
			Error:   userMsg.Message,
			Message: userMsg.Message,
			Action:  userMsg.Action,
			Code:    userMsg.Code,
		})
	case isHTMX(r):
		renderHTML(w, r, statusCode, templates.ErrorAlert(userMsg.Message, userMsg.Action, userMsg.Code))
	default:
		renderHTML(w, r, statusCode, templates.Page("Error",
			templates.ErrorAlert(userMsg.Message, userMsg.Action, userMsg.Code)))
	}
}

func (s *Server) logError(r *http.Request, err error, statusCode int, msg core.UserMessage) {
	logger := logging.FromContext(r.Context())
	args := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", msg.Code,
	}
	if statusCode >= http.StatusInternalServerError {
		logger.Error("request error", args...)
	} else {
		logger.Warn("request error", args...)
	}
}

// renderHTML renders a templ component with the given status.
func renderHTML(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render failed", "error", err)
	}
}

// isHTMX checks if the request is an HTMX request.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// wantsJSON checks if the client prefers a JSON response.
// API routes always answer in JSON.
func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
