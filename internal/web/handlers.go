package web

import (
	"net/http"

	"github.com/JonMunkholm/adtran-import/internal/core"
	"github.com/JonMunkholm/adtran-import/internal/web/templates"
	"github.com/go-chi/chi/v5"
)

// handleIndex renders the conversion form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderForm(w, r, http.StatusOK, templates.FormValues{Location: core.LocationWarehouse}, nil)
}

// renderForm renders the form page, optionally with an error alert and the
// operator's previous values.
func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, status int, values templates.FormValues, userErr *core.UserMessage) {
	renderHTML(w, r, status, templates.Page("Convert inventory", templates.ConvertForm(templates.FormData{
		Devices:   s.deviceOptions(),
		Presets:   core.PresetLocations(),
		Values:    values,
		MaxSizeMB: s.service.MaxFileSize() / (1024 * 1024),
		Error:     userErr,
	})))
}

// DeviceResponse is the JSON form of a catalog entry.
type DeviceResponse struct {
	ID           string   `json:"id"`
	Profile      string   `json:"profile"`
	Template     string   `json:"template"`
	Placeholders []string `json:"placeholders"`
	Preview      string   `json:"preview"`
}

func deviceResponse(def core.DeviceDefinition) DeviceResponse {
	return DeviceResponse{
		ID:           def.ID,
		Profile:      def.Profile,
		Template:     def.NumbersTemplate,
		Placeholders: core.Placeholders(def.NumbersTemplate),
		Preview:      core.PreviewNumbers(def),
	}
}

// handleListDevices returns the device catalog in display order.
func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	devices := s.service.ListDevices()
	resp := make([]DeviceResponse, len(devices))
	for i, d := range devices {
		resp[i] = deviceResponse(d)
	}
	writeJSON(w, r, resp)
}

// handleDevicePreview returns one device's template rendered with sample values.
func (s *Server) handleDevicePreview(w http.ResponseWriter, r *http.Request) {
	def, err := core.Lookup(chi.URLParam(r, "deviceID"))
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}
	writeJSON(w, r, deviceResponse(def))
}

// HealthResponse reports server liveness and conversion load.
type HealthResponse struct {
	Status      string             `json:"status"`
	Devices     int                `json:"devices"`
	Conversions core.LimiterStatus `json:"conversions"`
}

// handleHealth is the liveness endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, HealthResponse{
		Status:      "ok",
		Devices:     core.DeviceCount(),
		Conversions: s.service.LimiterStatus(),
	})
}
