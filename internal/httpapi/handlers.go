package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/TTMK7777/Japan-Disaster-Alert/internal/locale"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/quake"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/render"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/warning"
)

type earthquakeResponse struct {
	quake.Earthquake
	LocationTranslated       string `json:"location_translated,omitempty"`
	TsunamiWarningTranslated string `json:"tsunami_warning_translated,omitempty"`
	Message                  string `json:"message"`
	MessageTranslated        string `json:"message_translated,omitempty"`
}

func (s *Server) handleEarthquakes(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)
	lang := locale.Normalize(r.URL.Query().Get("lang"))

	quakes, err := s.quakes.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	out := make([]earthquakeResponse, 0, len(quakes))
	for _, eq := range quakes {
		magnitude := strconv.FormatFloat(eq.Magnitude, 'f', -1, 64)
		depth := strconv.Itoa(eq.Depth)

		resp := earthquakeResponse{
			Earthquake: eq,
			Message: render.EarthquakeReport(
				locale.Source, eq.Location, magnitude, eq.MaxIntensity, depth, eq.TsunamiWarning, eq.TsunamiWarning),
		}
		if lang != locale.Source {
			resp.LocationTranslated = s.resolver.Resolve(r.Context(), eq.Location, lang)
			resp.TsunamiWarningTranslated = s.resolver.Resolve(r.Context(), eq.TsunamiWarning, lang)
			resp.MessageTranslated = render.EarthquakeReport(
				lang, resp.LocationTranslated, magnitude, eq.MaxIntensity, depth, eq.TsunamiWarning, resp.TsunamiWarningTranslated)
		}
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, out)
}

type weatherResponse struct {
	Area             string `json:"area"`
	AreaCode         string `json:"area_code"`
	PublishingOffice string `json:"publishing_office"`
	ReportDatetime   string `json:"report_datetime"`
	Headline         string `json:"headline,omitempty"`
	Text             string `json:"text"`
	TextTranslated   string `json:"text_translated,omitempty"`
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	areaCode := chi.URLParam(r, "areaCode")
	lang := locale.Normalize(r.URL.Query().Get("lang"))

	overview, err := s.feeds.WeatherOverview(r.Context(), areaCode)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	resp := weatherResponse{
		Area:             overview.TargetArea,
		AreaCode:         areaCode,
		PublishingOffice: overview.PublishingOffice,
		ReportDatetime:   overview.ReportDatetime,
		Headline:         overview.HeadlineText,
		Text:             overview.Text,
	}
	if lang != locale.Source {
		resp.TextTranslated = s.resolver.Resolve(r.Context(), overview.Text, lang)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	areaCode := r.URL.Query().Get("area_code")
	if areaCode == "" {
		areaCode = "130000"
	}
	lang := locale.Normalize(r.URL.Query().Get("lang"))

	report, err := s.feeds.Warnings(r.Context(), areaCode)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	alerts := s.classifier.Classify(report, areaCode, lang)
	if alerts == nil {
		alerts = []warning.Alert{}
	}
	writeJSON(w, http.StatusOK, alerts)
}

func (s *Server) handleSpecialWarnings(w http.ResponseWriter, r *http.Request) {
	lang := locale.Normalize(r.URL.Query().Get("lang"))

	alerts := s.aggregator.SpecialWarnings(r.Context(), locale.Source)
	if lang != locale.Source {
		for i := range alerts {
			alerts[i].TitleTranslated = s.resolver.Resolve(r.Context(), alerts[i].Title, lang)
			alerts[i].DescriptionTranslated = s.resolver.Resolve(r.Context(), alerts[i].Description, lang)
		}
	}
	if alerts == nil {
		alerts = []warning.Alert{}
	}
	writeJSON(w, http.StatusOK, alerts)
}

type translateRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"target_lang"`
}

type translateResponse struct {
	Original   string `json:"original"`
	Translated string `json:"translated"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	if req.TargetLang == "" {
		req.TargetLang = "en"
	}

	lang := locale.Normalize(req.TargetLang)
	writeJSON(w, http.StatusOK, translateResponse{
		Original:   req.Text,
		Translated: s.resolver.Resolve(r.Context(), req.Text, lang),
		SourceLang: locale.Source,
		TargetLang: lang,
	})
}

type shelterResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	NameTranslated string   `json:"name_translated,omitempty"`
	Address        string   `json:"address"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	Distance       float64  `json:"distance"`
	Capacity       int      `json:"capacity,omitempty"`
	Facilities     []string `json:"facilities"`
	IsOpen         bool     `json:"is_open"`
	Phone          string   `json:"phone,omitempty"`
	Types          []string `json:"types"`
}

func (s *Server) handleShelters(w http.ResponseWriter, r *http.Request) {
	if s.shelters == nil {
		writeError(w, http.StatusNotImplemented, "shelter registry is not configured")
		return
	}

	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		writeError(w, http.StatusBadRequest, "lat and lon are required")
		return
	}

	radius := queryFloat(r, "radius", 5.0)
	limit := queryInt(r, "limit", 20)
	disasterType := r.URL.Query().Get("disaster_type")
	lang := locale.Normalize(r.URL.Query().Get("lang"))

	out := make([]shelterResponse, 0)
	for _, sh := range s.shelters.Nearby(lat, lon, radius, limit, disasterType) {
		resp := shelterResponse{
			ID:         sh.ID,
			Name:       sh.Name,
			Address:    sh.Address,
			Latitude:   sh.Latitude,
			Longitude:  sh.Longitude,
			Distance:   sh.Distance,
			Capacity:   sh.Capacity,
			Facilities: sh.Facilities,
			IsOpen:     sh.IsOpen,
			Phone:      sh.Phone,
			Types:      sh.Types,
		}
		if lang != locale.Source {
			resp.NameTranslated = s.resolver.Resolve(r.Context(), sh.Name, lang)
		}
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleShelterTypes(w http.ResponseWriter, r *http.Request) {
	if s.shelters == nil {
		writeError(w, http.StatusNotImplemented, "shelter registry is not configured")
		return
	}
	writeJSON(w, http.StatusOK, s.shelters.DisasterTypes())
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, locale.Names())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"service":   serviceName,
		"version":   serviceVersion,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	if value := r.URL.Query().Get(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func queryFloat(r *http.Request, key string, defaultValue float64) float64 {
	if value := r.URL.Query().Get(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": msg,
	})
}
