package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/handiism/topsters/internal/catalog"
	"github.com/handiism/topsters/internal/config"
	ioutils "github.com/handiism/topsters/internal/io"
	"github.com/handiism/topsters/internal/logging"
	"github.com/handiism/topsters/internal/pipeline"
)

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Warn().Err(err).Msg("Failed to write JSON response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = message
	writeJSON(w, status, body)

	if status >= http.StatusInternalServerError {
		logging.Error().
			Str("request_id", RequestIDFromContext(r.Context())).
			Str("code", code).
			Str("error", message).
			Msg("Request failed")
	}
}

// writeFailure maps pipeline and catalog errors to HTTP responses.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, config.ErrInvalidSettings), errors.Is(err, catalog.ErrInvalidAlbumID):
		writeError(w, r, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	case errors.Is(err, pipeline.ErrInsufficientData):
		writeError(w, r, http.StatusUnprocessableEntity, "INSUFFICIENT_DATA", err.Error())
	case errors.Is(err, catalog.ErrUnauthorized):
		writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, catalog.ErrRateLimited):
		writeError(w, r, http.StatusTooManyRequests, "RATE_LIMITED", err.Error())
	case errors.Is(err, catalog.ErrUnavailable):
		writeError(w, r, http.StatusServiceUnavailable, "UNAVAILABLE", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		// the Timeout middleware answers when the request deadline passed
		if r.Context().Err() == nil {
			writeError(w, r, http.StatusGatewayTimeout, "TIMEOUT", "upstream request timed out")
		}
	case errors.Is(err, context.Canceled):
		// client went away
	default:
		writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

func writeImage(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logging.Warn().Err(err).Msg("Failed to write image response")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCollage(w http.ResponseWriter, r *http.Request) {
	settings, result, ok := s.render(w, r)
	if !ok {
		return
	}
	name := settings.FileBaseName(time.Now()) + ioutils.Extension(result.CollageFormat)
	writeImage(w, ioutils.MIMEType(result.CollageFormat), name, result.Collage)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	settings, result, ok := s.render(w, r)
	if !ok {
		return
	}
	writeImage(w, "image/png", settings.FileBaseName(time.Now())+"_list.png", result.List)
}

// render runs the collage pipeline for r. It writes the error response
// itself and reports ok=false on failure.
func (s *Server) render(w http.ResponseWriter, r *http.Request) (*config.Settings, *pipeline.Result, bool) {
	settings, err := s.settingsFromQuery(r.URL.Query())
	if err != nil {
		writeFailure(w, r, err)
		return nil, nil, false
	}
	settings.AccessToken = tokenFromContext(r.Context())

	result, err := s.newManager(settings).Run(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return nil, nil, false
	}
	return settings, result, true
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	settings := s.requestSettings()
	if theme := r.URL.Query().Get("theme"); theme != "" {
		if _, ok := config.Palettes[theme]; !ok {
			writeError(w, r, http.StatusBadRequest, "INVALID_REQUEST", fmt.Sprintf("unknown theme %q", theme))
			return
		}
		settings.ApplyTheme(theme)
	}
	settings.AccessToken = tokenFromContext(r.Context())

	result, err := s.newManager(settings).RunRegions(r.Context(), chi.URLParam(r, "album"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeImage(w, "image/png", "topsters_"+result.Album.ID+"_regions.png", result.Chart)
}

// requestSettings returns a private copy of the base settings.
func (s *Server) requestSettings() *config.Settings {
	settings := *s.base
	settings.FontPaths = append([]string(nil), s.base.FontPaths...)
	return &settings
}

// settingsFromQuery applies query parameters on top of the base settings
// and validates the result.
func (s *Server) settingsFromQuery(q url.Values) (*config.Settings, error) {
	settings := s.requestSettings()

	if theme := q.Get("theme"); theme != "" {
		if _, ok := config.Palettes[theme]; !ok {
			return nil, fmt.Errorf("%w: unknown theme %q", config.ErrInvalidSettings, theme)
		}
		settings.ApplyTheme(theme)
	}
	if v := q.Get("kind"); v != "" {
		settings.Kind = strings.ToLower(v)
	}
	if v := q.Get("range"); v != "" {
		settings.TimeRange = strings.ToLower(v)
	}
	if v := q.Get("format"); v != "" {
		settings.Format = strings.ToLower(v)
	}
	if v := q.Get("bg"); v != "" {
		settings.Background = hexColor(v)
	}
	if v := q.Get("border"); v != "" {
		settings.Border = hexColor(v)
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"grid", &settings.GridSize},
		{"gap", &settings.Gap},
		{"size", &settings.ExportSize},
	}
	for _, p := range ints {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be an integer", config.ErrInvalidSettings, p.name)
		}
		*p.dst = n
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func hexColor(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "#") {
		v = "#" + v
	}
	return v
}
