package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"moa/internal/birthday"
	"moa/internal/domain"
	"moa/internal/middleware"
)

const maxBodyBytes = 1 << 20

type App struct {
	Engine *birthday.Service
	Logger zerolog.Logger
}

func NewApp(engine *birthday.Service, logger zerolog.Logger) *App {
	return &App{Engine: engine, Logger: logger.With().Str("component", "http").Logger()}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]any{
		"error": map[string]string{"code": errCode, "message": message},
	})
}

// fail renders err according to its domain kind. Anything unclassified is
// logged and reported as a bare internal error.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.KindOf(err)
	switch kind {
	case "not_found":
		a.error(w, http.StatusNotFound, kind, domain.Reason(err))
	case "forbidden":
		a.error(w, http.StatusForbidden, kind, domain.Reason(err))
	case "validation_error":
		a.error(w, http.StatusBadRequest, kind, domain.Reason(err))
	case "conflict":
		a.error(w, http.StatusConflict, kind, domain.Reason(err))
	default:
		a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func (a *App) decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (a *App) badRequest(w http.ResponseWriter, err error) {
	msg := "invalid payload"
	if err != nil && strings.HasPrefix(err.Error(), "json: unknown field") {
		msg = err.Error()
	}
	a.error(w, http.StatusBadRequest, "bad_request", msg)
}
