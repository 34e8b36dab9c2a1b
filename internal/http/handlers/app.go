package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Masty1988/my-social-flow/internal/audit"
	"github.com/Masty1988/my-social-flow/internal/domain"
	"github.com/Masty1988/my-social-flow/internal/infra"
	"github.com/Masty1988/my-social-flow/internal/middleware"
	"github.com/Masty1988/my-social-flow/internal/providers/generation"
)

// App is the handler container. Generators are capability interfaces so tests
// and alternative providers can be substituted.
type App struct {
	Logger   zerolog.Logger
	Config   *infra.Config
	TextGen  generation.TextGenerator
	ImageGen generation.ImageGenerator
	Audit    audit.Recorder
}

func NewApp(cfg *infra.Config, logger zerolog.Logger, textGen generation.TextGenerator, imageGen generation.ImageGenerator, recorder audit.Recorder) *App {
	if recorder == nil {
		recorder = audit.NopRecorder{}
	}
	return &App{
		Logger:   logger,
		Config:   cfg,
		TextGen:  textGen,
		ImageGen: imageGen,
		Audit:    recorder,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, kind, message string) {
	a.json(w, code, map[string]string{"error": kind, "message": message})
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

// generationError maps the error taxonomy to status codes and stable
// user-presentable messages at the boundary. Parse failures answer with a
// "try again" message, never raw parser diagnostics.
func (a *App) generationError(w http.ResponseWriter, r *http.Request, err error) {
	a.Logger.Error().
		Err(err).
		Str("request_id", middleware.RequestIDFromContext(r.Context())).
		Str("path", r.URL.Path).
		Msg("generation failed")
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrMisconfigured):
		a.error(w, http.StatusInternalServerError, "misconfigured", "server configuration error - API key missing")
	case errors.Is(err, domain.ErrUnparseableResponse):
		a.error(w, http.StatusInternalServerError, "unparseable_response", "the model returned a response that could not be interpreted - please try again")
	case errors.Is(err, domain.ErrNoImageProduced):
		a.error(w, http.StatusInternalServerError, "no_image", "no image was produced - please try again")
	case errors.Is(err, domain.ErrUpstreamFailure):
		a.error(w, http.StatusInternalServerError, "upstream_failure", "the generation backend failed - please try again")
	default:
		a.error(w, http.StatusInternalServerError, "internal", "generation failed")
	}
}
