package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"studio/internal/infra"
	"studio/internal/middleware"
	"studio/internal/studio"
)

// Studio is the orchestration surface the handlers drive.
type Studio interface {
	Generate(ctx context.Context, rawPrompt string, kind studio.Kind, aspectRatio string) (*studio.GenerationResult, error)
	Understand(ctx context.Context, req studio.UnderstandingRequest) (*studio.UnderstandingResult, error)
	UpdateDisplay(png []byte) error
	Artifact() (string, []byte, error)
	Snapshot() (*studio.GenerationResult, []byte, error)
}

// App bundles the dependencies shared by all handlers.
type App struct {
	Config *infra.Config
	Logger *infra.Logger
	Studio Studio
}

// NewApp constructs the handler container.
func NewApp(cfg *infra.Config, logger *infra.Logger, st Studio) *App {
	return &App{Config: cfg, Logger: logger, Studio: st}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// error writes the localized error envelope. detail carries the upstream
// service's own message and is never localized.
func (a *App) error(w http.ResponseWriter, r *http.Request, status int, code, messageKey, detail string) {
	locale := middleware.LocaleFromContext(r.Context())
	a.json(w, status, errorEnvelope{Error: errorBody{
		Code:    code,
		Message: localize(messageKey, locale),
		Detail:  detail,
	}})
}
