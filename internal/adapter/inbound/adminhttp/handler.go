package adminhttp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"intervals-icu-mcp/configs"
)

// CredentialCheck verifies that the given credentials authenticate against
// Intervals.icu, typically by fetching the athlete profile.
type CredentialCheck func(ctx context.Context, cfg *configs.Config) error

// Handlers struct holds dependencies for the admin HTTP handlers.
type Handlers struct {
	check  CredentialCheck
	logger *slog.Logger
}

// NewHandlers creates a new Handlers struct.
func NewHandlers(check CredentialCheck, logger *slog.Logger) *Handlers {
	return &Handlers{
		check:  check,
		logger: logger.With("component", "adminhttp_handler"),
	}
}

// RegisterAdminRoutes sets up the HTTP routes for admin endpoints.
func (h *Handlers) RegisterAdminRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.handleHealthz)
	mux.HandleFunc("GET /admin/credentials", h.handleCredentials)
}

func (h *Handlers) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}

// CredentialsResponse is the JSON body of GET /admin/credentials.
type CredentialsResponse struct {
	Configured bool   `json:"configured"`
	AthleteID  string `json:"athlete_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

// handleCredentials implements GET /admin/credentials. It re-reads the config
// and, when credentials look plausible, verifies them against the API.
func (h *Handlers) handleCredentials(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	cfg, err := configs.Load()
	if err != nil {
		h.logger.Warn("Failed to load config for credential check", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, CredentialsResponse{Error: err.Error()})
		return
	}
	if !cfg.ValidateCredentials() {
		writeJSON(w, http.StatusOK, CredentialsResponse{Configured: false})
		return
	}

	resp := CredentialsResponse{Configured: true, AthleteID: cfg.AthleteID}
	if h.check != nil {
		if err := h.check(r.Context(), cfg); err != nil {
			h.logger.Warn("Credential verification failed", slog.Any("error", err))
			resp.Error = err.Error()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, body CredentialsResponse) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
