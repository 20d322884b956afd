package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"genboard/internal/domain"
	"genboard/internal/generation"
	"genboard/internal/infra"
	"genboard/internal/infra/credentials"
	"genboard/internal/middleware"
)

// App is the handler container; everything it needs is injected by main.
type App struct {
	SQL          infra.SQLExecutor
	Logger       infra.Logger
	Config       *infra.Config
	Orchestrator *generation.Orchestrator
	Contents     domain.ContentRepository
	Ledger       domain.CreditLedger
	Credentials  *credentials.Store
	Validate     *validator.Validate
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]any{
		"error":   errCode,
		"message": message,
	})
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
