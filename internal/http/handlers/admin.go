package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"genboard/internal/domain"
	"genboard/internal/middleware"
)

type credentialUpsertRequest struct {
	Provider string `json:"provider" validate:"required"`
	APIKey   string `json:"api_key" validate:"required"`
}

// AdminSetCredential stores the shared provider credential under the owner
// principal. Only the owner may call it.
func (a *App) AdminSetCredential(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	if middleware.RoleFromContext(r.Context()) != string(domain.UserRoleOwner) {
		a.error(w, http.StatusForbidden, "forbidden", "owner role required")
		return
	}
	var req credentialUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := a.Validate.Struct(req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if err := a.Credentials.SetProviderKey(r.Context(), req.Provider, req.APIKey, nil); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			a.error(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		a.Logger.Error().Err(err).Msg("credential upsert failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to store credential")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
