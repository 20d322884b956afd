package handlers

import (
	"net/http"
	"time"

	"genboard/internal/domain"
	"genboard/internal/infra"
	"genboard/internal/sqlinline"
)

type meResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Locale    string    `json:"locale"`
	Role      string    `json:"role"`
	IsOwner   bool      `json:"is_owner"`
	Credits   int       `json:"credits"`
	CreatedAt time.Time `json:"created_at"`
}

// Me returns the authenticated user's profile.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectUserByID, userID)
	var user domain.User
	if err := row.Scan(&user.ID, &user.Email, &user.Name, &user.Locale, &user.Role, &user.Credits, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if infra.IsNoRows(err) {
			a.error(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load profile")
		return
	}
	a.json(w, http.StatusOK, meResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Locale:    user.Locale,
		Role:      string(user.Role),
		IsOwner:   user.IsOwner(),
		Credits:   user.Credits,
		CreatedAt: user.CreatedAt,
	})
}
