package handlers

import (
	"net/http"

	"genboard/internal/sqlinline"
)

// Stats summarizes the caller's generation history.
func (a *App) Stats(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QStatsForUser, userID)
	var imagesTotal, videosTotal, completed, failed, inFlight, creditsSpent int64
	if err := row.Scan(&imagesTotal, &videosTotal, &completed, &failed, &inFlight, &creditsSpent); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"images_total":  imagesTotal,
		"videos_total":  videosTotal,
		"completed":     completed,
		"failed":        failed,
		"in_flight":     inFlight,
		"credits_spent": creditsSpent,
	})
}
