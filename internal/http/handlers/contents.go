package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"genboard/internal/domain"
	"genboard/pkg/zip"
)

type contentDTO struct {
	ID           string         `json:"id"`
	Kind         string         `json:"kind"`
	Mode         string         `json:"mode"`
	Prompt       string         `json:"prompt"`
	Status       string         `json:"status"`
	MediaURL     string         `json:"media_url,omitempty"`
	ThumbnailURL string         `json:"thumbnail_url,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func toContentDTO(c domain.Content) contentDTO {
	return contentDTO{
		ID:           c.ID,
		Kind:         string(c.Kind),
		Mode:         string(c.Mode),
		Prompt:       c.Prompt,
		Status:       string(c.Status),
		MediaURL:     c.MediaURL,
		ThumbnailURL: c.ThumbnailURL,
		ErrorMessage: c.ErrorMessage,
		Metadata:     c.Metadata,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ContentStatus returns one content record owned by the caller. Failures that
// happened after the request was accepted surface here as status FAILED with
// a readable error message.
func (a *App) ContentStatus(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	contentID := chi.URLParam(r, "content_id")
	if contentID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "content_id required")
		return
	}
	content, err := a.Contents.GetForUser(r.Context(), contentID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "content not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load content")
		return
	}
	a.json(w, http.StatusOK, toContentDTO(*content))
}

// ContentsList returns the caller's most recent content records.
func (a *App) ContentsList(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	items, err := a.Contents.ListByUser(r.Context(), userID, 50)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load contents")
		return
	}
	dtos := make([]contentDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, toContentDTO(item))
	}
	a.json(w, http.StatusOK, map[string]any{"items": dtos})
}

// ContentsExport streams the caller's content records as a zip of JSON files.
func (a *App) ContentsExport(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	items, err := a.Contents.ListByUser(r.Context(), userID, 500)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load contents")
		return
	}
	entries := make([]zip.Entry, 0, len(items))
	for _, item := range items {
		data, err := json.MarshalIndent(toContentDTO(item), "", "  ")
		if err != nil {
			continue
		}
		entries = append(entries, zip.Entry{
			Filename: fmt.Sprintf("%s.json", item.ID),
			Data:     data,
		})
	}
	archive := zip.Archive(entries)
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", "attachment; filename=contents.zip")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}
