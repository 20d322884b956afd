package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"genboard/internal/domain"
	"genboard/internal/middleware"
	"genboard/internal/sqlinline"
)

type generateRequest struct {
	Kind            string   `json:"kind" validate:"required,oneof=IMAGE VIDEO"`
	Mode            string   `json:"mode" validate:"required,oneof=TEXT_TO_MEDIA IMAGE_TO_IMAGE IMAGE_TO_VIDEO REFERENCE_TO_VIDEO FIRST_LAST_FRAME"`
	Prompt          string   `json:"prompt" validate:"required"`
	InputImages     []string `json:"input_images" validate:"omitempty,dive,url"`
	FirstFrameImage string   `json:"first_frame_image" validate:"omitempty,url"`
	LastFrameImage  string   `json:"last_frame_image" validate:"omitempty,url"`
	AspectRatio     string   `json:"aspect_ratio"`
	Resolution      string   `json:"resolution"`
	OutputFormat    string   `json:"output_format"`
	DurationSeconds int      `json:"duration_seconds" validate:"omitempty,min=1,max=60"`
	GenerateAudio   bool     `json:"generate_audio"`
}

type generateResponse struct {
	ContentID string `json:"content_id"`
	Status    string `json:"status"`
}

// ContentsGenerate accepts a generation request, charges nothing up front and
// responds as soon as the job is queued with the provider. The eventual
// outcome lands on the content record.
func (a *App) ContentsGenerate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := a.Validate.Struct(req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	content := &domain.Content{
		ID:              uuid.NewString(),
		UserID:          userID,
		Kind:            domain.ContentKind(req.Kind),
		Mode:            domain.GenerationMode(req.Mode),
		Prompt:          req.Prompt,
		InputImages:     req.InputImages,
		FirstFrameImage: req.FirstFrameImage,
		LastFrameImage:  req.LastFrameImage,
		AspectRatio:     req.AspectRatio,
		Resolution:      req.Resolution,
		OutputFormat:    req.OutputFormat,
		DurationSeconds: req.DurationSeconds,
		GenerateAudio:   req.GenerateAudio,
	}

	if err := a.Orchestrator.Generate(r.Context(), content); err != nil {
		a.writeGenerateError(w, err)
		return
	}

	a.recordUsage(r, userID, content)

	a.json(w, http.StatusAccepted, generateResponse{
		ContentID: content.ID,
		Status:    string(content.Status),
	})
}

func (a *App) writeGenerateError(w http.ResponseWriter, err error) {
	if ice, ok := domain.IsInsufficientCredit(err); ok {
		a.json(w, http.StatusPaymentRequired, map[string]any{
			"error":     "insufficient_credit",
			"message":   ice.Error(),
			"required":  ice.Required,
			"available": ice.Available,
		})
		return
	}
	switch {
	case errors.Is(err, domain.ErrValidation):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrConfiguration):
		a.Logger.Error().Err(err).Msg("generation rejected: platform misconfigured")
		a.error(w, http.StatusInternalServerError, "not_configured", "generation is not configured, contact the operator")
	case errors.Is(err, domain.ErrProviderSubmission), errors.Is(err, domain.ErrProviderProtocol):
		a.Logger.Error().Err(err).Msg("generation rejected by provider")
		a.error(w, http.StatusInternalServerError, "provider_error", "the generation provider rejected the job")
	default:
		a.Logger.Error().Err(err).Msg("generation failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to queue generation")
	}
}

func (a *App) recordUsage(r *http.Request, userID string, content *domain.Content) {
	props, _ := json.Marshal(map[string]any{
		"kind": content.Kind,
		"mode": content.Mode,
	})
	country := middleware.CountryFromContext(r.Context())
	if _, err := a.SQL.Exec(r.Context(), sqlinline.QInsertUsageEvent, userID, content.ID, "GENERATION_SUBMITTED", country, props); err != nil {
		a.Logger.Warn().Err(err).Str("content_id", content.ID).Msg("usage event insert failed")
	}
}
