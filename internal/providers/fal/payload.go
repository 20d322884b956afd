package fal

import (
	"fmt"

	"genboard/internal/domain"
)

// Queue endpoints by kind and mode.
const (
	endpointTextToImage      = "fal-ai/imagen4"
	endpointImageEdit        = "fal-ai/nano-banana/edit"
	endpointTextToVideo      = "fal-ai/veo3"
	endpointImageToVideo     = "fal-ai/veo3/image-to-video"
	endpointReferenceToVideo = "fal-ai/veo3/reference-to-video"
	endpointFirstLastFrame   = "fal-ai/vidu/start-end-to-video"
)

// Reference-to-video clips are always 8 seconds regardless of the request.
const referenceVideoSeconds = 8

const (
	defaultImageAspect  = "1:1"
	defaultVideoAspect  = "16:9"
	defaultResolution   = "720p"
	defaultOutputFormat = "png"
	defaultVideoSeconds = 8
)

// Endpoint returns the queue endpoint for a kind and mode without building a
// payload. The recovery sweep uses it to resume polling from a persisted
// request id.
func Endpoint(kind domain.ContentKind, mode domain.GenerationMode) (string, error) {
	switch {
	case kind == domain.ContentKindImage && mode == domain.ModeTextToMedia:
		return endpointTextToImage, nil
	case kind == domain.ContentKindImage && mode == domain.ModeImageToImage:
		return endpointImageEdit, nil
	case kind == domain.ContentKindVideo && mode == domain.ModeTextToMedia:
		return endpointTextToVideo, nil
	case kind == domain.ContentKindVideo && mode == domain.ModeImageToVideo:
		return endpointImageToVideo, nil
	case kind == domain.ContentKindVideo && mode == domain.ModeReferenceToVideo:
		return endpointReferenceToVideo, nil
	case kind == domain.ContentKindVideo && mode == domain.ModeFirstLastFrame:
		return endpointFirstLastFrame, nil
	}
	return "", fmt.Errorf("%w: unsupported kind %q mode %q", domain.ErrValidation, kind, mode)
}

// SubmitJob is a fully resolved queue submission: the endpoint to post to and
// the provider payload.
type SubmitJob struct {
	Endpoint string
	Payload  map[string]any
}

// BuildJob maps a validated content record onto the provider endpoint and
// payload for its kind and mode. It is a pure function and performs the last
// field checks before any network call.
func BuildJob(c *domain.Content) (SubmitJob, error) {
	aspect := c.AspectRatio
	if aspect == "" {
		aspect = defaultVideoAspect
		if c.Kind == domain.ContentKindImage {
			aspect = defaultImageAspect
		}
	}
	resolution := c.Resolution
	if resolution == "" {
		resolution = defaultResolution
	}
	seconds := c.DurationSeconds
	if seconds <= 0 {
		seconds = defaultVideoSeconds
	}

	switch {
	case c.Kind == domain.ContentKindImage && c.Mode == domain.ModeTextToMedia:
		format := c.OutputFormat
		if format == "" {
			format = defaultOutputFormat
		}
		return SubmitJob{
			Endpoint: endpointTextToImage,
			Payload: map[string]any{
				"prompt":        c.Prompt,
				"aspect_ratio":  aspect,
				"output_format": format,
				"resolution":    resolution,
			},
		}, nil

	case c.Kind == domain.ContentKindImage && c.Mode == domain.ModeImageToImage:
		if len(c.InputImages) == 0 {
			return SubmitJob{}, fmt.Errorf("%w: image edit requires input images", domain.ErrValidation)
		}
		return SubmitJob{
			Endpoint: endpointImageEdit,
			Payload: map[string]any{
				"prompt":       c.Prompt,
				"image_urls":   c.InputImages,
				"aspect_ratio": aspect,
			},
		}, nil

	case c.Kind == domain.ContentKindVideo && c.Mode == domain.ModeTextToMedia:
		return SubmitJob{
			Endpoint: endpointTextToVideo,
			Payload: map[string]any{
				"prompt":         c.Prompt,
				"aspect_ratio":   aspect,
				"resolution":     resolution,
				"duration":       durationString(seconds),
				"generate_audio": c.GenerateAudio,
			},
		}, nil

	case c.Kind == domain.ContentKindVideo && c.Mode == domain.ModeImageToVideo:
		if len(c.InputImages) == 0 {
			return SubmitJob{}, fmt.Errorf("%w: image-to-video requires a seed image", domain.ErrValidation)
		}
		return SubmitJob{
			Endpoint: endpointImageToVideo,
			Payload: map[string]any{
				"prompt":         c.Prompt,
				"image_url":      c.InputImages[0],
				"resolution":     resolution,
				"generate_audio": c.GenerateAudio,
			},
		}, nil

	case c.Kind == domain.ContentKindVideo && c.Mode == domain.ModeReferenceToVideo:
		if len(c.InputImages) == 0 {
			return SubmitJob{}, fmt.Errorf("%w: reference-to-video requires reference images", domain.ErrValidation)
		}
		return SubmitJob{
			Endpoint: endpointReferenceToVideo,
			Payload: map[string]any{
				"prompt":         c.Prompt,
				"image_urls":     c.InputImages,
				"resolution":     resolution,
				"duration":       durationString(referenceVideoSeconds),
				"generate_audio": c.GenerateAudio,
			},
		}, nil

	case c.Kind == domain.ContentKindVideo && c.Mode == domain.ModeFirstLastFrame:
		if c.FirstFrameImage == "" || c.LastFrameImage == "" {
			return SubmitJob{}, fmt.Errorf("%w: first/last-frame requires both frame images", domain.ErrValidation)
		}
		return SubmitJob{
			Endpoint: endpointFirstLastFrame,
			Payload: map[string]any{
				"prompt":          c.Prompt,
				"start_image_url": c.FirstFrameImage,
				"end_image_url":   c.LastFrameImage,
				"aspect_ratio":    aspect,
				"resolution":      resolution,
				"duration":        durationString(seconds),
				"generate_audio":  c.GenerateAudio,
			},
		}, nil
	}

	return SubmitJob{}, fmt.Errorf("%w: unsupported kind %q mode %q", domain.ErrValidation, c.Kind, c.Mode)
}

func durationString(seconds int) string {
	return fmt.Sprintf("%ds", seconds)
}
