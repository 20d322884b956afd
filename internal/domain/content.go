package domain

import (
	"fmt"
	"strings"
	"time"
)

// ContentKind enumerates the supported generation categories.
type ContentKind string

const (
	ContentKindImage ContentKind = "IMAGE"
	ContentKindVideo ContentKind = "VIDEO"
)

// GenerationMode enumerates how a generation request sources its material.
// The mode constrains which optional fields are required; see Validate.
type GenerationMode string

const (
	ModeTextToMedia      GenerationMode = "TEXT_TO_MEDIA"
	ModeImageToImage     GenerationMode = "IMAGE_TO_IMAGE"
	ModeImageToVideo     GenerationMode = "IMAGE_TO_VIDEO"
	ModeReferenceToVideo GenerationMode = "REFERENCE_TO_VIDEO"
	ModeFirstLastFrame   GenerationMode = "FIRST_LAST_FRAME"
)

// ContentStatus enumerates content lifecycle states. Transitions are strictly
// PENDING -> GENERATING -> {COMPLETED | FAILED}; terminal states never revert.
type ContentStatus string

const (
	ContentStatusPending    ContentStatus = "PENDING"
	ContentStatusGenerating ContentStatus = "GENERATING"
	ContentStatusCompleted  ContentStatus = "COMPLETED"
	ContentStatusFailed     ContentStatus = "FAILED"
)

// Terminal reports whether no further transition is permitted.
func (s ContentStatus) Terminal() bool {
	return s == ContentStatusCompleted || s == ContentStatusFailed
}

// Credit cost per generation, by kind.
const (
	CreditCostImage = 1
	CreditCostVideo = 10
)

// CreditCost returns the ledger cost for generating one content of the given kind.
func CreditCost(kind ContentKind) int {
	if kind == ContentKindVideo {
		return CreditCostVideo
	}
	return CreditCostImage
}

// Content is the durable record tracking one generation request from
// submission through its terminal outcome.
type Content struct {
	ID                string
	UserID            string
	Kind              ContentKind
	Mode              GenerationMode
	Prompt            string
	InputImages       []string
	FirstFrameImage   string
	LastFrameImage    string
	AspectRatio       string
	Resolution        string
	OutputFormat      string
	DurationSeconds   int
	GenerateAudio     bool
	Status            ContentStatus
	MediaURL          string
	ThumbnailURL      string
	ErrorMessage      string
	ProviderRequestID string
	Metadata          map[string]any
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Validate checks the cross-field rules implied by kind and mode. It runs
// before any external call is made.
func (c *Content) Validate() error {
	if strings.TrimSpace(c.Prompt) == "" {
		return fmt.Errorf("%w: prompt is required", ErrValidation)
	}
	switch c.Kind {
	case ContentKindImage, ContentKindVideo:
	default:
		return fmt.Errorf("%w: unsupported kind %q", ErrValidation, c.Kind)
	}
	switch c.Mode {
	case ModeTextToMedia:
	case ModeImageToImage, ModeReferenceToVideo:
		if len(c.InputImages) == 0 {
			return fmt.Errorf("%w: mode %s requires at least one input image", ErrValidation, c.Mode)
		}
	case ModeImageToVideo:
		if len(c.InputImages) == 0 {
			return fmt.Errorf("%w: mode %s requires a seed image", ErrValidation, c.Mode)
		}
	case ModeFirstLastFrame:
		if c.FirstFrameImage == "" || c.LastFrameImage == "" {
			return fmt.Errorf("%w: mode %s requires first and last frame images", ErrValidation, c.Mode)
		}
	default:
		return fmt.Errorf("%w: unsupported mode %q", ErrValidation, c.Mode)
	}
	if c.Kind == ContentKindImage {
		switch c.Mode {
		case ModeTextToMedia, ModeImageToImage:
		default:
			return fmt.Errorf("%w: mode %s is not valid for images", ErrValidation, c.Mode)
		}
	}
	return nil
}
