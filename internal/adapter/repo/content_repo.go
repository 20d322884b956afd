package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"genboard/internal/domain"
	"genboard/internal/infra"
	"genboard/internal/sqlinline"
)

// ContentRepositoryPG implements domain.ContentRepository.
type ContentRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewContentRepository creates a content repository backed by PostgreSQL.
func NewContentRepository(sql infra.SQLExecutor) *ContentRepositoryPG {
	return &ContentRepositoryPG{sql: sql}
}

// Create inserts a new content record in PENDING state.
func (r *ContentRepositoryPG) Create(ctx context.Context, content *domain.Content) error {
	images, err := json.Marshal(content.InputImages)
	if err != nil {
		return fmt.Errorf("encode input images: %w", err)
	}
	_, err = r.sql.Exec(ctx, sqlinline.QInsertContent,
		content.ID,
		content.UserID,
		content.Kind,
		content.Mode,
		content.Prompt,
		images,
		content.FirstFrameImage,
		content.LastFrameImage,
		content.AspectRatio,
		content.Resolution,
		content.OutputFormat,
		content.DurationSeconds,
		content.GenerateAudio,
	)
	return err
}

// GetByID fetches a content record by its identifier.
func (r *ContentRepositoryPG) GetByID(ctx context.Context, contentID string) (*domain.Content, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectContent, contentID)
	return scanContent(row)
}

// GetForUser fetches a content record owned by the given user.
func (r *ContentRepositoryPG) GetForUser(ctx context.Context, contentID, userID string) (*domain.Content, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectContentForUser, contentID, userID)
	return scanContent(row)
}

// ListByUser returns the user's most recent content records.
func (r *ContentRepositoryPG) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Content, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.sql.Query(ctx, sqlinline.QListContentsForUser, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Content
	for rows.Next() {
		content, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *content)
	}
	return items, rows.Err()
}

// MarkGenerating transitions PENDING -> GENERATING and records the provider
// request id so an interrupted poll can be resumed after a restart.
func (r *ContentRepositoryPG) MarkGenerating(ctx context.Context, contentID, providerRequestID string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QMarkContentGenerating, contentID, providerRequestID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: content %s is not pending", domain.ErrNotFound, contentID)
	}
	return nil
}

// Heartbeat bumps updated_at on a GENERATING row. A zero row count means the
// row left GENERATING under another session.
func (r *ContentRepositoryPG) Heartbeat(ctx context.Context, contentID string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QTouchContentGenerating, contentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: content %s is not generating", domain.ErrNotFound, contentID)
	}
	return nil
}

// MarkCompleted transitions GENERATING -> COMPLETED with the result fields.
func (r *ContentRepositoryPG) MarkCompleted(ctx context.Context, contentID, mediaURL, thumbnailURL string, metadata map[string]any) error {
	var meta []byte
	if len(metadata) > 0 {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("encode metadata: %w", err)
		}
		meta = raw
	}
	tag, err := r.sql.Exec(ctx, sqlinline.QMarkContentCompleted, contentID, mediaURL, thumbnailURL, meta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: content %s is not generating", domain.ErrNotFound, contentID)
	}
	return nil
}

// MarkFailed transitions a non-terminal record to FAILED with an error message.
func (r *ContentRepositoryPG) MarkFailed(ctx context.Context, contentID, errorMessage string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QMarkContentFailed, contentID, errorMessage)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: content %s is already terminal", domain.ErrNotFound, contentID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContent(row rowScanner) (*domain.Content, error) {
	var c domain.Content
	var images, metadata []byte
	if err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Kind,
		&c.Mode,
		&c.Prompt,
		&images,
		&c.FirstFrameImage,
		&c.LastFrameImage,
		&c.AspectRatio,
		&c.Resolution,
		&c.OutputFormat,
		&c.DurationSeconds,
		&c.GenerateAudio,
		&c.Status,
		&c.MediaURL,
		&c.ThumbnailURL,
		&c.ErrorMessage,
		&c.ProviderRequestID,
		&metadata,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &c.InputImages); err != nil {
			return nil, fmt.Errorf("decode input images: %w", err)
		}
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &c.Metadata); err != nil {
			return nil, fmt.Errorf("decode metadata: %w", err)
		}
	}
	return &c, nil
}

var _ domain.ContentRepository = (*ContentRepositoryPG)(nil)
