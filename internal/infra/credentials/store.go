package credentials

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"genboard/internal/domain"
	"genboard/internal/infra"
	"genboard/internal/sqlinline"
)

const (
	ProviderFal = "fal"
)

// Store resolves the shared service credential held by the platform-owner
// principal. All generation traffic uses this one credential, never a
// per-user key.
type Store struct {
	sql infra.SQLExecutor
}

func NewStore(sql infra.SQLExecutor) *Store {
	return &Store{sql: sql}
}

// FalAPIKey resolves the fal credential for the owner principal.
func (s *Store) FalAPIKey(ctx context.Context) (string, error) {
	return s.ProviderKey(ctx, ProviderFal)
}

// ProviderKey looks up the owner principal and its credential for provider.
// Both lookups are read-only; a missing principal or credential is an
// operator-facing configuration error, not a user error.
func (s *Store) ProviderKey(ctx context.Context, provider string) (string, error) {
	ownerID, err := s.ownerID(ctx)
	if err != nil {
		return "", err
	}
	row := s.sql.QueryRow(ctx, sqlinline.QSelectIntegrationToken, ownerID, provider)
	var token string
	if err := row.Scan(&token); err != nil {
		if infra.IsNoRows(err) {
			return "", fmt.Errorf("%w: owner has no %s credential", domain.ErrConfiguration, provider)
		}
		return "", err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("%w: owner %s credential is empty", domain.ErrConfiguration, provider)
	}
	return token, nil
}

// SetProviderKey upserts the owner credential for provider.
func (s *Store) SetProviderKey(ctx context.Context, provider, key string, props map[string]any) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: %s api key is required", domain.ErrValidation, provider)
	}
	ownerID, err := s.ownerID(ctx)
	if err != nil {
		return err
	}
	payload := props
	if payload == nil {
		payload = map[string]any{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = s.sql.Exec(ctx, sqlinline.QUpsertIntegrationToken, ownerID, provider, key, raw)
	return err
}

func (s *Store) ownerID(ctx context.Context) (string, error) {
	row := s.sql.QueryRow(ctx, sqlinline.QSelectOwnerID)
	var id string
	if err := row.Scan(&id); err != nil {
		if infra.IsNoRows(err) {
			return "", fmt.Errorf("%w: no owner principal exists", domain.ErrConfiguration)
		}
		return "", err
	}
	return id, nil
}

var _ domain.CredentialResolver = (*Store)(nil)
