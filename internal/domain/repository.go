package domain

import "context"

// ContentRepository defines persistence for content records. Status mutations
// are guarded so that transitions are monotonic: MarkGenerating only applies
// to PENDING rows, MarkCompleted/MarkFailed only to GENERATING rows.
type ContentRepository interface {
	Create(ctx context.Context, content *Content) error
	GetByID(ctx context.Context, contentID string) (*Content, error)
	GetForUser(ctx context.Context, contentID, userID string) (*Content, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]Content, error)
	MarkGenerating(ctx context.Context, contentID, providerRequestID string) error
	MarkCompleted(ctx context.Context, contentID, mediaURL, thumbnailURL string, metadata map[string]any) error
	MarkFailed(ctx context.Context, contentID, errorMessage string) error
	// Heartbeat refreshes updated_at on a GENERATING row so the recovery
	// sweep does not claim a session that is still alive. Returns a wrapped
	// ErrNotFound when the row is no longer GENERATING, which tells the
	// caller its session has been superseded.
	Heartbeat(ctx context.Context, contentID string) error
}

// CreditLedger is the billing store contract. Debit is the only mutation this
// subsystem ever performs on balances; it is atomic and deduplicated on the
// content id.
type CreditLedger interface {
	Balance(ctx context.Context, userID string) (int, error)
	// Debit records a single transaction and decrements the balance. The
	// returned bool is false when a transaction for contentID already exists,
	// in which case nothing is changed.
	Debit(ctx context.Context, userID string, amount int, description, contentID string) (bool, error)
	ListTransactions(ctx context.Context, userID string, limit int) ([]CreditTransaction, error)
}

// CredentialResolver locates the shared service credential held by the
// platform-owner principal for a given provider.
type CredentialResolver interface {
	ProviderKey(ctx context.Context, provider string) (string, error)
}
