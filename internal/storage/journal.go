package storage

import (
	"context"
	"fmt"
	"time"

	"genboard/internal/domain"
)

// UnbilledRecord is the durable trace of a generation that completed but
// could not be billed. It exists for manual reconciliation; the completed
// content is never rolled back over a billing fault.
type UnbilledRecord struct {
	UserID      string    `json:"user_id"`
	ContentID   string    `json:"content_id"`
	Amount      int       `json:"amount"`
	Description string    `json:"description"`
	Cause       string    `json:"cause"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// ReconciliationJournal persists unbilled-success records onto the file store.
type ReconciliationJournal struct {
	store *FileStore
}

// NewReconciliationJournal wraps a FileStore as a settlement journal.
func NewReconciliationJournal(store *FileStore) *ReconciliationJournal {
	return &ReconciliationJournal{store: store}
}

// RecordUnbilled writes one JSON record keyed by content id. Writing the same
// content id twice overwrites the previous record, which is acceptable: the
// debit is idempotent on the same key anyway.
func (j *ReconciliationJournal) RecordUnbilled(ctx context.Context, tx domain.CreditTransaction, cause string) error {
	if j == nil || j.store == nil {
		return nil
	}
	record := UnbilledRecord{
		UserID:      tx.UserID,
		ContentID:   tx.ContentID,
		Amount:      tx.Amount,
		Description: tx.Description,
		Cause:       cause,
		RecordedAt:  time.Now().UTC(),
	}
	key := fmt.Sprintf("reconcile/unbilled/%s.json", tx.ContentID)
	_, err := j.store.WriteJSON(ctx, key, record)
	return err
}
