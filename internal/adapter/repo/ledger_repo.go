package repo

import (
	"context"

	"genboard/internal/domain"
	"genboard/internal/infra"
	"genboard/internal/sqlinline"
)

// LedgerRepositoryPG implements domain.CreditLedger. Balances are only ever
// mutated through Debit; there is no direct balance write anywhere else in
// the codebase.
type LedgerRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewLedgerRepository creates a credit ledger backed by PostgreSQL.
func NewLedgerRepository(sql infra.SQLExecutor) *LedgerRepositoryPG {
	return &LedgerRepositoryPG{sql: sql}
}

// Balance reads the user's current credit balance.
func (r *LedgerRepositoryPG) Balance(ctx context.Context, userID string) (int, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectCreditBalance, userID)
	var balance int
	if err := row.Scan(&balance); err != nil {
		if infra.IsNoRows(err) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	return balance, nil
}

// Debit appends one transaction keyed by contentID and decrements the balance
// in the same statement. Returns false when a transaction for contentID
// already exists; the balance is untouched in that case.
func (r *LedgerRepositoryPG) Debit(ctx context.Context, userID string, amount int, description, contentID string) (bool, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QDebitCredits, userID, contentID, amount, description)
	var applied int
	if err := row.Scan(&applied); err != nil {
		return false, err
	}
	return applied > 0, nil
}

// ListTransactions returns the user's most recent debits.
func (r *LedgerRepositoryPG) ListTransactions(ctx context.Context, userID string, limit int) ([]domain.CreditTransaction, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.sql.Query(ctx, sqlinline.QListCreditTransactions, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.CreditTransaction
	for rows.Next() {
		var tx domain.CreditTransaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.ContentID, &tx.Amount, &tx.Description, &tx.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, tx)
	}
	return items, rows.Err()
}

var _ domain.CreditLedger = (*LedgerRepositoryPG)(nil)
