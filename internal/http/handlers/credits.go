package handlers

import (
	"net/http"
	"time"
)

type transactionDTO struct {
	ID          string    `json:"id"`
	ContentID   string    `json:"content_id"`
	Amount      int       `json:"amount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Credits returns the caller's balance and recent debits.
func (a *App) Credits(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	balance, err := a.Ledger.Balance(r.Context(), userID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load balance")
		return
	}
	txs, err := a.Ledger.ListTransactions(r.Context(), userID, 20)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load transactions")
		return
	}
	dtos := make([]transactionDTO, 0, len(txs))
	for _, tx := range txs {
		dtos = append(dtos, transactionDTO{
			ID:          tx.ID,
			ContentID:   tx.ContentID,
			Amount:      tx.Amount,
			Description: tx.Description,
			CreatedAt:   tx.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{
		"balance":      balance,
		"transactions": dtos,
	})
}
