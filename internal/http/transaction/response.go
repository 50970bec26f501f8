package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kirana/internal/transaction"
)

type transactionResponse struct {
	ID        uuid.UUID        `json:"id"`
	Type      transaction.Type `json:"type"`
	Category  string           `json:"category"`
	Amount    int64            `json:"amount"`
	Date      string           `json:"date"`
	Notes     string           `json:"notes"`
	CreatedAt time.Time        `json:"createdAt"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:        tx.ID,
		Type:      tx.Type,
		Category:  tx.Category,
		Amount:    tx.Amount,
		Date:      tx.Date.Format(time.DateOnly),
		Notes:     tx.Notes,
		CreatedAt: tx.CreatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		resp = append(resp, toResponse(tx))
	}

	return resp
}
