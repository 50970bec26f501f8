package transaction

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kirana/internal/apperror"
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

var (
	ErrNotFound           = fmt.Errorf("transaction %w", apperror.ErrNotFound)
	ErrInvalidTransaction = errors.New("invalid transaction")
)

// Transaction is a ledger entry, independent of inventory and bills.
type Transaction struct {
	ID        uuid.UUID
	Type      Type
	Category  string
	Amount    int64 // Whole currency units
	Date      time.Time
	Notes     string
	CreatedAt time.Time
}
