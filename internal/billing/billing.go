package billing

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/kirana/internal/apperror"
)

// Status is derived from the balance still owed on a bill.
type Status string

const (
	StatusDue           Status = "due"
	StatusPartiallyPaid Status = "partially_paid"
	StatusPaid          Status = "paid"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDue, StatusPartiallyPaid, StatusPaid:
		return true
	}

	return false
}

// Outstanding reports whether money is still owed.
func (s Status) Outstanding() bool {
	return s == StatusDue || s == StatusPartiallyPaid
}

var (
	ErrNotFound         = fmt.Errorf("bill %w", apperror.ErrNotFound)
	ErrItemNotFound     = fmt.Errorf("inventory item %w", apperror.ErrNotFound)
	ErrCustomerNotFound = fmt.Errorf("customer %w", apperror.ErrNotFound)

	ErrEmptyBill           = errors.New("bill must contain at least one item")
	ErrInvalidQuantity     = errors.New("quantity must be greater than zero")
	ErrInvalidAmount       = errors.New("amount must not be negative")
	ErrInvalidPayment      = errors.New("payment amount must be greater than zero")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrOverpayment         = errors.New("payment exceeds balance due")
	ErrDuplicateBillNumber = errors.New("bill number already exists")
	ErrInvalidStatus       = errors.New("invalid bill status")
	ErrInconsistentPayment = errors.New("payment fields disagree with amount paid")
)

// Bill is a sale. TotalAmount equals Subtotal; BalanceDue is TotalAmount minus AmountPaid.
type Bill struct {
	ID          uuid.UUID
	BillNumber  string
	CustomerID  *uuid.UUID
	Subtotal    decimal.Decimal
	TotalAmount decimal.Decimal
	AmountPaid  decimal.Decimal
	BalanceDue  decimal.Decimal
	Status      Status
	Date        time.Time
	CreatedAt   time.Time
	Items       []*Item // Loaded on demand
}

// Item is a bill line. Name, unit and rate are copied from inventory at sale time.
type Item struct {
	ID              uuid.UUID
	BillID          uuid.UUID
	InventoryItemID uuid.UUID
	ItemName        string
	Quantity        decimal.Decimal
	Unit            string
	Rate            decimal.Decimal
	Total           decimal.Decimal
}

// Payment is an append-only record of money received against a bill.
type Payment struct {
	ID        uuid.UUID
	BillID    uuid.UUID
	Amount    decimal.Decimal
	Remarks   string
	CreatedAt time.Time
}

// DeriveStatus classifies a bill by what is still owed.
func DeriveStatus(totalAmount, balanceDue decimal.Decimal) Status {
	switch {
	case !balanceDue.IsPositive():
		return StatusPaid
	case balanceDue.LessThan(totalAmount):
		return StatusPartiallyPaid
	default:
		return StatusDue
	}
}

// LineTotal is quantity times rate rounded to two decimals.
func LineTotal(quantity, rate decimal.Decimal) decimal.Decimal {
	return quantity.Mul(rate).Round(2)
}

// applyAmountPaid sets the derived payment fields from a new amount paid.
func (b *Bill) applyAmountPaid(amountPaid decimal.Decimal) {
	b.AmountPaid = amountPaid
	b.BalanceDue = b.TotalAmount.Sub(amountPaid)
	b.Status = DeriveStatus(b.TotalAmount, b.BalanceDue)
}
