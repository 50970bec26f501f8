// Package report aggregates the ledger, stock and dues into the summaries the
// dashboard and reports screens show.
package report

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/kirana/internal/transaction"
)

type CategoryTotal struct {
	Category   string
	Amount     int64
	Percentage float64
}

type Summary struct {
	Start            time.Time
	End              time.Time
	Income           int64
	Expense          int64
	Net              int64
	Count            int
	IncomeByCategory []CategoryTotal
}

type LowStockItem struct {
	ID       uuid.UUID
	Name     string
	Quantity decimal.Decimal
	Unit     string
	Limit    int
}

type Dashboard struct {
	Date             time.Time
	Sales            int64
	Expenses         int64
	Profit           int64
	SalesByCategory  []CategoryTotal
	LowStock         []LowStockItem
	TotalOutstanding decimal.Decimal
	BillsToday       int
}

// Summarize totals the entries dated within [start, end]. A zero start or end
// leaves that side open.
func Summarize(txs []*transaction.Transaction, start, end time.Time) Summary {
	s := Summary{Start: start, End: end}
	byCategory := make(map[string]int64)

	for _, tx := range txs {
		day := Day(tx.Date)
		if !start.IsZero() && day.Before(Day(start)) {
			continue
		}

		if !end.IsZero() && day.After(Day(end)) {
			continue
		}

		s.Count++

		switch tx.Type {
		case transaction.TypeIncome:
			s.Income += tx.Amount
			byCategory[tx.Category] += tx.Amount
		case transaction.TypeExpense:
			s.Expense += tx.Amount
		}
	}

	s.Net = s.Income - s.Expense
	s.IncomeByCategory = categoryTotals(byCategory, s.Income)

	return s
}

// categoryTotals sorts by amount descending, then by category name.
func categoryTotals(byCategory map[string]int64, total int64) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(byCategory))

	for category, amount := range byCategory {
		ct := CategoryTotal{Category: category, Amount: amount}
		if total > 0 {
			ct.Percentage = float64(amount) / float64(total) * 100
		}

		out = append(out, ct)
	}

	slices.SortFunc(out, func(a, b CategoryTotal) int {
		return cmp.Or(cmp.Compare(b.Amount, a.Amount), cmp.Compare(a.Category, b.Category))
	})

	return out
}
