package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/kirana/internal/billing"
	"github.com/MrJamesThe3rd/kirana/internal/inventory"
	"github.com/MrJamesThe3rd/kirana/internal/settings"
	"github.com/MrJamesThe3rd/kirana/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=report
type TransactionLister interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

type ItemLister interface {
	List(ctx context.Context) ([]*inventory.Item, error)
}

type SettingsGetter interface {
	Get(ctx context.Context) (*settings.Settings, error)
}

type BillSource interface {
	List(ctx context.Context) ([]*billing.Bill, error)
	TotalOutstanding(ctx context.Context) (decimal.Decimal, error)
}

type Service struct {
	txs   TransactionLister
	items ItemLister
	shop  SettingsGetter
	bills BillSource
}

func NewService(txs TransactionLister, items ItemLister, shop SettingsGetter, bills BillSource) *Service {
	return &Service{txs: txs, items: items, shop: shop, bills: bills}
}

// Summary reports income and expense for the inclusive date range.
func (s *Service) Summary(ctx context.Context, start, end time.Time) (*Summary, error) {
	filter := transaction.ListFilter{}
	if !start.IsZero() {
		filter.StartDate = &start
	}

	if !end.IsZero() {
		filter.EndDate = &end
	}

	txs, err := s.txs.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	summary := Summarize(txs, start, end)

	return &summary, nil
}

// Dashboard gathers today's figures, items below their reorder limit and the
// money customers still owe.
func (s *Service) Dashboard(ctx context.Context, now time.Time) (*Dashboard, error) {
	today := Day(now)

	day, err := s.Summary(ctx, today, today)
	if err != nil {
		return nil, err
	}

	shop, err := s.shop.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	items, err := s.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing inventory: %w", err)
	}

	outstanding, err := s.bills.TotalOutstanding(ctx)
	if err != nil {
		return nil, fmt.Errorf("totalling dues: %w", err)
	}

	bills, err := s.bills.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w", err)
	}

	dash := &Dashboard{
		Date:             today,
		Sales:            day.Income,
		Expenses:         day.Expense,
		Profit:           day.Net,
		SalesByCategory:  day.IncomeByCategory,
		LowStock:         LowStock(items, shop),
		TotalOutstanding: outstanding,
	}

	for _, b := range bills {
		if Day(b.Date).Equal(today) {
			dash.BillsToday++
		}
	}

	return dash, nil
}

// LowStock lists items flagged manually or below the limit for their unit.
func LowStock(items []*inventory.Item, shop *settings.Settings) []LowStockItem {
	var out []LowStockItem

	for _, it := range items {
		if !it.LowStockAlert && !settings.IsLowStock(it.Quantity, it.Unit, shop) {
			continue
		}

		out = append(out, LowStockItem{
			ID:       it.ID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Unit:     it.Unit,
			Limit:    settings.LimitFor(it.Unit, shop),
		})
	}

	return out
}
