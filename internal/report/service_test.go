package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/kirana/internal/billing"
	"github.com/MrJamesThe3rd/kirana/internal/inventory"
	"github.com/MrJamesThe3rd/kirana/internal/report"
	"github.com/MrJamesThe3rd/kirana/internal/settings"
	"github.com/MrJamesThe3rd/kirana/internal/transaction"
)

type mocks struct {
	txs   *report.MockTransactionLister
	items *report.MockItemLister
	shop  *report.MockSettingsGetter
	bills *report.MockBillSource
}

func newService(t *testing.T) (*report.Service, mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := mocks{
		txs:   report.NewMockTransactionLister(ctrl),
		items: report.NewMockItemLister(ctrl),
		shop:  report.NewMockSettingsGetter(ctrl),
		bills: report.NewMockBillSource(ctrl),
	}

	return report.NewService(m.txs, m.items, m.shop, m.bills), m
}

func TestService_Summary_PassesRange(t *testing.T) {
	svc, m := newService(t)

	start, end := date(2024, 3, 1), date(2024, 3, 31)

	m.txs.EXPECT().List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f transaction.ListFilter) ([]*transaction.Transaction, error) {
			require.NotNil(t, f.StartDate)
			require.NotNil(t, f.EndDate)
			assert.Equal(t, start, *f.StartDate)
			assert.Equal(t, end, *f.EndDate)
			assert.Nil(t, f.Type)

			return []*transaction.Transaction{tx(transaction.TypeIncome, "Sales", 70, date(2024, 3, 2))}, nil
		})

	s, err := svc.Summary(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, int64(70), s.Income)
}

func TestService_Dashboard(t *testing.T) {
	svc, m := newService(t)

	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
	today := date(2024, 3, 15)

	shop := settings.Defaults()
	shop.LowStockLimitKg = 5

	m.txs.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*transaction.Transaction{
		tx(transaction.TypeIncome, "Sales", 500, today),
		tx(transaction.TypeExpense, "Tea", 20, today),
	}, nil)
	m.shop.EXPECT().Get(gomock.Any()).Return(&shop, nil)
	m.items.EXPECT().List(gomock.Any()).Return([]*inventory.Item{
		{ID: uuid.New(), Name: "Rice", Quantity: decimal.NewFromInt(4), Unit: "kg"},
		{ID: uuid.New(), Name: "Atta", Quantity: decimal.NewFromInt(5), Unit: "kg"},
		{ID: uuid.New(), Name: "Soap", Quantity: decimal.NewFromInt(50), Unit: "pieces", LowStockAlert: true},
	}, nil)
	m.bills.EXPECT().TotalOutstanding(gomock.Any()).Return(decimal.RequireFromString("1250.50"), nil)
	m.bills.EXPECT().List(gomock.Any()).Return([]*billing.Bill{
		{Date: today},
		{Date: today},
		{Date: date(2024, 3, 14)},
	}, nil)

	dash, err := svc.Dashboard(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, today, dash.Date)
	assert.Equal(t, int64(500), dash.Sales)
	assert.Equal(t, int64(480), dash.Profit)
	assert.Equal(t, 2, dash.BillsToday)
	assert.True(t, decimal.RequireFromString("1250.5").Equal(dash.TotalOutstanding))

	require.Len(t, dash.LowStock, 2)
	assert.Equal(t, "Rice", dash.LowStock[0].Name)
	assert.Equal(t, 5, dash.LowStock[0].Limit)
	assert.Equal(t, "Soap", dash.LowStock[1].Name)
}

func TestService_Dashboard_SettingsError(t *testing.T) {
	svc, m := newService(t)

	m.txs.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
	m.shop.EXPECT().Get(gomock.Any()).Return(nil, errors.New("db down"))

	_, err := svc.Dashboard(context.Background(), time.Now())
	assert.EqualError(t, err, "loading settings: db down")
}
