//go:build integration

package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/kirana/internal/billing"
	"github.com/MrJamesThe3rd/kirana/internal/billing/store"
	"github.com/MrJamesThe3rd/kirana/internal/customer"
	customerStore "github.com/MrJamesThe3rd/kirana/internal/customer/store"
	"github.com/MrJamesThe3rd/kirana/internal/database/dbtest"
	"github.com/MrJamesThe3rd/kirana/internal/inventory"
	inventoryStore "github.com/MrJamesThe3rd/kirana/internal/inventory/store"
)

func TestBillingFlow(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	items := inventory.NewService(inventoryStore.New(db))
	customers := customer.NewService(customerStore.New(db))
	svc := billing.NewService(store.New(db), customers, billing.DefaultPolicy())

	rice, err := items.Create(ctx, inventory.CreateParams{
		Name: "Rice", Category: "Grains", Quantity: decimal.NewFromInt(10), Unit: "kg", SellingPrice: 95,
	})
	require.NoError(t, err)

	ravi, err := customers.Create(ctx, customer.CreateParams{Name: "Ravi"})
	require.NoError(t, err)

	paid := decimal.NewFromInt(100)

	bill, err := svc.CreateBill(ctx, billing.CreateParams{
		CustomerID: &ravi.ID,
		Items:      []billing.ItemParams{{InventoryItemID: rice.ID, Quantity: decimal.NewFromInt(3)}},
		AmountPaid: &paid,
		Date:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "BILL-20240315-000001", bill.BillNumber)
	assert.Equal(t, billing.StatusPartiallyPaid, bill.Status)

	stocked, err := items.Get(ctx, rice.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(7).Equal(stocked.Quantity))

	dues, err := svc.ListCustomerDues(ctx)
	require.NoError(t, err)
	require.Len(t, dues, 1)
	assert.True(t, decimal.NewFromInt(185).Equal(dues[0].TotalDue))

	settled, _, err := svc.RecordPayment(ctx, bill.ID, decimal.NewFromInt(185), "cash")
	require.NoError(t, err)
	assert.Equal(t, billing.StatusPaid, settled.Status)

	payments, err := svc.ListPayments(ctx, bill.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 1)

	loaded, err := svc.Get(ctx, bill.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "Rice", loaded.Items[0].ItemName)
	assert.True(t, decimal.NewFromInt(285).Equal(loaded.Items[0].Total))

	_, err = svc.CreateBill(ctx, billing.CreateParams{
		Items:      []billing.ItemParams{{InventoryItemID: rice.ID, Quantity: decimal.NewFromInt(1)}},
		BillNumber: bill.BillNumber,
	})
	assert.ErrorIs(t, err, billing.ErrDuplicateBillNumber)

	stocked, err = items.Get(ctx, rice.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(7).Equal(stocked.Quantity), "failed bill must not touch stock")
}

func TestConcurrentSalesNeverGoNegative(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	items := inventory.NewService(inventoryStore.New(db))
	svc := billing.NewService(store.New(db), customer.NewService(customerStore.New(db)), billing.DefaultPolicy())

	oil, err := items.Create(ctx, inventory.CreateParams{
		Name: "Oil", Category: "Oils", Quantity: decimal.NewFromInt(5), Unit: "liters", SellingPrice: 170,
	})
	require.NoError(t, err)

	var wg sync.WaitGroup

	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := svc.CreateBill(ctx, billing.CreateParams{
				Items: []billing.ItemParams{{InventoryItemID: oil.ID, Quantity: decimal.NewFromInt(1)}},
			})
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	stocked, err := items.Get(ctx, oil.ID)
	require.NoError(t, err)
	assert.True(t, stocked.Quantity.IsZero())

	bills, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, bills, 8)
}
