package view

import (
	"testing"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/kirana/internal/inventory"
	"github.com/MrJamesThe3rd/kirana/internal/seller"
	"github.com/MrJamesThe3rd/kirana/internal/settings"
)

func TestValidators(t *testing.T) {
	assert.NoError(t, validateQuantity("2.5"))
	assert.Error(t, validateQuantity("-1"))
	assert.Error(t, validateQuantity("two"))

	assert.NoError(t, validateRupees("0"))
	assert.Error(t, validateRupees("12.50"))
	assert.Error(t, validateRupees("-3"))

	assert.NoError(t, validatePayment("0.50"))
	assert.Error(t, validatePayment("0"))
	assert.Error(t, validatePayment("abc"))
}

func TestInventoryModel_LowStockFilter(t *testing.T) {
	shop := settings.Defaults()

	m := NewInventoryModel(nil, nil)
	next, _ := m.Update(loadInventoryMsg{
		shop: &shop,
		items: []*inventory.Item{
			{ID: uuid.New(), Name: "Rice", Quantity: decimal.NewFromInt(50), Unit: "kg"},
			{ID: uuid.New(), Name: "Salt", Quantity: decimal.NewFromInt(1), Unit: "kg"},
			{ID: uuid.New(), Name: "Soap", Quantity: decimal.NewFromInt(100), Unit: "pieces", LowStockAlert: true},
		},
	})
	m = next.(InventoryModel)
	assert.Len(t, m.shown, 3)

	m.lowOnly = true
	m.refreshTable()

	names := make([]string, 0, len(m.shown))
	for _, it := range m.shown {
		names = append(names, it.Name)
	}

	assert.Equal(t, []string{"Salt", "Soap"}, names)
}

func TestFormatRupees(t *testing.T) {
	assert.Equal(t, "₹1,250.00", FormatRupees(1250))
	assert.Equal(t, "₹75.50", FormatMoney(decimal.RequireFromString("75.5")))
}

func TestImportModel_ReviewMatchedRows(t *testing.T) {
	qty := decimal.NewFromInt(10)
	sugar := inventory.CreateParams{Name: "Sugar", Quantity: qty, Unit: "kg", PurchasePrice: 42, SellingPrice: 50}
	dal := inventory.CreateParams{Name: "Toor Dal", Quantity: qty, Unit: "kg", PurchasePrice: 110, SellingPrice: 132}
	atta := inventory.CreateParams{Name: "Atta", Quantity: qty, Unit: "kg", PurchasePrice: 30, SellingPrice: 36}

	m := NewImportModel(nil, nil, nil, nil)

	next, _ := m.Update(loadSellersMsg{sellers: []*seller.Seller{{ID: uuid.New(), Name: "Gupta Traders"}}})
	m = next.(ImportModel)

	next, _ = m.Update(importResultMsg{
		renamed: 1,
		result: &inventory.ImportResult{
			New: []inventory.CreateParams{atta},
			Conflicts: []inventory.Conflict{
				{Incoming: sugar, Existing: &inventory.Item{Name: "Sugar", Quantity: decimal.NewFromInt(3), Unit: "kg", PurchasePrice: 40, SellingPrice: 45}},
				{Incoming: dal, Existing: &inventory.Item{Name: "Toor Dal", Quantity: decimal.NewFromInt(8), Unit: "kg", PurchasePrice: 110, SellingPrice: 132}},
			},
		},
	})
	m = next.(ImportModel)
	assert.Equal(t, importStepReview, m.step)
	assert.Equal(t, []inventory.CreateParams{atta}, m.rowsToCreate())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = next.(ImportModel)
	assert.Equal(t, []inventory.CreateParams{atta, sugar}, m.rowsToCreate())
	assert.Equal(t, "[x]", m.review.Rows()[0][0])

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	m = next.(ImportModel)
	assert.Len(t, m.rowsToCreate(), 3)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	m = next.(ImportModel)
	assert.Equal(t, []inventory.CreateParams{atta}, m.rowsToCreate())

	next, _ = m.Update(confirmResultMsg{items: []*inventory.Item{{Name: "Atta", Quantity: qty, Unit: "kg"}}})
	m = next.(ImportModel)
	assert.Equal(t, importStepDone, m.step)
	assert.Equal(t, "Added 1 items, skipped 2 already stocked, 1 renamed from learned aliases.", m.message)
}

func TestReviewRow(t *testing.T) {
	row := reviewRow(inventory.Conflict{
		Incoming: inventory.CreateParams{Name: "Sugar", Quantity: decimal.NewFromInt(10), Unit: "kg", PurchasePrice: 42, SellingPrice: 50},
		Existing: &inventory.Item{Name: "Sugar", Quantity: decimal.NewFromInt(3), Unit: "kg", PurchasePrice: 42, SellingPrice: 40},
	}, true)

	assert.Equal(t, table.Row{"[x]", "Sugar", "kg", "3", "10", "₹42.00", "₹40.00 → ₹50.00", "+25%"}, row)
}

func TestPriceChange(t *testing.T) {
	assert.Equal(t, "=", priceChange(50, 50))
	assert.Equal(t, "new", priceChange(0, 50))
	assert.Equal(t, "-10%", priceChange(50, 45))
}

func TestImportSummary(t *testing.T) {
	assert.Equal(t, "Added 4 items from Gupta Traders.", importSummary(4, 0, 0, "Gupta Traders"))
	assert.Equal(t, "Added 0 items, skipped 2 already stocked.", importSummary(0, 2, 0, ""))
}
