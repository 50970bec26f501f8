package invoice_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/kirana/internal/billing"
	"github.com/MrJamesThe3rd/kirana/internal/customer"
	"github.com/MrJamesThe3rd/kirana/internal/invoice"
	"github.com/MrJamesThe3rd/kirana/internal/settings"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleBill(paid string) *billing.Bill {
	total := d("455")
	bill := &billing.Bill{
		ID:          uuid.New(),
		BillNumber:  "BILL-20240315-000007",
		Subtotal:    total,
		TotalAmount: total,
		AmountPaid:  d(paid),
		BalanceDue:  total.Sub(d(paid)),
		Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Items: []*billing.Item{
			{ItemName: "Basmati Rice", Quantity: d("3"), Unit: "kg", Rate: d("95"), Total: d("285")},
			{ItemName: "Mustard Oil", Quantity: d("1"), Unit: "liters", Rate: d("170"), Total: d("170")},
		},
	}
	bill.Status = billing.DeriveStatus(bill.TotalAmount, bill.BalanceDue)

	return bill
}

func newEngine(t *testing.T) *invoice.TemplateEngine {
	t.Helper()

	engine, err := invoice.NewTemplateEngine()
	require.NoError(t, err)

	return engine
}

func TestTemplateEngine_Bill(t *testing.T) {
	engine := newEngine(t)

	html, err := engine.Bill(invoice.Document{
		Shop:     &settings.Settings{ShopName: "Sharma General Store", ShopPhone: "98100 00000"},
		Bill:     sampleBill("100"),
		Customer: &customer.Customer{Name: "Ravi & Sons", Phone: "98111 11111"},
	})
	require.NoError(t, err)

	for _, want := range []string{
		"Sharma General Store",
		"Phone: 98100 00000",
		"Bill Number: BILL-20240315-000007",
		"Date: 15/03/2024",
		"Customer: Ravi &amp; Sons",
		"Phone: 98111 11111",
		"3 kg",
		"Rs.95.00",
		"Rs.285.00",
		"Subtotal: Rs.455.00",
		"Amount Paid: Rs.100.00",
		"Balance Due: Rs.355.00",
	} {
		assert.Contains(t, html, want)
	}

	assert.NotContains(t, html, "PAID IN FULL")
}

func TestTemplateEngine_Bill_PaidWithoutCustomer(t *testing.T) {
	engine := newEngine(t)

	html, err := engine.Bill(invoice.Document{Bill: sampleBill("455")})
	require.NoError(t, err)

	assert.Contains(t, html, invoice.DefaultShopName)
	assert.Contains(t, html, "PAID IN FULL")
	assert.Contains(t, html, "Balance Due: Rs.0.00")
	assert.NotContains(t, html, "Customer:")
}

func TestTemplateEngine_PriceList(t *testing.T) {
	engine := newEngine(t)

	html, err := engine.PriceList(invoice.PriceList{
		GeneratedOn: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		Entries: []invoice.PriceEntry{
			{Name: "Atta", Unit: "kg", Price: 45},
			{Name: "Ghee", Unit: "liters", Price: 1250},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Pricing List")
	assert.Contains(t, html, "Generated on: 15/03/2024")
	assert.Contains(t, html, "Rs. 45")
	assert.Contains(t, html, "Rs. 1,250")

	empty, err := engine.PriceList(invoice.PriceList{})
	require.NoError(t, err)
	assert.Contains(t, empty, "No items")
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"95", "95.00"},
		{"83.333", "83.33"},
		{"1234.5", "1,234.50"},
		{"-20", "-20.00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, invoice.FormatMoney(d(tt.in)))
		})
	}
}
