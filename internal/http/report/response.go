package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/kirana/internal/report"
)

type categoryResponse struct {
	Category   string  `json:"category"`
	Amount     int64   `json:"amount"`
	Percentage float64 `json:"percentage"`
}

type summaryResponse struct {
	Start            *string            `json:"start"`
	End              *string            `json:"end"`
	Income           int64              `json:"income"`
	Expense          int64              `json:"expense"`
	Net              int64              `json:"net"`
	Count            int                `json:"count"`
	IncomeByCategory []categoryResponse `json:"incomeByCategory"`
}

type lowStockResponse struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
	Limit    int             `json:"limit"`
}

type dashboardResponse struct {
	Date             string             `json:"date"`
	Sales            int64              `json:"sales"`
	Expenses         int64              `json:"expenses"`
	Profit           int64              `json:"profit"`
	SalesByCategory  []categoryResponse `json:"salesByCategory"`
	LowStock         []lowStockResponse `json:"lowStock"`
	TotalOutstanding decimal.Decimal    `json:"totalOutstanding"`
	BillsToday       int                `json:"billsToday"`
}

// optionalDate leaves an open range bound as null.
func optionalDate(t time.Time) *string {
	if t.IsZero() {
		return nil
	}

	s := t.Format(time.DateOnly)

	return &s
}

func toCategories(totals []report.CategoryTotal) []categoryResponse {
	resp := make([]categoryResponse, 0, len(totals))
	for _, c := range totals {
		resp = append(resp, categoryResponse(c))
	}

	return resp
}

func toSummaryResponse(s *report.Summary) summaryResponse {
	return summaryResponse{
		Start:            optionalDate(s.Start),
		End:              optionalDate(s.End),
		Income:           s.Income,
		Expense:          s.Expense,
		Net:              s.Net,
		Count:            s.Count,
		IncomeByCategory: toCategories(s.IncomeByCategory),
	}
}

func toDashboardResponse(d *report.Dashboard) dashboardResponse {
	lowStock := make([]lowStockResponse, 0, len(d.LowStock))
	for _, it := range d.LowStock {
		lowStock = append(lowStock, lowStockResponse(it))
	}

	return dashboardResponse{
		Date:             d.Date.Format(time.DateOnly),
		Sales:            d.Sales,
		Expenses:         d.Expenses,
		Profit:           d.Profit,
		SalesByCategory:  toCategories(d.SalesByCategory),
		LowStock:         lowStock,
		TotalOutstanding: d.TotalOutstanding,
		BillsToday:       d.BillsToday,
	}
}
