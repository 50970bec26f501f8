package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/kirana/internal/report"
)

type ReportModel struct {
	CommonModel
	reportService *report.Service

	period    report.Period
	summary   *report.Summary
	dashboard *report.Dashboard

	loading bool
	err     error
}

func NewReportModel(svc *report.Service) ReportModel {
	return ReportModel{
		reportService: svc,
		period:        report.PeriodThisMonth,
		loading:       true,
	}
}

func (m ReportModel) Title() string { return "Reports" }

func (m ReportModel) ShortHelp() string {
	return "Esc: back | p: period | r: refresh"
}

func (m ReportModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadReportMsg:
		m.loading = false
		m.err = msg.err
		m.summary = msg.summary
		m.dashboard = msg.dashboard

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "p":
			m.period = (m.period + 1) % (report.PeriodAll + 1)
			m.loading = true

			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m ReportModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading reports...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Period: [p] %s", activeStyle(m.period.String()))

	if !m.summary.Start.IsZero() {
		fmt.Fprintf(&b, "  (%s to %s)", FormatDate(m.summary.Start), FormatDate(m.summary.End))
	}

	fmt.Fprintf(&b, "\n\nIncome   %s\nExpense  %s\nNet      %s\nEntries  %d\n",
		FormatRupees(m.summary.Income), FormatRupees(m.summary.Expense), netStyle(m.summary.Net), m.summary.Count)

	if len(m.summary.IncomeByCategory) > 0 {
		b.WriteString("\nIncome by category\n")

		for _, c := range m.summary.IncomeByCategory {
			fmt.Fprintf(&b, "  %-18s %14s  %5.1f%%\n", c.Category, FormatRupees(c.Amount), c.Percentage)
		}
	}

	d := m.dashboard
	today := fmt.Sprintf("Today %s\n\nSales        %s\nExpenses     %s\nProfit       %s\nBills        %d\nOutstanding  %s\n",
		FormatDate(d.Date), FormatRupees(d.Sales), FormatRupees(d.Expenses), netStyle(d.Profit),
		d.BillsToday, FormatMoney(d.TotalOutstanding))

	if len(d.LowStock) > 0 {
		today += fmt.Sprintf("\nLow stock (%d)\n", len(d.LowStock))

		for _, it := range d.LowStock {
			today += fmt.Sprintf("  %-20s %8s %s\n", it.Name, it.Quantity.String(), it.Unit)
		}
	}

	panel := lipgloss.NewStyle().Padding(1, 2).BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, panel.Render(b.String()), panel.Render(today)),
	)
}

func netStyle(amount int64) string {
	if amount < 0 {
		return errorStyle(FormatRupees(amount))
	}

	return okStyle(FormatRupees(amount))
}

type loadReportMsg struct {
	summary   *report.Summary
	dashboard *report.Dashboard
	err       error
}

func (m ReportModel) loadCmd() tea.Cmd {
	period := m.period

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		now := time.Now()
		start, end := period.Range(now)

		summary, err := m.reportService.Summary(ctx, start, end)
		if err != nil {
			return loadReportMsg{err: err}
		}

		dashboard, err := m.reportService.Dashboard(ctx, now)
		if err != nil {
			return loadReportMsg{err: err}
		}

		return loadReportMsg{summary: summary, dashboard: dashboard}
	}
}
