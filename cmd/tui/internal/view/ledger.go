package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/kirana/internal/report"
	"github.com/MrJamesThe3rd/kirana/internal/transaction"
)

type ledgerState int

const (
	ledgerStateBrowse ledgerState = iota
	ledgerStateNew
	ledgerStateDelete
)

// LedgerModel browses income and expense entries by period and adds new ones.
type LedgerModel struct {
	CommonModel
	txService *transaction.Service

	state  ledgerState
	table  table.Model
	txs    []*transaction.Transaction
	form   *huh.Form
	period report.Period

	loading bool
	err     error
	status  string

	// Form bindings
	formType     string
	formCategory string
	formAmount   string
	formDate     string
	formNotes    string
	formConfirm  bool
}

func NewLedgerModel(txSvc *transaction.Service) LedgerModel {
	return LedgerModel{
		txService: txSvc,
		table: newTable([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Type", Width: 8},
			{Title: "Category", Width: 18},
			{Title: "Amount", Width: 14},
			{Title: "Notes", Width: 32},
		}),
		period:  report.PeriodThisMonth,
		loading: true,
	}
}

func (m LedgerModel) Title() string { return "Ledger" }

func (m LedgerModel) ShortHelp() string {
	if m.state != ledgerStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new entry | x: delete | p: period | r: refresh"
}

func (m LedgerModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadLedgerMsg:
		m.loading = false
		m.err = msg.err
		m.txs = msg.txs
		m.refreshTable()

		return m, nil

	case ledgerSaveMsg:
		m.state = ledgerStateBrowse
		m.form = nil
		m.table.Focus()

		m.status = msg.done
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state != ledgerStateBrowse {
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "p":
			m.period = (m.period + 1) % (report.PeriodAll + 1)
			m.loading = true

			return m, m.loadCmd()
		case "n":
			return m.enterNew()
		case "x":
			return m.enterDelete()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m LedgerModel) enterNew() (tea.Model, tea.Cmd) {
	m.formType = string(transaction.TypeExpense)
	m.formCategory = ""
	m.formAmount = ""
	m.formDate = FormatDate(time.Now())
	m.formNotes = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", string(transaction.TypeExpense)),
					huh.NewOption("Income", string(transaction.TypeIncome)),
				).
				Value(&m.formType),

			huh.NewInput().
				Key("category").
				Title("Category").
				Placeholder("Rent, Sales, Electricity...").
				Value(&m.formCategory).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("category cannot be empty")
					}

					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount (₹)").
				Value(&m.formAmount).
				Validate(validateRupees),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
						return errors.New("use YYYY-MM-DD")
					}

					return nil
				}),

			huh.NewInput().
				Key("notes").
				Title("Notes").
				Value(&m.formNotes),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = ledgerStateNew
	m.table.Blur()

	return m, m.form.Init()
}

func (m LedgerModel) enterDelete() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return m, nil
	}

	tx := m.txs[idx]
	m.formConfirm = false

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s %s of %s?", tx.Category, tx.Type, FormatRupees(tx.Amount))).
				Affirmative("Delete").
				Negative("Keep").
				Value(&m.formConfirm),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = ledgerStateDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m LedgerModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = ledgerStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == ledgerStateDelete {
		return m, m.deleteCmd()
	}

	return m, m.createCmd()
}

func (m LedgerModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading ledger...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	start, end := m.period.Range(time.Now())
	summary := report.Summarize(m.txs, start, end)

	header := fmt.Sprintf("Period: [p] %s | Income %s | Expense %s | Net %s",
		activeStyle(m.period.String()),
		FormatRupees(summary.Income), FormatRupees(summary.Expense), FormatRupees(summary.Net))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxed(m.table.View()),
	)

	if m.state != ledgerStateBrowse && m.form != nil {
		title := "New Entry"
		if m.state == ledgerStateDelete {
			title = "Delete Entry"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *LedgerModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			string(tx.Type),
			tx.Category,
			FormatRupees(tx.Amount),
			tx.Notes,
		})
	}

	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

// Messages

type loadLedgerMsg struct {
	txs []*transaction.Transaction
	err error
}

func (m LedgerModel) loadCmd() tea.Cmd {
	filter := transaction.ListFilter{}
	if start, end := m.period.Range(time.Now()); !start.IsZero() {
		filter.StartDate = &start
		filter.EndDate = &end
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.txService.List(ctx, filter)

		return loadLedgerMsg{txs: txs, err: err}
	}
}

type ledgerSaveMsg struct {
	done string
	err  error
}

func (m LedgerModel) createCmd() tea.Cmd {
	amount, _ := strconv.ParseInt(strings.TrimSpace(m.formAmount), 10, 64)
	date, _ := time.Parse(time.DateOnly, strings.TrimSpace(m.formDate))

	params := transaction.CreateParams{
		Type:     transaction.Type(m.formType),
		Category: m.formCategory,
		Amount:   amount,
		Date:     date,
		Notes:    strings.TrimSpace(m.formNotes),
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.txService.Create(ctx, params); err != nil {
			return ledgerSaveMsg{err: err}
		}

		return ledgerSaveMsg{done: "Entry added."}
	}
}

func (m LedgerModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if !m.formConfirm || idx < 0 || idx >= len(m.txs) {
		return func() tea.Msg { return ledgerSaveMsg{} }
	}

	id := m.txs[idx].ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.txService.Delete(ctx, id); err != nil {
			return ledgerSaveMsg{err: err}
		}

		return ledgerSaveMsg{done: "Entry deleted."}
	}
}
