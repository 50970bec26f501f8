package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/kirana/internal/billing"
)

type duesState int

const (
	duesStateCustomers duesState = iota
	duesStateBills
	duesStatePayment
)

// DuesModel lists customers with unpaid bills and records payments against them.
type DuesModel struct {
	CommonModel
	billingService *billing.Service

	state     duesState
	customers table.Model
	bills     table.Model
	form      *huh.Form

	dues     []billing.CustomerDue
	selected *billing.CustomerDue
	open     []*billing.Bill

	loading bool
	err     error
	status  string

	// Form bindings
	formAmount  string
	formRemarks string
}

func NewDuesModel(billSvc *billing.Service) DuesModel {
	return DuesModel{
		billingService: billSvc,
		customers: newTable([]table.Column{
			{Title: "Customer", Width: 24},
			{Title: "Phone", Width: 14},
			{Title: "Due", Width: 14},
			{Title: "Bills", Width: 6},
		}),
		bills: newTable([]table.Column{
			{Title: "Bill", Width: 22},
			{Title: "Date", Width: 12},
			{Title: "Total", Width: 12},
			{Title: "Paid", Width: 12},
			{Title: "Balance", Width: 12},
			{Title: "Status", Width: 15},
		}),
		loading: true,
	}
}

func (m DuesModel) Title() string { return "Customer Dues" }

func (m DuesModel) ShortHelp() string {
	switch m.state {
	case duesStateBills:
		return "Esc: customers | p: record payment"
	case duesStatePayment:
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | Enter: open bills | r: refresh"
}

func (m DuesModel) Init() tea.Cmd {
	return m.loadDuesCmd()
}

func (m DuesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDuesMsg:
		m.loading = false
		m.err = msg.err
		m.dues = msg.dues
		m.refreshCustomers()

		if m.selected != nil {
			cleared := *m.selected
			cleared.TotalDue, cleared.BillCount = decimal.Zero, 0
			m.selected = &cleared

			for i := range m.dues {
				if m.dues[i].CustomerID == cleared.CustomerID {
					m.selected = &m.dues[i]
				}
			}
		}

		return m, nil

	case loadBillsMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.open = msg.bills
		m.refreshBills()

		return m, nil

	case paymentMsg:
		m.state = duesStateBills
		m.form = nil
		m.bills.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Recorded %s on %s, balance %s.",
			FormatMoney(msg.payment.Amount), msg.bill.BillNumber, FormatMoney(msg.bill.BalanceDue))

		return m, tea.Batch(m.loadDuesCmd(), m.loadBillsCmd(m.selected.CustomerID))

	case tea.WindowSizeMsg:
		m.customers.SetHeight(msg.Height - 10)
		m.bills.SetHeight(msg.Height - 10)

		return m, nil
	}

	switch m.state {
	case duesStateCustomers:
		return m.updateCustomers(msg)
	case duesStateBills:
		return m.updateBills(msg)
	case duesStatePayment:
		return m.updatePayment(msg)
	}

	return m, nil
}

func (m DuesModel) updateCustomers(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadDuesCmd()
		case "enter":
			idx := m.customers.Cursor()
			if idx < 0 || idx >= len(m.dues) {
				return m, nil
			}

			m.selected = &m.dues[idx]
			m.state = duesStateBills
			m.status = ""

			return m, m.loadBillsCmd(m.selected.CustomerID)
		}
	}

	var cmd tea.Cmd
	m.customers, cmd = m.customers.Update(msg)

	return m, cmd
}

func (m DuesModel) updateBills(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = duesStateCustomers
			m.open = nil
			m.status = ""

			return m, nil
		case "p":
			return m.enterPayment()
		}
	}

	var cmd tea.Cmd
	m.bills, cmd = m.bills.Update(msg)

	return m, cmd
}

func (m DuesModel) enterPayment() (tea.Model, tea.Cmd) {
	idx := m.bills.Cursor()
	if idx < 0 || idx >= len(m.open) {
		return m, nil
	}

	m.formAmount = m.open[idx].BalanceDue.StringFixed(2)
	m.formRemarks = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount (₹)").
				Value(&m.formAmount).
				Validate(validatePayment),

			huh.NewInput().
				Key("remarks").
				Title("Remarks").
				Placeholder("cash, UPI...").
				Value(&m.formRemarks),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = duesStatePayment
	m.bills.Blur()

	return m, m.form.Init()
}

func (m DuesModel) updatePayment(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = duesStateBills
		m.form = nil
		m.bills.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.paymentCmd()
}

func (m DuesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dues...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	var content string

	switch m.state {
	case duesStateCustomers:
		total := decimal.Zero
		for _, d := range m.dues {
			total = total.Add(d.TotalDue)
		}

		header := fmt.Sprintf("%d customers owe %s", len(m.dues), activeStyle(FormatMoney(total)))
		if len(m.dues) == 0 {
			header = "No outstanding dues."
		}

		content = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(header),
			boxed(m.customers.View()),
		)
	default:
		header := fmt.Sprintf("%s (%s) owes %s",
			m.selected.Name, m.selected.Phone, activeStyle(FormatMoney(m.selected.TotalDue)))

		content = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(header),
			boxed(m.bills.View()),
		)

		if m.state == duesStatePayment && m.form != nil {
			panel := lipgloss.NewStyle().
				Padding(1, 2).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Width(44).
				Render("Record Payment\n\n" + m.form.View())

			content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
		}
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *DuesModel) refreshCustomers() {
	rows := make([]table.Row, 0, len(m.dues))
	for _, d := range m.dues {
		rows = append(rows, table.Row{d.Name, d.Phone, FormatMoney(d.TotalDue), fmt.Sprint(d.BillCount)})
	}

	m.customers.SetRows(rows)
}

func (m *DuesModel) refreshBills() {
	rows := make([]table.Row, 0, len(m.open))
	for _, b := range m.open {
		rows = append(rows, table.Row{
			b.BillNumber,
			FormatDate(b.Date),
			FormatMoney(b.TotalAmount),
			FormatMoney(b.AmountPaid),
			FormatMoney(b.BalanceDue),
			string(b.Status),
		})
	}

	m.bills.SetRows(rows)
	m.bills.SetCursor(0)
}

func validatePayment(s string) error {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return errors.New("not a number")
	}

	if !amount.IsPositive() {
		return errors.New("amount must be positive")
	}

	return nil
}

// Messages

type loadDuesMsg struct {
	dues []billing.CustomerDue
	err  error
}

func (m DuesModel) loadDuesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		dues, err := m.billingService.ListCustomerDues(ctx)

		return loadDuesMsg{dues: dues, err: err}
	}
}

type loadBillsMsg struct {
	bills []*billing.Bill
	err   error
}

// loadBillsCmd keeps only the customer's bills that still have a balance.
func (m DuesModel) loadBillsCmd(customerID uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		bills, err := m.billingService.ListByCustomer(ctx, customerID)
		if err != nil {
			return loadBillsMsg{err: err}
		}

		open := make([]*billing.Bill, 0, len(bills))
		for _, b := range bills {
			if b.Status != billing.StatusPaid {
				open = append(open, b)
			}
		}

		return loadBillsMsg{bills: open}
	}
}

type paymentMsg struct {
	bill    *billing.Bill
	payment *billing.Payment
	err     error
}

func (m DuesModel) paymentCmd() tea.Cmd {
	idx := m.bills.Cursor()
	if idx < 0 || idx >= len(m.open) {
		return nil
	}

	billID := m.open[idx].ID
	amount, _ := decimal.NewFromString(strings.TrimSpace(m.formAmount))
	remarks := strings.TrimSpace(m.formRemarks)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		bill, payment, err := m.billingService.RecordPayment(ctx, billID, amount, remarks)

		return paymentMsg{bill: bill, payment: payment, err: err}
	}
}
