package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/kirana/internal/inventory"
	"github.com/MrJamesThe3rd/kirana/internal/settings"
)

type inventoryState int

const (
	inventoryStateBrowse inventoryState = iota
	inventoryStateEdit
)

type InventoryModel struct {
	CommonModel
	inventoryService *inventory.Service
	settingsService  *settings.Service

	state inventoryState
	table table.Model
	all   []*inventory.Item
	shown []*inventory.Item
	shop  *settings.Settings
	form  *huh.Form

	lowOnly bool
	loading bool
	err     error
	status  string

	// Form bindings
	formQuantity string
	formPrice    string
}

func NewInventoryModel(invSvc *inventory.Service, shopSvc *settings.Service) InventoryModel {
	columns := []table.Column{
		{Title: "Name", Width: 28},
		{Title: "Category", Width: 14},
		{Title: "Qty", Width: 10},
		{Title: "Unit", Width: 8},
		{Title: "Buy", Width: 10},
		{Title: "Sell", Width: 10},
		{Title: "Stock", Width: 8},
	}

	return InventoryModel{
		inventoryService: invSvc,
		settingsService:  shopSvc,
		table:            newTable(columns),
		loading:          true,
	}
}

func (m InventoryModel) Title() string { return "Inventory" }

func (m InventoryModel) ShortHelp() string {
	if m.state == inventoryStateEdit {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | e: edit stock | l: low stock only | r: refresh"
}

func (m InventoryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m InventoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadInventoryMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.all = msg.items
		m.shop = msg.shop
		m.refreshTable()

		return m, nil

	case inventorySaveMsg:
		m.status = "Saved."
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		}

		m.state = inventoryStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case inventoryStateBrowse:
		return m.updateBrowse(msg)
	case inventoryStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m InventoryModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "l":
			m.lowOnly = !m.lowOnly
			m.refreshTable()

			return m, nil
		case "e":
			return m.enterEditMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m InventoryModel) enterEditMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.shown) {
		return m, nil
	}

	item := m.shown[idx]
	m.formQuantity = item.Quantity.String()
	m.formPrice = strconv.FormatInt(item.SellingPrice, 10)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("quantity").
				Title(fmt.Sprintf("Quantity (%s)", item.Unit)).
				Value(&m.formQuantity).
				Validate(validateQuantity),

			huh.NewInput().
				Key("price").
				Title("Selling price (₹)").
				Value(&m.formPrice).
				Validate(validateRupees),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = inventoryStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m InventoryModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = inventoryStateBrowse
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

	return m, m.saveCmd()
}

func (m InventoryModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading inventory...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	filter := "All items"
	if m.lowOnly {
		filter = "Low stock only"
	}

	header := fmt.Sprintf("Filter: [l] %s | %d of %d items", activeStyle(filter), len(m.shown), len(m.all))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxed(m.table.View()),
	)

	if m.state == inventoryStateEdit && m.form != nil {
		name := ""
		if idx := m.table.Cursor(); idx >= 0 && idx < len(m.shown) {
			name = m.shown[idx].Name
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("Edit %s\n\n%s", name, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *InventoryModel) refreshTable() {
	m.shown = make([]*inventory.Item, 0, len(m.all))
	rows := make([]table.Row, 0, len(m.all))

	for _, it := range m.all {
		low := it.LowStockAlert || settings.IsLowStock(it.Quantity, it.Unit, m.shop)
		if m.lowOnly && !low {
			continue
		}

		flag := "ok"
		if low {
			flag = "LOW"
		}

		m.shown = append(m.shown, it)
		rows = append(rows, table.Row{
			it.Name,
			it.Category,
			it.Quantity.String(),
			it.Unit,
			FormatRupees(it.PurchasePrice),
			FormatRupees(it.SellingPrice),
			flag,
		})
	}

	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func validateQuantity(s string) error {
	q, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return errors.New("not a number")
	}

	if q.IsNegative() {
		return errors.New("quantity cannot be negative")
	}

	return nil
}

func validateRupees(s string) error {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return errors.New("whole rupees only")
	}

	if v < 0 {
		return errors.New("amount cannot be negative")
	}

	return nil
}

// Messages

type loadInventoryMsg struct {
	items []*inventory.Item
	shop  *settings.Settings
	err   error
}

func (m InventoryModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		shop, err := m.settingsService.Get(ctx)
		if err != nil {
			return loadInventoryMsg{err: err}
		}

		items, err := m.inventoryService.List(ctx)

		return loadInventoryMsg{items: items, shop: shop, err: err}
	}
}

type inventorySaveMsg struct {
	err error
}

func (m InventoryModel) saveCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.shown) {
		return nil
	}

	id := m.shown[idx].ID
	quantity, _ := decimal.NewFromString(strings.TrimSpace(m.formQuantity))
	price, _ := strconv.ParseInt(strings.TrimSpace(m.formPrice), 10, 64)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.inventoryService.Update(ctx, id, inventory.Patch{
			Quantity:     &quantity,
			SellingPrice: &price,
		})

		return inventorySaveMsg{err: err}
	}
}
