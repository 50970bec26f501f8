package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/kirana/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/kirana/internal/billing"
	billingStore "github.com/MrJamesThe3rd/kirana/internal/billing/store"
	"github.com/MrJamesThe3rd/kirana/internal/config"
	"github.com/MrJamesThe3rd/kirana/internal/customer"
	customerStore "github.com/MrJamesThe3rd/kirana/internal/customer/store"
	"github.com/MrJamesThe3rd/kirana/internal/database"
	"github.com/MrJamesThe3rd/kirana/internal/importer"
	"github.com/MrJamesThe3rd/kirana/internal/inventory"
	inventoryStore "github.com/MrJamesThe3rd/kirana/internal/inventory/store"
	"github.com/MrJamesThe3rd/kirana/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/kirana/internal/matching/store"
	"github.com/MrJamesThe3rd/kirana/internal/report"
	"github.com/MrJamesThe3rd/kirana/internal/seller"
	sellerStore "github.com/MrJamesThe3rd/kirana/internal/seller/store"
	"github.com/MrJamesThe3rd/kirana/internal/settings"
	settingsStore "github.com/MrJamesThe3rd/kirana/internal/settings/store"
	"github.com/MrJamesThe3rd/kirana/internal/transaction"
	txStore "github.com/MrJamesThe3rd/kirana/internal/transaction/store"
)

type services struct {
	inventory   *inventory.Service
	settings    *settings.Service
	sellers     *seller.Service
	billing     *billing.Service
	transaction *transaction.Service
	report      *report.Service
	importer    *importer.Service
	matching    *matching.Service
}

type model struct {
	svc     services
	appName string

	currentView View

	inventoryView view.InventoryModel
	duesView      view.DuesModel
	ledgerView    view.LedgerModel
	reportView    view.ReportModel
	importView    view.ImportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewInventory View = 1
	ViewDues      View = 2
	ViewLedger    View = 3
	ViewReports   View = 4
	ViewImport    View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	customerSvc := customer.NewService(customerStore.New(db))
	svc := services{
		inventory:   inventory.NewService(inventoryStore.New(db)),
		settings:    settings.NewService(settingsStore.New(db)),
		sellers:     seller.NewService(sellerStore.New(db)),
		transaction: transaction.NewService(txStore.New(db)),
		importer:    importer.NewService(),
		matching:    matching.NewService(matchingStore.New(db)),
		billing: billing.NewService(billingStore.New(db), customerSvc, billing.Policy{
			AllowOversell:    cfg.Shop.AllowOversell,
			AllowOverpayment: cfg.Shop.AllowOverpayment,
			BillPrefix:       cfg.Shop.BillPrefix,
		}),
	}
	svc.report = report.NewService(svc.transaction, svc.inventory, svc.settings, svc.billing)

	return model{
		svc:         svc,
		appName:     cfg.App.Name,
		currentView: ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewInventory
				m.inventoryView = view.NewInventoryModel(m.svc.inventory, m.svc.settings)

				return m, m.inventoryView.Init()
			case "2":
				m.currentView = ViewDues
				m.duesView = view.NewDuesModel(m.svc.billing)

				return m, m.duesView.Init()
			case "3":
				m.currentView = ViewLedger
				m.ledgerView = view.NewLedgerModel(m.svc.transaction)

				return m, m.ledgerView.Init()
			case "4":
				m.currentView = ViewReports
				m.reportView = view.NewReportModel(m.svc.report)

				return m, m.reportView.Init()
			case "5":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.svc.inventory, m.svc.sellers, m.svc.importer, m.svc.matching)

				return m, m.importView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewInventory:
		var newModel tea.Model
		newModel, cmd = m.inventoryView.Update(msg)
		m.inventoryView = newModel.(view.InventoryModel)
	case ViewDues:
		var newModel tea.Model
		newModel, cmd = m.duesView.Update(msg)
		m.duesView = newModel.(view.DuesModel)
	case ViewLedger:
		var newModel tea.Model
		newModel, cmd = m.ledgerView.Update(msg)
		m.ledgerView = newModel.(view.LedgerModel)
	case ViewReports:
		var newModel tea.Model
		newModel, cmd = m.reportView.Update(msg)
		m.reportView = newModel.(view.ReportModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"1. Inventory\n" +
				"2. Customer Dues\n" +
				"3. Ledger\n" +
				"4. Reports\n" +
				"5. Import Price List\n\n" +
				"q. Quit",
		)
	case ViewInventory:
		return m.inventoryView.View()
	case ViewDues:
		return m.duesView.View()
	case ViewLedger:
		return m.ledgerView.View()
	case ViewReports:
		return m.reportView.View()
	case ViewImport:
		return m.importView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
