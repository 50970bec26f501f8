package view

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kirana/internal/importer"
	"github.com/MrJamesThe3rd/kirana/internal/inventory"
	"github.com/MrJamesThe3rd/kirana/internal/matching"
	"github.com/MrJamesThe3rd/kirana/internal/seller"
)

const importTimeout = 2 * time.Minute

type importStep int

const (
	importStepSeller importStep = iota
	importStepFile
	importStepLoading
	importStepReview
	importStepDone
)

// ImportModel loads a seller's price list into the inventory. Rows that match
// a stocked item by name and unit are held back for review.
type ImportModel struct {
	CommonModel
	inventoryService *inventory.Service
	sellerService    *seller.Service
	importService    *importer.Service
	matchingService  *matching.Service

	step       importStep
	sellers    []*seller.Seller
	sellerList table.Model
	filePicker filepicker.Model

	fresh   []inventory.CreateParams
	matches []inventory.Conflict
	keep    map[int]bool
	review  table.Model
	renamed int

	added   []*inventory.Item
	skipped int
	message string
	failed  bool
}

func NewImportModel(invSvc *inventory.Service, sellerSvc *seller.Service, impSvc *importer.Service, matchSvc *matching.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		inventoryService: invSvc,
		sellerService:    sellerSvc,
		importService:    impSvc,
		matchingService:  matchSvc,
		filePicker:       fp,
		sellerList: newTable([]table.Column{
			{Title: "Seller", Width: 24},
			{Title: "Supplies", Width: 18},
			{Title: "Phone", Width: 14},
		}),
		review: newTable([]table.Column{
			{Title: "Add", Width: 4},
			{Title: "Item", Width: 22},
			{Title: "Unit", Width: 8},
			{Title: "In stock", Width: 9},
			{Title: "Incoming", Width: 9},
			{Title: "Buy", Width: 20},
			{Title: "Sell", Width: 20},
			{Title: "Sell Δ", Width: 8},
		}),
		keep: make(map[int]bool),
	}
}

func (m ImportModel) Title() string { return "Import Price List" }

func (m ImportModel) ShortHelp() string {
	switch m.step {
	case importStepReview:
		return "Space: add/skip row | a: add all | n: skip all | Enter: import | Esc: cancel"
	case importStepDone:
		return "Esc: import another"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.loadSellersCmd()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.back()
		}

		switch m.step {
		case importStepSeller:
			return m.updateSeller(msg)
		case importStepReview:
			return m.updateReview(msg)
		}

	case loadSellersMsg:
		if msg.err != nil {
			return m.fail(msg.err), nil
		}

		m.sellers = msg.sellers
		m.refreshSellers()

		return m, nil

	case importResultMsg:
		if msg.err != nil {
			return m.fail(msg.err), nil
		}

		m.renamed = msg.renamed

		if len(msg.result.Conflicts) == 0 {
			return m.finish(msg.result.Imported), nil
		}

		m.fresh = msg.result.New
		m.matches = msg.result.Conflicts
		m.keep = make(map[int]bool)
		m.step = importStepReview
		m.refreshReview()

		return m, nil

	case confirmResultMsg:
		if msg.err != nil {
			return m.fail(msg.err), nil
		}

		return m.finish(msg.items), nil
	}

	if m.step != importStepFile {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.step = importStepLoading
		m.message = fmt.Sprintf("Reading %s...", path)

		return m, m.importCmd(path, m.sellerID())
	}

	return m, cmd
}

func (m ImportModel) back() (tea.Model, tea.Cmd) {
	switch m.step {
	case importStepSeller, importStepLoading:
		return m, Back
	case importStepFile:
		m.step = importStepSeller
	default:
		m.step = importStepSeller
		m.fresh, m.matches, m.added = nil, nil, nil
		m.keep = make(map[int]bool)
		m.message, m.failed = "", false
	}

	return m, nil
}

func (m ImportModel) fail(err error) ImportModel {
	m.step = importStepDone
	m.failed = true
	m.message = fmt.Sprintf("Error: %v", err)

	return m
}

func (m ImportModel) finish(items []*inventory.Item) ImportModel {
	m.step = importStepDone
	m.added = items
	m.skipped = len(m.matches) - m.keptCount()
	m.message = importSummary(len(items), m.skipped, m.renamed, m.sellerName())

	return m
}

func (m ImportModel) updateSeller(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		m.step = importStepFile
		return m, m.filePicker.Init()
	}

	var cmd tea.Cmd
	m.sellerList, cmd = m.sellerList.Update(msg)

	return m, cmd
}

func (m ImportModel) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		idx := m.review.Cursor()
		m.keep[idx] = !m.keep[idx]
		m.refreshReview()

		return m, nil
	case "a", "n":
		for i := range m.matches {
			m.keep[i] = msg.String() == "a"
		}

		m.refreshReview()

		return m, nil
	case "enter":
		return m, m.confirmCmd()
	}

	var cmd tea.Cmd
	m.review, cmd = m.review.Update(msg)

	return m, cmd
}

// sellerID maps the picker row to a seller; row 0 is "no seller".
func (m ImportModel) sellerID() *uuid.UUID {
	idx := m.sellerList.Cursor()
	if idx <= 0 || idx > len(m.sellers) {
		return nil
	}

	return &m.sellers[idx-1].ID
}

func (m ImportModel) sellerName() string {
	idx := m.sellerList.Cursor()
	if idx <= 0 || idx > len(m.sellers) {
		return ""
	}

	return m.sellers[idx-1].Name
}

func (m ImportModel) keptCount() int {
	n := 0
	for i := range m.matches {
		if m.keep[i] {
			n++
		}
	}

	return n
}

func (m *ImportModel) refreshSellers() {
	rows := make([]table.Row, 0, len(m.sellers)+1)
	rows = append(rows, table.Row{"No seller", "", ""})

	for _, s := range m.sellers {
		rows = append(rows, table.Row{s.Name, s.ProductType, s.Phone})
	}

	m.sellerList.SetRows(rows)
}

func (m *ImportModel) refreshReview() {
	cursor := m.review.Cursor()

	rows := make([]table.Row, 0, len(m.matches))
	for i, c := range m.matches {
		rows = append(rows, reviewRow(c, m.keep[i]))
	}

	m.review.SetRows(rows)
	m.review.SetCursor(cursor)
}

// reviewRow sets an incoming price-list row beside the stocked item it matches.
func reviewRow(c inventory.Conflict, keep bool) table.Row {
	mark := "   "
	if keep {
		mark = "[x]"
	}

	in, cur := c.Incoming, c.Existing

	return table.Row{
		mark,
		in.Name,
		in.Unit,
		cur.Quantity.String(),
		in.Quantity.String(),
		priceMove(cur.PurchasePrice, in.PurchasePrice),
		priceMove(cur.SellingPrice, in.SellingPrice),
		priceChange(cur.SellingPrice, in.SellingPrice),
	}
}

func priceMove(from, to int64) string {
	if from == to {
		return FormatRupees(to)
	}

	return FormatRupees(from) + " → " + FormatRupees(to)
}

// priceChange is the percentage move from one price to another, or "new"
// when there was no price before.
func priceChange(from, to int64) string {
	switch {
	case from == to:
		return "="
	case from == 0:
		return "new"
	}

	return fmt.Sprintf("%+.0f%%", float64(to-from)*100/float64(from))
}

func importSummary(added, skipped, renamed int, sellerName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Added %d items", added)

	if sellerName != "" {
		fmt.Fprintf(&b, " from %s", sellerName)
	}

	if skipped > 0 {
		fmt.Fprintf(&b, ", skipped %d already stocked", skipped)
	}

	if renamed > 0 {
		fmt.Fprintf(&b, ", %d renamed from learned aliases", renamed)
	}

	return b.String() + "."
}

func (m ImportModel) View() string {
	pad := lipgloss.NewStyle().Padding(1)

	switch m.step {
	case importStepSeller:
		return pad.Render("Price list from:\n\n" + boxed(m.sellerList.View()))
	case importStepFile:
		return pad.Render("Select price list (CSV):\n\n" + m.filePicker.View())
	case importStepLoading:
		return pad.Render(m.message)
	case importStepReview:
		header := fmt.Sprintf("%d new rows ready. %d rows match stocked items, %d marked to add anyway.",
			len(m.fresh), len(m.matches), m.keptCount())

		return pad.Render(header + "\n\n" + boxed(m.review.View()))
	}

	if m.failed {
		return pad.Render(errorStyle(m.message))
	}

	lines := make([]string, 0, len(m.added)+2)
	lines = append(lines, okStyle(m.message), "")

	for _, it := range m.added {
		lines = append(lines, fmt.Sprintf("  %-22s %8s %-7s buy %s  sell %s",
			it.Name, it.Quantity.String(), it.Unit, FormatRupees(it.PurchasePrice), FormatRupees(it.SellingPrice)))
	}

	return pad.Render(strings.Join(lines, "\n"))
}

// Messages

type loadSellersMsg struct {
	sellers []*seller.Seller
	err     error
}

func (m ImportModel) loadSellersCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		sellers, err := m.sellerService.List(ctx)

		return loadSellersMsg{sellers: sellers, err: err}
	}
}

type importResultMsg struct {
	result  *inventory.ImportResult
	renamed int
	err     error
}

type confirmResultMsg struct {
	items []*inventory.Item
	err   error
}

func (m ImportModel) importCmd(path string, sellerID *uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		params, err := m.importService.Import(importer.FormatPriceList, f)
		if err != nil {
			return importResultMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		renamed, err := m.matchingService.Apply(ctx, params)
		if err != nil {
			return importResultMsg{err: err}
		}

		for i := range params {
			params[i].SellerID = sellerID
		}

		result, err := m.inventoryService.ImportBatch(ctx, params)
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{result: result, renamed: renamed}
	}
}

// rowsToCreate is every fresh row plus the matched rows kept in review.
func (m ImportModel) rowsToCreate() []inventory.CreateParams {
	rows := make([]inventory.CreateParams, 0, len(m.fresh)+len(m.matches))
	rows = append(rows, m.fresh...)

	for i, c := range m.matches {
		if m.keep[i] {
			rows = append(rows, c.Incoming)
		}
	}

	return rows
}

func (m ImportModel) confirmCmd() tea.Cmd {
	rows := m.rowsToCreate()

	return func() tea.Msg {
		if len(rows) == 0 {
			return confirmResultMsg{}
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		items, err := m.inventoryService.CreateBatch(ctx, rows)

		return confirmResultMsg{items: items, err: err}
	}
}
