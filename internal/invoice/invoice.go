// Package invoice renders bills and price lists as HTML and PDF documents.
package invoice

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/kirana/internal/billing"
	"github.com/MrJamesThe3rd/kirana/internal/customer"
	"github.com/MrJamesThe3rd/kirana/internal/inventory"
	"github.com/MrJamesThe3rd/kirana/internal/settings"
)

// DefaultShopName heads documents when the shop has not been named yet.
const DefaultShopName = "Store Name"

// Document is everything printed on a bill invoice. Customer may be nil.
type Document struct {
	Shop     *settings.Settings
	Bill     *billing.Bill
	Customer *customer.Customer
}

// PriceEntry is one row of the price list.
type PriceEntry struct {
	Name  string
	Unit  string
	Price int64
}

type PriceList struct {
	ShopName    string
	GeneratedOn time.Time
	Entries     []PriceEntry
}

// UniquePrices keeps the most recently created item per name, filters by a
// case-insensitive name substring and sorts by name.
func UniquePrices(items []*inventory.Item, query string) []PriceEntry {
	latest := make(map[string]*inventory.Item, len(items))

	for _, it := range items {
		prev, ok := latest[it.Name]
		if !ok || it.CreatedAt.After(prev.CreatedAt) {
			latest[it.Name] = it
		}
	}

	query = strings.ToLower(strings.TrimSpace(query))
	entries := make([]PriceEntry, 0, len(latest))

	for _, it := range latest {
		if query != "" && !strings.Contains(strings.ToLower(it.Name), query) {
			continue
		}

		entries = append(entries, PriceEntry{Name: it.Name, Unit: it.Unit, Price: it.SellingPrice})
	}

	slices.SortFunc(entries, func(a, b PriceEntry) int {
		return cmp.Or(
			cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)),
			cmp.Compare(a.Name, b.Name),
		)
	})

	return entries
}

// ArchiveKey is where a bill's PDF is stored.
func ArchiveKey(billNumber string) string {
	return "invoices/" + billNumber + ".pdf"
}
