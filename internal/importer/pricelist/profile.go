package pricelist

import "strings"

// field is a column the parser understands.
type field int

const (
	fieldName field = iota
	fieldCategory
	fieldQuantity
	fieldUnit
	fieldPurchasePrice
	fieldSellingPrice
)

// headerAliases maps lower-cased header text to the column it names.
var headerAliases = map[string]field{
	"name":         fieldName,
	"item":         fieldName,
	"item name":    fieldName,
	"product":      fieldName,
	"product name": fieldName,
	"description":  fieldName,

	"category": fieldCategory,
	"group":    fieldCategory,
	"type":     fieldCategory,

	"quantity": fieldQuantity,
	"qty":      fieldQuantity,
	"stock":    fieldQuantity,

	"unit":  fieldUnit,
	"units": fieldUnit,
	"uom":   fieldUnit,

	"purchase price": fieldPurchasePrice,
	"purchase":       fieldPurchasePrice,
	"cost":           fieldPurchasePrice,
	"cost price":     fieldPurchasePrice,
	"buying price":   fieldPurchasePrice,

	"selling price": fieldSellingPrice,
	"sale price":    fieldSellingPrice,
	"price":         fieldSellingPrice,
	"rate":          fieldSellingPrice,
	"mrp":           fieldSellingPrice,
}

// Profile is a column layout a supplier sheet can follow.
type Profile struct {
	Name     string
	Required []field
}

// profiles are tried in order; the more complete layout comes first.
var profiles = []Profile{
	{
		Name:     "inventory",
		Required: []field{fieldName, fieldCategory, fieldQuantity, fieldUnit, fieldPurchasePrice, fieldSellingPrice},
	},
	{
		Name:     "catalog",
		Required: []field{fieldName, fieldSellingPrice},
	},
}

// colIndex maps recognised fields to their column.
type colIndex map[field]int

// headerColumns reads a row as a header. The first column claiming a field wins.
func headerColumns(row []string) colIndex {
	cols := make(colIndex)

	for i, cell := range row {
		name := strings.Join(strings.Fields(strings.ToLower(cell)), " ")
		name = strings.TrimSuffix(strings.TrimSpace(strings.Trim(name, "*:")), " (rs)")

		f, ok := headerAliases[name]
		if !ok {
			continue
		}

		if _, seen := cols[f]; !seen {
			cols[f] = i
		}
	}

	return cols
}

func (p *Profile) matches(cols colIndex) bool {
	for _, f := range p.Required {
		if _, ok := cols[f]; !ok {
			return false
		}
	}

	return true
}
