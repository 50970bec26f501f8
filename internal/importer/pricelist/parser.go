// Package pricelist reads supplier price lists exported from spreadsheets.
package pricelist

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/kirana/internal/encoding"
	"github.com/MrJamesThe3rd/kirana/internal/inventory"
)

const (
	DefaultCategory = "General"
	DefaultUnit     = "pieces"
)

var ErrNoHeader = errors.New("no price list header found: expected at least item name and selling price columns")

// delimiters are tried in order until one yields a recognisable header.
var delimiters = []rune{';', '\t', ','}

// Parser reads price list CSVs. It detects the delimiter and the header row,
// so title rows above the table are ignored.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]inventory.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	for _, delim := range delimiters {
		rows, err := readRows(data, delim)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		return parseRows(cols, rows[headerIdx+1:], headerIdx+1)
	}

	return nil, ErrNoHeader
}

func readRows(data []byte, delim rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	return reader.ReadAll()
}

// detectProfile returns the first row that matches a known profile.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := headerColumns(row)

		for i := range profiles {
			if profiles[i].matches(cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// parseRows converts data rows. Blank rows and rows without a name are
// skipped; a named row with a bad number is an error.
func parseRows(cols colIndex, rows [][]string, headerRowNum int) ([]inventory.CreateParams, error) {
	var out []inventory.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 1 // 1-based

		name := cell(row, cols, fieldName)
		if name == "" {
			continue
		}

		p := inventory.CreateParams{
			Name:     name,
			Category: cellOr(row, cols, fieldCategory, DefaultCategory),
			Unit:     strings.ToLower(cellOr(row, cols, fieldUnit, DefaultUnit)),
			Quantity: decimal.Zero,
		}

		var err error

		if p.SellingPrice, err = parsePrice(cell(row, cols, fieldSellingPrice)); err != nil {
			return nil, fmt.Errorf("row %d (%s): selling price: %w", rowNum, name, err)
		}

		if s := cell(row, cols, fieldPurchasePrice); s != "" {
			if p.PurchasePrice, err = parsePrice(s); err != nil {
				return nil, fmt.Errorf("row %d (%s): purchase price: %w", rowNum, name, err)
			}
		}

		if s := cell(row, cols, fieldQuantity); s != "" {
			if p.Quantity, err = parseAmount(s); err != nil {
				return nil, fmt.Errorf("row %d (%s): quantity: %w", rowNum, name, err)
			}
		}

		out = append(out, p)
	}

	return out, nil
}

func cell(row []string, cols colIndex, f field) string {
	idx, ok := cols[f]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func cellOr(row []string, cols colIndex, f field, fallback string) string {
	if v := cell(row, cols, f); v != "" {
		return v
	}

	return fallback
}
