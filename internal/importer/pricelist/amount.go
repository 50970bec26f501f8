package pricelist

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var errEmptyAmount = errors.New("empty amount")

var currencyMarks = []string{"₹", "Rs.", "Rs", "INR", "rs.", "rs"}

// parseAmount reads "1,234.56", "1.234,56", "₹ 95" and similar. When both
// separators appear the last one is the decimal point. A single separator
// followed by exactly three digits is taken as a thousands separator.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	for _, mark := range currencyMarks {
		clean = strings.TrimPrefix(clean, mark)
	}

	clean = strings.ReplaceAll(strings.TrimSpace(clean), " ", "")
	if clean == "" {
		return decimal.Zero, errEmptyAmount
	}

	lastDot := strings.LastIndex(clean, ".")
	lastComma := strings.LastIndex(clean, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			clean = europeanToPlain(clean)
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(clean, ",") == 1 && len(clean)-lastComma-1 != 3 {
			clean = strings.Replace(clean, ",", ".", 1)
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case lastDot >= 0:
		if strings.Count(clean, ".") > 1 {
			clean = strings.ReplaceAll(clean, ".", "")
		}
	}

	return decimal.NewFromString(clean)
}

func europeanToPlain(s string) string {
	s = strings.ReplaceAll(s, ".", "")
	return strings.ReplaceAll(s, ",", ".")
}

// parsePrice rounds an amount to whole currency units.
func parsePrice(s string) (int64, error) {
	d, err := parseAmount(s)
	if err != nil {
		return 0, err
	}

	return d.Round(0).IntPart(), nil
}
