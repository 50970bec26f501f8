package settings

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LimitFor resolves the low-stock limit for a unit of measure. A nil settings
// value or a limit that is not positive resolves to DefaultLowStockLimit.
func LimitFor(unit string, s *Settings) int {
	if s == nil {
		return DefaultLowStockLimit
	}

	var limit int

	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "kg", "kgs":
		limit = s.LowStockLimitKg
	case "liter", "liters", "l":
		limit = s.LowStockLimitLiters
	case "pack", "packs", "packet", "packets":
		limit = s.LowStockLimitPack
	case "piece", "pieces", "pcs", "pc":
		limit = s.LowStockLimitPieces
	default:
		limit = s.LowStockLimitDefault
	}

	if limit <= 0 {
		return DefaultLowStockLimit
	}

	return limit
}

// IsLowStock reports whether quantity is strictly below the unit's limit.
func IsLowStock(quantity decimal.Decimal, unit string, s *Settings) bool {
	return quantity.LessThan(decimal.NewFromInt(int64(LimitFor(unit, s))))
}
