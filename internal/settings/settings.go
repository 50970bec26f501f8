package settings

import (
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/kirana/internal/apperror"
)

// SingletonID is the fixed primary key of the only settings row.
const SingletonID = 1

// DefaultLowStockLimit applies when no usable per-unit limit is configured.
const DefaultLowStockLimit = 10

var ErrNotFound = fmt.Errorf("settings %w", apperror.ErrNotFound)

// Settings holds shop identity and the per-unit low-stock limits.
type Settings struct {
	ShopName    string
	OwnerName   string
	ShopPhone   string
	ShopAddress string
	Language    string
	DarkMode    bool

	LowStockLimitKg      int
	LowStockLimitLiters  int
	LowStockLimitPack    int
	LowStockLimitPieces  int
	LowStockLimitDefault int

	UpdatedAt time.Time
}

// Defaults returns the values the seeded row starts with.
func Defaults() Settings {
	return Settings{
		Language:             "en",
		LowStockLimitKg:      DefaultLowStockLimit,
		LowStockLimitLiters:  DefaultLowStockLimit,
		LowStockLimitPack:    DefaultLowStockLimit,
		LowStockLimitPieces:  DefaultLowStockLimit,
		LowStockLimitDefault: DefaultLowStockLimit,
	}
}

// Patch is a partial update; nil fields keep their stored value.
type Patch struct {
	ShopName    *string
	OwnerName   *string
	ShopPhone   *string
	ShopAddress *string
	Language    *string
	DarkMode    *bool

	LowStockLimitKg      *int
	LowStockLimitLiters  *int
	LowStockLimitPack    *int
	LowStockLimitPieces  *int
	LowStockLimitDefault *int
}
