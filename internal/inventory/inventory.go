package inventory

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/kirana/internal/apperror"
)

var (
	ErrNotFound = fmt.Errorf("inventory item %w", apperror.ErrNotFound)

	ErrInvalidItem = errors.New("invalid inventory item")
	ErrItemInUse   = errors.New("inventory item is referenced by bills")
)

// Item is a stock line. Quantity may be fractional for weighed goods; prices
// are whole currency units.
type Item struct {
	ID            uuid.UUID
	Name          string
	Category      string
	Quantity      decimal.Decimal
	Unit          string
	PurchasePrice int64
	SellingPrice  int64
	SellerID      *uuid.UUID
	LowStockAlert bool
	CreatedAt     time.Time
}

type CreateParams struct {
	Name          string
	Category      string
	Quantity      decimal.Decimal
	Unit          string
	PurchasePrice int64
	SellingPrice  int64
	SellerID      *uuid.UUID
	LowStockAlert bool
}

// Patch is a partial update; nil fields keep their stored value.
type Patch struct {
	Name          *string
	Category      *string
	Quantity      *decimal.Decimal
	Unit          *string
	PurchasePrice *int64
	SellingPrice  *int64
	SellerID      *uuid.UUID
	ClearSeller   bool
	LowStockAlert *bool
}
