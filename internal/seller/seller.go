package seller

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kirana/internal/apperror"
)

var (
	ErrNotFound      = fmt.Errorf("seller %w", apperror.ErrNotFound)
	ErrInvalidSeller = errors.New("invalid seller")
)

// Seller is a supplier contact. Inventory items reference it weakly.
type Seller struct {
	ID          uuid.UUID
	Name        string
	Phone       string
	ProductType string
	Address     string
	Notes       string
	CreatedAt   time.Time
}

type CreateParams struct {
	Name        string
	Phone       string
	ProductType string
	Address     string
	Notes       string
}

type Patch struct {
	Name        *string
	Phone       *string
	ProductType *string
	Address     *string
	Notes       *string
}
