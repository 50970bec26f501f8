// Package backup exports the shop's data as a JSON snapshot and restores it
// with fresh identities.
package backup

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const Version = "1.0"

var ErrUnsupportedVersion = errors.New("unsupported backup version")

type Snapshot struct {
	Version    string    `json:"version"`
	ExportDate time.Time `json:"exportDate"`
	Data       Data      `json:"data"`
}

type Data struct {
	Inventory    []Item        `json:"inventory"`
	Transactions []Transaction `json:"transactions"`
	Sellers      []Seller      `json:"sellers"`
	Settings     *Settings     `json:"settings,omitempty"`
}

type Item struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	PurchasePrice int64           `json:"purchasePrice"`
	SellingPrice  int64           `json:"sellingPrice"`
	SellerID      *uuid.UUID      `json:"sellerId"`
	LowStockAlert bool            `json:"lowStockAlert"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type Transaction struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Category  string    `json:"category"`
	Amount    int64     `json:"amount"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Seller struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	ProductType string    `json:"productType"`
	Address     string    `json:"address,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Settings struct {
	ShopName             string `json:"shopName"`
	OwnerName            string `json:"ownerName"`
	ShopPhone            string `json:"shopPhone"`
	ShopAddress          string `json:"shopAddress"`
	Language             string `json:"language"`
	DarkMode             bool   `json:"darkMode"`
	LowStockLimitKg      int    `json:"lowStockLimitKg"`
	LowStockLimitLiters  int    `json:"lowStockLimitLiters"`
	LowStockLimitPack    int    `json:"lowStockLimitPack"`
	LowStockLimitPieces  int    `json:"lowStockLimitPieces"`
	LowStockLimitDefault int    `json:"lowStockLimitDefault"`
}

// Result counts the rows created by an import.
type Result struct {
	Sellers      int  `json:"sellers"`
	Inventory    int  `json:"inventory"`
	Transactions int  `json:"transactions"`
	Settings     bool `json:"settings"`
}

// FileName is the download name for a snapshot taken at t.
func FileName(t time.Time) string {
	return "kirana-backup-" + t.Format("20060102") + ".json"
}
