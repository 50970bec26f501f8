package inventory

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/kirana/internal/inventory"
	"github.com/MrJamesThe3rd/kirana/internal/settings"
)

type itemResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	PurchasePrice int64           `json:"purchasePrice"`
	SellingPrice  int64           `json:"sellingPrice"`
	SellerID      *uuid.UUID      `json:"sellerId"`
	LowStockAlert bool            `json:"lowStockAlert"`
	IsLowStock    bool            `json:"isLowStock"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func toResponse(item *inventory.Item, shop *settings.Settings) itemResponse {
	return itemResponse{
		ID:            item.ID,
		Name:          item.Name,
		Category:      item.Category,
		Quantity:      item.Quantity,
		Unit:          item.Unit,
		PurchasePrice: item.PurchasePrice,
		SellingPrice:  item.SellingPrice,
		SellerID:      item.SellerID,
		LowStockAlert: item.LowStockAlert,
		IsLowStock:    item.LowStockAlert || settings.IsLowStock(item.Quantity, item.Unit, shop),
		CreatedAt:     item.CreatedAt,
	}
}

func toResponseList(items []*inventory.Item, shop *settings.Settings) []itemResponse {
	resp := make([]itemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(item, shop))
	}

	return resp
}

type paramsDTO struct {
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	PurchasePrice int64           `json:"purchasePrice"`
	SellingPrice  int64           `json:"sellingPrice"`
	SellerID      *uuid.UUID      `json:"sellerId"`
}

func toParamsDTO(p inventory.CreateParams) paramsDTO {
	return paramsDTO{
		Name:          p.Name,
		Category:      p.Category,
		Quantity:      p.Quantity,
		Unit:          p.Unit,
		PurchasePrice: p.PurchasePrice,
		SellingPrice:  p.SellingPrice,
		SellerID:      p.SellerID,
	}
}

type conflictDTO struct {
	Incoming paramsDTO    `json:"incoming"`
	Existing itemResponse `json:"existing"`
}

type conflictResponse struct {
	New       []paramsDTO   `json:"new"`
	Conflicts []conflictDTO `json:"conflicts"`
}

func toConflictResponse(result *inventory.ImportResult) conflictResponse {
	resp := conflictResponse{
		New:       make([]paramsDTO, 0, len(result.New)),
		Conflicts: make([]conflictDTO, 0, len(result.Conflicts)),
	}

	for _, p := range result.New {
		resp.New = append(resp.New, toParamsDTO(p))
	}

	for _, c := range result.Conflicts {
		resp.Conflicts = append(resp.Conflicts, conflictDTO{
			Incoming: toParamsDTO(c.Incoming),
			Existing: toResponse(c.Existing, nil),
		})
	}

	return resp
}

type importResponse struct {
	Imported int            `json:"imported"`
	Renamed  int            `json:"renamed"`
	Items    []itemResponse `json:"items"`
}

// nullableUUID tells an explicit null apart from an absent field.
type nullableUUID struct {
	Set   bool
	Value *uuid.UUID
}

func (n *nullableUUID) UnmarshalJSON(b []byte) error {
	n.Set = true

	if string(b) == "null" {
		n.Value = nil
		return nil
	}

	var id uuid.UUID
	if err := json.Unmarshal(b, &id); err != nil {
		return err
	}

	n.Value = &id

	return nil
}
