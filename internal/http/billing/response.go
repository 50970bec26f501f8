package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/kirana/internal/billing"
)

type billResponse struct {
	ID          uuid.UUID       `json:"id"`
	BillNumber  string          `json:"billNumber"`
	CustomerID  *uuid.UUID      `json:"customerId"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	AmountPaid  decimal.Decimal `json:"amountPaid"`
	BalanceDue  decimal.Decimal `json:"balanceDue"`
	Status      billing.Status  `json:"status"`
	Date        string          `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
	Items       []itemResponse  `json:"items,omitempty"`
}

type itemResponse struct {
	ID              uuid.UUID       `json:"id"`
	BillID          uuid.UUID       `json:"billId"`
	InventoryItemID uuid.UUID       `json:"inventoryItemId"`
	ItemName        string          `json:"itemName"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	Rate            decimal.Decimal `json:"rate"`
	Total           decimal.Decimal `json:"total"`
}

type paymentResponse struct {
	ID        uuid.UUID       `json:"id"`
	BillID    uuid.UUID       `json:"billId"`
	Amount    decimal.Decimal `json:"amount"`
	Remarks   string          `json:"remarks"`
	CreatedAt time.Time       `json:"createdAt"`
}

type paymentResultResponse struct {
	Bill    billResponse    `json:"bill"`
	Payment paymentResponse `json:"payment"`
}

func toBillResponse(b *billing.Bill) billResponse {
	resp := billResponse{
		ID:          b.ID,
		BillNumber:  b.BillNumber,
		CustomerID:  b.CustomerID,
		Subtotal:    b.Subtotal,
		TotalAmount: b.TotalAmount,
		AmountPaid:  b.AmountPaid,
		BalanceDue:  b.BalanceDue,
		Status:      b.Status,
		Date:        dateOnly(b.Date),
		CreatedAt:   b.CreatedAt,
	}

	if len(b.Items) > 0 {
		resp.Items = toItemResponseList(b.Items)
	}

	return resp
}

func toBillResponseList(bills []*billing.Bill) []billResponse {
	resp := make([]billResponse, 0, len(bills))
	for _, b := range bills {
		resp = append(resp, toBillResponse(b))
	}

	return resp
}

func toItemResponseList(items []*billing.Item) []itemResponse {
	resp := make([]itemResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, itemResponse{
			ID:              it.ID,
			BillID:          it.BillID,
			InventoryItemID: it.InventoryItemID,
			ItemName:        it.ItemName,
			Quantity:        it.Quantity,
			Unit:            it.Unit,
			Rate:            it.Rate,
			Total:           it.Total,
		})
	}

	return resp
}

func toPaymentResponse(p *billing.Payment) paymentResponse {
	return paymentResponse{
		ID:        p.ID,
		BillID:    p.BillID,
		Amount:    p.Amount,
		Remarks:   p.Remarks,
		CreatedAt: p.CreatedAt,
	}
}
