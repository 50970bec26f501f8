package customer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/kirana/internal/billing"
	"github.com/MrJamesThe3rd/kirana/internal/customer"
)

type customerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

func toResponse(c *customer.Customer) customerResponse {
	return customerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
	}
}

type dueResponse struct {
	CustomerID uuid.UUID       `json:"customerId"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	TotalDue   decimal.Decimal `json:"totalDue"`
	BillCount  int             `json:"billCount"`
}

func toDueResponse(d billing.CustomerDue) dueResponse {
	return dueResponse{
		CustomerID: d.CustomerID,
		Name:       d.Name,
		Phone:      d.Phone,
		TotalDue:   d.TotalDue,
		BillCount:  d.BillCount,
	}
}
