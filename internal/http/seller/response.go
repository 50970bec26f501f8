package seller

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kirana/internal/seller"
)

type sellerResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	ProductType string    `json:"productType"`
	Address     string    `json:"address"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toResponse(s *seller.Seller) sellerResponse {
	return sellerResponse{
		ID:          s.ID,
		Name:        s.Name,
		Phone:       s.Phone,
		ProductType: s.ProductType,
		Address:     s.Address,
		Notes:       s.Notes,
		CreatedAt:   s.CreatedAt,
	}
}

func toResponseList(sellers []*seller.Seller) []sellerResponse {
	resp := make([]sellerResponse, 0, len(sellers))
	for _, s := range sellers {
		resp = append(resp, toResponse(s))
	}

	return resp
}
