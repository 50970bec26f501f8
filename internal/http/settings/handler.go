package settings

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/kirana/internal/http/respond"
	"github.com/MrJamesThe3rd/kirana/internal/settings"
)

type Handler struct {
	svc *settings.Service
}

func NewHandler(svc *settings.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Patch("/", h.update)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Get(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(s))
}

type updateSettingsRequest struct {
	ShopName    *string `json:"shopName,omitempty"`
	OwnerName   *string `json:"ownerName,omitempty"`
	ShopPhone   *string `json:"shopPhone,omitempty"`
	ShopAddress *string `json:"shopAddress,omitempty"`
	Language    *string `json:"language,omitempty" validate:"omitnil,min=2"`
	DarkMode    *bool   `json:"darkMode,omitempty"`

	LowStockLimitKg      *int `json:"lowStockLimitKg,omitempty" validate:"omitnil,gte=0"`
	LowStockLimitLiters  *int `json:"lowStockLimitLiters,omitempty" validate:"omitnil,gte=0"`
	LowStockLimitPack    *int `json:"lowStockLimitPack,omitempty" validate:"omitnil,gte=0"`
	LowStockLimitPieces  *int `json:"lowStockLimitPieces,omitempty" validate:"omitnil,gte=0"`
	LowStockLimitDefault *int `json:"lowStockLimitDefault,omitempty" validate:"omitnil,gte=0"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	s, err := h.svc.Update(r.Context(), settings.Patch{
		ShopName:             req.ShopName,
		OwnerName:            req.OwnerName,
		ShopPhone:            req.ShopPhone,
		ShopAddress:          req.ShopAddress,
		Language:             req.Language,
		DarkMode:             req.DarkMode,
		LowStockLimitKg:      req.LowStockLimitKg,
		LowStockLimitLiters:  req.LowStockLimitLiters,
		LowStockLimitPack:    req.LowStockLimitPack,
		LowStockLimitPieces:  req.LowStockLimitPieces,
		LowStockLimitDefault: req.LowStockLimitDefault,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(s))
}
