package settings

import (
	"time"

	"github.com/MrJamesThe3rd/kirana/internal/settings"
)

type settingsResponse struct {
	ShopName    string `json:"shopName"`
	OwnerName   string `json:"ownerName"`
	ShopPhone   string `json:"shopPhone"`
	ShopAddress string `json:"shopAddress"`
	Language    string `json:"language"`
	DarkMode    bool   `json:"darkMode"`

	LowStockLimitKg      int `json:"lowStockLimitKg"`
	LowStockLimitLiters  int `json:"lowStockLimitLiters"`
	LowStockLimitPack    int `json:"lowStockLimitPack"`
	LowStockLimitPieces  int `json:"lowStockLimitPieces"`
	LowStockLimitDefault int `json:"lowStockLimitDefault"`

	UpdatedAt time.Time `json:"updatedAt"`
}

func toResponse(s *settings.Settings) settingsResponse {
	return settingsResponse{
		ShopName:             s.ShopName,
		OwnerName:            s.OwnerName,
		ShopPhone:            s.ShopPhone,
		ShopAddress:          s.ShopAddress,
		Language:             s.Language,
		DarkMode:             s.DarkMode,
		LowStockLimitKg:      s.LowStockLimitKg,
		LowStockLimitLiters:  s.LowStockLimitLiters,
		LowStockLimitPack:    s.LowStockLimitPack,
		LowStockLimitPieces:  s.LowStockLimitPieces,
		LowStockLimitDefault: s.LowStockLimitDefault,
		UpdatedAt:            s.UpdatedAt,
	}
}
