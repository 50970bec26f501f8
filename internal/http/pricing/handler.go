package pricing

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/kirana/internal/http/respond"
	"github.com/MrJamesThe3rd/kirana/internal/invoice"
)

type Handler struct {
	svc *invoice.Service
}

func NewHandler(svc *invoice.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/pdf", h.pdf)
}

type priceResponse struct {
	Name  string `json:"name"`
	Unit  string `json:"unit"`
	Price int64  `json:"price"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.PriceList(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]priceResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, priceResponse(e))
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) pdf(w http.ResponseWriter, r *http.Request) {
	pdf, filename, err := h.svc.PriceListPDF(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.Attachment(w, "application/pdf", filename, pdf)
}
