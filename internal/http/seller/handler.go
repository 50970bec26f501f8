package seller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/kirana/internal/http/respond"
	"github.com/MrJamesThe3rd/kirana/internal/seller"
)

type Handler struct {
	svc *seller.Service
}

func NewHandler(svc *seller.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createSellerRequest struct {
	Name        string `json:"name" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	ProductType string `json:"productType" validate:"required"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createSellerRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	s, err := h.svc.Create(r.Context(), seller.CreateParams{
		Name:        req.Name,
		Phone:       req.Phone,
		ProductType: req.ProductType,
		Address:     req.Address,
		Notes:       req.Notes,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(s))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	sellers, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(sellers))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ParamID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	s, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(s))
}

type updateSellerRequest struct {
	Name        *string `json:"name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	ProductType *string `json:"productType,omitempty"`
	Address     *string `json:"address,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ParamID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req updateSellerRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	s, err := h.svc.Update(r.Context(), id, seller.Patch{
		Name:        req.Name,
		Phone:       req.Phone,
		ProductType: req.ProductType,
		Address:     req.Address,
		Notes:       req.Notes,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(s))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ParamID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, err)
		return
	}

	respond.Success(w)
}
