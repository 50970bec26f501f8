package customer

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/kirana/internal/billing"
	"github.com/MrJamesThe3rd/kirana/internal/customer"
	"github.com/MrJamesThe3rd/kirana/internal/http/respond"
)

type Handler struct {
	svc     *customer.Service
	billing *billing.Service
}

func NewHandler(svc *customer.Service, billingSvc *billing.Service) *Handler {
	return &Handler{svc: svc, billing: billingSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/dues", h.dues)
	r.Get("/{id}", h.get)
}

type createCustomerRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	c, err := h.svc.Create(r.Context(), customer.CreateParams{
		Name:  req.Name,
		Phone: req.Phone,
		Notes: req.Notes,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	customers, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]customerResponse, 0, len(customers))
	for _, c := range customers {
		resp = append(resp, toResponse(c))
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ParamID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) dues(w http.ResponseWriter, r *http.Request) {
	dues, err := h.billing.ListCustomerDues(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]dueResponse, 0, len(dues))
	for _, d := range dues {
		resp = append(resp, toDueResponse(d))
	}

	respond.JSON(w, http.StatusOK, resp)
}
