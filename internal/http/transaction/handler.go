package transaction

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/kirana/internal/http/respond"
	"github.com/MrJamesThe3rd/kirana/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Patch("/{id}", h.update)
}

type createTransactionRequest struct {
	Type     transaction.Type `json:"type" validate:"required,oneof=income expense"`
	Category string           `json:"category" validate:"required"`
	Amount   int64            `json:"amount"`
	Date     string           `json:"date" validate:"required,datetime=2006-01-02"`
	Notes    string           `json:"notes"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	date, err := respond.ParseDate("date", req.Date)
	if err != nil {
		respond.Error(w, err)
		return
	}

	tx, err := h.svc.Create(r.Context(), transaction.CreateParams{
		Type:     req.Type,
		Category: req.Category,
		Amount:   req.Amount,
		Date:     date,
		Notes:    req.Notes,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := transaction.ListFilter{}

	if s := r.URL.Query().Get("type"); s != "" {
		filter.Type = new(transaction.Type(s))
	}

	start, err := respond.DateQuery(r, "start")
	if err != nil {
		respond.Error(w, err)
		return
	}

	end, err := respond.DateQuery(r, "end")
	if err != nil {
		respond.Error(w, err)
		return
	}

	filter.StartDate = start
	filter.EndDate = end

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ParamID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(tx))
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

type updateTransactionRequest struct {
	Type     *transaction.Type `json:"type,omitempty"`
	Category *string           `json:"category,omitempty"`
	Amount   *int64            `json:"amount,omitempty"`
	Date     *string           `json:"date,omitempty"`
	Notes    *string           `json:"notes,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ParamID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req updateTransactionRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	patch := transaction.Patch{
		Type:     req.Type,
		Category: req.Category,
		Amount:   req.Amount,
		Notes:    req.Notes,
	}

	if req.Date != nil {
		date, err := respond.ParseDate("date", *req.Date)
		if err != nil {
			respond.Error(w, err)
			return
		}

		patch.Date = &date
	}

	tx, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(tx))
}
