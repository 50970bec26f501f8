package matching

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kirana/internal/apperror"
	"github.com/MrJamesThe3rd/kirana/internal/http/respond"
	"github.com/MrJamesThe3rd/kirana/internal/matching"
)

var ErrMissingRaw = errors.New("raw query parameter is required")

type Handler struct {
	svc *matching.Service
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.learn)
	r.Get("/suggest", h.suggest)
}

type aliasResponse struct {
	ID         uuid.UUID `json:"id"`
	RawPattern string    `json:"rawPattern"`
	ItemName   string    `json:"itemName"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toAliasResponse(a *matching.Alias) aliasResponse {
	return aliasResponse{
		ID:         a.ID,
		RawPattern: a.RawPattern,
		ItemName:   a.ItemName,
		CreatedAt:  a.CreatedAt,
	}
}

type suggestResponse struct {
	Raw      string `json:"raw"`
	ItemName string `json:"itemName"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("raw")
	if raw == "" {
		respond.Error(w, apperror.Invalid(ErrMissingRaw, ""))
		return
	}

	name, err := h.svc.Suggest(r.Context(), raw)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, suggestResponse{Raw: raw, ItemName: name})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	aliases, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]aliasResponse, 0, len(aliases))
	for _, a := range aliases {
		resp = append(resp, toAliasResponse(a))
	}

	respond.JSON(w, http.StatusOK, resp)
}

type learnRequest struct {
	RawPattern string `json:"rawPattern" validate:"required"`
	ItemName   string `json:"itemName" validate:"required"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	alias, err := h.svc.Learn(r.Context(), req.RawPattern, req.ItemName)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toAliasResponse(alias))
}
