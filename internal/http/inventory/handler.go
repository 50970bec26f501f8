package inventory

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/kirana/internal/apperror"
	"github.com/MrJamesThe3rd/kirana/internal/http/respond"
	"github.com/MrJamesThe3rd/kirana/internal/importer"
	"github.com/MrJamesThe3rd/kirana/internal/inventory"
	"github.com/MrJamesThe3rd/kirana/internal/matching"
	"github.com/MrJamesThe3rd/kirana/internal/settings"
)

const maxUploadSize = 10 << 20

var ErrMissingFile = errors.New("file field is required")

type Handler struct {
	svc       *inventory.Service
	shop      *settings.Service
	importSvc *importer.Service
	matchSvc  *matching.Service
}

func NewHandler(svc *inventory.Service, shop *settings.Service, importSvc *importer.Service, matchSvc *matching.Service) *Handler {
	return &Handler{
		svc:       svc,
		shop:      shop,
		importSvc: importSvc,
		matchSvc:  matchSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// ImportRoutes accept multipart uploads, so they are mounted outside the JSON-only group.
func (h *Handler) ImportRoutes(r chi.Router) {
	r.Post("/", h.importFile)
	r.Post("/confirm", h.confirmImport)
}

type createItemRequest struct {
	Name          string          `json:"name" validate:"required"`
	Category      string          `json:"category" validate:"required"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit" validate:"required"`
	PurchasePrice *int64          `json:"purchasePrice" validate:"required,gte=0"`
	SellingPrice  *int64          `json:"sellingPrice" validate:"required,gte=0"`
	SellerID      *uuid.UUID      `json:"sellerId"`
	LowStockAlert bool            `json:"lowStockAlert"`
}

func (req createItemRequest) params() inventory.CreateParams {
	return inventory.CreateParams{
		Name:          req.Name,
		Category:      req.Category,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		PurchasePrice: *req.PurchasePrice,
		SellingPrice:  *req.SellingPrice,
		SellerID:      req.SellerID,
		LowStockAlert: req.LowStockAlert,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	item, err := h.svc.Create(r.Context(), req.params())
	if err != nil {
		respond.Error(w, err)
		return
	}

	shop, err := h.shop.Get(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(item, shop))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	shop, err := h.shop.Get(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(items, shop))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ParamID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	item, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	shop, err := h.shop.Get(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(item, shop))
}

type updateItemRequest struct {
	Name          *string          `json:"name,omitempty"`
	Category      *string          `json:"category,omitempty"`
	Quantity      *decimal.Decimal `json:"quantity,omitempty"`
	Unit          *string          `json:"unit,omitempty"`
	PurchasePrice *int64           `json:"purchasePrice,omitempty" validate:"omitnil,gte=0"`
	SellingPrice  *int64           `json:"sellingPrice,omitempty" validate:"omitnil,gte=0"`
	SellerID      nullableUUID     `json:"sellerId"`
	LowStockAlert *bool            `json:"lowStockAlert,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ParamID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req updateItemRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	item, err := h.svc.Update(r.Context(), id, inventory.Patch{
		Name:          req.Name,
		Category:      req.Category,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		PurchasePrice: req.PurchasePrice,
		SellingPrice:  req.SellingPrice,
		SellerID:      req.SellerID.Value,
		ClearSeller:   req.SellerID.Set && req.SellerID.Value == nil,
		LowStockAlert: req.LowStockAlert,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	shop, err := h.shop.Get(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(item, shop))
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

// importFile parses an uploaded price list, renames rows by learned aliases and
// creates them. Rows that already exist are returned with 409 and nothing is written.
func (h *Handler) importFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respond.Error(w, apperror.Invalid(respond.ErrMalformedBody, err.Error()))
		return
	}

	format := importer.Format(strings.TrimSpace(r.FormValue("format")))
	if format == "" {
		format = importer.FormatPriceList
	}

	var sellerID *uuid.UUID

	if s := strings.TrimSpace(r.FormValue("sellerId")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.Error(w, apperror.Invalidf(respond.ErrInvalidID, "sellerId %q", s))
			return
		}

		sellerID = &id
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, apperror.Invalid(ErrMissingFile, ""))
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(format, file)
	if err != nil {
		respond.Error(w, err)
		return
	}

	renamed, err := h.matchSvc.Apply(r.Context(), params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	for i := range params {
		params[i].SellerID = sellerID
	}

	result, err := h.svc.ImportBatch(r.Context(), params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	if len(result.Conflicts) > 0 {
		respond.JSON(w, http.StatusConflict, toConflictResponse(result))
		return
	}

	shop, err := h.shop.Get(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, importResponse{
		Imported: len(result.Imported),
		Renamed:  renamed,
		Items:    toResponseList(result.Imported, shop),
	})
}

type confirmRequest struct {
	Items []createItemRequest `json:"items" validate:"required,min=1,dive"`
}

// confirmImport creates rows the client reviewed after a conflicting import.
func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	params := make([]inventory.CreateParams, 0, len(req.Items))
	for _, it := range req.Items {
		params = append(params, it.params())
	}

	items, err := h.svc.CreateBatch(r.Context(), params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	shop, err := h.shop.Get(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, importResponse{
		Imported: len(items),
		Items:    toResponseList(items, shop),
	})
}
