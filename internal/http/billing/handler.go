package billing

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/kirana/internal/billing"
	"github.com/MrJamesThe3rd/kirana/internal/http/respond"
	"github.com/MrJamesThe3rd/kirana/internal/idempotency"
	"github.com/MrJamesThe3rd/kirana/internal/invoice"
)

// IdempotencyKeyHeader lets clients retry bill and payment posts safely.
const IdempotencyKeyHeader = "Idempotency-Key"

var errReplayMissing = errors.New("replayed resource no longer exists")

type Handler struct {
	svc      *billing.Service
	invoices *invoice.Service
	guard    *idempotency.Guard
}

func NewHandler(svc *billing.Service, invoices *invoice.Service, guard *idempotency.Guard) *Handler {
	return &Handler{svc: svc, invoices: invoices, guard: guard}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/customer/{customerId}", h.listByCustomer)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.updatePaymentStatus)
	r.Post("/{id}/payment", h.recordPayment)
	r.Get("/{id}/payments", h.listPayments)
	r.Get("/{id}/items", h.listItems)
	r.Get("/{id}/invoice", h.invoice)
}

type billItemRequest struct {
	InventoryItemID uuid.UUID       `json:"inventoryItemId" validate:"required"`
	Quantity        decimal.Decimal `json:"quantity"`
}

type createBillRequest struct {
	CustomerID *uuid.UUID        `json:"customerId"`
	Items      []billItemRequest `json:"items" validate:"required,min=1,dive"`
	AmountPaid *decimal.Decimal  `json:"amountPaid"`
	Date       string            `json:"date" validate:"omitempty,datetime=2006-01-02"`
	BillNumber string            `json:"billNumber"`
}

// create is idempotent per Idempotency-Key. A replay answers 200 with the bill
// created by the first request.
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createBillRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	params := billing.CreateParams{
		CustomerID: req.CustomerID,
		Items:      make([]billing.ItemParams, 0, len(req.Items)),
		AmountPaid: req.AmountPaid,
		BillNumber: req.BillNumber,
	}

	for _, it := range req.Items {
		params.Items = append(params.Items, billing.ItemParams{
			InventoryItemID: it.InventoryItemID,
			Quantity:        it.Quantity,
		})
	}

	if req.Date != "" {
		date, err := respond.ParseDate("date", req.Date)
		if err != nil {
			respond.Error(w, err)
			return
		}

		params.Date = date
	}

	var created *billing.Bill

	id, replayed, err := h.guard.Do(r.Context(), scopedKey("bill", r), func() (string, error) {
		bill, err := h.svc.CreateBill(r.Context(), params)
		if err != nil {
			return "", err
		}

		created = bill

		return bill.ID.String(), nil
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	if !replayed {
		respond.JSON(w, http.StatusCreated, toBillResponse(created))
		return
	}

	billID, err := uuid.Parse(id)
	if err != nil {
		respond.Error(w, fmt.Errorf("replaying bill: %w", err))
		return
	}

	bill, err := h.svc.Get(r.Context(), billID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toBillResponse(bill))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	bills, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toBillResponseList(bills))
}

func (h *Handler) listByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := respond.ParamID(r, "customerId")
	if err != nil {
		respond.Error(w, err)
		return
	}

	bills, err := h.svc.ListByCustomer(r.Context(), customerID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toBillResponseList(bills))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ParamID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	bill, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toBillResponse(bill))
}

type updatePaymentStatusRequest struct {
	AmountPaid *decimal.Decimal `json:"amountPaid,omitempty"`
	BalanceDue *decimal.Decimal `json:"balanceDue,omitempty"`
	Status     *billing.Status  `json:"status,omitempty" validate:"omitnil,oneof=due partially_paid paid"`
}

func (h *Handler) updatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ParamID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req updatePaymentStatusRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	bill, err := h.svc.UpdatePaymentStatus(r.Context(), id, billing.Patch{
		AmountPaid: req.AmountPaid,
		BalanceDue: req.BalanceDue,
		Status:     req.Status,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toBillResponse(bill))
}

type recordPaymentRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	Remarks string          `json:"remarks"`
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ParamID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req recordPaymentRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	var resp paymentResultResponse

	paymentID, replayed, err := h.guard.Do(r.Context(), scopedKey("payment:"+id.String(), r), func() (string, error) {
		bill, payment, err := h.svc.RecordPayment(r.Context(), id, req.Amount, req.Remarks)
		if err != nil {
			return "", err
		}

		resp = paymentResultResponse{Bill: toBillResponse(bill), Payment: toPaymentResponse(payment)}

		return payment.ID.String(), nil
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	if !replayed {
		respond.JSON(w, http.StatusCreated, resp)
		return
	}

	resp, err = h.replayPayment(r, id, paymentID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) replayPayment(r *http.Request, billID uuid.UUID, paymentID string) (paymentResultResponse, error) {
	bill, err := h.svc.Get(r.Context(), billID)
	if err != nil {
		return paymentResultResponse{}, err
	}

	payments, err := h.svc.ListPayments(r.Context(), billID)
	if err != nil {
		return paymentResultResponse{}, err
	}

	for _, p := range payments {
		if p.ID.String() == paymentID {
			return paymentResultResponse{Bill: toBillResponse(bill), Payment: toPaymentResponse(p)}, nil
		}
	}

	return paymentResultResponse{}, fmt.Errorf("payment %s: %w", paymentID, errReplayMissing)
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ParamID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	payments, err := h.svc.ListPayments(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		resp = append(resp, toPaymentResponse(p))
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ParamID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	items, err := h.svc.ListItems(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toItemResponseList(items))
}

// invoice serves the bill as a PDF download, or as HTML with ?format=html.
func (h *Handler) invoice(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ParamID(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	if r.URL.Query().Get("format") == "html" {
		html, err := h.invoices.BillHTML(r.Context(), id)
		if err != nil {
			respond.Error(w, err)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(html))

		return
	}

	pdf, filename, err := h.invoices.BillPDF(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.Attachment(w, "application/pdf", filename, pdf)
}

// scopedKey namespaces the client's key so the same value on different
// endpoints never collides. An absent header stays empty.
func scopedKey(scope string, r *http.Request) string {
	key := r.Header.Get(IdempotencyKeyHeader)
	if key == "" {
		return ""
	}

	return scope + ":" + key
}

func dateOnly(t time.Time) string {
	return t.Format(time.DateOnly)
}
