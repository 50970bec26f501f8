package report

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/kirana/internal/apperror"
	"github.com/MrJamesThe3rd/kirana/internal/http/respond"
	"github.com/MrJamesThe3rd/kirana/internal/report"
)

var ErrInvalidPeriod = errors.New("invalid period")

type Handler struct {
	svc *report.Service
	now func() time.Time
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) SummaryRoutes(r chi.Router) {
	r.Get("/summary", h.summary)
}

func (h *Handler) DashboardRoutes(r chi.Router) {
	r.Get("/", h.dashboard)
}

// summary takes an explicit start/end, or a named period. Without either it
// covers the current month.
func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
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

	var from, to time.Time

	if start != nil || end != nil {
		if start != nil {
			from = *start
		}

		if end != nil {
			to = *end
		}
	} else {
		period, err := report.ParsePeriod(r.URL.Query().Get("period"))
		if err != nil {
			respond.Error(w, apperror.Invalid(ErrInvalidPeriod, err.Error()))
			return
		}

		from, to = period.Range(h.now())
	}

	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		respond.Error(w, apperror.Invalid(ErrInvalidPeriod, "end is before start"))
		return
	}

	summary, err := h.svc.Summary(r.Context(), from, to)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toSummaryResponse(summary))
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.svc.Dashboard(r.Context(), h.now())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDashboardResponse(dash))
}
