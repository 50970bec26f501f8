package backup

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/kirana/internal/backup"
	"github.com/MrJamesThe3rd/kirana/internal/http/respond"
)

const maxSnapshotSize = 50 << 20

type Handler struct {
	svc *backup.Service
}

func NewHandler(svc *backup.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.export)
	r.Post("/import", h.importSnapshot)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Export(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	body, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		respond.Error(w, fmt.Errorf("encoding snapshot: %w", err))
		return
	}

	respond.Attachment(w, "application/json", backup.FileName(snap.ExportDate), body)
}

func (h *Handler) importSnapshot(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSnapshotSize)

	var snap backup.Snapshot
	if err := respond.Decode(r, &snap); err != nil {
		respond.Error(w, err)
		return
	}

	result, err := h.svc.Import(r.Context(), &snap)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, result)
}
