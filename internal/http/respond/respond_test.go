package respond_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/kirana/internal/apperror"
	"github.com/MrJamesThe3rd/kirana/internal/http/respond"
	"github.com/MrJamesThe3rd/kirana/internal/idempotency"
)

type payload struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"oneof=income expense"`
	Date string `json:"date" validate:"datetime=2006-01-02"`
}

func TestDecode(t *testing.T) {
	type testCase struct {
		name    string
		body    string
		wantErr string
	}

	tests := []testCase{
		{
			name: "valid",
			body: `{"name":"Rice","type":"income","date":"2024-03-01"}`,
		},
		{
			name:    "malformed",
			body:    `{"name":`,
			wantErr: "malformed request body",
		},
		{
			name:    "missing name and bad type",
			body:    `{"type":"refund","date":"2024-03-01"}`,
			wantErr: "invalid request: name is required; type must be one of: income expense",
		},
		{
			name:    "bad date",
			body:    `{"name":"Rice","type":"expense","date":"01/03/2024"}`,
			wantErr: "date must be a date formatted as 2006-01-02",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var p payload

			err := respond.Decode(r, &p)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "Rice", p.Name)

				return
			}

			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"not found", fmt.Errorf("bill %w", apperror.ErrNotFound), http.StatusNotFound, `{"error":"bill not found"}`},
		{"validation", apperror.Invalid(errors.New("bad"), "x"), http.StatusBadRequest, `{"error":"bad: x"}`},
		{"in progress", idempotency.ErrInProgress, http.StatusConflict, `{"error":"idempotency key is in progress"}`},
		{"storage", errors.New("connection refused"), http.StatusInternalServerError, `{"error":"Internal Server Error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			respond.Error(w, tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	respond.Success(w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
}

func TestParamID(t *testing.T) {
	id := uuid.New()

	var (
		got    uuid.UUID
		gotErr error
	)

	r := chi.NewRouter()
	r.Get("/items/{id}", func(w http.ResponseWriter, req *http.Request) {
		got, gotErr = respond.ParamID(req, "id")
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/"+id.String(), nil))
	require.NoError(t, gotErr)
	assert.Equal(t, id, got)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/42", nil))
	require.Error(t, gotErr)
	assert.True(t, apperror.IsValidation(gotErr))
	assert.Equal(t, `invalid id: id "42"`, gotErr.Error())
}

func TestDateQuery(t *testing.T) {
	got, err := respond.DateQuery(httptest.NewRequest(http.MethodGet, "/x?start=2024-03-15", nil), "start")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), *got)

	got, err = respond.DateQuery(httptest.NewRequest(http.MethodGet, "/x", nil), "start")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = respond.DateQuery(httptest.NewRequest(http.MethodGet, "/x?start=15/03/2024", nil), "start")
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), `start must be YYYY-MM-DD, got "15/03/2024"`)
}

func TestAttachment(t *testing.T) {
	w := httptest.NewRecorder()
	respond.Attachment(w, "application/pdf", "BILL-20240315-000001.pdf", []byte("%PDF-1.4"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="BILL-20240315-000001.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.4", w.Body.String())
}
