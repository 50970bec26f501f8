package transaction

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/kirana/internal/transaction"
)

func newRouter(t *testing.T) (http.Handler, *transaction.MockRepository) {
	t.Helper()

	repo := transaction.NewMockRepository(gomock.NewController(t))

	r := chi.NewRouter()
	r.Route("/transactions", NewHandler(transaction.NewService(repo)).Routes)

	return r, repo
}

func TestHandler_Create(t *testing.T) {
	type testCase struct {
		name      string
		body      string
		setupMock func(repo *transaction.MockRepository)
		wantCode  int
		wantBody  string
	}

	tests := []testCase{
		{
			name: "Created",
			body: `{"type":"expense","category":"Rent","amount":15000,"date":"2024-03-01","notes":"March"}`,
			setupMock: func(repo *transaction.MockRepository) {
				repo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						if !tx.Date.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
							t.Errorf("unexpected date %s", tx.Date)
						}

						tx.ID = uuid.New()

						return nil
					})
			},
			wantCode: http.StatusCreated,
			wantBody: `"date":"2024-03-01"`,
		},
		{
			name:     "UnknownType",
			body:     `{"type":"refund","category":"Rent","amount":1,"date":"2024-03-01"}`,
			wantCode: http.StatusBadRequest,
			wantBody: "type must be one of: income expense",
		},
		{
			name:     "BadDate",
			body:     `{"type":"income","category":"Sales","amount":1,"date":"01/03/2024"}`,
			wantCode: http.StatusBadRequest,
			wantBody: "date must be a date formatted as 2006-01-02",
		},
		{
			name:     "MissingCategory",
			body:     `{"type":"income","amount":1,"date":"2024-03-01"}`,
			wantCode: http.StatusBadRequest,
			wantBody: "category is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, repo := newRouter(t)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/transactions/", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestHandler_List_Filters(t *testing.T) {
	router, repo := newRouter(t)

	repo.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f transaction.ListFilter) ([]*transaction.Transaction, error) {
			require.NotNil(t, f.Type)
			assert.Equal(t, transaction.TypeIncome, *f.Type)
			require.NotNil(t, f.StartDate)
			assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *f.StartDate)
			assert.Nil(t, f.EndDate)

			return []*transaction.Transaction{{
				ID:       uuid.New(),
				Type:     transaction.TypeIncome,
				Category: "Sales",
				Amount:   1200,
				Date:     time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			}}, nil
		})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/transactions/?type=income&start=2024-03-01", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var got []transactionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "2024-03-04", got[0].Date)
	assert.Equal(t, int64(1200), got[0].Amount)
}

func TestHandler_List_BadDate(t *testing.T) {
	router, _ := newRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/transactions/?end=March", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Update(t *testing.T) {
	router, repo := newRouter(t)
	id := uuid.New()

	repo.EXPECT().UpdateTransaction(gomock.Any(), id, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, p transaction.Patch) (*transaction.Transaction, error) {
			require.NotNil(t, p.Date)
			assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), *p.Date)
			assert.Nil(t, p.Amount)

			return &transaction.Transaction{ID: id, Type: transaction.TypeExpense, Category: "Rent", Date: *p.Date}, nil
		})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/transactions/"+id.String(),
		strings.NewReader(`{"date":"2024-02-29"}`)))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"date":"2024-02-29"`)
}

func TestHandler_GetAndDelete(t *testing.T) {
	router, repo := newRouter(t)
	id := uuid.New()

	repo.EXPECT().GetTransaction(gomock.Any(), id).Return(nil, transaction.ErrNotFound)
	repo.EXPECT().DeleteTransaction(gomock.Any(), id).Return(nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/transactions/"+id.String(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/transactions/"+id.String(), nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
}
