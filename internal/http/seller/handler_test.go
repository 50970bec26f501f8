package seller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/kirana/internal/seller"
)

func newRouter(t *testing.T) (http.Handler, *seller.MockRepository) {
	t.Helper()

	repo := seller.NewMockRepository(gomock.NewController(t))

	r := chi.NewRouter()
	r.Route("/sellers", NewHandler(seller.NewService(repo)).Routes)

	return r, repo
}

func TestHandler(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name      string
		method    string
		path      string
		body      string
		setupMock func(repo *seller.MockRepository)
		wantCode  int
		wantBody  string
	}

	tests := []testCase{
		{
			name:   "Create",
			method: http.MethodPost,
			path:   "/sellers/",
			body:   `{"name":"Gupta Traders","phone":"98100 00000","productType":"Grains"}`,
			setupMock: func(repo *seller.MockRepository) {
				repo.EXPECT().CreateSeller(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, s *seller.Seller) error {
						s.ID = id
						return nil
					})
			},
			wantCode: http.StatusCreated,
			wantBody: `"productType":"Grains"`,
		},
		{
			name:     "CreateMissingPhone",
			method:   http.MethodPost,
			path:     "/sellers/",
			body:     `{"name":"Gupta Traders","productType":"Grains"}`,
			wantCode: http.StatusBadRequest,
			wantBody: "phone is required",
		},
		{
			name:   "List",
			method: http.MethodGet,
			path:   "/sellers/",
			setupMock: func(repo *seller.MockRepository) {
				repo.EXPECT().ListSellers(gomock.Any()).Return([]*seller.Seller{{ID: id, Name: "Gupta Traders"}}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `"name":"Gupta Traders"`,
		},
		{
			name:   "GetNotFound",
			method: http.MethodGet,
			path:   "/sellers/" + id.String(),
			setupMock: func(repo *seller.MockRepository) {
				repo.EXPECT().GetSeller(gomock.Any(), id).Return(nil, seller.ErrNotFound)
			},
			wantCode: http.StatusNotFound,
			wantBody: `"error":"seller not found"`,
		},
		{
			name:   "UpdateNotFound",
			method: http.MethodPatch,
			path:   "/sellers/" + id.String(),
			body:   `{"notes":"closed on Sundays"}`,
			setupMock: func(repo *seller.MockRepository) {
				repo.EXPECT().UpdateSeller(gomock.Any(), id, gomock.Any()).Return(nil, seller.ErrNotFound)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "UpdateBlankName",
			method:   http.MethodPatch,
			path:     "/sellers/" + id.String(),
			body:     `{"name":"  "}`,
			wantCode: http.StatusBadRequest,
			wantBody: "name must not be empty",
		},
		{
			name:   "Delete",
			method: http.MethodDelete,
			path:   "/sellers/" + id.String(),
			setupMock: func(repo *seller.MockRepository) {
				repo.EXPECT().DeleteSeller(gomock.Any(), id).Return(nil)
			},
			wantCode: http.StatusOK,
			wantBody: `{"success":true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, repo := newRouter(t)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}
