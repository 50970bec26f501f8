package settings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/kirana/internal/settings"
)

func newRouter(t *testing.T) (http.Handler, *settings.MockRepository) {
	t.Helper()

	repo := settings.NewMockRepository(gomock.NewController(t))

	r := chi.NewRouter()
	r.Route("/settings", NewHandler(settings.NewService(repo)).Routes)

	return r, repo
}

func TestHandler_Get(t *testing.T) {
	router, repo := newRouter(t)

	s := settings.Defaults()
	s.ShopName = "Sharma General Store"
	repo.EXPECT().GetSettings(gomock.Any()).Return(&s, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/settings/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"shopName":"Sharma General Store"`)
	assert.Contains(t, w.Body.String(), `"lowStockLimitKg":10`)
	assert.Contains(t, w.Body.String(), `"language":"en"`)
}

func TestHandler_Update(t *testing.T) {
	t.Run("PartialPatch", func(t *testing.T) {
		router, repo := newRouter(t)

		repo.EXPECT().UpdateSettings(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p settings.Patch) (*settings.Settings, error) {
				require.NotNil(t, p.LowStockLimitKg)
				assert.Equal(t, 5, *p.LowStockLimitKg)
				require.NotNil(t, p.DarkMode)
				assert.True(t, *p.DarkMode)
				assert.Nil(t, p.ShopName)

				s := settings.Defaults()
				s.LowStockLimitKg = 5
				s.DarkMode = true

				return &s, nil
			})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/settings/",
			strings.NewReader(`{"lowStockLimitKg":5,"darkMode":true}`)))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"lowStockLimitKg":5`)
		assert.Contains(t, w.Body.String(), `"darkMode":true`)
	})

	t.Run("NegativeLimit", func(t *testing.T) {
		router, _ := newRouter(t)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/settings/",
			strings.NewReader(`{"lowStockLimitPack":-1}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "lowStockLimitPack must be greater than or equal to 0")
	})
}
