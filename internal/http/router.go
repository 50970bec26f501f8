package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/kirana/internal/http/backup"
	"github.com/MrJamesThe3rd/kirana/internal/http/billing"
	"github.com/MrJamesThe3rd/kirana/internal/http/customer"
	"github.com/MrJamesThe3rd/kirana/internal/http/inventory"
	"github.com/MrJamesThe3rd/kirana/internal/http/matching"
	"github.com/MrJamesThe3rd/kirana/internal/http/pricing"
	"github.com/MrJamesThe3rd/kirana/internal/http/report"
	"github.com/MrJamesThe3rd/kirana/internal/http/seller"
	"github.com/MrJamesThe3rd/kirana/internal/http/settings"
	"github.com/MrJamesThe3rd/kirana/internal/http/transaction"
)

type Handlers struct {
	Inventory    *inventory.Handler
	Sellers      *seller.Handler
	Transactions *transaction.Handler
	Settings     *settings.Handler
	Customers    *customer.Handler
	Bills        *billing.Handler
	Pricing      *pricing.Handler
	Reports      *report.Handler
	Backup       *backup.Handler
	Aliases      *matching.Handler
}

func New(h Handlers, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", billing.IdempotencyKeyHeader},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.Route("/api", func(r chi.Router) {
		// Multipart upload, so it sits outside the JSON-only group.
		r.Route("/inventory/import", h.Inventory.ImportRoutes)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))

			r.Route("/inventory", h.Inventory.Routes)
			r.Route("/sellers", h.Sellers.Routes)
			r.Route("/transactions", h.Transactions.Routes)
			r.Route("/settings", h.Settings.Routes)
			r.Route("/customers", h.Customers.Routes)
			r.Route("/bills", h.Bills.Routes)
			r.Route("/pricing", h.Pricing.Routes)
			r.Route("/reports", h.Reports.SummaryRoutes)
			r.Route("/dashboard", h.Reports.DashboardRoutes)
			r.Route("/backup", h.Backup.Routes)
			r.Route("/aliases", h.Aliases.Routes)
		})
	})

	return router
}
