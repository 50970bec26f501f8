package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/kirana/internal/backup"
	"github.com/MrJamesThe3rd/kirana/internal/billing"
	billingStore "github.com/MrJamesThe3rd/kirana/internal/billing/store"
	"github.com/MrJamesThe3rd/kirana/internal/config"
	"github.com/MrJamesThe3rd/kirana/internal/customer"
	customerStore "github.com/MrJamesThe3rd/kirana/internal/customer/store"
	"github.com/MrJamesThe3rd/kirana/internal/database"
	"github.com/MrJamesThe3rd/kirana/internal/database/migrations"
	kiranaHttp "github.com/MrJamesThe3rd/kirana/internal/http"
	backupHandler "github.com/MrJamesThe3rd/kirana/internal/http/backup"
	billingHandler "github.com/MrJamesThe3rd/kirana/internal/http/billing"
	customerHandler "github.com/MrJamesThe3rd/kirana/internal/http/customer"
	inventoryHandler "github.com/MrJamesThe3rd/kirana/internal/http/inventory"
	matchingHandler "github.com/MrJamesThe3rd/kirana/internal/http/matching"
	pricingHandler "github.com/MrJamesThe3rd/kirana/internal/http/pricing"
	reportHandler "github.com/MrJamesThe3rd/kirana/internal/http/report"
	sellerHandler "github.com/MrJamesThe3rd/kirana/internal/http/seller"
	settingsHandler "github.com/MrJamesThe3rd/kirana/internal/http/settings"
	txHandler "github.com/MrJamesThe3rd/kirana/internal/http/transaction"
	"github.com/MrJamesThe3rd/kirana/internal/idempotency"
	"github.com/MrJamesThe3rd/kirana/internal/importer"
	"github.com/MrJamesThe3rd/kirana/internal/inventory"
	inventoryStore "github.com/MrJamesThe3rd/kirana/internal/inventory/store"
	"github.com/MrJamesThe3rd/kirana/internal/invoice"
	"github.com/MrJamesThe3rd/kirana/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/kirana/internal/matching/store"
	"github.com/MrJamesThe3rd/kirana/internal/report"
	"github.com/MrJamesThe3rd/kirana/internal/seller"
	sellerStore "github.com/MrJamesThe3rd/kirana/internal/seller/store"
	"github.com/MrJamesThe3rd/kirana/internal/settings"
	settingsStore "github.com/MrJamesThe3rd/kirana/internal/settings/store"
	"github.com/MrJamesThe3rd/kirana/internal/transaction"
	txStore "github.com/MrJamesThe3rd/kirana/internal/transaction/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return err
	}
	defer db.Close()

	migrator, err := migrations.New(db)
	if err != nil {
		return err
	}

	if err := migrator.Up(); err != nil {
		return err
	}

	idemStore, err := newIdempotencyStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer idemStore.Close()

	engine, err := invoice.NewTemplateEngine()
	if err != nil {
		return err
	}

	archive, err := newArchive(ctx, cfg)
	if err != nil {
		return err
	}

	renderer := invoice.NewChromedpRenderer(cfg.Invoice.ChromeURL, cfg.Invoice.RenderTimeout)
	defer renderer.Close()

	var (
		settingsService    = settings.NewService(settingsStore.New(db))
		inventoryService   = inventory.NewService(inventoryStore.New(db))
		sellerService      = seller.NewService(sellerStore.New(db))
		customerService    = customer.NewService(customerStore.New(db))
		transactionService = transaction.NewService(txStore.New(db))
		matchingService    = matching.NewService(matchingStore.New(db))
		importService      = importer.NewService()
		billingService     = billing.NewService(billingStore.New(db), customerService, billing.Policy{
			AllowOversell:    cfg.Shop.AllowOversell,
			AllowOverpayment: cfg.Shop.AllowOverpayment,
			BillPrefix:       cfg.Shop.BillPrefix,
		})
		invoiceService = invoice.NewService(invoice.Deps{
			Bills:     billingService,
			Customers: customerService,
			Shop:      settingsService,
			Items:     inventoryService,
			Engine:    engine,
			Renderer:  renderer,
			Archive:   archive,
		})
		reportService = report.NewService(transactionService, inventoryService, settingsService, billingService)
		backupService = backup.NewService(inventoryService, sellerService, transactionService, settingsService)
	)

	router := kiranaHttp.New(kiranaHttp.Handlers{
		Inventory:    inventoryHandler.NewHandler(inventoryService, settingsService, importService, matchingService),
		Sellers:      sellerHandler.NewHandler(sellerService),
		Transactions: txHandler.NewHandler(transactionService),
		Settings:     settingsHandler.NewHandler(settingsService),
		Customers:    customerHandler.NewHandler(customerService, billingService),
		Bills:        billingHandler.NewHandler(billingService, invoiceService, idempotency.NewGuard(idemStore, cfg.Redis.KeyTTL)),
		Pricing:      pricingHandler.NewHandler(invoiceService),
		Reports:      reportHandler.NewHandler(reportService),
		Backup:       backupHandler.NewHandler(backupService),
		Aliases:      matchingHandler.NewHandler(matchingService),
	}, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + cfg.Invoice.RenderTimeout,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// newIdempotencyStore uses Redis when REDIS_ADDR is set so keys survive
// restarts and are shared between instances.
func newIdempotencyStore(ctx context.Context, cfg *config.Config) (idempotency.Store, error) {
	if cfg.Redis.Addr == "" {
		slog.Info("using in-memory idempotency store")
		return idempotency.NewMemoryStore(), nil
	}

	store, err := idempotency.NewRedisStore(ctx, idempotency.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("using redis idempotency store", "addr", cfg.Redis.Addr)

	return store, nil
}

func newArchive(ctx context.Context, cfg *config.Config) (invoice.Archive, error) {
	if cfg.Invoice.S3Bucket == "" {
		return invoice.NopArchive{}, nil
	}

	return invoice.NewS3Archive(ctx, invoice.S3Config{
		Bucket:    cfg.Invoice.S3Bucket,
		Endpoint:  cfg.Invoice.S3Endpoint,
		Region:    cfg.Invoice.S3Region,
		AccessKey: cfg.Invoice.S3AccessKey,
		SecretKey: cfg.Invoice.S3SecretKey,
		PathStyle: cfg.Invoice.S3PathStyle,
	})
}
