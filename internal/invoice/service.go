package invoice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kirana/internal/apperror"
	"github.com/MrJamesThe3rd/kirana/internal/billing"
	"github.com/MrJamesThe3rd/kirana/internal/customer"
	"github.com/MrJamesThe3rd/kirana/internal/inventory"
	"github.com/MrJamesThe3rd/kirana/internal/settings"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=invoice
type BillGetter interface {
	Get(ctx context.Context, id uuid.UUID) (*billing.Bill, error)
}

type CustomerGetter interface {
	Get(ctx context.Context, id uuid.UUID) (*customer.Customer, error)
}

type SettingsGetter interface {
	Get(ctx context.Context) (*settings.Settings, error)
}

type ItemLister interface {
	List(ctx context.Context) ([]*inventory.Item, error)
}

// Renderer turns an HTML document into PDF bytes.
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// Archive keeps a copy of every generated invoice.
type Archive interface {
	Put(ctx context.Context, key string, pdf []byte) error
}

type Service struct {
	bills     BillGetter
	customers CustomerGetter
	shop      SettingsGetter
	items     ItemLister
	engine    *TemplateEngine
	renderer  Renderer
	archive   Archive
	now       func() time.Time
}

type Deps struct {
	Bills     BillGetter
	Customers CustomerGetter
	Shop      SettingsGetter
	Items     ItemLister
	Engine    *TemplateEngine
	Renderer  Renderer
	Archive   Archive
}

func NewService(d Deps) *Service {
	archive := d.Archive
	if archive == nil {
		archive = NopArchive{}
	}

	return &Service{
		bills:     d.Bills,
		customers: d.Customers,
		shop:      d.Shop,
		items:     d.Items,
		engine:    d.Engine,
		renderer:  d.Renderer,
		archive:   archive,
		now:       time.Now,
	}
}

func (s *Service) document(ctx context.Context, billID uuid.UUID) (Document, error) {
	bill, err := s.bills.Get(ctx, billID)
	if err != nil {
		return Document{}, err
	}

	shop, err := s.shop.Get(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("loading shop settings: %w", err)
	}

	doc := Document{Shop: shop, Bill: bill}

	if bill.CustomerID != nil {
		c, err := s.customers.Get(ctx, *bill.CustomerID)

		switch {
		case err == nil:
			doc.Customer = c
		case errors.Is(err, apperror.ErrNotFound):
			// The customer was removed after the sale; print the bill without one.
		default:
			return Document{}, fmt.Errorf("loading customer: %w", err)
		}
	}

	return doc, nil
}

// BillHTML renders the invoice for a bill as an HTML page.
func (s *Service) BillHTML(ctx context.Context, billID uuid.UUID) (string, error) {
	doc, err := s.document(ctx, billID)
	if err != nil {
		return "", err
	}

	return s.engine.Bill(doc)
}

// BillPDF renders the invoice as PDF and archives a copy. It returns the PDF
// and a download file name.
func (s *Service) BillPDF(ctx context.Context, billID uuid.UUID) ([]byte, string, error) {
	doc, err := s.document(ctx, billID)
	if err != nil {
		return nil, "", err
	}

	html, err := s.engine.Bill(doc)
	if err != nil {
		return nil, "", err
	}

	pdf, err := s.renderer.Render(ctx, html)
	if err != nil {
		return nil, "", err
	}

	key := ArchiveKey(doc.Bill.BillNumber)
	if err := s.archive.Put(ctx, key, pdf); err != nil {
		slog.Warn("failed to archive invoice", "bill", doc.Bill.BillNumber, "error", err)
	}

	return pdf, doc.Bill.BillNumber + ".pdf", nil
}

// PriceList returns unique items by name matching query.
func (s *Service) PriceList(ctx context.Context, query string) ([]PriceEntry, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}

	return UniquePrices(items, query), nil
}

// PriceListPDF renders the filtered price list as PDF.
func (s *Service) PriceListPDF(ctx context.Context, query string) ([]byte, string, error) {
	entries, err := s.PriceList(ctx, query)
	if err != nil {
		return nil, "", err
	}

	shop, err := s.shop.Get(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("loading shop settings: %w", err)
	}

	now := s.now()

	html, err := s.engine.PriceList(PriceList{ShopName: shop.ShopName, GeneratedOn: now, Entries: entries})
	if err != nil {
		return nil, "", err
	}

	pdf, err := s.renderer.Render(ctx, html)
	if err != nil {
		return nil, "", err
	}

	return pdf, "pricing-list-" + now.Format(time.DateOnly) + ".pdf", nil
}
