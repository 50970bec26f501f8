package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kirana/internal/apperror"
	"github.com/MrJamesThe3rd/kirana/internal/inventory"
	"github.com/MrJamesThe3rd/kirana/internal/seller"
	"github.com/MrJamesThe3rd/kirana/internal/settings"
	"github.com/MrJamesThe3rd/kirana/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=backup
type InventoryStore interface {
	List(ctx context.Context) ([]*inventory.Item, error)
	CreateBatch(ctx context.Context, params []inventory.CreateParams) ([]*inventory.Item, error)
}

type SellerStore interface {
	List(ctx context.Context) ([]*seller.Seller, error)
	Create(ctx context.Context, params seller.CreateParams) (*seller.Seller, error)
}

type TransactionStore interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
	Create(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error)
}

type SettingsStore interface {
	Get(ctx context.Context) (*settings.Settings, error)
	Update(ctx context.Context, patch settings.Patch) (*settings.Settings, error)
}

type Service struct {
	inventory    InventoryStore
	sellers      SellerStore
	transactions TransactionStore
	settings     SettingsStore
	now          func() time.Time
}

func NewService(inv InventoryStore, sellers SellerStore, txs TransactionStore, shop SettingsStore) *Service {
	return &Service{inventory: inv, sellers: sellers, transactions: txs, settings: shop, now: time.Now}
}

// Export collects every seller, inventory item, ledger entry and the settings.
func (s *Service) Export(ctx context.Context) (*Snapshot, error) {
	sellers, err := s.sellers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sellers: %w", err)
	}

	items, err := s.inventory.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing inventory: %w", err)
	}

	txs, err := s.transactions.List(ctx, transaction.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	shop, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	snap := &Snapshot{
		Version:    Version,
		ExportDate: s.now().UTC().Truncate(time.Second),
		Data: Data{
			Inventory:    make([]Item, 0, len(items)),
			Transactions: make([]Transaction, 0, len(txs)),
			Sellers:      make([]Seller, 0, len(sellers)),
			Settings:     fromSettings(shop),
		},
	}

	for _, sl := range sellers {
		snap.Data.Sellers = append(snap.Data.Sellers, Seller{
			ID:          sl.ID,
			Name:        sl.Name,
			Phone:       sl.Phone,
			ProductType: sl.ProductType,
			Address:     sl.Address,
			Notes:       sl.Notes,
			CreatedAt:   sl.CreatedAt,
		})
	}

	for _, it := range items {
		snap.Data.Inventory = append(snap.Data.Inventory, Item{
			ID:            it.ID,
			Name:          it.Name,
			Category:      it.Category,
			Quantity:      it.Quantity,
			Unit:          it.Unit,
			PurchasePrice: it.PurchasePrice,
			SellingPrice:  it.SellingPrice,
			SellerID:      it.SellerID,
			LowStockAlert: it.LowStockAlert,
			CreatedAt:     it.CreatedAt,
		})
	}

	for _, tx := range txs {
		snap.Data.Transactions = append(snap.Data.Transactions, Transaction{
			ID:        tx.ID,
			Type:      string(tx.Type),
			Category:  tx.Category,
			Amount:    tx.Amount,
			Date:      tx.Date.Format(time.DateOnly),
			Notes:     tx.Notes,
			CreatedAt: tx.CreatedAt,
		})
	}

	return snap, nil
}

// WriteFile exports a snapshot into dir and returns the file path.
func (s *Service) WriteFile(ctx context.Context, dir string) (string, error) {
	snap, err := s.Export(ctx)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, FileName(snap.ExportDate))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")

	if err := enc.Encode(snap); err != nil {
		return "", fmt.Errorf("writing snapshot: %w", err)
	}

	return path, nil
}

// Import recreates the snapshot's rows with new identities. Sellers go first so
// inventory rows can be pointed at their new ids; a seller id missing from the
// snapshot is cleared.
func (s *Service) Import(ctx context.Context, snap *Snapshot) (*Result, error) {
	if snap.Version != Version {
		return nil, apperror.Invalidf(ErrUnsupportedVersion, "got %q, want %q", snap.Version, Version)
	}

	txParams := make([]transaction.CreateParams, 0, len(snap.Data.Transactions))

	for i, tx := range snap.Data.Transactions {
		date, err := time.Parse(time.DateOnly, tx.Date)
		if err != nil {
			return nil, apperror.Invalidf(transaction.ErrInvalidTransaction, "transaction %d: date %q is not YYYY-MM-DD", i+1, tx.Date)
		}

		txParams = append(txParams, transaction.CreateParams{
			Type:     transaction.Type(tx.Type),
			Category: tx.Category,
			Amount:   tx.Amount,
			Date:     date,
			Notes:    tx.Notes,
		})
	}

	res := &Result{}
	sellerIDs := make(map[uuid.UUID]uuid.UUID, len(snap.Data.Sellers))

	for _, sl := range snap.Data.Sellers {
		created, err := s.sellers.Create(ctx, seller.CreateParams{
			Name:        sl.Name,
			Phone:       sl.Phone,
			ProductType: sl.ProductType,
			Address:     sl.Address,
			Notes:       sl.Notes,
		})
		if err != nil {
			return res, fmt.Errorf("restoring seller %q: %w", sl.Name, err)
		}

		sellerIDs[sl.ID] = created.ID
		res.Sellers++
	}

	itemParams := make([]inventory.CreateParams, 0, len(snap.Data.Inventory))

	for _, it := range snap.Data.Inventory {
		p := inventory.CreateParams{
			Name:          it.Name,
			Category:      it.Category,
			Quantity:      it.Quantity,
			Unit:          it.Unit,
			PurchasePrice: it.PurchasePrice,
			SellingPrice:  it.SellingPrice,
			LowStockAlert: it.LowStockAlert,
		}

		if it.SellerID != nil {
			if newID, ok := sellerIDs[*it.SellerID]; ok {
				p.SellerID = &newID
			} else {
				slog.Warn("dropping unknown seller reference", "item", it.Name, "sellerId", it.SellerID)
			}
		}

		itemParams = append(itemParams, p)
	}

	created, err := s.inventory.CreateBatch(ctx, itemParams)
	if err != nil {
		return res, fmt.Errorf("restoring inventory: %w", err)
	}

	res.Inventory = len(created)

	for _, p := range txParams {
		if _, err := s.transactions.Create(ctx, p); err != nil {
			return res, fmt.Errorf("restoring transaction: %w", err)
		}

		res.Transactions++
	}

	if snap.Data.Settings != nil {
		if _, err := s.settings.Update(ctx, toPatch(snap.Data.Settings)); err != nil {
			return res, fmt.Errorf("restoring settings: %w", err)
		}

		res.Settings = true
	}

	slog.Info("backup imported",
		"sellers", res.Sellers, "inventory", res.Inventory, "transactions", res.Transactions)

	return res, nil
}

func fromSettings(s *settings.Settings) *Settings {
	if s == nil {
		return nil
	}

	return &Settings{
		ShopName:             s.ShopName,
		OwnerName:            s.OwnerName,
		ShopPhone:            s.ShopPhone,
		ShopAddress:          s.ShopAddress,
		Language:             s.Language,
		DarkMode:             s.DarkMode,
		LowStockLimitKg:      s.LowStockLimitKg,
		LowStockLimitLiters:  s.LowStockLimitLiters,
		LowStockLimitPack:    s.LowStockLimitPack,
		LowStockLimitPieces:  s.LowStockLimitPieces,
		LowStockLimitDefault: s.LowStockLimitDefault,
	}
}

func toPatch(s *Settings) settings.Patch {
	p := settings.Patch{
		ShopName:    &s.ShopName,
		OwnerName:   &s.OwnerName,
		ShopPhone:   &s.ShopPhone,
		ShopAddress: &s.ShopAddress,
		DarkMode:    &s.DarkMode,
	}

	if s.Language != "" {
		p.Language = &s.Language
	}

	// Zero limits come from older snapshots without the field; keep the stored value.
	for _, l := range []struct {
		v   *int
		dst **int
	}{
		{&s.LowStockLimitKg, &p.LowStockLimitKg},
		{&s.LowStockLimitLiters, &p.LowStockLimitLiters},
		{&s.LowStockLimitPack, &p.LowStockLimitPack},
		{&s.LowStockLimitPieces, &p.LowStockLimitPieces},
		{&s.LowStockLimitDefault, &p.LowStockLimitDefault},
	} {
		if *l.v > 0 {
			*l.dst = l.v
		}
	}

	return p
}
