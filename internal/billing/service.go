package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/kirana/internal/apperror"
	"github.com/MrJamesThe3rd/kirana/internal/customer"
	"github.com/MrJamesThe3rd/kirana/internal/inventory"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=billing
type Repository interface {
	ListBills(ctx context.Context) ([]*Bill, error)
	GetBill(ctx context.Context, id uuid.UUID) (*Bill, error)
	ListItems(ctx context.Context, billID uuid.UUID) ([]*Item, error)
	ListPayments(ctx context.Context, billID uuid.UUID) ([]*Payment, error)
	ListBillsByCustomer(ctx context.Context, customerID uuid.UUID) ([]*Bill, error)
	ListOutstandingBills(ctx context.Context) ([]*Bill, error)

	BeginBill(ctx context.Context) (BillTx, error)
}

// BillTx is one SQL transaction. Stock and bill rows read through it are
// locked until Commit or Rollback.
type BillTx interface {
	CustomerExists(ctx context.Context, id uuid.UUID) (bool, error)
	LockInventoryItem(ctx context.Context, id uuid.UUID) (*inventory.Item, error)
	SetInventoryQuantity(ctx context.Context, id uuid.UUID, quantity decimal.Decimal) error
	NextBillSequence(ctx context.Context) (int64, error)
	CreateBill(ctx context.Context, bill *Bill) error

	LockBill(ctx context.Context, id uuid.UUID) (*Bill, error)
	CreatePayment(ctx context.Context, p *Payment) error
	SavePaymentFields(ctx context.Context, bill *Bill) error

	Commit() error
	Rollback() error
}

// CustomerLister supplies names and phones for the dues report.
type CustomerLister interface {
	List(ctx context.Context) ([]*customer.Customer, error)
}

// Policy holds the shop's sale and payment rules.
type Policy struct {
	// AllowOversell clamps stock at zero instead of rejecting the sale.
	AllowOversell bool
	// AllowOverpayment accepts payments larger than the balance due.
	AllowOverpayment bool
	BillPrefix       string
}

func DefaultPolicy() Policy {
	return Policy{AllowOversell: true, AllowOverpayment: true, BillPrefix: "BILL"}
}

type Service struct {
	repo      Repository
	customers CustomerLister
	policy    Policy
	now       func() time.Time
}

func NewService(repo Repository, customers CustomerLister, policy Policy) *Service {
	if policy.BillPrefix == "" {
		policy.BillPrefix = "BILL"
	}

	return &Service{repo: repo, customers: customers, policy: policy, now: time.Now}
}

type ItemParams struct {
	InventoryItemID uuid.UUID
	Quantity        decimal.Decimal
}

type CreateParams struct {
	CustomerID *uuid.UUID
	Items      []ItemParams
	AmountPaid *decimal.Decimal
	Date       time.Time
	BillNumber string
}

// CreateBill decrements stock, snapshots the lines and stores the bill in a
// single transaction. Nothing is written when any step fails.
func (s *Service) CreateBill(ctx context.Context, params CreateParams) (*Bill, error) {
	if err := validateCreate(params); err != nil {
		return nil, err
	}

	btx, err := s.repo.BeginBill(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin bill: %w", err)
	}
	defer btx.Rollback()

	if params.CustomerID != nil {
		ok, err := btx.CustomerExists(ctx, *params.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("checking customer: %w", err)
		}

		if !ok {
			return nil, ErrCustomerNotFound
		}
	}

	items := make([]*Item, 0, len(params.Items))
	subtotal := decimal.Zero

	for _, p := range params.Items {
		stock, err := btx.LockInventoryItem(ctx, p.InventoryItemID)
		if err != nil {
			return nil, err
		}

		if !s.policy.AllowOversell && p.Quantity.GreaterThan(stock.Quantity) {
			return nil, apperror.Invalidf(ErrInsufficientStock, "%s: requested %s %s, available %s",
				stock.Name, p.Quantity, stock.Unit, stock.Quantity)
		}

		remaining := decimal.Max(decimal.Zero, stock.Quantity.Sub(p.Quantity))
		if err := btx.SetInventoryQuantity(ctx, stock.ID, remaining); err != nil {
			return nil, fmt.Errorf("updating stock: %w", err)
		}

		rate := decimal.NewFromInt(stock.SellingPrice)
		line := &Item{
			InventoryItemID: stock.ID,
			ItemName:        stock.Name,
			Quantity:        p.Quantity,
			Unit:            stock.Unit,
			Rate:            rate,
			Total:           LineTotal(p.Quantity, rate),
		}

		items = append(items, line)
		subtotal = subtotal.Add(line.Total)
	}

	date := params.Date
	if date.IsZero() {
		date = s.now()
	}

	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	number := strings.TrimSpace(params.BillNumber)
	if number == "" {
		seq, err := btx.NextBillSequence(ctx)
		if err != nil {
			return nil, fmt.Errorf("allocating bill number: %w", err)
		}

		number = FormatBillNumber(s.policy.BillPrefix, date, seq)
	}

	amountPaid := decimal.Zero
	if params.AmountPaid != nil {
		amountPaid = *params.AmountPaid
	}

	bill := &Bill{
		BillNumber:  number,
		CustomerID:  params.CustomerID,
		Subtotal:    subtotal,
		TotalAmount: subtotal,
		Date:        date,
		Items:       items,
	}
	bill.applyAmountPaid(amountPaid)

	if err := btx.CreateBill(ctx, bill); err != nil {
		return nil, err
	}

	if err := btx.Commit(); err != nil {
		return nil, fmt.Errorf("commit bill: %w", err)
	}

	return bill, nil
}

// FormatBillNumber renders PREFIX-YYYYMMDD-NNNNNN.
func FormatBillNumber(prefix string, date time.Time, seq int64) string {
	return fmt.Sprintf("%s-%s-%06d", prefix, date.Format("20060102"), seq)
}

func validateCreate(params CreateParams) error {
	if len(params.Items) == 0 {
		return apperror.Invalid(ErrEmptyBill, "")
	}

	for i, it := range params.Items {
		if !it.Quantity.IsPositive() {
			return apperror.Invalidf(ErrInvalidQuantity, "item %d has quantity %s", i+1, it.Quantity)
		}
	}

	if params.AmountPaid != nil && params.AmountPaid.IsNegative() {
		return apperror.Invalid(ErrInvalidAmount, "amountPaid")
	}

	return nil
}

// RecordPayment appends a payment and recomputes the bill's balance and status
// while holding the bill row lock.
func (s *Service) RecordPayment(ctx context.Context, billID uuid.UUID, amount decimal.Decimal, remarks string) (*Bill, *Payment, error) {
	if !amount.IsPositive() {
		return nil, nil, apperror.Invalidf(ErrInvalidPayment, "got %s", amount)
	}

	btx, err := s.repo.BeginBill(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin payment: %w", err)
	}
	defer btx.Rollback()

	bill, err := btx.LockBill(ctx, billID)
	if err != nil {
		return nil, nil, err
	}

	if !s.policy.AllowOverpayment && amount.GreaterThan(bill.BalanceDue) {
		return nil, nil, apperror.Invalidf(ErrOverpayment, "amount %s, balance due %s", amount, bill.BalanceDue)
	}

	payment := &Payment{
		BillID:  bill.ID,
		Amount:  amount,
		Remarks: strings.TrimSpace(remarks),
	}
	if err := btx.CreatePayment(ctx, payment); err != nil {
		return nil, nil, fmt.Errorf("creating payment: %w", err)
	}

	bill.applyAmountPaid(bill.AmountPaid.Add(amount))

	if err := btx.SavePaymentFields(ctx, bill); err != nil {
		return nil, nil, fmt.Errorf("updating bill: %w", err)
	}

	if err := btx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit payment: %w", err)
	}

	return bill, payment, nil
}

// Patch edits payment-status fields only.
type Patch struct {
	AmountPaid *decimal.Decimal
	BalanceDue *decimal.Decimal
	Status     *Status
}

// UpdatePaymentStatus applies a manual correction to AmountPaid. BalanceDue and
// Status are always derived from it; a supplied value that disagrees is rejected.
func (s *Service) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, patch Patch) (*Bill, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, apperror.Invalidf(ErrInvalidStatus, "%q", *patch.Status)
	}

	if patch.AmountPaid != nil && patch.AmountPaid.IsNegative() {
		return nil, apperror.Invalid(ErrInvalidAmount, "amountPaid")
	}

	btx, err := s.repo.BeginBill(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin bill update: %w", err)
	}
	defer btx.Rollback()

	bill, err := btx.LockBill(ctx, id)
	if err != nil {
		return nil, err
	}

	amountPaid := bill.AmountPaid
	if patch.AmountPaid != nil {
		amountPaid = *patch.AmountPaid
	}

	bill.applyAmountPaid(amountPaid)

	if patch.BalanceDue != nil && !patch.BalanceDue.Equal(bill.BalanceDue) {
		return nil, apperror.Invalidf(ErrInconsistentPayment,
			"balanceDue %s, expected %s", patch.BalanceDue.StringFixed(2), bill.BalanceDue.StringFixed(2))
	}

	if patch.Status != nil && *patch.Status != bill.Status {
		return nil, apperror.Invalidf(ErrInconsistentPayment, "status %q, expected %q", *patch.Status, bill.Status)
	}

	if err := btx.SavePaymentFields(ctx, bill); err != nil {
		return nil, fmt.Errorf("updating bill: %w", err)
	}

	if err := btx.Commit(); err != nil {
		return nil, fmt.Errorf("commit bill update: %w", err)
	}

	return bill, nil
}

func (s *Service) List(ctx context.Context) ([]*Bill, error) {
	return s.repo.ListBills(ctx)
}

// Get returns the bill with its lines.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Bill, error) {
	bill, err := s.repo.GetBill(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}

	bill.Items = items

	return bill, nil
}

func (s *Service) ListItems(ctx context.Context, billID uuid.UUID) ([]*Item, error) {
	return s.repo.ListItems(ctx, billID)
}

func (s *Service) ListPayments(ctx context.Context, billID uuid.UUID) ([]*Payment, error) {
	return s.repo.ListPayments(ctx, billID)
}

func (s *Service) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*Bill, error) {
	return s.repo.ListBillsByCustomer(ctx, customerID)
}

// ListCustomerDues totals outstanding balances per customer, largest first.
func (s *Service) ListCustomerDues(ctx context.Context) ([]CustomerDue, error) {
	bills, err := s.repo.ListOutstandingBills(ctx)
	if err != nil {
		return nil, err
	}

	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, err
	}

	return AggregateDues(bills, customers), nil
}

// TotalOutstanding sums the balance of every unpaid bill, attributed or not.
func (s *Service) TotalOutstanding(ctx context.Context) (decimal.Decimal, error) {
	bills, err := s.repo.ListOutstandingBills(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, b := range bills {
		total = total.Add(b.BalanceDue)
	}

	return total, nil
}
