package billing_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/kirana/internal/apperror"
	"github.com/MrJamesThe3rd/kirana/internal/billing"
	"github.com/MrJamesThe3rd/kirana/internal/customer"
	"github.com/MrJamesThe3rd/kirana/internal/inventory"
)

// decEq matches a decimal by value rather than by representation.
type decEq decimal.Decimal

func (m decEq) Matches(x any) bool {
	v, ok := x.(decimal.Decimal)
	return ok && v.Equal(decimal.Decimal(m))
}

func (m decEq) String() string {
	return fmt.Sprintf("equals %s", decimal.Decimal(m))
}

type fixture struct {
	repo      *billing.MockRepository
	btx       *billing.MockBillTx
	customers *billing.MockCustomerLister
}

func newService(t *testing.T, policy billing.Policy) (*billing.Service, fixture) {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := fixture{
		repo:      billing.NewMockRepository(ctrl),
		btx:       billing.NewMockBillTx(ctrl),
		customers: billing.NewMockCustomerLister(ctrl),
	}

	return billing.NewService(f.repo, f.customers, policy), f
}

var saleDate = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func stock(qty string, price int64) *inventory.Item {
	return &inventory.Item{
		ID:           uuid.New(),
		Name:         "Basmati Rice",
		Quantity:     d(qty),
		Unit:         "kg",
		SellingPrice: price,
	}
}

func TestService_CreateBill_DecrementsStockAndTotals(t *testing.T) {
	svc, f := newService(t, billing.DefaultPolicy())

	rice := stock("10", 95)
	oil := &inventory.Item{ID: uuid.New(), Name: "Mustard Oil", Quantity: d("4"), Unit: "liters", SellingPrice: 180}

	f.repo.EXPECT().BeginBill(gomock.Any()).Return(f.btx, nil)
	f.btx.EXPECT().LockInventoryItem(gomock.Any(), rice.ID).Return(rice, nil)
	f.btx.EXPECT().SetInventoryQuantity(gomock.Any(), rice.ID, decEq(d("7"))).Return(nil)
	f.btx.EXPECT().LockInventoryItem(gomock.Any(), oil.ID).Return(oil, nil)
	f.btx.EXPECT().SetInventoryQuantity(gomock.Any(), oil.ID, decEq(d("2.5"))).Return(nil)
	f.btx.EXPECT().NextBillSequence(gomock.Any()).Return(int64(42), nil)
	f.btx.EXPECT().CreateBill(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b *billing.Bill) error {
			b.ID = uuid.New()
			return nil
		})
	f.btx.EXPECT().Commit().Return(nil)
	f.btx.EXPECT().Rollback().Return(nil)

	bill, err := svc.CreateBill(context.Background(), billing.CreateParams{
		Items: []billing.ItemParams{
			{InventoryItemID: rice.ID, Quantity: d("3")},
			{InventoryItemID: oil.ID, Quantity: d("1.5")},
		},
		Date: saleDate,
	})
	require.NoError(t, err)

	assert.Equal(t, "BILL-20240315-000042", bill.BillNumber)
	assert.Equal(t, billing.StatusDue, bill.Status)
	require.Len(t, bill.Items, 2)

	assert.True(t, d("285").Equal(bill.Items[0].Total), "3 x 95")
	assert.True(t, d("270").Equal(bill.Items[1].Total), "1.5 x 180")
	assert.Equal(t, "Basmati Rice", bill.Items[0].ItemName)
	assert.Equal(t, "liters", bill.Items[1].Unit)

	sum := bill.Items[0].Total.Add(bill.Items[1].Total)
	assert.True(t, sum.Equal(bill.Subtotal))
	assert.True(t, bill.Subtotal.Equal(bill.TotalAmount))
	assert.True(t, bill.TotalAmount.Equal(bill.BalanceDue))
	assert.True(t, bill.AmountPaid.IsZero())
}

func TestService_CreateBill_ClampsOversell(t *testing.T) {
	svc, f := newService(t, billing.DefaultPolicy())

	rice := stock("2", 95)

	f.repo.EXPECT().BeginBill(gomock.Any()).Return(f.btx, nil)
	f.btx.EXPECT().LockInventoryItem(gomock.Any(), rice.ID).Return(rice, nil)
	f.btx.EXPECT().SetInventoryQuantity(gomock.Any(), rice.ID, decEq(decimal.Zero)).Return(nil)
	f.btx.EXPECT().CreateBill(gomock.Any(), gomock.Any()).Return(nil)
	f.btx.EXPECT().Commit().Return(nil)
	f.btx.EXPECT().Rollback().Return(nil)

	paid := d("475")

	bill, err := svc.CreateBill(context.Background(), billing.CreateParams{
		Items:      []billing.ItemParams{{InventoryItemID: rice.ID, Quantity: d("5")}},
		AmountPaid: &paid,
		Date:       saleDate,
		BillNumber: "BILL-1710500000000",
	})
	require.NoError(t, err)

	assert.Equal(t, "BILL-1710500000000", bill.BillNumber)
	assert.True(t, d("475").Equal(bill.TotalAmount), "billed for the requested quantity")
	assert.True(t, bill.BalanceDue.IsZero())
	assert.Equal(t, billing.StatusPaid, bill.Status)
}

func TestService_CreateBill_RejectsOversellWhenDisallowed(t *testing.T) {
	policy := billing.DefaultPolicy()
	policy.AllowOversell = false

	svc, f := newService(t, policy)
	rice := stock("2", 95)

	f.repo.EXPECT().BeginBill(gomock.Any()).Return(f.btx, nil)
	f.btx.EXPECT().LockInventoryItem(gomock.Any(), rice.ID).Return(rice, nil)
	f.btx.EXPECT().Rollback().Return(nil)

	_, err := svc.CreateBill(context.Background(), billing.CreateParams{
		Items: []billing.ItemParams{{InventoryItemID: rice.ID, Quantity: d("2.5")}},
		Date:  saleDate,
	})
	assert.ErrorIs(t, err, billing.ErrInsufficientStock)
	assert.True(t, apperror.IsValidation(err))
}

func TestService_CreateBill_PartialPayment(t *testing.T) {
	svc, f := newService(t, billing.DefaultPolicy())

	item := stock("50", 10)

	f.repo.EXPECT().BeginBill(gomock.Any()).Return(f.btx, nil)
	f.btx.EXPECT().LockInventoryItem(gomock.Any(), item.ID).Return(item, nil)
	f.btx.EXPECT().SetInventoryQuantity(gomock.Any(), item.ID, decEq(d("40"))).Return(nil)
	f.btx.EXPECT().NextBillSequence(gomock.Any()).Return(int64(1), nil)
	f.btx.EXPECT().CreateBill(gomock.Any(), gomock.Any()).Return(nil)
	f.btx.EXPECT().Commit().Return(nil)
	f.btx.EXPECT().Rollback().Return(nil)

	paid := d("40")

	bill, err := svc.CreateBill(context.Background(), billing.CreateParams{
		Items:      []billing.ItemParams{{InventoryItemID: item.ID, Quantity: d("10")}},
		AmountPaid: &paid,
		Date:       saleDate,
	})
	require.NoError(t, err)

	assert.True(t, d("100").Equal(bill.TotalAmount))
	assert.True(t, d("60").Equal(bill.BalanceDue))
	assert.Equal(t, billing.StatusPartiallyPaid, bill.Status)
}

func TestService_CreateBill_Failures(t *testing.T) {
	customerID := uuid.New()
	missing := uuid.New()
	negative := d("-1")

	type testCase struct {
		name      string
		params    billing.CreateParams
		setupMock func(f fixture)
		wantErr   error
	}

	tests := []testCase{
		{
			name:    "NoItems",
			params:  billing.CreateParams{},
			wantErr: billing.ErrEmptyBill,
		},
		{
			name: "ZeroQuantity",
			params: billing.CreateParams{
				Items: []billing.ItemParams{{InventoryItemID: uuid.New(), Quantity: decimal.Zero}},
			},
			wantErr: billing.ErrInvalidQuantity,
		},
		{
			name: "NegativeAmountPaid",
			params: billing.CreateParams{
				Items:      []billing.ItemParams{{InventoryItemID: uuid.New(), Quantity: d("1")}},
				AmountPaid: &negative,
			},
			wantErr: billing.ErrInvalidAmount,
		},
		{
			name: "UnknownCustomer",
			params: billing.CreateParams{
				CustomerID: &customerID,
				Items:      []billing.ItemParams{{InventoryItemID: uuid.New(), Quantity: d("1")}},
			},
			setupMock: func(f fixture) {
				f.repo.EXPECT().BeginBill(gomock.Any()).Return(f.btx, nil)
				f.btx.EXPECT().CustomerExists(gomock.Any(), customerID).Return(false, nil)
				f.btx.EXPECT().Rollback().Return(nil)
			},
			wantErr: billing.ErrCustomerNotFound,
		},
		{
			name: "UnknownItemRollsBackEarlierDecrements",
			params: billing.CreateParams{
				Items: []billing.ItemParams{
					{InventoryItemID: uuid.Nil, Quantity: d("1")},
					{InventoryItemID: missing, Quantity: d("1")},
				},
			},
			setupMock: func(f fixture) {
				first := stock("5", 10)
				first.ID = uuid.Nil

				f.repo.EXPECT().BeginBill(gomock.Any()).Return(f.btx, nil)
				f.btx.EXPECT().LockInventoryItem(gomock.Any(), uuid.Nil).Return(first, nil)
				f.btx.EXPECT().SetInventoryQuantity(gomock.Any(), uuid.Nil, decEq(d("4"))).Return(nil)
				f.btx.EXPECT().LockInventoryItem(gomock.Any(), missing).Return(nil, billing.ErrItemNotFound)
				f.btx.EXPECT().Rollback().Return(nil)
			},
			wantErr: billing.ErrItemNotFound,
		},
		{
			name: "DuplicateBillNumber",
			params: billing.CreateParams{
				Items:      []billing.ItemParams{{InventoryItemID: uuid.Nil, Quantity: d("1")}},
				BillNumber: "BILL-1",
			},
			setupMock: func(f fixture) {
				item := stock("5", 10)
				item.ID = uuid.Nil

				f.repo.EXPECT().BeginBill(gomock.Any()).Return(f.btx, nil)
				f.btx.EXPECT().LockInventoryItem(gomock.Any(), uuid.Nil).Return(item, nil)
				f.btx.EXPECT().SetInventoryQuantity(gomock.Any(), uuid.Nil, gomock.Any()).Return(nil)
				f.btx.EXPECT().CreateBill(gomock.Any(), gomock.Any()).
					Return(apperror.Invalid(billing.ErrDuplicateBillNumber, "BILL-1"))
				f.btx.EXPECT().Rollback().Return(nil)
			},
			wantErr: billing.ErrDuplicateBillNumber,
		},
		{
			name: "BeginError",
			params: billing.CreateParams{
				Items: []billing.ItemParams{{InventoryItemID: uuid.New(), Quantity: d("1")}},
			},
			setupMock: func(f fixture) {
				f.repo.EXPECT().BeginBill(gomock.Any()).Return(nil, errors.New("connection refused"))
			},
			wantErr: errors.New("begin bill: connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, f := newService(t, billing.DefaultPolicy())
			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			bill, err := svc.CreateBill(context.Background(), tt.params)
			require.Error(t, err)
			assert.Nil(t, bill)

			if apperror.IsValidation(err) || apperror.IsNotFound(err) {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.EqualError(t, err, tt.wantErr.Error())
		})
	}
}

func TestService_RecordPayment_SettlesBill(t *testing.T) {
	svc, f := newService(t, billing.DefaultPolicy())

	id := uuid.New()
	locked := &billing.Bill{
		ID:          id,
		TotalAmount: d("100"),
		Subtotal:    d("100"),
		AmountPaid:  d("40"),
		BalanceDue:  d("60"),
		Status:      billing.StatusPartiallyPaid,
	}

	f.repo.EXPECT().BeginBill(gomock.Any()).Return(f.btx, nil)
	f.btx.EXPECT().LockBill(gomock.Any(), id).Return(locked, nil)
	f.btx.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *billing.Payment) error {
			assert.Equal(t, id, p.BillID)
			assert.True(t, d("60").Equal(p.Amount))
			p.ID = uuid.New()

			return nil
		})
	f.btx.EXPECT().SavePaymentFields(gomock.Any(), locked).Return(nil)
	f.btx.EXPECT().Commit().Return(nil)
	f.btx.EXPECT().Rollback().Return(nil)

	bill, payment, err := svc.RecordPayment(context.Background(), id, d("60"), " cash ")
	require.NoError(t, err)

	assert.Equal(t, billing.StatusPaid, bill.Status)
	assert.True(t, bill.BalanceDue.IsZero())
	assert.True(t, d("100").Equal(bill.AmountPaid))
	assert.Equal(t, "cash", payment.Remarks)
}

func TestService_RecordPayment_Overpayment(t *testing.T) {
	id := uuid.New()
	newBill := func() *billing.Bill {
		return &billing.Bill{ID: id, TotalAmount: d("100"), BalanceDue: d("100"), AmountPaid: decimal.Zero, Status: billing.StatusDue}
	}

	t.Run("AllowedGoesNegative", func(t *testing.T) {
		svc, f := newService(t, billing.DefaultPolicy())

		f.repo.EXPECT().BeginBill(gomock.Any()).Return(f.btx, nil)
		f.btx.EXPECT().LockBill(gomock.Any(), id).Return(newBill(), nil)
		f.btx.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil)
		f.btx.EXPECT().SavePaymentFields(gomock.Any(), gomock.Any()).Return(nil)
		f.btx.EXPECT().Commit().Return(nil)
		f.btx.EXPECT().Rollback().Return(nil)

		bill, _, err := svc.RecordPayment(context.Background(), id, d("120"), "")
		require.NoError(t, err)

		assert.True(t, d("-20").Equal(bill.BalanceDue))
		assert.Equal(t, billing.StatusPaid, bill.Status)
	})

	t.Run("Disallowed", func(t *testing.T) {
		policy := billing.DefaultPolicy()
		policy.AllowOverpayment = false

		svc, f := newService(t, policy)

		f.repo.EXPECT().BeginBill(gomock.Any()).Return(f.btx, nil)
		f.btx.EXPECT().LockBill(gomock.Any(), id).Return(newBill(), nil)
		f.btx.EXPECT().Rollback().Return(nil)

		_, _, err := svc.RecordPayment(context.Background(), id, d("120"), "")
		assert.ErrorIs(t, err, billing.ErrOverpayment)
	})
}

func TestService_RecordPayment_Invalid(t *testing.T) {
	svc, f := newService(t, billing.DefaultPolicy())

	_, _, err := svc.RecordPayment(context.Background(), uuid.New(), decimal.Zero, "")
	assert.ErrorIs(t, err, billing.ErrInvalidPayment)

	id := uuid.New()

	f.repo.EXPECT().BeginBill(gomock.Any()).Return(f.btx, nil)
	f.btx.EXPECT().LockBill(gomock.Any(), id).Return(nil, billing.ErrNotFound)
	f.btx.EXPECT().Rollback().Return(nil)

	_, _, err = svc.RecordPayment(context.Background(), id, d("5"), "")
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_UpdatePaymentStatus(t *testing.T) {
	id := uuid.New()
	dueBill := func() *billing.Bill {
		return &billing.Bill{ID: id, TotalAmount: d("100"), BalanceDue: d("100"), Status: billing.StatusDue}
	}

	type testCase struct {
		name       string
		patch      billing.Patch
		locked     bool
		saved      bool
		wantErr    error
		wantPaid   decimal.Decimal
		wantBal    decimal.Decimal
		wantStatus billing.Status
	}

	tests := []testCase{
		{
			name:       "AmountPaidRecomputes",
			patch:      billing.Patch{AmountPaid: new(d("25"))},
			locked:     true,
			saved:      true,
			wantPaid:   d("25"),
			wantBal:    d("75"),
			wantStatus: billing.StatusPartiallyPaid,
		},
		{
			name:       "ConsistentFieldsAccepted",
			patch:      billing.Patch{AmountPaid: new(d("100")), BalanceDue: new(d("0")), Status: new(billing.StatusPaid)},
			locked:     true,
			saved:      true,
			wantPaid:   d("100"),
			wantBal:    decimal.Zero,
			wantStatus: billing.StatusPaid,
		},
		{
			name:    "StatusPaidOnDueBill",
			patch:   billing.Patch{Status: new(billing.StatusPaid)},
			locked:  true,
			wantErr: billing.ErrInconsistentPayment,
		},
		{
			name:    "BalanceDisagreesWithAmountPaid",
			patch:   billing.Patch{AmountPaid: new(d("40")), BalanceDue: new(d("0"))},
			locked:  true,
			wantErr: billing.ErrInconsistentPayment,
		},
		{
			name:    "UnknownStatus",
			patch:   billing.Patch{Status: new(billing.Status("cancelled"))},
			wantErr: billing.ErrInvalidStatus,
		},
		{
			name:    "NegativeAmountPaid",
			patch:   billing.Patch{AmountPaid: new(d("-1"))},
			wantErr: billing.ErrInvalidAmount,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, f := newService(t, billing.DefaultPolicy())

			if tc.locked {
				f.repo.EXPECT().BeginBill(gomock.Any()).Return(f.btx, nil)
				f.btx.EXPECT().LockBill(gomock.Any(), id).Return(dueBill(), nil)
				f.btx.EXPECT().Rollback().Return(nil)
			}

			if tc.saved {
				f.btx.EXPECT().SavePaymentFields(gomock.Any(), gomock.Any()).Return(nil)
				f.btx.EXPECT().Commit().Return(nil)
			}

			bill, err := svc.UpdatePaymentStatus(context.Background(), id, tc.patch)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.True(t, apperror.IsValidation(err))

				return
			}

			require.NoError(t, err)
			assert.True(t, tc.wantPaid.Equal(bill.AmountPaid))
			assert.True(t, tc.wantBal.Equal(bill.BalanceDue))
			assert.Equal(t, tc.wantStatus, bill.Status)
		})
	}
}

func TestService_Get_WithItems(t *testing.T) {
	svc, f := newService(t, billing.DefaultPolicy())

	id := uuid.New()

	f.repo.EXPECT().GetBill(gomock.Any(), id).Return(&billing.Bill{ID: id}, nil)
	f.repo.EXPECT().ListItems(gomock.Any(), id).Return([]*billing.Item{{BillID: id}, {BillID: id}}, nil)

	bill, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, bill.Items, 2)
}

func TestService_ListCustomerDues(t *testing.T) {
	svc, f := newService(t, billing.DefaultPolicy())

	c := &customer.Customer{ID: uuid.New(), Name: "Ravi"}

	f.repo.EXPECT().ListOutstandingBills(gomock.Any()).Return([]*billing.Bill{
		{CustomerID: &c.ID, BalanceDue: d("30"), Status: billing.StatusDue},
		{CustomerID: &c.ID, BalanceDue: d("20"), Status: billing.StatusPartiallyPaid},
	}, nil)
	f.customers.EXPECT().List(gomock.Any()).Return([]*customer.Customer{c}, nil)

	dues, err := svc.ListCustomerDues(context.Background())
	require.NoError(t, err)
	require.Len(t, dues, 1)
	assert.True(t, d("50").Equal(dues[0].TotalDue))
	assert.Equal(t, 2, dues[0].BillCount)
}

func TestFormatBillNumber(t *testing.T) {
	assert.Equal(t, "INV-20241231-001234", billing.FormatBillNumber("INV", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), 1234))
}
