package billing_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/kirana/internal/billing"
	"github.com/MrJamesThe3rd/kirana/internal/customer"
)

func TestAggregateDues(t *testing.T) {
	ravi := &customer.Customer{ID: uuid.New(), Name: "Ravi", Phone: "111"}
	meena := &customer.Customer{ID: uuid.New(), Name: "Meena", Phone: "222"}
	anil := &customer.Customer{ID: uuid.New(), Name: "Anil"}
	paidUp := &customer.Customer{ID: uuid.New(), Name: "Paid Up"}
	customers := []*customer.Customer{ravi, meena, anil, paidUp}

	bill := func(c *customer.Customer, balance string, status billing.Status) *billing.Bill {
		b := &billing.Bill{ID: uuid.New(), BalanceDue: d(balance), Status: status}
		if c != nil {
			b.CustomerID = &c.ID
		}

		return b
	}

	stranger := uuid.New()

	bills := []*billing.Bill{
		bill(ravi, "100", billing.StatusDue),
		bill(ravi, "50.50", billing.StatusPartiallyPaid),
		bill(meena, "300", billing.StatusDue),
		bill(anil, "150.50", billing.StatusDue),
		bill(paidUp, "0", billing.StatusPaid),
		bill(paidUp, "-10", billing.StatusPaid),
		bill(ravi, "0", billing.StatusPaid),
		bill(nil, "999", billing.StatusDue),
		{ID: uuid.New(), CustomerID: &stranger, BalanceDue: d("10"), Status: billing.StatusDue},
	}

	dues := billing.AggregateDues(bills, customers)
	require.Len(t, dues, 3)

	assert.Equal(t, "Meena", dues[0].Name)
	assert.True(t, d("300").Equal(dues[0].TotalDue))
	assert.Equal(t, 1, dues[0].BillCount)

	// Ravi and Anil tie at 150.50; ties are ordered by name.
	assert.Equal(t, "Anil", dues[1].Name)
	assert.Equal(t, "Ravi", dues[2].Name)
	assert.True(t, d("150.5").Equal(dues[2].TotalDue))
	assert.Equal(t, 2, dues[2].BillCount)
	assert.Equal(t, "111", dues[2].Phone)

	for _, due := range dues {
		assert.NotEqual(t, paidUp.ID, due.CustomerID)
	}
}

func TestAggregateDues_Empty(t *testing.T) {
	assert.Empty(t, billing.AggregateDues(nil, nil))
}
