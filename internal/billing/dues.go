package billing

import (
	"cmp"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/kirana/internal/customer"
)

type CustomerDue struct {
	CustomerID uuid.UUID
	Name       string
	Phone      string
	TotalDue   decimal.Decimal
	BillCount  int
}

// AggregateDues groups due and partially paid bills by customer. Bills without
// a customer, or whose customer is not in the directory, are left out, as is
// any customer with nothing outstanding. The result is ordered by TotalDue
// descending, then by name.
func AggregateDues(bills []*Bill, customers []*customer.Customer) []CustomerDue {
	directory := make(map[uuid.UUID]*customer.Customer, len(customers))
	for _, c := range customers {
		directory[c.ID] = c
	}

	byCustomer := make(map[uuid.UUID]*CustomerDue)

	for _, b := range bills {
		if b.CustomerID == nil || !b.Status.Outstanding() {
			continue
		}

		c, ok := directory[*b.CustomerID]
		if !ok {
			continue
		}

		due, ok := byCustomer[c.ID]
		if !ok {
			due = &CustomerDue{CustomerID: c.ID, Name: c.Name, Phone: c.Phone, TotalDue: decimal.Zero}
			byCustomer[c.ID] = due
		}

		due.TotalDue = due.TotalDue.Add(b.BalanceDue)
		due.BillCount++
	}

	dues := make([]CustomerDue, 0, len(byCustomer))
	for _, d := range byCustomer {
		dues = append(dues, *d)
	}

	slices.SortFunc(dues, func(a, b CustomerDue) int {
		if c := b.TotalDue.Cmp(a.TotalDue); c != 0 {
			return c
		}

		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})

	return dues
}
