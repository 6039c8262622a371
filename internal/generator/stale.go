package generator

import (
	"time"

	"github.com/nzbill/backend/internal/models"
	"github.com/nzbill/backend/internal/types"
)

// StalePaidBills selects the paid bills whose due date falls in a month
// strictly before the month of the reference date. Bills due in the
// reference month and unpaid bills are never selected, no matter how
// old they are.
//
// This is a pure filter, deleting the selected bills is up to the
// caller.
func StalePaidBills(bills []models.Bill, reference time.Time) []models.Bill {
	month := types.MonthOf(reference)

	var stale []models.Bill
	for _, bill := range bills {
		if !bill.IsPaid {
			continue
		}

		if types.MonthOf(bill.DueDate).Before(month) {
			stale = append(stale, bill)
		}
	}

	return stale
}
