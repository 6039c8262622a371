// Package generator implements the recurring bill generation and the
// stale bill selection. Both are pure functions over their inputs so
// that they can be invoked any number of times without side effects.
package generator

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nzbill/backend/internal/models"
	"github.com/nzbill/backend/internal/types"
)

// installmentSuffix is appended to the name of bills generated from
// installment templates, e.g. "ผ่อนคอม (ผ่อนชำระ)".
const installmentSuffix = "ผ่อนชำระ"

// Generate materializes the bills for the month of the reference date.
//
// A template is skipped when it is inactive or when a bill referencing
// it already exists in the reference month, which makes generation
// idempotent: feeding the output back in as existing bills yields no
// further emissions.
//
// The due day is clamped to the last day of the month, so a template
// with due day 31 yields the 28th or 29th in February.
func Generate(templates []models.RecurringExpense, existing []models.Bill, reference time.Time) []models.Bill {
	month := types.MonthOf(reference)

	var bills []models.Bill
	for _, template := range templates {
		if !template.Active {
			continue
		}

		if hasBillInMonth(existing, template.ID, month) {
			continue
		}

		name := template.Name
		if template.IsInstallment {
			name = fmt.Sprintf("%s (%s)", template.Name, installmentSuffix)
		}

		templateID := template.ID
		bills = append(bills, models.Bill{
			Name:               name,
			Amount:             template.Amount,
			DueDate:            month.Day(template.DueDay),
			Category:           template.Category,
			IsPaid:             false,
			IsRecurring:        true,
			RecurringExpenseID: &templateID,
			RecurringDay:       template.DueDay,
			ReminderDaysBefore: 3,
		})
	}

	return bills
}

func hasBillInMonth(bills []models.Bill, templateID uuid.UUID, month types.Month) bool {
	for _, bill := range bills {
		if bill.RecurringExpenseID == nil || *bill.RecurringExpenseID != templateID {
			continue
		}

		if month.Contains(bill.DueDate) {
			return true
		}
	}

	return false
}
