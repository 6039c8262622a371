package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bill statuses as reported by the API. IsPaid is the only source of
// truth for paid state, the status is derived from it and the due date.
const (
	StatusPaid    = "paid"
	StatusUnpaid  = "unpaid"
	StatusOverdue = "overdue"
)

// Bill is a single billing period obligation.
//
// Amount and category are copied from the template at generation time,
// they are not live-linked. RecurringExpenseID is a plain reference on
// purpose: deleting a template must not touch its generated bills.
type Bill struct {
	DefaultModel
	Name               string          `json:"name" example:"ค่าเน็ต"`
	Amount             decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"500"`
	DueDate            time.Time       `json:"dueDate" example:"2025-01-05T00:00:00Z"`
	Category           Category        `json:"category" example:"internet"`
	IsPaid             bool            `json:"isPaid" example:"false"`
	IsRecurring        bool            `json:"isRecurring" example:"true"`
	RecurringExpenseID *uuid.UUID      `json:"recurringExpenseId"`       // Back-reference to the template, unset for one-off bills
	RecurringDay       int             `json:"recurringDay" example:"5"` // Copy of the template due day at generation time
	ReminderDaysBefore int             `json:"reminderDaysBefore" example:"3"`
	Notes              string          `json:"notes" example:""`
}

// AfterFind updates the due date to use UTC as timezone,
// see DefaultModel.AfterFind.
func (b *Bill) AfterFind(tx *gorm.DB) error {
	err := b.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	b.DueDate = b.DueDate.In(time.UTC)
	return nil
}

// BeforeSave sets the timezone for the due date to UTC.
func (b *Bill) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)

	if b.DueDate.IsZero() {
		b.DueDate = time.Now().In(time.UTC)
	} else {
		b.DueDate = b.DueDate.In(time.UTC)
	}

	return nil
}

func (b *Bill) AfterSave(_ *gorm.DB) error {
	if b.Name == "" {
		return ErrNameMissing
	}

	if !b.Category.Valid() {
		return ErrCategoryInvalid
	}

	return checkAmount(b.Amount)
}

// Status derives the bill status for a reference time. The comparison
// is date-only, a bill due today is not overdue.
func (b Bill) Status(reference time.Time) string {
	if b.IsPaid {
		return StatusPaid
	}

	year, month, day := reference.Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	if b.DueDate.Before(today) {
		return StatusOverdue
	}

	return StatusUnpaid
}
