package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecurringExpense is the template from which monthly bills are
// materialized. Deleting or editing a template never changes bills
// that have already been generated from it.
type RecurringExpense struct {
	DefaultModel
	Name          string          `json:"name" example:"ค่าเน็ต"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"500"`
	DueDay        int             `json:"dueDay" example:"5" minimum:"1" maximum:"31"` // Nominal day of month the expense is due
	Category      Category        `json:"category" example:"internet"`
	Active        bool            `json:"active" example:"true"`         // Inactive templates never generate bills
	IsInstallment bool            `json:"isInstallment" example:"false"` // Alters the display name of generated bills
	TotalTerms    int             `json:"totalTerms" example:"10"`       // Informational only, generation does not stop after the last term
	CurrentTerm   int             `json:"currentTerm" example:"3"`
}

func (r *RecurringExpense) BeforeSave(_ *gorm.DB) error {
	r.Name = strings.TrimSpace(r.Name)
	return nil
}

func (r *RecurringExpense) AfterSave(_ *gorm.DB) error {
	if r.Name == "" {
		return ErrNameMissing
	}

	if r.DueDay < 1 || r.DueDay > 31 {
		return ErrDueDayOutOfRange
	}

	if !r.Category.Valid() {
		return ErrCategoryInvalid
	}

	return checkAmount(r.Amount)
}

// checkAmount validates a monetary amount: positive, at most two
// decimal places, not above the fixed application ceiling.
func checkAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if amount.GreaterThan(amountCeiling) {
		return ErrAmountTooLarge
	}

	if !amount.Equal(amount.Round(2)) {
		return ErrAmountTooPrecise
	}

	return nil
}

var amountCeiling = decimal.NewFromInt(1_000_000)
