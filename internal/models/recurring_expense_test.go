package models_test

import (
	"testing"

	"github.com/nzbill/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestRecurringExpenseTrimWhitespace() {
	expense := suite.createTestRecurringExpense(models.RecurringExpense{Name: " ค่าไฟ "})
	assert.Equal(suite.T(), "ค่าไฟ", expense.Name)
}

func (suite *TestSuiteStandard) TestRecurringExpenseValidation() {
	valid := models.RecurringExpense{
		Name:     "ค่าเน็ต",
		Amount:   decimal.NewFromInt(500),
		DueDay:   5,
		Category: models.CategoryInternet,
	}

	tests := []struct {
		name   string
		modify func(*models.RecurringExpense)
		err    error
	}{
		{"Empty name", func(r *models.RecurringExpense) { r.Name = "" }, models.ErrNameMissing},
		{"Due day zero", func(r *models.RecurringExpense) { r.DueDay = 0 }, models.ErrDueDayOutOfRange},
		{"Due day 32", func(r *models.RecurringExpense) { r.DueDay = 32 }, models.ErrDueDayOutOfRange},
		{"Negative due day", func(r *models.RecurringExpense) { r.DueDay = -1 }, models.ErrDueDayOutOfRange},
		{"Invalid category", func(r *models.RecurringExpense) { r.Category = "snacks" }, models.ErrCategoryInvalid},
		{"Zero amount", func(r *models.RecurringExpense) { r.Amount = decimal.Zero }, models.ErrAmountNotPositive},
		{"Amount above ceiling", func(r *models.RecurringExpense) { r.Amount = decimal.NewFromFloat(1_000_000.01) }, models.ErrAmountTooLarge},
		{"Three decimal places", func(r *models.RecurringExpense) { r.Amount = decimal.NewFromFloat(9.999) }, models.ErrAmountTooPrecise},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			expense := valid
			tt.modify(&expense)

			err := models.DB.Create(&expense).Error
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestRecurringExpenseAmountBoundaries() {
	// Exactly the ceiling and exactly two decimal places are valid
	_ = suite.createTestRecurringExpense(models.RecurringExpense{Name: "เพดาน", Amount: decimal.NewFromInt(1_000_000)})
	_ = suite.createTestRecurringExpense(models.RecurringExpense{Name: "สองตำแหน่ง", Amount: decimal.NewFromFloat(499.99)})
}
