package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/nzbill/backend/internal/models"
	"github.com/shopspring/decimal"
)

type RecurringExpenseEditable struct {
	Name          string          `json:"name" example:"ค่าเน็ต" default:""`                                          // Name of the recurring expense
	Amount        decimal.Decimal `json:"amount" example:"500" minimum:"0.01" maximum:"1000000" multipleOf:"0.01"`    // Amount of the monthly bill
	DueDay        int             `json:"dueDay" example:"5" minimum:"1" maximum:"31"`                                // Nominal day of month the expense is due
	Category      models.Category `json:"category" example:"internet" default:"other"`                                // Category of the expense
	Active        *bool           `json:"active" example:"true" default:"true"`                                       // Inactive templates never generate bills
	IsInstallment bool            `json:"isInstallment" example:"false" default:"false"`                              // Mark the expense as an installment plan
	TotalTerms    int             `json:"totalTerms" example:"10" default:"0"`                                        // Number of installment terms, informational only
	CurrentTerm   int             `json:"currentTerm" example:"3" default:"0"`                                        // Current installment term, informational only
}

// model returns the database resource for the API representation of the editable fields
func (editable RecurringExpenseEditable) model() models.RecurringExpense {
	// New templates are active unless the request says otherwise
	active := true
	if editable.Active != nil {
		active = *editable.Active
	}

	return models.RecurringExpense{
		Name:          editable.Name,
		Amount:        editable.Amount,
		DueDay:        editable.DueDay,
		Category:      editable.Category,
		Active:        active,
		IsInstallment: editable.IsInstallment,
		TotalTerms:    editable.TotalTerms,
		CurrentTerm:   editable.CurrentTerm,
	}
}

type RecurringExpenseLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/recurring-expenses/438cc6c0-9baf-49fd-a75a-d76bd5cab19c"` // The recurring expense itself
}

type RecurringExpense struct {
	models.DefaultModel
	RecurringExpenseEditable
	Links RecurringExpenseLinks `json:"links"`
}

// newRecurringExpense returns the API representation of the resource
func newRecurringExpense(c *gin.Context, model models.RecurringExpense) RecurringExpense {
	url := c.GetString(string(models.DBContextURL))

	active := model.Active
	return RecurringExpense{
		DefaultModel: model.DefaultModel,
		RecurringExpenseEditable: RecurringExpenseEditable{
			Name:          model.Name,
			Amount:        model.Amount,
			DueDay:        model.DueDay,
			Category:      model.Category,
			Active:        &active,
			IsInstallment: model.IsInstallment,
			TotalTerms:    model.TotalTerms,
			CurrentTerm:   model.CurrentTerm,
		},
		Links: RecurringExpenseLinks{
			Self: fmt.Sprintf("%s/v1/recurring-expenses/%s", url, model.ID),
		},
	}
}

type RecurringExpenseListResponse struct {
	Data       []RecurringExpense `json:"data"`                                                          // List of resources
	Error      *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination        `json:"pagination"`                                                    // Pagination information
}

type RecurringExpenseCreateResponse struct {
	Error *string                    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []RecurringExpenseResponse `json:"data"`                                                          // List of created resources
}

func (t *RecurringExpenseCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, RecurringExpenseResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type RecurringExpenseResponse struct {
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *RecurringExpense `json:"data"`                                                          // The resource
}

type RecurringExpenseQueryFilter struct {
	Name          string `form:"name" filterField:"false"`   // By name
	Search        string `form:"search" filterField:"false"` // By string in the name
	Category      string `form:"category"`                   // By category
	Active        bool   `form:"active"`                     // Is the template active?
	IsInstallment bool   `form:"isInstallment"`              // Is the template an installment plan?
	DueDay        int    `form:"dueDay"`                     // By due day
	Offset        uint   `form:"offset" filterField:"false"` // The offset of the first template returned. Defaults to 0.
	Limit         int    `form:"limit" filterField:"false"`  // Maximum number of templates to return. Defaults to 50.
}

func (f RecurringExpenseQueryFilter) model() models.RecurringExpense {
	// This does not set the string fields since they are
	// handled in the controller function
	return models.RecurringExpense{
		Category:      models.Category(f.Category),
		Active:        f.Active,
		IsInstallment: f.IsInstallment,
		DueDay:        f.DueDay,
	}
}
