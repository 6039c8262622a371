package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nzbill/backend/internal/models"
	"github.com/shopspring/decimal"
)

type BillEditable struct {
	Name               string          `json:"name" example:"ค่าเน็ต" default:""`                                       // Name of the bill
	Amount             decimal.Decimal `json:"amount" example:"500" minimum:"0.01" maximum:"1000000" multipleOf:"0.01"` // Amount due
	DueDate            time.Time       `json:"dueDate" example:"2025-01-05T00:00:00Z"`                                  // Date the bill is due
	Category           models.Category `json:"category" example:"internet" default:"other"`                             // Category of the bill
	IsPaid             bool            `json:"isPaid" example:"false" default:"false"`                                  // Has the bill been paid?
	IsRecurring        bool            `json:"isRecurring" example:"true" default:"false"`                              // Was the bill generated from a template?
	RecurringExpenseID *uuid.UUID      `json:"recurringExpenseId"`                                                      // ID of the template this bill was generated from
	RecurringDay       int             `json:"recurringDay" example:"5" default:"0"`                                    // Due day of the template at generation time
	ReminderDaysBefore *int            `json:"reminderDaysBefore" example:"3" default:"3"`                              // Days before the due date to remind about the bill
	Notes              string          `json:"notes" example:"" default:""`                                             // Notes about the bill
}

// model returns the database resource for the API representation of the editable fields
func (editable BillEditable) model() models.Bill {
	reminder := 3
	if editable.ReminderDaysBefore != nil {
		reminder = *editable.ReminderDaysBefore
	}

	return models.Bill{
		Name:               editable.Name,
		Amount:             editable.Amount,
		DueDate:            editable.DueDate,
		Category:           editable.Category,
		IsPaid:             editable.IsPaid,
		IsRecurring:        editable.IsRecurring,
		RecurringExpenseID: editable.RecurringExpenseID,
		RecurringDay:       editable.RecurringDay,
		ReminderDaysBefore: reminder,
		Notes:              editable.Notes,
	}
}

type BillLinks struct {
	Self             string `json:"self" example:"https://example.com/api/v1/bills/d1b7e95a-9bd4-41cc-8709-2aa68e1351ea"`                                    // The bill itself
	RecurringExpense string `json:"recurringExpense,omitempty" example:"https://example.com/api/v1/recurring-expenses/91cebe4a-88c9-4f49-b6ca-c3b05a3d45fd"` // The template the bill was generated from, if any
}

type Bill struct {
	models.DefaultModel
	BillEditable
	Status string    `json:"status" enums:"paid,unpaid,overdue" example:"unpaid"` // Derived from isPaid and the due date
	Links  BillLinks `json:"links"`
}

// newBill returns the API representation of the resource
func newBill(c *gin.Context, model models.Bill) Bill {
	url := c.GetString(string(models.DBContextURL))

	reminder := model.ReminderDaysBefore
	links := BillLinks{
		Self: fmt.Sprintf("%s/v1/bills/%s", url, model.ID),
	}

	if model.RecurringExpenseID != nil {
		links.RecurringExpense = fmt.Sprintf("%s/v1/recurring-expenses/%s", url, model.RecurringExpenseID)
	}

	return Bill{
		DefaultModel: model.DefaultModel,
		BillEditable: BillEditable{
			Name:               model.Name,
			Amount:             model.Amount,
			DueDate:            model.DueDate,
			Category:           model.Category,
			IsPaid:             model.IsPaid,
			IsRecurring:        model.IsRecurring,
			RecurringExpenseID: model.RecurringExpenseID,
			RecurringDay:       model.RecurringDay,
			ReminderDaysBefore: &reminder,
			Notes:              model.Notes,
		},
		Status: model.Status(time.Now()),
		Links:  links,
	}
}

type BillListResponse struct {
	Data       []Bill      `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type BillCreateResponse struct {
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []BillResponse `json:"data"`                                                          // List of created resources
}

func (t *BillCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, BillResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BillResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Bill   `json:"data"`                                                          // The resource
}

type BillCleanup struct {
	Removed int `json:"removed" example:"2"` // Number of stale bills that were deleted
}

type BillCleanupResponse struct {
	Error *string      `json:"error" example:"the stale parameter must be set to true"` // The error, if any occurred
	Data  *BillCleanup `json:"data"`                                                    // The cleanup result
}

type BillQueryFilter struct {
	Name         string `form:"name" filterField:"false"`         // By name
	Search       string `form:"search" filterField:"false"`       // By string in name or notes
	Category     string `form:"category"`                         // By category
	IsPaid       bool   `form:"isPaid"`                           // Is the bill paid?
	IsRecurring  bool   `form:"isRecurring"`                      // Was the bill generated from a template?
	RecurringDay int    `form:"recurringDay"`                     // By the due day of the originating template
	Month        string `form:"month" filterField:"false"`        // Bills due in this month, YYYY-MM
	Overdue      bool   `form:"overdue" filterField:"false"`      // Only unpaid bills with a due date in the past
	UpcomingDays int    `form:"upcomingDays" filterField:"false"` // Only unpaid bills due within this many days
	Offset       uint   `form:"offset" filterField:"false"`       // The offset of the first bill returned. Defaults to 0.
	Limit        int    `form:"limit" filterField:"false"`        // Maximum number of bills to return. Defaults to 50.
}

func (f BillQueryFilter) model() models.Bill {
	// This does not set the string fields since they are
	// handled in the controller function
	return models.Bill{
		Category:     models.Category(f.Category),
		IsPaid:       f.IsPaid,
		IsRecurring:  f.IsRecurring,
		RecurringDay: f.RecurringDay,
	}
}
