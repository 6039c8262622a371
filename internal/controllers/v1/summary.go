package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nzbill/backend/internal/httputil"
	"github.com/nzbill/backend/internal/models"
	"github.com/nzbill/backend/internal/types"
	"github.com/shopspring/decimal"
)

// upcomingWindowDays is the window for bills listed as upcoming in the summary.
const upcomingWindowDays = 7

func RegisterSummaryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSummary)
	r.GET("", GetSummary)
}

type Summary struct {
	TotalCash     decimal.Decimal `json:"totalCash" example:"5000"`   // Cash on hand from the profile
	TotalDebt     decimal.Decimal `json:"totalDebt" example:"2000"`   // Sum of all unpaid bills
	Remaining     decimal.Decimal `json:"remaining" example:"3000"`   // Cash minus debt
	DaysLeft      int             `json:"daysLeft" example:"10"`      // Days until the end of the month, including today
	DailyBudget   decimal.Decimal `json:"dailyBudget" example:"300"`  // Spendable amount per remaining day, never negative
	UpcomingBills []Bill          `json:"upcomingBills"`              // Unpaid bills due within the next days
}

type SummaryResponse struct {
	Error *string  `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
	Data  *Summary `json:"data"`                                                                // The financial summary
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Summary
// @Success		204
// @Router			/v1/summary [options]
func OptionsSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Financial summary
// @Description	Returns the cash balance, open debt and the daily budget for the rest of the month
// @Tags			Summary
// @Produce		json
// @Success		200	{object}	SummaryResponse
// @Failure		500	{object}	SummaryResponse
// @Router			/v1/summary [get]
func GetSummary(c *gin.Context) {
	profile, err := currentProfile()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &e,
		})
		return
	}

	var unpaid []models.Bill
	err = models.DB.Where("is_paid = ?", false).Find(&unpaid).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &e,
		})
		return
	}

	totalDebt := decimal.Zero
	for _, bill := range unpaid {
		totalDebt = totalDebt.Add(bill.Amount)
	}

	now := time.Now()
	remaining := profile.Balance.Sub(totalDebt)
	daysLeft := types.DaysUntilEndOfMonth(now)

	dailyBudget := remaining.DivRound(decimal.NewFromInt(int64(daysLeft)), 2)
	if dailyBudget.IsNegative() {
		dailyBudget = decimal.Zero
	}

	today := startOfDay(now)
	var upcoming []models.Bill
	err = models.DB.
		Where("is_paid = ? AND due_date >= date(?) AND due_date < date(?)",
			false, today, today.AddDate(0, 0, upcomingWindowDays+1)).
		Order("bills.due_date ASC, bills.name ASC").
		Find(&upcoming).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &e,
		})
		return
	}

	upcomingBills := make([]Bill, 0, len(upcoming))
	for _, bill := range upcoming {
		upcomingBills = append(upcomingBills, newBill(c, bill))
	}

	c.JSON(http.StatusOK, SummaryResponse{Data: &Summary{
		TotalCash:     profile.Balance,
		TotalDebt:     totalDebt,
		Remaining:     remaining,
		DaysLeft:      daysLeft,
		DailyBudget:   dailyBudget,
		UpcomingBills: upcomingBills,
	}})
}
