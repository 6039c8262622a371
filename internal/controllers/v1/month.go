package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nzbill/backend/internal/httputil"
	"github.com/nzbill/backend/internal/models"
	"github.com/nzbill/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// trendMonths is the number of months included in the spending trend,
// the requested month included.
const trendMonths = 6

func RegisterMonthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsMonths)
	r.GET("", GetMonths)
	r.OPTIONS("/:month", OptionsMonth)
	r.GET("/:month", GetMonth)
}

type CategoryTotal struct {
	Category    models.Category `json:"category" example:"internet"`   // The category key
	DisplayName string          `json:"displayName" example:"ค่าเน็ต"` // Localized category name
	Total       decimal.Decimal `json:"total" example:"500"`           // Billed amount for the category
}

type MonthStats struct {
	Month      types.Month     `json:"month" example:"2025-01"` // The month the statistics are for
	Total      decimal.Decimal `json:"total" example:"1500"`    // Billed amount for the month
	Paid       decimal.Decimal `json:"paid" example:"1000"`     // Amount already paid
	Unpaid     decimal.Decimal `json:"unpaid" example:"500"`    // Amount still open
	Bills      int             `json:"bills" example:"3"`       // Number of bills in the month
	Categories []CategoryTotal `json:"categories"`              // Per-category breakdown in category order
}

type MonthStatsResponse struct {
	Error *string     `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
	Data  *MonthStats `json:"data"`                                                                // Statistics for the month
}

type MonthTotal struct {
	Month types.Month     `json:"month" example:"2025-01"` // The month
	Total decimal.Decimal `json:"total" example:"1500"`    // Billed amount for the month
}

type MonthTrendResponse struct {
	Error *string      `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
	Data  []MonthTotal `json:"data"`                                                                // Monthly totals, oldest first
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Router			/v1/months [options]
func OptionsMonths(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Router			/v1/months/{month} [options]
func OptionsMonth(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Spending trend
// @Description	Returns the billed totals for the last months
// @Tags			Months
// @Produce		json
// @Success		200		{object}	MonthTrendResponse
// @Failure		400		{object}	MonthTrendResponse
// @Failure		500		{object}	MonthTrendResponse
// @Param			until	query		string	false	"Last month of the trend in YYYY-MM format, defaults to the current month"
// @Router			/v1/months [get]
func GetMonths(c *gin.Context) {
	until := types.MonthOf(time.Now())
	if raw, ok := c.GetQuery("until"); ok {
		var err error
		until, err = types.ParseMonth(raw)
		if err != nil {
			e := errMonthInvalid.Error()
			c.JSON(http.StatusBadRequest, MonthTrendResponse{
				Error: &e,
			})
			return
		}
	}

	first := until.AddDate(0, -(trendMonths - 1))

	var bills []models.Bill
	err := models.DB.
		Where("due_date >= date(?) AND due_date < date(?)", time.Time(first), time.Time(until.AddDate(0, 1))).
		Find(&bills).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthTrendResponse{
			Error: &e,
		})
		return
	}

	totals := make(map[types.Month]decimal.Decimal, trendMonths)
	for _, bill := range bills {
		month := types.MonthOf(bill.DueDate)
		totals[month] = totals[month].Add(bill.Amount)
	}

	trend := make([]MonthTotal, 0, trendMonths)
	for month := first; !month.After(until); month = month.AddDate(0, 1) {
		trend = append(trend, MonthTotal{
			Month: month,
			Total: totals[month],
		})
	}

	c.JSON(http.StatusOK, MonthTrendResponse{Data: trend})
}

// @Summary		Month statistics
// @Description	Returns the billed, paid and open amounts for a month with a per-category breakdown
// @Tags			Months
// @Produce		json
// @Success		200		{object}	MonthStatsResponse
// @Failure		400		{object}	MonthStatsResponse
// @Failure		500		{object}	MonthStatsResponse
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/months/{month} [get]
func GetMonth(c *gin.Context) {
	var uri URIMonth
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, MonthStatsResponse{
			Error: &e,
		})
		return
	}

	month, err := types.ParseMonth(uri.Month)
	if err != nil {
		e := errMonthInvalid.Error()
		c.JSON(http.StatusBadRequest, MonthStatsResponse{
			Error: &e,
		})
		return
	}

	var bills []models.Bill
	err = models.DB.
		Where("due_date >= date(?) AND due_date < date(?)", time.Time(month), time.Time(month.AddDate(0, 1))).
		Find(&bills).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthStatsResponse{
			Error: &e,
		})
		return
	}

	stats := MonthStats{
		Month: month,
		Bills: len(bills),
	}

	byCategory := make(map[models.Category]decimal.Decimal)
	for _, bill := range bills {
		stats.Total = stats.Total.Add(bill.Amount)
		if bill.IsPaid {
			stats.Paid = stats.Paid.Add(bill.Amount)
		} else {
			stats.Unpaid = stats.Unpaid.Add(bill.Amount)
		}
		byCategory[bill.Category] = byCategory[bill.Category].Add(bill.Amount)
	}

	tag := requestLanguage(c)
	stats.Categories = make([]CategoryTotal, 0, len(byCategory))

	// Iterate the full category list so the order is stable
	for _, category := range models.Categories() {
		total, ok := byCategory[category]
		if !ok {
			continue
		}

		stats.Categories = append(stats.Categories, CategoryTotal{
			Category:    category,
			DisplayName: category.DisplayName(tag),
			Total:       total,
		})
	}

	c.JSON(http.StatusOK, MonthStatsResponse{Data: &stats})
}

// requestLanguage parses the Accept-Language header, defaulting to Thai.
func requestLanguage(c *gin.Context) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(c.GetHeader("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return language.Thai
	}

	return tags[0]
}
