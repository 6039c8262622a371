package v1

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nzbill/backend/internal/generator"
	"github.com/nzbill/backend/internal/httputil"
	"github.com/nzbill/backend/internal/models"
	"github.com/nzbill/backend/internal/types"
)

func RegisterBillRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsBills)
		r.GET("", GetBills)
		r.POST("", CreateBills)
		r.DELETE("", DeleteStaleBills)
	}
	{
		r.OPTIONS("/:id", OptionsBillDetail)
		r.GET("/:id", GetBill)
		r.PATCH("/:id", UpdateBill)
		r.DELETE("/:id", DeleteBill)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Bills
// @Success		204
// @Router			/v1/bills [options]
func OptionsBills(c *gin.Context) {
	httputil.OptionsGetPostDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Bills
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/bills/{id} [options]
func OptionsBillDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Bill{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create bills
// @Description	Creates new bills
// @Tags			Bills
// @Produce		json
// @Success		201		{object}	BillCreateResponse
// @Failure		400		{object}	BillCreateResponse
// @Failure		500		{object}	BillCreateResponse
// @Param			bills	body		[]BillEditable	true	"Bills"
// @Router			/v1/bills [post]
func CreateBills(c *gin.Context) {
	var editables []BillEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := BillCreateResponse{}

	for _, editable := range editables {
		bill := editable.model()
		err = models.DB.Create(&bill).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		// Transform for the API and append
		apiResource := newBill(c, bill)
		r.Data = append(r.Data, BillResponse{Data: &apiResource})
	}

	c.JSON(status, r)
}

// @Summary		Get bills
// @Description	Returns a list of bills
// @Tags			Bills
// @Produce		json
// @Success		200	{object}	BillListResponse
// @Failure		400	{object}	BillListResponse
// @Failure		500	{object}	BillListResponse
// @Router			/v1/bills [get]
// @Param			name			query	string	false	"Filter by name"
// @Param			search			query	string	false	"Search for this text in name and notes"
// @Param			category		query	string	false	"Filter by category"
// @Param			isPaid			query	bool	false	"Is the bill paid?"
// @Param			isRecurring		query	bool	false	"Was the bill generated from a template?"
// @Param			recurringDay	query	int		false	"Filter by the due day of the originating template"
// @Param			month			query	string	false	"Bills due in this month, YYYY-MM"
// @Param			overdue			query	bool	false	"Only unpaid bills with a due date in the past"
// @Param			upcomingDays	query	int		false	"Only unpaid bills due within this many days"
// @Param			offset			query	uint	false	"The offset of the first bill returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of bills to return. Defaults to 50."
func GetBills(c *gin.Context) {
	var filter BillQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, BillListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	where := filter.model()

	q := models.DB.
		Order("bills.due_date ASC, bills.name ASC").
		Where(&where, queryFields...)

	if filter.Name != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Name))
	} else if slices.Contains(setFields, "Name") {
		q = q.Where("name = ''")
	}

	if filter.Search != "" {
		q = q.Where(
			models.DB.Where("notes LIKE ?", fmt.Sprintf("%%%s%%", filter.Search)).Or(
				models.DB.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Search)),
			),
		)
	}

	if filter.Month != "" {
		month, err := types.ParseMonth(filter.Month)
		if err != nil {
			s := errMonthInvalid.Error()
			c.JSON(http.StatusBadRequest, BillListResponse{
				Error: &s,
			})
			return
		}

		q = q.Where("bills.due_date >= date(?)", month).Where("bills.due_date < date(?)", month.AddDate(0, 1))
	}

	if filter.Overdue {
		q = q.Where("bills.is_paid = ?", false).Where("bills.due_date < date(?)", startOfDay(time.Now()))
	}

	if filter.UpcomingDays > 0 {
		today := startOfDay(time.Now())
		q = q.Where("bills.is_paid = ?", false).
			Where("bills.due_date >= date(?)", today).
			Where("bills.due_date < date(?)", today.AddDate(0, 0, filter.UpcomingDays+1))
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 bills and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var bills []models.Bill
	err := q.Find(&bills).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BillListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillListResponse{
			Error: &e,
		})
		return
	}

	// Transform resources to their API representation
	data := make([]Bill, 0, len(bills))
	for _, bill := range bills {
		data = append(data, newBill(c, bill))
	}

	c.JSON(http.StatusOK, BillListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get bill
// @Description	Returns a specific bill
// @Tags			Bills
// @Produce		json
// @Success		200	{object}	BillResponse
// @Failure		400	{object}	BillResponse
// @Failure		404	{object}	BillResponse
// @Failure		500	{object}	BillResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/bills/{id} [get]
func GetBill(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillResponse{
			Error: &e,
		})
		return
	}

	var bill models.Bill
	err = models.DB.First(&bill, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillResponse{
			Error: &e,
		})
		return
	}

	apiResource := newBill(c, bill)
	c.JSON(http.StatusOK, BillResponse{Data: &apiResource})
}

// @Summary		Update bill
// @Description	Updates an existing bill. Only values to be updated need to be specified, marking a bill as paid is a PATCH with {"isPaid": true}.
// @Tags			Bills
// @Accept			json
// @Produce		json
// @Success		200		{object}	BillResponse
// @Failure		400		{object}	BillResponse
// @Failure		404		{object}	BillResponse
// @Failure		500		{object}	BillResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			bill	body		BillEditable	true	"Bill"
// @Router			/v1/bills/{id} [patch]
func UpdateBill(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillResponse{
			Error: &e,
		})
		return
	}

	var bill models.Bill
	err = models.DB.First(&bill, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, BillEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillResponse{
			Error: &e,
		})
		return
	}

	// Bind the data for the patch
	var data BillEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&bill).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillResponse{
			Error: &e,
		})
		return
	}

	apiResource := newBill(c, bill)
	c.JSON(http.StatusOK, BillResponse{Data: &apiResource})
}

// @Summary		Delete bill
// @Description	Deletes a bill
// @Tags			Bills
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/bills/{id} [delete]
func DeleteBill(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var bill models.Bill
	err = models.DB.First(&bill, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&bill).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Delete stale bills
// @Description	Deletes all paid bills whose due date falls in a month before the reference month. Unpaid bills and bills due in the reference month are kept.
// @Tags			Bills
// @Produce		json
// @Success		200			{object}	BillCleanupResponse
// @Failure		400			{object}	BillCleanupResponse
// @Failure		500			{object}	BillCleanupResponse
// @Param			stale		query		bool	true	"Must be true, deleting all bills is not supported"
// @Param			reference	query		string	false	"Reference month in YYYY-MM format. Defaults to the current month."
// @Router			/v1/bills [delete]
func DeleteStaleBills(c *gin.Context) {
	var params struct {
		Stale     bool   `form:"stale"`
		Reference string `form:"reference"`
	}

	err := c.Bind(&params)
	if err != nil || !params.Stale {
		s := errCleanupStaleOnly.Error()
		c.JSON(http.StatusBadRequest, BillCleanupResponse{
			Error: &s,
		})
		return
	}

	reference := time.Now()
	if params.Reference != "" {
		month, err := types.ParseMonth(params.Reference)
		if err != nil {
			s := errMonthInvalid.Error()
			c.JSON(http.StatusBadRequest, BillCleanupResponse{
				Error: &s,
			})
			return
		}

		reference = time.Time(month)
	}

	var bills []models.Bill
	err = models.DB.Find(&bills).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillCleanupResponse{
			Error: &e,
		})
		return
	}

	stale := generator.StalePaidBills(bills, reference)

	// Use a transaction so that we can roll back if errors happen
	tx := models.DB.Begin()
	for _, bill := range stale {
		err := tx.Delete(&bill).Error
		if err != nil {
			tx.Rollback()
			e := err.Error()
			c.JSON(status(err), BillCleanupResponse{
				Error: &e,
			})
			return
		}
	}
	tx.Commit()

	c.JSON(http.StatusOK, BillCleanupResponse{
		Data: &BillCleanup{Removed: len(stale)},
	})
}

// startOfDay zeroes the time of day so that due date comparisons are
// date-only.
func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
