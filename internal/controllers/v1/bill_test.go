package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/nzbill/backend/internal/controllers/v1"
	"github.com/nzbill/backend/internal/models"
	"github.com/nzbill/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestBillOptions() {
	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/bills", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "GET, POST, DELETE", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestBillCreate() {
	bill := suite.createTestBill(suite.T(), v1.BillEditable{
		Name:    "ค่าห้อง",
		Amount:  decimal.NewFromInt(3500),
		DueDate: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	})

	require.Nil(suite.T(), bill.Error)
	assert.Equal(suite.T(), "ค่าห้อง", bill.Data.Name)
	require.NotNil(suite.T(), bill.Data.ReminderDaysBefore)
	assert.Equal(suite.T(), 3, *bill.Data.ReminderDaysBefore, "Reminder days must default to 3")
	assert.Equal(suite.T(), models.StatusOverdue, bill.Data.Status)
	assert.NotEmpty(suite.T(), bill.Data.Links.Self)
	assert.Empty(suite.T(), bill.Data.Links.RecurringExpense, "One-off bills have no template link")
}

func (suite *TestSuiteStandard) TestBillCreateInvalid() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/bills", []v1.BillEditable{{Name: "", Amount: decimal.NewFromInt(100)}})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBillGetNotFound() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/bills/4e743e94-6a4b-44d6-aba5-d77c87103ff7", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBillsGetFilter() {
	_ = suite.createTestBill(suite.T(), v1.BillEditable{Name: "ค่าเน็ต", Category: models.CategoryInternet, DueDate: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), IsPaid: true})
	_ = suite.createTestBill(suite.T(), v1.BillEditable{Name: "ค่าไฟ", Category: models.CategoryElectricity, DueDate: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)})
	_ = suite.createTestBill(suite.T(), v1.BillEditable{Name: "ค่าน้ำ", Category: models.CategoryWater, DueDate: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), Notes: "มิเตอร์ 42"})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"No filter", "", 3},
		{"Month", "month=2025-01", 2},
		{"Other month", "month=2025-03", 0},
		{"Paid", "isPaid=true", 1},
		{"Unpaid", "isPaid=false", 2},
		{"Category", "category=water", 1},
		{"Name", "name=ค่าไฟ", 1},
		{"Search in notes", "search=มิเตอร์", 1},
		{"Overdue", "overdue=true", 2},
		{"Limit", "limit=1", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/bills?%s", tt.query), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.BillListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestBillsGetMonthInvalid() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/bills?month=01-2025", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBillsGetSorted() {
	_ = suite.createTestBill(suite.T(), v1.BillEditable{Name: "ค่าไฟ", DueDate: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)})
	_ = suite.createTestBill(suite.T(), v1.BillEditable{Name: "ค่าเน็ต", DueDate: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)})

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/bills", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BillListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), "ค่าเน็ต", response.Data[0].Name, "Bills must be sorted by due date")
}

func (suite *TestSuiteStandard) TestBillPay() {
	bill := suite.createTestBill(suite.T(), v1.BillEditable{DueDate: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)})

	recorder := test.Request(suite.T(), http.MethodPatch, bill.Data.Links.Self, map[string]any{
		"isPaid": true,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BillResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.True(suite.T(), response.Data.IsPaid)
	assert.Equal(suite.T(), models.StatusPaid, response.Data.Status)

	// Marking as unpaid again works the same way
	recorder = test.Request(suite.T(), http.MethodPatch, bill.Data.Links.Self, map[string]any{
		"isPaid": false,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.False(suite.T(), response.Data.IsPaid)
}

func (suite *TestSuiteStandard) TestBillDelete() {
	bill := suite.createTestBill(suite.T(), v1.BillEditable{})

	recorder := test.Request(suite.T(), http.MethodDelete, bill.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, bill.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBillsDeleteStale() {
	// Paid bills in December and January, one unpaid bill in March
	_ = suite.createTestBill(suite.T(), v1.BillEditable{Name: "ค่าไฟ", DueDate: time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC), IsPaid: true})
	_ = suite.createTestBill(suite.T(), v1.BillEditable{Name: "ค่าเน็ต", DueDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), IsPaid: true})
	_ = suite.createTestBill(suite.T(), v1.BillEditable{Name: "ค่าห้อง", DueDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)})

	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1/bills?stale=true&reference=2026-02", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BillCleanupResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), 2, response.Data.Removed)

	// The unpaid bill survives
	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/bills", "")
	var bills v1.BillListResponse
	test.DecodeResponse(suite.T(), &recorder, &bills)
	require.Len(suite.T(), bills.Data, 1)
	assert.Equal(suite.T(), "ค่าห้อง", bills.Data[0].Name)
}

func (suite *TestSuiteStandard) TestBillsDeleteStaleRequiresFlag() {
	_ = suite.createTestBill(suite.T(), v1.BillEditable{})

	tests := []string{
		"http://example.com/v1/bills",
		"http://example.com/v1/bills?stale=false",
	}

	for _, tt := range tests {
		suite.T().Run(tt, func(t *testing.T) {
			recorder := test.Request(t, http.MethodDelete, tt, "")
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestBillsDeleteStaleInvalidReference() {
	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1/bills?stale=true&reference=February", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
