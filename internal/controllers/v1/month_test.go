package v1_test

import (
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

func (suite *TestSuiteStandard) TestMonthStats() {
	_ = suite.createTestBill(suite.T(), v1.BillEditable{Name: "ค่าเน็ต", Amount: decimal.NewFromInt(500), Category: models.CategoryInternet, DueDate: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), IsPaid: true})
	_ = suite.createTestBill(suite.T(), v1.BillEditable{Name: "ค่าไฟ", Amount: decimal.NewFromInt(1200), Category: models.CategoryElectricity, DueDate: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)})
	_ = suite.createTestBill(suite.T(), v1.BillEditable{Name: "ค่าน้ำ", Amount: decimal.NewFromInt(150), Category: models.CategoryWater, DueDate: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)})

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/months/2025-01", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.MonthStatsResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.NotNil(suite.T(), response.Data)

	assert.Equal(suite.T(), 2, response.Data.Bills)
	assert.True(suite.T(), response.Data.Total.Equal(decimal.NewFromInt(1700)), "Total is %s, expected 1700", response.Data.Total)
	assert.True(suite.T(), response.Data.Paid.Equal(decimal.NewFromInt(500)))
	assert.True(suite.T(), response.Data.Unpaid.Equal(decimal.NewFromInt(1200)))

	require.Len(suite.T(), response.Data.Categories, 2)
	for _, category := range response.Data.Categories {
		assert.NotEmpty(suite.T(), category.DisplayName)
	}
}

func (suite *TestSuiteStandard) TestMonthStatsLocalized() {
	_ = suite.createTestBill(suite.T(), v1.BillEditable{Category: models.CategoryInternet, DueDate: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)})

	tests := []struct {
		name     string
		language string
		expected string
	}{
		{"Thai", "th", "ค่าเน็ต"},
		{"English", "en-US", "Internet"},
		{"Default is Thai", "", "ค่าเน็ต"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, "http://example.com/v1/months/2025-01", "", map[string]string{"Accept-Language": tt.language})
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.MonthStatsResponse
			test.DecodeResponse(t, &recorder, &response)
			require.Len(t, response.Data.Categories, 1)
			assert.Equal(t, tt.expected, response.Data.Categories[0].DisplayName)
		})
	}
}

func (suite *TestSuiteStandard) TestMonthStatsInvalid() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/months/January", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestMonthTrend() {
	_ = suite.createTestBill(suite.T(), v1.BillEditable{Amount: decimal.NewFromInt(500), DueDate: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)})
	_ = suite.createTestBill(suite.T(), v1.BillEditable{Amount: decimal.NewFromInt(700), DueDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)})

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/months?until=2025-03", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.MonthTrendResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.Len(suite.T(), response.Data, 6, "The trend covers six months")

	// Oldest first: 2024-10 through 2025-03
	assert.Equal(suite.T(), "2024-10", response.Data[0].Month.String())
	assert.Equal(suite.T(), "2025-03", response.Data[5].Month.String())

	assert.True(suite.T(), response.Data[3].Total.Equal(decimal.NewFromInt(500)), "January total is %s, expected 500", response.Data[3].Total)
	assert.True(suite.T(), response.Data[4].Total.IsZero(), "February total is %s, expected 0", response.Data[4].Total)
	assert.True(suite.T(), response.Data[5].Total.Equal(decimal.NewFromInt(700)), "March total is %s, expected 700", response.Data[5].Total)
}

func (suite *TestSuiteStandard) TestMonthTrendInvalidUntil() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/months?until=03-2025", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
