package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/nzbill/backend/internal/controllers/v1"
	"github.com/nzbill/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCleanup() {
	_ = suite.createTestRecurringExpense(suite.T(), v1.RecurringExpenseEditable{})
	_ = suite.createTestBill(suite.T(), v1.BillEditable{DueDate: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)})

	recorder := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/profile", map[string]any{"balance": 5000})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	// Delete
	recorder = test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	// Verify
	tests := []string{
		"http://example.com/v1/bills",
		"http://example.com/v1/recurring-expenses",
	}

	for _, tt := range tests {
		suite.T().Run(tt, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, tt, "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response struct {
				Data []any `json:"data"`
			}

			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, 0, "There are resources left for %s", tt)
		})
	}

	// The profile is recreated empty on the next access
	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/profile", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var profile v1.ProfileResponse
	test.DecodeResponse(suite.T(), &recorder, &profile)
	assert.True(suite.T(), profile.Data.Balance.IsZero())
}

func (suite *TestSuiteStandard) TestCleanupFails() {
	tests := []struct {
		name string
		path string
	}{
		{"No confirmation", ""},
		{"Confirmation wrong", "confirm=invalid-confirmation"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodDelete, fmt.Sprintf("http://example.com/v1?%s", tt.path), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestCleanupDBError() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)
}
