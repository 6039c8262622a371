package v1_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	v1 "github.com/nzbill/backend/internal/controllers/v1"
	"github.com/nzbill/backend/internal/models"
	"github.com/nzbill/backend/internal/orchestrator"
	"github.com/nzbill/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestGenerationOptions() {
	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/generation", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "GET, POST", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestGenerationState() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/generation", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.GenerationStateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), string(orchestrator.StateIdle), response.Data.State)
}

func (suite *TestSuiteStandard) TestGenerationWithoutTemplates() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/generation", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.GenerationRunResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), string(orchestrator.StateWaiting), response.Data.State)
	assert.Empty(suite.T(), response.Data.Bills)
}

func (suite *TestSuiteStandard) TestGeneration() {
	_ = suite.createTestRecurringExpense(suite.T(), v1.RecurringExpenseEditable{Name: "ค่าเน็ต", DueDay: 5})
	_ = suite.createTestRecurringExpense(suite.T(), v1.RecurringExpenseEditable{Name: "ค่าไฟ", DueDay: 20})

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/generation", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.GenerationRunResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), string(orchestrator.StateDone), response.Data.State)
	assert.NotEmpty(suite.T(), response.Data.RunID)
	require.Len(suite.T(), response.Data.Bills, 2)

	// The due date is in the current month
	now := time.Now()
	bill := response.Data.Bills[0]
	assert.Equal(suite.T(), now.Year(), bill.DueDate.Year())
	assert.Equal(suite.T(), now.Month(), bill.DueDate.Month())
	assert.False(suite.T(), bill.IsPaid)
	assert.True(suite.T(), bill.IsRecurring)
	assert.NotEmpty(suite.T(), bill.Links.RecurringExpense)
}

func (suite *TestSuiteStandard) TestGenerationNoDuplicates() {
	_ = suite.createTestRecurringExpense(suite.T(), v1.RecurringExpenseEditable{Name: "ค่าเน็ต", DueDay: 5})

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/generation", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	// Triggering again persists nothing: the bills for the month
	// already exist in the store
	recorder = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/generation", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.GenerationRunResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.NotNil(suite.T(), response.Data)
	assert.Empty(suite.T(), response.Data.Bills)

	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.Bill{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *TestSuiteStandard) TestGenerationConflict() {
	_ = suite.createTestRecurringExpense(suite.T(), v1.RecurringExpenseEditable{Name: "ค่าเน็ต", DueDay: 5})

	// A dedicated engine with one shared runner so both requests hit the
	// same session gate
	runner := orchestrator.New()
	r := gin.New()
	r.POST("/v1/generation", v1.TriggerGeneration(runner))

	// Hold the first run open at its first query so the second request
	// arrives while the run is in flight
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	require.Nil(suite.T(), models.DB.Callback().Query().Before("gorm:query").Register("test_hold_query", func(_ *gorm.DB) {
		once.Do(func() {
			close(entered)
			<-release
		})
	}))

	first := make(chan *httptest.ResponseRecorder)
	go func() {
		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodPost, "/v1/generation", nil)
		r.ServeHTTP(recorder, request)
		first <- recorder
	}()

	<-entered

	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest(http.MethodPost, "/v1/generation", nil)
	r.ServeHTTP(recorder, request)
	assert.Equal(suite.T(), http.StatusConflict, recorder.Code)

	var response v1.GenerationRunResponse
	test.DecodeResponse(suite.T(), recorder, &response)
	require.NotNil(suite.T(), response.Error)
	assert.Equal(suite.T(), orchestrator.ErrGenerationInProgress.Error(), *response.Error)

	close(release)
	held := <-first
	assert.Equal(suite.T(), http.StatusCreated, held.Code)
}

func (suite *TestSuiteStandard) TestGenerationSkipsInactive() {
	inactive := false
	_ = suite.createTestRecurringExpense(suite.T(), v1.RecurringExpenseEditable{Name: "ค่าฟิตเนส", Active: &inactive})

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/generation", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.GenerationRunResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.NotNil(suite.T(), response.Data)
	assert.Empty(suite.T(), response.Data.Bills)
}
