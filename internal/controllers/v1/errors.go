package v1

import (
	"errors"
	"net/http"

	"github.com/nzbill/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Cleanup errors
var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
	errCleanupStaleOnly    = errors.New("the stale parameter must be set to true, deleting all bills is not supported")
)

// Month errors
var errMonthInvalid = errors.New("the month must be specified in YYYY-MM format")
