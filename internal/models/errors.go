package models

import "errors"

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrNameMissing       = errors.New("the name must be set")
	ErrAmountNotPositive = errors.New("the amount must be larger than zero")
	ErrAmountTooLarge    = errors.New("the amount must not be larger than 1000000")
	ErrAmountTooPrecise  = errors.New("the amount must not have more than two decimal places")
	ErrDueDayOutOfRange  = errors.New("the due day must be between 1 and 31")
	ErrCategoryInvalid   = errors.New("the specified category does not exist")
)
