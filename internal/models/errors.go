package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// User errors
var (
	ErrEmailNotUnique    = errors.New("this email address is already registered")
	ErrInvalidCurrency   = errors.New("the currency is not a valid ISO 4217 code")
	ErrCredentialsWrong  = errors.New("the email or password is incorrect")
	ErrPasswordTooShort  = errors.New("passwords must have at least 8 characters")
)

// Transaction errors
var (
	ErrAmountNotPositive       = errors.New("amounts must be larger than zero")
	ErrTransactionTypeInvalid  = errors.New("the transaction type must be income or expense")
	ErrCategoryInvalid         = errors.New("the category is not valid for this transaction type")
	ErrFrequencyInvalid        = errors.New("the frequency must be one of daily, weekly, monthly, yearly")
	ErrNotRecurring            = errors.New("this transaction is not a recurring template")
	ErrRecurrenceEnded         = errors.New("this recurring transaction has ended and can no longer be changed")
	ErrInstanceExists          = errors.New("an instance for this occurrence already exists")
	ErrSavingsGoalInvalid      = errors.New("the linked savings goal does not exist or is not a savings goal")
)

// Budget errors
var (
	ErrBudgetTypeInvalid      = errors.New("the budget type must be budget or savings")
	ErrPeriodInvalid          = errors.New("the period must be one of weekly, monthly, yearly")
	ErrCategoryRequired       = errors.New("budgets need an expense category")
	ErrEndBeforeStart         = errors.New("the end date must not be before the start date")
	ErrThresholdOutOfRange    = errors.New("the alert threshold must be a percentage between 1 and 100")
	ErrProgressExceedsAmount  = errors.New("the progress must not exceed the budget amount")
	ErrBudgetExpired          = errors.New("the budget period has ended")
)
