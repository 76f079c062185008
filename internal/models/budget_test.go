package models_test

import (
	"time"

	"github.com/hemanthscode/fintrack/internal/models"
	"github.com/hemanthscode/fintrack/internal/types"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestBudgetInvalidType() {
	user := suite.createTestUser(models.User{})

	err := models.DB.Create(&models.Budget{
		UserID: user.ID,
		Type:   "piggybank",
		Name:   "Piggy bank",
		Amount: decimal.NewFromFloat(100),
		Period: types.PeriodMonthly,
	}).Error

	suite.Assert().ErrorIs(err, models.ErrBudgetTypeInvalid)
}

func (suite *TestSuiteStandard) TestBudgetAmountNotPositive() {
	user := suite.createTestUser(models.User{})

	err := models.DB.Create(&models.Budget{
		UserID:   user.ID,
		Type:     types.BudgetTypeBudget,
		Name:     "Food",
		Category: "food",
		Amount:   decimal.Zero,
		Period:   types.PeriodMonthly,
	}).Error

	suite.Assert().ErrorIs(err, models.ErrAmountNotPositive)
}

func (suite *TestSuiteStandard) TestBudgetInvalidPeriod() {
	user := suite.createTestUser(models.User{})

	err := models.DB.Create(&models.Budget{
		UserID:   user.ID,
		Type:     types.BudgetTypeBudget,
		Name:     "Food",
		Category: "food",
		Amount:   decimal.NewFromFloat(100),
		Period:   "fortnightly",
	}).Error

	suite.Assert().ErrorIs(err, models.ErrPeriodInvalid)
}

func (suite *TestSuiteStandard) TestBudgetCategoryRequired() {
	user := suite.createTestUser(models.User{})

	err := models.DB.Create(&models.Budget{
		UserID: user.ID,
		Type:   types.BudgetTypeBudget,
		Name:   "Food",
		Amount: decimal.NewFromFloat(100),
		Period: types.PeriodMonthly,
	}).Error
	suite.Assert().ErrorIs(err, models.ErrCategoryRequired, "missing category for budget type should be rejected")

	err = models.DB.Create(&models.Budget{
		UserID:   user.ID,
		Type:     types.BudgetTypeBudget,
		Name:     "Payday",
		Category: "salary",
		Amount:   decimal.NewFromFloat(100),
		Period:   types.PeriodMonthly,
	}).Error
	suite.Assert().ErrorIs(err, models.ErrCategoryRequired, "income category for budget type should be rejected")
}

func (suite *TestSuiteStandard) TestSavingsGoalClearsCategory() {
	user := suite.createTestUser(models.User{})

	goal := suite.createTestBudget(models.Budget{
		UserID:   user.ID,
		Type:     types.BudgetTypeSavings,
		Name:     "Vacation",
		Category: "food",
		Amount:   decimal.NewFromFloat(2000),
		Period:   types.PeriodYearly,
	})

	suite.Assert().Equal("", goal.Category)
}

func (suite *TestSuiteStandard) TestBudgetDefaultDates() {
	user := suite.createTestUser(models.User{})

	budget := suite.createTestBudget(models.Budget{
		UserID:    user.ID,
		Type:      types.BudgetTypeBudget,
		Name:      "Food",
		Category:  "food",
		Amount:    decimal.NewFromFloat(100),
		Period:    types.PeriodMonthly,
		StartDate: time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
	})
	suite.Assert().Equal(time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC), budget.EndDate, "end date should default to one period after the start date")

	budget = suite.createTestBudget(models.Budget{
		UserID:   user.ID,
		Type:     types.BudgetTypeBudget,
		Name:     "Entertainment",
		Category: "entertainment",
		Amount:   decimal.NewFromFloat(100),
		Period:   types.PeriodMonthly,
	})
	suite.Assert().False(budget.StartDate.IsZero(), "start date should default to the current time")
}

func (suite *TestSuiteStandard) TestBudgetEndBeforeStart() {
	user := suite.createTestUser(models.User{})

	err := models.DB.Create(&models.Budget{
		UserID:    user.ID,
		Type:      types.BudgetTypeBudget,
		Name:      "Food",
		Category:  "food",
		Amount:    decimal.NewFromFloat(100),
		Period:    types.PeriodMonthly,
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}).Error

	suite.Assert().ErrorIs(err, models.ErrEndBeforeStart)
}

func (suite *TestSuiteStandard) TestBudgetAlertThreshold() {
	user := suite.createTestUser(models.User{})

	budget := suite.createTestBudget(models.Budget{
		UserID:   user.ID,
		Type:     types.BudgetTypeBudget,
		Name:     "Food",
		Category: "food",
		Amount:   decimal.NewFromFloat(100),
		Period:   types.PeriodMonthly,
	})
	suite.Assert().Equal(uint(models.DefaultAlertThreshold), budget.AlertThreshold)

	err := models.DB.Create(&models.Budget{
		UserID:         user.ID,
		Type:           types.BudgetTypeBudget,
		Name:           "Eating out",
		Category:       "entertainment",
		Amount:         decimal.NewFromFloat(100),
		Period:         types.PeriodMonthly,
		AlertThreshold: 101,
	}).Error
	suite.Assert().ErrorIs(err, models.ErrThresholdOutOfRange)
}

func (suite *TestSuiteStandard) TestBudgetStatus() {
	now := time.Date(2026, 5, 15, 12, 0, 0, 0, time.UTC)

	budget := models.Budget{
		Type:           types.BudgetTypeBudget,
		Amount:         decimal.NewFromFloat(100),
		StartDate:      time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		AlertThreshold: 80,
	}

	tests := []struct {
		name     string
		progress float64
		now      time.Time
		status   models.BudgetStatus
	}{
		{"below threshold", 50, now, models.BudgetStatusActive},
		{"at threshold", 80, now, models.BudgetStatusWarning},
		{"over amount", 120, now, models.BudgetStatusExceeded},
		{"past end date", 50, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), models.BudgetStatusExpired},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			budget.Progress = decimal.NewFromFloat(tt.progress)
			suite.Assert().Equal(tt.status, budget.Status(tt.now))
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetRemaining() {
	budget := models.Budget{
		Amount:   decimal.NewFromFloat(100),
		Progress: decimal.NewFromFloat(130),
	}

	suite.Assert().True(budget.Remaining().Equal(decimal.NewFromFloat(-30)))
}

func (suite *TestSuiteStandard) TestBudgetRollover() {
	user := suite.createTestUser(models.User{})

	budget := suite.createTestBudget(models.Budget{
		UserID:    user.ID,
		Type:      types.BudgetTypeBudget,
		Name:      "Food",
		Category:  "food",
		Amount:    decimal.NewFromFloat(100),
		Period:    types.PeriodMonthly,
		StartDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Progress:  decimal.NewFromFloat(95),
		AlertSent: true,
	})

	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	budget.Rollover(now)

	suite.Assert().Equal(now, budget.StartDate)
	suite.Assert().Equal(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), budget.EndDate)
	suite.Assert().True(budget.Progress.IsZero())
	suite.Assert().False(budget.AlertSent)
}
