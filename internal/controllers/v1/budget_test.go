package v1_test

import (
	"fmt"
	"net/http"
	"time"

	v1 "github.com/hemanthscode/fintrack/internal/controllers/v1"
	"github.com/hemanthscode/fintrack/internal/models"
	"github.com/hemanthscode/fintrack/internal/types"
	"github.com/hemanthscode/fintrack/test"
)

func (suite *TestSuiteStandard) TestCreateBudget() {
	session := suite.registerTestUser("")

	budget := suite.createTestBudget(session.Token, v1.BudgetEditable{
		Type:      types.BudgetTypeBudget,
		Name:      "Food",
		Category:  "food",
		Amount:    amount(400),
		Period:    types.PeriodMonthly,
		StartDate: date(2026, 9, 1),
	})

	suite.Assert().Equal(date(2026, 10, 1), budget.EndDate, "the end date must default to one period after the start")
	suite.Assert().Equal(uint(80), budget.AlertThreshold, "the alert threshold must default to 80")
	suite.Assert().Equal(models.BudgetStatusActive, budget.Status)
	suite.Assert().True(budget.Remaining.Equal(amount(400)))
	suite.Assert().Contains(budget.Links.Progress, fmt.Sprintf("/v1/budgets/%s/progress", budget.ID))
}

func (suite *TestSuiteStandard) TestCreateBudgetInvalid() {
	session := suite.registerTestUser("")

	recorder := suite.request(session.Token, http.MethodPost, "http://example.com/v1/budgets", []v1.BudgetEditable{{
		Type:   types.BudgetTypeBudget,
		Name:   "No category",
		Amount: amount(400),
		Period: types.PeriodMonthly,
	}})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetBudgetsFilters() {
	session := suite.registerTestUser("")

	suite.createTestBudget(session.Token, v1.BudgetEditable{
		Type:     types.BudgetTypeBudget,
		Name:     "Food budget",
		Category: "food",
		Amount:   amount(400),
		Period:   types.PeriodMonthly,
	})
	suite.createTestBudget(session.Token, v1.BudgetEditable{
		Type:   types.BudgetTypeSavings,
		Name:   "Vacation",
		Amount: amount(2000),
		Period: types.PeriodYearly,
	})
	suite.createTestBudget(session.Token, v1.BudgetEditable{
		Type:      types.BudgetTypeBudget,
		Name:      "Old travel budget",
		Category:  "travel",
		Amount:    amount(500),
		Period:    types.PeriodMonthly,
		StartDate: date(2026, 1, 1),
		EndDate:   date(2026, 2, 1),
	})

	tests := []struct {
		query string
		len   int
	}{
		{"", 3},
		{"type=savings", 1},
		{"category=food", 1},
		{"name=budget", 2},
		{"active=true", 2},
	}

	for _, tt := range tests {
		suite.Run("query="+tt.query, func() {
			recorder := suite.request(session.Token, http.MethodGet, "http://example.com/v1/budgets?"+tt.query, "")
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

			var response v1.BudgetListResponse
			test.DecodeResponse(suite.T(), &recorder, &response)
			suite.Assert().Len(response.Data, tt.len, "wrong number of budgets for query %q", tt.query)
		})
	}
}

func (suite *TestSuiteStandard) TestUpdateBudget() {
	session := suite.registerTestUser("")

	budget := suite.createTestBudget(session.Token, v1.BudgetEditable{
		Type:     types.BudgetTypeBudget,
		Name:     "Food",
		Category: "food",
		Amount:   amount(400),
		Period:   types.PeriodMonthly,
	})

	recorder := suite.request(session.Token, http.MethodPatch, fmt.Sprintf("http://example.com/v1/budgets/%s", budget.ID), `{ "amount": 450, "alertThreshold": 90 }`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().True(response.Data.Amount.Equal(amount(450)))
	suite.Assert().Equal(uint(90), response.Data.AlertThreshold)
}

func (suite *TestSuiteStandard) TestUpdateBudgetProgressExceedsAmount() {
	session := suite.registerTestUser("")

	budget := suite.createTestBudget(session.Token, v1.BudgetEditable{
		Type:     types.BudgetTypeBudget,
		Name:     "Food",
		Category: "food",
		Amount:   amount(400),
		Period:   types.PeriodMonthly,
	})

	recorder := suite.request(session.Token, http.MethodPatch, fmt.Sprintf("http://example.com/v1/budgets/%s", budget.ID), `{ "progress": 500 }`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	// Raising the amount alongside makes the same progress acceptable
	recorder = suite.request(session.Token, http.MethodPatch, fmt.Sprintf("http://example.com/v1/budgets/%s", budget.ID), `{ "progress": 500, "amount": 600 }`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
}

func (suite *TestSuiteStandard) TestAddBudgetProgress() {
	session := suite.registerTestUser("")

	goal := suite.createTestBudget(session.Token, v1.BudgetEditable{
		Type:   types.BudgetTypeSavings,
		Name:   "Vacation",
		Amount: amount(2000),
		Period: types.PeriodYearly,
	})

	recorder := suite.request(session.Token, http.MethodPost, fmt.Sprintf("http://example.com/v1/budgets/%s/progress", goal.ID), `{ "amount": 150 }`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().True(response.Data.Progress.Equal(amount(150)))

	recorder = suite.request(session.Token, http.MethodPost, fmt.Sprintf("http://example.com/v1/budgets/%s/progress", goal.ID), `{ "amount": 50 }`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().True(response.Data.Progress.Equal(amount(200)), "contributions must accumulate")
}

func (suite *TestSuiteStandard) TestAddBudgetProgressNotPositive() {
	session := suite.registerTestUser("")

	goal := suite.createTestBudget(session.Token, v1.BudgetEditable{
		Type:   types.BudgetTypeSavings,
		Name:   "Vacation",
		Amount: amount(2000),
		Period: types.PeriodYearly,
	})

	for _, body := range []string{`{ "amount": 0 }`, `{ "amount": -50 }`, `{}`} {
		recorder := suite.request(session.Token, http.MethodPost, fmt.Sprintf("http://example.com/v1/budgets/%s/progress", goal.ID), body)
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	}
}

func (suite *TestSuiteStandard) TestAddBudgetProgressExpired() {
	session := suite.registerTestUser("")

	budget := suite.createTestBudget(session.Token, v1.BudgetEditable{
		Type:      types.BudgetTypeBudget,
		Name:      "Old travel budget",
		Category:  "travel",
		Amount:    amount(500),
		Period:    types.PeriodMonthly,
		StartDate: date(2026, 1, 1),
		EndDate:   date(2026, 2, 1),
	})

	recorder := suite.request(session.Token, http.MethodPost, fmt.Sprintf("http://example.com/v1/budgets/%s/progress", budget.ID), `{ "amount": 50 }`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBudgetSummary() {
	session := suite.registerTestUser("")
	now := time.Now().In(time.UTC)

	suite.createTestBudget(session.Token, v1.BudgetEditable{
		Type:      types.BudgetTypeBudget,
		Name:      "Food",
		Category:  "food",
		Amount:    amount(400),
		Period:    types.PeriodMonthly,
		StartDate: now.AddDate(0, 0, -5),
		Progress:  amount(100),
	})
	suite.createTestBudget(session.Token, v1.BudgetEditable{
		Type:      types.BudgetTypeBudget,
		Name:      "Entertainment",
		Category:  "entertainment",
		Amount:    amount(100),
		Period:    types.PeriodMonthly,
		StartDate: now.AddDate(0, 0, -5),
		Progress:  amount(130),
	})
	suite.createTestBudget(session.Token, v1.BudgetEditable{
		Type:      types.BudgetTypeSavings,
		Name:      "Vacation",
		Amount:    amount(2000),
		Period:    types.PeriodYearly,
		StartDate: now.AddDate(0, 0, -5),
		Progress:  amount(500),
	})
	// An expired budget must not be part of the summary
	suite.createTestBudget(session.Token, v1.BudgetEditable{
		Type:      types.BudgetTypeBudget,
		Name:      "Old travel budget",
		Category:  "travel",
		Amount:    amount(500),
		Period:    types.PeriodMonthly,
		StartDate: date(2026, 1, 1),
		EndDate:   date(2026, 2, 1),
	})

	recorder := suite.request(session.Token, http.MethodGet, "http://example.com/v1/budgets/summary", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.SummaryResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Equal(2, response.Data.Budgets.Count)
	suite.Assert().True(response.Data.Budgets.Amount.Equal(amount(500)))
	suite.Assert().True(response.Data.Budgets.Progress.Equal(amount(230)))
	suite.Assert().True(response.Data.Budgets.Remaining.Equal(amount(270)))

	suite.Assert().Equal(1, response.Data.Savings.Count)
	suite.Assert().True(response.Data.Savings.Progress.Equal(amount(500)))

	suite.Assert().Equal(1, response.Data.Exceeded)
}

func (suite *TestSuiteStandard) TestDeleteBudget() {
	session := suite.registerTestUser("")

	budget := suite.createTestBudget(session.Token, v1.BudgetEditable{
		Type:     types.BudgetTypeBudget,
		Name:     "Food",
		Category: "food",
		Amount:   amount(400),
		Period:   types.PeriodMonthly,
	})

	recorder := suite.request(session.Token, http.MethodDelete, fmt.Sprintf("http://example.com/v1/budgets/%s", budget.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = suite.request(session.Token, http.MethodGet, fmt.Sprintf("http://example.com/v1/budgets/%s", budget.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBudgetsScopedToUser() {
	jane := suite.registerTestUser("jane@example.com")
	john := suite.registerTestUser("john@example.com")

	budget := suite.createTestBudget(jane.Token, v1.BudgetEditable{
		Type:     types.BudgetTypeBudget,
		Name:     "Food",
		Category: "food",
		Amount:   amount(400),
		Period:   types.PeriodMonthly,
	})

	recorder := suite.request(john.Token, http.MethodGet, fmt.Sprintf("http://example.com/v1/budgets/%s", budget.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
