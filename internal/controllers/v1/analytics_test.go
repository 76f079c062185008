package v1_test

import (
	"net/http"

	v1 "github.com/hemanthscode/fintrack/internal/controllers/v1"
	"github.com/hemanthscode/fintrack/internal/types"
	"github.com/hemanthscode/fintrack/test"
)

func (suite *TestSuiteStandard) TestMonthlyAnalytics() {
	session := suite.registerTestUser("")

	suite.createTestTransaction(session.Token, v1.TransactionEditable{
		Type:     types.TypeIncome,
		Amount:   amount(2500),
		Category: "salary",
		Date:     date(2026, 3, 28),
	})
	suite.createTestTransaction(session.Token, v1.TransactionEditable{
		Type:     types.TypeExpense,
		Amount:   amount(300),
		Category: "food",
		Date:     date(2026, 3, 5),
	})
	suite.createTestTransaction(session.Token, v1.TransactionEditable{
		Type:     types.TypeExpense,
		Amount:   amount(120),
		Category: "food",
		Date:     date(2026, 3, 20),
	})
	suite.createTestTransaction(session.Token, v1.TransactionEditable{
		Type:     types.TypeExpense,
		Amount:   amount(500),
		Category: "housing",
		Date:     date(2026, 3, 1),
	})
	// A transaction in another month must not be included
	suite.createTestTransaction(session.Token, v1.TransactionEditable{
		Type:     types.TypeExpense,
		Amount:   amount(999),
		Category: "food",
		Date:     date(2026, 4, 1),
	})

	recorder := suite.request(session.Token, http.MethodGet, "http://example.com/v1/analytics/monthly?month=2026-03", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.MonthlyAnalyticsResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().True(response.Data.Income.Equal(amount(2500)))
	suite.Assert().True(response.Data.Expenses.Equal(amount(920)))
	suite.Assert().True(response.Data.Net.Equal(amount(1580)))

	suite.Require().Len(response.Data.Categories, 2)
	suite.Assert().Equal("housing", response.Data.Categories[0].Category, "categories must be ordered largest first")
	suite.Assert().True(response.Data.Categories[0].Total.Equal(amount(500)))
	suite.Assert().Equal("food", response.Data.Categories[1].Category)
	suite.Assert().True(response.Data.Categories[1].Total.Equal(amount(420)))
}

func (suite *TestSuiteStandard) TestMonthlyAnalyticsEmptyMonth() {
	session := suite.registerTestUser("")

	recorder := suite.request(session.Token, http.MethodGet, "http://example.com/v1/analytics/monthly?month=2026-03", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.MonthlyAnalyticsResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().True(response.Data.Income.IsZero())
	suite.Assert().True(response.Data.Expenses.IsZero())
	suite.Assert().Empty(response.Data.Categories)
}

func (suite *TestSuiteStandard) TestMonthlyAnalyticsInvalidMonth() {
	session := suite.registerTestUser("")

	for _, month := range []string{"2026-13", "March", "2026-03-01"} {
		recorder := suite.request(session.Token, http.MethodGet, "http://example.com/v1/analytics/monthly?month="+month, "")
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	}
}

func (suite *TestSuiteStandard) TestInsightsDisabled() {
	session := suite.registerTestUser("")

	recorder := suite.request(session.Token, http.MethodGet, "http://example.com/v1/analytics/insights", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusServiceUnavailable)
}
