package v1_test

import (
	"fmt"
	"net/http"
	"time"

	v1 "github.com/hemanthscode/fintrack/internal/controllers/v1"
	"github.com/hemanthscode/fintrack/internal/types"
	"github.com/hemanthscode/fintrack/test"
)

func (suite *TestSuiteStandard) TestCreateRecurringTransaction() {
	session := suite.registerTestUser("")

	template := suite.createTestRecurring(session.Token, v1.RecurringEditable{
		Type:        types.TypeExpense,
		Amount:      amount(1200),
		Category:    "housing",
		Description: "Rent",
		Frequency:   types.FrequencyMonthly,
		StartDate:   date(2026, 10, 1),
	})

	suite.Assert().True(template.Active)
	suite.Require().NotNil(template.NextOccurrence)
	suite.Assert().Equal(date(2026, 10, 1), *template.NextOccurrence, "the first occurrence must default to the start date")
	suite.Assert().Contains(template.Links.Upcoming, fmt.Sprintf("/v1/recurring/%s/upcoming", template.ID))
}

func (suite *TestSuiteStandard) TestCreateRecurringTransactionInvalidFrequency() {
	session := suite.registerTestUser("")

	recorder := suite.request(session.Token, http.MethodPost, "http://example.com/v1/recurring", []v1.RecurringEditable{{
		Type:      types.TypeExpense,
		Amount:    amount(1200),
		Category:  "housing",
		Frequency: "fortnightly",
		StartDate: date(2026, 10, 1),
	}})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestRecurringTransactionsExcludedFromTransactions() {
	session := suite.registerTestUser("")

	suite.createTestRecurring(session.Token, v1.RecurringEditable{
		Type:      types.TypeExpense,
		Amount:    amount(1200),
		Category:  "housing",
		Frequency: types.FrequencyMonthly,
		StartDate: date(2026, 10, 1),
	})

	recorder := suite.request(session.Token, http.MethodGet, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Empty(response.Data, "templates must not appear in the transaction list")
}

func (suite *TestSuiteStandard) TestGetRecurringTransactionsActiveFilter() {
	session := suite.registerTestUser("")

	suite.createTestRecurring(session.Token, v1.RecurringEditable{
		Type:      types.TypeExpense,
		Amount:    amount(1200),
		Category:  "housing",
		Frequency: types.FrequencyMonthly,
		StartDate: date(2026, 10, 1),
	})

	cancelled := suite.createTestRecurring(session.Token, v1.RecurringEditable{
		Type:      types.TypeExpense,
		Amount:    amount(9.99),
		Category:  "entertainment",
		Frequency: types.FrequencyMonthly,
		StartDate: date(2026, 10, 1),
	})
	recorder := suite.request(session.Token, http.MethodPost, fmt.Sprintf("http://example.com/v1/recurring/%s/cancel", cancelled.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = suite.request(session.Token, http.MethodGet, "http://example.com/v1/recurring", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.RecurringListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Len(response.Data, 2)

	recorder = suite.request(session.Token, http.MethodGet, "http://example.com/v1/recurring?active=true", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal("housing", response.Data[0].Category)
}

func (suite *TestSuiteStandard) TestUpdateRecurringTransaction() {
	session := suite.registerTestUser("")

	template := suite.createTestRecurring(session.Token, v1.RecurringEditable{
		Type:      types.TypeExpense,
		Amount:    amount(1200),
		Category:  "housing",
		Frequency: types.FrequencyMonthly,
		StartDate: date(2026, 10, 1),
	})

	recorder := suite.request(session.Token, http.MethodPatch, fmt.Sprintf("http://example.com/v1/recurring/%s", template.ID), `{ "amount": 1300 }`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.RecurringResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().True(response.Data.Amount.Equal(amount(1300)))
	suite.Assert().Equal(date(2026, 10, 1), *response.Data.NextOccurrence, "changing the amount must not move the schedule")
}

func (suite *TestSuiteStandard) TestUpdateRecurringTransactionStartDate() {
	session := suite.registerTestUser("")

	template := suite.createTestRecurring(session.Token, v1.RecurringEditable{
		Type:      types.TypeExpense,
		Amount:    amount(1200),
		Category:  "housing",
		Frequency: types.FrequencyMonthly,
		StartDate: date(2026, 10, 1),
	})

	recorder := suite.request(session.Token, http.MethodPatch, fmt.Sprintf("http://example.com/v1/recurring/%s", template.ID), `{ "startDate": "2026-11-15T00:00:00Z" }`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.RecurringResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data.NextOccurrence)
	suite.Assert().Equal(date(2026, 11, 15), *response.Data.NextOccurrence, "a new start date must restart the series there")
}

func (suite *TestSuiteStandard) TestUpdateCancelledRecurringTransaction() {
	session := suite.registerTestUser("")

	template := suite.createTestRecurring(session.Token, v1.RecurringEditable{
		Type:      types.TypeExpense,
		Amount:    amount(9.99),
		Category:  "entertainment",
		Frequency: types.FrequencyMonthly,
		StartDate: date(2026, 10, 1),
	})

	recorder := suite.request(session.Token, http.MethodPost, fmt.Sprintf("http://example.com/v1/recurring/%s/cancel", template.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = suite.request(session.Token, http.MethodPatch, fmt.Sprintf("http://example.com/v1/recurring/%s", template.ID), `{ "amount": 12.99 }`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUpcomingOccurrences() {
	session := suite.registerTestUser("")

	template := suite.createTestRecurring(session.Token, v1.RecurringEditable{
		Type:      types.TypeExpense,
		Amount:    amount(1200),
		Category:  "housing",
		Frequency: types.FrequencyMonthly,
		StartDate: date(2026, 10, 1),
	})

	recorder := suite.request(session.Token, http.MethodGet, fmt.Sprintf("http://example.com/v1/recurring/%s/upcoming", template.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.UpcomingResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 5, "the preview must default to five occurrences")
	suite.Assert().Equal(date(2026, 10, 1), response.Data[0].Date)
	suite.Assert().Equal(date(2026, 11, 1), response.Data[1].Date)
	suite.Assert().Equal(date(2027, 2, 1), response.Data[4].Date)
	suite.Assert().True(response.Data[0].Amount.Equal(amount(1200)))

	recorder = suite.request(session.Token, http.MethodGet, fmt.Sprintf("http://example.com/v1/recurring/%s/upcoming?count=2", template.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Len(response.Data, 2)
}

func (suite *TestSuiteStandard) TestUpcomingOccurrencesEndsEarly() {
	session := suite.registerTestUser("")

	endDate := date(2026, 11, 30)
	template := suite.createTestRecurring(session.Token, v1.RecurringEditable{
		Type:      types.TypeExpense,
		Amount:    amount(1200),
		Category:  "housing",
		Frequency: types.FrequencyMonthly,
		StartDate: date(2026, 10, 1),
		EndDate:   &endDate,
	})

	recorder := suite.request(session.Token, http.MethodGet, fmt.Sprintf("http://example.com/v1/recurring/%s/upcoming", template.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.UpcomingResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Len(response.Data, 2, "the preview must stop at the end date")
}

func (suite *TestSuiteStandard) TestUpcomingOccurrencesCountParameter() {
	session := suite.registerTestUser("")

	template := suite.createTestRecurring(session.Token, v1.RecurringEditable{
		Type:      types.TypeExpense,
		Amount:    amount(1200),
		Category:  "housing",
		Frequency: types.FrequencyMonthly,
		StartDate: date(2026, 10, 1),
	})

	for _, count := range []string{"0", "61", "-1", "many"} {
		recorder := suite.request(session.Token, http.MethodGet, fmt.Sprintf("http://example.com/v1/recurring/%s/upcoming?count=%s", template.ID, count), "")
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	}
}

func (suite *TestSuiteStandard) TestCancelRecurringTransaction() {
	session := suite.registerTestUser("")

	template := suite.createTestRecurring(session.Token, v1.RecurringEditable{
		Type:      types.TypeExpense,
		Amount:    amount(9.99),
		Category:  "entertainment",
		Frequency: types.FrequencyMonthly,
		StartDate: date(2026, 10, 1),
	})

	recorder := suite.request(session.Token, http.MethodPost, fmt.Sprintf("http://example.com/v1/recurring/%s/cancel", template.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.RecurringResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().False(response.Data.Active)
	suite.Assert().Nil(response.Data.NextOccurrence)

	// Cancelling is final
	recorder = suite.request(session.Token, http.MethodPost, fmt.Sprintf("http://example.com/v1/recurring/%s/cancel", template.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestDeleteRecurringTransactionKeepsPastInstances() {
	session := suite.registerTestUser("")

	// A template with one occurrence in the past materializes immediately
	start := time.Now().In(time.UTC).AddDate(0, 0, -1)
	template := suite.createTestRecurring(session.Token, v1.RecurringEditable{
		Type:      types.TypeExpense,
		Amount:    amount(9.99),
		Category:  "entertainment",
		Frequency: types.FrequencyMonthly,
		StartDate: start,
	})

	suite.controller.Jobs.MaterializeDue()

	recorder := suite.request(session.Token, http.MethodDelete, fmt.Sprintf("http://example.com/v1/recurring/%s", template.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = suite.request(session.Token, http.MethodGet, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 1, "the past instance must survive the template deletion")
	suite.Assert().Nil(response.Data[0].SavingsGoalID)
	suite.Require().NotNil(response.Data[0].TemplateID)
	suite.Assert().Equal(template.ID, *response.Data[0].TemplateID)
}
