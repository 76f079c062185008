package v1_test

import (
	"net/http"

	v1 "github.com/hemanthscode/fintrack/internal/controllers/v1"
	"github.com/hemanthscode/fintrack/test"
)

func (suite *TestSuiteStandard) TestRegister() {
	session := suite.registerTestUser("jane@example.com")

	suite.Assert().NotEmpty(session.Token)
	suite.Assert().Equal("jane@example.com", session.User.Email)
	suite.Assert().Equal("Jane Doe", session.User.Name)
	suite.Assert().Equal("USD", session.User.Currency, "currency should default to USD")
}

func (suite *TestSuiteStandard) TestRegisterDuplicateEmail() {
	suite.registerTestUser("jane@example.com")

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/users/register", v1.RegisterRequest{
		Email:    "Jane@Example.com",
		Password: "correct horse battery staple",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestRegisterShortPassword() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/users/register", v1.RegisterRequest{
		Email:    "jane@example.com",
		Password: "short",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestRegisterMissingFields() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/users/register", `{ "email": "jane@example.com" }`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestLogin() {
	suite.registerTestUser("jane@example.com")

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/users/login", v1.LoginRequest{
		Email:    "jane@example.com",
		Password: "correct horse battery staple",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.SessionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().NotEmpty(response.Data.Token)
}

func (suite *TestSuiteStandard) TestLoginRotatesToken() {
	session := suite.registerTestUser("jane@example.com")

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/users/login", v1.LoginRequest{
		Email:    "jane@example.com",
		Password: "correct horse battery staple",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.SessionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().NotEqual(session.Token, response.Data.Token)

	// The old token must no longer authenticate
	recorder = suite.request(session.Token, http.MethodGet, "http://example.com/v1/users/me", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)

	recorder = suite.request(response.Data.Token, http.MethodGet, "http://example.com/v1/users/me", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
}

func (suite *TestSuiteStandard) TestLoginWrongPassword() {
	suite.registerTestUser("jane@example.com")

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/users/login", v1.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong horse battery staple",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestLoginUnknownEmail() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/users/login", v1.LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct horse battery staple",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestAuthenticationRequired() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/users/me", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/users/me", "", map[string]string{
		"Authorization": "Bearer not-a-valid-token",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestGetMe() {
	session := suite.registerTestUser("jane@example.com")

	recorder := suite.request(session.Token, http.MethodGet, "http://example.com/v1/users/me", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal("jane@example.com", response.Data.Email)
}

func (suite *TestSuiteStandard) TestUpdateMe() {
	session := suite.registerTestUser("jane@example.com")

	recorder := suite.request(session.Token, http.MethodPatch, "http://example.com/v1/users/me", `{ "name": "Jane Smith", "currency": "EUR" }`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal("Jane Smith", response.Data.Name)
	suite.Assert().Equal("EUR", response.Data.Currency)
}

func (suite *TestSuiteStandard) TestUpdateMeInvalidCurrency() {
	session := suite.registerTestUser("jane@example.com")

	recorder := suite.request(session.Token, http.MethodPatch, "http://example.com/v1/users/me", `{ "currency": "GOLD" }`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUpdateMePassword() {
	session := suite.registerTestUser("jane@example.com")

	recorder := suite.request(session.Token, http.MethodPatch, "http://example.com/v1/users/me", `{ "password": "a new longer password" }`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	// The old password must no longer work
	recorder = test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/users/login", v1.LoginRequest{
		Email:    "jane@example.com",
		Password: "correct horse battery staple",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)

	recorder = test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/users/login", v1.LoginRequest{
		Email:    "jane@example.com",
		Password: "a new longer password",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
}
