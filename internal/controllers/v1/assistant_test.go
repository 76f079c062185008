package v1_test

import (
	"net/http"

	"github.com/hemanthscode/fintrack/internal/ai"
	v1 "github.com/hemanthscode/fintrack/internal/controllers/v1"
	"github.com/hemanthscode/fintrack/test"
)

func (suite *TestSuiteStandard) TestChatDisabled() {
	session := suite.registerTestUser("")

	recorder := suite.request(session.Token, http.MethodPost, "http://example.com/v1/chat", v1.ChatRequest{
		Messages: []ai.Message{{Role: "user", Content: "How much did I spend on food this month?"}},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusServiceUnavailable)
}

func (suite *TestSuiteStandard) TestParseReceiptDisabled() {
	session := suite.registerTestUser("")

	body, contentType := suite.multipartFile("receipt.jpg", []byte{0xff, 0xd8, 0xff, 0xe0})
	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/receipts", body, map[string]string{
		"Authorization": "Bearer " + session.Token,
		"Content-Type":  contentType,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusServiceUnavailable)
}
