package models_test

import (
	"github.com/hemanthscode/fintrack/internal/models"
)

func (suite *TestSuiteStandard) TestUserEmailNormalized() {
	user := suite.createTestUser(models.User{Email: " Jane@Example.COM "})
	suite.Assert().Equal("jane@example.com", user.Email)
}

func (suite *TestSuiteStandard) TestUserEmailUnique() {
	_ = suite.createTestUser(models.User{Email: "jane@example.com"})

	second := models.User{Email: "jane@example.com"}
	err := second.SetPassword("correct horse battery staple")
	suite.Require().NoError(err)

	err = models.DB.Create(&second).Error
	suite.Assert().ErrorIs(err, models.ErrEmailNotUnique)
}

func (suite *TestSuiteStandard) TestUserCurrencyDefault() {
	user := suite.createTestUser(models.User{})
	suite.Assert().Equal("USD", user.Currency)
}

func (suite *TestSuiteStandard) TestUserCurrencyInvalid() {
	user := models.User{Email: "jane@example.com", Currency: "NOPE"}
	err := user.SetPassword("correct horse battery staple")
	suite.Require().NoError(err)

	err = models.DB.Create(&user).Error
	suite.Assert().ErrorIs(err, models.ErrInvalidCurrency)
}

func (suite *TestSuiteStandard) TestUserPasswordTooShort() {
	var user models.User
	err := user.SetPassword("short")
	suite.Assert().ErrorIs(err, models.ErrPasswordTooShort)
}

func (suite *TestSuiteStandard) TestUserCheckPassword() {
	user := suite.createTestUser(models.User{})

	suite.Assert().True(user.CheckPassword("correct horse battery staple"))
	suite.Assert().False(user.CheckPassword("incorrect horse battery staple"))
}
