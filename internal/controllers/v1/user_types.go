package v1

import (
	"github.com/hemanthscode/fintrack/internal/models"
)

type UserEditable struct {
	Name     string `json:"name" example:"Jane Doe"`    // Name displayed in the UI and in alert mails
	Currency string `json:"currency" example:"EUR"`     // ISO 4217 code used for display, defaults to USD
	Password string `json:"password,omitempty" example:"correct horse battery staple"`
}

func (editable UserEditable) model() models.User {
	return models.User{
		Name:     editable.Name,
		Currency: editable.Currency,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"correct horse battery staple"`
	Name     string `json:"name" example:"Jane Doe"`
	Currency string `json:"currency" example:"EUR"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"correct horse battery staple"`
}

// User is the API representation of a User.
type User struct {
	models.DefaultModel
	Email    string `json:"email" example:"jane@example.com"`
	Name     string `json:"name" example:"Jane Doe"`
	Currency string `json:"currency" example:"EUR"`
}

func newUser(model models.User) User {
	return User{
		DefaultModel: model.DefaultModel,
		Email:        model.Email,
		Name:         model.Name,
		Currency:     model.Currency,
	}
}

type UserResponse struct {
	Error *string `json:"error" example:"the email or password is incorrect"` // The error, if any occurred
	Data  *User   `json:"data"`                                               // The user data
}

// SessionData is returned after a successful registration or login.
type SessionData struct {
	Token string `json:"token" example:"80bc9a57-56b0-4227-a1fb-1b24fAbE8870"` // Bearer token for subsequent requests
	User  User   `json:"user"`
}

type SessionResponse struct {
	Error *string      `json:"error" example:"the email or password is incorrect"` // The error, if any occurred
	Data  *SessionData `json:"data"`                                               // The session data
}
