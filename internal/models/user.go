package models

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/currency"
	"gorm.io/gorm"
)

// User is the owner of all other resources. Every transaction and budget
// belongs to exactly one user.
type User struct {
	DefaultModel
	Email        string `gorm:"uniqueIndex"`
	Name         string
	PasswordHash string `json:"-"`
	Token        string `json:"-" gorm:"index"` // Bearer token for API authentication
	Currency     string // ISO 4217 code used for display, defaults to USD
}

// BeforeSave normalizes the email address and validates the currency.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Name = strings.TrimSpace(u.Name)

	if u.Currency == "" {
		u.Currency = "USD"
	}

	if _, err := currency.ParseISO(u.Currency); err != nil {
		return ErrInvalidCurrency
	}

	return nil
}

// SetPassword hashes the password and stores the hash on the user.
func (u *User) SetPassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
