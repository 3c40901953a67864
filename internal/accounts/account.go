// Package accounts owns customer account records: creation with a unique
// username, credential verification, and profile updates.
package accounts

import (
	"context"
	"errors"
	"time"

	"github.com/canback/pickup-platform/internal/payout"
)

var (
	// ErrUsernameTaken is returned when the username is already registered
	ErrUsernameTaken = errors.New("username is already taken")

	// ErrAccountNotFound is returned when an account is not found
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidCredentials is returned when username/password verification fails
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Account is a customer account record.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone,omitempty"`

	Street   string `json:"street,omitempty"`
	Suburb   string `json:"suburb,omitempty"`
	City     string `json:"city,omitempty"`
	Postcode string `json:"postcode,omitempty"`

	Payout         payout.Preference `json:"payout"`
	MarketingOptIn bool              `json:"marketing_opt_in"`
	CreatedAt      time.Time         `json:"created_at"`
}

// NewAccount carries the fields needed to create an account. Password is
// plaintext here and only ever stored as a bcrypt hash.
type NewAccount struct {
	Username  string
	Password  string
	Email     string
	Role      string
	FirstName string
	LastName  string
}

// ProfileUpdate carries the extended profile fields written after account
// creation.
type ProfileUpdate struct {
	Phone          string
	Street         string
	Suburb         string
	City           string
	Postcode       string
	Payout         payout.Preference
	MarketingOptIn bool
}

// Store defines the account storage contract. Username uniqueness is
// enforced atomically by the implementation.
type Store interface {
	Create(ctx context.Context, acc NewAccount) (*Account, error)
	UpdateProfile(ctx context.Context, accountID string, update ProfileUpdate) error
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)
	Verify(ctx context.Context, username, password string) (*Account, error)
}
