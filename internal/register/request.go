// Package register orchestrates account registration: validation, account
// creation, profile persistence, bonus recording, and token issuance.
package register

import (
	"net/mail"
	"strings"

	"github.com/canback/pickup-platform/internal/accounts"
	"github.com/canback/pickup-platform/internal/normalize"
	"github.com/canback/pickup-platform/internal/payout"
)

// RegistrationRequest is the raw request body for creating an account.
type RegistrationRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	Street   string `json:"street"`
	Suburb   string `json:"suburb"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`

	MarketingOptIn bool `json:"marketing_opt_in"`

	SetupPayoutNow bool         `json:"setup_payout_now"`
	Payout         payout.Input `json:"payout"`
}

// ValidatedRegistration is the normalized, schema-valid output of
// registration validation, ready to hand to the account store.
type ValidatedRegistration struct {
	Account accounts.NewAccount
	Profile accounts.ProfileUpdate
}

// Validator turns raw registration requests into validated records.
type Validator struct {
	homeCity string
}

// NewValidator creates a validator. Profiles without a city default to homeCity.
func NewValidator(homeCity string) *Validator {
	return &Validator{homeCity: homeCity}
}

// ValidateRegistration checks every applicable rule and returns either a
// fully normalized record or the complete ordered list of violations,
// never both. Errors follow submission order: username, names, address,
// phone, payout, email, password.
func (v *Validator) ValidateRegistration(req *RegistrationRequest) (*ValidatedRegistration, []string) {
	var errs []string

	username := strings.TrimSpace(req.Username)
	if len(username) < 3 {
		errs = append(errs, "username must be at least 3 characters")
	}

	firstName := strings.TrimSpace(req.FirstName)
	if firstName == "" {
		errs = append(errs, "first name is required")
	}
	lastName := strings.TrimSpace(req.LastName)
	if lastName == "" {
		errs = append(errs, "last name is required")
	}

	street := strings.TrimSpace(req.Street)
	if street == "" {
		errs = append(errs, "street address is required")
	}
	suburb := strings.TrimSpace(req.Suburb)
	if suburb == "" {
		errs = append(errs, "suburb is required")
	}
	if err := normalize.Postcode(strings.TrimSpace(req.Postcode)); err != nil {
		errs = append(errs, err.Error())
	}

	if err := normalize.Phone(strings.TrimSpace(req.Phone)); err != nil {
		errs = append(errs, err.Error())
	}

	pref, payoutErrs := payout.Resolve(req.SetupPayoutNow, req.Payout)
	errs = append(errs, payoutErrs...)

	email := strings.TrimSpace(req.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		errs = append(errs, "invalid email address")
	}

	if len(req.Password) < 6 {
		errs = append(errs, "password must be at least 6 characters")
	}
	if req.Password != req.PasswordConfirm {
		errs = append(errs, "passwords do not match")
	}

	if len(errs) > 0 {
		return nil, errs
	}

	city := strings.TrimSpace(req.City)
	if city == "" {
		city = v.homeCity
	}

	return &ValidatedRegistration{
		Account: accounts.NewAccount{
			Username:  username,
			Password:  req.Password,
			Email:     email,
			Role:      "customer",
			FirstName: firstName,
			LastName:  lastName,
		},
		Profile: accounts.ProfileUpdate{
			Phone:          strings.TrimSpace(req.Phone),
			Street:         street,
			Suburb:         suburb,
			City:           city,
			Postcode:       strings.TrimSpace(req.Postcode),
			Payout:         pref,
			MarketingOptIn: req.MarketingOptIn,
		},
	}, nil
}
