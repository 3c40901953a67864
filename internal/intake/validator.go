package intake

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/canback/pickup-platform/internal/normalize"
	"github.com/canback/pickup-platform/internal/payout"
)

var validPickupTypes = map[string]bool{
	PickupCans:       true,
	PickupAppliances: true,
	PickupBoth:       true,
}

var validWindows = map[string]bool{
	WindowMorning:   true,
	WindowAfternoon: true,
	WindowEvening:   true,
}

// Validator turns raw pickup requests into validated leads.
type Validator struct {
	homeCity string
}

// NewValidator creates a validator. Leads without a city default to homeCity.
func NewValidator(homeCity string) *Validator {
	return &Validator{homeCity: homeCity}
}

// ValidatePickup checks every applicable rule and returns either a fully
// normalized lead or the complete ordered list of violations, never both.
// Errors follow submission order so presentation stays stable.
func (v *Validator) ValidatePickup(req *PickupRequest) (*PickupLead, []string) {
	var errs []string

	name := strings.TrimSpace(req.Name)
	if len(name) < 2 {
		errs = append(errs, "name must be at least 2 characters")
	}

	email := strings.TrimSpace(req.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		errs = append(errs, "invalid email address")
	}

	if err := normalize.Phone(strings.TrimSpace(req.Phone)); err != nil {
		errs = append(errs, err.Error())
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

	if !validPickupTypes[req.PickupType] {
		errs = append(errs, "invalid pickup type")
	}
	if req.WeeklyCans < 0 {
		errs = append(errs, "cans estimate must not be negative")
	}
	for _, entry := range req.Appliances {
		if entry.Qty < 1 {
			errs = append(errs, "appliance quantity must be at least 1")
			break
		}
	}
	if req.PreferredWindow != "" && !validWindows[req.PreferredWindow] {
		errs = append(errs, "invalid preferred window")
	}

	pref, payoutErrs := payout.Resolve(req.SetupPayoutNow, req.Payout)
	errs = append(errs, payoutErrs...)

	if len(errs) > 0 {
		return nil, errs
	}

	city := strings.TrimSpace(req.City)
	if city == "" {
		city = v.homeCity
	}

	return &PickupLead{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Person: Person{
			Name:           name,
			Email:          email,
			Phone:          strings.TrimSpace(req.Phone),
			MarketingOptIn: req.MarketingOptIn,
		},
		Address: Address{
			Street:      street,
			Suburb:      suburb,
			City:        city,
			Postcode:    strings.TrimSpace(req.Postcode),
			AccessNotes: strings.TrimSpace(req.AccessNotes),
		},
		Pickup: PickupDetails{
			Type:            req.PickupType,
			WeeklyCans:      req.WeeklyCans,
			Appliances:      req.Appliances,
			PreferredDate:   strings.TrimSpace(req.PreferredDate),
			PreferredWindow: req.PreferredWindow,
		},
		Payout: pref,
		Confirm: Confirmation{
			ItemsAreClean: req.ItemsAreClean,
			AcceptedTerms: req.AcceptedTerms,
		},
	}, nil
}
