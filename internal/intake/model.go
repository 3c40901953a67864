package intake

import (
	"time"

	"github.com/canback/pickup-platform/internal/payout"
	"github.com/canback/pickup-platform/internal/rewards"
)

// Pickup types a household can request.
const (
	PickupCans       = "cans"
	PickupAppliances = "appliances"
	PickupBoth       = "both"
)

// Preferred pickup windows.
const (
	WindowMorning   = "morning"
	WindowAfternoon = "afternoon"
	WindowEvening   = "evening"
)

// Person holds the contact details on a pickup lead.
type Person struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	MarketingOptIn bool   `json:"marketing_opt_in"`
}

// Address is the pickup location.
type Address struct {
	Street      string `json:"street"`
	Suburb      string `json:"suburb"`
	City        string `json:"city"`
	Postcode    string `json:"postcode"`
	AccessNotes string `json:"access_notes,omitempty"`
}

// ApplianceEntry is one appliance line on a pickup request.
type ApplianceEntry struct {
	Slug  string `json:"slug"`
	Qty   int    `json:"qty"`
	Notes string `json:"notes,omitempty"`
}

// PickupDetails describes what is being collected and when.
type PickupDetails struct {
	Type            string           `json:"type"`
	WeeklyCans      int              `json:"weekly_cans,omitempty"`
	Appliances      []ApplianceEntry `json:"appliances,omitempty"`
	PreferredDate   string           `json:"preferred_date,omitempty"`
	PreferredWindow string           `json:"preferred_window,omitempty"`
}

// Confirmation carries the customer's self-declared gates. They are stored
// with the lead but are not hard validation blockers.
type Confirmation struct {
	ItemsAreClean bool `json:"items_are_clean"`
	AcceptedTerms bool `json:"accepted_terms"`
}

// PickupLead is a validated pickup request. Once constructed it is
// immutable and schema-valid; it is never partially valid.
type PickupLead struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	Person    Person            `json:"person"`
	Address   Address           `json:"address"`
	Pickup    PickupDetails     `json:"pickup"`
	Payout    payout.Preference `json:"payout"`
	Confirm   Confirmation      `json:"confirm"`
}

// ApplianceItems converts the lead's appliance entries into the
// calculator's input shape.
func (l *PickupLead) ApplianceItems() []rewards.ApplianceItem {
	items := make([]rewards.ApplianceItem, 0, len(l.Pickup.Appliances))
	for _, entry := range l.Pickup.Appliances {
		items = append(items, rewards.ApplianceItem{Slug: entry.Slug, Qty: entry.Qty})
	}
	return items
}

// PickupRequest is the raw request body for scheduling a pickup.
type PickupRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	MarketingOptIn bool   `json:"marketing_opt_in"`

	Street      string `json:"street"`
	Suburb      string `json:"suburb"`
	City        string `json:"city"`
	Postcode    string `json:"postcode"`
	AccessNotes string `json:"access_notes"`

	PickupType      string           `json:"pickup_type"`
	WeeklyCans      int              `json:"weekly_cans"`
	Appliances      []ApplianceEntry `json:"appliances"`
	PreferredDate   string           `json:"preferred_date"`
	PreferredWindow string           `json:"preferred_window"`

	SetupPayoutNow bool         `json:"setup_payout_now"`
	Payout         payout.Input `json:"payout"`

	ItemsAreClean bool `json:"items_are_clean"`
	AcceptedTerms bool `json:"accepted_terms"`
}
