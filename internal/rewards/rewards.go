// Package rewards computes the monetary value of recycling pickups:
// per-can rewards, per-appliance credits, and long-horizon savings projections.
package rewards

import (
	"encoding/json"
	"fmt"
	"math"
)

// DefaultApplianceCredits maps appliance slugs to their dollar credit.
// Unknown slugs earn nothing.
var DefaultApplianceCredits = map[string]int{
	"fridge":          10,
	"freezer":         10,
	"washing_machine": 8,
	"dryer":           6,
	"dishwasher":      6,
	"oven":            5,
	"tv":              4,
	"microwave":       2,
	"heater":          2,
}

// Config holds the reward rates used by the calculator. It is passed in
// explicitly so the calculator stays pure and testable.
type Config struct {
	// RewardDollars is paid per CansPerReward cans collected over a year.
	RewardDollars int
	// CansPerReward is the number of cans that earn one reward unit.
	CansPerReward int
	// ApplianceCredits maps appliance slug to dollar credit.
	ApplianceCredits map[string]int
	// ProjectionRate is the annual growth rate for savings projections.
	ProjectionRate float64
	// ProjectionYears is the default projection horizon.
	ProjectionYears int
}

// DefaultConfig returns the standard reward rates.
func DefaultConfig() Config {
	return Config{
		RewardDollars:    1,
		CansPerReward:    50,
		ApplianceCredits: DefaultApplianceCredits,
		ProjectionRate:   0.05,
		ProjectionYears:  10,
	}
}

// ParseApplianceCredits decodes a slug->credit JSON object, falling back to
// the default table when the input is empty.
func ParseApplianceCredits(raw string) (map[string]int, error) {
	if raw == "" {
		return DefaultApplianceCredits, nil
	}
	credits := map[string]int{}
	if err := json.Unmarshal([]byte(raw), &credits); err != nil {
		return nil, fmt.Errorf("rewards: parse appliance credits: %w", err)
	}
	return credits, nil
}

// ApplianceItem is a single appliance entry on a pickup request.
type ApplianceItem struct {
	Slug string `json:"slug"`
	Qty  int    `json:"qty"`
}

// RewardQuote is the computed value of a pickup. It is derived on demand
// and never persisted or mutated.
type RewardQuote struct {
	CansDollars         int      `json:"cans_dollars"`
	ApplianceDollars    int      `json:"appliance_dollars"`
	TotalDollars        int      `json:"total_dollars"`
	KiwiSaverProjection *float64 `json:"kiwisaver_projection,omitempty"`
}

// CansReward returns the yearly dollar reward for a weekly can count.
// Fractional reward units never round up.
func (c Config) CansReward(weeklyCans int) int {
	if weeklyCans <= 0 || c.CansPerReward <= 0 {
		return 0
	}
	return (weeklyCans * 52 / c.CansPerReward) * c.RewardDollars
}

// ApplianceReward sums the credits for a list of appliance entries.
// Unknown slugs silently contribute nothing.
func (c Config) ApplianceReward(items []ApplianceItem) int {
	total := 0
	for _, item := range items {
		if item.Qty <= 0 {
			continue
		}
		total += item.Qty * c.ApplianceCredits[item.Slug]
	}
	return total
}

// SavingsProjection computes the future value of an ordinary annuity:
// annual deposits growing at rate for the given number of years.
// The result is rounded half-up to 2 decimal places.
func SavingsProjection(annualAmount float64, years int, rate float64) float64 {
	if years <= 0 {
		return 0
	}
	if rate == 0 {
		return round2(annualAmount * float64(years))
	}
	fv := annualAmount * (math.Pow(1+rate, float64(years)) - 1) / rate
	return round2(fv)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Quote computes the full reward quote for a pickup. When withProjection is
// set, the total yearly reward is projected forward at the configured rate.
func (c Config) Quote(weeklyCans int, items []ApplianceItem, withProjection bool) RewardQuote {
	quote := RewardQuote{
		CansDollars:      c.CansReward(weeklyCans),
		ApplianceDollars: c.ApplianceReward(items),
	}
	quote.TotalDollars = quote.CansDollars + quote.ApplianceDollars
	if withProjection {
		projection := SavingsProjection(float64(quote.TotalDollars), c.ProjectionYears, c.ProjectionRate)
		quote.KiwiSaverProjection = &projection
	}
	return quote
}
