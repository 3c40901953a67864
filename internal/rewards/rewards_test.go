package rewards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCansReward(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 0, cfg.CansReward(0))
	assert.Equal(t, 0, cfg.CansReward(-5))

	// 1 can/week = 52 cans/year = 1 full unit of 50
	assert.Equal(t, 1, cfg.CansReward(1))

	// 10 cans/week = 520/year = 10 units
	assert.Equal(t, 10, cfg.CansReward(10))

	// Fractional units never round up: 24*52 = 1248 -> 24 units
	assert.Equal(t, 24, cfg.CansReward(24))
}

func TestCansRewardMonotonic(t *testing.T) {
	cfg := DefaultConfig()
	prev := 0
	for c := 0; c <= 200; c++ {
		got := cfg.CansReward(c)
		require.GreaterOrEqual(t, got, prev, "reward decreased at weekly count %d", c)
		prev = got
	}
}

func TestCansRewardCustomRate(t *testing.T) {
	cfg := Config{RewardDollars: 2, CansPerReward: 100}
	// 4 cans/week = 208/year = 2 units of 100 = $4
	assert.Equal(t, 4, cfg.CansReward(4))
}

func TestApplianceReward(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 0, cfg.ApplianceReward(nil))
	assert.Equal(t, 0, cfg.ApplianceReward([]ApplianceItem{}))

	// Microwave credit is 2, so qty 2 earns 4
	assert.Equal(t, 4, cfg.ApplianceReward([]ApplianceItem{{Slug: "microwave", Qty: 2}}))

	// Unknown slugs contribute nothing
	assert.Equal(t, 10, cfg.ApplianceReward([]ApplianceItem{
		{Slug: "fridge", Qty: 1},
		{Slug: "flux_capacitor", Qty: 3},
	}))

	// Non-positive quantities are skipped
	assert.Equal(t, 0, cfg.ApplianceReward([]ApplianceItem{{Slug: "fridge", Qty: 0}}))
}

func TestSavingsProjection(t *testing.T) {
	assert.Equal(t, 0.0, SavingsProjection(100, 0, 0.05))
	assert.Equal(t, 1000.0, SavingsProjection(100, 10, 0))

	// Compounding beats simple accumulation
	compounded := SavingsProjection(100, 10, 0.05)
	assert.Greater(t, compounded, 1000.0)
	assert.InDelta(t, 1257.79, compounded, 0.01)

	// Long horizons stay finite for realistic rates
	long := SavingsProjection(100, 99, 0.05)
	assert.Greater(t, long, 0.0)
}

func TestQuote(t *testing.T) {
	cfg := DefaultConfig()

	quote := cfg.Quote(10, []ApplianceItem{{Slug: "microwave", Qty: 2}}, false)
	assert.Equal(t, 10, quote.CansDollars)
	assert.Equal(t, 4, quote.ApplianceDollars)
	assert.Equal(t, 14, quote.TotalDollars)
	assert.Nil(t, quote.KiwiSaverProjection)

	withProj := cfg.Quote(10, nil, true)
	require.NotNil(t, withProj.KiwiSaverProjection)
	assert.Greater(t, *withProj.KiwiSaverProjection, float64(withProj.TotalDollars))
}

func TestParseApplianceCredits(t *testing.T) {
	credits, err := ParseApplianceCredits("")
	require.NoError(t, err)
	assert.Equal(t, 2, credits["microwave"])

	credits, err = ParseApplianceCredits(`{"fridge": 20}`)
	require.NoError(t, err)
	assert.Equal(t, 20, credits["fridge"])

	_, err = ParseApplianceCredits("{not json")
	assert.Error(t, err)
}
