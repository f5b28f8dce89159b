package pricing

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cents(v int64) *int64 { return &v }

func TestResolveItemPrice(t *testing.T) {
	tests := []struct {
		name     string
		item     Item
		expected ItemPrice
	}{
		{
			name:     "base only",
			item:     Item{Quantity: 2, BasePriceCents: 1500},
			expected: ItemPrice{UnitPriceCents: 1500, LineTotalCents: 3000},
		},
		{
			name:     "custom overrides base",
			item:     Item{Quantity: 1, BasePriceCents: 1500, CustomPriceCents: cents(2000)},
			expected: ItemPrice{UnitPriceCents: 2000, LineTotalCents: 2000, IsCustom: true},
		},
		{
			name:     "final overrides custom",
			item:     Item{Quantity: 3, BasePriceCents: 1500, CustomPriceCents: cents(2000), FinalPriceCents: cents(1800)},
			expected: ItemPrice{UnitPriceCents: 1800, LineTotalCents: 5400, IsCustom: true},
		},
		{
			name:     "zero final is still an override",
			item:     Item{Quantity: 1, BasePriceCents: 1500, FinalPriceCents: cents(0)},
			expected: ItemPrice{UnitPriceCents: 0, LineTotalCents: 0, IsCustom: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveItemPrice(tt.item))
		})
	}
}

func TestResolveItemPricePrecedenceRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(20240601))

	for i := 0; i < 2000; i++ {
		item := Item{
			Quantity:       1 + rng.Intn(5),
			BasePriceCents: rng.Int63n(50000),
		}
		var custom, final *int64
		if rng.Intn(2) == 0 {
			custom = cents(rng.Int63n(50000))
			item.CustomPriceCents = custom
		}
		if rng.Intn(2) == 0 {
			final = cents(rng.Int63n(50000))
			item.FinalPriceCents = final
		}

		want := item.BasePriceCents
		if custom != nil {
			want = *custom
		}
		if final != nil {
			want = *final
		}

		got := ResolveItemPrice(item)
		require.Equal(t, want, got.UnitPriceCents)
		require.Equal(t, want*int64(item.Quantity), got.LineTotalCents)
		require.Equal(t, custom != nil || final != nil, got.IsCustom)
	}
}

func TestComputeRushFee(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("below default threshold", func(t *testing.T) {
		fee := ComputeRushFee(11999, cfg, nil)
		assert.Equal(t, RushFee{FeeCents: 3000, Tier: RushTierSmall}, fee)
	})

	t.Run("at default threshold", func(t *testing.T) {
		fee := ComputeRushFee(12000, cfg, nil)
		assert.Equal(t, RushFee{FeeCents: 6000, Tier: RushTierLarge}, fee)
	})

	t.Run("explicit threshold", func(t *testing.T) {
		fee := ComputeRushFee(5000, cfg, cents(5000))
		assert.Equal(t, RushTierLarge, fee.Tier)
	})

	t.Run("configured threshold", func(t *testing.T) {
		c := cfg
		c.RushThresholdCents = 20000
		assert.Equal(t, RushTierSmall, ComputeRushFee(15000, c, nil).Tier)
	})
}

func TestComputeTax(t *testing.T) {
	tvq := decimal.RequireFromString("997.5")

	assert.Equal(t, int64(500), ComputeTax(10000, 0, decimal.NewFromInt(500)))
	assert.Equal(t, int64(998), ComputeTax(10000, 0, tvq), "9.975 rounds half up")
	assert.Equal(t, int64(798), ComputeTax(5000, 3000, tvq))
	assert.Equal(t, int64(1), ComputeTax(2, 0, decimal.NewFromInt(2500)), "0.5 rounds up")
	assert.Equal(t, int64(0), ComputeTax(1, 0, decimal.NewFromInt(4999)))
	assert.Equal(t, int64(0), ComputeTax(0, 0, tvq))
}

func TestComputeOrderPricingScenarios(t *testing.T) {
	cfg := DefaultConfig()
	hundredDollars := []Item{{GarmentID: "g1", ServiceID: "hem", Quantity: 1, BasePriceCents: 10000}}

	t.Run("100 dollars no rush", func(t *testing.T) {
		calc := ComputeOrderPricing(hundredDollars, false, cfg)

		assert.Equal(t, int64(10000), calc.SubtotalCents)
		assert.Equal(t, int64(0), calc.RushFeeCents)
		assert.Equal(t, RushTierNone, calc.RushTier)
		assert.Equal(t, int64(500), calc.TPSCents)
		assert.Equal(t, int64(998), calc.TVQCents)
		assert.Equal(t, int64(1498), calc.TaxCents)
		assert.Equal(t, int64(11498), calc.TotalCents)
	})

	t.Run("50 dollars rush small tier", func(t *testing.T) {
		items := []Item{{Quantity: 1, BasePriceCents: 5000}}
		rush := ComputeOrderPricing(items, true, cfg)
		plain := ComputeOrderPricing(items, false, cfg)

		assert.Equal(t, int64(3000), rush.RushFeeCents)
		assert.Equal(t, RushTierSmall, rush.RushTier)
		assert.Equal(t, int64(400), rush.TPSCents)
		assert.Equal(t, int64(798), rush.TVQCents)
		assert.Equal(t, int64(9198), rush.TotalCents)
		assert.Greater(t, rush.TotalCents, plain.TotalCents)
	})

	t.Run("breakdown preserves order", func(t *testing.T) {
		items := []Item{
			{GarmentID: "g1", ServiceID: "hem", Quantity: 2, BasePriceCents: 1500},
			{GarmentID: "g2", ServiceID: "zip", Quantity: 1, BasePriceCents: 2500, CustomPriceCents: cents(2200)},
		}
		calc := ComputeOrderPricing(items, false, cfg)

		require.Len(t, calc.Breakdown, 2)
		assert.Equal(t, "hem", calc.Breakdown[0].ServiceID)
		assert.False(t, calc.Breakdown[0].IsCustom)
		assert.True(t, calc.Breakdown[1].IsCustom)
		assert.Equal(t, int64(5200), calc.SubtotalCents)
	})

	t.Run("empty order", func(t *testing.T) {
		calc := ComputeOrderPricing(nil, false, cfg)
		assert.Equal(t, int64(0), calc.TotalCents)
		assert.NotNil(t, calc.Breakdown)
	})
}

func TestComputeOrderPricingProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	cfg := DefaultConfig()

	for i := 0; i < 1000; i++ {
		items := make([]Item, rng.Intn(6))
		var expectedSubtotal int64
		for j := range items {
			items[j] = Item{Quantity: 1 + rng.Intn(4), BasePriceCents: rng.Int63n(40000)}
			if rng.Intn(3) == 0 {
				items[j].FinalPriceCents = cents(rng.Int63n(40000))
			}
			expectedSubtotal += ResolveItemPrice(items[j]).LineTotalCents
		}
		isRush := rng.Intn(2) == 0

		calc := ComputeOrderPricing(items, isRush, cfg)

		require.Equal(t, expectedSubtotal, calc.SubtotalCents)
		if isRush {
			require.Contains(t, []int64{cfg.SmallRushFeeCents, cfg.LargeRushFeeCents}, calc.RushFeeCents)
			require.Equal(t, calc.SubtotalCents >= cfg.Threshold(), calc.RushTier == RushTierLarge)
		} else {
			require.Zero(t, calc.RushFeeCents)
		}
		require.Equal(t, ComputeTax(calc.SubtotalCents, calc.RushFeeCents, cfg.TPSRateBps), calc.TPSCents)
		require.Equal(t, ComputeTax(calc.SubtotalCents, calc.RushFeeCents, cfg.TVQRateBps), calc.TVQCents)
		require.Equal(t, calc.TPSCents+calc.TVQCents, calc.TaxCents)
		require.Equal(t, calc.SubtotalCents+calc.RushFeeCents+calc.TaxCents, calc.TotalCents)

		again := ComputeOrderPricing(items, isRush, cfg)
		require.Equal(t, calc, again)
	}
}

func TestComputeBatch(t *testing.T) {
	cfg := DefaultConfig()
	orders := []BatchInput{
		{Items: []Item{{Quantity: 1, BasePriceCents: 10000}}},
		{Items: []Item{{Quantity: 1, BasePriceCents: 5000}}, IsRush: true},
	}

	out := ComputeBatch(orders, cfg)

	require.Len(t, out, 2)
	assert.Equal(t, int64(11498), out[0].TotalCents)
	assert.Equal(t, int64(9198), out[1].TotalCents)
	assert.Empty(t, ComputeBatch(nil, cfg))
}

func TestValidateConfig(t *testing.T) {
	assert.Empty(t, ValidateConfig(DefaultConfig()))

	bad := Config{
		SmallRushFeeCents: 5000,
		LargeRushFeeCents: 1000,
		TPSRateBps:        decimal.NewFromInt(-1),
		TVQRateBps:        decimal.NewFromInt(12000),
	}
	violations := ValidateConfig(bad)

	assert.Len(t, violations, 4)
	assert.Contains(t, violations[0], "large rush fee")

	negative := DefaultConfig()
	negative.SmallRushFeeCents = -1
	assert.NotEmpty(t, ValidateConfig(negative))
}

func TestCombinedRateBps(t *testing.T) {
	assert.True(t, DefaultConfig().CombinedRateBps().Equal(decimal.RequireFromString("1497.5")))
}
