package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const maxRateBps = 10000

// Config holds the shop-wide pricing constants. It is passed explicitly to
// every calculation; nothing in this package reads the environment.
type Config struct {
	SmallRushFeeCents int64
	LargeRushFeeCents int64
	// RushThresholdCents is the subtotal at which the large rush fee applies.
	// Zero means 2 x LargeRushFeeCents.
	RushThresholdCents int64
	TPSRateBps         decimal.Decimal
	TVQRateBps         decimal.Decimal
}

// DefaultConfig returns the Quebec rates (TPS 5%, TVQ 9.975%) and the shop's
// standard rush tiers.
func DefaultConfig() Config {
	return Config{
		SmallRushFeeCents: 3000,
		LargeRushFeeCents: 6000,
		TPSRateBps:        decimal.NewFromInt(500),
		TVQRateBps:        decimal.RequireFromString("997.5"),
	}
}

// CombinedRateBps is the total sales tax rate.
func (c Config) CombinedRateBps() decimal.Decimal {
	return c.TPSRateBps.Add(c.TVQRateBps)
}

// Threshold resolves the effective large-tier threshold.
func (c Config) Threshold() int64 {
	if c.RushThresholdCents > 0 {
		return c.RushThresholdCents
	}
	return 2 * c.LargeRushFeeCents
}

// ValidateConfig lists every violated constraint. An empty result means the
// configuration is usable; callers decide whether to reject it.
func ValidateConfig(cfg Config) []string {
	var violations []string

	if cfg.SmallRushFeeCents < 0 {
		violations = append(violations, fmt.Sprintf("small rush fee must not be negative (got %d)", cfg.SmallRushFeeCents))
	}
	if cfg.LargeRushFeeCents < 0 {
		violations = append(violations, fmt.Sprintf("large rush fee must not be negative (got %d)", cfg.LargeRushFeeCents))
	}
	if cfg.LargeRushFeeCents < cfg.SmallRushFeeCents {
		violations = append(violations, fmt.Sprintf("large rush fee (%d) must be at least the small rush fee (%d)", cfg.LargeRushFeeCents, cfg.SmallRushFeeCents))
	}
	if cfg.RushThresholdCents < 0 {
		violations = append(violations, fmt.Sprintf("rush threshold must not be negative (got %d)", cfg.RushThresholdCents))
	}

	for _, r := range []struct {
		name string
		bps  decimal.Decimal
	}{
		{"TPS rate", cfg.TPSRateBps},
		{"TVQ rate", cfg.TVQRateBps},
		{"combined tax rate", cfg.CombinedRateBps()},
	} {
		if r.bps.IsNegative() || r.bps.GreaterThan(decimal.NewFromInt(maxRateBps)) {
			violations = append(violations, fmt.Sprintf("%s must be between 0 and %d bps (got %s)", r.name, maxRateBps, r.bps.String()))
		}
	}

	return violations
}
