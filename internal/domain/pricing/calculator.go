package pricing

import (
	"github.com/shopspring/decimal"
)

var bpsDivisor = decimal.NewFromInt(10000)

// ComputeRushFee picks the rush tier for a subtotal. A nil threshold falls
// back to the configured one (2 x large fee when unset). Only call it for
// rush orders.
func ComputeRushFee(subtotalCents int64, cfg Config, thresholdCents *int64) RushFee {
	threshold := cfg.Threshold()
	if thresholdCents != nil {
		threshold = *thresholdCents
	}

	if subtotalCents >= threshold {
		return RushFee{FeeCents: cfg.LargeRushFeeCents, Tier: RushTierLarge}
	}
	return RushFee{FeeCents: cfg.SmallRushFeeCents, Tier: RushTierSmall}
}

// ComputeTax returns round((subtotal + rushFee) * rateBps / 10000), rounding
// half away from zero. 10000 cents at 997.5 bps is 997.5 and yields 998.
func ComputeTax(subtotalCents, rushFeeCents int64, rateBps decimal.Decimal) int64 {
	base := decimal.NewFromInt(subtotalCents + rushFeeCents)
	return base.Mul(rateBps).Div(bpsDivisor).Round(0).IntPart()
}

// ComputeOrderPricing aggregates the lines of one order. TPS and TVQ are
// rounded independently on the same taxable base and summed into TaxCents.
func ComputeOrderPricing(items []Item, isRush bool, cfg Config) Calculation {
	calc := Calculation{
		RushTier:  RushTierNone,
		Breakdown: make([]LineBreakdown, 0, len(items)),
	}

	for _, item := range items {
		price := ResolveItemPrice(item)
		calc.SubtotalCents += price.LineTotalCents
		calc.Breakdown = append(calc.Breakdown, LineBreakdown{
			GarmentID: item.GarmentID,
			ServiceID: item.ServiceID,
			Quantity:  item.Quantity,
			ItemPrice: price,
		})
	}

	if isRush {
		fee := ComputeRushFee(calc.SubtotalCents, cfg, nil)
		calc.RushFeeCents = fee.FeeCents
		calc.RushTier = fee.Tier
	}

	calc.TPSCents = ComputeTax(calc.SubtotalCents, calc.RushFeeCents, cfg.TPSRateBps)
	calc.TVQCents = ComputeTax(calc.SubtotalCents, calc.RushFeeCents, cfg.TVQRateBps)
	calc.TaxCents = calc.TPSCents + calc.TVQCents
	calc.TotalCents = calc.SubtotalCents + calc.RushFeeCents + calc.TaxCents

	return calc
}

// ComputeBatch prices each order independently.
func ComputeBatch(orders []BatchInput, cfg Config) []Calculation {
	out := make([]Calculation, len(orders))
	for i, o := range orders {
		out[i] = ComputeOrderPricing(o.Items, o.IsRush, cfg)
	}
	return out
}
