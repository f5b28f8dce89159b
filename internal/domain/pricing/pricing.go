// Package pricing computes order monetary totals from garment service lines.
// All amounts are integer cents. Percentages are applied in exact decimal
// arithmetic and rounded to the cent only after multiplication.
package pricing

// Item is one purchased line: a service applied to a garment.
type Item struct {
	GarmentID        string `json:"garment_id"`
	ServiceID        string `json:"service_id"`
	Quantity         int    `json:"quantity"`
	BasePriceCents   int64  `json:"base_price_cents"`
	CustomPriceCents *int64 `json:"custom_price_cents,omitempty"`
	FinalPriceCents  *int64 `json:"final_price_cents,omitempty"`
}

// ItemPrice is the resolved price of a line.
type ItemPrice struct {
	UnitPriceCents int64 `json:"unit_price_cents"`
	LineTotalCents int64 `json:"line_total_cents"`
	IsCustom       bool  `json:"is_custom"`
}

// LineBreakdown pairs a line's identity with its resolved price.
type LineBreakdown struct {
	GarmentID string `json:"garment_id"`
	ServiceID string `json:"service_id"`
	Quantity  int    `json:"quantity"`
	ItemPrice
}

// RushTier names the rush fee bracket that was applied.
type RushTier string

const (
	RushTierNone  RushTier = "none"
	RushTierSmall RushTier = "small"
	RushTierLarge RushTier = "large"
)

// RushFee is the result of ComputeRushFee.
type RushFee struct {
	FeeCents int64    `json:"fee_cents"`
	Tier     RushTier `json:"tier"`
}

// Calculation is the derived monetary state of an order.
type Calculation struct {
	SubtotalCents int64           `json:"subtotal_cents"`
	RushFeeCents  int64           `json:"rush_fee_cents"`
	RushTier      RushTier        `json:"rush_tier"`
	TPSCents      int64           `json:"tps_cents"`
	TVQCents      int64           `json:"tvq_cents"`
	TaxCents      int64           `json:"tax_cents"`
	TotalCents    int64           `json:"total_cents"`
	Breakdown     []LineBreakdown `json:"breakdown"`
}

// BatchInput is one order of a ComputeBatch call.
type BatchInput struct {
	Items  []Item
	IsRush bool
}

// ResolveItemPrice applies the override precedence final > custom > base.
// Quantity is assumed to be validated by the caller.
func ResolveItemPrice(item Item) ItemPrice {
	unit := item.BasePriceCents
	switch {
	case item.FinalPriceCents != nil:
		unit = *item.FinalPriceCents
	case item.CustomPriceCents != nil:
		unit = *item.CustomPriceCents
	}

	return ItemPrice{
		UnitPriceCents: unit,
		LineTotalCents: unit * int64(item.Quantity),
		IsCustom:       item.FinalPriceCents != nil || item.CustomPriceCents != nil,
	}
}
