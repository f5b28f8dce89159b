package service

import (
	"time"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/entity"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/enum"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/integration"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/pricing"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/money"
)

const eventOrderStatusChanged = "order.status_changed"

// buildOrderStatusPayload summarises an order for integrations. Line prices
// come from the calculator so the items always agree with the totals.
func buildOrderStatusPayload(order *entity.Order, from enum.OrderStatus, at time.Time) integration.OrderStatusPayload {
	payload := integration.OrderStatusPayload{
		Event:          eventOrderStatusChanged,
		OrderID:        order.ID.String(),
		OrderNumber:    order.OrderNumber,
		NewStatus:      order.Status.String(),
		PreviousStatus: from.String(),
		Items:          []integration.WebhookItem{},
		Totals: integration.WebhookTotals{
			Subtotal: money.FormatCents(order.SubtotalCents),
			RushFee:  money.FormatCents(order.RushFeeCents),
			TPS:      money.FormatCents(order.TPSCents),
			TVQ:      money.FormatCents(order.TVQCents),
			Tax:      money.FormatCents(order.TaxCents),
			Total:    money.FormatCents(order.TotalCents),
		},
		Payment: integration.WebhookPaymentState{
			Status:     order.PaymentStatus.String(),
			Deposit:    money.FormatCents(order.DepositCents),
			BalanceDue: money.FormatCents(order.BalanceDueCents()),
		},
		Timestamp: at.UTC().Format(time.RFC3339),
	}

	if c := order.Client; c != nil {
		payload.Client = integration.WebhookClient{
			ID:       c.ID.String(),
			Name:     c.FullName(),
			Language: c.Language,
		}
		if c.Phone != nil {
			payload.Client.Phone = *c.Phone
		}
		if c.Email != nil {
			payload.Client.Email = *c.Email
		}
		if c.CRMContactID != nil {
			payload.Client.CRMContactID = *c.CRMContactID
		}
	}

	for _, g := range order.Garments {
		for _, s := range g.Services {
			price := pricing.ResolveItemPrice(s.PricingItem())
			payload.Items = append(payload.Items, integration.WebhookItem{
				GarmentID:   g.ID.String(),
				GarmentType: g.Type,
				Service:     s.ServiceName(),
				Quantity:    s.Quantity,
				UnitPrice:   money.FormatCents(price.UnitPriceCents),
				LineTotal:   money.FormatCents(price.LineTotalCents),
				IsCustom:    price.IsCustom,
			})
		}
	}

	return payload
}
