package request

import (
	"time"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/enum"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/pricing"
)

// QuoteRequest represents a pricing preview for one order
type QuoteRequest struct {
	Items  []pricing.Item `json:"items"`
	IsRush bool           `json:"is_rush"`
}

// BatchQuoteRequest prices several orders with the same configuration
type BatchQuoteRequest struct {
	Orders []QuoteRequest `json:"orders" binding:"required,min=1,max=100"`
}

// TaskTimeRequest records minutes worked outside the timer
type TaskTimeRequest struct {
	Minutes int `json:"minutes" binding:"required"`
}

// TaskStageRequest moves a task on the workshop board
type TaskStageRequest struct {
	Stage enum.TaskStage `json:"stage" binding:"required"`
}

// PaymentWebhookRequest is the provider's payment callback
type PaymentWebhookRequest struct {
	Event       string            `json:"event"`
	ExternalID  string            `json:"external_id" binding:"required"`
	PaymentID   string            `json:"payment_id"`
	AmountCents int64             `json:"amount_cents"`
	Type        enum.CheckoutType `json:"type"`
	PaidAt      *time.Time        `json:"paid_at"`
}
