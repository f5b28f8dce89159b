// Package integration holds the payloads exchanged with external systems: the
// CRM/invoicing provider and the order status webhook.
package integration

import (
	"github.com/google/uuid"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/enum"
)

// ContactInput is the CRM contact upsert payload
type ContactInput struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Language  string
	Tags      []string
}

// CheckoutRequest asks the provider for a hosted payment page
type CheckoutRequest struct {
	ContactID   string
	OrderID     uuid.UUID
	OrderNumber int64
	Type        enum.CheckoutType
	AmountCents int64
	Description string
}

// Checkout is a hosted payment page returned by the provider
type Checkout struct {
	ID          string            `json:"id"`
	URL         string            `json:"url"`
	Type        enum.CheckoutType `json:"type"`
	AmountCents int64             `json:"amount_cents"`
	ContactID   string            `json:"-"`
}

// OrderStatusPayload is the body of the order.status_changed webhook
type OrderStatusPayload struct {
	Event          string              `json:"event"`
	OrderID        string              `json:"order_id"`
	OrderNumber    int64               `json:"order_number"`
	NewStatus      string              `json:"new_status"`
	PreviousStatus string              `json:"previous_status"`
	Client         WebhookClient       `json:"client"`
	Items          []WebhookItem       `json:"items"`
	Totals         WebhookTotals       `json:"totals"`
	Payment        WebhookPaymentState `json:"payment"`
	Timestamp      string              `json:"timestamp"`
}

type WebhookClient struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	Language     string `json:"language"`
	CRMContactID string `json:"crm_contact_id,omitempty"`
}

type WebhookItem struct {
	GarmentID   string `json:"garment_id"`
	GarmentType string `json:"garment_type"`
	Service     string `json:"service"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
	IsCustom    bool   `json:"is_custom"`
}

type WebhookTotals struct {
	Subtotal string `json:"subtotal"`
	RushFee  string `json:"rush_fee"`
	TPS      string `json:"tps"`
	TVQ      string `json:"tvq"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

type WebhookPaymentState struct {
	Status     string `json:"status"`
	Deposit    string `json:"deposit"`
	BalanceDue string `json:"balance_due"`
}
