package service

import (
	"context"
	"errors"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/entity"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/enum"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/integration"
)

// ErrCRMNotConfigured is returned when an operation needs the CRM and none is wired
var ErrCRMNotConfigured = errors.New("crm integration is not configured")

// CRMGateway is the CRM/invoicing provider: contacts, SMS, tags and hosted checkouts
type CRMGateway interface {
	UpsertContact(ctx context.Context, input integration.ContactInput) (string, error)
	SendSMS(ctx context.Context, contactID, message string) error
	AddTag(ctx context.Context, contactID, tag string) error
	RemoveTag(ctx context.Context, contactID, tag string) error
	CreateCheckout(ctx context.Context, req integration.CheckoutRequest) (*integration.Checkout, error)
}

// StatusWebhook announces order status changes to downstream automation
type StatusWebhook interface {
	OrderStatusChanged(ctx context.Context, payload integration.OrderStatusPayload) error
}

// TaskProvisioner creates the per-garment tasks of an order
type TaskProvisioner interface {
	EnsureTasks(ctx context.Context, order *entity.Order) (int, error)
}

// CheckoutRequester creates payment links for an order
type CheckoutRequester interface {
	RequestCheckout(ctx context.Context, order *entity.Order, checkoutType enum.CheckoutType) (*integration.Checkout, error)
}

// ContactSyncer makes sure a client exists in the CRM and returns its contact id
type ContactSyncer interface {
	EnsureCRMContact(ctx context.Context, client *entity.Client) (string, error)
}
