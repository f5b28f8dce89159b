package request

import (
	"time"

	"github.com/google/uuid"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/enum"
)

// StageTransitionRequest represents a stage change on the production board
type StageTransitionRequest struct {
	Stage            enum.OrderStatus `json:"stage" binding:"required"`
	SendNotification bool             `json:"sendNotification"`
	Notes            string           `json:"notes" binding:"max=2000"`
}

// ServiceLineRequest is one service applied to a garment
type ServiceLineRequest struct {
	ServiceID        uuid.UUID `json:"service_id"`
	Quantity         int       `json:"quantity"`
	CustomPriceCents *int64    `json:"custom_price_cents"`
	Notes            string    `json:"notes"`
}

// GarmentRequest is one garment dropped off by the client
type GarmentRequest struct {
	Type        string               `json:"type" binding:"max=100"`
	Description string               `json:"description"`
	Notes       string               `json:"notes"`
	Services    []ServiceLineRequest `json:"services"`
}

// CreateOrderRequest represents an order intake. Either client_id or client is given.
type CreateOrderRequest struct {
	ClientID *uuid.UUID       `json:"client_id"`
	Client   *ClientRequest   `json:"client"`
	Type     enum.OrderType   `json:"type"`
	Rush     bool             `json:"rush"`
	DueDate  *time.Time       `json:"due_date"`
	Notes    string           `json:"notes"`
	Garments []GarmentRequest `json:"garments" binding:"dive"`
}

// OrderFilterRequest represents board filters
type OrderFilterRequest struct {
	Status          string `form:"status"`
	Type            string `form:"type"`
	Rush            *bool  `form:"rush"`
	ClientID        string `form:"client_id"`
	IncludeArchived bool   `form:"include_archived"`
	Page            int    `form:"page"`
	PerPage         int    `form:"per_page"`
}

// UpdateServicePriceRequest sets or clears the final price of a service line.
// A null final_price_cents falls back to the custom or catalog price.
type UpdateServicePriceRequest struct {
	FinalPriceCents *int64 `json:"final_price_cents"`
}

// CheckoutRequest asks for a payment link
type CheckoutRequest struct {
	Type    enum.CheckoutType `json:"type" binding:"required"`
	SendSMS bool              `json:"send_sms"`
}
