package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/enum"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/pricing"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/money"
)

// Order is the aggregate root for a client job
type Order struct {
	ID               uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	OrderNumber      int64              `gorm:"uniqueIndex;not null" json:"order_number"`
	ClientID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"client_id"`
	Type             enum.OrderType     `gorm:"size:20;not null;default:'alteration'" json:"type"`
	Status           enum.OrderStatus   `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Rush             bool               `gorm:"default:false" json:"rush"`
	DueDate          *time.Time         `gorm:"type:date" json:"due_date,omitempty"`
	SubtotalCents    int64              `gorm:"default:0" json:"-"`
	RushFeeCents     int64              `gorm:"default:0" json:"-"`
	TPSCents         int64              `gorm:"column:tps_cents;default:0" json:"-"`
	TVQCents         int64              `gorm:"column:tvq_cents;default:0" json:"-"`
	TaxCents         int64              `gorm:"default:0" json:"-"`
	TotalCents       int64              `gorm:"default:0" json:"-"`
	DepositCents     int64              `gorm:"default:0" json:"-"`
	DepositPaidAt    *time.Time         `json:"deposit_paid_at,omitempty"`
	PaidAt           *time.Time         `json:"paid_at,omitempty"`
	PaymentStatus    enum.PaymentStatus `gorm:"size:20;not null;default:'unpaid'" json:"payment_status"`
	TotalWorkSeconds int64              `gorm:"default:0" json:"total_work_seconds"`
	Notes            string             `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
	DeletedAt        gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Client   *Client   `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Garments []Garment `gorm:"foreignKey:OrderID" json:"garments,omitempty"`
}

// MarshalJSON renders cents as two-decimal dollar strings for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		Subtotal string `json:"subtotal"`
		RushFee  string `json:"rush_fee"`
		TPS      string `json:"tps"`
		TVQ      string `json:"tvq"`
		Tax      string `json:"tax"`
		Total    string `json:"total"`
		Deposit  string `json:"deposit"`
		Balance  string `json:"balance_due"`
	}{
		Alias:    Alias(o),
		Subtotal: money.FormatCents(o.SubtotalCents),
		RushFee:  money.FormatCents(o.RushFeeCents),
		TPS:      money.FormatCents(o.TPSCents),
		TVQ:      money.FormatCents(o.TVQCents),
		Tax:      money.FormatCents(o.TaxCents),
		Total:    money.FormatCents(o.TotalCents),
		Deposit:  money.FormatCents(o.DepositCents),
		Balance:  money.FormatCents(o.BalanceDueCents()),
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// PricingItems flattens the garment services into calculator input
func (o *Order) PricingItems() []pricing.Item {
	var items []pricing.Item
	for _, g := range o.Garments {
		for _, s := range g.Services {
			items = append(items, s.PricingItem())
		}
	}
	return items
}

// ApplyPricing copies a calculation onto the order's monetary fields
func (o *Order) ApplyPricing(calc pricing.Calculation) {
	o.SubtotalCents = calc.SubtotalCents
	o.RushFeeCents = calc.RushFeeCents
	o.TPSCents = calc.TPSCents
	o.TVQCents = calc.TVQCents
	o.TaxCents = calc.TaxCents
	o.TotalCents = calc.TotalCents
}

// RecordedWorkSeconds is the legacy order-level aggregate plus every task's minutes.
func (o *Order) RecordedWorkSeconds() int64 {
	total := o.TotalWorkSeconds
	for _, t := range o.Tasks() {
		total += int64(t.ActualMinutes) * 60
	}
	return total
}

// Tasks returns the tasks of every garment on the order
func (o *Order) Tasks() []Task {
	var tasks []Task
	for _, g := range o.Garments {
		tasks = append(tasks, g.Tasks...)
	}
	return tasks
}

// HasOpenTasks reports whether any garment task is still pending or in progress.
func (o *Order) HasOpenTasks() bool {
	for _, t := range o.Tasks() {
		if t.Stage.IsOpen() {
			return true
		}
	}
	return false
}

// DepositPaid reports whether the intake deposit has been collected.
func (o *Order) DepositPaid() bool {
	return o.DepositPaidAt != nil || o.PaymentStatus == enum.PaymentStatusDepositPaid
}

// BalanceDueCents is what remains to be collected.
func (o *Order) BalanceDueCents() int64 {
	switch {
	case o.PaymentStatus.IsComplete():
		return 0
	case o.DepositPaid():
		if due := o.TotalCents - o.DepositCents; due > 0 {
			return due
		}
		return 0
	default:
		return o.TotalCents
	}
}
