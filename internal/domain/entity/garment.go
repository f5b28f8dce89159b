package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/pricing"
)

// Garment is one piece of clothing dropped off with an order
type Garment struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	Type        string         `gorm:"size:50;not null" json:"type"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	LabelCode   string         `gorm:"size:32;index" json:"label_code"`
	Notes       string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Services []GarmentService `gorm:"foreignKey:GarmentID" json:"services,omitempty"`
	Tasks    []Task           `gorm:"foreignKey:GarmentID" json:"tasks,omitempty"`
}

// BeforeCreate generates a UUID before creating a new garment
func (g *Garment) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Garment model
func (Garment) TableName() string {
	return "garments"
}

// GarmentService is a priced catalog service applied to a garment
type GarmentService struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	GarmentID            uuid.UUID  `gorm:"type:uuid;not null;index" json:"garment_id"`
	ServiceID            uuid.UUID  `gorm:"type:uuid;not null;index" json:"service_id"`
	Quantity             int        `gorm:"not null;default:1" json:"quantity"`
	BasePriceCents       int64      `gorm:"not null" json:"base_price_cents"`
	CustomPriceCents     *int64     `json:"custom_price_cents,omitempty"`
	FinalPriceCents      *int64     `json:"final_price_cents,omitempty"`
	AssignedSeamstressID *uuid.UUID `gorm:"type:uuid;index" json:"assigned_seamstress_id,omitempty"`
	Notes                string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`

	Service *CatalogService `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

// BeforeCreate generates a UUID before creating a new garment service
func (gs *GarmentService) BeforeCreate(tx *gorm.DB) error {
	if gs.ID == uuid.Nil {
		gs.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the GarmentService model
func (GarmentService) TableName() string {
	return "garment_services"
}

// PricingItem converts the line into calculator input
func (gs *GarmentService) PricingItem() pricing.Item {
	return pricing.Item{
		GarmentID:        gs.GarmentID.String(),
		ServiceID:        gs.ServiceID.String(),
		Quantity:         gs.Quantity,
		BasePriceCents:   gs.BasePriceCents,
		CustomPriceCents: gs.CustomPriceCents,
		FinalPriceCents:  gs.FinalPriceCents,
	}
}

// ServiceName returns the catalog name when the relation is loaded
func (gs *GarmentService) ServiceName() string {
	if gs.Service == nil {
		return ""
	}
	return gs.Service.Name
}
