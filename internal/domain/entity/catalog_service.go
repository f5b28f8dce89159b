package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogService is an entry of the shop's price list (hem, zipper, taper...)
type CatalogService struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Code             string    `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name             string    `gorm:"size:255;not null" json:"name"`
	Category         string    `gorm:"size:50;index" json:"category"`
	BasePriceCents   int64     `gorm:"not null" json:"base_price_cents"`
	EstimatedMinutes int       `gorm:"default:0" json:"estimated_minutes"`
	Active           bool      `gorm:"default:true" json:"active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new catalog entry
func (s *CatalogService) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CatalogService model
func (CatalogService) TableName() string {
	return "services"
}
