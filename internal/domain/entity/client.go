package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a shop customer
type Client struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	FirstName    string         `gorm:"size:100;not null" json:"first_name"`
	LastName     string         `gorm:"size:100" json:"last_name"`
	Phone        *string        `gorm:"size:32;index" json:"phone,omitempty"`
	Email        *string        `gorm:"size:255;index" json:"email,omitempty"`
	Language     string         `gorm:"size:2;default:'fr'" json:"language"`
	CRMContactID *string        `gorm:"size:100;column:crm_contact_id" json:"crm_contact_id,omitempty"`
	Notes        string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Orders []Order `gorm:"foreignKey:ClientID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new client
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Client model
func (Client) TableName() string {
	return "clients"
}

func (c *Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// PrefersEnglish reports whether messages should be sent in English rather than French.
func (c *Client) PrefersEnglish() bool {
	return c.Language == "en"
}

// HasCRMContact reports whether the client is linked to the external CRM.
func (c *Client) HasCRMContact() bool {
	return c.CRMContactID != nil && *c.CRMContactID != ""
}
