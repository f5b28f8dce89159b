package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventLog is an append-only audit row
type EventLog struct {
	ID            uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	CorrelationID string                 `gorm:"size:64;index" json:"correlation_id"`
	Entity        string                 `gorm:"size:50;not null;index:idx_event_logs_entity" json:"entity"`
	EntityID      string                 `gorm:"size:64;not null;index:idx_event_logs_entity" json:"entity_id"`
	Action        string                 `gorm:"size:100;not null" json:"action"`
	Actor         string                 `gorm:"size:100" json:"actor,omitempty"`
	Details       map[string]interface{} `gorm:"serializer:json;type:jsonb" json:"details,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new event
func (e *EventLog) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the EventLog model
func (EventLog) TableName() string {
	return "event_logs"
}
