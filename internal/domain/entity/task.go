package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/enum"
)

// Task is the work unit for one garment
type Task struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	GarmentID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"garment_id"`
	Stage         enum.TaskStage `gorm:"size:20;not null;default:'pending'" json:"stage"`
	AssigneeID    *uuid.UUID     `gorm:"type:uuid;index" json:"assignee_id,omitempty"`
	ActualMinutes int            `gorm:"default:0" json:"actual_minutes"`
	StartedAt     *time.Time     `json:"started_at,omitempty"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new task
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Task model
func (Task) TableName() string {
	return "tasks"
}

// IsRunning reports whether a timer is active on the task
func (t *Task) IsRunning() bool {
	return t.StartedAt != nil
}

// ElapsedMinutes returns the running timer's duration rounded to the nearest
// minute, at least one.
func (t *Task) ElapsedMinutes(now time.Time) int {
	if t.StartedAt == nil {
		return 0
	}
	minutes := int(math.Round(now.Sub(*t.StartedAt).Minutes()))
	if minutes < 1 {
		return 1
	}
	return minutes
}
