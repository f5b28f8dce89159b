package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/entity"
)

// TaskRepository defines the interface for garment task operations
type TaskRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Task, error)
	ListByGarmentIDs(ctx context.Context, garmentIDs []uuid.UUID) ([]entity.Task, error)
	CreateBatch(ctx context.Context, tasks []entity.Task) error
	Update(ctx context.Context, task *entity.Task) error
}

// CatalogRepository defines the interface for the service price list
type CatalogRepository interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.CatalogService, error)
	ListActive(ctx context.Context) ([]entity.CatalogService, error)
}

// EventLogRepository is the audit sink
type EventLogRepository interface {
	Create(ctx context.Context, event *entity.EventLog) error
}
