package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/entity"
	domainRepo "github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/repository"
)

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) domainRepo.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	var task entity.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &task, err
}

func (r *taskRepository) ListByGarmentIDs(ctx context.Context, garmentIDs []uuid.UUID) ([]entity.Task, error) {
	var tasks []entity.Task
	if len(garmentIDs) == 0 {
		return tasks, nil
	}
	err := r.db.WithContext(ctx).
		Where("garment_id IN ?", garmentIDs).
		Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) CreateBatch(ctx context.Context, tasks []entity.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&tasks).Error
}

func (r *taskRepository) Update(ctx context.Context, task *entity.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new service catalog repository
func NewCatalogRepository(db *gorm.DB) domainRepo.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.CatalogService, error) {
	var services []entity.CatalogService
	if len(ids) == 0 {
		return services, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&services).Error
	return services, err
}

func (r *catalogRepository) ListActive(ctx context.Context) ([]entity.CatalogService, error) {
	var services []entity.CatalogService
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("category ASC, name ASC").
		Find(&services).Error
	return services, err
}

type eventLogRepository struct {
	db *gorm.DB
}

// NewEventLogRepository creates a new audit log repository
func NewEventLogRepository(db *gorm.DB) domainRepo.EventLogRepository {
	return &eventLogRepository{db: db}
}

func (r *eventLogRepository) Create(ctx context.Context, event *entity.EventLog) error {
	return r.db.WithContext(ctx).Create(event).Error
}
