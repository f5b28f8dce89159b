package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/entity"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/enum"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/repository"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/apperror"
)

// TaskService handles garment tasks and staff time tracking
type TaskService struct {
	taskRepo repository.TaskRepository
	now      func() time.Time
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		now:      time.Now,
	}
}

// EnsureTasks creates a pending task for every garment of the order that has
// none yet and returns how many were created.
func (s *TaskService) EnsureTasks(ctx context.Context, order *entity.Order) (int, error) {
	if len(order.Garments) == 0 {
		return 0, nil
	}

	garmentIDs := make([]uuid.UUID, len(order.Garments))
	for i, g := range order.Garments {
		garmentIDs[i] = g.ID
	}

	existing, err := s.taskRepo.ListByGarmentIDs(ctx, garmentIDs)
	if err != nil {
		return 0, err
	}
	covered := make(map[uuid.UUID]bool, len(existing))
	for _, t := range existing {
		covered[t.GarmentID] = true
	}

	var missing []entity.Task
	for _, id := range garmentIDs {
		if covered[id] {
			continue
		}
		covered[id] = true
		missing = append(missing, entity.Task{GarmentID: id, Stage: enum.TaskStagePending})
	}
	if len(missing) == 0 {
		return 0, nil
	}

	if err := s.taskRepo.CreateBatch(ctx, missing); err != nil {
		return 0, err
	}
	return len(missing), nil
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperror.NewNotFoundError("Task")
	}
	return task, nil
}

// StartTimer starts the staff member's timer on the task
func (s *TaskService) StartTimer(ctx context.Context, id, staffID uuid.UUID) (*entity.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Stage == enum.TaskStageDone {
		return nil, apperror.NewConflictError("task is already done")
	}
	if task.IsRunning() {
		return nil, apperror.NewConflictError("timer is already running")
	}

	now := s.now()
	task.StartedAt = &now
	task.Stage = enum.TaskStageWorking
	if staffID != uuid.Nil {
		task.AssigneeID = &staffID
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// StopTimer stops the running timer and adds the elapsed minutes
func (s *TaskService) StopTimer(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if !task.IsRunning() {
		return nil, apperror.NewConflictError("timer is not running")
	}

	task.ActualMinutes += task.ElapsedMinutes(s.now())
	task.StartedAt = nil

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// AddTime records a manual time entry
func (s *TaskService) AddTime(ctx context.Context, id uuid.UUID, minutes int) (*entity.Task, error) {
	if minutes <= 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "minutes", Message: "must be greater than 0"},
		})
	}

	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	task.ActualMinutes += minutes

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// SetStage moves a task. Completing a task stops its timer.
func (s *TaskService) SetStage(ctx context.Context, id uuid.UUID, stage enum.TaskStage) (*entity.Task, error) {
	if !stage.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "stage", Message: "must be one of pending, working, done"},
		})
	}

	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if stage == enum.TaskStageDone {
		if task.IsRunning() {
			task.ActualMinutes += task.ElapsedMinutes(now)
			task.StartedAt = nil
		}
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}
	task.Stage = stage

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}
