package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/entity"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/enum"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/presentation/http/dto/request"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/presentation/http/dto/response"
)

// TaskManager is implemented by service.TaskService
type TaskManager interface {
	GetTask(ctx context.Context, id uuid.UUID) (*entity.Task, error)
	StartTimer(ctx context.Context, id, staffID uuid.UUID) (*entity.Task, error)
	StopTimer(ctx context.Context, id uuid.UUID) (*entity.Task, error)
	AddTime(ctx context.Context, id uuid.UUID, minutes int) (*entity.Task, error)
	SetStage(ctx context.Context, id uuid.UUID, stage enum.TaskStage) (*entity.Task, error)
}

// TaskHandler handles the workshop timers
type TaskHandler struct {
	taskService TaskManager
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService TaskManager) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// Get handles getting a single task
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Task retrieved successfully", task)
}

// Start starts the timer for the authenticated staff member
func (h *TaskHandler) Start(c *gin.Context) {
	staffID := GetStaffID(c)
	if staffID == nil {
		response.Unauthorized(c, "Staff not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.StartTimer(c.Request.Context(), id, *staffID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Timer started", task)
}

// Stop stops the timer and adds the elapsed minutes
func (h *TaskHandler) Stop(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.StopTimer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Timer stopped", task)
}

// AddTime records minutes worked without the timer
func (h *TaskHandler) AddTime(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid task ID")
		return
	}

	var req request.TaskTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	task, err := h.taskService.AddTime(c.Request.Context(), id, req.Minutes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Time recorded", task)
}

// SetStage moves a task on the workshop board
func (h *TaskHandler) SetStage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid task ID")
		return
	}

	var req request.TaskStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}
	if !req.Stage.IsValid() {
		response.BadRequest(c, "Invalid task stage")
		return
	}

	task, err := h.taskService.SetStage(c.Request.Context(), id, req.Stage)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Task updated", task)
}
