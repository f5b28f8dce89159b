package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/application/service"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/enum"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/presentation/http/dto/request"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/presentation/http/dto/response"
)

// StageTransitioner is implemented by service.StageService
type StageTransitioner interface {
	TransitionOrderStage(ctx context.Context, orderID uuid.UUID, target enum.OrderStatus, opts service.TransitionOptions) (*service.TransitionResult, error)
}

// StageHandler handles production board stage changes
type StageHandler struct {
	stageService StageTransitioner
}

// NewStageHandler creates a new stage handler
func NewStageHandler(stageService StageTransitioner) *StageHandler {
	return &StageHandler{stageService: stageService}
}

// Transition handles POST /orders/:id/stage
func (h *StageHandler) Transition(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.StageTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	result, err := h.stageService.TransitionOrderStage(c.Request.Context(), id, req.Stage, service.TransitionOptions{
		SendNotification: req.SendNotification,
		Notes:            req.Notes,
		Actor:            actor(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result.Message, result)
}
