package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/application/service"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/entity"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/presentation/http/dto/request"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/presentation/http/dto/response"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/pagination"
)

// ClientManager is implemented by service.ClientService
type ClientManager interface {
	FindOrCreate(ctx context.Context, input service.ClientInput) (*entity.Client, bool, error)
	GetClient(ctx context.Context, id uuid.UUID) (*entity.Client, error)
	ListClients(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Client], error)
}

// ClientHandler handles client intake and lookup
type ClientHandler struct {
	clientService ClientManager
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService ClientManager) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

func toClientInput(req *request.ClientRequest) *service.ClientInput {
	return &service.ClientInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		Language:  req.Language,
		Notes:     req.Notes,
	}
}

// Create registers a client, returning the existing one on a phone or email match
func (h *ClientHandler) Create(c *gin.Context) {
	var req request.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	client, created, err := h.clientService.FindOrCreate(c.Request.Context(), *toClientInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	if !created {
		response.OK(c, "Client already exists", client)
		return
	}
	response.Created(c, "Client created successfully", client)
}

// Get handles getting a single client
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid client ID")
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client retrieved successfully", client)
}

// List handles client search
func (h *ClientHandler) List(c *gin.Context) {
	var req request.ClientFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err, "Invalid query parameters")
		return
	}

	result, err := h.clientService.ListClients(c.Request.Context(), pageParams(req.Page, req.PerPage), req.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Clients retrieved successfully", result)
}
