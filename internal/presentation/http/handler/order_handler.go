package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/application/service"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/entity"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/enum"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/integration"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/repository"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/presentation/http/dto/request"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/presentation/http/dto/response"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/pagination"
)

// OrderManager is implemented by service.OrderService
type OrderManager interface {
	CreateOrder(ctx context.Context, input *service.CreateOrderInput) (*entity.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error)
	UpdateServicePrice(ctx context.Context, orderID, garmentServiceID uuid.UUID, finalPriceCents *int64, actor string) (*entity.Order, error)
}

// CheckoutCreator is implemented by service.PaymentService
type CheckoutCreator interface {
	CreateCheckoutForOrder(ctx context.Context, orderID uuid.UUID, checkoutType enum.CheckoutType, sendSMS bool) (*integration.Checkout, error)
}

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService   OrderManager
	paymentService CheckoutCreator
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService OrderManager, paymentService CheckoutCreator) *OrderHandler {
	return &OrderHandler{orderService: orderService, paymentService: paymentService}
}

// List handles the production board listing
func (h *OrderHandler) List(c *gin.Context) {
	var req request.OrderFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err, "Invalid query parameters")
		return
	}

	params := &repository.OrderFilterParams{
		Pagination:      pageParams(req.Page, req.PerPage),
		Rush:            req.Rush,
		IncludeArchived: req.IncludeArchived,
	}

	if req.Status != "" {
		status := enum.OrderStatus(req.Status)
		params.Status = &status
	}

	if req.Type != "" {
		orderType := enum.OrderType(req.Type)
		if !orderType.IsValid() {
			response.BadRequest(c, "Invalid order type")
			return
		}
		params.Type = &orderType
	}

	if req.ClientID != "" {
		clientID, err := uuid.Parse(req.ClientID)
		if err != nil {
			response.BadRequest(c, "Invalid client ID")
			return
		}
		params.ClientID = &clientID
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Orders retrieved successfully", result)
}

// Create handles order intake
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	garments := make([]service.GarmentInput, len(req.Garments))
	for i, g := range req.Garments {
		lines := make([]service.ServiceLineInput, len(g.Services))
		for j, line := range g.Services {
			lines[j] = service.ServiceLineInput{
				ServiceID:        line.ServiceID,
				Quantity:         line.Quantity,
				CustomPriceCents: line.CustomPriceCents,
				Notes:            line.Notes,
			}
		}
		garments[i] = service.GarmentInput{
			Type:        g.Type,
			Description: g.Description,
			Notes:       g.Notes,
			Services:    lines,
		}
	}

	input := &service.CreateOrderInput{
		ClientID: req.ClientID,
		Type:     req.Type,
		Rush:     req.Rush,
		DueDate:  req.DueDate,
		Notes:    req.Notes,
		Garments: garments,
		Actor:    actor(c),
	}
	if req.Client != nil {
		input.Client = toClientInput(req.Client)
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// Get handles getting a single order
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// UpdateServicePrice handles a price correction on one service line
func (h *OrderHandler) UpdateServicePrice(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}
	serviceID, ok := parseIDParam(c, "serviceId")
	if !ok {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	var req request.UpdateServicePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	order, err := h.orderService.UpdateServicePrice(c.Request.Context(), id, serviceID, req.FinalPriceCents, actor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Price updated successfully", order)
}

// Checkout handles a staff request for a payment link
func (h *OrderHandler) Checkout(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	checkout, err := h.paymentService.CreateCheckoutForOrder(c.Request.Context(), id, req.Type, req.SendSMS)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment link created successfully", checkout)
}
