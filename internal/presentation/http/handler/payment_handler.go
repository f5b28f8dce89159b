package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/application/service"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/entity"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/enum"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/presentation/http/dto/request"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/presentation/http/dto/response"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/logger"
)

// PaymentEventCompleted is the only provider event that changes an order
const PaymentEventCompleted = "payment.completed"

// PaymentRecorder is implemented by service.PaymentService
type PaymentRecorder interface {
	ApplyPaymentEvent(ctx context.Context, event service.PaymentEvent) (*entity.Order, error)
}

// PaymentHandler receives provider payment callbacks
type PaymentHandler struct {
	paymentService PaymentRecorder
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService PaymentRecorder) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// parseExternalID splits the checkout reference "<order id>:<type>"
func parseExternalID(externalID string) (uuid.UUID, enum.CheckoutType, bool) {
	rawID, rawType, found := strings.Cut(externalID, ":")
	if !found {
		return uuid.Nil, "", false
	}
	orderID, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, "", false
	}
	checkoutType := enum.CheckoutType(rawType)
	if !checkoutType.IsValid() {
		return uuid.Nil, "", false
	}
	return orderID, checkoutType, true
}

// Webhook handles POST /webhooks/payments
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var req request.PaymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	log := logger.FromCtx(c.Request.Context()).With(
		zap.String("event", req.Event),
		zap.String("external_id", req.ExternalID),
	)

	if req.Event != PaymentEventCompleted {
		log.Info("payment event ignored")
		response.OK(c, "Event ignored", nil)
		return
	}

	orderID, checkoutType, ok := parseExternalID(req.ExternalID)
	if !ok {
		response.BadRequest(c, "Invalid external_id")
		return
	}
	if req.Type != "" {
		checkoutType = req.Type
	}

	event := service.PaymentEvent{
		OrderID:     orderID,
		Type:        checkoutType,
		AmountCents: req.AmountCents,
		ExternalID:  req.PaymentID,
	}
	if event.ExternalID == "" {
		event.ExternalID = req.ExternalID
	}
	if req.PaidAt != nil {
		event.PaidAt = req.PaidAt.UTC()
	}

	order, err := h.paymentService.ApplyPaymentEvent(c.Request.Context(), event)
	if err != nil {
		response.Error(c, err)
		return
	}

	log.Info("payment recorded", zap.String("order_id", order.ID.String()), zap.String("payment_status", order.PaymentStatus.String()))
	response.OK(c, "Payment recorded", gin.H{
		"order_id":       order.ID,
		"payment_status": order.PaymentStatus,
	})
}
