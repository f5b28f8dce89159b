package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/entity"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/enum"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/integration"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/repository"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/apperror"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/logger"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/money"
)

// PaymentService requests payment links and records provider payment events
type PaymentService struct {
	orderRepo      repository.OrderRepository
	eventRepo      repository.EventLogRepository
	contacts       ContactSyncer
	crm            CRMGateway
	depositPercent decimal.Decimal
	now            func() time.Time
}

// NewPaymentService creates a new payment service. crm may be nil.
func NewPaymentService(
	orderRepo repository.OrderRepository,
	eventRepo repository.EventLogRepository,
	contacts ContactSyncer,
	crm CRMGateway,
	depositPercent decimal.Decimal,
) *PaymentService {
	return &PaymentService{
		orderRepo:      orderRepo,
		eventRepo:      eventRepo,
		contacts:       contacts,
		crm:            crm,
		depositPercent: depositPercent,
		now:            time.Now,
	}
}

// SelectCheckoutType picks what a ready-for-pickup link collects: the balance
// of a custom order whose deposit was paid, otherwise the full amount.
// Deposit links are only requested at intake.
func SelectCheckoutType(order *entity.Order) enum.CheckoutType {
	if order.Type == enum.OrderTypeCustom && order.DepositPaid() {
		return enum.CheckoutTypeBalance
	}
	return enum.CheckoutTypeFull
}

// DepositFor returns the deposit asked for a custom order of the given total.
func DepositFor(orderType enum.OrderType, totalCents int64, percent decimal.Decimal) int64 {
	if orderType != enum.OrderTypeCustom {
		return 0
	}
	return money.PercentOf(totalCents, percent)
}

// CheckoutAmount returns the amount a checkout of the given type collects
func (s *PaymentService) CheckoutAmount(order *entity.Order, checkoutType enum.CheckoutType) (int64, error) {
	if order.PaymentStatus.IsComplete() {
		return 0, apperror.NewConflictError("order is already paid")
	}

	var amount int64
	switch checkoutType {
	case enum.CheckoutTypeDeposit:
		if order.DepositPaid() {
			return 0, apperror.NewConflictError("deposit is already paid")
		}
		amount = order.DepositCents
		if amount == 0 {
			amount = DepositFor(order.Type, order.TotalCents, s.depositPercent)
		}
	case enum.CheckoutTypeBalance:
		amount = order.BalanceDueCents()
	case enum.CheckoutTypeFull:
		amount = order.TotalCents
	default:
		return 0, apperror.NewBadRequestError(fmt.Sprintf("unknown checkout type %q", checkoutType))
	}

	if amount <= 0 {
		return 0, apperror.NewConflictError("nothing to collect for this checkout type")
	}
	return amount, nil
}

// RequestCheckout creates a hosted payment page for the order
func (s *PaymentService) RequestCheckout(ctx context.Context, order *entity.Order, checkoutType enum.CheckoutType) (*integration.Checkout, error) {
	if s.crm == nil || s.contacts == nil {
		return nil, ErrCRMNotConfigured
	}

	amount, err := s.CheckoutAmount(order, checkoutType)
	if err != nil {
		return nil, err
	}

	contactID, err := s.contacts.EnsureCRMContact(ctx, order.Client)
	if err != nil {
		return nil, fmt.Errorf("resolve crm contact: %w", err)
	}

	checkout, err := s.crm.CreateCheckout(ctx, integration.CheckoutRequest{
		ContactID:   contactID,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Type:        checkoutType,
		AmountCents: amount,
		Description: fmt.Sprintf("Order #%d (%s)", order.OrderNumber, checkoutType),
	})
	if err != nil {
		return nil, err
	}
	checkout.ContactID = contactID
	if checkout.Type == "" {
		checkout.Type = checkoutType
	}
	if checkout.AmountCents == 0 {
		checkout.AmountCents = amount
	}
	return checkout, nil
}

// CreateCheckoutForOrder is the staff-initiated payment link request. The
// link is also texted to the client when sendSMS is set.
func (s *PaymentService) CreateCheckoutForOrder(ctx context.Context, orderID uuid.UUID, checkoutType enum.CheckoutType, sendSMS bool) (*integration.Checkout, error) {
	if !checkoutType.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "type", Message: "must be one of deposit, balance, full"},
		})
	}

	order, err := s.orderRepo.GetWithDetails(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.Status == enum.OrderStatusArchived {
		return nil, apperror.NewConflictError("cannot request payment for an archived order")
	}

	checkout, err := s.RequestCheckout(ctx, order, checkoutType)
	if err != nil {
		if apperror.IsAppError(err) {
			return nil, err
		}
		logger.FromCtx(ctx).Error("checkout request failed", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, apperror.NewAppError(502, "Payment provider is unavailable")
	}

	if sendSMS {
		message := readyWithPaymentMessage(order.Client, order, checkout)
		if checkoutType == enum.CheckoutTypeDeposit {
			message = depositRequestMessage(order.Client, order, checkout)
		}
		if err := s.crm.SendSMS(ctx, checkout.ContactID, message); err != nil {
			logger.FromCtx(ctx).Warn("payment link sms failed", zap.String("order_id", orderID.String()), zap.Error(err))
		}
	}

	s.audit(ctx, order.ID, "checkout_requested", map[string]interface{}{
		"type":         string(checkoutType),
		"amount_cents": checkout.AmountCents,
		"checkout_id":  checkout.ID,
	})

	return checkout, nil
}

// PaymentEvent is a normalised provider notification
type PaymentEvent struct {
	OrderID     uuid.UUID
	Type        enum.CheckoutType
	AmountCents int64
	ExternalID  string
	PaidAt      time.Time
}

// ApplyPaymentEvent records a completed payment on the order. Replays of an
// already applied event leave the order unchanged.
func (s *PaymentService) ApplyPaymentEvent(ctx context.Context, event PaymentEvent) (*entity.Order, error) {
	if !event.Type.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "type", Message: "must be one of deposit, balance, full"},
		})
	}

	order, err := s.orderRepo.GetByID(ctx, event.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	paidAt := event.PaidAt
	if paidAt.IsZero() {
		paidAt = s.now()
	}

	var (
		status        enum.PaymentStatus
		depositPaidAt *time.Time
		fullyPaidAt   *time.Time
	)
	switch event.Type {
	case enum.CheckoutTypeDeposit:
		if order.DepositPaid() || order.PaymentStatus.IsComplete() {
			return order, nil
		}
		status = enum.PaymentStatusDepositPaid
		depositPaidAt = &paidAt
	default:
		if order.PaymentStatus.IsComplete() {
			return order, nil
		}
		status = enum.PaymentStatusPaid
		fullyPaidAt = &paidAt
	}

	if err := s.orderRepo.UpdatePayment(ctx, order.ID, status, depositPaidAt, fullyPaidAt); err != nil {
		return nil, err
	}
	order.PaymentStatus = status
	if depositPaidAt != nil {
		order.DepositPaidAt = depositPaidAt
	}
	if fullyPaidAt != nil {
		order.PaidAt = fullyPaidAt
	}

	s.audit(ctx, order.ID, "payment_received", map[string]interface{}{
		"type":         string(event.Type),
		"amount_cents": event.AmountCents,
		"external_id":  event.ExternalID,
		"status":       status.String(),
	})

	return order, nil
}

func (s *PaymentService) audit(ctx context.Context, orderID uuid.UUID, action string, details map[string]interface{}) {
	if s.eventRepo == nil {
		return
	}
	err := s.eventRepo.Create(ctx, &entity.EventLog{
		CorrelationID: logger.RequestIDFrom(ctx),
		Entity:        "order",
		EntityID:      orderID.String(),
		Action:        action,
		Details:       details,
	})
	if err != nil {
		logger.FromCtx(ctx).Warn("audit log write failed", zap.String("action", action), zap.Error(err))
	}
}
