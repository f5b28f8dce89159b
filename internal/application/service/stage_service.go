package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/entity"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/enum"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/repository"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/stage"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/apperror"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/logger"
)

// minRecordedWorkSeconds is the amount of labour an order must exceed before
// it can be marked done or ready.
const minRecordedWorkSeconds = 1

// StageService moves orders through the production pipeline
type StageService struct {
	orderRepo repository.OrderRepository
	eventRepo repository.EventLogRepository
	tasks     TaskProvisioner
	payments  CheckoutRequester
	contacts  ContactSyncer
	crm       CRMGateway
	webhook   StatusWebhook
	readyTag  string
	now       func() time.Time
}

// StageServiceDeps groups the collaborators of the stage workflow. CRM and
// Webhook may be nil when the integration is not configured.
type StageServiceDeps struct {
	OrderRepo repository.OrderRepository
	EventRepo repository.EventLogRepository
	Tasks     TaskProvisioner
	Payments  CheckoutRequester
	Contacts  ContactSyncer
	CRM       CRMGateway
	Webhook   StatusWebhook
	ReadyTag  string
}

// NewStageService creates a new stage service
func NewStageService(deps StageServiceDeps) *StageService {
	return &StageService{
		orderRepo: deps.OrderRepo,
		eventRepo: deps.EventRepo,
		tasks:     deps.Tasks,
		payments:  deps.Payments,
		contacts:  deps.Contacts,
		crm:       deps.CRM,
		webhook:   deps.Webhook,
		readyTag:  deps.ReadyTag,
		now:       time.Now,
	}
}

// TransitionOptions carries the caller's choices for a stage change
type TransitionOptions struct {
	SendNotification bool
	Notes            string
	Actor            string
}

// TransitionResult is returned once the new status is committed
type TransitionResult struct {
	OrderID          uuid.UUID        `json:"orderId"`
	Status           enum.OrderStatus `json:"status"`
	AllTasksComplete bool             `json:"allTasksComplete"`
	Message          string           `json:"message"`
}

// postCommitAction is one best-effort side effect run after the status write.
// A failing or panicking action is logged and never affects the others.
type postCommitAction struct {
	name    string
	applies bool
	run     func(ctx context.Context) error
}

// TransitionOrderStage validates and commits a status change, then fans out
// the side effects. Lookup, legality and the work-time gate fail before
// anything is written; once the status is committed the call succeeds.
func (s *StageService) TransitionOrderStage(ctx context.Context, orderID uuid.UUID, target enum.OrderStatus, opts TransitionOptions) (*TransitionResult, error) {
	correlationID := logger.RequestIDFrom(ctx)
	if correlationID == "" {
		correlationID = uuid.NewString()
		ctx = logger.WithRequestID(ctx, correlationID)
	}
	log := logger.FromCtx(ctx).With(zap.String("order_id", orderID.String()), zap.String("target", target.String()))

	order, err := s.orderRepo.GetWithDetails(ctx, orderID)
	if err != nil {
		return nil, apperror.NewInternalServerError(fmt.Errorf("load order: %w", err)).WithCorrelationID(correlationID)
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order").WithCorrelationID(correlationID)
	}

	if !stage.IsValid(target) {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "stage", Message: fmt.Sprintf("unknown stage %q", target)},
		}).WithCorrelationID(correlationID)
	}

	from := order.Status
	if !stage.CanTransition(from, target) {
		return nil, apperror.NewConflictError(fmt.Sprintf(
			"invalid transition from %s to %s; allowed transitions: %s", from, target, stage.FormatAllowed(from),
		)).WithCorrelationID(correlationID)
	}

	if stage.RequiresRecordedWork(target) && order.RecordedWorkSeconds() <= minRecordedWorkSeconds {
		return nil, apperror.NewConflictError(fmt.Sprintf(
			"cannot mark as %s without recorded work time", target,
		)).WithCorrelationID(correlationID)
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, order.ID, from, target)
	if err != nil {
		return nil, apperror.NewInternalServerError(fmt.Errorf("update order status: %w", err)).WithCorrelationID(correlationID)
	}
	if !updated {
		return nil, apperror.NewConflictError(
			"order status was changed by another request; reload the order and try again",
		).WithCorrelationID(correlationID)
	}
	order.Status = target

	log.Info("order stage changed", zap.String("from", from.String()))

	allTasksComplete := true
	if stage.ReportsTaskCompletion(target) {
		allTasksComplete = !order.HasOpenTasks()
	}

	s.runPostCommit(ctx, log, []postCommitAction{
		{
			name:    "provision_tasks",
			applies: stage.TriggersTaskCreation(target) && s.tasks != nil,
			run: func(ctx context.Context) error {
				created, err := s.tasks.EnsureTasks(ctx, order)
				if err == nil && created > 0 {
					log.Info("garment tasks created", zap.Int("count", created))
				}
				return err
			},
		},
		{
			name:    "notify_client",
			applies: opts.SendNotification && stage.NotifiesClient(target) && s.crm != nil && order.Client != nil && order.Client.HasCRMContact(),
			run: func(ctx context.Context) error {
				return s.updateReadyQueue(ctx, order)
			},
		},
		{
			name:    "emit_status_webhook",
			applies: stage.EmitsStatusWebhook(target) && s.webhook != nil,
			run: func(ctx context.Context) error {
				return s.webhook.OrderStatusChanged(ctx, buildOrderStatusPayload(order, from, s.now()))
			},
		},
		{
			name:    "payment_link",
			applies: target == enum.OrderStatusReady && opts.SendNotification,
			run: func(ctx context.Context) error {
				return s.sendPaymentRequest(ctx, log, order)
			},
		},
		{
			name:    "audit_log",
			applies: s.eventRepo != nil,
			run: func(ctx context.Context) error {
				return s.eventRepo.Create(ctx, &entity.EventLog{
					CorrelationID: correlationID,
					Entity:        "order",
					EntityID:      order.ID.String(),
					Action:        "stage_changed",
					Actor:         opts.Actor,
					Details: map[string]interface{}{
						"from":             from.String(),
						"to":               target.String(),
						"allTasksComplete": allTasksComplete,
						"sendNotification": opts.SendNotification,
						"notes":            opts.Notes,
						"orderNumber":      order.OrderNumber,
					},
				})
			},
		},
	})

	return &TransitionResult{
		OrderID:          order.ID,
		Status:           target,
		AllTasksComplete: allTasksComplete,
		Message:          transitionMessage(order.OrderNumber, target, allTasksComplete),
	}, nil
}

func (s *StageService) runPostCommit(ctx context.Context, log *zap.Logger, actions []postCommitAction) {
	for _, action := range actions {
		if !action.applies {
			continue
		}
		s.runAction(ctx, log, action)
	}
}

func (s *StageService) runAction(ctx context.Context, log *zap.Logger, action postCommitAction) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("post-commit action panicked", zap.String("action", action.name), zap.Any("panic", r))
		}
	}()

	if err := action.run(ctx); err != nil {
		log.Warn("post-commit action failed", zap.String("action", action.name), zap.Error(err))
	}
}

// updateReadyQueue tags the contact when the order becomes ready and untags
// it once delivered. The CRM automation sends the SMS off the tag.
func (s *StageService) updateReadyQueue(ctx context.Context, order *entity.Order) error {
	contactID := *order.Client.CRMContactID
	if order.Status == enum.OrderStatusDelivered {
		return s.crm.RemoveTag(ctx, contactID, s.readyTag)
	}
	return s.crm.AddTag(ctx, contactID, s.readyTag)
}

// sendPaymentRequest texts the client a payment link, or a pickup notice when
// nothing remains to be paid.
func (s *StageService) sendPaymentRequest(ctx context.Context, log *zap.Logger, order *entity.Order) error {
	if s.crm == nil {
		return ErrCRMNotConfigured
	}

	if order.PaymentStatus.IsComplete() {
		if s.contacts == nil {
			return ErrCRMNotConfigured
		}
		contactID, err := s.contacts.EnsureCRMContact(ctx, order.Client)
		if err != nil {
			return fmt.Errorf("resolve crm contact: %w", err)
		}
		return s.crm.SendSMS(ctx, contactID, pickupOnlyMessage(order.Client, order))
	}

	if s.payments == nil {
		return ErrCRMNotConfigured
	}
	checkout, err := s.payments.RequestCheckout(ctx, order, SelectCheckoutType(order))
	if err != nil {
		return fmt.Errorf("request checkout: %w", err)
	}
	log.Info("payment link created", zap.String("checkout_type", string(checkout.Type)), zap.Int64("amount_cents", checkout.AmountCents))

	return s.crm.SendSMS(ctx, checkout.ContactID, readyWithPaymentMessage(order.Client, order, checkout))
}

func transitionMessage(orderNumber int64, target enum.OrderStatus, allTasksComplete bool) string {
	msg := fmt.Sprintf("Order #%d moved to %s", orderNumber, target)
	if !allTasksComplete {
		msg += " (some garment tasks are still open)"
	}
	return msg
}
