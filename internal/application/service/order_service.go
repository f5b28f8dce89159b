package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/entity"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/enum"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/pricing"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/repository"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/apperror"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/logger"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/pagination"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/utils"
)

// OrderService handles intake, pricing and order queries
type OrderService struct {
	orderRepo      repository.OrderRepository
	catalogRepo    repository.CatalogRepository
	eventRepo      repository.EventLogRepository
	clients        *ClientService
	pricing        pricing.Config
	depositPercent decimal.Decimal
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	catalogRepo repository.CatalogRepository,
	eventRepo repository.EventLogRepository,
	clients *ClientService,
	pricingCfg pricing.Config,
	depositPercent decimal.Decimal,
) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		catalogRepo:    catalogRepo,
		eventRepo:      eventRepo,
		clients:        clients,
		pricing:        pricingCfg,
		depositPercent: depositPercent,
	}
}

// ServiceLineInput is one catalog service applied to a garment
type ServiceLineInput struct {
	ServiceID        uuid.UUID
	Quantity         int
	CustomPriceCents *int64
	Notes            string
}

// GarmentInput is one garment dropped off at intake
type GarmentInput struct {
	Type        string
	Description string
	Notes       string
	Services    []ServiceLineInput
}

// CreateOrderInput represents the intake input. Either ClientID or Client is set.
type CreateOrderInput struct {
	ClientID *uuid.UUID
	Client   *ClientInput
	Type     enum.OrderType
	Rush     bool
	DueDate  *time.Time
	Notes    string
	Garments []GarmentInput
	Actor    string
}

func (in *CreateOrderInput) validate() error {
	var errs []apperror.FieldError
	if in.Type == "" {
		in.Type = enum.OrderTypeAlteration
	}
	if !in.Type.IsValid() {
		errs = append(errs, apperror.FieldError{Field: "type", Message: "must be alteration or custom"})
	}
	if in.ClientID == nil && in.Client == nil {
		errs = append(errs, apperror.FieldError{Field: "client", Message: "client_id or client is required"})
	}
	if len(in.Garments) == 0 {
		errs = append(errs, apperror.FieldError{Field: "garments", Message: "at least one garment is required"})
	}
	for i, g := range in.Garments {
		prefix := fmt.Sprintf("garments[%d]", i)
		if strings.TrimSpace(g.Type) == "" {
			errs = append(errs, apperror.FieldError{Field: prefix + ".type", Message: "is required"})
		}
		if len(g.Services) == 0 {
			errs = append(errs, apperror.FieldError{Field: prefix + ".services", Message: "at least one service is required"})
		}
		for j, line := range g.Services {
			field := fmt.Sprintf("%s.services[%d]", prefix, j)
			if line.ServiceID == uuid.Nil {
				errs = append(errs, apperror.FieldError{Field: field + ".service_id", Message: "is required"})
			}
			if line.Quantity < 1 {
				errs = append(errs, apperror.FieldError{Field: field + ".quantity", Message: "must be at least 1"})
			}
			if line.CustomPriceCents != nil && *line.CustomPriceCents < 0 {
				errs = append(errs, apperror.FieldError{Field: field + ".custom_price_cents", Message: "must not be negative"})
			}
		}
	}
	if len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	return nil
}

// CreateOrder registers a new order with its garments, priced from the catalog
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	client, err := s.resolveClient(ctx, input)
	if err != nil {
		return nil, err
	}

	catalog, err := s.loadCatalog(ctx, input.Garments)
	if err != nil {
		return nil, err
	}

	number, err := s.orderRepo.NextOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		OrderNumber:   number,
		ClientID:      client.ID,
		Type:          input.Type,
		Status:        enum.OrderStatusPending,
		Rush:          input.Rush,
		DueDate:       input.DueDate,
		PaymentStatus: enum.PaymentStatusUnpaid,
		Notes:         input.Notes,
		Garments:      make([]entity.Garment, 0, len(input.Garments)),
	}

	for i, g := range input.Garments {
		garment := entity.Garment{
			ID:          uuid.New(),
			Type:        strings.TrimSpace(g.Type),
			Description: g.Description,
			Notes:       g.Notes,
			LabelCode:   utils.GenerateLabelCode(number, i+1),
			Services:    make([]entity.GarmentService, 0, len(g.Services)),
		}
		for _, line := range g.Services {
			svc := catalog[line.ServiceID]
			garment.Services = append(garment.Services, entity.GarmentService{
				GarmentID:        garment.ID,
				ServiceID:        svc.ID,
				Quantity:         line.Quantity,
				BasePriceCents:   svc.BasePriceCents,
				CustomPriceCents: line.CustomPriceCents,
				Notes:            line.Notes,
			})
		}
		order.Garments = append(order.Garments, garment)
	}

	s.reprice(order)

	if err := s.orderRepo.Create(ctx, order); err != nil {
		if errors.Is(err, repository.ErrDuplicateOrderNumber) {
			return nil, apperror.NewConflictError("order number was taken by a concurrent intake; retry the request")
		}
		return nil, err
	}
	order.Client = client

	s.audit(ctx, order.ID, "created", input.Actor, map[string]interface{}{
		"orderNumber": order.OrderNumber,
		"type":        order.Type.String(),
		"rush":        order.Rush,
		"totalCents":  order.TotalCents,
	})

	return order, nil
}

func (s *OrderService) resolveClient(ctx context.Context, input *CreateOrderInput) (*entity.Client, error) {
	if input.ClientID != nil {
		return s.clients.GetClient(ctx, *input.ClientID)
	}
	client, _, err := s.clients.FindOrCreate(ctx, *input.Client)
	return client, err
}

// loadCatalog fetches every referenced service once and rejects unknown or retired entries.
func (s *OrderService) loadCatalog(ctx context.Context, garments []GarmentInput) (map[uuid.UUID]entity.CatalogService, error) {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, g := range garments {
		for _, line := range g.Services {
			if !seen[line.ServiceID] {
				seen[line.ServiceID] = true
				ids = append(ids, line.ServiceID)
			}
		}
	}

	services, err := s.catalogRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	catalog := make(map[uuid.UUID]entity.CatalogService, len(services))
	for _, svc := range services {
		catalog[svc.ID] = svc
	}

	var errs []apperror.FieldError
	for _, id := range ids {
		svc, ok := catalog[id]
		switch {
		case !ok:
			errs = append(errs, apperror.FieldError{Field: "service_id", Message: fmt.Sprintf("service %s does not exist", id)})
		case !svc.Active:
			errs = append(errs, apperror.FieldError{Field: "service_id", Message: fmt.Sprintf("service %s is no longer offered", svc.Code)})
		}
	}
	if len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}
	return catalog, nil
}

// reprice recomputes the monetary fields from the lines. The deposit of a
// custom order follows the total until it has been paid.
func (s *OrderService) reprice(order *entity.Order) pricing.Calculation {
	calc := pricing.ComputeOrderPricing(order.PricingItems(), order.Rush, s.pricing)
	order.ApplyPricing(calc)
	if !order.DepositPaid() {
		order.DepositCents = DepositFor(order.Type, order.TotalCents, s.depositPercent)
	}
	return calc
}

// GetOrder retrieves an order with its client, garments, services and tasks
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders retrieves the production board
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(orders, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// UpdateServicePrice sets or clears the final price of a line and persists
// the recomputed order totals.
func (s *OrderService) UpdateServicePrice(ctx context.Context, orderID, garmentServiceID uuid.UUID, finalPriceCents *int64, actor string) (*entity.Order, error) {
	if finalPriceCents != nil && *finalPriceCents < 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "final_price_cents", Message: "must not be negative"},
		})
	}

	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus.IsComplete() || order.Status == enum.OrderStatusArchived {
		return nil, apperror.NewConflictError("prices of a paid or archived order cannot change")
	}

	line := findGarmentService(order, garmentServiceID)
	if line == nil {
		return nil, apperror.NewNotFoundError("Order service")
	}
	previous := line.FinalPriceCents
	readSubtotal := order.SubtotalCents
	line.FinalPriceCents = finalPriceCents
	s.reprice(order)

	if err := s.orderRepo.UpdateServicePrice(ctx, order, garmentServiceID, finalPriceCents, readSubtotal); err != nil {
		if errors.Is(err, repository.ErrPricingChanged) {
			return nil, apperror.NewConflictError("order prices changed while updating; reload the order and retry")
		}
		return nil, err
	}

	s.audit(ctx, order.ID, "price_updated", actor, map[string]interface{}{
		"garmentServiceId": garmentServiceID.String(),
		"previousCents":    previous,
		"finalPriceCents":  finalPriceCents,
		"totalCents":       order.TotalCents,
	})

	return order, nil
}

func findGarmentService(order *entity.Order, id uuid.UUID) *entity.GarmentService {
	for gi := range order.Garments {
		for si := range order.Garments[gi].Services {
			if order.Garments[gi].Services[si].ID == id {
				return &order.Garments[gi].Services[si]
			}
		}
	}
	return nil
}

// QuoteInput is a stateless pricing request
type QuoteInput struct {
	Items  []pricing.Item
	IsRush bool
}

func validateQuoteItems(prefix string, items []pricing.Item) []apperror.FieldError {
	var errs []apperror.FieldError
	for i, item := range items {
		field := fmt.Sprintf("%sitems[%d]", prefix, i)
		if item.Quantity < 1 {
			errs = append(errs, apperror.FieldError{Field: field + ".quantity", Message: "must be at least 1"})
		}
		if item.BasePriceCents < 0 {
			errs = append(errs, apperror.FieldError{Field: field + ".base_price_cents", Message: "must not be negative"})
		}
		if item.CustomPriceCents != nil && *item.CustomPriceCents < 0 {
			errs = append(errs, apperror.FieldError{Field: field + ".custom_price_cents", Message: "must not be negative"})
		}
		if item.FinalPriceCents != nil && *item.FinalPriceCents < 0 {
			errs = append(errs, apperror.FieldError{Field: field + ".final_price_cents", Message: "must not be negative"})
		}
	}
	return errs
}

// Quote prices a set of lines without touching any order
func (s *OrderService) Quote(input QuoteInput) (pricing.Calculation, error) {
	if errs := validateQuoteItems("", input.Items); len(errs) > 0 {
		return pricing.Calculation{}, apperror.NewValidationError(errs)
	}
	return pricing.ComputeOrderPricing(input.Items, input.IsRush, s.pricing), nil
}

// QuoteBatch prices several independent orders
func (s *OrderService) QuoteBatch(inputs []QuoteInput) ([]pricing.Calculation, error) {
	var errs []apperror.FieldError
	batch := make([]pricing.BatchInput, len(inputs))
	for i, in := range inputs {
		errs = append(errs, validateQuoteItems(fmt.Sprintf("orders[%d].", i), in.Items)...)
		batch[i] = pricing.BatchInput{Items: in.Items, IsRush: in.IsRush}
	}
	if len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}
	return pricing.ComputeBatch(batch, s.pricing), nil
}

// PricingConfig returns the active configuration and its violations, if any
func (s *OrderService) PricingConfig() (pricing.Config, []string) {
	return s.pricing, pricing.ValidateConfig(s.pricing)
}

func (s *OrderService) audit(ctx context.Context, orderID uuid.UUID, action, actor string, details map[string]interface{}) {
	if s.eventRepo == nil {
		return
	}
	err := s.eventRepo.Create(ctx, &entity.EventLog{
		CorrelationID: logger.RequestIDFrom(ctx),
		Entity:        "order",
		EntityID:      orderID.String(),
		Action:        action,
		Actor:         actor,
		Details:       details,
	})
	if err != nil {
		logger.FromCtx(ctx).Warn("audit log write failed", zap.String("action", action), zap.Error(err))
	}
}
