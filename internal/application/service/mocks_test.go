package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/entity"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/enum"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/integration"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/repository"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/pagination"
)

// --- Repositories ---

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) NextOrderNumber(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to enum.OrderStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) UpdatePayment(ctx context.Context, id uuid.UUID, status enum.PaymentStatus, depositPaidAt, paidAt *time.Time) error {
	args := m.Called(ctx, id, status, depositPaidAt, paidAt)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateServicePrice(ctx context.Context, order *entity.Order, garmentServiceID uuid.UUID, finalPriceCents *int64, readSubtotalCents int64) error {
	args := m.Called(ctx, order, garmentServiceID, finalPriceCents, readSubtotalCents)
	return args.Error(0)
}

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Create(ctx context.Context, client *entity.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Client), args.Error(1)
}

func (m *MockClientRepository) FindByContact(ctx context.Context, phone, email string) (*entity.Client, error) {
	args := m.Called(ctx, phone, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Client), args.Error(1)
}

func (m *MockClientRepository) Update(ctx context.Context, client *entity.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) SetCRMContactID(ctx context.Context, id uuid.UUID, contactID string) error {
	args := m.Called(ctx, id, contactID)
	return args.Error(0)
}

func (m *MockClientRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Client, int64, error) {
	args := m.Called(ctx, params, search)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Client), args.Get(1).(int64), args.Error(2)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByGarmentIDs(ctx context.Context, garmentIDs []uuid.UUID) ([]entity.Task, error) {
	args := m.Called(ctx, garmentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Task), args.Error(1)
}

func (m *MockTaskRepository) CreateBatch(ctx context.Context, tasks []entity.Task) error {
	args := m.Called(ctx, tasks)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *entity.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.CatalogService, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.CatalogService), args.Error(1)
}

func (m *MockCatalogRepository) ListActive(ctx context.Context) ([]entity.CatalogService, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.CatalogService), args.Error(1)
}

type MockEventLogRepository struct {
	mock.Mock
}

func (m *MockEventLogRepository) Create(ctx context.Context, event *entity.EventLog) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// --- Collaborators ---

type MockCRMGateway struct {
	mock.Mock
}

func (m *MockCRMGateway) UpsertContact(ctx context.Context, input integration.ContactInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockCRMGateway) SendSMS(ctx context.Context, contactID, message string) error {
	args := m.Called(ctx, contactID, message)
	return args.Error(0)
}

func (m *MockCRMGateway) AddTag(ctx context.Context, contactID, tag string) error {
	args := m.Called(ctx, contactID, tag)
	return args.Error(0)
}

func (m *MockCRMGateway) RemoveTag(ctx context.Context, contactID, tag string) error {
	args := m.Called(ctx, contactID, tag)
	return args.Error(0)
}

func (m *MockCRMGateway) CreateCheckout(ctx context.Context, req integration.CheckoutRequest) (*integration.Checkout, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.Checkout), args.Error(1)
}

type MockStatusWebhook struct {
	mock.Mock
}

func (m *MockStatusWebhook) OrderStatusChanged(ctx context.Context, payload integration.OrderStatusPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

type MockTaskProvisioner struct {
	mock.Mock
}

func (m *MockTaskProvisioner) EnsureTasks(ctx context.Context, order *entity.Order) (int, error) {
	args := m.Called(ctx, order)
	return args.Int(0), args.Error(1)
}

type MockCheckoutRequester struct {
	mock.Mock
}

func (m *MockCheckoutRequester) RequestCheckout(ctx context.Context, order *entity.Order, checkoutType enum.CheckoutType) (*integration.Checkout, error) {
	args := m.Called(ctx, order, checkoutType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.Checkout), args.Error(1)
}

type MockContactSyncer struct {
	mock.Mock
}

func (m *MockContactSyncer) EnsureCRMContact(ctx context.Context, client *entity.Client) (string, error) {
	args := m.Called(ctx, client)
	return args.String(0), args.Error(1)
}

// panickingProvisioner simulates a collaborator crashing mid-request
type panickingProvisioner struct{}

func (panickingProvisioner) EnsureTasks(context.Context, *entity.Order) (int, error) {
	panic("task store exploded")
}

// --- Fixtures ---

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func newTestClient() *entity.Client {
	return &entity.Client{
		ID:           uuid.New(),
		FirstName:    "Marie",
		LastName:     "Tremblay",
		Phone:        strPtr("+15145550100"),
		Language:     "fr",
		CRMContactID: strPtr("contact-1"),
	}
}

// newTestOrder builds a priced alteration order with one garment, one
// service line and one task carrying the given minutes.
func newTestOrder(status enum.OrderStatus, taskMinutes int, taskStage enum.TaskStage) *entity.Order {
	client := newTestClient()
	garmentID := uuid.New()
	return &entity.Order{
		ID:            uuid.New(),
		OrderNumber:   1042,
		ClientID:      client.ID,
		Type:          enum.OrderTypeAlteration,
		Status:        status,
		PaymentStatus: enum.PaymentStatusUnpaid,
		SubtotalCents: 10000,
		TPSCents:      500,
		TVQCents:      998,
		TaxCents:      1498,
		TotalCents:    11498,
		Client:        client,
		Garments: []entity.Garment{
			{
				ID:        garmentID,
				Type:      "pants",
				LabelCode: "HC-1042-01",
				Services: []entity.GarmentService{
					{ID: uuid.New(), GarmentID: garmentID, ServiceID: uuid.New(), Quantity: 1, BasePriceCents: 10000},
				},
				Tasks: []entity.Task{
					{ID: uuid.New(), GarmentID: garmentID, Stage: taskStage, ActualMinutes: taskMinutes},
				},
			},
		},
	}
}
