package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/application/service"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/entity"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/enum"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/integration"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/pricing"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/repository"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/pagination"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testStaffID = uuid.MustParse("7d1c3f0e-9a44-4a4f-bb58-2f1f4c6e8a10")

// newRouter returns an engine that stamps a staff identity and request id
// the way the auth and logger middleware do.
func newRouter() *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("request_id", "req-test")
		c.Set("staff_id", testStaffID)
		c.Set("staff_name", "Sophie")
		c.Next()
	})
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
	Meta    struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

type MockStageTransitioner struct{ mock.Mock }

func (m *MockStageTransitioner) TransitionOrderStage(ctx context.Context, orderID uuid.UUID, target enum.OrderStatus, opts service.TransitionOptions) (*service.TransitionResult, error) {
	args := m.Called(ctx, orderID, target, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TransitionResult), args.Error(1)
}

type MockOrderManager struct{ mock.Mock }

func (m *MockOrderManager) CreateOrder(ctx context.Context, input *service.CreateOrderInput) (*entity.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderManager) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderManager) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.PaginatedResult[entity.Order]), args.Error(1)
}

func (m *MockOrderManager) UpdateServicePrice(ctx context.Context, orderID, garmentServiceID uuid.UUID, finalPriceCents *int64, actor string) (*entity.Order, error) {
	args := m.Called(ctx, orderID, garmentServiceID, finalPriceCents, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

type MockCheckoutCreator struct{ mock.Mock }

func (m *MockCheckoutCreator) CreateCheckoutForOrder(ctx context.Context, orderID uuid.UUID, checkoutType enum.CheckoutType, sendSMS bool) (*integration.Checkout, error) {
	args := m.Called(ctx, orderID, checkoutType, sendSMS)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.Checkout), args.Error(1)
}

type MockPricingQuoter struct{ mock.Mock }

func (m *MockPricingQuoter) Quote(input service.QuoteInput) (pricing.Calculation, error) {
	args := m.Called(input)
	return args.Get(0).(pricing.Calculation), args.Error(1)
}

func (m *MockPricingQuoter) QuoteBatch(inputs []service.QuoteInput) ([]pricing.Calculation, error) {
	args := m.Called(inputs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.Calculation), args.Error(1)
}

func (m *MockPricingQuoter) PricingConfig() (pricing.Config, []string) {
	args := m.Called()
	if args.Get(1) == nil {
		return args.Get(0).(pricing.Config), nil
	}
	return args.Get(0).(pricing.Config), args.Get(1).([]string)
}

type MockClientManager struct{ mock.Mock }

func (m *MockClientManager) FindOrCreate(ctx context.Context, input service.ClientInput) (*entity.Client, bool, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*entity.Client), args.Bool(1), args.Error(2)
}

func (m *MockClientManager) GetClient(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Client), args.Error(1)
}

func (m *MockClientManager) ListClients(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Client], error) {
	args := m.Called(ctx, params, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.PaginatedResult[entity.Client]), args.Error(1)
}

type MockTaskManager struct{ mock.Mock }

func (m *MockTaskManager) task(args mock.Arguments) (*entity.Task, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Task), args.Error(1)
}

func (m *MockTaskManager) GetTask(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	return m.task(m.Called(ctx, id))
}

func (m *MockTaskManager) StartTimer(ctx context.Context, id, staffID uuid.UUID) (*entity.Task, error) {
	return m.task(m.Called(ctx, id, staffID))
}

func (m *MockTaskManager) StopTimer(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	return m.task(m.Called(ctx, id))
}

func (m *MockTaskManager) AddTime(ctx context.Context, id uuid.UUID, minutes int) (*entity.Task, error) {
	return m.task(m.Called(ctx, id, minutes))
}

func (m *MockTaskManager) SetStage(ctx context.Context, id uuid.UUID, stage enum.TaskStage) (*entity.Task, error) {
	return m.task(m.Called(ctx, id, stage))
}

type MockPaymentRecorder struct{ mock.Mock }

func (m *MockPaymentRecorder) ApplyPaymentEvent(ctx context.Context, event service.PaymentEvent) (*entity.Order, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}
