package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/application/service"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/entity"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/enum"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/integration"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/repository"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/apperror"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/pagination"
)

func orderRouter(orders *MockOrderManager, payments *MockCheckoutCreator) http.Handler {
	h := NewOrderHandler(orders, payments)
	r := newRouter()
	r.GET("/orders", h.List)
	r.POST("/orders", h.Create)
	r.GET("/orders/:id", h.Get)
	r.PATCH("/orders/:id/services/:serviceId/price", h.UpdateServicePrice)
	r.POST("/orders/:id/checkout", h.Checkout)
	return r
}

func TestOrderHandler_Create(t *testing.T) {
	serviceID := uuid.New()

	t.Run("MapsRequestToInput", func(t *testing.T) {
		orders := new(MockOrderManager)
		orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(in *service.CreateOrderInput) bool {
			return in.Type == enum.OrderTypeCustom &&
				in.Rush &&
				in.Actor == "Sophie" &&
				in.Client != nil && in.Client.FirstName == "Marie" &&
				len(in.Garments) == 1 &&
				in.Garments[0].Services[0].ServiceID == serviceID &&
				in.Garments[0].Services[0].Quantity == 2
		})).Return(&entity.Order{ID: uuid.New(), OrderNumber: 1042, TotalCents: 11498}, nil)

		w := doJSON(t, orderRouter(orders, nil), http.MethodPost, "/orders", map[string]interface{}{
			"type": "custom",
			"rush": true,
			"client": map[string]string{
				"first_name": "Marie",
				"phone":      "514-555-0100",
			},
			"garments": []map[string]interface{}{
				{
					"type": "dress",
					"services": []map[string]interface{}{
						{"service_id": serviceID, "quantity": 2},
					},
				},
			},
		})

		require.Equal(t, http.StatusCreated, w.Code)
		var data map[string]interface{}
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
		assert.Equal(t, float64(1042), data["order_number"])
		assert.Equal(t, "114.98", data["total"])
		orders.AssertExpectations(t)
	})

	t.Run("InvalidOrderType", func(t *testing.T) {
		orders := new(MockOrderManager)
		w := doJSON(t, orderRouter(orders, nil), http.MethodPost, "/orders", `{"type":"bespoke","garments":[]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("ValidationErrorsAreListed", func(t *testing.T) {
		orders := new(MockOrderManager)
		orders.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "garments", Message: "at least one garment is required"},
		}))

		w := doJSON(t, orderRouter(orders, nil), http.MethodPost, "/orders", `{"client_id":"`+uuid.NewString()+`","garments":[]}`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		var fields []apperror.FieldError
		require.NoError(t, json.Unmarshal(decode(t, w).Errors, &fields))
		assert.Equal(t, "garments", fields[0].Field)
	})
}

func TestOrderHandler_List(t *testing.T) {
	clientID := uuid.New()

	t.Run("Filters", func(t *testing.T) {
		orders := new(MockOrderManager)
		orders.On("ListOrders", mock.Anything, mock.MatchedBy(func(p *repository.OrderFilterParams) bool {
			return p.Status != nil && *p.Status == enum.OrderStatusReady &&
				p.Type != nil && *p.Type == enum.OrderTypeAlteration &&
				p.Rush != nil && *p.Rush &&
				p.ClientID != nil && *p.ClientID == clientID &&
				p.Pagination.Page == 2 && p.Pagination.PerPage == 10
		})).Return(pagination.NewPaginatedResult([]entity.Order{}, pagination.NewPagination(2, 10, 0)), nil)

		w := doJSON(t, orderRouter(orders, nil), http.MethodGet,
			"/orders?status=ready&type=alteration&rush=true&client_id="+clientID.String()+"&page=2&per_page=10", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		orders.AssertExpectations(t)
	})

	t.Run("DefaultsPagination", func(t *testing.T) {
		orders := new(MockOrderManager)
		orders.On("ListOrders", mock.Anything, mock.MatchedBy(func(p *repository.OrderFilterParams) bool {
			return p.Status == nil && p.Pagination.Page == 1 && p.Pagination.PerPage == 25
		})).Return(pagination.NewPaginatedResult([]entity.Order{}, pagination.NewPagination(1, 25, 0)), nil)

		w := doJSON(t, orderRouter(orders, nil), http.MethodGet, "/orders", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		orders.AssertExpectations(t)
	})

	t.Run("InvalidClientID", func(t *testing.T) {
		w := doJSON(t, orderRouter(new(MockOrderManager), nil), http.MethodGet, "/orders?client_id=abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOrderHandler_Get(t *testing.T) {
	orderID := uuid.New()

	orders := new(MockOrderManager)
	orders.On("GetOrder", mock.Anything, orderID).Return(nil, apperror.NewNotFoundError("Order"))

	w := doJSON(t, orderRouter(orders, nil), http.MethodGet, "/orders/"+orderID.String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Order not found", decode(t, w).Message)
}

func TestOrderHandler_UpdateServicePrice(t *testing.T) {
	orderID, lineID := uuid.New(), uuid.New()

	t.Run("SetsFinalPrice", func(t *testing.T) {
		orders := new(MockOrderManager)
		orders.On("UpdateServicePrice", mock.Anything, orderID, lineID, mock.MatchedBy(func(p *int64) bool {
			return p != nil && *p == 5000
		}), "Sophie").Return(&entity.Order{ID: orderID, TotalCents: 5749}, nil)

		w := doJSON(t, orderRouter(orders, nil), http.MethodPatch,
			"/orders/"+orderID.String()+"/services/"+lineID.String()+"/price", map[string]int64{"final_price_cents": 5000})

		require.Equal(t, http.StatusOK, w.Code)
		var data map[string]interface{}
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
		assert.Equal(t, "57.49", data["total"])
	})

	t.Run("NullClearsOverride", func(t *testing.T) {
		orders := new(MockOrderManager)
		orders.On("UpdateServicePrice", mock.Anything, orderID, lineID, (*int64)(nil), "Sophie").
			Return(&entity.Order{ID: orderID}, nil)

		w := doJSON(t, orderRouter(orders, nil), http.MethodPatch,
			"/orders/"+orderID.String()+"/services/"+lineID.String()+"/price", `{"final_price_cents":null}`)

		assert.Equal(t, http.StatusOK, w.Code)
		orders.AssertExpectations(t)
	})

	t.Run("InvalidServiceID", func(t *testing.T) {
		w := doJSON(t, orderRouter(new(MockOrderManager), nil), http.MethodPatch,
			"/orders/"+orderID.String()+"/services/x/price", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOrderHandler_Checkout(t *testing.T) {
	orderID := uuid.New()

	t.Run("Created", func(t *testing.T) {
		payments := new(MockCheckoutCreator)
		payments.On("CreateCheckoutForOrder", mock.Anything, orderID, enum.CheckoutTypeDeposit, true).Return(&integration.Checkout{
			ID:          "chk_1",
			URL:         "https://pay.example/chk_1",
			Type:        enum.CheckoutTypeDeposit,
			AmountCents: 5749,
		}, nil)

		w := doJSON(t, orderRouter(nil, payments), http.MethodPost, "/orders/"+orderID.String()+"/checkout",
			map[string]interface{}{"type": "deposit", "send_sms": true})

		require.Equal(t, http.StatusCreated, w.Code)
		var data map[string]interface{}
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
		assert.Equal(t, "https://pay.example/chk_1", data["url"])
		assert.Equal(t, float64(5749), data["amount_cents"])
	})

	t.Run("TypeRequired", func(t *testing.T) {
		payments := new(MockCheckoutCreator)
		w := doJSON(t, orderRouter(nil, payments), http.MethodPost, "/orders/"+orderID.String()+"/checkout", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		payments.AssertNotCalled(t, "CreateCheckoutForOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ProviderUnavailable", func(t *testing.T) {
		payments := new(MockCheckoutCreator)
		payments.On("CreateCheckoutForOrder", mock.Anything, orderID, enum.CheckoutTypeFull, false).
			Return(nil, apperror.NewAppError(http.StatusBadGateway, "Payment provider is unavailable"))

		w := doJSON(t, orderRouter(nil, payments), http.MethodPost, "/orders/"+orderID.String()+"/checkout", `{"type":"full"}`)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("UnexpectedError", func(t *testing.T) {
		payments := new(MockCheckoutCreator)
		payments.On("CreateCheckoutForOrder", mock.Anything, orderID, enum.CheckoutTypeFull, false).
			Return(nil, errors.New("boom"))

		w := doJSON(t, orderRouter(nil, payments), http.MethodPost, "/orders/"+orderID.String()+"/checkout", `{"type":"full"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
