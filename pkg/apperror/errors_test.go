package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		err := NewNotFoundError("Order")
		assert.Equal(t, http.StatusNotFound, err.Code)
		assert.Equal(t, KindNotFound, err.Kind)
		assert.Equal(t, "Order not found", err.Error())
	})

	t.Run("Conflict", func(t *testing.T) {
		err := NewConflictError("cannot mark as ready without recorded work time")
		assert.Equal(t, http.StatusConflict, err.Code)
		assert.Equal(t, KindConflict, err.Kind)
	})

	t.Run("Validation", func(t *testing.T) {
		err := NewValidationError([]FieldError{{Field: "stage", Message: "is required"}})
		assert.Equal(t, http.StatusBadRequest, err.Code)
		assert.Equal(t, KindValidation, err.Kind)
		assert.Len(t, err.Errors, 1)
	})

	t.Run("InternalHidesCause", func(t *testing.T) {
		cause := errors.New("connection reset by peer")
		err := NewInternalServerError(cause)
		assert.Equal(t, http.StatusInternalServerError, err.Code)
		assert.Equal(t, "Internal server error", err.Message)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("KindFromStatus", func(t *testing.T) {
		assert.Equal(t, KindConflict, NewAppError(http.StatusConflict, "x").Kind)
		assert.Equal(t, KindInternal, NewAppError(http.StatusBadGateway, "x").Kind)
	})
}

func TestWithCorrelationID(t *testing.T) {
	tagged := ErrNotFound.WithCorrelationID("req-123")

	assert.Equal(t, "req-123", tagged.CorrelationID)
	assert.Empty(t, ErrNotFound.CorrelationID, "shared error must not be mutated")
}

func TestGetAppError(t *testing.T) {
	t.Run("Wrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("load order: %w", NewNotFoundError("Order"))
		appErr := GetAppError(wrapped)
		assert.Equal(t, KindNotFound, appErr.Kind)
		assert.True(t, IsKind(wrapped, KindNotFound))
	})

	t.Run("Unknown", func(t *testing.T) {
		appErr := GetAppError(errors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, appErr.Code)
		assert.Equal(t, KindInternal, appErr.Kind)
		assert.False(t, IsAppError(errors.New("boom")))
	})
}
