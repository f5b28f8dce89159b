package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/entity"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/enum"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/pagination"
)

// ErrDuplicateOrderNumber is returned by Create when a concurrent intake took the same number
var ErrDuplicateOrderNumber = errors.New("order number already exists")

// ErrPricingChanged is returned by UpdateServicePrice when the stored totals
// moved after the order was read
var ErrPricingChanged = errors.New("order pricing changed concurrently")

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	// Create inserts the order together with its garments and garment services
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// GetWithDetails loads client, garments, garment services (with catalog entry) and tasks
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	NextOrderNumber(ctx context.Context) (int64, error)
	// UpdateStatus is a compare-and-set: the row is only written while its
	// status still equals from. It reports whether a row was updated.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to enum.OrderStatus) (bool, error)
	UpdatePayment(ctx context.Context, id uuid.UUID, status enum.PaymentStatus, depositPaidAt, paidAt *time.Time) error
	// UpdateServicePrice stores a line's final price and the order's
	// recomputed money fields in one transaction. The totals are only written
	// while the stored subtotal still equals readSubtotalCents; otherwise the
	// transaction rolls back with ErrPricingChanged.
	UpdateServicePrice(ctx context.Context, order *entity.Order, garmentServiceID uuid.UUID, finalPriceCents *int64, readSubtotalCents int64) error
}

// OrderFilterParams contains filtering parameters for the production board
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.OrderStatus
	Type       *enum.OrderType
	Rush       *bool
	ClientID   *uuid.UUID
	// IncludeArchived lists archived orders when no status filter is given
	IncludeArchived bool
}
