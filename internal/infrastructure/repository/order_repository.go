package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/entity"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/enum"
	domainRepo "github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/repository"
)

// firstOrderNumber is one below the number given to the very first order
const firstOrderNumber int64 = 1000

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	err := r.db.WithContext(ctx).Create(order).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %d", domainRepo.ErrDuplicateOrderNumber, order.OrderNumber)
	}
	return err
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Client").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Garments.Services.Service").
		Preload("Garments.Tasks").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Order{}).Scopes(OrderFilterScope(params))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Client").
		Scopes(BoardOrderScope).
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepository) NextOrderNumber(ctx context.Context) (int64, error) {
	var last int64
	err := r.db.WithContext(ctx).Unscoped().Model(&entity.Order{}).
		Select("COALESCE(MAX(order_number), ?)", firstOrderNumber).
		Scan(&last).Error
	if err != nil {
		return 0, err
	}
	return last + 1, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to enum.OrderStatus) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *orderRepository) UpdatePayment(ctx context.Context, id uuid.UUID, status enum.PaymentStatus, depositPaidAt, paidAt *time.Time) error {
	updates := map[string]interface{}{"payment_status": status}
	if depositPaidAt != nil {
		updates["deposit_paid_at"] = *depositPaidAt
	}
	if paidAt != nil {
		updates["paid_at"] = *paidAt
	}

	return r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *orderRepository) UpdateServicePrice(ctx context.Context, order *entity.Order, garmentServiceID uuid.UUID, finalPriceCents *int64, readSubtotalCents int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.GarmentService{}).
			Where("id = ?", garmentServiceID).
			Update("final_price_cents", finalPriceCents).Error; err != nil {
			return err
		}

		// every money field derives from the subtotal, so it serves as the version
		result := tx.Model(&entity.Order{}).
			Where("id = ? AND subtotal_cents = ?", order.ID, readSubtotalCents).
			Updates(map[string]interface{}{
				"subtotal_cents": order.SubtotalCents,
				"rush_fee_cents": order.RushFeeCents,
				"tps_cents":      order.TPSCents,
				"tvq_cents":      order.TVQCents,
				"tax_cents":      order.TaxCents,
				"total_cents":    order.TotalCents,
				"deposit_cents":  order.DepositCents,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != 1 {
			return domainRepo.ErrPricingChanged
		}
		return nil
	})
}
