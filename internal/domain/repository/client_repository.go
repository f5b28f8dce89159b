package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/entity"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/pagination"
)

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)
	// FindByContact matches on normalized phone or email; either may be empty
	FindByContact(ctx context.Context, phone, email string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	SetCRMContactID(ctx context.Context, id uuid.UUID, contactID string) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Client, int64, error)
}
