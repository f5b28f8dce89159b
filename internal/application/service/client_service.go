package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/entity"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/integration"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/repository"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/apperror"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/logger"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/pagination"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/utils"
)

// ClientService handles client intake and CRM contact sync
type ClientService struct {
	clientRepo repository.ClientRepository
	crm        CRMGateway
}

// NewClientService creates a new client service. crm may be nil.
func NewClientService(clientRepo repository.ClientRepository, crm CRMGateway) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		crm:        crm,
	}
}

// ClientInput represents the client intake input
type ClientInput struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Language  string
	Notes     string
}

func (in *ClientInput) normalize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Phone = utils.NormalizePhone(in.Phone)
	in.Email = utils.NormalizeEmail(in.Email)
	in.Language = strings.ToLower(strings.TrimSpace(in.Language))
	if in.Language != "en" {
		in.Language = "fr"
	}
}

func (in *ClientInput) validate() error {
	var errs []apperror.FieldError
	if in.FirstName == "" {
		errs = append(errs, apperror.FieldError{Field: "first_name", Message: "is required"})
	}
	if in.Phone == "" && in.Email == "" {
		errs = append(errs, apperror.FieldError{Field: "phone", Message: "phone or email is required"})
	}
	if len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	return nil
}

// FindOrCreate returns the existing client matching the phone or email, or
// creates one. The boolean reports whether a new client was created.
func (s *ClientService) FindOrCreate(ctx context.Context, input ClientInput) (*entity.Client, bool, error) {
	input.normalize()
	if err := input.validate(); err != nil {
		return nil, false, err
	}

	existing, err := s.clientRepo.FindByContact(ctx, input.Phone, input.Email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	client := &entity.Client{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Language:  input.Language,
		Notes:     input.Notes,
	}
	if input.Phone != "" {
		client.Phone = &input.Phone
	}
	if input.Email != "" {
		client.Email = &input.Email
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, false, err
	}

	if s.crm != nil {
		if _, err := s.EnsureCRMContact(ctx, client); err != nil {
			logger.FromCtx(ctx).Warn("crm contact sync failed", zap.String("client_id", client.ID.String()), zap.Error(err))
		}
	}

	return client, true, nil
}

// EnsureCRMContact links the client to a CRM contact, creating it when needed
func (s *ClientService) EnsureCRMContact(ctx context.Context, client *entity.Client) (string, error) {
	if client == nil {
		return "", apperror.NewBadRequestError("order has no client")
	}
	if client.HasCRMContact() {
		return *client.CRMContactID, nil
	}
	if s.crm == nil {
		return "", ErrCRMNotConfigured
	}

	input := integration.ContactInput{
		FirstName: client.FirstName,
		LastName:  client.LastName,
		Language:  client.Language,
	}
	if client.Phone != nil {
		input.Phone = *client.Phone
	}
	if client.Email != nil {
		input.Email = *client.Email
	}

	contactID, err := s.crm.UpsertContact(ctx, input)
	if err != nil {
		return "", err
	}
	if err := s.clientRepo.SetCRMContactID(ctx, client.ID, contactID); err != nil {
		return "", err
	}
	client.CRMContactID = &contactID

	return contactID, nil
}

// GetClient retrieves a client by ID
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// ListClients retrieves clients with page-based pagination
func (s *ClientService) ListClients(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Client], error) {
	params.Validate()
	clients, total, err := s.clientRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(clients, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}
