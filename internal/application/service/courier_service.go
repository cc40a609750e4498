package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
	"github.com/kinara-erp/vouchers-api/internal/domain/repository"
	infraRepo "github.com/kinara-erp/vouchers-api/internal/infrastructure/repository"
	"github.com/kinara-erp/vouchers-api/pkg/apperror"
	"github.com/kinara-erp/vouchers-api/pkg/pagination"
)

// CourierService handles courier-related operations
type CourierService struct {
	courierRepo repository.CourierRepository
}

// NewCourierService creates a new courier service
func NewCourierService(courierRepo repository.CourierRepository) *CourierService {
	return &CourierService{courierRepo: courierRepo}
}

// CreateCourierInput represents the create courier input
type CreateCourierInput struct {
	UserID      uuid.UUID
	Name        string
	Phone       *string
	Email       *string
	ServiceArea *string
	TrackingURL *string
}

// CreateCourier creates a new courier
func (s *CourierService) CreateCourier(ctx context.Context, input *CreateCourierInput) (*entity.Courier, error) {
	// Extract tenant ID from context
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	courier := &entity.Courier{
		TenantID:    tenantID,
		UserID:      input.UserID,
		Name:        input.Name,
		Phone:       input.Phone,
		Email:       input.Email,
		ServiceArea: input.ServiceArea,
		TrackingURL: input.TrackingURL,
	}

	if err := s.courierRepo.Create(ctx, courier); err != nil {
		return nil, err
	}

	return courier, nil
}

// GetCourier retrieves a courier by ID
func (s *CourierService) GetCourier(ctx context.Context, id uuid.UUID) (*entity.Courier, error) {
	courier, err := s.courierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if courier == nil {
		return nil, apperror.NewNotFoundError("Courier")
	}
	return courier, nil
}

// ListCouriers lists couriers. If isSuperAdmin is true, returns all couriers.
func (s *CourierService) ListCouriers(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, isSuperAdmin bool) (*pagination.PaginatedResult[entity.Courier], error) {
	couriers, total, err := s.courierRepo.List(ctx, userID, params, search, isSuperAdmin)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(couriers, pag), nil
}

// UpdateCourierInput represents the update courier input
type UpdateCourierInput struct {
	UserID       uuid.UUID
	ID           uuid.UUID
	IsSuperAdmin bool
	Name         *string
	Phone        *string
	Email        *string
	ServiceArea  *string
	TrackingURL  *string
}

// UpdateCourier updates a courier
func (s *CourierService) UpdateCourier(ctx context.Context, input *UpdateCourierInput) (*entity.Courier, error) {
	courier, err := s.courierRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if courier == nil {
		return nil, apperror.NewNotFoundError("Courier")
	}

	// Super-admin can update any courier, regular users can only update their own
	if !input.IsSuperAdmin && courier.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	if input.Name != nil {
		courier.Name = *input.Name
	}
	if input.Phone != nil {
		courier.Phone = input.Phone
	}
	if input.Email != nil {
		courier.Email = input.Email
	}
	if input.ServiceArea != nil {
		courier.ServiceArea = input.ServiceArea
	}
	if input.TrackingURL != nil {
		courier.TrackingURL = input.TrackingURL
	}

	if err := s.courierRepo.Update(ctx, courier); err != nil {
		return nil, err
	}

	return courier, nil
}

// DeleteCourier deletes a courier
func (s *CourierService) DeleteCourier(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) error {
	courier, err := s.courierRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if courier == nil {
		return apperror.NewNotFoundError("Courier")
	}

	// Super-admin can delete any courier, regular users can only delete their own
	if !isSuperAdmin && courier.UserID != userID {
		return apperror.ErrForbidden
	}

	return s.courierRepo.Delete(ctx, id)
}
