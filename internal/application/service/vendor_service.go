package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	"github.com/kinara-erp/vouchers-api/internal/domain/repository"
	infraRepo "github.com/kinara-erp/vouchers-api/internal/infrastructure/repository"
	"github.com/kinara-erp/vouchers-api/pkg/apperror"
	"github.com/kinara-erp/vouchers-api/pkg/pagination"
)

// VendorService handles vendor-related operations
type VendorService struct {
	vendorRepo repository.VendorRepository
}

// NewVendorService creates a new vendor service
func NewVendorService(vendorRepo repository.VendorRepository) *VendorService {
	return &VendorService{vendorRepo: vendorRepo}
}

// CreateVendorInput represents the create vendor input
type CreateVendorInput struct {
	UserID        uuid.UUID
	Name          string
	Email         *string
	Phone         *string
	Address       *string
	GSTIN         *string
	StateCode     string
	Type          enum.VendorType
	AccountHolder *string
	AccountNumber *string
	BankName      *string
}

// CreateVendor creates a new vendor. GSTIN must be unique within the
// tenant when provided.
func (s *VendorService) CreateVendor(ctx context.Context, input *CreateVendorInput) (*entity.Vendor, error) {
	// Extract tenant ID from context
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if len(input.StateCode) != 2 {
		return nil, apperror.NewBadRequestError("State code must be a two-digit GST state code")
	}

	if input.GSTIN != nil && *input.GSTIN != "" {
		existing, err := s.vendorRepo.GetByGSTIN(ctx, *input.GSTIN)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Vendor with this GSTIN already exists")
		}
	}

	vendor := &entity.Vendor{
		TenantID:      tenantID,
		UserID:        input.UserID,
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Address:       input.Address,
		GSTIN:         input.GSTIN,
		StateCode:     input.StateCode,
		Type:          input.Type,
		AccountHolder: input.AccountHolder,
		AccountNumber: input.AccountNumber,
		BankName:      input.BankName,
	}

	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, err
	}

	return vendor, nil
}

// GetVendor retrieves a vendor by ID
func (s *VendorService) GetVendor(ctx context.Context, id uuid.UUID) (*entity.Vendor, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, apperror.NewNotFoundError("Vendor")
	}
	return vendor, nil
}

// ListVendors lists vendors with filtering
func (s *VendorService) ListVendors(ctx context.Context, userID uuid.UUID, params *repository.VendorFilterParams) (*pagination.PaginatedResult[entity.Vendor], error) {
	vendors, total, err := s.vendorRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(vendors, pag), nil
}

// UpdateVendorInput represents the update vendor input
type UpdateVendorInput struct {
	UserID        uuid.UUID
	ID            uuid.UUID
	IsSuperAdmin  bool
	Name          *string
	Email         *string
	Phone         *string
	Address       *string
	GSTIN         *string
	StateCode     *string
	Type          *enum.VendorType
	AccountHolder *string
	AccountNumber *string
	BankName      *string
}

// UpdateVendor updates a vendor
func (s *VendorService) UpdateVendor(ctx context.Context, input *UpdateVendorInput) (*entity.Vendor, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, apperror.NewNotFoundError("Vendor")
	}

	// Super-admin can update any vendor, regular users can only update their own
	if !input.IsSuperAdmin && vendor.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	if input.GSTIN != nil && *input.GSTIN != "" {
		existing, err := s.vendorRepo.GetByGSTIN(ctx, *input.GSTIN)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != vendor.ID {
			return nil, apperror.NewConflictError("Vendor with this GSTIN already exists")
		}
		vendor.GSTIN = input.GSTIN
	}

	if input.Name != nil {
		vendor.Name = *input.Name
	}
	if input.Email != nil {
		vendor.Email = input.Email
	}
	if input.Phone != nil {
		vendor.Phone = input.Phone
	}
	if input.Address != nil {
		vendor.Address = input.Address
	}
	if input.StateCode != nil {
		if len(*input.StateCode) != 2 {
			return nil, apperror.NewBadRequestError("State code must be a two-digit GST state code")
		}
		vendor.StateCode = *input.StateCode
	}
	if input.Type != nil {
		vendor.Type = *input.Type
	}
	if input.AccountHolder != nil {
		vendor.AccountHolder = input.AccountHolder
	}
	if input.AccountNumber != nil {
		vendor.AccountNumber = input.AccountNumber
	}
	if input.BankName != nil {
		vendor.BankName = input.BankName
	}

	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, err
	}

	return vendor, nil
}

// DeleteVendor deletes a vendor
func (s *VendorService) DeleteVendor(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) error {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if vendor == nil {
		return apperror.NewNotFoundError("Vendor")
	}

	// Super-admin can delete any vendor, regular users can only delete their own
	if !isSuperAdmin && vendor.UserID != userID {
		return apperror.ErrForbidden
	}

	return s.vendorRepo.Delete(ctx, id)
}
