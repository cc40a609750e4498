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

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	UserID          uuid.UUID
	Name            string
	Email           *string
	Phone           *string
	GSTIN           *string
	StateCode       string
	BillingAddress  *string
	DeliveryAddress *string
}

// CreateCustomer creates a new customer. The state code is required
// because it decides CGST+SGST versus IGST on outbound vouchers.
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	// Extract tenant ID from context
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if len(input.StateCode) != 2 {
		return nil, apperror.NewBadRequestError("State code must be a two-digit GST state code")
	}

	customer := &entity.Customer{
		TenantID:        tenantID,
		UserID:          input.UserID,
		Name:            input.Name,
		Email:           input.Email,
		Phone:           input.Phone,
		GSTIN:           input.GSTIN,
		StateCode:       input.StateCode,
		BillingAddress:  input.BillingAddress,
		DeliveryAddress: input.DeliveryAddress,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers. If isSuperAdmin is true, returns all customers.
func (s *CustomerService) ListCustomers(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, isSuperAdmin bool) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, userID, params, search, isSuperAdmin)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	UserID          uuid.UUID
	ID              uuid.UUID
	IsSuperAdmin    bool
	Name            *string
	Email           *string
	Phone           *string
	GSTIN           *string
	StateCode       *string
	BillingAddress  *string
	DeliveryAddress *string
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	// Super-admin can update any customer, regular users can only update their own
	if !input.IsSuperAdmin && customer.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.GSTIN != nil {
		customer.GSTIN = input.GSTIN
	}
	if input.StateCode != nil {
		if len(*input.StateCode) != 2 {
			return nil, apperror.NewBadRequestError("State code must be a two-digit GST state code")
		}
		customer.StateCode = *input.StateCode
	}
	if input.BillingAddress != nil {
		customer.BillingAddress = input.BillingAddress
	}
	if input.DeliveryAddress != nil {
		customer.DeliveryAddress = input.DeliveryAddress
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}

	// Super-admin can delete any customer, regular users can only delete their own
	if !isSuperAdmin && customer.UserID != userID {
		return apperror.ErrForbidden
	}

	return s.customerRepo.Delete(ctx, id)
}
