package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	"github.com/kinara-erp/vouchers-api/internal/domain/repository"
	infraRepo "github.com/kinara-erp/vouchers-api/internal/infrastructure/repository"
	"github.com/kinara-erp/vouchers-api/pkg/apperror"
	"github.com/kinara-erp/vouchers-api/pkg/pagination"
)

// OpportunityService handles CRM opportunity operations
type OpportunityService struct {
	opportunityRepo repository.OpportunityRepository
	customerRepo    repository.CustomerRepository
}

// NewOpportunityService creates a new opportunity service
func NewOpportunityService(
	opportunityRepo repository.OpportunityRepository,
	customerRepo repository.CustomerRepository,
) *OpportunityService {
	return &OpportunityService{
		opportunityRepo: opportunityRepo,
		customerRepo:    customerRepo,
	}
}

// CreateOpportunityInput represents the create opportunity input
type CreateOpportunityInput struct {
	UserID            uuid.UUID
	CustomerID        *uuid.UUID
	Title             string
	ExpectedValue     float64
	ExpectedCloseDate *time.Time
	Source            *string
	Note              *string
}

// CreateOpportunity creates a new opportunity at the lead stage
func (s *OpportunityService) CreateOpportunity(ctx context.Context, input *CreateOpportunityInput) (*entity.Opportunity, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	opportunity := &entity.Opportunity{
		TenantID:          tenantID,
		UserID:            input.UserID,
		CustomerID:        input.CustomerID,
		Title:             input.Title,
		Reference:         fmt.Sprintf("OPP-%s", uuid.New().String()[:8]),
		Stage:             enum.OpportunityStageLead,
		ExpectedValue:     input.ExpectedValue,
		ExpectedCloseDate: input.ExpectedCloseDate,
		Source:            input.Source,
		Note:              input.Note,
	}

	if err := s.opportunityRepo.Create(ctx, opportunity); err != nil {
		return nil, err
	}

	return opportunity, nil
}

// GetOpportunity retrieves an opportunity by ID
func (s *OpportunityService) GetOpportunity(ctx context.Context, id uuid.UUID) (*entity.Opportunity, error) {
	opportunity, err := s.opportunityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if opportunity == nil {
		return nil, apperror.NewNotFoundError("Opportunity")
	}
	return opportunity, nil
}

// ListOpportunities lists opportunities with filtering
func (s *OpportunityService) ListOpportunities(ctx context.Context, userID uuid.UUID, params *repository.OpportunityFilterParams) (*pagination.PaginatedResult[entity.Opportunity], error) {
	opportunities, total, err := s.opportunityRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(opportunities, pag), nil
}

// UpdateOpportunityInput represents the update opportunity input
type UpdateOpportunityInput struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	IsSuperAdmin      bool
	CustomerID        *uuid.UUID
	Title             *string
	ExpectedValue     *float64
	ExpectedCloseDate *time.Time
	Source            *string
	Note              *string
}

// UpdateOpportunity updates an opportunity
func (s *OpportunityService) UpdateOpportunity(ctx context.Context, input *UpdateOpportunityInput) (*entity.Opportunity, error) {
	opportunity, err := s.opportunityRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if opportunity == nil {
		return nil, apperror.NewNotFoundError("Opportunity")
	}

	// Super-admin can update any opportunity, regular users only their own
	if !input.IsSuperAdmin && opportunity.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		opportunity.CustomerID = input.CustomerID
	}
	if input.Title != nil {
		opportunity.Title = *input.Title
	}
	if input.ExpectedValue != nil {
		opportunity.ExpectedValue = *input.ExpectedValue
	}
	if input.ExpectedCloseDate != nil {
		opportunity.ExpectedCloseDate = input.ExpectedCloseDate
	}
	if input.Source != nil {
		opportunity.Source = input.Source
	}
	if input.Note != nil {
		opportunity.Note = input.Note
	}

	if err := s.opportunityRepo.Update(ctx, opportunity); err != nil {
		return nil, err
	}

	return opportunity, nil
}

// MoveStage moves an opportunity to a new pipeline stage. Closed
// opportunities (won or lost) stay closed.
func (s *OpportunityService) MoveStage(ctx context.Context, userID, opportunityID uuid.UUID, stage enum.OpportunityStage, isSuperAdmin bool) (*entity.Opportunity, error) {
	opportunity, err := s.opportunityRepo.GetByID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	if opportunity == nil {
		return nil, apperror.NewNotFoundError("Opportunity")
	}

	if !isSuperAdmin && opportunity.UserID != userID {
		return nil, apperror.ErrForbidden
	}

	if opportunity.Stage == enum.OpportunityStageWon || opportunity.Stage == enum.OpportunityStageLost {
		return nil, apperror.NewAppError(400, "Closed opportunities cannot change stage")
	}

	if err := s.opportunityRepo.UpdateStage(ctx, opportunityID, stage); err != nil {
		return nil, err
	}

	opportunity.Stage = stage
	return opportunity, nil
}

// DeleteOpportunity deletes an opportunity
func (s *OpportunityService) DeleteOpportunity(ctx context.Context, userID, id uuid.UUID, isSuperAdmin bool) error {
	opportunity, err := s.opportunityRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if opportunity == nil {
		return apperror.NewNotFoundError("Opportunity")
	}

	if !isSuperAdmin && opportunity.UserID != userID {
		return apperror.ErrForbidden
	}

	return s.opportunityRepo.Delete(ctx, id)
}
