package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	"github.com/kinara-erp/vouchers-api/pkg/pagination"
)

// OpportunityRepository defines the interface for CRM opportunity data operations
type OpportunityRepository interface {
	Create(ctx context.Context, op *entity.Opportunity) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Opportunity, error)
	GetByReference(ctx context.Context, reference string) (*entity.Opportunity, error)
	Update(ctx context.Context, op *entity.Opportunity) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *OpportunityFilterParams) ([]entity.Opportunity, int64, error)
	UpdateStage(ctx context.Context, id uuid.UUID, stage enum.OpportunityStage) error
}

// OpportunityFilterParams contains filtering parameters for opportunity queries
type OpportunityFilterParams struct {
	Pagination     *pagination.PaginationParams
	Search         string
	Stage          *enum.OpportunityStage
	CustomerID     *uuid.UUID
	SortBy         string
	SortOrder      string
	SkipUserFilter bool
}
