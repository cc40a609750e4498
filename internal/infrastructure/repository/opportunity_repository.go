package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	domainRepo "github.com/kinara-erp/vouchers-api/internal/domain/repository"
	"gorm.io/gorm"
)

type opportunityRepository struct {
	db *gorm.DB
}

// NewOpportunityRepository creates a new opportunity repository
func NewOpportunityRepository(db *gorm.DB) domainRepo.OpportunityRepository {
	return &opportunityRepository{db: db}
}

func (r *opportunityRepository) Create(ctx context.Context, op *entity.Opportunity) error {
	return r.db.WithContext(ctx).Create(op).Error
}

func (r *opportunityRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Opportunity, error) {
	var op entity.Opportunity
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Customer").
		First(&op, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &op, err
}

func (r *opportunityRepository) GetByReference(ctx context.Context, reference string) (*entity.Opportunity, error) {
	var op entity.Opportunity
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).First(&op, "reference = ?", reference).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &op, err
}

func (r *opportunityRepository) Update(ctx context.Context, op *entity.Opportunity) error {
	return r.db.WithContext(ctx).Save(op).Error
}

func (r *opportunityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Opportunity{}, "id = ?", id).Error
}

func (r *opportunityRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.OpportunityFilterParams) ([]entity.Opportunity, int64, error) {
	var ops []entity.Opportunity
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Opportunity{}).Scopes(TenantScope(ctx))
	if !params.SkipUserFilter {
		query = query.Where("user_id = ?", userID)
	}

	if params.Search != "" {
		query = query.Where("title ILIKE ? OR reference ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Stage != nil {
		query = query.Where("stage = ?", *params.Stage)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder != "" && (params.SortOrder == "ASC" || params.SortOrder == "asc") {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order(sortBy + " " + sortOrder).
		Find(&ops).Error

	return ops, total, err
}

func (r *opportunityRepository) UpdateStage(ctx context.Context, id uuid.UUID, stage enum.OpportunityStage) error {
	return r.db.WithContext(ctx).Model(&entity.Opportunity{}).
		Where("id = ?", id).
		Update("stage", stage).Error
}
