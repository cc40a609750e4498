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

type dispatchOrderRepository struct {
	db *gorm.DB
}

// NewDispatchOrderRepository creates a new dispatch order repository
func NewDispatchOrderRepository(db *gorm.DB) domainRepo.DispatchOrderRepository {
	return &dispatchOrderRepository{db: db}
}

func (r *dispatchOrderRepository) Create(ctx context.Context, do *entity.DispatchOrder) error {
	return r.db.WithContext(ctx).Create(do).Error
}

func (r *dispatchOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.DispatchOrder, error) {
	var do entity.DispatchOrder
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Customer").
		Preload("Courier").
		First(&do, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &do, err
}

func (r *dispatchOrderRepository) GetByVoucherNo(ctx context.Context, voucherNo string) (*entity.DispatchOrder, error) {
	var do entity.DispatchOrder
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).First(&do, "voucher_no = ?", voucherNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &do, err
}

func (r *dispatchOrderRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.DispatchOrder, error) {
	var do entity.DispatchOrder
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Customer").
		Preload("Courier").
		Preload("Items.Product").
		First(&do, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &do, err
}

func (r *dispatchOrderRepository) Update(ctx context.Context, do *entity.DispatchOrder) error {
	return r.db.WithContext(ctx).Save(do).Error
}

func (r *dispatchOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.DispatchOrder{}, "id = ?", id).Error
}

func (r *dispatchOrderRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.DispatchOrderFilterParams) ([]entity.DispatchOrder, int64, error) {
	var orders []entity.DispatchOrder
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.DispatchOrder{}).Scopes(TenantScope(ctx))
	if !params.SkipUserFilter {
		query = query.Where("user_id = ?", userID)
	}

	if params.Search != "" {
		query = query.Where("voucher_no ILIKE ? OR tracking_no ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.CourierID != nil {
		query = query.Where("courier_id = ?", *params.CourierID)
	}

	if params.StartDate != nil {
		query = query.Where("date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("date <= ?", *params.EndDate)
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
		Preload("Courier").
		Order(sortBy + " " + sortOrder).
		Find(&orders).Error

	return orders, total, err
}

func (r *dispatchOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DispatchStatus) error {
	return r.db.WithContext(ctx).Model(&entity.DispatchOrder{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *dispatchOrderRepository) ListAvailableForInstallation(ctx context.Context, userID uuid.UUID, skipUserFilter bool) ([]entity.DispatchOrder, error) {
	var orders []entity.DispatchOrder
	query := r.db.WithContext(ctx).Model(&entity.DispatchOrder{}).
		Scopes(TenantScope(ctx)).
		Where("status = ?", enum.DispatchStatusDelivered).
		Where("id NOT IN (?)", r.db.Model(&entity.InstallationJob{}).Select("dispatch_order_id"))
	if !skipUserFilter {
		query = query.Where("user_id = ?", userID)
	}
	err := query.Preload("Customer").Order("date DESC").Find(&orders).Error
	return orders, err
}

type installationJobRepository struct {
	db *gorm.DB
}

// NewInstallationJobRepository creates a new installation job repository
func NewInstallationJobRepository(db *gorm.DB) domainRepo.InstallationJobRepository {
	return &installationJobRepository{db: db}
}

func (r *installationJobRepository) Create(ctx context.Context, job *entity.InstallationJob) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *installationJobRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.InstallationJob, error) {
	var job entity.InstallationJob
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Customer").
		First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &job, err
}

func (r *installationJobRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.InstallationJob, error) {
	var job entity.InstallationJob
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Customer").
		Preload("DispatchOrder").
		Preload("Technician").
		First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &job, err
}

func (r *installationJobRepository) Update(ctx context.Context, job *entity.InstallationJob) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *installationJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.InstallationJob{}, "id = ?", id).Error
}

func (r *installationJobRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.InstallationJobFilterParams) ([]entity.InstallationJob, int64, error) {
	var jobs []entity.InstallationJob
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.InstallationJob{}).Scopes(TenantScope(ctx))
	if !params.SkipUserFilter {
		query = query.Where("user_id = ?", userID)
	}

	if params.Search != "" {
		query = query.Where("job_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.TechnicianID != nil {
		query = query.Where("technician_id = ?", *params.TechnicianID)
	}

	if params.StartDate != nil {
		query = query.Where("scheduled_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("scheduled_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "scheduled_at"
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
		Preload("Technician").
		Order(sortBy + " " + sortOrder).
		Find(&jobs).Error

	return jobs, total, err
}

func (r *installationJobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InstallationStatus) error {
	return r.db.WithContext(ctx).Model(&entity.InstallationJob{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *installationJobRepository) AssignTechnician(ctx context.Context, id uuid.UUID, technicianID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.InstallationJob{}).
		Where("id = ?", id).
		Update("technician_id", technicianID).Error
}

func (r *installationJobRepository) GetByDispatchOrderID(ctx context.Context, dispatchOrderID uuid.UUID) (*entity.InstallationJob, error) {
	var job entity.InstallationJob
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		First(&job, "dispatch_order_id = ?", dispatchOrderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &job, err
}

func (r *installationJobRepository) ExistsByDispatchOrder(ctx context.Context, dispatchOrderID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.InstallationJob{}).
		Where("dispatch_order_id = ?", dispatchOrderID).
		Count(&count).Error
	return count > 0, err
}
