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

type purchaseReturnRepository struct {
	db *gorm.DB
}

// NewPurchaseReturnRepository creates a new purchase return repository
func NewPurchaseReturnRepository(db *gorm.DB) domainRepo.PurchaseReturnRepository {
	return &purchaseReturnRepository{db: db}
}

func (r *purchaseReturnRepository) Create(ctx context.Context, pr *entity.PurchaseReturn) error {
	return r.db.WithContext(ctx).Create(pr).Error
}

func (r *purchaseReturnRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseReturn, error) {
	var pr entity.PurchaseReturn
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Vendor").
		First(&pr, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &pr, err
}

func (r *purchaseReturnRepository) GetByVoucherNo(ctx context.Context, voucherNo string) (*entity.PurchaseReturn, error) {
	var pr entity.PurchaseReturn
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).First(&pr, "voucher_no = ?", voucherNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &pr, err
}

func (r *purchaseReturnRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.PurchaseReturn, error) {
	var pr entity.PurchaseReturn
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Vendor").
		Preload("GoodsReceiptNote").
		Preload("Items.Product").
		First(&pr, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &pr, err
}

func (r *purchaseReturnRepository) Update(ctx context.Context, pr *entity.PurchaseReturn) error {
	return r.db.WithContext(ctx).Save(pr).Error
}

func (r *purchaseReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.PurchaseReturn{}, "id = ?", id).Error
}

func (r *purchaseReturnRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.PurchaseReturnFilterParams) ([]entity.PurchaseReturn, int64, error) {
	var returns []entity.PurchaseReturn
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PurchaseReturn{}).Scopes(TenantScope(ctx))
	if !params.SkipUserFilter {
		query = query.Where("user_id = ?", userID)
	}

	if params.Search != "" {
		query = query.Where("voucher_no ILIKE ? OR reference_no ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.VendorID != nil {
		query = query.Where("vendor_id = ?", *params.VendorID)
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
		Preload("Vendor").
		Order(sortBy + " " + sortOrder).
		Find(&returns).Error

	return returns, total, err
}

func (r *purchaseReturnRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.VoucherStatus) error {
	return r.db.WithContext(ctx).Model(&entity.PurchaseReturn{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *purchaseReturnRepository) ListSourceIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&entity.PurchaseReturn{}).
		Scopes(TenantScope(ctx)).
		Pluck("goods_receipt_note_id", &ids).Error
	return ids, err
}
