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

type goodsReceiptRepository struct {
	db *gorm.DB
}

// NewGoodsReceiptRepository creates a new goods receipt note repository
func NewGoodsReceiptRepository(db *gorm.DB) domainRepo.GoodsReceiptRepository {
	return &goodsReceiptRepository{db: db}
}

func (r *goodsReceiptRepository) Create(ctx context.Context, grn *entity.GoodsReceiptNote) error {
	return r.db.WithContext(ctx).Create(grn).Error
}

func (r *goodsReceiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.GoodsReceiptNote, error) {
	var grn entity.GoodsReceiptNote
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Vendor").
		First(&grn, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &grn, err
}

func (r *goodsReceiptRepository) GetByVoucherNo(ctx context.Context, voucherNo string) (*entity.GoodsReceiptNote, error) {
	var grn entity.GoodsReceiptNote
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).First(&grn, "voucher_no = ?", voucherNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &grn, err
}

func (r *goodsReceiptRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.GoodsReceiptNote, error) {
	var grn entity.GoodsReceiptNote
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Vendor").
		Preload("PurchaseOrder").
		Preload("Items.Product").
		First(&grn, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &grn, err
}

func (r *goodsReceiptRepository) Update(ctx context.Context, grn *entity.GoodsReceiptNote) error {
	return r.db.WithContext(ctx).Save(grn).Error
}

func (r *goodsReceiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.GoodsReceiptNote{}, "id = ?", id).Error
}

func (r *goodsReceiptRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.GoodsReceiptFilterParams) ([]entity.GoodsReceiptNote, int64, error) {
	var grns []entity.GoodsReceiptNote
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.GoodsReceiptNote{}).Scopes(TenantScope(ctx))
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
		Find(&grns).Error

	return grns, total, err
}

func (r *goodsReceiptRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.VoucherStatus) error {
	return r.db.WithContext(ctx).Model(&entity.GoodsReceiptNote{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *goodsReceiptRepository) GetByPurchaseOrderID(ctx context.Context, purchaseOrderID uuid.UUID) (*entity.GoodsReceiptNote, error) {
	var grn entity.GoodsReceiptNote
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		First(&grn, "purchase_order_id = ?", purchaseOrderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &grn, err
}

func (r *goodsReceiptRepository) ListSourceIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&entity.GoodsReceiptNote{}).
		Scopes(TenantScope(ctx)).
		Pluck("purchase_order_id", &ids).Error
	return ids, err
}
