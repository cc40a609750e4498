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

type purchaseVoucherRepository struct {
	db *gorm.DB
}

// NewPurchaseVoucherRepository creates a new purchase voucher repository
func NewPurchaseVoucherRepository(db *gorm.DB) domainRepo.PurchaseVoucherRepository {
	return &purchaseVoucherRepository{db: db}
}

func (r *purchaseVoucherRepository) Create(ctx context.Context, pv *entity.PurchaseVoucher) error {
	return r.db.WithContext(ctx).Create(pv).Error
}

func (r *purchaseVoucherRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseVoucher, error) {
	var pv entity.PurchaseVoucher
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Vendor").
		First(&pv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &pv, err
}

func (r *purchaseVoucherRepository) GetByVoucherNo(ctx context.Context, voucherNo string) (*entity.PurchaseVoucher, error) {
	var pv entity.PurchaseVoucher
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).First(&pv, "voucher_no = ?", voucherNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &pv, err
}

func (r *purchaseVoucherRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.PurchaseVoucher, error) {
	var pv entity.PurchaseVoucher
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Vendor").
		Preload("GoodsReceiptNote").
		Preload("Items.Product").
		First(&pv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &pv, err
}

func (r *purchaseVoucherRepository) Update(ctx context.Context, pv *entity.PurchaseVoucher) error {
	return r.db.WithContext(ctx).Save(pv).Error
}

func (r *purchaseVoucherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.PurchaseVoucher{}, "id = ?", id).Error
}

func (r *purchaseVoucherRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.PurchaseVoucherFilterParams) ([]entity.PurchaseVoucher, int64, error) {
	var vouchers []entity.PurchaseVoucher
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PurchaseVoucher{}).Scopes(TenantScope(ctx))
	if !params.SkipUserFilter {
		query = query.Where("user_id = ?", userID)
	}

	if params.Search != "" {
		query = query.Where("voucher_no ILIKE ? OR vendor_invoice_no ILIKE ?",
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
		Find(&vouchers).Error

	return vouchers, total, err
}

func (r *purchaseVoucherRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.VoucherStatus) error {
	return r.db.WithContext(ctx).Model(&entity.PurchaseVoucher{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *purchaseVoucherRepository) ListSourceIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&entity.PurchaseVoucher{}).
		Scopes(TenantScope(ctx)).
		Pluck("goods_receipt_note_id", &ids).Error
	return ids, err
}
