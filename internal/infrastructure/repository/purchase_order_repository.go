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

type purchaseOrderRepository struct {
	db *gorm.DB
}

// NewPurchaseOrderRepository creates a new purchase order repository
func NewPurchaseOrderRepository(db *gorm.DB) domainRepo.PurchaseOrderRepository {
	return &purchaseOrderRepository{db: db}
}

func (r *purchaseOrderRepository) Create(ctx context.Context, order *entity.PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *purchaseOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	var order entity.PurchaseOrder
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Vendor").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *purchaseOrderRepository) GetByVoucherNo(ctx context.Context, voucherNo string) (*entity.PurchaseOrder, error) {
	var order entity.PurchaseOrder
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).First(&order, "voucher_no = ?", voucherNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *purchaseOrderRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	var order entity.PurchaseOrder
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Vendor").
		Preload("CreatedBy").
		Preload("Items.Product").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *purchaseOrderRepository) Update(ctx context.Context, order *entity.PurchaseOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *purchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.PurchaseOrder{}, "id = ?", id).Error
}

func (r *purchaseOrderRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.PurchaseOrderFilterParams) ([]entity.PurchaseOrder, int64, error) {
	var orders []entity.PurchaseOrder
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PurchaseOrder{}).Scopes(TenantScope(ctx))
	if !params.SkipUserFilter {
		query = query.Where("user_id = ?", userID)
	}

	if params.Search != "" {
		query = query.Where("voucher_no ILIKE ?", "%"+params.Search+"%")
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
		Find(&orders).Error

	return orders, total, err
}

func (r *purchaseOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PurchaseOrderStatus) error {
	return r.db.WithContext(ctx).Model(&entity.PurchaseOrder{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *purchaseOrderRepository) UpdateGrnStatus(ctx context.Context, id uuid.UUID, status enum.ConversionStatus) error {
	return r.db.WithContext(ctx).Model(&entity.PurchaseOrder{}).
		Where("id = ?", id).
		Update("grn_status", status).Error
}

func (r *purchaseOrderRepository) ListAvailableForReceipt(ctx context.Context, userID uuid.UUID, skipUserFilter bool) ([]entity.PurchaseOrder, error) {
	var orders []entity.PurchaseOrder
	query := r.db.WithContext(ctx).Model(&entity.PurchaseOrder{}).
		Scopes(TenantScope(ctx)).
		Where("status = ? AND grn_status = ?", enum.PurchaseOrderStatusApproved, enum.ConversionStatusPending).
		// A draft GRN consumes its order before submission flips grn_status
		Where("id NOT IN (?)", r.db.Model(&entity.GoodsReceiptNote{}).Select("purchase_order_id"))
	if !skipUserFilter {
		query = query.Where("user_id = ?", userID)
	}
	err := query.Preload("Vendor").Order("date DESC").Find(&orders).Error
	return orders, err
}

type purchaseOrderItemRepository struct {
	db *gorm.DB
}

// NewPurchaseOrderItemRepository creates a new purchase order item repository
func NewPurchaseOrderItemRepository(db *gorm.DB) domainRepo.PurchaseOrderItemRepository {
	return &purchaseOrderItemRepository{db: db}
}

func (r *purchaseOrderItemRepository) CreateBatch(ctx context.Context, items []entity.PurchaseOrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *purchaseOrderItemRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.PurchaseOrderItem, error) {
	var items []entity.PurchaseOrderItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("purchase_order_id = ?", orderID).
		Find(&items).Error
	return items, err
}

func (r *purchaseOrderItemRepository) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.PurchaseOrderItem{}, "purchase_order_id = ?", orderID).Error
}
