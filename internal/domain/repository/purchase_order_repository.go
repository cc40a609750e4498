package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	"github.com/kinara-erp/vouchers-api/pkg/pagination"
)

// PurchaseOrderRepository defines the interface for purchase order data operations
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error)
	GetByVoucherNo(ctx context.Context, voucherNo string) (*entity.PurchaseOrder, error)
	// GetWithDetails retrieves an order with its items, products and vendor preloaded
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error)
	Update(ctx context.Context, order *entity.PurchaseOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *PurchaseOrderFilterParams) ([]entity.PurchaseOrder, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PurchaseOrderStatus) error
	// UpdateGrnStatus marks whether the order has been consumed by a goods receipt note
	UpdateGrnStatus(ctx context.Context, id uuid.UUID, status enum.ConversionStatus) error
	// ListAvailableForReceipt returns approved orders not yet consumed by a GRN
	ListAvailableForReceipt(ctx context.Context, userID uuid.UUID, skipUserFilter bool) ([]entity.PurchaseOrder, error)
}

// PurchaseOrderFilterParams contains filtering parameters for purchase order queries
type PurchaseOrderFilterParams struct {
	Pagination     *pagination.PaginationParams
	Search         string
	Status         *enum.PurchaseOrderStatus
	VendorID       *uuid.UUID
	StartDate      *time.Time
	EndDate        *time.Time
	SortBy         string
	SortOrder      string
	SkipUserFilter bool // If true, returns all orders (for super-admin)
}

// PurchaseOrderItemRepository defines the interface for purchase order line item operations
type PurchaseOrderItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.PurchaseOrderItem) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.PurchaseOrderItem, error)
	DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error
}
