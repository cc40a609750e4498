package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	"github.com/kinara-erp/vouchers-api/pkg/pagination"
)

// GoodsReceiptRepository defines the interface for goods receipt note data operations
type GoodsReceiptRepository interface {
	Create(ctx context.Context, grn *entity.GoodsReceiptNote) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.GoodsReceiptNote, error)
	GetByVoucherNo(ctx context.Context, voucherNo string) (*entity.GoodsReceiptNote, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.GoodsReceiptNote, error)
	Update(ctx context.Context, grn *entity.GoodsReceiptNote) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *GoodsReceiptFilterParams) ([]entity.GoodsReceiptNote, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.VoucherStatus) error
	// GetByPurchaseOrderID returns the GRN consuming the given purchase order, if any
	GetByPurchaseOrderID(ctx context.Context, purchaseOrderID uuid.UUID) (*entity.GoodsReceiptNote, error)
	// ListSourceIDs returns the purchase order ids consumed by a live GRN
	ListSourceIDs(ctx context.Context) ([]uuid.UUID, error)
}

// GoodsReceiptFilterParams contains filtering parameters for goods receipt queries
type GoodsReceiptFilterParams struct {
	Pagination     *pagination.PaginationParams
	Search         string
	Status         *enum.VoucherStatus
	VendorID       *uuid.UUID
	StartDate      *time.Time
	EndDate        *time.Time
	SortBy         string
	SortOrder      string
	SkipUserFilter bool
}
