package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	"github.com/kinara-erp/vouchers-api/pkg/pagination"
)

// PurchaseVoucherRepository defines the interface for purchase voucher data operations
type PurchaseVoucherRepository interface {
	Create(ctx context.Context, pv *entity.PurchaseVoucher) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseVoucher, error)
	GetByVoucherNo(ctx context.Context, voucherNo string) (*entity.PurchaseVoucher, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.PurchaseVoucher, error)
	Update(ctx context.Context, pv *entity.PurchaseVoucher) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *PurchaseVoucherFilterParams) ([]entity.PurchaseVoucher, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.VoucherStatus) error
	// ListSourceIDs returns the GRN ids consumed by a live purchase voucher
	ListSourceIDs(ctx context.Context) ([]uuid.UUID, error)
}

// PurchaseVoucherFilterParams contains filtering parameters for purchase voucher queries
type PurchaseVoucherFilterParams struct {
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
