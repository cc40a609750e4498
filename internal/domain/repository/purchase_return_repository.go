package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	"github.com/kinara-erp/vouchers-api/pkg/pagination"
)

// PurchaseReturnRepository defines the interface for purchase return data operations
type PurchaseReturnRepository interface {
	Create(ctx context.Context, pr *entity.PurchaseReturn) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseReturn, error)
	GetByVoucherNo(ctx context.Context, voucherNo string) (*entity.PurchaseReturn, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.PurchaseReturn, error)
	Update(ctx context.Context, pr *entity.PurchaseReturn) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *PurchaseReturnFilterParams) ([]entity.PurchaseReturn, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.VoucherStatus) error
	// ListSourceIDs returns the GRN ids consumed by a live purchase return
	ListSourceIDs(ctx context.Context) ([]uuid.UUID, error)
}

// PurchaseReturnFilterParams contains filtering parameters for purchase return queries
type PurchaseReturnFilterParams struct {
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
