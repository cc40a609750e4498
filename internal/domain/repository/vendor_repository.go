package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	"github.com/kinara-erp/vouchers-api/pkg/pagination"
)

// VendorRepository defines the interface for vendor data operations
type VendorRepository interface {
	Create(ctx context.Context, vendor *entity.Vendor) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Vendor, error)
	GetByEmail(ctx context.Context, email string) (*entity.Vendor, error)
	GetByGSTIN(ctx context.Context, gstin string) (*entity.Vendor, error)
	Update(ctx context.Context, vendor *entity.Vendor) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *VendorFilterParams) ([]entity.Vendor, int64, error)
}

// VendorFilterParams contains filtering parameters for vendor queries
type VendorFilterParams struct {
	Pagination     *pagination.PaginationParams
	Search         string
	Type           *enum.VendorType
	StateCode      string
	SortBy         string
	SortOrder      string
	SkipUserFilter bool
}
