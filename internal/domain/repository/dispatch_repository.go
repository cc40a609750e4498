package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	"github.com/kinara-erp/vouchers-api/pkg/pagination"
)

// DispatchOrderRepository defines the interface for dispatch order data operations
type DispatchOrderRepository interface {
	Create(ctx context.Context, do *entity.DispatchOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.DispatchOrder, error)
	GetByVoucherNo(ctx context.Context, voucherNo string) (*entity.DispatchOrder, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.DispatchOrder, error)
	Update(ctx context.Context, do *entity.DispatchOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *DispatchOrderFilterParams) ([]entity.DispatchOrder, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DispatchStatus) error
	// ListAvailableForInstallation returns delivered dispatch orders not yet
	// consumed by an installation job.
	ListAvailableForInstallation(ctx context.Context, userID uuid.UUID, skipUserFilter bool) ([]entity.DispatchOrder, error)
}

// DispatchOrderFilterParams contains filtering parameters for dispatch order queries
type DispatchOrderFilterParams struct {
	Pagination     *pagination.PaginationParams
	Search         string
	Status         *enum.DispatchStatus
	CustomerID     *uuid.UUID
	CourierID      *uuid.UUID
	StartDate      *time.Time
	EndDate        *time.Time
	SortBy         string
	SortOrder      string
	SkipUserFilter bool
}
