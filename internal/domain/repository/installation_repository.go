package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	"github.com/kinara-erp/vouchers-api/pkg/pagination"
)

// InstallationJobRepository defines the interface for installation job data operations
type InstallationJobRepository interface {
	Create(ctx context.Context, job *entity.InstallationJob) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.InstallationJob, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.InstallationJob, error)
	Update(ctx context.Context, job *entity.InstallationJob) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *InstallationJobFilterParams) ([]entity.InstallationJob, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InstallationStatus) error
	// AssignTechnician sets the technician responsible for the job
	AssignTechnician(ctx context.Context, id uuid.UUID, technicianID uuid.UUID) error
	// GetByDispatchOrderID returns the job consuming the given dispatch order, if any
	GetByDispatchOrderID(ctx context.Context, dispatchOrderID uuid.UUID) (*entity.InstallationJob, error)
	// ExistsByDispatchOrder reports whether the dispatch order already has a job
	ExistsByDispatchOrder(ctx context.Context, dispatchOrderID uuid.UUID) (bool, error)
}

// InstallationJobFilterParams contains filtering parameters for installation job queries
type InstallationJobFilterParams struct {
	Pagination     *pagination.PaginationParams
	Search         string
	Status         *enum.InstallationStatus
	CustomerID     *uuid.UUID
	TechnicianID   *uuid.UUID
	StartDate      *time.Time
	EndDate        *time.Time
	SortBy         string
	SortOrder      string
	SkipUserFilter bool
}
