package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	"github.com/kinara-erp/vouchers-api/internal/domain/repository"
	"github.com/kinara-erp/vouchers-api/internal/domain/voucher"
	infraRepo "github.com/kinara-erp/vouchers-api/internal/infrastructure/repository"
	"github.com/kinara-erp/vouchers-api/pkg/apperror"
	"github.com/kinara-erp/vouchers-api/pkg/pagination"
)

// InstallationService handles installation job operations. Jobs are
// derived from delivered dispatch orders, one job per dispatch.
type InstallationService struct {
	jobRepo      repository.InstallationJobRepository
	dispatchRepo repository.DispatchOrderRepository
	userRepo     repository.UserRepository
	tenantRepo   repository.TenantRepository
}

// NewInstallationService creates a new installation service
func NewInstallationService(
	jobRepo repository.InstallationJobRepository,
	dispatchRepo repository.DispatchOrderRepository,
	userRepo repository.UserRepository,
	tenantRepo repository.TenantRepository,
) *InstallationService {
	return &InstallationService{
		jobRepo:      jobRepo,
		dispatchRepo: dispatchRepo,
		userRepo:     userRepo,
		tenantRepo:   tenantRepo,
	}
}

// CreateFromDispatchInput represents the derivation input
type CreateFromDispatchInput struct {
	UserID          uuid.UUID
	DispatchOrderID uuid.UUID
	ScheduledAt     time.Time
	SiteAddress     *string
	Note            *string
}

// CreateFromDispatch schedules an installation job for a delivered
// dispatch order. The site address defaults to the dispatch delivery
// address.
func (s *InstallationService) CreateFromDispatch(ctx context.Context, input *CreateFromDispatchInput) (*entity.InstallationJob, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	order, err := s.dispatchRepo.GetByID(ctx, input.DispatchOrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Dispatch order")
	}

	if order.Status != enum.DispatchStatusDelivered {
		return nil, apperror.NewAppError(400, "Only delivered dispatch orders can be scheduled for installation")
	}

	exists, err := s.jobRepo.ExistsByDispatchOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.NewConflictError("Dispatch order already has an installation job")
	}

	scheduledAt := input.ScheduledAt
	if scheduledAt.IsZero() {
		scheduledAt = time.Now().AddDate(0, 0, 1)
	}

	job := voucher.DeriveInstallationJob(order, scheduledAt)
	job.UserID = input.UserID
	job.Note = input.Note
	if input.SiteAddress != nil && *input.SiteAddress != "" {
		job.SiteAddress = *input.SiteAddress
	}

	settings := tenantSettings(ctx, s.tenantRepo, tenantID)
	job.JobNo = newVoucherNo(settings.InstallationPrefix, "JOB-")

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	return s.jobRepo.GetWithDetails(ctx, job.ID)
}

// GetInstallationJob retrieves an installation job by ID
func (s *InstallationService) GetInstallationJob(ctx context.Context, id uuid.UUID) (*entity.InstallationJob, error) {
	job, err := s.jobRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.NewNotFoundError("Installation job")
	}
	return job, nil
}

// ListInstallationJobs lists installation jobs with filtering
func (s *InstallationService) ListInstallationJobs(ctx context.Context, userID uuid.UUID, params *repository.InstallationJobFilterParams) (*pagination.PaginatedResult[entity.InstallationJob], error) {
	jobs, total, err := s.jobRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(jobs, pag), nil
}

// AssignTechnician assigns a technician to an installation job. The
// assignee must be an existing user carrying the technician role.
func (s *InstallationService) AssignTechnician(ctx context.Context, jobID, technicianID uuid.UUID) (*entity.InstallationJob, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.NewNotFoundError("Installation job")
	}

	if job.Status == enum.InstallationStatusCompleted || job.Status == enum.InstallationStatusCancelled {
		return nil, apperror.NewAppError(400, "Cannot assign a technician to a closed job")
	}

	technician, err := s.userRepo.GetWithRoles(ctx, technicianID)
	if err != nil {
		return nil, err
	}
	if technician == nil {
		return nil, apperror.NewNotFoundError("Technician")
	}
	if !technician.HasRole("technician") {
		return nil, apperror.NewBadRequestError("User does not have the technician role")
	}

	if err := s.jobRepo.AssignTechnician(ctx, jobID, technicianID); err != nil {
		return nil, err
	}

	return s.jobRepo.GetWithDetails(ctx, jobID)
}

// StartInstallation moves a scheduled job to in progress
func (s *InstallationService) StartInstallation(ctx context.Context, userID, jobID uuid.UUID, isSuperAdmin bool) (*entity.InstallationJob, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.NewNotFoundError("Installation job")
	}

	// The assigned technician may start their own job
	assigned := job.TechnicianID != nil && *job.TechnicianID == userID
	if !isSuperAdmin && job.UserID != userID && !assigned {
		return nil, apperror.ErrForbidden
	}

	if job.Status != enum.InstallationStatusScheduled {
		return nil, apperror.NewAppError(400, "Only scheduled jobs can be started")
	}

	if err := s.jobRepo.UpdateStatus(ctx, jobID, enum.InstallationStatusInProgress); err != nil {
		return nil, err
	}

	job.Status = enum.InstallationStatusInProgress
	return job, nil
}

// CompleteInstallation marks an in-progress job as completed and
// records the completion time
func (s *InstallationService) CompleteInstallation(ctx context.Context, userID, jobID uuid.UUID, isSuperAdmin bool) (*entity.InstallationJob, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperror.NewNotFoundError("Installation job")
	}

	assigned := job.TechnicianID != nil && *job.TechnicianID == userID
	if !isSuperAdmin && job.UserID != userID && !assigned {
		return nil, apperror.ErrForbidden
	}

	if job.Status != enum.InstallationStatusInProgress {
		return nil, apperror.NewAppError(400, "Only in-progress jobs can be completed")
	}

	now := time.Now()
	job.Status = enum.InstallationStatusCompleted
	job.CompletedAt = &now
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

// CancelInstallation cancels a job that has not completed
func (s *InstallationService) CancelInstallation(ctx context.Context, userID, jobID uuid.UUID, isSuperAdmin bool) error {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job == nil {
		return apperror.NewNotFoundError("Installation job")
	}

	if !isSuperAdmin && job.UserID != userID {
		return apperror.ErrForbidden
	}

	if job.Status == enum.InstallationStatusCompleted {
		return apperror.NewAppError(400, "Completed jobs cannot be cancelled")
	}
	if job.Status == enum.InstallationStatusCancelled {
		return apperror.NewAppError(400, "Installation job is already cancelled")
	}

	return s.jobRepo.UpdateStatus(ctx, jobID, enum.InstallationStatusCancelled)
}

// DeleteInstallationJob deletes a job that has not started
func (s *InstallationService) DeleteInstallationJob(ctx context.Context, userID, jobID uuid.UUID, isSuperAdmin bool) error {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job == nil {
		return apperror.NewNotFoundError("Installation job")
	}

	if !isSuperAdmin && job.UserID != userID {
		return apperror.ErrForbidden
	}

	if job.Status != enum.InstallationStatusScheduled {
		return apperror.NewAppError(400, "Only scheduled jobs can be deleted")
	}

	return s.jobRepo.Delete(ctx, jobID)
}
