package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/application/service"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	"github.com/kinara-erp/vouchers-api/internal/domain/repository"
	"github.com/kinara-erp/vouchers-api/internal/presentation/http/dto/response"
	"github.com/kinara-erp/vouchers-api/pkg/pagination"
)

// InstallationHandler handles installation job HTTP requests
type InstallationHandler struct {
	installationService *service.InstallationService
}

// NewInstallationHandler creates a new installation handler
func NewInstallationHandler(installationService *service.InstallationService) *InstallationHandler {
	return &InstallationHandler{installationService: installationService}
}

// List handles listing installation jobs
func (h *InstallationHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.InstallationJobFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:         c.Query("search"),
		SortBy:         c.Query("sort_by"),
		SortOrder:      c.Query("sort_order"),
		SkipUserFilter: IsSuperAdmin(c),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.InstallationStatus(statusInt)
			params.Status = &status
		}
	}

	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		if customerID, err := uuid.Parse(customerIDStr); err == nil {
			params.CustomerID = &customerID
		}
	}

	if technicianIDStr := c.Query("technician_id"); technicianIDStr != "" {
		if technicianID, err := uuid.Parse(technicianIDStr); err == nil {
			params.TechnicianID = &technicianID
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.installationService.ListInstallationJobs(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Installation jobs retrieved successfully", result)
}

// CreateFromDispatch handles scheduling an installation job for a
// delivered dispatch order
func (h *InstallationHandler) CreateFromDispatch(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		DispatchOrderID uuid.UUID  `json:"dispatch_order_id" binding:"required"`
		ScheduledAt     *time.Time `json:"scheduled_at"`
		SiteAddress     *string    `json:"site_address"`
		Note            *string    `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateFromDispatchInput{
		UserID:          *userID,
		DispatchOrderID: req.DispatchOrderID,
		SiteAddress:     req.SiteAddress,
		Note:            req.Note,
	}
	if req.ScheduledAt != nil {
		input.ScheduledAt = *req.ScheduledAt
	}

	job, err := h.installationService.CreateFromDispatch(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Installation job created successfully", job)
}

// Get handles getting a single installation job
func (h *InstallationHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid installation job ID")
		return
	}

	job, err := h.installationService.GetInstallationJob(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Installation job retrieved successfully", job)
}

// AssignTechnician handles assigning a technician to a job
func (h *InstallationHandler) AssignTechnician(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid installation job ID")
		return
	}

	var req struct {
		TechnicianID uuid.UUID `json:"technician_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	job, err := h.installationService.AssignTechnician(c.Request.Context(), id, req.TechnicianID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Technician assigned successfully", job)
}

// Start handles moving a scheduled job to in progress
func (h *InstallationHandler) Start(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid installation job ID")
		return
	}

	job, err := h.installationService.StartInstallation(c.Request.Context(), *userID, id, IsSuperAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Installation started successfully", job)
}

// Complete handles completing an in-progress job
func (h *InstallationHandler) Complete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid installation job ID")
		return
	}

	job, err := h.installationService.CompleteInstallation(c.Request.Context(), *userID, id, IsSuperAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Installation completed successfully", job)
}

// Cancel handles cancelling a job that has not completed
func (h *InstallationHandler) Cancel(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid installation job ID")
		return
	}

	if err := h.installationService.CancelInstallation(c.Request.Context(), *userID, id, IsSuperAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Installation job cancelled successfully", nil)
}

// Delete handles deleting a scheduled job
func (h *InstallationHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid installation job ID")
		return
	}

	if err := h.installationService.DeleteInstallationJob(c.Request.Context(), *userID, id, IsSuperAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
