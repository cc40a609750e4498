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

// OpportunityHandler handles CRM opportunity HTTP requests
type OpportunityHandler struct {
	opportunityService *service.OpportunityService
}

// NewOpportunityHandler creates a new opportunity handler
func NewOpportunityHandler(opportunityService *service.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{opportunityService: opportunityService}
}

// List handles listing opportunities
func (h *OpportunityHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.OpportunityFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:         c.Query("search"),
		SortBy:         c.Query("sort_by"),
		SortOrder:      c.Query("sort_order"),
		SkipUserFilter: IsSuperAdmin(c),
	}

	if stageStr := c.Query("stage"); stageStr != "" {
		if stageInt, err := strconv.Atoi(stageStr); err == nil {
			stage := enum.OpportunityStage(stageInt)
			params.Stage = &stage
		}
	}

	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		if customerID, err := uuid.Parse(customerIDStr); err == nil {
			params.CustomerID = &customerID
		}
	}

	result, err := h.opportunityService.ListOpportunities(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Opportunities retrieved successfully", result)
}

// Create handles creating an opportunity
func (h *OpportunityHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		CustomerID        *uuid.UUID `json:"customer_id"`
		Title             string     `json:"title" binding:"required,min=2,max=255"`
		ExpectedValue     float64    `json:"expected_value" binding:"min=0"`
		ExpectedCloseDate *time.Time `json:"expected_close_date"`
		Source            *string    `json:"source"`
		Note              *string    `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	opportunity, err := h.opportunityService.CreateOpportunity(c.Request.Context(), &service.CreateOpportunityInput{
		UserID:            *userID,
		CustomerID:        req.CustomerID,
		Title:             req.Title,
		ExpectedValue:     req.ExpectedValue,
		ExpectedCloseDate: req.ExpectedCloseDate,
		Source:            req.Source,
		Note:              req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Opportunity created successfully", opportunity)
}

// Get handles getting a single opportunity
func (h *OpportunityHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid opportunity ID")
		return
	}

	opportunity, err := h.opportunityService.GetOpportunity(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Opportunity retrieved successfully", opportunity)
}

// Update handles updating an opportunity
func (h *OpportunityHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid opportunity ID")
		return
	}

	var req struct {
		CustomerID        *uuid.UUID `json:"customer_id"`
		Title             *string    `json:"title" binding:"omitempty,min=2,max=255"`
		ExpectedValue     *float64   `json:"expected_value" binding:"omitempty,min=0"`
		ExpectedCloseDate *time.Time `json:"expected_close_date"`
		Source            *string    `json:"source"`
		Note              *string    `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	opportunity, err := h.opportunityService.UpdateOpportunity(c.Request.Context(), &service.UpdateOpportunityInput{
		ID:                id,
		UserID:            *userID,
		IsSuperAdmin:      IsSuperAdmin(c),
		CustomerID:        req.CustomerID,
		Title:             req.Title,
		ExpectedValue:     req.ExpectedValue,
		ExpectedCloseDate: req.ExpectedCloseDate,
		Source:            req.Source,
		Note:              req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Opportunity updated successfully", opportunity)
}

// MoveStage handles moving an opportunity to a new pipeline stage
func (h *OpportunityHandler) MoveStage(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid opportunity ID")
		return
	}

	var req struct {
		Stage int `json:"stage" binding:"min=0,max=5"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	opportunity, err := h.opportunityService.MoveStage(c.Request.Context(), *userID, id, enum.OpportunityStage(req.Stage), IsSuperAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Opportunity stage updated successfully", opportunity)
}

// Delete handles deleting an opportunity
func (h *OpportunityHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid opportunity ID")
		return
	}

	if err := h.opportunityService.DeleteOpportunity(c.Request.Context(), *userID, id, IsSuperAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
