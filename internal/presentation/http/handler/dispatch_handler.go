package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/application/service"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	"github.com/kinara-erp/vouchers-api/internal/domain/repository"
	"github.com/kinara-erp/vouchers-api/internal/presentation/http/dto/request"
	"github.com/kinara-erp/vouchers-api/internal/presentation/http/dto/response"
	"github.com/kinara-erp/vouchers-api/pkg/pagination"
)

// DispatchHandler handles dispatch order HTTP requests
type DispatchHandler struct {
	dispatchService *service.DispatchService
}

// NewDispatchHandler creates a new dispatch handler
func NewDispatchHandler(dispatchService *service.DispatchService) *DispatchHandler {
	return &DispatchHandler{dispatchService: dispatchService}
}

// List handles listing dispatch orders
func (h *DispatchHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.DispatchOrderFilterParams{
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
			status := enum.DispatchStatus(statusInt)
			params.Status = &status
		}
	}

	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		if customerID, err := uuid.Parse(customerIDStr); err == nil {
			params.CustomerID = &customerID
		}
	}

	if courierIDStr := c.Query("courier_id"); courierIDStr != "" {
		if courierID, err := uuid.Parse(courierIDStr); err == nil {
			params.CourierID = &courierID
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

	result, err := h.dispatchService.ListDispatchOrders(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Dispatch orders retrieved successfully", result)
}

// Create handles creating a dispatch order
func (h *DispatchHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateDispatchOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateDispatchOrderInput{
		UserID:           *userID,
		CustomerID:       req.CustomerID,
		CourierID:        req.CourierID,
		DeliveryAddress:  req.DeliveryAddress,
		LineDiscountMode: enum.DiscountMode(req.LineDiscountMode),
		DocDiscountMode:  enum.DiscountMode(req.DocDiscountMode),
		DocDiscountValue: req.DocDiscountValue,
		Charges:          toChargeSet(req.Charges),
		Note:             req.Note,
		Items:            toVoucherItems(req.Items),
	}
	if req.Date != nil {
		input.Date = *req.Date
	}

	order, err := h.dispatchService.CreateDispatchOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Dispatch order created successfully", order)
}

// Get handles getting a single dispatch order
func (h *DispatchHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid dispatch order ID")
		return
	}

	order, err := h.dispatchService.GetDispatchOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dispatch order retrieved successfully", order)
}

// MarkDispatched handles marking a pending order dispatched, removing
// the shipped quantities from stock
func (h *DispatchHandler) MarkDispatched(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid dispatch order ID")
		return
	}

	// Body is optional; a tracking number may arrive later
	var req struct {
		TrackingNo *string `json:"tracking_no"`
	}
	_ = c.ShouldBindJSON(&req)

	order, err := h.dispatchService.MarkDispatched(c.Request.Context(), *userID, id, req.TrackingNo, IsSuperAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dispatch order marked dispatched", order)
}

// MarkDelivered handles marking a dispatched order delivered
func (h *DispatchHandler) MarkDelivered(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid dispatch order ID")
		return
	}

	order, err := h.dispatchService.MarkDelivered(c.Request.Context(), *userID, id, IsSuperAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dispatch order marked delivered", order)
}

// Cancel handles cancelling a dispatch order, restoring stock if goods
// already shipped
func (h *DispatchHandler) Cancel(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid dispatch order ID")
		return
	}

	if err := h.dispatchService.CancelDispatchOrder(c.Request.Context(), *userID, id, IsSuperAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dispatch order cancelled successfully", nil)
}

// Delete handles deleting a pending dispatch order
func (h *DispatchHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid dispatch order ID")
		return
	}

	if err := h.dispatchService.DeleteDispatchOrder(c.Request.Context(), *userID, id, IsSuperAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// AvailableForInstallation handles listing delivered dispatch orders
// without an installation job
func (h *DispatchHandler) AvailableForInstallation(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	orders, err := h.dispatchService.ListAvailableForInstallation(c.Request.Context(), *userID, IsSuperAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Available dispatch orders retrieved successfully", orders)
}
