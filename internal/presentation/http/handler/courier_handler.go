package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/application/service"
	"github.com/kinara-erp/vouchers-api/internal/presentation/http/dto/response"
	"github.com/kinara-erp/vouchers-api/pkg/pagination"
)

// CourierHandler handles courier HTTP requests
type CourierHandler struct {
	courierService *service.CourierService
}

// NewCourierHandler creates a new courier handler
func NewCourierHandler(courierService *service.CourierService) *CourierHandler {
	return &CourierHandler{courierService: courierService}
}

// List handles listing couriers
func (h *CourierHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.courierService.ListCouriers(c.Request.Context(), *userID, params, c.Query("search"), IsSuperAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Couriers retrieved successfully", result)
}

// Create handles creating a courier
func (h *CourierHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Name        string  `json:"name" binding:"required,min=2,max=255"`
		Phone       *string `json:"phone"`
		Email       *string `json:"email" binding:"omitempty,email"`
		ServiceArea *string `json:"service_area"`
		TrackingURL *string `json:"tracking_url" binding:"omitempty,url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	courier, err := h.courierService.CreateCourier(c.Request.Context(), &service.CreateCourierInput{
		UserID:      *userID,
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		ServiceArea: req.ServiceArea,
		TrackingURL: req.TrackingURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Courier created successfully", courier)
}

// Get handles getting a single courier
func (h *CourierHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid courier ID")
		return
	}

	courier, err := h.courierService.GetCourier(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Courier retrieved successfully", courier)
}

// Update handles updating a courier
func (h *CourierHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid courier ID")
		return
	}

	var req struct {
		Name        *string `json:"name" binding:"omitempty,min=2,max=255"`
		Phone       *string `json:"phone"`
		Email       *string `json:"email" binding:"omitempty,email"`
		ServiceArea *string `json:"service_area"`
		TrackingURL *string `json:"tracking_url" binding:"omitempty,url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	courier, err := h.courierService.UpdateCourier(c.Request.Context(), &service.UpdateCourierInput{
		UserID:       *userID,
		ID:           id,
		IsSuperAdmin: IsSuperAdmin(c),
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		ServiceArea:  req.ServiceArea,
		TrackingURL:  req.TrackingURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Courier updated successfully", courier)
}

// Delete handles deleting a courier
func (h *CourierHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid courier ID")
		return
	}

	if err := h.courierService.DeleteCourier(c.Request.Context(), *userID, id, IsSuperAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
