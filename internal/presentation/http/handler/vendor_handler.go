package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/application/service"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	"github.com/kinara-erp/vouchers-api/internal/domain/repository"
	"github.com/kinara-erp/vouchers-api/internal/presentation/http/dto/response"
	"github.com/kinara-erp/vouchers-api/pkg/pagination"
)

// VendorHandler handles vendor HTTP requests
type VendorHandler struct {
	vendorService *service.VendorService
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(vendorService *service.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// List handles listing vendors
func (h *VendorHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.VendorFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:         c.Query("search"),
		StateCode:      c.Query("state_code"),
		SortBy:         c.Query("sort_by"),
		SortOrder:      c.Query("sort_order"),
		SkipUserFilter: IsSuperAdmin(c),
	}

	if typeStr := c.Query("type"); typeStr != "" {
		vendorType := enum.VendorType(typeStr)
		if vendorType.IsValid() {
			params.Type = &vendorType
		}
	}

	result, err := h.vendorService.ListVendors(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Vendors retrieved successfully", result)
}

// Create handles creating a vendor
func (h *VendorHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Name          string  `json:"name" binding:"required,min=2,max=255"`
		Email         *string `json:"email" binding:"omitempty,email"`
		Phone         *string `json:"phone"`
		Address       *string `json:"address"`
		GSTIN         *string `json:"gstin" binding:"omitempty,len=15"`
		StateCode     string  `json:"state_code" binding:"required,len=2"`
		Type          string  `json:"type"`
		AccountHolder *string `json:"account_holder"`
		AccountNumber *string `json:"account_number"`
		BankName      *string `json:"bank_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	vendorType := enum.VendorType(req.Type)
	if req.Type == "" {
		vendorType = enum.VendorTypeDistributor
	}
	if !vendorType.IsValid() {
		response.BadRequest(c, "Invalid vendor type")
		return
	}

	vendor, err := h.vendorService.CreateVendor(c.Request.Context(), &service.CreateVendorInput{
		UserID:        *userID,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		GSTIN:         req.GSTIN,
		StateCode:     req.StateCode,
		Type:          vendorType,
		AccountHolder: req.AccountHolder,
		AccountNumber: req.AccountNumber,
		BankName:      req.BankName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Vendor created successfully", vendor)
}

// Get handles getting a single vendor
func (h *VendorHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid vendor ID")
		return
	}

	vendor, err := h.vendorService.GetVendor(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vendor retrieved successfully", vendor)
}

// Update handles updating a vendor
func (h *VendorHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid vendor ID")
		return
	}

	var req struct {
		Name          *string `json:"name" binding:"omitempty,min=2,max=255"`
		Email         *string `json:"email" binding:"omitempty,email"`
		Phone         *string `json:"phone"`
		Address       *string `json:"address"`
		GSTIN         *string `json:"gstin" binding:"omitempty,len=15"`
		StateCode     *string `json:"state_code" binding:"omitempty,len=2"`
		Type          *string `json:"type"`
		AccountHolder *string `json:"account_holder"`
		AccountNumber *string `json:"account_number"`
		BankName      *string `json:"bank_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateVendorInput{
		UserID:        *userID,
		ID:            id,
		IsSuperAdmin:  IsSuperAdmin(c),
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		GSTIN:         req.GSTIN,
		StateCode:     req.StateCode,
		AccountHolder: req.AccountHolder,
		AccountNumber: req.AccountNumber,
		BankName:      req.BankName,
	}
	if req.Type != nil {
		vendorType := enum.VendorType(*req.Type)
		if !vendorType.IsValid() {
			response.BadRequest(c, "Invalid vendor type")
			return
		}
		input.Type = &vendorType
	}

	vendor, err := h.vendorService.UpdateVendor(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vendor updated successfully", vendor)
}

// Delete handles deleting a vendor
func (h *VendorHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid vendor ID")
		return
	}

	if err := h.vendorService.DeleteVendor(c.Request.Context(), *userID, id, IsSuperAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
