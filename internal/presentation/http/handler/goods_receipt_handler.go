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

// GoodsReceiptHandler handles goods receipt note HTTP requests
type GoodsReceiptHandler struct {
	grnService *service.GoodsReceiptService
}

// NewGoodsReceiptHandler creates a new goods receipt handler
func NewGoodsReceiptHandler(grnService *service.GoodsReceiptService) *GoodsReceiptHandler {
	return &GoodsReceiptHandler{grnService: grnService}
}

// List handles listing goods receipt notes
func (h *GoodsReceiptHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.GoodsReceiptFilterParams{
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
			status := enum.VoucherStatus(statusInt)
			params.Status = &status
		}
	}

	if vendorIDStr := c.Query("vendor_id"); vendorIDStr != "" {
		if vendorID, err := uuid.Parse(vendorIDStr); err == nil {
			params.VendorID = &vendorID
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

	result, err := h.grnService.ListGoodsReceipts(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Goods receipt notes retrieved successfully", result)
}

// CreateFromPurchaseOrder handles deriving a draft GRN from an approved
// purchase order
func (h *GoodsReceiptHandler) CreateFromPurchaseOrder(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		PurchaseOrderID uuid.UUID `json:"purchase_order_id" binding:"required"`
		Note            *string   `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	grn, warnings, err := h.grnService.CreateFromPurchaseOrder(c.Request.Context(), &service.CreateFromPurchaseOrderInput{
		UserID:          *userID,
		PurchaseOrderID: req.PurchaseOrderID,
		Note:            req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Goods receipt note created successfully", gin.H{
		"goods_receipt_note": grn,
		"warnings":           warnings,
	})
}

// Get handles getting a single goods receipt note
func (h *GoodsReceiptHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid goods receipt note ID")
		return
	}

	grn, err := h.grnService.GetGoodsReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Goods receipt note retrieved successfully", grn)
}

// Update handles recording quantities on a draft GRN
func (h *GoodsReceiptHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid goods receipt note ID")
		return
	}

	var req request.UpdateGoodsReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateGoodsReceiptInput{
		ID:           id,
		UserID:       *userID,
		IsSuperAdmin: IsSuperAdmin(c),
		Note:         req.Note,
	}
	for _, line := range req.Lines {
		input.Lines = append(input.Lines, service.ReceiptLineInput{
			ItemID:           line.ItemID,
			ReceivedQuantity: line.ReceivedQuantity,
			AcceptedQuantity: line.AcceptedQuantity,
			RejectedQuantity: line.RejectedQuantity,
		})
	}
	if req.DocDiscountMode != nil {
		mode := enum.DiscountMode(*req.DocDiscountMode)
		input.DocDiscountMode = &mode
	}
	if req.DocDiscountValue != nil {
		input.DocDiscountValue = req.DocDiscountValue
	}
	if req.Charges != nil {
		charges := toChargeSet(req.Charges)
		input.Charges = &charges
	}

	grn, err := h.grnService.UpdateGoodsReceipt(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Goods receipt note updated successfully", grn)
}

// Submit handles submitting a draft GRN
func (h *GoodsReceiptHandler) Submit(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid goods receipt note ID")
		return
	}

	grn, err := h.grnService.SubmitGoodsReceipt(c.Request.Context(), *userID, id, IsSuperAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Goods receipt note submitted successfully", grn)
}

// Delete handles deleting a draft GRN
func (h *GoodsReceiptHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid goods receipt note ID")
		return
	}

	if err := h.grnService.DeleteGoodsReceipt(c.Request.Context(), *userID, id, IsSuperAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
