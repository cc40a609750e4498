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

// PurchaseReturnHandler handles purchase return HTTP requests
type PurchaseReturnHandler struct {
	prService *service.PurchaseReturnService
}

// NewPurchaseReturnHandler creates a new purchase return handler
func NewPurchaseReturnHandler(prService *service.PurchaseReturnService) *PurchaseReturnHandler {
	return &PurchaseReturnHandler{prService: prService}
}

// List handles listing purchase returns
func (h *PurchaseReturnHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.PurchaseReturnFilterParams{
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

	result, err := h.prService.ListPurchaseReturns(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Purchase returns retrieved successfully", result)
}

// CreateFromGoodsReceipt handles deriving a draft purchase return from
// a submitted GRN
func (h *PurchaseReturnHandler) CreateFromGoodsReceipt(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		GoodsReceiptNoteID uuid.UUID `json:"goods_receipt_note_id" binding:"required"`
		Note               *string   `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	pr, warnings, err := h.prService.CreateFromGoodsReceipt(c.Request.Context(), &service.CreateReturnFromGoodsReceiptInput{
		UserID:             *userID,
		GoodsReceiptNoteID: req.GoodsReceiptNoteID,
		Note:               req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase return created successfully", gin.H{
		"purchase_return": pr,
		"warnings":        warnings,
	})
}

// Get handles getting a single purchase return
func (h *PurchaseReturnHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase return ID")
		return
	}

	pr, err := h.prService.GetPurchaseReturn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase return retrieved successfully", pr)
}

// Update handles adjusting a draft purchase return
func (h *PurchaseReturnHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase return ID")
		return
	}

	var req request.UpdatePurchaseReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdatePurchaseReturnInput{
		ID:           id,
		UserID:       *userID,
		IsSuperAdmin: IsSuperAdmin(c),
		Note:         req.Note,
	}
	for _, line := range req.Lines {
		input.Lines = append(input.Lines, service.ReturnLineInput{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
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

	pr, err := h.prService.UpdatePurchaseReturn(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase return updated successfully", pr)
}

// Approve handles approving a purchase return, removing the returned
// quantities from stock
func (h *PurchaseReturnHandler) Approve(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase return ID")
		return
	}

	pr, err := h.prService.ApprovePurchaseReturn(c.Request.Context(), *userID, id, IsSuperAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase return approved successfully", pr)
}

// Delete handles deleting a draft purchase return
func (h *PurchaseReturnHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase return ID")
		return
	}

	if err := h.prService.DeletePurchaseReturn(c.Request.Context(), *userID, id, IsSuperAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
