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

// PurchaseVoucherHandler handles purchase voucher HTTP requests
type PurchaseVoucherHandler struct {
	pvService *service.PurchaseVoucherService
}

// NewPurchaseVoucherHandler creates a new purchase voucher handler
func NewPurchaseVoucherHandler(pvService *service.PurchaseVoucherService) *PurchaseVoucherHandler {
	return &PurchaseVoucherHandler{pvService: pvService}
}

// List handles listing purchase vouchers
func (h *PurchaseVoucherHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.PurchaseVoucherFilterParams{
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

	result, err := h.pvService.ListPurchaseVouchers(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Purchase vouchers retrieved successfully", result)
}

// CreateFromGoodsReceipt handles deriving a draft purchase voucher from
// a submitted GRN
func (h *PurchaseVoucherHandler) CreateFromGoodsReceipt(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		GoodsReceiptNoteID uuid.UUID `json:"goods_receipt_note_id" binding:"required"`
		VendorInvoiceNo    *string   `json:"vendor_invoice_no"`
		Note               *string   `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	pv, warnings, err := h.pvService.CreateFromGoodsReceipt(c.Request.Context(), &service.CreateFromGoodsReceiptInput{
		UserID:             *userID,
		GoodsReceiptNoteID: req.GoodsReceiptNoteID,
		VendorInvoiceNo:    req.VendorInvoiceNo,
		Note:               req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase voucher created successfully", gin.H{
		"purchase_voucher": pv,
		"warnings":         warnings,
	})
}

// Get handles getting a single purchase voucher
func (h *PurchaseVoucherHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase voucher ID")
		return
	}

	pv, err := h.pvService.GetPurchaseVoucher(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase voucher retrieved successfully", pv)
}

// Update handles updating a draft purchase voucher
func (h *PurchaseVoucherHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase voucher ID")
		return
	}

	var req request.UpdatePurchaseVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdatePurchaseVoucherInput{
		ID:              id,
		UserID:          *userID,
		IsSuperAdmin:    IsSuperAdmin(c),
		VendorInvoiceNo: req.VendorInvoiceNo,
		Note:            req.Note,
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

	pv, err := h.pvService.UpdatePurchaseVoucher(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase voucher updated successfully", pv)
}

// Approve handles approving a purchase voucher, adding accepted goods
// to stock
func (h *PurchaseVoucherHandler) Approve(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase voucher ID")
		return
	}

	pv, err := h.pvService.ApprovePurchaseVoucher(c.Request.Context(), *userID, id, IsSuperAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase voucher approved successfully", pv)
}

// Cancel handles cancelling an unapproved purchase voucher
func (h *PurchaseVoucherHandler) Cancel(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase voucher ID")
		return
	}

	if err := h.pvService.CancelPurchaseVoucher(c.Request.Context(), *userID, id, IsSuperAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase voucher cancelled successfully", nil)
}

// Delete handles deleting a draft purchase voucher
func (h *PurchaseVoucherHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase voucher ID")
		return
	}

	if err := h.pvService.DeletePurchaseVoucher(c.Request.Context(), *userID, id, IsSuperAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
