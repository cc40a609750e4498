package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	"github.com/kinara-erp/vouchers-api/internal/domain/repository"
	"github.com/kinara-erp/vouchers-api/internal/domain/voucher"
	infraRepo "github.com/kinara-erp/vouchers-api/internal/infrastructure/repository"
	"github.com/kinara-erp/vouchers-api/pkg/apperror"
	"github.com/kinara-erp/vouchers-api/pkg/pagination"
)

// PurchaseVoucherService handles purchase voucher operations. A
// purchase voucher is the vendor invoice raised from a submitted goods
// receipt note; approving it adds the accepted goods to stock.
type PurchaseVoucherService struct {
	pvRepo      repository.PurchaseVoucherRepository
	grnRepo     repository.GoodsReceiptRepository
	productRepo repository.ProductRepository
	tenantRepo  repository.TenantRepository
}

// NewPurchaseVoucherService creates a new purchase voucher service
func NewPurchaseVoucherService(
	pvRepo repository.PurchaseVoucherRepository,
	grnRepo repository.GoodsReceiptRepository,
	productRepo repository.ProductRepository,
	tenantRepo repository.TenantRepository,
) *PurchaseVoucherService {
	return &PurchaseVoucherService{
		pvRepo:      pvRepo,
		grnRepo:     grnRepo,
		productRepo: productRepo,
		tenantRepo:  tenantRepo,
	}
}

// CreateFromGoodsReceiptInput represents the derivation input
type CreateFromGoodsReceiptInput struct {
	UserID             uuid.UUID
	GoodsReceiptNoteID uuid.UUID
	VendorInvoiceNo    *string
	Note               *string
}

// CreateFromGoodsReceipt derives a draft purchase voucher from a
// submitted GRN. Line quantities are the GRN's accepted quantities.
func (s *PurchaseVoucherService) CreateFromGoodsReceipt(ctx context.Context, input *CreateFromGoodsReceiptInput) (*entity.PurchaseVoucher, []string, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, nil, apperror.NewBadRequestError("Tenant context required")
	}

	grn, err := s.grnRepo.GetWithDetails(ctx, input.GoodsReceiptNoteID)
	if err != nil {
		return nil, nil, err
	}
	if grn == nil {
		return nil, nil, apperror.NewNotFoundError("Goods receipt note")
	}

	if grn.Status != enum.VoucherStatusSubmitted {
		return nil, nil, apperror.NewAppError(400, "Only submitted goods receipt notes can be invoiced")
	}

	consumed, err := s.pvRepo.ListSourceIDs(ctx)
	if err != nil {
		return nil, nil, err
	}
	for _, id := range consumed {
		if id == grn.ID {
			return nil, nil, apperror.NewConflictError("Goods receipt note has already been invoiced")
		}
	}

	settings := tenantSettings(ctx, s.tenantRepo, tenantID)
	intrastate := grn.Intrastate
	if grn.Vendor != nil {
		intrastate = isIntrastate(settings.StateCode, grn.Vendor.StateCode)
	}

	draft, err := voucher.DerivePurchaseVoucher(grn, intrastate)
	if err != nil && errors.Is(err, voucher.ErrEmptySource) {
		return nil, nil, apperror.NewAppError(422, "Goods receipt note has no line items")
	}
	warnings := dataQualityWarnings(err)

	draft.UserID = input.UserID
	draft.VoucherNo = newVoucherNo(settings.PurchasePrefix, "PUR-")
	draft.VendorInvoiceNo = input.VendorInvoiceNo
	draft.Note = input.Note

	if err := s.pvRepo.Create(ctx, draft); err != nil {
		return nil, nil, err
	}

	pv, err := s.pvRepo.GetWithDetails(ctx, draft.ID)
	if err != nil {
		return nil, nil, err
	}
	return pv, warnings, nil
}

// GetPurchaseVoucher retrieves a purchase voucher by ID
func (s *PurchaseVoucherService) GetPurchaseVoucher(ctx context.Context, id uuid.UUID) (*entity.PurchaseVoucher, error) {
	pv, err := s.pvRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if pv == nil {
		return nil, apperror.NewNotFoundError("Purchase voucher")
	}
	return pv, nil
}

// ListPurchaseVouchers lists purchase vouchers with filtering
func (s *PurchaseVoucherService) ListPurchaseVouchers(ctx context.Context, userID uuid.UUID, params *repository.PurchaseVoucherFilterParams) (*pagination.PaginatedResult[entity.PurchaseVoucher], error) {
	vouchers, total, err := s.pvRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(vouchers, pag), nil
}

// UpdatePurchaseVoucherInput represents the update input
type UpdatePurchaseVoucherInput struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	IsSuperAdmin     bool
	VendorInvoiceNo  *string
	DocDiscountMode  *enum.DiscountMode
	DocDiscountValue *float64
	Charges          *entity.ChargeSet
	Note             *string
}

// UpdatePurchaseVoucher updates document-level fields of a draft
// voucher and recomputes its totals. Line quantities stay bound to the
// source GRN and are not editable.
func (s *PurchaseVoucherService) UpdatePurchaseVoucher(ctx context.Context, input *UpdatePurchaseVoucherInput) (*entity.PurchaseVoucher, error) {
	pv, err := s.pvRepo.GetWithDetails(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if pv == nil {
		return nil, apperror.NewNotFoundError("Purchase voucher")
	}

	if !input.IsSuperAdmin && pv.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	if pv.Status != enum.VoucherStatusDraft {
		return nil, apperror.NewAppError(400, "Only draft purchase vouchers can be updated")
	}

	if input.VendorInvoiceNo != nil {
		pv.VendorInvoiceNo = input.VendorInvoiceNo
	}
	if input.DocDiscountMode != nil {
		pv.DocDiscountMode = *input.DocDiscountMode
	}
	if input.DocDiscountValue != nil {
		pv.DocDiscountValue = *input.DocDiscountValue
	}
	if input.Charges != nil {
		pv.Charges = *input.Charges
	}
	if input.Note != nil {
		pv.Note = input.Note
	}

	voucher.RecomputePurchaseVoucher(pv)

	if err := s.pvRepo.Update(ctx, pv); err != nil {
		return nil, err
	}

	return s.pvRepo.GetWithDetails(ctx, pv.ID)
}

// ApprovePurchaseVoucher approves a purchase voucher and atomically
// adds the accepted quantities to stock
func (s *PurchaseVoucherService) ApprovePurchaseVoucher(ctx context.Context, userID, pvID uuid.UUID, isSuperAdmin bool) (*entity.PurchaseVoucher, error) {
	pv, err := s.pvRepo.GetWithDetails(ctx, pvID)
	if err != nil {
		return nil, err
	}
	if pv == nil {
		return nil, apperror.NewNotFoundError("Purchase voucher")
	}

	if !isSuperAdmin && pv.UserID != userID {
		return nil, apperror.ErrForbidden
	}

	if pv.Status == enum.VoucherStatusApproved {
		return nil, apperror.NewAppError(400, "Purchase voucher is already approved")
	}
	if pv.Status == enum.VoucherStatusCancelled {
		return nil, apperror.NewAppError(400, "Cancelled purchase vouchers cannot be approved")
	}

	productIDs := make([]uuid.UUID, len(pv.Items))
	for i, item := range pv.Items {
		productIDs[i] = item.ProductID
	}
	if fieldErrors := unresolvedProductErrors(productIDs); len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	stockIncrements := make(map[uuid.UUID]float64, len(pv.Items))
	for _, item := range pv.Items {
		if item.Quantity > 0 {
			stockIncrements[item.ProductID] += item.Quantity
		}
	}

	if err := s.productRepo.AtomicIncrementBatch(ctx, stockIncrements); err != nil {
		return nil, err
	}

	if err := s.pvRepo.UpdateStatus(ctx, pvID, enum.VoucherStatusApproved); err != nil {
		return nil, err
	}

	pv.Status = enum.VoucherStatusApproved
	return pv, nil
}

// CancelPurchaseVoucher cancels a voucher that has not been approved.
// Approved vouchers have already moved stock and must be reversed with
// a purchase return instead.
func (s *PurchaseVoucherService) CancelPurchaseVoucher(ctx context.Context, userID, pvID uuid.UUID, isSuperAdmin bool) error {
	pv, err := s.pvRepo.GetByID(ctx, pvID)
	if err != nil {
		return err
	}
	if pv == nil {
		return apperror.NewNotFoundError("Purchase voucher")
	}

	if !isSuperAdmin && pv.UserID != userID {
		return apperror.ErrForbidden
	}

	if pv.Status == enum.VoucherStatusApproved {
		return apperror.NewConflictError(fmt.Sprintf(
			"Purchase voucher %s is approved; raise a purchase return to reverse it", pv.VoucherNo))
	}
	if pv.Status == enum.VoucherStatusCancelled {
		return apperror.NewAppError(400, "Purchase voucher is already cancelled")
	}

	return s.pvRepo.UpdateStatus(ctx, pvID, enum.VoucherStatusCancelled)
}

// DeletePurchaseVoucher deletes a draft purchase voucher, releasing its
// GRN for a fresh invoice
func (s *PurchaseVoucherService) DeletePurchaseVoucher(ctx context.Context, userID, pvID uuid.UUID, isSuperAdmin bool) error {
	pv, err := s.pvRepo.GetByID(ctx, pvID)
	if err != nil {
		return err
	}
	if pv == nil {
		return apperror.NewNotFoundError("Purchase voucher")
	}

	if !isSuperAdmin && pv.UserID != userID {
		return apperror.ErrForbidden
	}

	if pv.Status != enum.VoucherStatusDraft {
		return apperror.NewAppError(400, "Only draft purchase vouchers can be deleted")
	}

	return s.pvRepo.Delete(ctx, pvID)
}
