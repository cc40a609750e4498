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

// GoodsReceiptService handles goods receipt note operations. GRNs are
// never created from scratch; they are always derived from an approved
// purchase order, and each order can feed at most one GRN.
type GoodsReceiptService struct {
	grnRepo    repository.GoodsReceiptRepository
	orderRepo  repository.PurchaseOrderRepository
	tenantRepo repository.TenantRepository
}

// NewGoodsReceiptService creates a new goods receipt service
func NewGoodsReceiptService(
	grnRepo repository.GoodsReceiptRepository,
	orderRepo repository.PurchaseOrderRepository,
	tenantRepo repository.TenantRepository,
) *GoodsReceiptService {
	return &GoodsReceiptService{
		grnRepo:    grnRepo,
		orderRepo:  orderRepo,
		tenantRepo: tenantRepo,
	}
}

// CreateFromPurchaseOrderInput represents the derivation input
type CreateFromPurchaseOrderInput struct {
	UserID          uuid.UUID
	PurchaseOrderID uuid.UUID
	Note            *string
}

// CreateFromPurchaseOrder derives a draft GRN from an approved purchase
// order. The returned warnings describe lines whose product tax mapping
// was missing and got the default rate; the draft is still usable.
func (s *GoodsReceiptService) CreateFromPurchaseOrder(ctx context.Context, input *CreateFromPurchaseOrderInput) (*entity.GoodsReceiptNote, []string, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, nil, apperror.NewBadRequestError("Tenant context required")
	}

	order, err := s.orderRepo.GetWithDetails(ctx, input.PurchaseOrderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, apperror.NewNotFoundError("Purchase order")
	}

	if order.Status != enum.PurchaseOrderStatusApproved {
		return nil, nil, apperror.NewAppError(400, "Only approved purchase orders can be received")
	}

	// One GRN per order. The consumed set comes from the live GRN rows
	// rather than the order's conversion flag, so a draft blocks a
	// second receipt even before submission flips the flag.
	consumed, err := s.grnRepo.ListSourceIDs(ctx)
	if err != nil {
		return nil, nil, err
	}
	for _, id := range consumed {
		if id == order.ID {
			return nil, nil, apperror.NewConflictError("Purchase order has already been received")
		}
	}

	settings := tenantSettings(ctx, s.tenantRepo, tenantID)
	intrastate := order.Intrastate
	if order.Vendor != nil {
		intrastate = isIntrastate(settings.StateCode, order.Vendor.StateCode)
	}

	draft, err := voucher.DeriveGoodsReceipt(order, intrastate)
	if err != nil {
		switch {
		case errors.Is(err, voucher.ErrSourceConsumed):
			return nil, nil, apperror.NewConflictError("Purchase order has already been received")
		case errors.Is(err, voucher.ErrEmptySource):
			return nil, nil, apperror.NewAppError(422, "Purchase order has no line items")
		}
	}
	warnings := dataQualityWarnings(err)

	draft.UserID = input.UserID
	draft.VoucherNo = newVoucherNo(settings.GoodsReceiptPrefix, "GRN-")
	draft.Note = input.Note

	if err := s.grnRepo.Create(ctx, draft); err != nil {
		return nil, nil, err
	}

	grn, err := s.grnRepo.GetWithDetails(ctx, draft.ID)
	if err != nil {
		return nil, nil, err
	}
	return grn, warnings, nil
}

// GetGoodsReceipt retrieves a goods receipt note by ID
func (s *GoodsReceiptService) GetGoodsReceipt(ctx context.Context, id uuid.UUID) (*entity.GoodsReceiptNote, error) {
	grn, err := s.grnRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if grn == nil {
		return nil, apperror.NewNotFoundError("Goods receipt note")
	}
	return grn, nil
}

// ListGoodsReceipts lists goods receipt notes with filtering
func (s *GoodsReceiptService) ListGoodsReceipts(ctx context.Context, userID uuid.UUID, params *repository.GoodsReceiptFilterParams) (*pagination.PaginatedResult[entity.GoodsReceiptNote], error) {
	grns, total, err := s.grnRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(grns, pag), nil
}

// ReceiptLineInput carries the user-entered quantities for one line
type ReceiptLineInput struct {
	ItemID           uuid.UUID
	ReceivedQuantity float64
	AcceptedQuantity float64
	RejectedQuantity float64
}

// UpdateGoodsReceiptInput represents the update input
type UpdateGoodsReceiptInput struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	IsSuperAdmin     bool
	Lines            []ReceiptLineInput
	DocDiscountMode  *enum.DiscountMode
	DocDiscountValue *float64
	Charges          *entity.ChargeSet
	Note             *string
}

// UpdateGoodsReceipt records received, accepted and rejected quantities
// on a draft GRN and recomputes its totals. The ordered quantities are
// copies of the source order and cannot be changed here.
func (s *GoodsReceiptService) UpdateGoodsReceipt(ctx context.Context, input *UpdateGoodsReceiptInput) (*entity.GoodsReceiptNote, error) {
	grn, err := s.grnRepo.GetWithDetails(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if grn == nil {
		return nil, apperror.NewNotFoundError("Goods receipt note")
	}

	if !input.IsSuperAdmin && grn.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	if grn.Status != enum.VoucherStatusDraft {
		return nil, apperror.NewAppError(400, "Only draft goods receipt notes can be updated")
	}

	lineByID := make(map[uuid.UUID]ReceiptLineInput, len(input.Lines))
	for _, line := range input.Lines {
		lineByID[line.ItemID] = line
	}
	for i := range grn.Items {
		line, ok := lineByID[grn.Items[i].ID]
		if !ok {
			continue
		}
		grn.Items[i].ReceivedQuantity = line.ReceivedQuantity
		grn.Items[i].AcceptedQuantity = line.AcceptedQuantity
		grn.Items[i].RejectedQuantity = line.RejectedQuantity
	}

	if input.DocDiscountMode != nil {
		grn.DocDiscountMode = *input.DocDiscountMode
	}
	if input.DocDiscountValue != nil {
		grn.DocDiscountValue = *input.DocDiscountValue
	}
	if input.Charges != nil {
		grn.Charges = *input.Charges
	}
	if input.Note != nil {
		grn.Note = input.Note
	}

	voucher.RecomputeGoodsReceipt(grn)

	if err := s.grnRepo.Update(ctx, grn); err != nil {
		return nil, err
	}

	return s.grnRepo.GetWithDetails(ctx, grn.ID)
}

// SubmitGoodsReceipt validates the recorded quantities, submits the GRN
// and marks the source purchase order as consumed
func (s *GoodsReceiptService) SubmitGoodsReceipt(ctx context.Context, userID, grnID uuid.UUID, isSuperAdmin bool) (*entity.GoodsReceiptNote, error) {
	grn, err := s.grnRepo.GetWithDetails(ctx, grnID)
	if err != nil {
		return nil, err
	}
	if grn == nil {
		return nil, apperror.NewNotFoundError("Goods receipt note")
	}

	if !isSuperAdmin && grn.UserID != userID {
		return nil, apperror.ErrForbidden
	}

	if grn.Status != enum.VoucherStatusDraft {
		return nil, apperror.NewAppError(400, "Only draft goods receipt notes can be submitted")
	}

	if err := voucher.ValidateGoodsReceipt(grn.Items); err != nil {
		var qe *voucher.QuantityError
		if errors.As(err, &qe) {
			fieldErrors := make([]apperror.FieldError, 0, len(qe.Problems))
			for _, p := range qe.Problems {
				fieldErrors = append(fieldErrors, apperror.FieldError{
					Field:   fmt.Sprintf("items[%d]", p.Line-1),
					Message: p.Message,
				})
			}
			return nil, apperror.NewValidationError(fieldErrors)
		}
		return nil, err
	}

	if err := s.grnRepo.UpdateStatus(ctx, grnID, enum.VoucherStatusSubmitted); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateGrnStatus(ctx, grn.PurchaseOrderID, enum.ConversionStatusCompleted); err != nil {
		return nil, err
	}

	grn.Status = enum.VoucherStatusSubmitted
	return grn, nil
}

// DeleteGoodsReceipt deletes a draft GRN, releasing its purchase order
// for a fresh receipt
func (s *GoodsReceiptService) DeleteGoodsReceipt(ctx context.Context, userID, grnID uuid.UUID, isSuperAdmin bool) error {
	grn, err := s.grnRepo.GetByID(ctx, grnID)
	if err != nil {
		return err
	}
	if grn == nil {
		return apperror.NewNotFoundError("Goods receipt note")
	}

	if !isSuperAdmin && grn.UserID != userID {
		return apperror.ErrForbidden
	}

	if grn.Status != enum.VoucherStatusDraft {
		return apperror.NewAppError(400, "Only draft goods receipt notes can be deleted")
	}

	return s.grnRepo.Delete(ctx, grnID)
}
