package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	"github.com/kinara-erp/vouchers-api/internal/domain/repository"
	"github.com/kinara-erp/vouchers-api/internal/domain/voucher"
	infraRepo "github.com/kinara-erp/vouchers-api/internal/infrastructure/repository"
	"github.com/kinara-erp/vouchers-api/pkg/apperror"
	"github.com/kinara-erp/vouchers-api/pkg/pagination"
)

// PurchaseReturnService handles purchase return operations. A return
// sends rejected goods back to the vendor; approving it removes the
// returned quantities from stock.
type PurchaseReturnService struct {
	prRepo      repository.PurchaseReturnRepository
	grnRepo     repository.GoodsReceiptRepository
	productRepo repository.ProductRepository
	tenantRepo  repository.TenantRepository
}

// NewPurchaseReturnService creates a new purchase return service
func NewPurchaseReturnService(
	prRepo repository.PurchaseReturnRepository,
	grnRepo repository.GoodsReceiptRepository,
	productRepo repository.ProductRepository,
	tenantRepo repository.TenantRepository,
) *PurchaseReturnService {
	return &PurchaseReturnService{
		prRepo:      prRepo,
		grnRepo:     grnRepo,
		productRepo: productRepo,
		tenantRepo:  tenantRepo,
	}
}

// CreateReturnFromGoodsReceiptInput represents the derivation input
type CreateReturnFromGoodsReceiptInput struct {
	UserID             uuid.UUID
	GoodsReceiptNoteID uuid.UUID
	Note               *string
}

// CreateFromGoodsReceipt derives a draft purchase return from a
// submitted GRN. Line quantities default to the GRN's rejected
// quantities; zero-rejection lines are carried so the return can be
// adjusted before submission.
func (s *PurchaseReturnService) CreateFromGoodsReceipt(ctx context.Context, input *CreateReturnFromGoodsReceiptInput) (*entity.PurchaseReturn, []string, error) {
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
		return nil, nil, apperror.NewAppError(400, "Only submitted goods receipt notes can be returned against")
	}

	consumed, err := s.prRepo.ListSourceIDs(ctx)
	if err != nil {
		return nil, nil, err
	}
	for _, id := range consumed {
		if id == grn.ID {
			return nil, nil, apperror.NewConflictError("Goods receipt note already has a purchase return")
		}
	}

	settings := tenantSettings(ctx, s.tenantRepo, tenantID)
	intrastate := grn.Intrastate
	if grn.Vendor != nil {
		intrastate = isIntrastate(settings.StateCode, grn.Vendor.StateCode)
	}

	draft, err := voucher.DerivePurchaseReturn(grn, intrastate)
	if err != nil && errors.Is(err, voucher.ErrEmptySource) {
		return nil, nil, apperror.NewAppError(422, "Goods receipt note has no line items")
	}
	warnings := dataQualityWarnings(err)

	draft.UserID = input.UserID
	draft.VoucherNo = newVoucherNo(settings.PurchaseReturnPrefix, "PRN-")
	draft.Note = input.Note

	if err := s.prRepo.Create(ctx, draft); err != nil {
		return nil, nil, err
	}

	pr, err := s.prRepo.GetWithDetails(ctx, draft.ID)
	if err != nil {
		return nil, nil, err
	}
	return pr, warnings, nil
}

// GetPurchaseReturn retrieves a purchase return by ID
func (s *PurchaseReturnService) GetPurchaseReturn(ctx context.Context, id uuid.UUID) (*entity.PurchaseReturn, error) {
	pr, err := s.prRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if pr == nil {
		return nil, apperror.NewNotFoundError("Purchase return")
	}
	return pr, nil
}

// ListPurchaseReturns lists purchase returns with filtering
func (s *PurchaseReturnService) ListPurchaseReturns(ctx context.Context, userID uuid.UUID, params *repository.PurchaseReturnFilterParams) (*pagination.PaginatedResult[entity.PurchaseReturn], error) {
	returns, total, err := s.prRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(returns, pag), nil
}

// ReturnLineInput adjusts the returned quantity of one line
type ReturnLineInput struct {
	ItemID   uuid.UUID
	Quantity float64
}

// UpdatePurchaseReturnInput represents the update input
type UpdatePurchaseReturnInput struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	IsSuperAdmin     bool
	Lines            []ReturnLineInput
	DocDiscountMode  *enum.DiscountMode
	DocDiscountValue *float64
	Charges          *entity.ChargeSet
	Note             *string
}

// UpdatePurchaseReturn adjusts line quantities and document-level
// fields of a draft return and recomputes its totals
func (s *PurchaseReturnService) UpdatePurchaseReturn(ctx context.Context, input *UpdatePurchaseReturnInput) (*entity.PurchaseReturn, error) {
	pr, err := s.prRepo.GetWithDetails(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if pr == nil {
		return nil, apperror.NewNotFoundError("Purchase return")
	}

	if !input.IsSuperAdmin && pr.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	if pr.Status != enum.VoucherStatusDraft {
		return nil, apperror.NewAppError(400, "Only draft purchase returns can be updated")
	}

	lineByID := make(map[uuid.UUID]ReturnLineInput, len(input.Lines))
	for _, line := range input.Lines {
		lineByID[line.ItemID] = line
	}
	for i := range pr.Items {
		line, ok := lineByID[pr.Items[i].ID]
		if !ok {
			continue
		}
		if line.Quantity < 0 {
			return nil, apperror.NewBadRequestError("Return quantity cannot be negative")
		}
		pr.Items[i].Quantity = line.Quantity
	}

	if input.DocDiscountMode != nil {
		pr.DocDiscountMode = *input.DocDiscountMode
	}
	if input.DocDiscountValue != nil {
		pr.DocDiscountValue = *input.DocDiscountValue
	}
	if input.Charges != nil {
		pr.Charges = *input.Charges
	}
	if input.Note != nil {
		pr.Note = input.Note
	}

	voucher.RecomputePurchaseReturn(pr)

	if err := s.prRepo.Update(ctx, pr); err != nil {
		return nil, err
	}

	return s.prRepo.GetWithDetails(ctx, pr.ID)
}

// ApprovePurchaseReturn approves a purchase return and atomically
// removes the returned quantities from stock. If any product lacks
// sufficient stock the whole approval is refused.
func (s *PurchaseReturnService) ApprovePurchaseReturn(ctx context.Context, userID, prID uuid.UUID, isSuperAdmin bool) (*entity.PurchaseReturn, error) {
	pr, err := s.prRepo.GetWithDetails(ctx, prID)
	if err != nil {
		return nil, err
	}
	if pr == nil {
		return nil, apperror.NewNotFoundError("Purchase return")
	}

	if !isSuperAdmin && pr.UserID != userID {
		return nil, apperror.ErrForbidden
	}

	if pr.Status == enum.VoucherStatusApproved {
		return nil, apperror.NewAppError(400, "Purchase return is already approved")
	}
	if pr.Status == enum.VoucherStatusCancelled {
		return nil, apperror.NewAppError(400, "Cancelled purchase returns cannot be approved")
	}

	productIDs := make([]uuid.UUID, len(pr.Items))
	for i, item := range pr.Items {
		productIDs[i] = item.ProductID
	}
	if fieldErrors := unresolvedProductErrors(productIDs); len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	stockDecrements := make(map[uuid.UUID]float64, len(pr.Items))
	for _, item := range pr.Items {
		if item.Quantity > 0 {
			stockDecrements[item.ProductID] += item.Quantity
		}
	}

	failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, stockDecrements)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		ids := make([]string, len(failedIDs))
		for i, id := range failedIDs {
			ids[i] = id.String()
		}
		return nil, apperror.NewInsufficientStockError(ids)
	}

	if err := s.prRepo.UpdateStatus(ctx, prID, enum.VoucherStatusApproved); err != nil {
		return nil, err
	}

	pr.Status = enum.VoucherStatusApproved
	return pr, nil
}

// DeletePurchaseReturn deletes a draft purchase return
func (s *PurchaseReturnService) DeletePurchaseReturn(ctx context.Context, userID, prID uuid.UUID, isSuperAdmin bool) error {
	pr, err := s.prRepo.GetByID(ctx, prID)
	if err != nil {
		return err
	}
	if pr == nil {
		return apperror.NewNotFoundError("Purchase return")
	}

	if !isSuperAdmin && pr.UserID != userID {
		return apperror.ErrForbidden
	}

	if pr.Status != enum.VoucherStatusDraft {
		return apperror.NewAppError(400, "Only draft purchase returns can be deleted")
	}

	return s.prRepo.Delete(ctx, prID)
}
