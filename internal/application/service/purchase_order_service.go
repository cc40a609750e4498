package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	"github.com/kinara-erp/vouchers-api/internal/domain/repository"
	"github.com/kinara-erp/vouchers-api/internal/domain/voucher"
	infraRepo "github.com/kinara-erp/vouchers-api/internal/infrastructure/repository"
	"github.com/kinara-erp/vouchers-api/pkg/apperror"
	"github.com/kinara-erp/vouchers-api/pkg/email"
	"github.com/kinara-erp/vouchers-api/pkg/pagination"
)

// PurchaseOrderService handles purchase order operations
type PurchaseOrderService struct {
	orderRepo    repository.PurchaseOrderRepository
	itemRepo     repository.PurchaseOrderItemRepository
	grnRepo      repository.GoodsReceiptRepository
	productRepo  repository.ProductRepository
	vendorRepo   repository.VendorRepository
	tenantRepo   repository.TenantRepository
	emailService *email.EmailService
}

// NewPurchaseOrderService creates a new purchase order service
func NewPurchaseOrderService(
	orderRepo repository.PurchaseOrderRepository,
	itemRepo repository.PurchaseOrderItemRepository,
	grnRepo repository.GoodsReceiptRepository,
	productRepo repository.ProductRepository,
	vendorRepo repository.VendorRepository,
	tenantRepo repository.TenantRepository,
	emailService *email.EmailService,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo:    orderRepo,
		itemRepo:     itemRepo,
		grnRepo:      grnRepo,
		productRepo:  productRepo,
		vendorRepo:   vendorRepo,
		tenantRepo:   tenantRepo,
		emailService: emailService,
	}
}

// CreatePurchaseOrderInput represents the create purchase order input
type CreatePurchaseOrderInput struct {
	UserID           uuid.UUID
	VendorID         uuid.UUID
	Date             time.Time
	LineDiscountMode enum.DiscountMode
	DocDiscountMode  enum.DiscountMode
	DocDiscountValue float64
	Charges          entity.ChargeSet
	Note             *string
	Items            []VoucherItemInput
}

// CreatePurchaseOrder creates a new purchase order with its line items.
// The jurisdiction (intrastate or interstate) is determined by comparing
// the vendor's state code against the tenant's configured state.
func (s *PurchaseOrderService) CreatePurchaseOrder(ctx context.Context, input *CreatePurchaseOrderInput) (*entity.PurchaseOrder, error) {
	// Extract tenant ID from context
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("At least one line item is required")
	}

	vendor, err := s.vendorRepo.GetByID(ctx, input.VendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, apperror.NewNotFoundError("Vendor")
	}

	items, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	settings := tenantSettings(ctx, s.tenantRepo, tenantID)

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	order := &entity.PurchaseOrder{
		TenantID:         tenantID,
		UserID:           input.UserID,
		VendorID:         vendor.ID,
		CreatedByID:      &input.UserID,
		Date:             date,
		VoucherNo:        newVoucherNo(settings.PurchaseOrderPrefix, "PO-"),
		Status:           enum.PurchaseOrderStatusPending,
		GrnStatus:        enum.ConversionStatusPending,
		Intrastate:       isIntrastate(settings.StateCode, vendor.StateCode),
		LineDiscountMode: input.LineDiscountMode,
		DocDiscountMode:  input.DocDiscountMode,
		DocDiscountValue: input.DocDiscountValue,
		Charges:          input.Charges,
		Note:             input.Note,
		Items:            items,
	}
	voucher.RecomputePurchaseOrder(order)

	// Items are persisted separately so they get explicit batch semantics
	items = order.Items
	order.Items = nil

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	for i := range items {
		items[i].PurchaseOrderID = order.ID
	}
	if err := s.itemRepo.CreateBatch(ctx, items); err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithDetails(ctx, order.ID)
}

// buildItems resolves products and fills snapshot fields for the line
// items. Product name, HSN code, unit and GST rate are frozen onto the
// voucher at creation time.
func (s *PurchaseOrderService) buildItems(ctx context.Context, inputs []VoucherItemInput) ([]entity.PurchaseOrderItem, error) {
	productIDs := make([]uuid.UUID, len(inputs))
	for i, item := range inputs {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	items := make([]entity.PurchaseOrderItem, 0, len(inputs))
	for _, in := range inputs {
		product, exists := productMap[in.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError("Product " + in.ProductID.String())
		}

		hsnCode := ""
		if product.HSNCode != nil {
			hsnCode = *product.HSNCode
		}

		items = append(items, entity.PurchaseOrderItem{
			ProductID:          product.ID,
			ProductName:        product.Name,
			HSNCode:            hsnCode,
			Unit:               product.UnitLabel(),
			Quantity:           in.Quantity,
			UnitPrice:          in.UnitPrice,
			DiscountPercentage: in.DiscountPercentage,
			DiscountAmount:     in.DiscountAmount,
			GSTRate:            product.EffectiveGSTRate(),
		})
	}
	return items, nil
}

// GetPurchaseOrder retrieves a purchase order by ID
func (s *PurchaseOrderService) GetPurchaseOrder(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}
	return order, nil
}

// ListPurchaseOrders lists purchase orders with filtering
func (s *PurchaseOrderService) ListPurchaseOrders(ctx context.Context, userID uuid.UUID, params *repository.PurchaseOrderFilterParams) (*pagination.PaginatedResult[entity.PurchaseOrder], error) {
	orders, total, err := s.orderRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// UpdatePurchaseOrderInput represents the update purchase order input
type UpdatePurchaseOrderInput struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	IsSuperAdmin     bool
	VendorID         *uuid.UUID
	Date             *time.Time
	LineDiscountMode *enum.DiscountMode
	DocDiscountMode  *enum.DiscountMode
	DocDiscountValue *float64
	Charges          *entity.ChargeSet
	Note             *string
	Items            []VoucherItemInput
}

// UpdatePurchaseOrder updates a pending purchase order. Approved,
// cancelled and consumed orders are immutable.
func (s *PurchaseOrderService) UpdatePurchaseOrder(ctx context.Context, input *UpdatePurchaseOrderInput) (*entity.PurchaseOrder, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}

	// Super-admin can update any order, regular users only their own
	if !input.IsSuperAdmin && order.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	if order.Status != enum.PurchaseOrderStatusPending {
		return nil, apperror.NewAppError(400, "Only pending purchase orders can be updated")
	}
	if order.GrnStatus == enum.ConversionStatusCompleted {
		return nil, apperror.NewConflictError("Purchase order has already been received")
	}

	if input.VendorID != nil {
		vendor, err := s.vendorRepo.GetByID(ctx, *input.VendorID)
		if err != nil {
			return nil, err
		}
		if vendor == nil {
			return nil, apperror.NewNotFoundError("Vendor")
		}
		order.VendorID = vendor.ID

		settings := tenantSettings(ctx, s.tenantRepo, order.TenantID)
		order.Intrastate = isIntrastate(settings.StateCode, vendor.StateCode)
	}
	if input.Date != nil {
		order.Date = *input.Date
	}
	if input.LineDiscountMode != nil {
		order.LineDiscountMode = *input.LineDiscountMode
	}
	if input.DocDiscountMode != nil {
		order.DocDiscountMode = *input.DocDiscountMode
	}
	if input.DocDiscountValue != nil {
		order.DocDiscountValue = *input.DocDiscountValue
	}
	if input.Charges != nil {
		order.Charges = *input.Charges
	}
	if input.Note != nil {
		order.Note = input.Note
	}

	// Replacing the line items rebuilds product snapshots from scratch
	if input.Items != nil {
		if len(input.Items) == 0 {
			return nil, apperror.NewBadRequestError("At least one line item is required")
		}
		items, err := s.buildItems(ctx, input.Items)
		if err != nil {
			return nil, err
		}
		for i := range items {
			items[i].PurchaseOrderID = order.ID
		}
		order.Items = items
	}

	voucher.RecomputePurchaseOrder(order)

	items := order.Items
	order.Items = nil
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	// Lines are rewritten wholesale; recomputed amounts must land even
	// when only document-level fields changed
	for i := range items {
		items[i].PurchaseOrderID = order.ID
		items[i].ID = uuid.Nil
	}
	if err := s.itemRepo.DeleteByOrderID(ctx, order.ID); err != nil {
		return nil, err
	}
	if err := s.itemRepo.CreateBatch(ctx, items); err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithDetails(ctx, order.ID)
}

// ApprovePurchaseOrder approves a pending purchase order and notifies
// the vendor by email when notifications are enabled.
func (s *PurchaseOrderService) ApprovePurchaseOrder(ctx context.Context, userID, orderID uuid.UUID, isSuperAdmin bool) (*entity.PurchaseOrder, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}

	if !isSuperAdmin && order.UserID != userID {
		return nil, apperror.ErrForbidden
	}

	if order.Status == enum.PurchaseOrderStatusApproved {
		return nil, apperror.NewAppError(400, "Purchase order is already approved")
	}
	if order.Status == enum.PurchaseOrderStatusCancelled {
		return nil, apperror.NewAppError(400, "Cancelled purchase orders cannot be approved")
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, enum.PurchaseOrderStatusApproved); err != nil {
		return nil, err
	}
	order.Status = enum.PurchaseOrderStatusApproved

	s.notifyVendor(ctx, order)

	return order, nil
}

// notifyVendor sends the approval email. Notification failure never
// blocks the approval itself.
func (s *PurchaseOrderService) notifyVendor(ctx context.Context, order *entity.PurchaseOrder) {
	if s.emailService == nil || order.Vendor == nil || order.Vendor.Email == nil {
		return
	}
	settings := tenantSettings(ctx, s.tenantRepo, order.TenantID)
	if !settings.EmailNotifications {
		return
	}
	_ = s.emailService.SendPurchaseOrderApprovedEmail(
		*order.Vendor.Email, order.Vendor.Name, order.VoucherNo, order.Totals.GrandTotal)
}

// CancelPurchaseOrder cancels a purchase order that has not yet been
// consumed by a goods receipt note
func (s *PurchaseOrderService) CancelPurchaseOrder(ctx context.Context, userID, orderID uuid.UUID, isSuperAdmin bool) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Purchase order")
	}

	if !isSuperAdmin && order.UserID != userID {
		return apperror.ErrForbidden
	}

	if order.GrnStatus == enum.ConversionStatusCompleted {
		return apperror.NewConflictError("Purchase order has already been received")
	}
	if order.Status == enum.PurchaseOrderStatusCancelled {
		return apperror.NewAppError(400, "Purchase order is already cancelled")
	}

	return s.orderRepo.UpdateStatus(ctx, orderID, enum.PurchaseOrderStatusCancelled)
}

// DeletePurchaseOrder deletes a pending purchase order
func (s *PurchaseOrderService) DeletePurchaseOrder(ctx context.Context, userID, orderID uuid.UUID, isSuperAdmin bool) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Purchase order")
	}

	if !isSuperAdmin && order.UserID != userID {
		return apperror.ErrForbidden
	}

	if order.Status == enum.PurchaseOrderStatusApproved {
		return apperror.NewAppError(400, "Cannot delete an approved purchase order")
	}

	if err := s.itemRepo.DeleteByOrderID(ctx, orderID); err != nil {
		return err
	}

	return s.orderRepo.Delete(ctx, orderID)
}

// ListAvailableForReceipt returns approved purchase orders that have
// not yet been consumed by a goods receipt note. The picker consults
// the same live GRN rows as the derivation guard, so an order held by
// an unsubmitted draft is never offered.
func (s *PurchaseOrderService) ListAvailableForReceipt(ctx context.Context, userID uuid.UUID, isSuperAdmin bool) ([]entity.PurchaseOrder, error) {
	orders, err := s.orderRepo.ListAvailableForReceipt(ctx, userID, isSuperAdmin)
	if err != nil {
		return nil, err
	}

	consumed, err := s.grnRepo.ListSourceIDs(ctx)
	if err != nil {
		return nil, err
	}
	consumedSet := make(map[uuid.UUID]bool, len(consumed))
	for _, id := range consumed {
		consumedSet[id] = true
	}

	available := make([]entity.PurchaseOrder, 0, len(orders))
	for _, order := range orders {
		if !consumedSet[order.ID] {
			available = append(available, order)
		}
	}
	return available, nil
}
