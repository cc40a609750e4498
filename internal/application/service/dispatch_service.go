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
	"github.com/kinara-erp/vouchers-api/pkg/pagination"
)

// DispatchService handles dispatch order operations. Marking an order
// dispatched removes the shipped quantities from stock; cancelling a
// dispatched order puts them back.
type DispatchService struct {
	dispatchRepo repository.DispatchOrderRepository
	customerRepo repository.CustomerRepository
	courierRepo  repository.CourierRepository
	productRepo  repository.ProductRepository
	tenantRepo   repository.TenantRepository
}

// NewDispatchService creates a new dispatch service
func NewDispatchService(
	dispatchRepo repository.DispatchOrderRepository,
	customerRepo repository.CustomerRepository,
	courierRepo repository.CourierRepository,
	productRepo repository.ProductRepository,
	tenantRepo repository.TenantRepository,
) *DispatchService {
	return &DispatchService{
		dispatchRepo: dispatchRepo,
		customerRepo: customerRepo,
		courierRepo:  courierRepo,
		productRepo:  productRepo,
		tenantRepo:   tenantRepo,
	}
}

// CreateDispatchOrderInput represents the create dispatch order input
type CreateDispatchOrderInput struct {
	UserID           uuid.UUID
	CustomerID       uuid.UUID
	CourierID        *uuid.UUID
	Date             time.Time
	DeliveryAddress  string
	LineDiscountMode enum.DiscountMode
	DocDiscountMode  enum.DiscountMode
	DocDiscountValue float64
	Charges          entity.ChargeSet
	Note             *string
	Items            []VoucherItemInput
}

// CreateDispatchOrder creates a new dispatch order with its line items.
// The jurisdiction is determined by the customer's state code; the
// delivery address defaults to the customer's when left empty.
func (s *DispatchService) CreateDispatchOrder(ctx context.Context, input *CreateDispatchOrderInput) (*entity.DispatchOrder, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("At least one line item is required")
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.CourierID != nil {
		courier, err := s.courierRepo.GetByID(ctx, *input.CourierID)
		if err != nil {
			return nil, err
		}
		if courier == nil {
			return nil, apperror.NewNotFoundError("Courier")
		}
	}

	items, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	settings := tenantSettings(ctx, s.tenantRepo, tenantID)

	deliveryAddress := input.DeliveryAddress
	if deliveryAddress == "" && customer.DeliveryAddress != nil {
		deliveryAddress = *customer.DeliveryAddress
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	order := &entity.DispatchOrder{
		TenantID:         tenantID,
		UserID:           input.UserID,
		CustomerID:       customer.ID,
		CourierID:        input.CourierID,
		Date:             date,
		VoucherNo:        newVoucherNo(settings.DispatchPrefix, "DSP-"),
		DeliveryAddress:  deliveryAddress,
		Status:           enum.DispatchStatusPending,
		Intrastate:       isIntrastate(settings.StateCode, customer.StateCode),
		LineDiscountMode: input.LineDiscountMode,
		DocDiscountMode:  input.DocDiscountMode,
		DocDiscountValue: input.DocDiscountValue,
		Charges:          input.Charges,
		Note:             input.Note,
		Items:            items,
	}
	voucher.RecomputeDispatchOrder(order)

	if err := s.dispatchRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	return s.dispatchRepo.GetWithDetails(ctx, order.ID)
}

// buildItems resolves products and freezes their snapshot fields onto
// the dispatch lines, priced at the product's selling price unless
// overridden
func (s *DispatchService) buildItems(ctx context.Context, inputs []VoucherItemInput) ([]entity.DispatchOrderItem, error) {
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

	items := make([]entity.DispatchOrderItem, 0, len(inputs))
	for _, in := range inputs {
		product, exists := productMap[in.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError("Product " + in.ProductID.String())
		}

		hsnCode := ""
		if product.HSNCode != nil {
			hsnCode = *product.HSNCode
		}

		unitPrice := in.UnitPrice
		if unitPrice == 0 {
			unitPrice = product.SellingPrice
		}

		items = append(items, entity.DispatchOrderItem{
			ProductID:          product.ID,
			ProductName:        product.Name,
			HSNCode:            hsnCode,
			Unit:               product.UnitLabel(),
			Quantity:           in.Quantity,
			UnitPrice:          unitPrice,
			DiscountPercentage: in.DiscountPercentage,
			DiscountAmount:     in.DiscountAmount,
			GSTRate:            product.EffectiveGSTRate(),
		})
	}
	return items, nil
}

// GetDispatchOrder retrieves a dispatch order by ID
func (s *DispatchService) GetDispatchOrder(ctx context.Context, id uuid.UUID) (*entity.DispatchOrder, error) {
	order, err := s.dispatchRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Dispatch order")
	}
	return order, nil
}

// ListDispatchOrders lists dispatch orders with filtering
func (s *DispatchService) ListDispatchOrders(ctx context.Context, userID uuid.UUID, params *repository.DispatchOrderFilterParams) (*pagination.PaginatedResult[entity.DispatchOrder], error) {
	orders, total, err := s.dispatchRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// MarkDispatched moves a pending order to dispatched, recording the
// tracking number and atomically removing the shipped quantities from
// stock. Insufficient stock refuses the whole dispatch.
func (s *DispatchService) MarkDispatched(ctx context.Context, userID, orderID uuid.UUID, trackingNo *string, isSuperAdmin bool) (*entity.DispatchOrder, error) {
	order, err := s.dispatchRepo.GetWithDetails(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Dispatch order")
	}

	if !isSuperAdmin && order.UserID != userID {
		return nil, apperror.ErrForbidden
	}

	if order.Status != enum.DispatchStatusPending {
		return nil, apperror.NewAppError(400, "Only pending dispatch orders can be dispatched")
	}

	stockDecrements := make(map[uuid.UUID]float64, len(order.Items))
	for _, item := range order.Items {
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

	if trackingNo != nil {
		order.TrackingNo = trackingNo
		order.Status = enum.DispatchStatusDispatched
		if err := s.dispatchRepo.Update(ctx, order); err != nil {
			return nil, err
		}
	} else {
		if err := s.dispatchRepo.UpdateStatus(ctx, orderID, enum.DispatchStatusDispatched); err != nil {
			return nil, err
		}
		order.Status = enum.DispatchStatusDispatched
	}

	return order, nil
}

// MarkDelivered moves a dispatched order to delivered, making it
// available for installation scheduling
func (s *DispatchService) MarkDelivered(ctx context.Context, userID, orderID uuid.UUID, isSuperAdmin bool) (*entity.DispatchOrder, error) {
	order, err := s.dispatchRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Dispatch order")
	}

	if !isSuperAdmin && order.UserID != userID {
		return nil, apperror.ErrForbidden
	}

	if order.Status != enum.DispatchStatusDispatched {
		return nil, apperror.NewAppError(400, "Only dispatched orders can be marked delivered")
	}

	if err := s.dispatchRepo.UpdateStatus(ctx, orderID, enum.DispatchStatusDelivered); err != nil {
		return nil, err
	}

	order.Status = enum.DispatchStatusDelivered
	return order, nil
}

// CancelDispatchOrder cancels a dispatch order. Goods already shipped
// are put back into stock.
func (s *DispatchService) CancelDispatchOrder(ctx context.Context, userID, orderID uuid.UUID, isSuperAdmin bool) error {
	order, err := s.dispatchRepo.GetWithDetails(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Dispatch order")
	}

	if !isSuperAdmin && order.UserID != userID {
		return apperror.ErrForbidden
	}

	if order.Status == enum.DispatchStatusCancelled {
		return apperror.NewAppError(400, "Dispatch order is already cancelled")
	}

	// Stock left the shelf at dispatch time; restore it on cancellation
	if order.Status == enum.DispatchStatusDispatched || order.Status == enum.DispatchStatusDelivered {
		stockIncrements := make(map[uuid.UUID]float64, len(order.Items))
		for _, item := range order.Items {
			if item.Quantity > 0 {
				stockIncrements[item.ProductID] += item.Quantity
			}
		}
		if err := s.productRepo.AtomicIncrementBatch(ctx, stockIncrements); err != nil {
			return err
		}
	}

	return s.dispatchRepo.UpdateStatus(ctx, orderID, enum.DispatchStatusCancelled)
}

// DeleteDispatchOrder deletes a pending dispatch order
func (s *DispatchService) DeleteDispatchOrder(ctx context.Context, userID, orderID uuid.UUID, isSuperAdmin bool) error {
	order, err := s.dispatchRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Dispatch order")
	}

	if !isSuperAdmin && order.UserID != userID {
		return apperror.ErrForbidden
	}

	if order.Status != enum.DispatchStatusPending {
		return apperror.NewAppError(400, "Only pending dispatch orders can be deleted")
	}

	return s.dispatchRepo.Delete(ctx, orderID)
}

// ListAvailableForInstallation returns delivered dispatch orders that
// do not yet have an installation job
func (s *DispatchService) ListAvailableForInstallation(ctx context.Context, userID uuid.UUID, isSuperAdmin bool) ([]entity.DispatchOrder, error) {
	return s.dispatchRepo.ListAvailableForInstallation(ctx, userID, isSuperAdmin)
}
