package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	infraRepo "github.com/kinara-erp/vouchers-api/internal/infrastructure/repository"
)

func (f *fakeOrderRepo) ListAvailableForReceipt(_ context.Context, userID uuid.UUID, skipUserFilter bool) ([]entity.PurchaseOrder, error) {
	var orders []entity.PurchaseOrder
	for _, o := range f.orders {
		if o.Status != enum.PurchaseOrderStatusApproved || o.GrnStatus != enum.ConversionStatusPending {
			continue
		}
		if !skipUserFilter && o.UserID != userID {
			continue
		}
		orders = append(orders, *o)
	}
	return orders, nil
}

func availableIDs(orders []entity.PurchaseOrder) map[uuid.UUID]bool {
	ids := make(map[uuid.UUID]bool, len(orders))
	for _, o := range orders {
		ids[o.ID] = true
	}
	return ids
}

func TestListAvailableForReceiptExcludesHeldOrders(t *testing.T) {
	tenantID := uuid.New()
	ctx := infraRepo.WithTenant(context.Background(), tenantID)

	held := testOrder(tenantID, enum.PurchaseOrderStatusApproved)
	open := testOrder(tenantID, enum.PurchaseOrderStatusApproved)
	grnRepo := newFakeGrnRepo()
	orderRepo := newFakeOrderRepo(held, open)

	grnSvc := NewGoodsReceiptService(grnRepo, orderRepo, &fakeTenantRepo{})
	orderSvc := NewPurchaseOrderService(orderRepo, nil, grnRepo, nil, nil, &fakeTenantRepo{}, nil)

	userID := uuid.New()
	grn, _, err := grnSvc.CreateFromPurchaseOrder(ctx, &CreateFromPurchaseOrderInput{
		UserID:          userID,
		PurchaseOrderID: held.ID,
	})
	if err != nil {
		t.Fatalf("derivation failed: %v", err)
	}

	// The draft GRN holds its order, so the picker must not offer it
	// even though the order's grn_status is still pending
	available, err := orderSvc.ListAvailableForReceipt(ctx, uuid.Nil, true)
	if err != nil {
		t.Fatalf("ListAvailableForReceipt returned error: %v", err)
	}
	if len(available) != 1 {
		t.Fatalf("expected 1 available order, got %d", len(available))
	}
	if available[0].ID != open.ID {
		t.Errorf("expected order %s, got %s", open.ID, available[0].ID)
	}

	// Deleting the draft releases the order back to the picker
	if err := grnSvc.DeleteGoodsReceipt(ctx, userID, grn.ID, false); err != nil {
		t.Fatalf("DeleteGoodsReceipt failed: %v", err)
	}
	available, err = orderSvc.ListAvailableForReceipt(ctx, uuid.Nil, true)
	if err != nil {
		t.Fatalf("ListAvailableForReceipt returned error: %v", err)
	}
	ids := availableIDs(available)
	if len(ids) != 2 || !ids[held.ID] || !ids[open.ID] {
		t.Errorf("expected both orders after release, got %v", ids)
	}
}
