package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	"github.com/kinara-erp/vouchers-api/internal/domain/repository"
	infraRepo "github.com/kinara-erp/vouchers-api/internal/infrastructure/repository"
	"github.com/kinara-erp/vouchers-api/pkg/apperror"
)

type fakePvRepo struct {
	repository.PurchaseVoucherRepository
	pvs map[uuid.UUID]*entity.PurchaseVoucher
}

func (f *fakePvRepo) GetWithDetails(_ context.Context, id uuid.UUID) (*entity.PurchaseVoucher, error) {
	return f.pvs[id], nil
}

func (f *fakePvRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.VoucherStatus) error {
	if pv, ok := f.pvs[id]; ok {
		pv.Status = status
	}
	return nil
}

type fakeProductRepo struct {
	repository.ProductRepository
	increments []map[uuid.UUID]float64
	decrements []map[uuid.UUID]float64
	shortIDs   []uuid.UUID
}

func (f *fakeProductRepo) AtomicIncrementBatch(_ context.Context, increments map[uuid.UUID]float64) error {
	f.increments = append(f.increments, increments)
	return nil
}

func (f *fakeProductRepo) AtomicDecrementBatch(_ context.Context, decrements map[uuid.UUID]float64) ([]uuid.UUID, error) {
	f.decrements = append(f.decrements, decrements)
	return f.shortIDs, nil
}

func testPurchaseVoucher(tenantID, userID uuid.UUID) *entity.PurchaseVoucher {
	return &entity.PurchaseVoucher{
		ID:        uuid.New(),
		TenantID:  tenantID,
		UserID:    userID,
		VoucherNo: "PUR-test0001",
		Status:    enum.VoucherStatusDraft,
		Items: []entity.PurchaseVoucherItem{
			{ID: uuid.New(), ProductID: uuid.New(), ProductName: "Water Purifier", Quantity: 3},
			{ID: uuid.New(), ProductID: uuid.New(), ProductName: "Filter Cartridge", Quantity: 8},
		},
	}
}

func TestApprovePurchaseVoucherMovesStock(t *testing.T) {
	tenantID := uuid.New()
	ctx := infraRepo.WithTenant(context.Background(), tenantID)

	userID := uuid.New()
	pv := testPurchaseVoucher(tenantID, userID)
	pvRepo := &fakePvRepo{pvs: map[uuid.UUID]*entity.PurchaseVoucher{pv.ID: pv}}
	productRepo := &fakeProductRepo{}
	svc := NewPurchaseVoucherService(pvRepo, nil, productRepo, &fakeTenantRepo{})

	approved, err := svc.ApprovePurchaseVoucher(ctx, userID, pv.ID, false)
	if err != nil {
		t.Fatalf("ApprovePurchaseVoucher returned error: %v", err)
	}
	if approved.Status != enum.VoucherStatusApproved {
		t.Errorf("expected approved status, got %v", approved.Status)
	}
	if len(productRepo.increments) != 1 {
		t.Fatalf("expected 1 stock movement, got %d", len(productRepo.increments))
	}
	moved := productRepo.increments[0]
	for _, item := range pv.Items {
		if moved[item.ProductID] != item.Quantity {
			t.Errorf("product %s: moved %g, want %g", item.ProductID, moved[item.ProductID], item.Quantity)
		}
	}
}

func TestApprovePurchaseVoucherUnresolvedProduct(t *testing.T) {
	tenantID := uuid.New()
	ctx := infraRepo.WithTenant(context.Background(), tenantID)

	userID := uuid.New()
	pv := testPurchaseVoucher(tenantID, userID)
	pv.Items[0].ProductID = uuid.Nil
	pvRepo := &fakePvRepo{pvs: map[uuid.UUID]*entity.PurchaseVoucher{pv.ID: pv}}
	productRepo := &fakeProductRepo{}
	svc := NewPurchaseVoucherService(pvRepo, nil, productRepo, &fakeTenantRepo{})

	_, err := svc.ApprovePurchaseVoucher(ctx, userID, pv.ID, false)
	if err == nil {
		t.Fatal("expected approval to be refused")
	}
	appErr := apperror.GetAppError(err)
	if appErr.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", appErr.Code)
	}
	if len(appErr.Errors) != 1 || appErr.Errors[0].Field != "items[0]" {
		t.Errorf("expected one field error on items[0], got %+v", appErr.Errors)
	}

	// Nothing may reach the stock ledger on a refused approval
	if len(productRepo.increments) != 0 {
		t.Errorf("expected no stock movement, got %v", productRepo.increments)
	}
	if pv.Status != enum.VoucherStatusDraft {
		t.Errorf("refused approval must leave the voucher in draft, got %v", pv.Status)
	}
}
