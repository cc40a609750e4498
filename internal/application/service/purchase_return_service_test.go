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

type fakePrRepo struct {
	repository.PurchaseReturnRepository
	prs map[uuid.UUID]*entity.PurchaseReturn
}

func (f *fakePrRepo) GetWithDetails(_ context.Context, id uuid.UUID) (*entity.PurchaseReturn, error) {
	return f.prs[id], nil
}

func (f *fakePrRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.VoucherStatus) error {
	if pr, ok := f.prs[id]; ok {
		pr.Status = status
	}
	return nil
}

func testPurchaseReturn(tenantID, userID uuid.UUID) *entity.PurchaseReturn {
	return &entity.PurchaseReturn{
		ID:        uuid.New(),
		TenantID:  tenantID,
		UserID:    userID,
		VoucherNo: "PRN-test0001",
		Status:    enum.VoucherStatusDraft,
		Items: []entity.PurchaseReturnItem{
			{ID: uuid.New(), ProductID: uuid.New(), ProductName: "Water Purifier", Quantity: 1},
			{ID: uuid.New(), ProductID: uuid.New(), ProductName: "Filter Cartridge", Quantity: 2},
		},
	}
}

func TestApprovePurchaseReturnInsufficientStock(t *testing.T) {
	tenantID := uuid.New()
	ctx := infraRepo.WithTenant(context.Background(), tenantID)

	userID := uuid.New()
	pr := testPurchaseReturn(tenantID, userID)
	prRepo := &fakePrRepo{prs: map[uuid.UUID]*entity.PurchaseReturn{pr.ID: pr}}
	productRepo := &fakeProductRepo{shortIDs: []uuid.UUID{pr.Items[0].ProductID}}
	svc := NewPurchaseReturnService(prRepo, nil, productRepo, &fakeTenantRepo{})

	_, err := svc.ApprovePurchaseReturn(ctx, userID, pr.ID, false)
	if code := appErrCode(t, err); code != http.StatusConflict {
		t.Errorf("expected 409 for insufficient stock, got %d", code)
	}
	if pr.Status != enum.VoucherStatusDraft {
		t.Errorf("refused approval must leave the return in draft, got %v", pr.Status)
	}
}

func TestApprovePurchaseReturnUnresolvedProduct(t *testing.T) {
	tenantID := uuid.New()
	ctx := infraRepo.WithTenant(context.Background(), tenantID)

	userID := uuid.New()
	pr := testPurchaseReturn(tenantID, userID)
	pr.Items[1].ProductID = uuid.Nil
	prRepo := &fakePrRepo{prs: map[uuid.UUID]*entity.PurchaseReturn{pr.ID: pr}}
	productRepo := &fakeProductRepo{}
	svc := NewPurchaseReturnService(prRepo, nil, productRepo, &fakeTenantRepo{})

	_, err := svc.ApprovePurchaseReturn(ctx, userID, pr.ID, false)
	if err == nil {
		t.Fatal("expected approval to be refused")
	}
	appErr := apperror.GetAppError(err)
	if appErr.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", appErr.Code)
	}
	if len(appErr.Errors) != 1 || appErr.Errors[0].Field != "items[1]" {
		t.Errorf("expected one field error on items[1], got %+v", appErr.Errors)
	}

	if len(productRepo.decrements) != 0 {
		t.Errorf("expected no stock movement, got %v", productRepo.decrements)
	}
	if pr.Status != enum.VoucherStatusDraft {
		t.Errorf("refused approval must leave the return in draft, got %v", pr.Status)
	}
}
