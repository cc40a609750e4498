package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	"github.com/kinara-erp/vouchers-api/internal/domain/repository"
	infraRepo "github.com/kinara-erp/vouchers-api/internal/infrastructure/repository"
	"github.com/kinara-erp/vouchers-api/pkg/apperror"
)

// The fakes embed the repository interfaces so only the methods the
// service actually calls need an implementation.

type fakeGrnRepo struct {
	repository.GoodsReceiptRepository
	grns      map[uuid.UUID]*entity.GoodsReceiptNote
	consumed  []uuid.UUID
	submitted []uuid.UUID
	deleted   []uuid.UUID
}

func newFakeGrnRepo() *fakeGrnRepo {
	return &fakeGrnRepo{grns: make(map[uuid.UUID]*entity.GoodsReceiptNote)}
}

func (f *fakeGrnRepo) Create(_ context.Context, grn *entity.GoodsReceiptNote) error {
	if grn.ID == uuid.Nil {
		grn.ID = uuid.New()
	}
	for i := range grn.Items {
		if grn.Items[i].ID == uuid.Nil {
			grn.Items[i].ID = uuid.New()
		}
		grn.Items[i].GoodsReceiptNoteID = grn.ID
	}
	f.grns[grn.ID] = grn
	f.consumed = append(f.consumed, grn.PurchaseOrderID)
	return nil
}

func (f *fakeGrnRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.GoodsReceiptNote, error) {
	return f.grns[id], nil
}

func (f *fakeGrnRepo) GetWithDetails(_ context.Context, id uuid.UUID) (*entity.GoodsReceiptNote, error) {
	return f.grns[id], nil
}

func (f *fakeGrnRepo) Update(_ context.Context, grn *entity.GoodsReceiptNote) error {
	f.grns[grn.ID] = grn
	return nil
}

func (f *fakeGrnRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.VoucherStatus) error {
	if grn, ok := f.grns[id]; ok {
		grn.Status = status
	}
	f.submitted = append(f.submitted, id)
	return nil
}

func (f *fakeGrnRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.grns, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeGrnRepo) ListSourceIDs(_ context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, grn := range f.grns {
		ids = append(ids, grn.PurchaseOrderID)
	}
	return ids, nil
}

type fakeOrderRepo struct {
	repository.PurchaseOrderRepository
	orders       map[uuid.UUID]*entity.PurchaseOrder
	grnStatusSet map[uuid.UUID]enum.ConversionStatus
}

func newFakeOrderRepo(orders ...*entity.PurchaseOrder) *fakeOrderRepo {
	f := &fakeOrderRepo{
		orders:       make(map[uuid.UUID]*entity.PurchaseOrder),
		grnStatusSet: make(map[uuid.UUID]enum.ConversionStatus),
	}
	for _, o := range orders {
		f.orders[o.ID] = o
	}
	return f
}

func (f *fakeOrderRepo) GetWithDetails(_ context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	return f.orders[id], nil
}

func (f *fakeOrderRepo) UpdateGrnStatus(_ context.Context, id uuid.UUID, status enum.ConversionStatus) error {
	f.grnStatusSet[id] = status
	if o, ok := f.orders[id]; ok {
		o.GrnStatus = status
	}
	return nil
}

type fakeTenantRepo struct {
	repository.TenantRepository
	tenant *entity.Tenant
}

func (f *fakeTenantRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Tenant, error) {
	if f.tenant != nil && f.tenant.ID == id {
		return f.tenant, nil
	}
	return nil, nil
}

func testOrder(tenantID uuid.UUID, status enum.PurchaseOrderStatus) *entity.PurchaseOrder {
	vendorState := "27"
	return &entity.PurchaseOrder{
		ID:        uuid.New(),
		TenantID:  tenantID,
		UserID:    uuid.New(),
		VendorID:  uuid.New(),
		VoucherNo: "PO-test0001",
		Status:    status,
		Vendor:    &entity.Vendor{StateCode: vendorState},
		Items: []entity.PurchaseOrderItem{
			{
				ProductID:   uuid.New(),
				ProductName: "Water Purifier",
				Quantity:    4,
				UnitPrice:   5000,
				GSTRate:     18,
			},
			{
				ProductID:   uuid.New(),
				ProductName: "Filter Cartridge",
				Quantity:    10,
				UnitPrice:   450,
				GSTRate:     18,
			},
		},
	}
}

func appErrCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	return appErr.Code
}

func TestCreateFromPurchaseOrder(t *testing.T) {
	tenantID := uuid.New()
	ctx := infraRepo.WithTenant(context.Background(), tenantID)

	order := testOrder(tenantID, enum.PurchaseOrderStatusApproved)
	grnRepo := newFakeGrnRepo()
	svc := NewGoodsReceiptService(grnRepo, newFakeOrderRepo(order), &fakeTenantRepo{})

	userID := uuid.New()
	grn, warnings, err := svc.CreateFromPurchaseOrder(ctx, &CreateFromPurchaseOrderInput{
		UserID:          userID,
		PurchaseOrderID: order.ID,
	})
	if err != nil {
		t.Fatalf("CreateFromPurchaseOrder returned error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if grn.Status != enum.VoucherStatusDraft {
		t.Errorf("expected draft status, got %v", grn.Status)
	}
	if grn.UserID != userID {
		t.Errorf("expected user %s, got %s", userID, grn.UserID)
	}
	if !strings.HasPrefix(grn.VoucherNo, "GRN-") {
		t.Errorf("expected GRN- voucher number, got %q", grn.VoucherNo)
	}
	if grn.PurchaseOrderID != order.ID {
		t.Errorf("expected source order %s, got %s", order.ID, grn.PurchaseOrderID)
	}
	if len(grn.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(grn.Items))
	}
	for i, item := range grn.Items {
		if item.OrderedQuantity != order.Items[i].Quantity {
			t.Errorf("item %d: ordered quantity = %g, want %g", i, item.OrderedQuantity, order.Items[i].Quantity)
		}
		if item.ReceivedQuantity != 0 || item.AcceptedQuantity != 0 || item.RejectedQuantity != 0 {
			t.Errorf("item %d: user-entered quantities must start at zero", i)
		}
	}
}

func TestCreateFromPurchaseOrderRequiresApproval(t *testing.T) {
	tenantID := uuid.New()
	ctx := infraRepo.WithTenant(context.Background(), tenantID)

	order := testOrder(tenantID, enum.PurchaseOrderStatusPending)
	svc := NewGoodsReceiptService(newFakeGrnRepo(), newFakeOrderRepo(order), &fakeTenantRepo{})

	_, _, err := svc.CreateFromPurchaseOrder(ctx, &CreateFromPurchaseOrderInput{
		UserID:          uuid.New(),
		PurchaseOrderID: order.ID,
	})
	if code := appErrCode(t, err); code != http.StatusBadRequest {
		t.Errorf("expected 400 for unapproved order, got %d", code)
	}
}

func TestCreateFromPurchaseOrderExclusivity(t *testing.T) {
	tenantID := uuid.New()
	ctx := infraRepo.WithTenant(context.Background(), tenantID)

	order := testOrder(tenantID, enum.PurchaseOrderStatusApproved)
	grnRepo := newFakeGrnRepo()
	svc := NewGoodsReceiptService(grnRepo, newFakeOrderRepo(order), &fakeTenantRepo{})

	input := &CreateFromPurchaseOrderInput{UserID: uuid.New(), PurchaseOrderID: order.ID}
	if _, _, err := svc.CreateFromPurchaseOrder(ctx, input); err != nil {
		t.Fatalf("first derivation failed: %v", err)
	}

	// A live draft already consumes the order, even before submission
	_, _, err := svc.CreateFromPurchaseOrder(ctx, input)
	if code := appErrCode(t, err); code != http.StatusConflict {
		t.Errorf("expected 409 for second derivation, got %d", code)
	}
}

func TestCreateFromPurchaseOrderDeleteReleasesSource(t *testing.T) {
	tenantID := uuid.New()
	ctx := infraRepo.WithTenant(context.Background(), tenantID)

	order := testOrder(tenantID, enum.PurchaseOrderStatusApproved)
	grnRepo := newFakeGrnRepo()
	svc := NewGoodsReceiptService(grnRepo, newFakeOrderRepo(order), &fakeTenantRepo{})

	userID := uuid.New()
	input := &CreateFromPurchaseOrderInput{UserID: userID, PurchaseOrderID: order.ID}
	grn, _, err := svc.CreateFromPurchaseOrder(ctx, input)
	if err != nil {
		t.Fatalf("first derivation failed: %v", err)
	}

	if err := svc.DeleteGoodsReceipt(ctx, userID, grn.ID, false); err != nil {
		t.Fatalf("DeleteGoodsReceipt failed: %v", err)
	}

	if _, _, err := svc.CreateFromPurchaseOrder(ctx, input); err != nil {
		t.Errorf("expected deletion to release the order, got %v", err)
	}
}

func TestCreateFromPurchaseOrderDefaultRateWarnings(t *testing.T) {
	tenantID := uuid.New()
	ctx := infraRepo.WithTenant(context.Background(), tenantID)

	order := testOrder(tenantID, enum.PurchaseOrderStatusApproved)
	order.Items[1].GSTRate = 0 // stale catalog entry
	svc := NewGoodsReceiptService(newFakeGrnRepo(), newFakeOrderRepo(order), &fakeTenantRepo{})

	grn, warnings, err := svc.CreateFromPurchaseOrder(ctx, &CreateFromPurchaseOrderInput{
		UserID:          uuid.New(),
		PurchaseOrderID: order.ID,
	})
	if err != nil {
		t.Fatalf("CreateFromPurchaseOrder returned error: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "line 2") {
		t.Errorf("warning should name line 2, got %q", warnings[0])
	}
	if grn.Items[1].GSTRate != entity.DefaultGSTRate {
		t.Errorf("expected default rate %g on fallback line, got %g", entity.DefaultGSTRate, grn.Items[1].GSTRate)
	}
}

func TestSubmitGoodsReceipt(t *testing.T) {
	tenantID := uuid.New()
	ctx := infraRepo.WithTenant(context.Background(), tenantID)

	order := testOrder(tenantID, enum.PurchaseOrderStatusApproved)
	grnRepo := newFakeGrnRepo()
	orderRepo := newFakeOrderRepo(order)
	svc := NewGoodsReceiptService(grnRepo, orderRepo, &fakeTenantRepo{})

	userID := uuid.New()
	grn, _, err := svc.CreateFromPurchaseOrder(ctx, &CreateFromPurchaseOrderInput{
		UserID:          userID,
		PurchaseOrderID: order.ID,
	})
	if err != nil {
		t.Fatalf("derivation failed: %v", err)
	}

	lines := make([]ReceiptLineInput, 0, len(grn.Items))
	for _, item := range grn.Items {
		lines = append(lines, ReceiptLineInput{
			ItemID:           item.ID,
			ReceivedQuantity: item.OrderedQuantity,
			AcceptedQuantity: item.OrderedQuantity - 1,
			RejectedQuantity: 1,
		})
	}
	if _, err := svc.UpdateGoodsReceipt(ctx, &UpdateGoodsReceiptInput{
		ID:     grn.ID,
		UserID: userID,
		Lines:  lines,
	}); err != nil {
		t.Fatalf("UpdateGoodsReceipt failed: %v", err)
	}

	submitted, err := svc.SubmitGoodsReceipt(ctx, userID, grn.ID, false)
	if err != nil {
		t.Fatalf("SubmitGoodsReceipt failed: %v", err)
	}
	if submitted.Status != enum.VoucherStatusSubmitted {
		t.Errorf("expected submitted status, got %v", submitted.Status)
	}
	if orderRepo.grnStatusSet[order.ID] != enum.ConversionStatusCompleted {
		t.Errorf("expected source order marked completed, got %v", orderRepo.grnStatusSet[order.ID])
	}
}

func TestSubmitGoodsReceiptQuantityValidation(t *testing.T) {
	tenantID := uuid.New()
	ctx := infraRepo.WithTenant(context.Background(), tenantID)

	order := testOrder(tenantID, enum.PurchaseOrderStatusApproved)
	grnRepo := newFakeGrnRepo()
	svc := NewGoodsReceiptService(grnRepo, newFakeOrderRepo(order), &fakeTenantRepo{})

	userID := uuid.New()
	grn, _, err := svc.CreateFromPurchaseOrder(ctx, &CreateFromPurchaseOrderInput{
		UserID:          userID,
		PurchaseOrderID: order.ID,
	})
	if err != nil {
		t.Fatalf("derivation failed: %v", err)
	}

	// accepted + rejected exceeds received on the first line
	if _, err := svc.UpdateGoodsReceipt(ctx, &UpdateGoodsReceiptInput{
		ID:     grn.ID,
		UserID: userID,
		Lines: []ReceiptLineInput{
			{ItemID: grn.Items[0].ID, ReceivedQuantity: 2, AcceptedQuantity: 2, RejectedQuantity: 1},
		},
	}); err != nil {
		t.Fatalf("UpdateGoodsReceipt failed: %v", err)
	}

	_, err = svc.SubmitGoodsReceipt(ctx, userID, grn.ID, false)
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", appErr.Code)
	}
	if len(appErr.Errors) != 1 || appErr.Errors[0].Field != "items[0]" {
		t.Errorf("expected one field error on items[0], got %+v", appErr.Errors)
	}

	grnAfter, _ := grnRepo.GetByID(ctx, grn.ID)
	if grnAfter.Status != enum.VoucherStatusDraft {
		t.Errorf("failed submission must leave the GRN in draft, got %v", grnAfter.Status)
	}
}

func TestSubmitGoodsReceiptUnresolvedProduct(t *testing.T) {
	tenantID := uuid.New()
	ctx := infraRepo.WithTenant(context.Background(), tenantID)

	// A stale catalog can leave a PO line without a product link; the
	// derivation only warns, so the draft GRN carries the gap.
	order := testOrder(tenantID, enum.PurchaseOrderStatusApproved)
	order.Items[0].ProductID = uuid.Nil
	grnRepo := newFakeGrnRepo()
	svc := NewGoodsReceiptService(grnRepo, newFakeOrderRepo(order), &fakeTenantRepo{})

	userID := uuid.New()
	grn, warnings, err := svc.CreateFromPurchaseOrder(ctx, &CreateFromPurchaseOrderInput{
		UserID:          userID,
		PurchaseOrderID: order.ID,
	})
	if err != nil {
		t.Fatalf("derivation failed: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning for the unlinked line, got %v", warnings)
	}

	lines := make([]ReceiptLineInput, 0, len(grn.Items))
	for _, item := range grn.Items {
		lines = append(lines, ReceiptLineInput{
			ItemID:           item.ID,
			ReceivedQuantity: item.OrderedQuantity,
			AcceptedQuantity: item.OrderedQuantity,
		})
	}
	if _, err := svc.UpdateGoodsReceipt(ctx, &UpdateGoodsReceiptInput{
		ID:     grn.ID,
		UserID: userID,
		Lines:  lines,
	}); err != nil {
		t.Fatalf("UpdateGoodsReceipt failed: %v", err)
	}

	// Valid quantities alone must not be enough to submit
	_, err = svc.SubmitGoodsReceipt(ctx, userID, grn.ID, false)
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", appErr.Code)
	}
	if len(appErr.Errors) != 1 || appErr.Errors[0].Field != "items[0]" {
		t.Errorf("expected one field error on items[0], got %+v", appErr.Errors)
	}

	grnAfter, _ := grnRepo.GetByID(ctx, grn.ID)
	if grnAfter.Status != enum.VoucherStatusDraft {
		t.Errorf("refused submission must leave the GRN in draft, got %v", grnAfter.Status)
	}
}

func TestSubmitGoodsReceiptOwnership(t *testing.T) {
	tenantID := uuid.New()
	ctx := infraRepo.WithTenant(context.Background(), tenantID)

	order := testOrder(tenantID, enum.PurchaseOrderStatusApproved)
	svc := NewGoodsReceiptService(newFakeGrnRepo(), newFakeOrderRepo(order), &fakeTenantRepo{})

	owner := uuid.New()
	grn, _, err := svc.CreateFromPurchaseOrder(ctx, &CreateFromPurchaseOrderInput{
		UserID:          owner,
		PurchaseOrderID: order.ID,
	})
	if err != nil {
		t.Fatalf("derivation failed: %v", err)
	}

	stranger := uuid.New()
	if _, err := svc.SubmitGoodsReceipt(ctx, stranger, grn.ID, false); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("expected forbidden for non-owner, got %v", err)
	}
	if _, err := svc.SubmitGoodsReceipt(ctx, stranger, grn.ID, true); err != nil {
		t.Errorf("super admin should bypass the ownership check, got %v", err)
	}
}
