package voucher

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
)

func testPurchaseOrder() *entity.PurchaseOrder {
	return &entity.PurchaseOrder{
		ID:        uuid.New(),
		TenantID:  uuid.New(),
		VendorID:  uuid.New(),
		VoucherNo: "PO-1a2b3c4d",
		Status:    enum.PurchaseOrderStatusApproved,
		GrnStatus: enum.ConversionStatusPending,
		Items: []entity.PurchaseOrderItem{
			{
				ProductID:   uuid.New(),
				ProductName: "Water Purifier",
				HSNCode:     "8421",
				Unit:        "pcs",
				Quantity:    10,
				UnitPrice:   100,
				GSTRate:     18,
			},
		},
	}
}

func testGoodsReceipt() *entity.GoodsReceiptNote {
	return &entity.GoodsReceiptNote{
		ID:        uuid.New(),
		TenantID:  uuid.New(),
		VendorID:  uuid.New(),
		VoucherNo: "GRN-5e6f7a8b",
		Items: []entity.GoodsReceiptItem{
			{
				ProductID:        uuid.New(),
				ProductName:      "Water Purifier",
				Unit:             "pcs",
				OrderedQuantity:  10,
				ReceivedQuantity: 9,
				AcceptedQuantity: 7,
				RejectedQuantity: 2,
				UnitPrice:        100,
				GSTRate:          18,
			},
			{
				ProductID:        uuid.New(),
				ProductName:      "Filter Cartridge",
				Unit:             "pcs",
				OrderedQuantity:  5,
				ReceivedQuantity: 5,
				AcceptedQuantity: 5,
				RejectedQuantity: 0,
				UnitPrice:        40,
				GSTRate:          12,
			},
		},
	}
}

func TestDeriveGoodsReceipt_QuantityRule(t *testing.T) {
	po := testPurchaseOrder()

	grn, err := DeriveGoodsReceipt(po, true)
	if err != nil {
		t.Fatalf("DeriveGoodsReceipt() error = %v", err)
	}

	if len(grn.Items) != 1 {
		t.Fatalf("derived %d items, want 1", len(grn.Items))
	}
	item := grn.Items[0]
	if item.OrderedQuantity != 10 {
		t.Errorf("ordered = %v, want 10", item.OrderedQuantity)
	}
	if item.ReceivedQuantity != 0 || item.AcceptedQuantity != 0 || item.RejectedQuantity != 0 {
		t.Errorf("received/accepted/rejected = %v/%v/%v, want all zero",
			item.ReceivedQuantity, item.AcceptedQuantity, item.RejectedQuantity)
	}
	if grn.PurchaseOrderID != po.ID {
		t.Errorf("purchase order linkage = %v, want %v", grn.PurchaseOrderID, po.ID)
	}
	if grn.VendorID != po.VendorID {
		t.Errorf("vendor = %v, want %v", grn.VendorID, po.VendorID)
	}
	if grn.ReferenceNo != po.VoucherNo {
		t.Errorf("reference no = %q, want %q", grn.ReferenceNo, po.VoucherNo)
	}
	if grn.Status != enum.VoucherStatusDraft {
		t.Errorf("status = %v, want draft", grn.Status)
	}
}

func TestDeriveGoodsReceipt_RefusesConsumedSource(t *testing.T) {
	po := testPurchaseOrder()
	po.GrnStatus = enum.ConversionStatusCompleted

	grn, err := DeriveGoodsReceipt(po, true)
	if !errors.Is(err, ErrSourceConsumed) {
		t.Errorf("error = %v, want ErrSourceConsumed", err)
	}
	if grn != nil {
		t.Error("expected no draft for a consumed source")
	}
}

func TestDeriveGoodsReceipt_RefusesEmptySource(t *testing.T) {
	po := testPurchaseOrder()
	po.Items = nil

	if _, err := DeriveGoodsReceipt(po, true); !errors.Is(err, ErrEmptySource) {
		t.Errorf("error = %v, want ErrEmptySource", err)
	}
}

func TestDeriveGoodsReceipt_RederivesRatesForDraftJurisdiction(t *testing.T) {
	// Source was intrastate; the draft is interstate. The split must
	// follow the draft's flag, not the source's.
	po := testPurchaseOrder()
	po.Intrastate = true
	po.Items[0].CGSTRate = 9
	po.Items[0].SGSTRate = 9

	grn, err := DeriveGoodsReceipt(po, false)
	if err != nil {
		t.Fatalf("DeriveGoodsReceipt() error = %v", err)
	}

	item := grn.Items[0]
	if item.CGSTRate != 0 || item.SGSTRate != 0 {
		t.Errorf("cgst/sgst rates = %v/%v, want 0/0 for interstate draft", item.CGSTRate, item.SGSTRate)
	}
	if item.IGSTRate != 18 {
		t.Errorf("igst rate = %v, want 18", item.IGSTRate)
	}
	if grn.Intrastate {
		t.Error("draft intrastate = true, want false")
	}
}

func TestDeriveGoodsReceipt_ReportsMissingProductMapping(t *testing.T) {
	po := testPurchaseOrder()
	po.Items = append(po.Items, entity.PurchaseOrderItem{
		ProductID: uuid.Nil,
		Quantity:  3,
		UnitPrice: 50,
	})

	grn, err := DeriveGoodsReceipt(po, true)

	var dq *DataQualityError
	if !errors.As(err, &dq) {
		t.Fatalf("error = %v, want *DataQualityError", err)
	}
	if !errors.Is(err, ErrMissingProductMapping) {
		t.Error("DataQualityError should wrap ErrMissingProductMapping")
	}
	if len(dq.Lines) != 1 || dq.Lines[0] != 2 {
		t.Errorf("flagged lines = %v, want [2]", dq.Lines)
	}

	// The draft is still populated, with the bad line on the default rate.
	if grn == nil || len(grn.Items) != 2 {
		t.Fatal("draft should still contain every line")
	}
	if grn.Items[1].GSTRate != entity.DefaultGSTRate {
		t.Errorf("fallback rate = %v, want %v", grn.Items[1].GSTRate, entity.DefaultGSTRate)
	}
}

func TestDerivePurchaseVoucher_QuantityRule(t *testing.T) {
	grn := testGoodsReceipt()

	pv, err := DerivePurchaseVoucher(grn, true)
	if err != nil {
		t.Fatalf("DerivePurchaseVoucher() error = %v", err)
	}

	if len(pv.Items) != 2 {
		t.Fatalf("derived %d items, want 2", len(pv.Items))
	}
	if pv.Items[0].Quantity != 7 {
		t.Errorf("quantity = %v, want accepted quantity 7", pv.Items[0].Quantity)
	}
	if pv.Items[1].Quantity != 5 {
		t.Errorf("quantity = %v, want accepted quantity 5", pv.Items[1].Quantity)
	}
	if pv.GoodsReceiptNoteID != grn.ID {
		t.Errorf("grn linkage = %v, want %v", pv.GoodsReceiptNoteID, grn.ID)
	}
	if pv.VendorID != grn.VendorID {
		t.Errorf("vendor = %v, want %v", pv.VendorID, grn.VendorID)
	}
}

func TestDerivePurchaseReturn_QuantityRule(t *testing.T) {
	grn := testGoodsReceipt()

	pr, err := DerivePurchaseReturn(grn, true)
	if err != nil {
		t.Fatalf("DerivePurchaseReturn() error = %v", err)
	}

	if len(pr.Items) != 2 {
		t.Fatalf("derived %d items, want 2 (zero-rejected lines included)", len(pr.Items))
	}
	if pr.Items[0].Quantity != 2 {
		t.Errorf("quantity = %v, want rejected quantity 2", pr.Items[0].Quantity)
	}
	if pr.Items[1].Quantity != 0 {
		t.Errorf("quantity = %v, want 0 for a line with nothing rejected", pr.Items[1].Quantity)
	}
	if pr.ReferenceType != enum.ReferenceTypeGoodsReceiptNote {
		t.Errorf("reference type = %v, want goods receipt note", pr.ReferenceType)
	}
	if pr.ReferenceNo != grn.VoucherNo {
		t.Errorf("reference no = %q, want %q", pr.ReferenceNo, grn.VoucherNo)
	}
}

func TestDeriveInstallationJob(t *testing.T) {
	do := &entity.DispatchOrder{
		ID:              uuid.New(),
		TenantID:        uuid.New(),
		CustomerID:      uuid.New(),
		DeliveryAddress: "14 MG Road, Bengaluru",
		Items: []entity.DispatchOrderItem{
			{ProductID: uuid.New(), Quantity: 2, UnitPrice: 15000, GSTRate: 18},
		},
	}
	scheduledAt := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	job := DeriveInstallationJob(do, scheduledAt)

	if job.DispatchOrderID != do.ID {
		t.Errorf("dispatch linkage = %v, want %v", job.DispatchOrderID, do.ID)
	}
	if job.CustomerID != do.CustomerID {
		t.Errorf("customer = %v, want %v", job.CustomerID, do.CustomerID)
	}
	if job.SiteAddress != do.DeliveryAddress {
		t.Errorf("site address = %q, want delivery address", job.SiteAddress)
	}
	if !job.ScheduledAt.Equal(scheduledAt) {
		t.Errorf("scheduled at = %v, want %v", job.ScheduledAt, scheduledAt)
	}
	if job.Status != enum.InstallationStatusScheduled {
		t.Errorf("status = %v, want scheduled", job.Status)
	}
}

func TestDeriveGoodsReceipt_DraftTotalsStartAtZero(t *testing.T) {
	// All entered quantities start at zero, so the draft's totals are
	// zero until the user records receipts.
	grn, err := DeriveGoodsReceipt(testPurchaseOrder(), true)
	if err != nil {
		t.Fatalf("DeriveGoodsReceipt() error = %v", err)
	}
	if grn.Totals.GrandTotal != 0 || grn.Totals.Subtotal != 0 {
		t.Errorf("draft totals = %+v, want zeros", grn.Totals)
	}
}

func TestDerivePurchaseVoucher_TotalsRecomputed(t *testing.T) {
	grn := testGoodsReceipt()

	pv, err := DerivePurchaseVoucher(grn, true)
	if err != nil {
		t.Fatalf("DerivePurchaseVoucher() error = %v", err)
	}

	// 7*100 + 5*40 = 900 taxable; tax = 700*0.18 + 200*0.12 = 126 + 24.
	if !almostEqual(pv.Totals.Subtotal, 900) {
		t.Errorf("subtotal = %v, want 900", pv.Totals.Subtotal)
	}
	wantCGST := (700*0.09 + 200*0.06)
	if !almostEqual(pv.Totals.TotalCGST, wantCGST) || !almostEqual(pv.Totals.TotalSGST, wantCGST) {
		t.Errorf("cgst/sgst = %v/%v, want %v each", pv.Totals.TotalCGST, pv.Totals.TotalSGST, wantCGST)
	}
	if !almostEqual(pv.Totals.GrandTotal, 1050) {
		t.Errorf("grand total = %v, want 1050", pv.Totals.GrandTotal)
	}
}
