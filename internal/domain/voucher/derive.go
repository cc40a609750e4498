package voucher

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
)

var (
	// ErrSourceConsumed is returned when the source document has
	// already been converted into a derived document of the requested
	// kind.
	ErrSourceConsumed = errors.New("source document already consumed")

	// ErrEmptySource is returned when the source document has no line
	// items to derive from.
	ErrEmptySource = errors.New("source document has no line items")

	// ErrMissingProductMapping is the sentinel wrapped by
	// DataQualityError for lines whose product cannot be resolved.
	ErrMissingProductMapping = errors.New("missing product mapping")
)

// DataQualityError reports source lines whose product mapping could not
// be resolved during derivation. The draft is still populated (affected
// lines fall back to the default GST rate); callers must block
// submission until the listed lines are fixed.
type DataQualityError struct {
	Lines      []int
	ProductIDs []uuid.UUID
}

func (e *DataQualityError) Error() string {
	parts := make([]string, len(e.Lines))
	for i, n := range e.Lines {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("missing product mapping on line(s) %s", strings.Join(parts, ", "))
}

// Unwrap lets callers match with errors.Is(err, ErrMissingProductMapping)
func (e *DataQualityError) Unwrap() error {
	return ErrMissingProductMapping
}

func (e *DataQualityError) add(line int, productID uuid.UUID) {
	e.Lines = append(e.Lines, line)
	e.ProductIDs = append(e.ProductIDs, productID)
}

func (e *DataQualityError) orNil() error {
	if len(e.Lines) == 0 {
		return nil
	}
	return e
}

// resolveRate returns the GST rate to use for a derived line. A line
// with no product or no usable rate falls back to the catalog default
// and is recorded as a data-quality problem.
func resolveRate(lineNo int, productID uuid.UUID, gstRate float64, dq *DataQualityError) float64 {
	if productID == uuid.Nil || gstRate <= 0 {
		dq.add(lineNo, productID)
		if gstRate <= 0 {
			return entity.DefaultGSTRate
		}
	}
	return gstRate
}

// DeriveGoodsReceipt builds a goods receipt note draft from an approved
// purchase order. Ordered quantities are copied from the order; the
// received, accepted and rejected quantities start at zero and are
// entered by the user. GST component rates are re-derived from each
// line's combined rate and the draft's own intrastate flag, which may
// differ from the source's.
//
// The returned error, when non-nil, is either ErrSourceConsumed (no
// draft returned), ErrEmptySource (no draft returned) or a
// *DataQualityError (draft still returned and usable).
func DeriveGoodsReceipt(po *entity.PurchaseOrder, intrastate bool) (*entity.GoodsReceiptNote, error) {
	if po.GrnStatus == enum.ConversionStatusCompleted {
		return nil, ErrSourceConsumed
	}
	if len(po.Items) == 0 {
		return nil, ErrEmptySource
	}

	dq := &DataQualityError{}
	items := make([]entity.GoodsReceiptItem, 0, len(po.Items))
	for i, src := range po.Items {
		rate := resolveRate(i+1, src.ProductID, src.GSTRate, dq)
		cgstRate, sgstRate, igstRate := SplitRate(rate, intrastate)
		items = append(items, entity.GoodsReceiptItem{
			ProductID:          src.ProductID,
			ProductName:        src.ProductName,
			HSNCode:            src.HSNCode,
			Unit:               src.Unit,
			OrderedQuantity:    src.Quantity,
			ReceivedQuantity:   0,
			AcceptedQuantity:   0,
			RejectedQuantity:   0,
			UnitPrice:          src.UnitPrice,
			DiscountPercentage: src.DiscountPercentage,
			DiscountAmount:     src.DiscountAmount,
			GSTRate:            rate,
			CGSTRate:           cgstRate,
			SGSTRate:           sgstRate,
			IGSTRate:           igstRate,
		})
	}

	draft := &entity.GoodsReceiptNote{
		TenantID:         po.TenantID,
		PurchaseOrderID:  po.ID,
		VendorID:         po.VendorID,
		Date:             time.Now(),
		ReferenceNo:      po.VoucherNo,
		Status:           enum.VoucherStatusDraft,
		Intrastate:       intrastate,
		LineDiscountMode: po.LineDiscountMode,
		Items:            items,
	}
	RecomputeGoodsReceipt(draft)
	return draft, dq.orNil()
}

// DerivePurchaseVoucher builds a purchase voucher draft from a goods
// receipt note. Each line's quantity is the GRN line's accepted
// quantity; rates are re-derived against the draft's intrastate flag.
func DerivePurchaseVoucher(grn *entity.GoodsReceiptNote, intrastate bool) (*entity.PurchaseVoucher, error) {
	if len(grn.Items) == 0 {
		return nil, ErrEmptySource
	}

	dq := &DataQualityError{}
	items := make([]entity.PurchaseVoucherItem, 0, len(grn.Items))
	for i, src := range grn.Items {
		rate := resolveRate(i+1, src.ProductID, src.GSTRate, dq)
		cgstRate, sgstRate, igstRate := SplitRate(rate, intrastate)
		items = append(items, entity.PurchaseVoucherItem{
			ProductID:          src.ProductID,
			ProductName:        src.ProductName,
			HSNCode:            src.HSNCode,
			Unit:               src.Unit,
			Quantity:           src.AcceptedQuantity,
			UnitPrice:          src.UnitPrice,
			DiscountPercentage: src.DiscountPercentage,
			DiscountAmount:     src.DiscountAmount,
			GSTRate:            rate,
			CGSTRate:           cgstRate,
			SGSTRate:           sgstRate,
			IGSTRate:           igstRate,
		})
	}

	draft := &entity.PurchaseVoucher{
		TenantID:           grn.TenantID,
		GoodsReceiptNoteID: grn.ID,
		VendorID:           grn.VendorID,
		Date:               time.Now(),
		Status:             enum.VoucherStatusDraft,
		Intrastate:         intrastate,
		LineDiscountMode:   grn.LineDiscountMode,
		Items:              items,
	}
	RecomputePurchaseVoucher(draft)
	return draft, dq.orNil()
}

// DerivePurchaseReturn builds a purchase return draft from a goods
// receipt note. Each line's quantity is the GRN line's rejected
// quantity; lines with zero rejected quantity are still included so the
// return can be adjusted before submission.
func DerivePurchaseReturn(grn *entity.GoodsReceiptNote, intrastate bool) (*entity.PurchaseReturn, error) {
	if len(grn.Items) == 0 {
		return nil, ErrEmptySource
	}

	dq := &DataQualityError{}
	items := make([]entity.PurchaseReturnItem, 0, len(grn.Items))
	for i, src := range grn.Items {
		rate := resolveRate(i+1, src.ProductID, src.GSTRate, dq)
		cgstRate, sgstRate, igstRate := SplitRate(rate, intrastate)
		items = append(items, entity.PurchaseReturnItem{
			ProductID:          src.ProductID,
			ProductName:        src.ProductName,
			HSNCode:            src.HSNCode,
			Unit:               src.Unit,
			Quantity:           src.RejectedQuantity,
			UnitPrice:          src.UnitPrice,
			DiscountPercentage: src.DiscountPercentage,
			DiscountAmount:     src.DiscountAmount,
			GSTRate:            rate,
			CGSTRate:           cgstRate,
			SGSTRate:           sgstRate,
			IGSTRate:           igstRate,
		})
	}

	draft := &entity.PurchaseReturn{
		TenantID:           grn.TenantID,
		GoodsReceiptNoteID: grn.ID,
		VendorID:           grn.VendorID,
		Date:               time.Now(),
		ReferenceType:      enum.ReferenceTypeGoodsReceiptNote,
		ReferenceNo:        grn.VoucherNo,
		Status:             enum.VoucherStatusDraft,
		Intrastate:         intrastate,
		LineDiscountMode:   grn.LineDiscountMode,
		Items:              items,
	}
	RecomputePurchaseReturn(draft)
	return draft, dq.orNil()
}

// DeriveInstallationJob builds an installation job draft from a
// dispatch order. The job carries a single scheduling record rather
// than line items; customer and delivery address come from the
// dispatch.
func DeriveInstallationJob(do *entity.DispatchOrder, scheduledAt time.Time) *entity.InstallationJob {
	return &entity.InstallationJob{
		TenantID:        do.TenantID,
		DispatchOrderID: do.ID,
		CustomerID:      do.CustomerID,
		SiteAddress:     do.DeliveryAddress,
		ScheduledAt:     scheduledAt,
		Status:          enum.InstallationStatusScheduled,
	}
}
