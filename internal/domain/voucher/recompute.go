package voucher

import "github.com/kinara-erp/vouchers-api/internal/domain/entity"

// The Recompute functions apply the totals engine to a whole document
// entity: per-line amounts are written back onto the items and the
// aggregate breakup onto the document. Services call these after every
// mutation of line items, discount configuration or charges so the
// persisted totals are always a pure function of current inputs.

// RecomputePurchaseOrder recomputes all derived amounts on a purchase
// order from its line items and document flags.
func RecomputePurchaseOrder(po *entity.PurchaseOrder) {
	lines := make([]LineItem, len(po.Items))
	for i, item := range po.Items {
		lines[i] = LineItem{
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			DiscountPercentage: item.DiscountPercentage,
			DiscountAmount:     item.DiscountAmount,
			GSTRate:            item.GSTRate,
		}
		amounts := ComputeLine(lines[i], po.Intrastate, po.LineDiscountMode)
		applyPurchaseOrderLine(&po.Items[i], amounts)
	}
	po.Totals = ComputeTotals(lines, TotalsOptions{
		Intrastate:       po.Intrastate,
		LineDiscountMode: po.LineDiscountMode,
		DocDiscountMode:  po.DocDiscountMode,
		DocDiscountValue: po.DocDiscountValue,
		Charges:          po.Charges,
	}).Breakup()
}

// RecomputeGoodsReceipt recomputes a goods receipt note. The note is
// valued at accepted quantities, the goods actually taken into stock.
func RecomputeGoodsReceipt(grn *entity.GoodsReceiptNote) {
	lines := make([]LineItem, len(grn.Items))
	for i, item := range grn.Items {
		lines[i] = LineItem{
			Quantity:           item.AcceptedQuantity,
			UnitPrice:          item.UnitPrice,
			DiscountPercentage: item.DiscountPercentage,
			DiscountAmount:     item.DiscountAmount,
			GSTRate:            item.GSTRate,
		}
		amounts := ComputeLine(lines[i], grn.Intrastate, grn.LineDiscountMode)
		item := &grn.Items[i]
		item.CGSTRate = amounts.CGSTRate
		item.SGSTRate = amounts.SGSTRate
		item.IGSTRate = amounts.IGSTRate
		item.TaxableValue = amounts.TaxableValue
		item.CGSTAmount = amounts.CGSTAmount
		item.SGSTAmount = amounts.SGSTAmount
		item.IGSTAmount = amounts.IGSTAmount
		item.LineTotal = amounts.LineTotal
	}
	grn.Totals = ComputeTotals(lines, TotalsOptions{
		Intrastate:       grn.Intrastate,
		LineDiscountMode: grn.LineDiscountMode,
		DocDiscountMode:  grn.DocDiscountMode,
		DocDiscountValue: grn.DocDiscountValue,
		Charges:          grn.Charges,
	}).Breakup()
}

// RecomputePurchaseVoucher recomputes a purchase voucher.
func RecomputePurchaseVoucher(pv *entity.PurchaseVoucher) {
	lines := make([]LineItem, len(pv.Items))
	for i, item := range pv.Items {
		lines[i] = LineItem{
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			DiscountPercentage: item.DiscountPercentage,
			DiscountAmount:     item.DiscountAmount,
			GSTRate:            item.GSTRate,
		}
		amounts := ComputeLine(lines[i], pv.Intrastate, pv.LineDiscountMode)
		item := &pv.Items[i]
		item.CGSTRate = amounts.CGSTRate
		item.SGSTRate = amounts.SGSTRate
		item.IGSTRate = amounts.IGSTRate
		item.TaxableValue = amounts.TaxableValue
		item.CGSTAmount = amounts.CGSTAmount
		item.SGSTAmount = amounts.SGSTAmount
		item.IGSTAmount = amounts.IGSTAmount
		item.LineTotal = amounts.LineTotal
	}
	pv.Totals = ComputeTotals(lines, TotalsOptions{
		Intrastate:       pv.Intrastate,
		LineDiscountMode: pv.LineDiscountMode,
		DocDiscountMode:  pv.DocDiscountMode,
		DocDiscountValue: pv.DocDiscountValue,
		Charges:          pv.Charges,
	}).Breakup()
}

// RecomputePurchaseReturn recomputes a purchase return.
func RecomputePurchaseReturn(pr *entity.PurchaseReturn) {
	lines := make([]LineItem, len(pr.Items))
	for i, item := range pr.Items {
		lines[i] = LineItem{
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			DiscountPercentage: item.DiscountPercentage,
			DiscountAmount:     item.DiscountAmount,
			GSTRate:            item.GSTRate,
		}
		amounts := ComputeLine(lines[i], pr.Intrastate, pr.LineDiscountMode)
		item := &pr.Items[i]
		item.CGSTRate = amounts.CGSTRate
		item.SGSTRate = amounts.SGSTRate
		item.IGSTRate = amounts.IGSTRate
		item.TaxableValue = amounts.TaxableValue
		item.CGSTAmount = amounts.CGSTAmount
		item.SGSTAmount = amounts.SGSTAmount
		item.IGSTAmount = amounts.IGSTAmount
		item.LineTotal = amounts.LineTotal
	}
	pr.Totals = ComputeTotals(lines, TotalsOptions{
		Intrastate:       pr.Intrastate,
		LineDiscountMode: pr.LineDiscountMode,
		DocDiscountMode:  pr.DocDiscountMode,
		DocDiscountValue: pr.DocDiscountValue,
		Charges:          pr.Charges,
	}).Breakup()
}

// RecomputeDispatchOrder recomputes a dispatch order.
func RecomputeDispatchOrder(do *entity.DispatchOrder) {
	lines := make([]LineItem, len(do.Items))
	for i, item := range do.Items {
		lines[i] = LineItem{
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			DiscountPercentage: item.DiscountPercentage,
			DiscountAmount:     item.DiscountAmount,
			GSTRate:            item.GSTRate,
		}
		amounts := ComputeLine(lines[i], do.Intrastate, do.LineDiscountMode)
		item := &do.Items[i]
		item.CGSTRate = amounts.CGSTRate
		item.SGSTRate = amounts.SGSTRate
		item.IGSTRate = amounts.IGSTRate
		item.TaxableValue = amounts.TaxableValue
		item.CGSTAmount = amounts.CGSTAmount
		item.SGSTAmount = amounts.SGSTAmount
		item.IGSTAmount = amounts.IGSTAmount
		item.LineTotal = amounts.LineTotal
	}
	do.Totals = ComputeTotals(lines, TotalsOptions{
		Intrastate:       do.Intrastate,
		LineDiscountMode: do.LineDiscountMode,
		DocDiscountMode:  do.DocDiscountMode,
		DocDiscountValue: do.DocDiscountValue,
		Charges:          do.Charges,
	}).Breakup()
}

func applyPurchaseOrderLine(item *entity.PurchaseOrderItem, amounts LineAmounts) {
	item.CGSTRate = amounts.CGSTRate
	item.SGSTRate = amounts.SGSTRate
	item.IGSTRate = amounts.IGSTRate
	item.TaxableValue = amounts.TaxableValue
	item.CGSTAmount = amounts.CGSTAmount
	item.SGSTAmount = amounts.SGSTAmount
	item.IGSTAmount = amounts.IGSTAmount
	item.LineTotal = amounts.LineTotal
}
