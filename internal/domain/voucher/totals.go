// Package voucher implements the totals engine and the document
// derivation cascade shared by all commercial documents. Everything in
// this package is pure computation over in-memory data: no I/O, no
// database, no HTTP.
package voucher

import (
	"math"

	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
)

// LineItem is the computation view of one document row. Services build
// these from request DTOs or entity items before calling ComputeTotals.
type LineItem struct {
	Quantity           float64
	UnitPrice          float64
	DiscountPercentage float64
	DiscountAmount     float64
	GSTRate            float64
}

// TotalsOptions carries the document-level flags that shape the
// computation.
type TotalsOptions struct {
	Intrastate       bool
	LineDiscountMode enum.DiscountMode
	DocDiscountMode  enum.DiscountMode
	DocDiscountValue float64
	Charges          entity.ChargeSet
}

// LineAmounts is the computed breakdown of a single line.
type LineAmounts struct {
	Discount     float64
	TaxableValue float64
	CGSTRate     float64
	SGSTRate     float64
	IGSTRate     float64
	CGSTAmount   float64
	SGSTAmount   float64
	IGSTAmount   float64
	LineTotal    float64
}

// DocumentTotals is the aggregate of a document's line items plus
// document-level discount and charges.
type DocumentTotals struct {
	Subtotal      float64
	TotalCGST     float64
	TotalSGST     float64
	TotalIGST     float64
	TotalDiscount float64
	TotalCharges  float64
	RoundOff      float64
	GrandTotal    float64
}

// Breakup converts the totals into the embeddable entity form.
func (t DocumentTotals) Breakup() entity.TotalsBreakup {
	return entity.TotalsBreakup{
		Subtotal:      t.Subtotal,
		TotalCGST:     t.TotalCGST,
		TotalSGST:     t.TotalSGST,
		TotalIGST:     t.TotalIGST,
		TotalDiscount: t.TotalDiscount,
		TotalCharges:  t.TotalCharges,
		RoundOff:      t.RoundOff,
		GrandTotal:    t.GrandTotal,
	}
}

// SplitRate splits a combined GST rate into its component rates. An
// intrastate transaction splits evenly into CGST and SGST; an interstate
// one puts the full rate on IGST.
func SplitRate(gstRate float64, intrastate bool) (cgst, sgst, igst float64) {
	gstRate = sanitize(gstRate)
	if intrastate {
		return gstRate / 2, gstRate / 2, 0
	}
	return 0, 0, gstRate
}

// ComputeLine computes the tax breakdown of a single line. Invalid
// numeric inputs (NaN, Inf, negative) are treated as zero; the function
// never fails.
func ComputeLine(item LineItem, intrastate bool, discountMode enum.DiscountMode) LineAmounts {
	base := sanitize(item.Quantity) * sanitize(item.UnitPrice)

	var discount float64
	switch discountMode {
	case enum.DiscountModePercentage:
		discount = base * sanitize(item.DiscountPercentage) / 100
	case enum.DiscountModeAmount:
		discount = sanitize(item.DiscountAmount)
	}
	if discount > base {
		discount = base
	}

	taxable := base - discount
	cgstRate, sgstRate, igstRate := SplitRate(item.GSTRate, intrastate)

	amounts := LineAmounts{
		Discount:     discount,
		TaxableValue: taxable,
		CGSTRate:     cgstRate,
		SGSTRate:     sgstRate,
		IGSTRate:     igstRate,
		CGSTAmount:   taxable * cgstRate / 100,
		SGSTAmount:   taxable * sgstRate / 100,
		IGSTAmount:   taxable * igstRate / 100,
	}
	amounts.LineTotal = taxable + amounts.CGSTAmount + amounts.SGSTAmount + amounts.IGSTAmount
	return amounts
}

// ComputeTotals computes a document's aggregate totals from its line
// items and document-level options. It is a pure function: same inputs
// always produce the same outputs, and it never fails.
//
// The document-level discount is subtracted from the pre-tax subtotal
// and tax is NOT recomputed against the reduced base; per-line tax is
// final once computed. Additional charges are untaxed pass-throughs.
// The grand total is rounded half-up to the whole currency unit and the
// residual is reported as RoundOff.
func ComputeTotals(items []LineItem, opts TotalsOptions) DocumentTotals {
	var totals DocumentTotals

	for _, item := range items {
		line := ComputeLine(item, opts.Intrastate, opts.LineDiscountMode)
		totals.Subtotal += line.TaxableValue
		totals.TotalCGST += line.CGSTAmount
		totals.TotalSGST += line.SGSTAmount
		totals.TotalIGST += line.IGSTAmount
		totals.TotalDiscount += line.Discount
	}

	var docDiscount float64
	switch opts.DocDiscountMode {
	case enum.DiscountModePercentage:
		docDiscount = totals.Subtotal * sanitize(opts.DocDiscountValue) / 100
	case enum.DiscountModeAmount:
		docDiscount = sanitize(opts.DocDiscountValue)
	}
	if docDiscount > totals.Subtotal {
		docDiscount = totals.Subtotal
	}
	totals.TotalDiscount += docDiscount

	totals.TotalCharges = opts.Charges.Total()

	rawTotal := totals.Subtotal - docDiscount +
		totals.TotalCGST + totals.TotalSGST + totals.TotalIGST +
		totals.TotalCharges
	totals.GrandTotal = roundHalfUp(rawTotal)
	totals.RoundOff = totals.GrandTotal - rawTotal

	return totals
}

// roundHalfUp rounds to the nearest whole currency unit, halves away
// from zero toward the larger value.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// sanitize maps NaN, Inf and negative inputs to zero so the engine can
// total partially-edited documents without failing.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
