package voucher

import (
	"math"
	"testing"

	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestSplitRate(t *testing.T) {
	tests := []struct {
		name       string
		gstRate    float64
		intrastate bool
		wantCGST   float64
		wantSGST   float64
		wantIGST   float64
	}{
		{"intrastate 18", 18, true, 9, 9, 0},
		{"interstate 18", 18, false, 0, 0, 18},
		{"intrastate odd rate", 1, true, 0.5, 0.5, 0},
		{"interstate 28", 28, false, 0, 0, 28},
		{"zero rate", 0, true, 0, 0, 0},
		{"negative rate sanitized", -5, false, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cgst, sgst, igst := SplitRate(tt.gstRate, tt.intrastate)
			if !almostEqual(cgst, tt.wantCGST) || !almostEqual(sgst, tt.wantSGST) || !almostEqual(igst, tt.wantIGST) {
				t.Errorf("SplitRate(%v, %v) = (%v, %v, %v), want (%v, %v, %v)",
					tt.gstRate, tt.intrastate, cgst, sgst, igst, tt.wantCGST, tt.wantSGST, tt.wantIGST)
			}
		})
	}
}

func TestComputeLine_IntrastateExample(t *testing.T) {
	// 10 x 100 with 10% discount at 18% GST, intrastate:
	// taxable 900, cgst = sgst = 81, line total 1062.
	item := LineItem{Quantity: 10, UnitPrice: 100, DiscountPercentage: 10, GSTRate: 18}
	got := ComputeLine(item, true, enum.DiscountModePercentage)

	if !almostEqual(got.TaxableValue, 900) {
		t.Errorf("taxable = %v, want 900", got.TaxableValue)
	}
	if !almostEqual(got.CGSTAmount, 81) || !almostEqual(got.SGSTAmount, 81) {
		t.Errorf("cgst/sgst = %v/%v, want 81/81", got.CGSTAmount, got.SGSTAmount)
	}
	if !almostEqual(got.IGSTAmount, 0) {
		t.Errorf("igst = %v, want 0", got.IGSTAmount)
	}
	if !almostEqual(got.LineTotal, 1062) {
		t.Errorf("line total = %v, want 1062", got.LineTotal)
	}
}

func TestComputeLine_SanitizesInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		item LineItem
	}{
		{"NaN quantity", LineItem{Quantity: math.NaN(), UnitPrice: 100, GSTRate: 18}},
		{"negative quantity", LineItem{Quantity: -3, UnitPrice: 100, GSTRate: 18}},
		{"Inf price", LineItem{Quantity: 2, UnitPrice: math.Inf(1), GSTRate: 18}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeLine(tt.item, true, enum.DiscountModeNone)
			if got.TaxableValue != 0 || got.LineTotal != 0 {
				t.Errorf("invalid input produced taxable=%v total=%v, want zeros", got.TaxableValue, got.LineTotal)
			}
		})
	}
}

func TestComputeLine_DiscountCappedAtBase(t *testing.T) {
	item := LineItem{Quantity: 1, UnitPrice: 100, DiscountAmount: 250, GSTRate: 18}
	got := ComputeLine(item, false, enum.DiscountModeAmount)
	if got.TaxableValue != 0 {
		t.Errorf("taxable = %v, want 0 when discount exceeds base", got.TaxableValue)
	}
}

func TestComputeTotals_EndToEnd(t *testing.T) {
	items := []LineItem{
		{Quantity: 10, UnitPrice: 100, DiscountPercentage: 10, GSTRate: 18},
	}
	got := ComputeTotals(items, TotalsOptions{
		Intrastate:       true,
		LineDiscountMode: enum.DiscountModePercentage,
	})

	if !almostEqual(got.Subtotal, 900) {
		t.Errorf("subtotal = %v, want 900", got.Subtotal)
	}
	if !almostEqual(got.TotalCGST, 81) || !almostEqual(got.TotalSGST, 81) {
		t.Errorf("cgst/sgst = %v/%v, want 81/81", got.TotalCGST, got.TotalSGST)
	}
	if !almostEqual(got.TotalIGST, 0) {
		t.Errorf("igst = %v, want 0", got.TotalIGST)
	}
	if !almostEqual(got.GrandTotal, 1062) {
		t.Errorf("grand total = %v, want 1062", got.GrandTotal)
	}
	if !almostEqual(got.RoundOff, 0) {
		t.Errorf("round off = %v, want 0", got.RoundOff)
	}
}

func TestComputeTotals_InterstatePutsTaxOnIGST(t *testing.T) {
	items := []LineItem{{Quantity: 5, UnitPrice: 200, GSTRate: 12}}
	got := ComputeTotals(items, TotalsOptions{Intrastate: false})

	if got.TotalCGST != 0 || got.TotalSGST != 0 {
		t.Errorf("interstate produced cgst=%v sgst=%v, want zero", got.TotalCGST, got.TotalSGST)
	}
	if !almostEqual(got.TotalIGST, 120) {
		t.Errorf("igst = %v, want 120", got.TotalIGST)
	}
}

func TestComputeTotals_RoundingClosure(t *testing.T) {
	tests := []struct {
		name  string
		items []LineItem
		opts  TotalsOptions
	}{
		{
			"fractional tax",
			[]LineItem{{Quantity: 3, UnitPrice: 33.33, GSTRate: 18}},
			TotalsOptions{Intrastate: true},
		},
		{
			"odd rate interstate",
			[]LineItem{{Quantity: 7, UnitPrice: 99.99, GSTRate: 5}},
			TotalsOptions{Intrastate: false},
		},
		{
			"with charges and doc discount",
			[]LineItem{{Quantity: 2, UnitPrice: 149.5, GSTRate: 28}},
			TotalsOptions{
				Intrastate:      true,
				DocDiscountMode: enum.DiscountModeAmount, DocDiscountValue: 17.35,
				Charges: entity.ChargeSet{Freight: 45.5, Packing: 12.25},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.items, tt.opts)
			raw := got.GrandTotal - got.RoundOff
			if !almostEqual(got.GrandTotal, math.Floor(raw+0.5)) {
				t.Errorf("grand total %v is not round(raw %v)", got.GrandTotal, raw)
			}
			if got.GrandTotal != math.Trunc(got.GrandTotal) {
				t.Errorf("grand total %v is not a whole currency unit", got.GrandTotal)
			}
			if math.Abs(got.RoundOff) > 0.5+eps {
				t.Errorf("round off %v exceeds half a unit", got.RoundOff)
			}
		})
	}
}

func TestComputeTotals_Idempotent(t *testing.T) {
	items := []LineItem{
		{Quantity: 4, UnitPrice: 75.5, DiscountPercentage: 5, GSTRate: 18},
		{Quantity: 1, UnitPrice: 1299, GSTRate: 28},
	}
	opts := TotalsOptions{
		Intrastate:       true,
		LineDiscountMode: enum.DiscountModePercentage,
		DocDiscountMode:  enum.DiscountModePercentage,
		DocDiscountValue: 2,
		Charges:          entity.ChargeSet{Freight: 100},
	}

	first := ComputeTotals(items, opts)
	second := ComputeTotals(items, opts)
	if first != second {
		t.Errorf("repeated computation differs: %+v vs %+v", first, second)
	}
}

func TestComputeTotals_DocDiscountDoesNotRecomputeTax(t *testing.T) {
	items := []LineItem{{Quantity: 10, UnitPrice: 100, GSTRate: 18}}

	without := ComputeTotals(items, TotalsOptions{Intrastate: true})
	with := ComputeTotals(items, TotalsOptions{
		Intrastate:      true,
		DocDiscountMode: enum.DiscountModeAmount, DocDiscountValue: 100,
	})

	// Tax stays fixed at the per-line amounts; only the grand total drops.
	if !almostEqual(with.TotalCGST, without.TotalCGST) || !almostEqual(with.TotalSGST, without.TotalSGST) {
		t.Errorf("document discount changed tax: %v/%v vs %v/%v",
			with.TotalCGST, with.TotalSGST, without.TotalCGST, without.TotalSGST)
	}
	if !almostEqual(with.GrandTotal, without.GrandTotal-100) {
		t.Errorf("grand total = %v, want %v", with.GrandTotal, without.GrandTotal-100)
	}
	if !almostEqual(with.TotalDiscount, 100) {
		t.Errorf("total discount = %v, want 100", with.TotalDiscount)
	}
}

func TestComputeTotals_ChargesAreUntaxed(t *testing.T) {
	items := []LineItem{{Quantity: 1, UnitPrice: 1000, GSTRate: 18}}
	charges := entity.ChargeSet{Freight: 200, Installation: 300, Miscellaneous: 50}

	got := ComputeTotals(items, TotalsOptions{Intrastate: false, Charges: charges})

	if !almostEqual(got.TotalCharges, 550) {
		t.Errorf("total charges = %v, want 550", got.TotalCharges)
	}
	// 1000 taxable + 180 IGST + 550 charges; no tax on the charges.
	if !almostEqual(got.TotalIGST, 180) {
		t.Errorf("igst = %v, want 180", got.TotalIGST)
	}
	if !almostEqual(got.GrandTotal, 1730) {
		t.Errorf("grand total = %v, want 1730", got.GrandTotal)
	}
}

func TestComputeTotals_EmptyDocument(t *testing.T) {
	got := ComputeTotals(nil, TotalsOptions{Intrastate: true})
	if got.GrandTotal != 0 || got.Subtotal != 0 {
		t.Errorf("empty document totaled %+v, want zeros", got)
	}
}
