package entity

// TotalsBreakup holds the computed aggregate amounts of a voucher.
// It is always recomputed from the line items and document flags,
// never edited directly.
type TotalsBreakup struct {
	Subtotal      float64 `gorm:"type:decimal(15,2);default:0" json:"subtotal"`
	TotalCGST     float64 `gorm:"type:decimal(15,2);default:0;column:total_cgst" json:"total_cgst"`
	TotalSGST     float64 `gorm:"type:decimal(15,2);default:0;column:total_sgst" json:"total_sgst"`
	TotalIGST     float64 `gorm:"type:decimal(15,2);default:0;column:total_igst" json:"total_igst"`
	TotalDiscount float64 `gorm:"type:decimal(15,2);default:0" json:"total_discount"`
	TotalCharges  float64 `gorm:"type:decimal(15,2);default:0" json:"total_charges"`
	RoundOff      float64 `gorm:"type:decimal(15,2);default:0" json:"round_off"`
	GrandTotal    float64 `gorm:"type:decimal(15,2);default:0" json:"grand_total"`
}
