package entity

// ChargeSet holds the named additional-charge buckets that can be added
// to a voucher. Each bucket is independently optional and is added to the
// grand total as an untaxed pass-through.
type ChargeSet struct {
	Freight       float64 `gorm:"type:decimal(15,2);default:0" json:"freight"`
	Installation  float64 `gorm:"type:decimal(15,2);default:0" json:"installation"`
	Packing       float64 `gorm:"type:decimal(15,2);default:0" json:"packing"`
	Insurance     float64 `gorm:"type:decimal(15,2);default:0" json:"insurance"`
	Loading       float64 `gorm:"type:decimal(15,2);default:0" json:"loading"`
	Unloading     float64 `gorm:"type:decimal(15,2);default:0" json:"unloading"`
	Miscellaneous float64 `gorm:"type:decimal(15,2);default:0" json:"miscellaneous"`
}

// Total sums the enabled charge buckets; invalid values count as zero
func (c ChargeSet) Total() float64 {
	total := 0.0
	for _, v := range []float64{c.Freight, c.Installation, c.Packing, c.Insurance, c.Loading, c.Unloading, c.Miscellaneous} {
		if v > 0 {
			total += v
		}
	}
	return total
}
