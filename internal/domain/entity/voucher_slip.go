package entity

// VoucherSlip is the print model for a thermal voucher slip. It is not
// persisted; it is assembled from a voucher and the tenant settings
// just before formatting.
type VoucherSlip struct {
	Header    VoucherSlipHeader `json:"header"`
	Title     string            `json:"title"`
	VoucherNo string            `json:"voucher_no"`
	Date      string            `json:"date"`
	Party     string            `json:"party"`
	PartyGST  string            `json:"party_gst,omitempty"`
	Reference string            `json:"reference,omitempty"`
	Items     []VoucherSlipItem `json:"items"`
	Totals    TotalsBreakup     `json:"totals"`
}

// VoucherSlipHeader carries the company identity printed at the top
type VoucherSlipHeader struct {
	CompanyName string `json:"company_name"`
	GSTIN       string `json:"gstin,omitempty"`
	StateCode   string `json:"state_code,omitempty"`
}

// VoucherSlipItem is one printed line
type VoucherSlipItem struct {
	Name      string  `json:"name"`
	HSNCode   string  `json:"hsn_code,omitempty"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit,omitempty"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}
