package enum

// ReferenceType identifies the kind of source document a derived
// voucher points back to
type ReferenceType string

const (
	ReferenceTypePurchaseOrder    ReferenceType = "purchase_order"
	ReferenceTypeGoodsReceiptNote ReferenceType = "goods_receipt_note"
	ReferenceTypeDispatchOrder    ReferenceType = "dispatch_order"
)

// IsValid checks whether the reference type is one of the known values
func (t ReferenceType) IsValid() bool {
	switch t {
	case ReferenceTypePurchaseOrder, ReferenceTypeGoodsReceiptNote, ReferenceTypeDispatchOrder:
		return true
	}
	return false
}
