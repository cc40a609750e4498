package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	"gorm.io/gorm"
)

// PurchaseVoucher is the purchase invoice raised from a goods receipt
// note; its quantities are the accepted quantities of the GRN. Approving
// a purchase voucher adds the accepted goods to stock.
type PurchaseVoucher struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TenantID           uuid.UUID          `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UserID             uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	GoodsReceiptNoteID uuid.UUID          `gorm:"type:uuid;not null;index" json:"goods_receipt_note_id"`
	VendorID           uuid.UUID          `gorm:"type:uuid;not null;index" json:"vendor_id"`
	Date               time.Time          `gorm:"type:date;not null" json:"date"`
	VoucherNo          string             `gorm:"size:100;unique;not null" json:"voucher_no"`
	VendorInvoiceNo    *string            `gorm:"size:100" json:"vendor_invoice_no,omitempty"`
	Status             enum.VoucherStatus `gorm:"default:0" json:"status"`
	Intrastate         bool               `gorm:"default:true" json:"intrastate"`
	LineDiscountMode   enum.DiscountMode  `gorm:"default:0" json:"line_discount_mode"`
	DocDiscountMode    enum.DiscountMode  `gorm:"default:0" json:"doc_discount_mode"`
	DocDiscountValue   float64            `gorm:"type:decimal(15,2);default:0" json:"doc_discount_value"`
	Charges            ChargeSet          `gorm:"embedded;embeddedPrefix:charge_" json:"charges"`
	Totals             TotalsBreakup      `gorm:"embedded" json:"totals"`
	Note               *string            `gorm:"type:text" json:"note,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
	DeletedAt          gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User             User                  `gorm:"foreignKey:UserID" json:"-"`
	GoodsReceiptNote *GoodsReceiptNote     `gorm:"foreignKey:GoodsReceiptNoteID" json:"goods_receipt_note,omitempty"`
	Vendor           *Vendor               `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	Items            []PurchaseVoucherItem `gorm:"foreignKey:PurchaseVoucherID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase voucher
func (pv *PurchaseVoucher) BeforeCreate(tx *gorm.DB) error {
	if pv.ID == uuid.Nil {
		pv.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseVoucher model
func (PurchaseVoucher) TableName() string {
	return "purchase_vouchers"
}

// PurchaseVoucherItem represents a line item in a purchase voucher
type PurchaseVoucherItem struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseVoucherID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"purchase_voucher_id"`
	ProductID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName        string         `gorm:"size:255" json:"product_name"`
	HSNCode            string         `gorm:"size:20;column:hsn_code" json:"hsn_code"`
	Unit               string         `gorm:"size:50" json:"unit"`
	Quantity           float64        `gorm:"type:decimal(15,3);not null" json:"quantity"`
	UnitPrice          float64        `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	DiscountPercentage float64        `gorm:"type:decimal(5,2);default:0" json:"discount_percentage"`
	DiscountAmount     float64        `gorm:"type:decimal(15,2);default:0" json:"discount_amount"`
	GSTRate            float64        `gorm:"type:decimal(5,2);default:0;column:gst_rate" json:"gst_rate"`
	CGSTRate           float64        `gorm:"type:decimal(5,2);default:0;column:cgst_rate" json:"cgst_rate"`
	SGSTRate           float64        `gorm:"type:decimal(5,2);default:0;column:sgst_rate" json:"sgst_rate"`
	IGSTRate           float64        `gorm:"type:decimal(5,2);default:0;column:igst_rate" json:"igst_rate"`
	TaxableValue       float64        `gorm:"type:decimal(15,2);default:0" json:"taxable_value"`
	CGSTAmount         float64        `gorm:"type:decimal(15,2);default:0;column:cgst_amount" json:"cgst_amount"`
	SGSTAmount         float64        `gorm:"type:decimal(15,2);default:0;column:sgst_amount" json:"sgst_amount"`
	IGSTAmount         float64        `gorm:"type:decimal(15,2);default:0;column:igst_amount" json:"igst_amount"`
	LineTotal          float64        `gorm:"type:decimal(15,2);default:0" json:"line_total"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	PurchaseVoucher PurchaseVoucher `gorm:"foreignKey:PurchaseVoucherID" json:"-"`
	Product         Product         `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase voucher item
func (pvi *PurchaseVoucherItem) BeforeCreate(tx *gorm.DB) error {
	if pvi.ID == uuid.Nil {
		pvi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseVoucherItem model
func (PurchaseVoucherItem) TableName() string {
	return "purchase_voucher_items"
}
