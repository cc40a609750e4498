package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	"gorm.io/gorm"
)

// PurchaseReturn sends rejected goods back to the vendor. It is derived
// from a goods receipt note; its quantities default to the GRN's
// rejected quantities.
type PurchaseReturn struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TenantID           uuid.UUID          `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UserID             uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	GoodsReceiptNoteID uuid.UUID          `gorm:"type:uuid;not null;index" json:"goods_receipt_note_id"`
	VendorID           uuid.UUID          `gorm:"type:uuid;not null;index" json:"vendor_id"`
	Date               time.Time          `gorm:"type:date;not null" json:"date"`
	VoucherNo          string             `gorm:"size:100;unique;not null" json:"voucher_no"`
	ReferenceType      enum.ReferenceType `gorm:"size:50" json:"reference_type"`
	ReferenceNo        string             `gorm:"size:100" json:"reference_no"`
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
	User             User                 `gorm:"foreignKey:UserID" json:"-"`
	GoodsReceiptNote *GoodsReceiptNote    `gorm:"foreignKey:GoodsReceiptNoteID" json:"goods_receipt_note,omitempty"`
	Vendor           *Vendor              `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	Items            []PurchaseReturnItem `gorm:"foreignKey:PurchaseReturnID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase return
func (pr *PurchaseReturn) BeforeCreate(tx *gorm.DB) error {
	if pr.ID == uuid.Nil {
		pr.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseReturn model
func (PurchaseReturn) TableName() string {
	return "purchase_returns"
}

// PurchaseReturnItem represents a line item in a purchase return.
// Lines whose rejected quantity was zero are still carried so the
// return can be adjusted before submission.
type PurchaseReturnItem struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseReturnID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"purchase_return_id"`
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
	PurchaseReturn PurchaseReturn `gorm:"foreignKey:PurchaseReturnID" json:"-"`
	Product        Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase return item
func (pri *PurchaseReturnItem) BeforeCreate(tx *gorm.DB) error {
	if pri.ID == uuid.Nil {
		pri.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseReturnItem model
func (PurchaseReturnItem) TableName() string {
	return "purchase_return_items"
}
