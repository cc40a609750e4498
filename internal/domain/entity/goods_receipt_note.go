package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	"gorm.io/gorm"
)

// GoodsReceiptNote records the physical receipt of goods against a
// purchase order, with received/accepted/rejected quantity tracking.
// Each purchase order can be consumed by at most one GRN.
type GoodsReceiptNote struct {
	ID               uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TenantID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UserID           uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	PurchaseOrderID  uuid.UUID          `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	VendorID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"vendor_id"`
	Date             time.Time          `gorm:"type:date;not null" json:"date"`
	VoucherNo        string             `gorm:"size:100;unique;not null" json:"voucher_no"`
	ReferenceNo      string             `gorm:"size:100" json:"reference_no"`
	Status           enum.VoucherStatus `gorm:"default:0" json:"status"`
	Intrastate       bool               `gorm:"default:true" json:"intrastate"`
	LineDiscountMode enum.DiscountMode  `gorm:"default:0" json:"line_discount_mode"`
	DocDiscountMode  enum.DiscountMode  `gorm:"default:0" json:"doc_discount_mode"`
	DocDiscountValue float64            `gorm:"type:decimal(15,2);default:0" json:"doc_discount_value"`
	Charges          ChargeSet          `gorm:"embedded;embeddedPrefix:charge_" json:"charges"`
	Totals           TotalsBreakup      `gorm:"embedded" json:"totals"`
	Note             *string            `gorm:"type:text" json:"note,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
	DeletedAt        gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User          User              `gorm:"foreignKey:UserID" json:"-"`
	PurchaseOrder *PurchaseOrder    `gorm:"foreignKey:PurchaseOrderID" json:"purchase_order,omitempty"`
	Vendor        *Vendor           `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	Items         []GoodsReceiptItem `gorm:"foreignKey:GoodsReceiptNoteID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new goods receipt note
func (grn *GoodsReceiptNote) BeforeCreate(tx *gorm.DB) error {
	if grn.ID == uuid.Nil {
		grn.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the GoodsReceiptNote model
func (GoodsReceiptNote) TableName() string {
	return "goods_receipt_notes"
}

// GoodsReceiptItem represents a line item in a goods receipt note.
// OrderedQuantity is copied from the source purchase order and is
// immutable; the other quantities are user-entered and must satisfy
// accepted + rejected <= received before submission.
type GoodsReceiptItem struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	GoodsReceiptNoteID uuid.UUID      `gorm:"type:uuid;not null;index" json:"goods_receipt_note_id"`
	ProductID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName        string         `gorm:"size:255" json:"product_name"`
	HSNCode            string         `gorm:"size:20;column:hsn_code" json:"hsn_code"`
	Unit               string         `gorm:"size:50" json:"unit"`
	OrderedQuantity    float64        `gorm:"type:decimal(15,3);not null" json:"ordered_quantity"`
	ReceivedQuantity   float64        `gorm:"type:decimal(15,3);default:0" json:"received_quantity"`
	AcceptedQuantity   float64        `gorm:"type:decimal(15,3);default:0" json:"accepted_quantity"`
	RejectedQuantity   float64        `gorm:"type:decimal(15,3);default:0" json:"rejected_quantity"`
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
	GoodsReceiptNote GoodsReceiptNote `gorm:"foreignKey:GoodsReceiptNoteID" json:"-"`
	Product          Product          `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new goods receipt item
func (gri *GoodsReceiptItem) BeforeCreate(tx *gorm.DB) error {
	if gri.ID == uuid.Nil {
		gri.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the GoodsReceiptItem model
func (GoodsReceiptItem) TableName() string {
	return "goods_receipt_items"
}
