package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	"gorm.io/gorm"
)

// DispatchOrder represents an outbound shipment of goods to a customer.
// A delivered dispatch order can be consumed by one installation job.
type DispatchOrder struct {
	ID               uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	TenantID         uuid.UUID           `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UserID           uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID       uuid.UUID           `gorm:"type:uuid;not null;index" json:"customer_id"`
	CourierID        *uuid.UUID          `gorm:"type:uuid;index" json:"courier_id,omitempty"`
	Date             time.Time           `gorm:"type:date;not null" json:"date"`
	VoucherNo        string              `gorm:"size:100;unique;not null" json:"voucher_no"`
	DeliveryAddress  string              `gorm:"type:text" json:"delivery_address"`
	TrackingNo       *string             `gorm:"size:100" json:"tracking_no,omitempty"`
	Status           enum.DispatchStatus `gorm:"default:0" json:"status"`
	Intrastate       bool                `gorm:"default:true" json:"intrastate"`
	LineDiscountMode enum.DiscountMode   `gorm:"default:0" json:"line_discount_mode"`
	DocDiscountMode  enum.DiscountMode   `gorm:"default:0" json:"doc_discount_mode"`
	DocDiscountValue float64             `gorm:"type:decimal(15,2);default:0" json:"doc_discount_value"`
	Charges          ChargeSet           `gorm:"embedded;embeddedPrefix:charge_" json:"charges"`
	Totals           TotalsBreakup       `gorm:"embedded" json:"totals"`
	Note             *string             `gorm:"type:text" json:"note,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	DeletedAt        gorm.DeletedAt      `gorm:"index" json:"-"`

	// Relationships
	User     User                `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer           `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Courier  *Courier            `gorm:"foreignKey:CourierID" json:"courier,omitempty"`
	Items    []DispatchOrderItem `gorm:"foreignKey:DispatchOrderID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new dispatch order
func (do *DispatchOrder) BeforeCreate(tx *gorm.DB) error {
	if do.ID == uuid.Nil {
		do.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DispatchOrder model
func (DispatchOrder) TableName() string {
	return "dispatch_orders"
}

// DispatchOrderItem represents a line item in a dispatch order
type DispatchOrderItem struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	DispatchOrderID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"dispatch_order_id"`
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
	DispatchOrder DispatchOrder `gorm:"foreignKey:DispatchOrderID" json:"-"`
	Product       Product       `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new dispatch order item
func (doi *DispatchOrderItem) BeforeCreate(tx *gorm.DB) error {
	if doi.ID == uuid.Nil {
		doi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DispatchOrderItem model
func (DispatchOrderItem) TableName() string {
	return "dispatch_order_items"
}
