package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Vendor represents a supplier of goods against which purchase
// documents (orders, receipts, vouchers, returns) are raised
type Vendor struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Email         *string         `gorm:"size:255" json:"email,omitempty"`
	Phone         *string         `gorm:"size:50" json:"phone,omitempty"`
	Address       *string         `gorm:"type:text" json:"address,omitempty"`
	GSTIN         *string         `gorm:"size:15;column:gstin" json:"gstin,omitempty"`
	StateCode     string          `gorm:"size:2;not null" json:"state_code"`
	Type          enum.VendorType `gorm:"size:50;default:'distributor'" json:"type"`
	AccountHolder *string         `gorm:"size:255" json:"account_holder,omitempty"`
	AccountNumber *string         `gorm:"size:100" json:"account_number,omitempty"`
	BankName      *string         `gorm:"size:255" json:"bank_name,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Tenant         Tenant          `gorm:"foreignKey:TenantID" json:"-"`
	User           User            `gorm:"foreignKey:UserID" json:"-"`
	PurchaseOrders []PurchaseOrder `gorm:"foreignKey:VendorID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new vendor
func (v *Vendor) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Vendor model
func (Vendor) TableName() string {
	return "vendors"
}
