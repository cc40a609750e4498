package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a buyer to whom goods are dispatched and
// installed, and against whom CRM opportunities are tracked
type Customer struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name            string         `gorm:"size:255;not null" json:"name"`
	Email           *string        `gorm:"size:255" json:"email,omitempty"`
	Phone           *string        `gorm:"size:50" json:"phone,omitempty"`
	GSTIN           *string        `gorm:"size:15;column:gstin" json:"gstin,omitempty"`
	StateCode       string         `gorm:"size:2;not null" json:"state_code"`
	BillingAddress  *string        `gorm:"type:text" json:"billing_address,omitempty"`
	DeliveryAddress *string        `gorm:"type:text" json:"delivery_address,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Tenant         Tenant          `gorm:"foreignKey:TenantID" json:"-"`
	User           User            `gorm:"foreignKey:UserID" json:"-"`
	DispatchOrders []DispatchOrder `gorm:"foreignKey:CustomerID" json:"-"`
	Opportunities  []Opportunity   `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
