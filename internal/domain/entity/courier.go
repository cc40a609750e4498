package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Courier represents a transport partner used for dispatch orders
type Courier struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Phone       *string        `gorm:"size:50" json:"phone,omitempty"`
	Email       *string        `gorm:"size:255" json:"email,omitempty"`
	TrackingURL *string        `gorm:"size:500" json:"tracking_url,omitempty"`
	ServiceArea *string        `gorm:"size:255" json:"service_area,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Tenant         Tenant          `gorm:"foreignKey:TenantID" json:"-"`
	User           User            `gorm:"foreignKey:UserID" json:"-"`
	DispatchOrders []DispatchOrder `gorm:"foreignKey:CourierID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new courier
func (c *Courier) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Courier model
func (Courier) TableName() string {
	return "couriers"
}
