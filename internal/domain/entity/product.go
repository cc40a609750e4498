package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultGSTRate is applied when a product carries no tax configuration
const DefaultGSTRate = 18.0

// Product represents a catalog product in the inventory
type Product struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	UnitID        *uuid.UUID     `gorm:"type:uuid;index" json:"unit_id,omitempty"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Slug          string         `gorm:"size:255;unique;not null" json:"slug"`
	Code          string         `gorm:"size:100;unique;not null" json:"code"`
	HSNCode       *string        `gorm:"size:20;column:hsn_code" json:"hsn_code,omitempty"`
	GSTRate       float64        `gorm:"type:decimal(5,2);default:18" json:"gst_rate"`
	Quantity      float64        `gorm:"type:decimal(15,3);default:0" json:"quantity"`
	QuantityAlert float64        `gorm:"type:decimal(15,3);default:0" json:"quantity_alert"`
	PurchasePrice float64        `gorm:"type:decimal(15,2);default:0" json:"purchase_price"`
	SellingPrice  float64        `gorm:"type:decimal(15,2);default:0" json:"selling_price"`
	Notes         *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Tenant Tenant `gorm:"foreignKey:TenantID" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Unit   *Unit  `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// EffectiveGSTRate returns the product's GST rate, falling back to the
// default when no rate is configured
func (p *Product) EffectiveGSTRate() float64 {
	if p.GSTRate <= 0 {
		return DefaultGSTRate
	}
	return p.GSTRate
}

// UnitLabel returns the short code of the product's unit of measure
func (p *Product) UnitLabel() string {
	if p.Unit == nil {
		return ""
	}
	if p.Unit.ShortCode != "" {
		return p.Unit.ShortCode
	}
	return p.Unit.Name
}

// Unit represents a unit of measurement
type Unit struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	ShortCode string         `gorm:"size:50" json:"short_code"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Tenant   Tenant    `gorm:"foreignKey:TenantID" json:"-"`
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Products []Product `gorm:"foreignKey:UnitID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new unit
func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Unit model
func (Unit) TableName() string {
	return "units"
}
