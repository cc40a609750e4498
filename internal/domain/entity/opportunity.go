package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Opportunity represents a CRM sales opportunity moving through the
// pipeline stages
type Opportunity struct {
	ID                uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	TenantID          uuid.UUID             `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UserID            uuid.UUID             `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID        *uuid.UUID            `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Title             string                `gorm:"size:255;not null" json:"title"`
	Reference         string                `gorm:"size:100;unique;not null" json:"reference"`
	Stage             enum.OpportunityStage `gorm:"default:0" json:"stage"`
	ExpectedValue     float64               `gorm:"type:decimal(15,2);default:0" json:"expected_value"`
	ExpectedCloseDate *time.Time            `gorm:"type:date" json:"expected_close_date,omitempty"`
	Source            *string               `gorm:"size:100" json:"source,omitempty"`
	Note              *string               `gorm:"type:text" json:"note,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
	DeletedAt         gorm.DeletedAt        `gorm:"index" json:"-"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// BeforeCreate generates a UUID before creating a new opportunity
func (o *Opportunity) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Opportunity model
func (Opportunity) TableName() string {
	return "opportunities"
}
