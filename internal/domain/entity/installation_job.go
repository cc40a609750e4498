package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	"gorm.io/gorm"
)

// InstallationJob schedules the on-site installation of dispatched
// goods. It carries a single scheduling record rather than line items,
// and each dispatch order can spawn at most one job.
type InstallationJob struct {
	ID              uuid.UUID               `gorm:"type:uuid;primary_key" json:"id"`
	TenantID        uuid.UUID               `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UserID          uuid.UUID               `gorm:"type:uuid;not null;index" json:"user_id"`
	DispatchOrderID uuid.UUID               `gorm:"type:uuid;not null;uniqueIndex" json:"dispatch_order_id"`
	CustomerID      uuid.UUID               `gorm:"type:uuid;not null;index" json:"customer_id"`
	TechnicianID    *uuid.UUID              `gorm:"type:uuid;index" json:"technician_id,omitempty"`
	JobNo           string                  `gorm:"size:100;unique;not null" json:"job_no"`
	SiteAddress     string                  `gorm:"type:text" json:"site_address"`
	ScheduledAt     time.Time               `gorm:"not null" json:"scheduled_at"`
	CompletedAt     *time.Time              `json:"completed_at,omitempty"`
	Status          enum.InstallationStatus `gorm:"default:0" json:"status"`
	Note            *string                 `gorm:"type:text" json:"note,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
	DeletedAt       gorm.DeletedAt          `gorm:"index" json:"-"`

	// Relationships
	User          User           `gorm:"foreignKey:UserID" json:"-"`
	DispatchOrder *DispatchOrder `gorm:"foreignKey:DispatchOrderID" json:"dispatch_order,omitempty"`
	Customer      *Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Technician    *User          `gorm:"foreignKey:TechnicianID" json:"technician,omitempty"`
}

// BeforeCreate generates a UUID before creating a new installation job
func (ij *InstallationJob) BeforeCreate(tx *gorm.DB) error {
	if ij.ID == uuid.Nil {
		ij.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InstallationJob model
func (InstallationJob) TableName() string {
	return "installation_jobs"
}
