package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

const (
	// TenantIDKey is the context key carrying the active tenant
	TenantIDKey ctxKey = "tenant_id"
	// SkipTenantScopeKey marks a request as cross-tenant (super admin)
	SkipTenantScopeKey ctxKey = "skip_tenant_scope"
)

// TenantScope returns a GORM scope that restricts queries to the tenant
// in context. Every voucher, master-data and CRM row carries a tenant_id
// and must be read through this scope. A missing tenant yields no rows
// rather than all rows; cross-tenant reads require the explicit skip flag.
func TenantScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if skipTenantScope(ctx) {
			return db
		}
		tenantID, ok := GetTenantID(ctx)
		if !ok {
			return db.Where("1 = 0")
		}
		return db.Where("tenant_id = ?", tenantID)
	}
}

func skipTenantScope(ctx context.Context) bool {
	skip, ok := ctx.Value(SkipTenantScopeKey).(bool)
	return ok && skip
}

// WithSkipTenantScope marks the context as cross-tenant (super admin only)
func WithSkipTenantScope(ctx context.Context, skip bool) context.Context {
	return context.WithValue(ctx, SkipTenantScopeKey, skip)
}

// WithTenant binds the active tenant to the context
func WithTenant(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, TenantIDKey, tenantID)
}

// GetTenantID extracts the active tenant from the context
func GetTenantID(ctx context.Context) (uuid.UUID, bool) {
	tenantID, ok := ctx.Value(TenantIDKey).(uuid.UUID)
	return tenantID, ok
}
