package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
	"github.com/kinara-erp/vouchers-api/internal/domain/repository"
)

type fakeMembershipRepo struct {
	repository.TenantRepository
	byUser map[uuid.UUID][]entity.Tenant
}

func (f *fakeMembershipRepo) GetUserTenants(_ context.Context, userID uuid.UUID) ([]entity.Tenant, error) {
	return f.byUser[userID], nil
}

func TestGetUserTenants(t *testing.T) {
	userID := uuid.New()
	repo := &fakeMembershipRepo{byUser: map[uuid.UUID][]entity.Tenant{
		userID: {
			{ID: uuid.New(), Name: "Kinara Pune", Slug: "kinara-pune"},
			{ID: uuid.New(), Name: "Kinara Nashik", Slug: "kinara-nashik"},
		},
	}}
	svc := NewTenantService(repo)

	tenants, err := svc.GetUserTenants(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetUserTenants returned error: %v", err)
	}
	if len(tenants) != 2 {
		t.Fatalf("expected 2 tenants, got %d", len(tenants))
	}

	tenants, err = svc.GetUserTenants(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetUserTenants returned error: %v", err)
	}
	if len(tenants) != 0 {
		t.Errorf("expected no tenants for a user with no memberships, got %d", len(tenants))
	}
}
