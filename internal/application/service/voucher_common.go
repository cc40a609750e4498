package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
	"github.com/kinara-erp/vouchers-api/internal/domain/repository"
	"github.com/kinara-erp/vouchers-api/internal/domain/voucher"
	"github.com/kinara-erp/vouchers-api/pkg/apperror"
)

// VoucherItemInput represents a line item submitted for a voucher document
type VoucherItemInput struct {
	ProductID          uuid.UUID
	Quantity           float64
	UnitPrice          float64
	DiscountPercentage float64
	DiscountAmount     float64
}

// newVoucherNo builds a voucher number from the tenant's configured
// prefix, falling back to the built-in default when unset
func newVoucherNo(prefix, fallback string) string {
	if prefix == "" {
		prefix = fallback
	}
	return fmt.Sprintf("%s%s", prefix, uuid.New().String()[:8])
}

// isIntrastate reports whether a party in the given state is in the
// same state as the company. An unset state on either side defaults to
// intrastate so single-state installs work without configuration.
func isIntrastate(companyState, partyState string) bool {
	if companyState == "" || partyState == "" {
		return true
	}
	return companyState == partyState
}

// tenantSettings loads the settings of the tenant in context. Missing
// tenants fall back to defaults rather than failing the voucher.
func tenantSettings(ctx context.Context, tenantRepo repository.TenantRepository, tenantID uuid.UUID) entity.TenantSettings {
	tenant, err := tenantRepo.GetByID(ctx, tenantID)
	if err != nil || tenant == nil {
		return entity.DefaultTenantSettings()
	}
	return tenant.Settings
}

// unresolvedProductErrors reports line items whose product link was
// never resolved. Derivation lets such lines through with a warning;
// any operation that moves stock must refuse them, since there is no
// product row to post the quantity against.
func unresolvedProductErrors(productIDs []uuid.UUID) []apperror.FieldError {
	var fieldErrors []apperror.FieldError
	for i, id := range productIDs {
		if id == uuid.Nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d]", i),
				Message: "product link is unresolved",
			})
		}
	}
	return fieldErrors
}

// dataQualityWarnings converts a derivation data-quality report into
// human-readable warnings for the API response. Returns nil when the
// error is nil or of another kind.
func dataQualityWarnings(err error) []string {
	var dq *voucher.DataQualityError
	if !errors.As(err, &dq) {
		return nil
	}
	warnings := make([]string, 0, len(dq.Lines))
	for _, line := range dq.Lines {
		warnings = append(warnings, fmt.Sprintf(
			"line %d: missing or invalid product tax mapping, default GST rate %.0f%% applied",
			line, entity.DefaultGSTRate))
	}
	return warnings
}
