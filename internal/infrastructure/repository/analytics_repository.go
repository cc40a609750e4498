package repository

import (
	"context"
	"time"

	"github.com/kinara-erp/vouchers-api/internal/domain/entity"
	"github.com/kinara-erp/vouchers-api/internal/domain/enum"
	domainRepo "github.com/kinara-erp/vouchers-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) CountOpenPurchaseOrders(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.PurchaseOrder{}).
		Scopes(TenantScope(ctx)).
		Where("status = ? AND grn_status = ?", enum.PurchaseOrderStatusApproved, enum.ConversionStatusPending).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountReceiptsAwaitingInvoice(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.GoodsReceiptNote{}).
		Scopes(TenantScope(ctx)).
		Where("status = ?", enum.VoucherStatusSubmitted).
		Where("id NOT IN (?)", r.db.Model(&entity.PurchaseVoucher{}).Select("goods_receipt_note_id")).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) GetMonthlyPurchaseValue(ctx context.Context, months int) ([]domainRepo.MonthlyPurchaseResult, error) {
	if months <= 0 {
		months = 12
	}
	since := time.Now().AddDate(0, -months, 0)

	var results []domainRepo.MonthlyPurchaseResult
	err := r.db.WithContext(ctx).Model(&entity.PurchaseVoucher{}).
		Scopes(TenantScope(ctx)).
		Select("DATE_TRUNC('month', date) AS month, COALESCE(SUM(grand_total), 0) AS value, COUNT(*) AS count").
		Where("status = ? AND date >= ?", enum.VoucherStatusApproved, since).
		Group("DATE_TRUNC('month', date)").
		Order("month ASC").
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) GetTopVendors(ctx context.Context, limit int) ([]domainRepo.TopVendorResult, error) {
	if limit <= 0 {
		limit = 5
	}

	var results []domainRepo.TopVendorResult
	err := r.db.WithContext(ctx).Model(&entity.PurchaseVoucher{}).
		Scopes(TenantScope(ctx)).
		Select("purchase_vouchers.vendor_id, vendors.name AS vendor_name, COALESCE(SUM(purchase_vouchers.grand_total), 0) AS total_value, COUNT(*) AS order_count").
		Joins("JOIN vendors ON vendors.id = purchase_vouchers.vendor_id").
		Where("purchase_vouchers.status = ?", enum.VoucherStatusApproved).
		Group("purchase_vouchers.vendor_id, vendors.name").
		Order("total_value DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) GetOpportunityPipeline(ctx context.Context) ([]domainRepo.PipelineStageResult, error) {
	type row struct {
		Stage         enum.OpportunityStage
		Count         int
		ExpectedValue float64
	}

	var rows []row
	err := r.db.WithContext(ctx).Model(&entity.Opportunity{}).
		Scopes(TenantScope(ctx)).
		Select("stage, COUNT(*) AS count, COALESCE(SUM(expected_value), 0) AS expected_value").
		Group("stage").
		Order("stage ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]domainRepo.PipelineStageResult, 0, len(rows))
	for _, r := range rows {
		results = append(results, domainRepo.PipelineStageResult{
			Stage:         r.Stage.String(),
			Count:         r.Count,
			ExpectedValue: r.ExpectedValue,
		})
	}
	return results, nil
}

func (r *analyticsRepository) GetPendingInstallations(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.InstallationJob{}).
		Scopes(TenantScope(ctx)).
		Where("status IN ?", []enum.InstallationStatus{
			enum.InstallationStatusScheduled,
			enum.InstallationStatusInProgress,
		}).
		Count(&count).Error
	return count, err
}
