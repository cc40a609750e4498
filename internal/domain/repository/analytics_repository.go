package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MonthlyPurchaseResult represents purchase value aggregated by month
type MonthlyPurchaseResult struct {
	Month time.Time
	Value float64
	Count int
}

// TopVendorResult represents a vendor's purchase volume
type TopVendorResult struct {
	VendorID   uuid.UUID
	VendorName string
	TotalValue float64
	OrderCount int
}

// PipelineStageResult represents opportunity value aggregated by stage
type PipelineStageResult struct {
	Stage         string
	Count         int
	ExpectedValue float64
}

// AnalyticsRepository defines interface for dashboard aggregation queries
type AnalyticsRepository interface {
	// CountOpenPurchaseOrders returns approved orders not yet consumed by a GRN
	CountOpenPurchaseOrders(ctx context.Context) (int64, error)

	// CountReceiptsAwaitingInvoice returns submitted GRNs without a purchase voucher
	CountReceiptsAwaitingInvoice(ctx context.Context) (int64, error)

	// GetMonthlyPurchaseValue returns approved purchase voucher value per month
	// for the last N months
	GetMonthlyPurchaseValue(ctx context.Context, months int) ([]MonthlyPurchaseResult, error)

	// GetTopVendors returns top vendors by approved purchase value
	GetTopVendors(ctx context.Context, limit int) ([]TopVendorResult, error)

	// GetOpportunityPipeline returns opportunity counts and expected value by stage
	GetOpportunityPipeline(ctx context.Context) ([]PipelineStageResult, error)

	// GetPendingInstallations returns the number of jobs not yet completed
	GetPendingInstallations(ctx context.Context) (int64, error)
}
