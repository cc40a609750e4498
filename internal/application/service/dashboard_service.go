package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kinara-erp/vouchers-api/internal/domain/repository"
	"github.com/kinara-erp/vouchers-api/pkg/pagination"
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	productRepo   repository.ProductRepository
	vendorRepo    repository.VendorRepository
	customerRepo  repository.CustomerRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	analyticsRepo repository.AnalyticsRepository,
	productRepo repository.ProductRepository,
	vendorRepo repository.VendorRepository,
	customerRepo repository.CustomerRepository,
) *DashboardService {
	return &DashboardService{
		analyticsRepo: analyticsRepo,
		productRepo:   productRepo,
		vendorRepo:    vendorRepo,
		customerRepo:  customerRepo,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalVendors            int64                  `json:"total_vendors"`
	TotalCustomers          int64                  `json:"total_customers"`
	TotalProducts           int64                  `json:"total_products"`
	LowStockCount           int64                  `json:"low_stock_count"`
	OpenPurchaseOrders      int64                  `json:"open_purchase_orders"`
	ReceiptsAwaitingInvoice int64                  `json:"receipts_awaiting_invoice"`
	PendingInstallations    int64                  `json:"pending_installations"`
	MonthlyPurchases        []MonthlyPurchasePoint `json:"monthly_purchases"`
	TopVendors              []TopVendorPoint       `json:"top_vendors"`
	Pipeline                []PipelineStagePoint   `json:"pipeline"`
}

// MonthlyPurchasePoint represents purchase value in one month
type MonthlyPurchasePoint struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// TopVendorPoint represents a vendor's purchase volume
type TopVendorPoint struct {
	VendorID   uuid.UUID `json:"vendor_id"`
	VendorName string    `json:"vendor_name"`
	TotalValue float64   `json:"total_value"`
	OrderCount int       `json:"order_count"`
}

// PipelineStagePoint represents opportunity volume in one pipeline stage
type PipelineStagePoint struct {
	Stage         string  `json:"stage"`
	Count         int     `json:"count"`
	ExpectedValue float64 `json:"expected_value"`
}

// GetDashboardStats returns dashboard statistics for the tenant
func (s *DashboardService) GetDashboardStats(ctx context.Context, userID uuid.UUID) (*DashboardStats, error) {
	stats := &DashboardStats{}

	// Counting only; one row per query is enough
	countParams := pagination.DefaultPagination()
	countParams.PerPage = 1

	_, vendorCount, err := s.vendorRepo.List(ctx, userID, &repository.VendorFilterParams{
		Pagination:     countParams,
		SkipUserFilter: true,
	})
	if err != nil {
		return nil, err
	}
	stats.TotalVendors = vendorCount

	_, customerCount, err := s.customerRepo.List(ctx, userID, countParams, "", true)
	if err != nil {
		return nil, err
	}
	stats.TotalCustomers = customerCount

	_, productCount, err := s.productRepo.List(ctx, userID, &repository.ProductFilterParams{
		Pagination:     countParams,
		SkipUserFilter: true,
	})
	if err != nil {
		return nil, err
	}
	stats.TotalProducts = productCount

	_, lowStockCount, err := s.productRepo.List(ctx, userID, &repository.ProductFilterParams{
		Pagination:     countParams,
		LowStock:       true,
		SkipUserFilter: true,
	})
	if err != nil {
		return nil, err
	}
	stats.LowStockCount = lowStockCount

	if stats.OpenPurchaseOrders, err = s.analyticsRepo.CountOpenPurchaseOrders(ctx); err != nil {
		return nil, err
	}
	if stats.ReceiptsAwaitingInvoice, err = s.analyticsRepo.CountReceiptsAwaitingInvoice(ctx); err != nil {
		return nil, err
	}
	if stats.PendingInstallations, err = s.analyticsRepo.GetPendingInstallations(ctx); err != nil {
		return nil, err
	}

	monthly, err := s.analyticsRepo.GetMonthlyPurchaseValue(ctx, 12)
	if err != nil {
		return nil, err
	}
	stats.MonthlyPurchases = make([]MonthlyPurchasePoint, 0, len(monthly))
	for _, m := range monthly {
		stats.MonthlyPurchases = append(stats.MonthlyPurchases, MonthlyPurchasePoint{
			Month: m.Month.Format("Jan 2006"),
			Value: m.Value,
			Count: m.Count,
		})
	}

	topVendors, err := s.analyticsRepo.GetTopVendors(ctx, 5)
	if err != nil {
		return nil, err
	}
	stats.TopVendors = make([]TopVendorPoint, 0, len(topVendors))
	for _, v := range topVendors {
		stats.TopVendors = append(stats.TopVendors, TopVendorPoint{
			VendorID:   v.VendorID,
			VendorName: v.VendorName,
			TotalValue: v.TotalValue,
			OrderCount: v.OrderCount,
		})
	}

	pipeline, err := s.analyticsRepo.GetOpportunityPipeline(ctx)
	if err != nil {
		return nil, err
	}
	stats.Pipeline = make([]PipelineStagePoint, 0, len(pipeline))
	for _, p := range pipeline {
		stats.Pipeline = append(stats.Pipeline, PipelineStagePoint{
			Stage:         p.Stage,
			Count:         p.Count,
			ExpectedValue: p.ExpectedValue,
		})
	}

	return stats, nil
}
