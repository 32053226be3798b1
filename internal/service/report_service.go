package service

import (
	"context"

	"github.com/jamalparfum/storefront/internal/domain"
	"github.com/jamalparfum/storefront/pkg/telemetry"
	"golang.org/x/sync/errgroup"
)

// ReportPage is the model of the reports page
type ReportPage struct {
	Report *domain.Report `json:"report"`
	Orders []domain.Order `json:"orders"`
}

// ReportService defines the admin dashboard and reports
type ReportService interface {
	Dashboard(ctx context.Context, api ReportAPI) (*domain.DashboardStats, error)

	// Reports fetches the sales report and all orders concurrently. Either failure fails the page.
	Reports(ctx context.Context, api ReportAPI) (*ReportPage, error)
}

type reportService struct{}

// NewReportService creates a new report service
func NewReportService() ReportService {
	return &reportService{}
}

func (s *reportService) Dashboard(ctx context.Context, api ReportAPI) (*domain.DashboardStats, error) {
	return api.Dashboard(ctx)
}

func (s *reportService) Reports(ctx context.Context, api ReportAPI) (*ReportPage, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.reports")
	defer span.End()

	page := &ReportPage{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		report, err := api.Reports(gctx)
		if err != nil {
			return err
		}
		page.Report = report
		return nil
	})

	g.Go(func() error {
		orders, err := api.ListAdminOrders(gctx, domain.StatusAll)
		if err != nil {
			return err
		}
		page.Orders = orders
		return nil
	})

	if err := g.Wait(); err != nil {
		telemetry.SetSpanError(ctx, err)
		return nil, err
	}
	return page, nil
}
