package domain

import "github.com/shopspring/decimal"

// DashboardStats is the admin dashboard summary
type DashboardStats struct {
	TotalPerfumes int             `json:"totalPerfumes"`
	TotalUsers    int             `json:"totalUsers"`
	TotalSales    decimal.Decimal `json:"totalSales"`
	LowStockCount int             `json:"lowStockCount"`
}

// ReportSummary holds the headline figures of the sales report
type ReportSummary struct {
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	TotalOrders      int             `json:"totalOrders"`
	AvgOrderValue    decimal.Decimal `json:"avgOrderValue"`
	ThisMonthRevenue decimal.Decimal `json:"thisMonthRevenue"`
}

// SalesPoint is one bucket of a daily or monthly sales series
type SalesPoint struct {
	Day    string          `json:"day,omitempty"`
	Month  string          `json:"month,omitempty"`
	Sales  decimal.Decimal `json:"sales"`
	Orders int             `json:"orders"`
}

// Label returns the bucket name
func (p SalesPoint) Label() string {
	if p.Day != "" {
		return p.Day
	}
	return p.Month
}

// Report is the admin sales report
type Report struct {
	Summary      *ReportSummary `json:"summary,omitempty"`
	DailySales   []SalesPoint   `json:"dailySales"`
	MonthlySales []SalesPoint   `json:"monthlySales"`
	TopPerfumes  []Perfume      `json:"topPerfumes"`
}

// Share returns p's sales as a percentage of the largest bucket in series
func Share(p SalesPoint, series []SalesPoint) int {
	max := decimal.Zero
	for _, s := range series {
		if s.Sales.GreaterThan(max) {
			max = s.Sales
		}
	}
	if max.IsZero() {
		return 0
	}
	return int(p.Sales.Div(max).Mul(decimal.NewFromInt(100)).IntPart())
}
