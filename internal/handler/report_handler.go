package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jamalparfum/storefront/internal/domain"
	"github.com/jamalparfum/storefront/internal/service"
)

// ReportHandler serves the admin dashboard and sales reports
type ReportHandler struct {
	pages   *Pages
	backend BackendFunc
	reports service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(pages *Pages, backend BackendFunc, reports service.ReportService) *ReportHandler {
	return &ReportHandler{pages: pages, backend: backend, reports: reports}
}

// Dashboard handles GET /admin/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	page := h.pages.New(c, "Dashboard")

	stats, err := h.reports.Dashboard(c.Request.Context(), h.backend(c))
	if err != nil {
		if Handled(c, err) {
			return
		}
		page.Data = &domain.DashboardStats{}
		h.pages.Fail(c, statusFor(err), "admin_dashboard", page, "Gagal memuat statistik. Silakan coba lagi.")
		return
	}

	page.Data = stats
	h.pages.Render(c, http.StatusOK, "admin_dashboard", page)
}

// Reports handles GET /admin/reports
func (h *ReportHandler) Reports(c *gin.Context) {
	page := h.pages.New(c, "Laporan Penjualan")

	report, err := h.reports.Reports(c.Request.Context(), h.backend(c))
	if err != nil {
		if Handled(c, err) {
			return
		}
		page.Data = &service.ReportPage{Report: &domain.Report{}, Orders: []domain.Order{}}
		h.pages.Fail(c, statusFor(err), "admin_reports", page, "Gagal memuat laporan.")
		return
	}

	page.Data = report
	h.pages.Render(c, http.StatusOK, "admin_reports", page)
}
