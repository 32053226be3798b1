package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jamalparfum/storefront/internal/domain"
	"github.com/jamalparfum/storefront/internal/service"
	"github.com/jamalparfum/storefront/internal/session"
)

const catalogLoadFailedMessage = "Gagal memuat parfum. Silakan coba lagi."

// SortOption is one entry of the sort selector
type SortOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// FilterForm echoes the active filters back into the form
type FilterForm struct {
	Search   string `json:"search"`
	Brand    string `json:"brand"`
	MinPrice string `json:"min_price"`
	MaxPrice string `json:"max_price"`
	Sort     string `json:"sort"`
}

// CatalogView is the model of the home and catalog pages
type CatalogView struct {
	*service.CatalogPage
	Form  FilterForm   `json:"filter"`
	Sorts []SortOption `json:"sorts"`
}

// BrandSummary is one row of the brand page
type BrandSummary struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PerfumeView is the model of the perfume detail page
type PerfumeView struct {
	Perfume *domain.Perfume `json:"perfume"`
	InCart  int             `json:"in_cart"`
	CanBuy  bool            `json:"can_buy"`
}

// CatalogHandler serves the public catalog pages
type CatalogHandler struct {
	pages   *Pages
	backend BackendFunc
	catalog service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(pages *Pages, backend BackendFunc, catalog service.CatalogService) *CatalogHandler {
	return &CatalogHandler{pages: pages, backend: backend, catalog: catalog}
}

// Home handles GET /
func (h *CatalogHandler) Home(c *gin.Context) {
	h.browse(c, "home", "Jamal Parfum")
}

// List handles GET /perfumes
func (h *CatalogHandler) List(c *gin.Context) {
	h.browse(c, "catalog", "Koleksi Parfum")
}

func (h *CatalogHandler) browse(c *gin.Context, name, title string) {
	page := h.pages.New(c, title)
	filter := service.ParseFilter(c.Request.URL.Query())

	result, err := h.catalog.Browse(c.Request.Context(), h.backend(c), filter)
	if err != nil {
		if Handled(c, err) {
			return
		}
		page.Data = &CatalogView{CatalogPage: &service.CatalogPage{Filter: filter}, Form: formFor(filter), Sorts: sortOptions(filter.Sort)}
		h.pages.Fail(c, statusFor(err), name, page, catalogLoadFailedMessage)
		return
	}

	page.Data = &CatalogView{CatalogPage: result, Form: formFor(filter), Sorts: sortOptions(filter.Sort)}
	h.pages.Render(c, http.StatusOK, name, page)
}

// Detail handles GET /perfumes/:id
func (h *CatalogHandler) Detail(c *gin.Context) {
	page := h.pages.New(c, "Detail Parfum")

	perfume, err := h.catalog.Get(c.Request.Context(), h.backend(c), paramID(c, "id"))
	if err != nil {
		if Handled(c, err) {
			return
		}
		h.pages.Fail(c, statusFor(err), "perfume", page, "Parfum tidak ditemukan.")
		return
	}

	model := &PerfumeView{Perfume: perfume}
	sess := session.FromContext(c)
	if sess.IsAuthenticated() && !sess.IsAdmin() {
		if item, ok := h.pages.Cart(c).Get(perfume.ID); ok {
			model.InCart = item.Quantity
		}
		model.CanBuy = perfume.InStock()
	}

	page.Title = perfume.Name
	page.Data = model
	h.pages.Render(c, http.StatusOK, "perfume", page)
}

// Brands handles GET /brands
func (h *CatalogHandler) Brands(c *gin.Context) {
	page := h.pages.New(c, "Brand")

	result, err := h.catalog.Browse(c.Request.Context(), h.backend(c), service.Filter{Sort: service.SortNameAZ})
	if err != nil {
		if Handled(c, err) {
			return
		}
		page.Data = []BrandSummary{}
		h.pages.Fail(c, statusFor(err), "brands", page, catalogLoadFailedMessage)
		return
	}

	counts := make(map[string]int, len(result.Brands))
	for _, p := range result.Perfumes {
		counts[p.Brand]++
	}
	brands := make([]BrandSummary, 0, len(result.Brands))
	for _, b := range result.Brands {
		brands = append(brands, BrandSummary{Name: b, Count: counts[b]})
	}

	page.Data = brands
	h.pages.Render(c, http.StatusOK, "brands", page)
}

// About handles GET /about
func (h *CatalogHandler) About(c *gin.Context) {
	page := h.pages.New(c, "Tentang Kami")
	page.Data = gin.H{"name": "Jamal Parfum"}
	h.pages.Render(c, http.StatusOK, "about", page)
}

func formFor(f service.Filter) FilterForm {
	form := FilterForm{Search: f.Search, Brand: f.Brand, Sort: string(f.Sort)}
	if f.MinPrice != nil {
		form.MinPrice = f.MinPrice.String()
	}
	if f.MaxPrice != nil {
		form.MaxPrice = f.MaxPrice.String()
	}
	return form
}

func sortOptions(selected service.SortOrder) []SortOption {
	opts := make([]SortOption, 0, len(service.SortOrders))
	for _, s := range service.SortOrders {
		opts = append(opts, SortOption{Value: string(s), Label: s.Label(), Selected: s == selected})
	}
	return opts
}
