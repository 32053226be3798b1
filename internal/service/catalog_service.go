package service

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"github.com/jamalparfum/storefront/internal/domain"
	"github.com/jamalparfum/storefront/pkg/telemetry"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

// SortOrder is a catalog sort key
type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortNameAZ    SortOrder = "name-az"
	SortNameZA    SortOrder = "name-za"
)

// SortOrders lists the sort keys in the order they are offered
var SortOrders = []SortOrder{SortNewest, SortPriceLow, SortPriceHigh, SortNameAZ, SortNameZA}

// Label returns the Indonesian name of the sort order
func (s SortOrder) Label() string {
	switch s {
	case SortPriceLow:
		return "Harga Terendah"
	case SortPriceHigh:
		return "Harga Tertinggi"
	case SortNameAZ:
		return "Nama A-Z"
	case SortNameZA:
		return "Nama Z-A"
	default:
		return "Terbaru"
	}
}

// Filter narrows the catalog
type Filter struct {
	Search   string
	Brand    string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     SortOrder
}

// ParseFilter reads q, search, brand, min_price, max_price and sort. Unparsable
// prices and unknown sort keys are ignored.
func ParseFilter(values url.Values) Filter {
	f := Filter{
		Search: strings.TrimSpace(firstNonEmpty(values.Get("search"), values.Get("q"))),
		Brand:  strings.TrimSpace(values.Get("brand")),
		Sort:   SortNewest,
	}
	f.MinPrice = parsePrice(values.Get("min_price"))
	f.MaxPrice = parsePrice(values.Get("max_price"))

	for _, s := range SortOrders {
		if values.Get("sort") == string(s) {
			f.Sort = s
		}
	}
	return f
}

// ActiveCount counts the filters in effect. Sorting is not a filter.
func (f Filter) ActiveCount() int {
	n := 0
	if f.Search != "" {
		n++
	}
	if f.Brand != "" {
		n++
	}
	if f.MinPrice != nil {
		n++
	}
	if f.MaxPrice != nil {
		n++
	}
	return n
}

// Apply filters and sorts perfumes without modifying the input
func (f Filter) Apply(perfumes []domain.Perfume) []domain.Perfume {
	search := strings.ToLower(f.Search)
	out := make([]domain.Perfume, 0, len(perfumes))

	for _, p := range perfumes {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Brand), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		if f.Brand != "" && p.Brand != f.Brand {
			continue
		}
		if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
			continue
		}
		out = append(out, p)
	}

	var less func(a, b domain.Perfume) bool
	switch f.Sort {
	case SortPriceLow:
		less = func(a, b domain.Perfume) bool { return a.Price.LessThan(b.Price) }
	case SortPriceHigh:
		less = func(a, b domain.Perfume) bool { return a.Price.GreaterThan(b.Price) }
	case SortNameAZ:
		less = func(a, b domain.Perfume) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case SortNameZA:
		less = func(a, b domain.Perfume) bool { return strings.ToLower(a.Name) > strings.ToLower(b.Name) }
	default:
		less = func(a, b domain.Perfume) bool { return a.CreatedAt.After(b.CreatedAt.Time) }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })

	return out
}

// Brands returns the distinct non-empty brands, sorted
func Brands(perfumes []domain.Perfume) []string {
	seen := make(map[string]struct{})
	var brands []string
	for _, p := range perfumes {
		if p.Brand == "" {
			continue
		}
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		brands = append(brands, p.Brand)
	}
	sort.Strings(brands)
	return brands
}

// CatalogPage is the model of the catalog page
type CatalogPage struct {
	Perfumes []domain.Perfume `json:"perfumes"`
	Brands   []string         `json:"brands"`
	Total    int              `json:"total"`
	Filter   Filter           `json:"-"`
	Active   int              `json:"active_filters"`
}

// CatalogService defines catalog browsing
type CatalogService interface {
	// Browse fetches the whole catalog and applies the filter locally
	Browse(ctx context.Context, api CatalogAPI, filter Filter) (*CatalogPage, error)

	// Get fetches one perfume
	Get(ctx context.Context, api CatalogAPI, id int64) (*domain.Perfume, error)
}

type catalogService struct{}

// NewCatalogService creates a new catalog service
func NewCatalogService() CatalogService {
	return &catalogService{}
}

func (s *catalogService) Browse(ctx context.Context, api CatalogAPI, filter Filter) (*CatalogPage, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.browse")
	defer span.End()

	all, err := api.ListPerfumes(ctx)
	if err != nil {
		telemetry.SetSpanError(ctx, err)
		return nil, err
	}

	perfumes := filter.Apply(all)
	span.SetAttributes(
		attribute.Int("catalog.total", len(all)),
		attribute.Int("catalog.shown", len(perfumes)),
	)

	return &CatalogPage{
		Perfumes: perfumes,
		Brands:   Brands(all),
		Total:    len(all),
		Filter:   filter,
		Active:   filter.ActiveCount(),
	}, nil
}

func (s *catalogService) Get(ctx context.Context, api CatalogAPI, id int64) (*domain.Perfume, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidPerfumeID
	}
	return api.GetPerfume(ctx, id)
}

func parsePrice(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
