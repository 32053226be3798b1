package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LowStockThreshold is the stock level at or below which a perfume is flagged
const LowStockThreshold = 5

// PerfumeImage is one image attached to a perfume
type PerfumeImage struct {
	ID        int64  `json:"id"`
	URL       string `json:"url,omitempty"`
	Path      string `json:"path,omitempty"`
	IsPrimary bool   `json:"is_primary"`
	AltText   string `json:"alt_text,omitempty"`
}

// Src returns the image URL, falling back to the backend storage path
func (i *PerfumeImage) Src(baseURL string) string {
	if i == nil {
		return ""
	}
	if i.URL != "" {
		return i.URL
	}
	if i.Path == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + "/storage/" + strings.TrimLeft(i.Path, "/")
}

// Perfume is a product as served by the backend
type Perfume struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Brand        string          `json:"brand,omitempty"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	Image        string          `json:"image,omitempty"`
	PrimaryImage *PerfumeImage   `json:"primary_image,omitempty"`
	DisplayImage *PerfumeImage   `json:"display_image,omitempty"`
	Images       []PerfumeImage  `json:"images,omitempty"`
	CreatedAt    Time            `json:"created_at"`
}

// ImageURL picks the best image to show for the perfume
func (p *Perfume) ImageURL() string {
	switch {
	case p.PrimaryImage != nil && p.PrimaryImage.URL != "":
		return p.PrimaryImage.URL
	case p.DisplayImage != nil && p.DisplayImage.URL != "":
		return p.DisplayImage.URL
	case p.Image != "":
		return p.Image
	}
	for _, img := range p.Images {
		if img.IsPrimary && img.URL != "" {
			return img.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}

// StockLevel classifies remaining stock
type StockLevel string

const (
	StockOut       StockLevel = "out"
	StockLow       StockLevel = "low"
	StockAvailable StockLevel = "available"
)

// StockLevel returns the stock classification shown in tables and cards
func (p *Perfume) StockLevel() StockLevel {
	switch {
	case p.Stock <= 0:
		return StockOut
	case p.Stock <= LowStockThreshold:
		return StockLow
	default:
		return StockAvailable
	}
}

// Label returns the Indonesian stock label
func (s StockLevel) Label() string {
	switch s {
	case StockOut:
		return "Habis"
	case StockLow:
		return "Menipis"
	default:
		return "Tersedia"
	}
}

// InStock reports whether the perfume can be added to the cart
func (p *Perfume) InStock() bool {
	return p.Stock > 0
}

// PerfumeInput is the admin create/edit payload
type PerfumeInput struct {
	Name        string          `json:"name"`
	Brand       string          `json:"brand,omitempty"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

// Validate checks the fields the admin form requires
func (in *PerfumeInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrNameRequired
	}
	if in.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if in.Stock < 0 {
		return ErrInvalidStock
	}
	return nil
}
