package view

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/jamalparfum/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

var months = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// Funcs are the helpers available to every template
func Funcs() template.FuncMap {
	return template.FuncMap{
		"rupiah":   Rupiah,
		"date":     Date,
		"datetime": DateTime,
		"share":    domain.Share,
		"inc":      func(n int) int { return n + 1 },
		"dec":      func(n int) int { return n - 1 },
		"initial":  Initial,
		"imageOf":  ImageOf,
		"card":     CardFor,
	}
}

// ImageOf picks the picture of a perfume, resolving storage paths against baseURL
func ImageOf(baseURL string, v interface{}) string {
	p := perfumeOf(v)
	if p == nil {
		return ""
	}
	if u := p.ImageURL(); u != "" {
		return u
	}
	for _, img := range []*domain.PerfumeImage{p.PrimaryImage, p.DisplayImage} {
		if src := img.Src(baseURL); src != "" {
			return src
		}
	}
	for i := range p.Images {
		if src := p.Images[i].Src(baseURL); src != "" {
			return src
		}
	}
	return ""
}

// Rupiah formats an amount the Indonesian way: Rp45.000
func Rupiah(amount decimal.Decimal) string {
	n := amount.Round(0).IntPart()
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return sign + "Rp" + b.String()
}

func toTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case domain.Time:
		return t.Time, !t.IsZero()
	case *domain.Time:
		if t == nil {
			return time.Time{}, false
		}
		return t.Time, !t.IsZero()
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	}
	return time.Time{}, false
}

// Date renders 2 Januari 2025. Zero and unknown values render as "-".
func Date(v interface{}) string {
	t, ok := toTime(v)
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year())
}

// DateTime renders 2 Januari 2025 14:05
func DateTime(v interface{}) string {
	t, ok := toTime(v)
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%s %02d:%02d", Date(t), t.Hour(), t.Minute())
}

// Initial is the avatar letter of a name
func Initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "U"
	}
	return strings.ToUpper(string([]rune(name)[:1]))
}
