package view

import "github.com/jamalparfum/storefront/internal/domain"

// Card is the model of the "perfume_card" partial
type Card struct {
	Perfume *domain.Perfume
	Image   string
	Guest   bool
	Buyer   bool
	Back    string
}

// CardFor prepares a catalog card. Admins see the card without a buy button.
func CardFor(page *Page, v interface{}) Card {
	p := perfumeOf(v)
	if p == nil {
		p = &domain.Perfume{}
	}
	return Card{
		Perfume: p,
		Image:   ImageOf(page.BaseURL, p),
		Guest:   page.IsGuest(),
		Buyer:   !page.IsGuest() && !page.IsAdmin(),
		Back:    page.Path,
	}
}

func perfumeOf(v interface{}) *domain.Perfume {
	switch t := v.(type) {
	case *domain.Perfume:
		return t
	case domain.Perfume:
		return &t
	}
	return nil
}
