package view

import "github.com/jamalparfum/storefront/internal/domain"

// Page is what every template receives. Data holds the page model and is the
// only part sent to JSON clients.
type Page struct {
	Title     string
	Path      string
	User      *domain.User
	Nav       []NavItem
	CartCount int
	Flash     string
	Error     string
	BaseURL   string
	Data      interface{}
}

// IsAdmin reports whether the page is rendered for an admin
func (p *Page) IsAdmin() bool {
	return p.User.IsAdmin()
}

// IsGuest reports whether nobody is logged in
func (p *Page) IsGuest() bool {
	return p.User == nil
}
