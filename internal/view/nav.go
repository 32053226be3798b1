package view

import (
	"strings"

	"github.com/jamalparfum/storefront/internal/domain"
)

// NavItem is one link of the navigation bar
type NavItem struct {
	Label  string `json:"label"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

var (
	guestNav = []NavItem{
		{Label: "Beranda", Href: "/"},
		{Label: "Parfum", Href: "/perfumes"},
		{Label: "Brand", Href: "/brands"},
		{Label: "Tentang", Href: "/about"},
	}
	userNav = []NavItem{
		{Label: "Beranda", Href: "/"},
		{Label: "Parfum", Href: "/perfumes"},
		{Label: "Pesanan Saya", Href: "/orders"},
		{Label: "Tentang", Href: "/about"},
	}
	adminNav = []NavItem{
		{Label: "Dashboard", Href: "/admin/dashboard"},
		{Label: "Daftar Parfum", Href: "/admin/perfumes"},
		{Label: "Tambah Parfum", Href: "/admin/perfumes/create"},
	}
)

// NavFor returns the navigation for the visitor's role. A nil user is a guest.
// The item matching path is marked active.
func NavFor(user *domain.User, path string) []NavItem {
	src := guestNav
	switch {
	case user.IsAdmin():
		src = adminNav
	case user != nil:
		src = userNav
	}

	items := make([]NavItem, len(src))
	copy(items, src)

	best := -1
	for i, it := range items {
		if it.Href == path || (it.Href != "/" && strings.HasPrefix(path, it.Href+"/")) {
			if best < 0 || len(it.Href) > len(items[best].Href) {
				best = i
			}
		}
	}
	if best >= 0 {
		items[best].Active = true
	}
	return items
}
