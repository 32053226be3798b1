package view

import (
	"testing"

	"github.com/jamalparfum/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
)

func activeHref(items []NavItem) string {
	for _, it := range items {
		if it.Active {
			return it.Href
		}
	}
	return ""
}

func TestNavFor_Roles(t *testing.T) {
	guest := NavFor(nil, "/")
	assert.Equal(t, "Brand", guest[2].Label)

	user := NavFor(&domain.User{ID: 1, Role: domain.RoleUser}, "/")
	assert.Equal(t, "/orders", user[2].Href)

	admin := NavFor(&domain.User{ID: 2, Role: domain.RoleAdmin}, "/admin/dashboard")
	assert.Len(t, admin, 3)
	assert.Equal(t, "/admin/dashboard", admin[0].Href)
}

func TestNavFor_Active(t *testing.T) {
	admin := &domain.User{Role: domain.RoleAdmin}

	tests := []struct {
		name string
		user *domain.User
		path string
		want string
	}{
		{name: "home", path: "/", want: "/"},
		{name: "detail page highlights catalog", path: "/perfumes/12", want: "/perfumes"},
		{name: "login matches nothing", path: "/login", want: ""},
		{name: "create beats list", user: admin, path: "/admin/perfumes/create", want: "/admin/perfumes/create"},
		{name: "edit highlights list", user: admin, path: "/admin/perfumes/3/edit", want: "/admin/perfumes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, activeHref(NavFor(tt.user, tt.path)))
		})
	}
}

func TestNavFor_DoesNotMutateShared(t *testing.T) {
	NavFor(nil, "/perfumes")
	for _, it := range guestNav {
		assert.False(t, it.Active)
	}
}
