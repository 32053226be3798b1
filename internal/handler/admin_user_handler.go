package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jamalparfum/storefront/internal/domain"
	"github.com/jamalparfum/storefront/internal/service"
)

// UserForm is the admin user edit form
type UserForm struct {
	ID    int64  `json:"id"`
	Name  string `form:"name" json:"name"`
	Email string `form:"email" json:"email"`
	Role  string `form:"role" json:"role"`
}

// Action is where the form posts
func (f UserForm) Action() string {
	return fmt.Sprintf("/admin/users/%d", f.ID)
}

// Roles lists the selectable roles
func (f UserForm) Roles() []domain.Role {
	return []domain.Role{domain.RoleUser, domain.RoleAdmin}
}

// AdminUserHandler handles user management
type AdminUserHandler struct {
	pages   *Pages
	backend BackendFunc
	users   service.AdminUserService
}

// NewAdminUserHandler creates a new admin user handler
func NewAdminUserHandler(pages *Pages, backend BackendFunc, users service.AdminUserService) *AdminUserHandler {
	return &AdminUserHandler{pages: pages, backend: backend, users: users}
}

// List handles GET /admin/users
func (h *AdminUserHandler) List(c *gin.Context) {
	page := h.pages.New(c, "Kelola Pengguna")

	users, err := h.users.List(c.Request.Context(), h.backend(c))
	if err != nil {
		if Handled(c, err) {
			return
		}
		page.Data = []domain.User{}
		h.pages.Fail(c, statusFor(err), "admin_users", page, "Gagal memuat data pengguna.")
		return
	}

	page.Data = users
	h.pages.Render(c, http.StatusOK, "admin_users", page)
}

// EditPage handles GET /admin/users/:id/edit
func (h *AdminUserHandler) EditPage(c *gin.Context) {
	page := h.pages.New(c, "Edit Pengguna")

	user, err := h.users.Get(c.Request.Context(), h.backend(c), paramID(c, "id"))
	if err != nil {
		if Handled(c, err) {
			return
		}
		h.pages.Reject(c, statusFor(err), "/admin/users", "Gagal memuat data pengguna.")
		return
	}

	page.Data = &UserForm{ID: user.ID, Name: user.Name, Email: user.Email, Role: string(user.Role)}
	h.pages.Render(c, http.StatusOK, "admin_user_form", page)
}

// Update handles POST and PUT /admin/users/:id
func (h *AdminUserHandler) Update(c *gin.Context) {
	var form UserForm
	_ = c.ShouldBind(&form)
	form.ID = paramID(c, "id")

	err := h.users.Update(c.Request.Context(), h.backend(c), form.ID, service.UserInput{
		Name:  form.Name,
		Email: form.Email,
		Role:  form.Role,
	})
	if err != nil {
		if Handled(c, err) {
			return
		}
		page := h.pages.New(c, "Edit Pengguna")
		page.Data = &form
		h.pages.Fail(c, statusFor(err), "admin_user_form", page, "Gagal memperbarui pengguna.")
		return
	}

	h.pages.Done(c, "/admin/users", "Pengguna berhasil diperbarui.", nil)
}

// Delete handles POST /admin/users/:id/delete and DELETE /admin/users/:id
func (h *AdminUserHandler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), h.backend(c), paramID(c, "id")); err != nil {
		if Handled(c, err) {
			return
		}
		h.pages.Reject(c, statusFor(err), "/admin/users", "Gagal menghapus pengguna.")
		return
	}
	h.pages.Done(c, "/admin/users", "Pengguna berhasil dihapus.", nil)
}
