package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jamalparfum/storefront/internal/session"
)

// Handlers groups every page handler
type Handlers struct {
	Health        *HealthHandler
	Catalog       *CatalogHandler
	Auth          *AuthHandler
	Cart          *CartHandler
	Orders        *OrderHandler
	AdminOrders   *AdminOrderHandler
	AdminPerfumes *AdminPerfumeHandler
	AdminUsers    *AdminUserHandler
	Reports       *ReportHandler
}

// RegisterRoutes mounts the storefront on r. submissionGuard runs in front of
// checkout; pass nil to mount checkout unguarded.
func RegisterRoutes(r gin.IRouter, h *Handlers, submissionGuard gin.HandlerFunc) {
	r.GET("/health", h.Health.Health)
	r.GET("/ready", h.Health.Ready)

	// Public pages
	r.GET("/", h.Catalog.Home)
	r.GET("/perfumes", h.Catalog.List)
	r.GET("/perfumes/:id", h.Catalog.Detail)
	r.GET("/brands", h.Catalog.Brands)
	r.GET("/about", h.Catalog.About)

	r.GET("/login", h.Auth.LoginPage)
	r.POST("/login", h.Auth.Login)
	r.GET("/register", h.Auth.RegisterPage)
	r.POST("/register", h.Auth.Register)
	r.POST("/logout", h.Auth.Logout)

	// Customer pages
	customer := r.Group("")
	customer.Use(session.RequireAuth())
	{
		customer.GET("/cart", h.Cart.Show)
		customer.POST("/cart/items", h.Cart.Add)
		customer.POST("/cart/items/:id", h.Cart.UpdateQuantity)
		customer.POST("/cart/items/:id/remove", h.Cart.Remove)

		checkout := []gin.HandlerFunc{h.Cart.Checkout}
		if submissionGuard != nil {
			checkout = append([]gin.HandlerFunc{submissionGuard}, checkout...)
		}
		customer.POST("/checkout", checkout...)

		customer.GET("/orders", h.Orders.List)
		customer.GET("/orders/:id/payment", h.Orders.PaymentPage)
		customer.POST("/orders/:id/payment", h.Orders.UploadPayment)
	}

	// Admin pages
	admin := r.Group("/admin")
	admin.Use(session.RequireAdmin())
	{
		admin.GET("/dashboard", h.Reports.Dashboard)
		admin.GET("/reports", h.Reports.Reports)

		admin.GET("/perfumes", h.AdminPerfumes.List)
		admin.GET("/perfumes/create", h.AdminPerfumes.CreatePage)
		admin.POST("/perfumes", h.AdminPerfumes.Create)
		admin.GET("/perfumes/:id/edit", h.AdminPerfumes.EditPage)
		admin.POST("/perfumes/:id", h.AdminPerfumes.Update)
		admin.PUT("/perfumes/:id", h.AdminPerfumes.Update)
		admin.POST("/perfumes/:id/delete", h.AdminPerfumes.Delete)
		admin.DELETE("/perfumes/:id", h.AdminPerfumes.Delete)

		admin.GET("/perfumes/:id/images", h.AdminPerfumes.Images)
		admin.POST("/perfumes/:id/images", h.AdminPerfumes.UploadImages)
		admin.POST("/perfumes/:id/images/:imageId/primary", h.AdminPerfumes.SetPrimaryImage)
		admin.POST("/perfumes/:id/images/:imageId/delete", h.AdminPerfumes.DeleteImage)

		admin.GET("/users", h.AdminUsers.List)
		admin.GET("/users/:id/edit", h.AdminUsers.EditPage)
		admin.POST("/users/:id", h.AdminUsers.Update)
		admin.PUT("/users/:id", h.AdminUsers.Update)
		admin.POST("/users/:id/delete", h.AdminUsers.Delete)
		admin.DELETE("/users/:id", h.AdminUsers.Delete)

		admin.GET("/orders", h.AdminOrders.List)
		admin.POST("/orders/:id/verify", h.AdminOrders.Verify)
		admin.POST("/orders/:id/reject", h.AdminOrders.Reject)
	}
}
