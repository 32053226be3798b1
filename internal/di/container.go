package di

import (
	"github.com/gin-gonic/gin"
	"github.com/jamalparfum/storefront/internal/apiclient"
	"github.com/jamalparfum/storefront/internal/cart"
	"github.com/jamalparfum/storefront/internal/handler"
	"github.com/jamalparfum/storefront/internal/service"
	"github.com/jamalparfum/storefront/internal/session"
	"github.com/jamalparfum/storefront/pkg/config"
	"github.com/jamalparfum/storefront/pkg/logger"
	"github.com/jamalparfum/storefront/pkg/middleware"
	"github.com/jamalparfum/storefront/pkg/redis"
)

// Container holds all dependencies for the storefront
type Container struct {
	// Infrastructure
	Redis    *redis.Client
	Backend  *apiclient.Client
	Sessions *session.Manager
	Carts    cart.Opener

	// Services
	AuthService         service.AuthService
	CatalogService      service.CatalogService
	CheckoutService     service.CheckoutService
	OrderService        service.OrderService
	AdminOrderService   service.AdminOrderService
	AdminPerfumeService service.AdminPerfumeService
	AdminUserService    service.AdminUserService
	ReportService       service.ReportService

	// Handlers
	Handlers *handler.Handlers

	// SubmissionGuard protects checkout from double submits. Nil without Redis.
	SubmissionGuard gin.HandlerFunc

	unsubscribe func()
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	Config *config.Config
	Logger *logger.Logger
	// Redis is optional; carts then live in a cookie and checkout is unguarded
	Redis *redis.Client
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}
	app := cfg.Config

	c := &Container{Redis: cfg.Redis}

	// Backend client
	c.Backend = apiclient.New(apiclient.Config{
		BaseURL:            app.Backend.BaseURL,
		Timeout:            app.Backend.Timeout,
		BreakerMaxFailures: app.Backend.BreakerMaxFailures,
		BreakerOpenTimeout: app.Backend.BreakerOpenTimeout,
	}, log.Named("backend").Logger)

	// Sessions
	c.Sessions = session.NewManager(session.Config{
		Secret:      app.Session.Secret,
		TTL:         app.Session.TTL,
		TokenCookie: app.Session.TokenCookie,
		UserCookie:  app.Session.UserCookie,
		Secure:      app.Session.Secure,
	}, log.Named("session").Logger)
	c.unsubscribe = c.Sessions.Subscribe(session.AuditLogger(log.Named("audit").Logger))

	// Carts
	if app.Cart.Storage == "redis" && c.Redis != nil {
		c.Carts = cart.RedisOpener(c.Redis, app.Cart.CookieName, app.Cart.TTL)
	} else {
		c.Carts = cart.CookieOpener(app.Cart.CookieName, app.Cart.TTL)
	}

	// Initialize services
	svcLog := log.Named("service").Logger
	c.AuthService = service.NewAuthService()
	c.CatalogService = service.NewCatalogService()
	c.CheckoutService = service.NewCheckoutService(svcLog)
	c.OrderService = service.NewOrderService(svcLog)
	c.AdminOrderService = service.NewAdminOrderService(svcLog)
	c.AdminPerfumeService = service.NewAdminPerfumeService(svcLog)
	c.AdminUserService = service.NewAdminUserService(svcLog)
	c.ReportService = service.NewReportService()

	// Initialize handlers
	pages := handler.NewPages(c.Carts, c.Backend.BaseURL(), log.Named("handler").Logger)
	api := handler.BindBackend(c.Backend)

	// a typed nil would read as a configured Redis
	var redisHealth handler.HealthChecker
	if c.Redis != nil {
		redisHealth = c.Redis
	}

	c.Handlers = &handler.Handlers{
		Health:        handler.NewHealthHandler(redisHealth, c.Backend),
		Catalog:       handler.NewCatalogHandler(pages, api, c.CatalogService),
		Auth:          handler.NewAuthHandler(pages, handler.BindGuest(c.Backend), c.AuthService),
		Cart:          handler.NewCartHandler(pages, api, c.CatalogService, c.CheckoutService),
		Orders:        handler.NewOrderHandler(pages, api, c.OrderService),
		AdminOrders:   handler.NewAdminOrderHandler(pages, api, c.AdminOrderService),
		AdminPerfumes: handler.NewAdminPerfumeHandler(pages, api, c.AdminPerfumeService),
		AdminUsers:    handler.NewAdminUserHandler(pages, api, c.AdminUserService),
		Reports:       handler.NewReportHandler(pages, api, c.ReportService),
	}

	if c.Redis != nil {
		guardCfg := middleware.DefaultSubmissionConfig(c.Redis)
		guardCfg.Logger = log.Named("submission").Logger
		c.SubmissionGuard = middleware.SubmissionGuard(guardCfg)
	}

	return c
}

// Close releases what the container subscribed to
func (c *Container) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}
