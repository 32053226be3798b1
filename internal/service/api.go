package service

import (
	"context"

	"github.com/jamalparfum/storefront/internal/apiclient"
	"github.com/jamalparfum/storefront/internal/domain"
)

// AuthAPI is the backend surface used by AuthService
type AuthAPI interface {
	Login(ctx context.Context, req apiclient.LoginRequest) (*domain.AuthResult, error)
	Register(ctx context.Context, req apiclient.RegisterRequest) (*domain.AuthResult, error)
}

// CatalogAPI is the backend surface used by CatalogService
type CatalogAPI interface {
	ListPerfumes(ctx context.Context) ([]domain.Perfume, error)
	GetPerfume(ctx context.Context, id int64) (*domain.Perfume, error)
}

// OrderCreator submits orders
type OrderCreator interface {
	CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
}

// OrderAPI is the backend surface used by OrderService
type OrderAPI interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	UploadPaymentProof(ctx context.Context, orderID int64, proof apiclient.Upload) error
}

// AdminOrderAPI is the backend surface used by AdminOrderService
type AdminOrderAPI interface {
	ListAdminOrders(ctx context.Context, status domain.StatusFilter) ([]domain.Order, error)
	VerifyOrder(ctx context.Context, id int64) error
	RejectOrder(ctx context.Context, id int64) error
}

// AdminPerfumeAPI is the backend surface used by AdminPerfumeService
type AdminPerfumeAPI interface {
	CatalogAPI
	CreatePerfume(ctx context.Context, in domain.PerfumeInput) (*domain.Perfume, error)
	UpdatePerfume(ctx context.Context, id int64, in domain.PerfumeInput) error
	DeletePerfume(ctx context.Context, id int64) error
	ListPerfumeImages(ctx context.Context, perfumeID int64) ([]domain.PerfumeImage, error)
	UploadPerfumeImage(ctx context.Context, perfumeID int64, img apiclient.Upload) error
	UploadPerfumeImages(ctx context.Context, perfumeID int64, imgs []apiclient.Upload) error
	SetPrimaryImage(ctx context.Context, perfumeID, imageID int64) error
	DeletePerfumeImage(ctx context.Context, perfumeID, imageID int64) error
}

// AdminUserAPI is the backend surface used by AdminUserService
type AdminUserAPI interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	UpdateUser(ctx context.Context, id int64, in apiclient.UserUpdate) error
	DeleteUser(ctx context.Context, id int64) error
}

// ReportAPI is the backend surface used by ReportService
type ReportAPI interface {
	Dashboard(ctx context.Context) (*domain.DashboardStats, error)
	Reports(ctx context.Context) (*domain.Report, error)
	ListAdminOrders(ctx context.Context, status domain.StatusFilter) ([]domain.Order, error)
}

// Backend is everything the storefront calls. *apiclient.API implements it.
type Backend interface {
	AuthAPI
	OrderCreator
	OrderAPI
	AdminOrderAPI
	AdminPerfumeAPI
	AdminUserAPI
	Dashboard(ctx context.Context) (*domain.DashboardStats, error)
	Reports(ctx context.Context) (*domain.Report, error)
}

var _ Backend = (*apiclient.API)(nil)
