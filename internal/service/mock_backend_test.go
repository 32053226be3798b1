package service

import (
	"context"
	"sync"

	"github.com/jamalparfum/storefront/internal/apiclient"
	"github.com/jamalparfum/storefront/internal/domain"
)

// MockBackend is a mock implementation of Backend. Unset funcs return zero values.
type MockBackend struct {
	mu    sync.Mutex
	Calls []string

	LoginFunc               func(ctx context.Context, req apiclient.LoginRequest) (*domain.AuthResult, error)
	RegisterFunc            func(ctx context.Context, req apiclient.RegisterRequest) (*domain.AuthResult, error)
	ListPerfumesFunc        func(ctx context.Context) ([]domain.Perfume, error)
	GetPerfumeFunc          func(ctx context.Context, id int64) (*domain.Perfume, error)
	CreateOrderFunc         func(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
	ListOrdersFunc          func(ctx context.Context) ([]domain.Order, error)
	GetOrderFunc            func(ctx context.Context, id int64) (*domain.Order, error)
	UploadPaymentProofFunc  func(ctx context.Context, orderID int64, proof apiclient.Upload) error
	ListAdminOrdersFunc     func(ctx context.Context, status domain.StatusFilter) ([]domain.Order, error)
	VerifyOrderFunc         func(ctx context.Context, id int64) error
	RejectOrderFunc         func(ctx context.Context, id int64) error
	CreatePerfumeFunc       func(ctx context.Context, in domain.PerfumeInput) (*domain.Perfume, error)
	UpdatePerfumeFunc       func(ctx context.Context, id int64, in domain.PerfumeInput) error
	DeletePerfumeFunc       func(ctx context.Context, id int64) error
	ListPerfumeImagesFunc   func(ctx context.Context, perfumeID int64) ([]domain.PerfumeImage, error)
	UploadPerfumeImageFunc  func(ctx context.Context, perfumeID int64, img apiclient.Upload) error
	UploadPerfumeImagesFunc func(ctx context.Context, perfumeID int64, imgs []apiclient.Upload) error
	SetPrimaryImageFunc     func(ctx context.Context, perfumeID, imageID int64) error
	DeletePerfumeImageFunc  func(ctx context.Context, perfumeID, imageID int64) error
	ListUsersFunc           func(ctx context.Context) ([]domain.User, error)
	GetUserFunc             func(ctx context.Context, id int64) (*domain.User, error)
	UpdateUserFunc          func(ctx context.Context, id int64, in apiclient.UserUpdate) error
	DeleteUserFunc          func(ctx context.Context, id int64) error
	DashboardFunc           func(ctx context.Context) (*domain.DashboardStats, error)
	ReportsFunc             func(ctx context.Context) (*domain.Report, error)
}

var _ Backend = (*MockBackend)(nil)

func (m *MockBackend) record(name string) {
	m.mu.Lock()
	m.Calls = append(m.Calls, name)
	m.mu.Unlock()
}

func (m *MockBackend) CallCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == name {
			n++
		}
	}
	return n
}

func (m *MockBackend) Login(ctx context.Context, req apiclient.LoginRequest) (*domain.AuthResult, error) {
	m.record("Login")
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return &domain.AuthResult{}, nil
}

func (m *MockBackend) Register(ctx context.Context, req apiclient.RegisterRequest) (*domain.AuthResult, error) {
	m.record("Register")
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return &domain.AuthResult{}, nil
}

func (m *MockBackend) ListPerfumes(ctx context.Context) ([]domain.Perfume, error) {
	m.record("ListPerfumes")
	if m.ListPerfumesFunc != nil {
		return m.ListPerfumesFunc(ctx)
	}
	return []domain.Perfume{}, nil
}

func (m *MockBackend) GetPerfume(ctx context.Context, id int64) (*domain.Perfume, error) {
	m.record("GetPerfume")
	if m.GetPerfumeFunc != nil {
		return m.GetPerfumeFunc(ctx, id)
	}
	return nil, domain.ErrPerfumeNotFound
}

func (m *MockBackend) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	m.record("CreateOrder")
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, req)
	}
	return &domain.Order{ID: 1, PaymentStatus: domain.PaymentPending}, nil
}

func (m *MockBackend) ListOrders(ctx context.Context) ([]domain.Order, error) {
	m.record("ListOrders")
	if m.ListOrdersFunc != nil {
		return m.ListOrdersFunc(ctx)
	}
	return []domain.Order{}, nil
}

func (m *MockBackend) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	m.record("GetOrder")
	if m.GetOrderFunc != nil {
		return m.GetOrderFunc(ctx, id)
	}
	return nil, domain.ErrOrderNotFound
}

func (m *MockBackend) UploadPaymentProof(ctx context.Context, orderID int64, proof apiclient.Upload) error {
	m.record("UploadPaymentProof")
	if m.UploadPaymentProofFunc != nil {
		return m.UploadPaymentProofFunc(ctx, orderID, proof)
	}
	return nil
}

func (m *MockBackend) ListAdminOrders(ctx context.Context, status domain.StatusFilter) ([]domain.Order, error) {
	m.record("ListAdminOrders")
	if m.ListAdminOrdersFunc != nil {
		return m.ListAdminOrdersFunc(ctx, status)
	}
	return []domain.Order{}, nil
}

func (m *MockBackend) VerifyOrder(ctx context.Context, id int64) error {
	m.record("VerifyOrder")
	if m.VerifyOrderFunc != nil {
		return m.VerifyOrderFunc(ctx, id)
	}
	return nil
}

func (m *MockBackend) RejectOrder(ctx context.Context, id int64) error {
	m.record("RejectOrder")
	if m.RejectOrderFunc != nil {
		return m.RejectOrderFunc(ctx, id)
	}
	return nil
}

func (m *MockBackend) CreatePerfume(ctx context.Context, in domain.PerfumeInput) (*domain.Perfume, error) {
	m.record("CreatePerfume")
	if m.CreatePerfumeFunc != nil {
		return m.CreatePerfumeFunc(ctx, in)
	}
	return &domain.Perfume{ID: 1, Name: in.Name}, nil
}

func (m *MockBackend) UpdatePerfume(ctx context.Context, id int64, in domain.PerfumeInput) error {
	m.record("UpdatePerfume")
	if m.UpdatePerfumeFunc != nil {
		return m.UpdatePerfumeFunc(ctx, id, in)
	}
	return nil
}

func (m *MockBackend) DeletePerfume(ctx context.Context, id int64) error {
	m.record("DeletePerfume")
	if m.DeletePerfumeFunc != nil {
		return m.DeletePerfumeFunc(ctx, id)
	}
	return nil
}

func (m *MockBackend) ListPerfumeImages(ctx context.Context, perfumeID int64) ([]domain.PerfumeImage, error) {
	m.record("ListPerfumeImages")
	if m.ListPerfumeImagesFunc != nil {
		return m.ListPerfumeImagesFunc(ctx, perfumeID)
	}
	return []domain.PerfumeImage{}, nil
}

func (m *MockBackend) UploadPerfumeImage(ctx context.Context, perfumeID int64, img apiclient.Upload) error {
	m.record("UploadPerfumeImage")
	if m.UploadPerfumeImageFunc != nil {
		return m.UploadPerfumeImageFunc(ctx, perfumeID, img)
	}
	return nil
}

func (m *MockBackend) UploadPerfumeImages(ctx context.Context, perfumeID int64, imgs []apiclient.Upload) error {
	m.record("UploadPerfumeImages")
	if m.UploadPerfumeImagesFunc != nil {
		return m.UploadPerfumeImagesFunc(ctx, perfumeID, imgs)
	}
	return nil
}

func (m *MockBackend) SetPrimaryImage(ctx context.Context, perfumeID, imageID int64) error {
	m.record("SetPrimaryImage")
	if m.SetPrimaryImageFunc != nil {
		return m.SetPrimaryImageFunc(ctx, perfumeID, imageID)
	}
	return nil
}

func (m *MockBackend) DeletePerfumeImage(ctx context.Context, perfumeID, imageID int64) error {
	m.record("DeletePerfumeImage")
	if m.DeletePerfumeImageFunc != nil {
		return m.DeletePerfumeImageFunc(ctx, perfumeID, imageID)
	}
	return nil
}

func (m *MockBackend) ListUsers(ctx context.Context) ([]domain.User, error) {
	m.record("ListUsers")
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx)
	}
	return []domain.User{}, nil
}

func (m *MockBackend) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	m.record("GetUser")
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, id)
	}
	return &domain.User{ID: id}, nil
}

func (m *MockBackend) UpdateUser(ctx context.Context, id int64, in apiclient.UserUpdate) error {
	m.record("UpdateUser")
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(ctx, id, in)
	}
	return nil
}

func (m *MockBackend) DeleteUser(ctx context.Context, id int64) error {
	m.record("DeleteUser")
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, id)
	}
	return nil
}

func (m *MockBackend) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	m.record("Dashboard")
	if m.DashboardFunc != nil {
		return m.DashboardFunc(ctx)
	}
	return &domain.DashboardStats{}, nil
}

func (m *MockBackend) Reports(ctx context.Context) (*domain.Report, error) {
	m.record("Reports")
	if m.ReportsFunc != nil {
		return m.ReportsFunc(ctx)
	}
	return &domain.Report{}, nil
}
