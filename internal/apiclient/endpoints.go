package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jamalparfum/storefront/internal/domain"
)

// LoginRequest is the body of POST /api/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /api/register
type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// UserUpdate is the body of PUT /api/admin/users/{id}
type UserUpdate struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// Auth

func (a *API) Login(ctx context.Context, req LoginRequest) (*domain.AuthResult, error) {
	var out domain.AuthResult
	if err := a.sendJSON(ctx, http.MethodPost, "/api/login", req, &out, "data"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) Register(ctx context.Context, req RegisterRequest) (*domain.AuthResult, error) {
	var out domain.AuthResult
	if err := a.sendJSON(ctx, http.MethodPost, "/api/register", req, &out, "data"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Catalog

func (a *API) ListPerfumes(ctx context.Context) ([]domain.Perfume, error) {
	return getList[domain.Perfume](ctx, a, "/api/perfumes", nil)
}

func (a *API) GetPerfume(ctx context.Context, id int64) (*domain.Perfume, error) {
	var out domain.Perfume
	if err := a.getJSON(ctx, fmt.Sprintf("/api/perfumes/%d", id), nil, &out, "data"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Orders

func (a *API) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	var out domain.Order
	if err := a.sendJSON(ctx, http.MethodPost, "/api/orders", req, &out, "data", "order"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return getList[domain.Order](ctx, a, "/api/orders", nil)
}

func (a *API) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var out domain.Order
	if err := a.getJSON(ctx, fmt.Sprintf("/api/orders/%d", id), nil, &out, "data", "order"); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadPaymentProof attaches a transfer receipt, moving the order to paid
func (a *API) UploadPaymentProof(ctx context.Context, orderID int64, proof Upload) error {
	body, contentType, err := multipartBody("payment_proof", proof)
	if err != nil {
		return err
	}
	_, err = a.do(ctx, request{
		method:      http.MethodPost,
		path:        fmt.Sprintf("/api/orders/%d/payment", orderID),
		body:        body,
		contentType: contentType,
	})
	return err
}

// Admin perfumes

func (a *API) CreatePerfume(ctx context.Context, in domain.PerfumeInput) (*domain.Perfume, error) {
	var out domain.Perfume
	if err := a.sendJSON(ctx, http.MethodPost, "/api/admin/perfumes", in, &out, "data", "perfume"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) UpdatePerfume(ctx context.Context, id int64, in domain.PerfumeInput) error {
	return a.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/api/admin/perfumes/%d", id), in, nil)
}

func (a *API) DeletePerfume(ctx context.Context, id int64) error {
	_, err := a.do(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/api/admin/perfumes/%d", id)})
	return err
}

func (a *API) ListPerfumeImages(ctx context.Context, perfumeID int64) ([]domain.PerfumeImage, error) {
	return getList[domain.PerfumeImage](ctx, a, fmt.Sprintf("/api/admin/perfumes/%d/images", perfumeID), nil)
}

// UploadPerfumeImage sends one file as field "image"
func (a *API) UploadPerfumeImage(ctx context.Context, perfumeID int64, img Upload) error {
	return a.upload(ctx, fmt.Sprintf("/api/admin/perfumes/%d/images", perfumeID), "image", img)
}

// UploadPerfumeImages sends several files as "images[]" in one request
func (a *API) UploadPerfumeImages(ctx context.Context, perfumeID int64, imgs []Upload) error {
	return a.upload(ctx, fmt.Sprintf("/api/admin/perfumes/%d/images/batch", perfumeID), "images[]", imgs...)
}

func (a *API) SetPrimaryImage(ctx context.Context, perfumeID, imageID int64) error {
	return a.sendJSON(ctx, http.MethodPut,
		fmt.Sprintf("/api/admin/perfumes/%d/images/%d/primary", perfumeID, imageID), struct{}{}, nil)
}

func (a *API) DeletePerfumeImage(ctx context.Context, perfumeID, imageID int64) error {
	_, err := a.do(ctx, request{
		method: http.MethodDelete,
		path:   fmt.Sprintf("/api/admin/perfumes/%d/images/%d", perfumeID, imageID),
	})
	return err
}

func (a *API) upload(ctx context.Context, path, field string, uploads ...Upload) error {
	body, contentType, err := multipartBody(field, uploads...)
	if err != nil {
		return err
	}
	_, err = a.do(ctx, request{method: http.MethodPost, path: path, body: body, contentType: contentType})
	return err
}

// Admin users

func (a *API) ListUsers(ctx context.Context) ([]domain.User, error) {
	return getList[domain.User](ctx, a, "/api/admin/users", nil)
}

func (a *API) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var out domain.User
	if err := a.getJSON(ctx, fmt.Sprintf("/api/admin/users/%d", id), nil, &out, "data", "user"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) UpdateUser(ctx context.Context, id int64, in UserUpdate) error {
	return a.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/api/admin/users/%d", id), in, nil)
}

func (a *API) DeleteUser(ctx context.Context, id int64) error {
	_, err := a.do(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/api/admin/users/%d", id)})
	return err
}

// Admin orders

// ListAdminOrders lists every order, narrowed by status unless the filter is "all"
func (a *API) ListAdminOrders(ctx context.Context, status domain.StatusFilter) ([]domain.Order, error) {
	var query url.Values
	if v := status.QueryValue(); v != "" {
		query = url.Values{"status": {v}}
	}
	return getList[domain.Order](ctx, a, "/api/admin/orders", query)
}

func (a *API) VerifyOrder(ctx context.Context, id int64) error {
	return a.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/api/admin/orders/%d/verify", id), struct{}{}, nil)
}

func (a *API) RejectOrder(ctx context.Context, id int64) error {
	return a.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/api/admin/orders/%d/reject", id), struct{}{}, nil)
}

// Admin stats

func (a *API) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	var out domain.DashboardStats
	if err := a.getJSON(ctx, "/api/admin/dashboard", nil, &out, "data"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) Reports(ctx context.Context) (*domain.Report, error) {
	var out domain.Report
	if err := a.getJSON(ctx, "/api/admin/reports", nil, &out, "data"); err != nil {
		return nil, err
	}
	return &out, nil
}
