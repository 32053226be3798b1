package service

import (
	"context"
	"strings"

	"github.com/jamalparfum/storefront/internal/apiclient"
	"github.com/jamalparfum/storefront/internal/domain"
	"go.uber.org/zap"
)

// UserInput is the admin user edit form
type UserInput struct {
	Name  string
	Email string
	Role  string
}

// AdminUserService defines user management
type AdminUserService interface {
	List(ctx context.Context, api AdminUserAPI) ([]domain.User, error)
	Get(ctx context.Context, api AdminUserAPI, id int64) (*domain.User, error)
	Update(ctx context.Context, api AdminUserAPI, id int64, in UserInput) error
	Delete(ctx context.Context, api AdminUserAPI, id int64) error
}

type adminUserService struct {
	logger *zap.Logger
}

// NewAdminUserService creates a new admin user service
func NewAdminUserService(logger *zap.Logger) AdminUserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &adminUserService{logger: logger}
}

func (s *adminUserService) List(ctx context.Context, api AdminUserAPI) ([]domain.User, error) {
	return api.ListUsers(ctx)
}

func (s *adminUserService) Get(ctx context.Context, api AdminUserAPI, id int64) (*domain.User, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidUserID
	}
	return api.GetUser(ctx, id)
}

func (s *adminUserService) Update(ctx context.Context, api AdminUserAPI, id int64, in UserInput) error {
	if id <= 0 {
		return domain.ErrInvalidUserID
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return err
	}

	if err := api.UpdateUser(ctx, id, apiclient.UserUpdate{
		Name:  strings.TrimSpace(in.Name),
		Email: strings.TrimSpace(in.Email),
		Role:  role,
	}); err != nil {
		return err
	}
	s.logger.Info("user updated", zap.Int64("user_id", id), zap.String("role", string(role)))
	return nil
}

func (s *adminUserService) Delete(ctx context.Context, api AdminUserAPI, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidUserID
	}
	if err := api.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.Int64("user_id", id))
	return nil
}
