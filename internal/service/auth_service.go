package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jamalparfum/storefront/internal/apiclient"
	"github.com/jamalparfum/storefront/internal/domain"
)

const (
	// MinPasswordLength is enforced before calling register
	MinPasswordLength = 6

	LoginFailedMessage    = "Email atau password salah."
	RegisterFailedMessage = "Gagal mendaftar. Silakan coba lagi."
)

var ErrInvalidAuthResponse = errors.New("backend returned no token")

// SessionWriter receives a successful login
type SessionWriter interface {
	Login(token string, user *domain.User)
}

// RegisterInput is the register form
type RegisterInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// Validate runs the checks done before the backend is called
func (in RegisterInput) Validate() error {
	if in.Password != in.PasswordConfirmation {
		return domain.ErrPasswordMismatch
	}
	if len(in.Password) < MinPasswordLength {
		return domain.ErrPasswordTooShort
	}
	return nil
}

// AuthService defines login and registration
type AuthService interface {
	// Login authenticates and stores token and user in the session
	Login(ctx context.Context, api AuthAPI, sess SessionWriter, email, password string) (*domain.User, error)

	// Register creates an account. The visitor logs in afterwards.
	Register(ctx context.Context, api AuthAPI, in RegisterInput) error
}

type authService struct{}

// NewAuthService creates a new auth service
func NewAuthService() AuthService {
	return &authService{}
}

func (s *authService) Login(ctx context.Context, api AuthAPI, sess SessionWriter, email, password string) (*domain.User, error) {
	res, err := api.Login(ctx, apiclient.LoginRequest{
		Email:    strings.TrimSpace(email),
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	if res.Token == "" || res.User == nil {
		return nil, ErrInvalidAuthResponse
	}

	sess.Login(res.Token, res.User)
	return res.User, nil
}

func (s *authService) Register(ctx context.Context, api AuthAPI, in RegisterInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	_, err := api.Register(ctx, apiclient.RegisterRequest{
		Name:                 strings.TrimSpace(in.Name),
		Email:                strings.TrimSpace(in.Email),
		Password:             in.Password,
		PasswordConfirmation: in.PasswordConfirmation,
	})
	return err
}

// HomeFor is where a user lands after login
func HomeFor(user *domain.User) string {
	if user.IsAdmin() {
		return "/admin/dashboard"
	}
	return "/"
}

// LoginErrorMessage is shown when login fails
func LoginErrorMessage(err error) string {
	return apiclient.Message(err, LoginFailedMessage)
}

// RegisterErrorMessage is shown when registration fails
func RegisterErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrPasswordMismatch):
		return "Konfirmasi kata sandi tidak cocok."
	case errors.Is(err, domain.ErrPasswordTooShort):
		return "Kata sandi minimal 6 karakter."
	}
	return apiclient.Message(err, RegisterFailedMessage)
}
