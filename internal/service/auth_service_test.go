package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/jamalparfum/storefront/internal/apiclient"
	"github.com/jamalparfum/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSession struct {
	token string
	user  *domain.User
}

func (r *recordingSession) Login(token string, user *domain.User) {
	r.token = token
	r.user = user
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService()

	t.Run("stores token and user", func(t *testing.T) {
		var req apiclient.LoginRequest
		api := &MockBackend{
			LoginFunc: func(_ context.Context, r apiclient.LoginRequest) (*domain.AuthResult, error) {
				req = r
				return &domain.AuthResult{Token: "tok", User: &domain.User{ID: 1, Role: domain.RoleAdmin}}, nil
			},
		}
		sess := &recordingSession{}

		user, err := svc.Login(ctx, api, sess, "  admin@jamal.id ", "secret1")

		require.NoError(t, err)
		assert.Equal(t, "admin@jamal.id", req.Email)
		assert.Equal(t, "tok", sess.token)
		assert.Equal(t, user, sess.user)
		assert.Equal(t, "/admin/dashboard", HomeFor(user))
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		api := &MockBackend{
			LoginFunc: func(context.Context, apiclient.LoginRequest) (*domain.AuthResult, error) {
				return &domain.AuthResult{User: &domain.User{ID: 1}}, nil
			},
		}
		sess := &recordingSession{}

		_, err := svc.Login(ctx, api, sess, "a@b.c", "secret1")

		assert.ErrorIs(t, err, ErrInvalidAuthResponse)
		assert.Empty(t, sess.token)
	})

	t.Run("backend message wins over the fallback", func(t *testing.T) {
		api := &MockBackend{
			LoginFunc: func(context.Context, apiclient.LoginRequest) (*domain.AuthResult, error) {
				return nil, &apiclient.APIError{StatusCode: http.StatusUnauthorized, Message: "Kredensial salah"}
			},
		}

		_, err := svc.Login(ctx, api, &recordingSession{}, "a@b.c", "x")

		assert.Equal(t, "Kredensial salah", LoginErrorMessage(err))
		assert.Equal(t, LoginFailedMessage, LoginErrorMessage(&apiclient.APIError{StatusCode: 500}))
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService()

	tests := []struct {
		name    string
		in      RegisterInput
		wantErr error
		wantMsg string
	}{
		{
			name:    "mismatched confirmation",
			in:      RegisterInput{Name: "A", Email: "a@b.c", Password: "secret1", PasswordConfirmation: "secret2"},
			wantErr: domain.ErrPasswordMismatch,
			wantMsg: "Konfirmasi kata sandi tidak cocok.",
		},
		{
			name:    "short password",
			in:      RegisterInput{Name: "A", Email: "a@b.c", Password: "abc", PasswordConfirmation: "abc"},
			wantErr: domain.ErrPasswordTooShort,
			wantMsg: "Kata sandi minimal 6 karakter.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &MockBackend{}

			err := svc.Register(ctx, api, tt.in)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantMsg, RegisterErrorMessage(err))
			assert.Zero(t, api.CallCount("Register"))
		})
	}

	t.Run("valid input is sent with confirmation", func(t *testing.T) {
		var req apiclient.RegisterRequest
		api := &MockBackend{
			RegisterFunc: func(_ context.Context, r apiclient.RegisterRequest) (*domain.AuthResult, error) {
				req = r
				return &domain.AuthResult{}, nil
			},
		}

		err := svc.Register(ctx, api, RegisterInput{Name: " Sari ", Email: "sari@jamal.id", Password: "secret1", PasswordConfirmation: "secret1"})

		require.NoError(t, err)
		assert.Equal(t, "Sari", req.Name)
		assert.Equal(t, "secret1", req.PasswordConfirmation)
	})

	t.Run("field error from backend", func(t *testing.T) {
		api := &MockBackend{
			RegisterFunc: func(context.Context, apiclient.RegisterRequest) (*domain.AuthResult, error) {
				return nil, &apiclient.APIError{
					StatusCode: http.StatusUnprocessableEntity,
					Fields:     map[string][]string{"email": {"Email sudah terdaftar"}},
				}
			},
		}

		err := svc.Register(ctx, api, RegisterInput{Email: "a@b.c", Password: "secret1", PasswordConfirmation: "secret1"})

		assert.Equal(t, "Email sudah terdaftar", RegisterErrorMessage(err))
	})
}

func TestHomeFor(t *testing.T) {
	assert.Equal(t, "/", HomeFor(nil))
	assert.Equal(t, "/", HomeFor(&domain.User{Role: domain.RoleUser}))
	assert.Equal(t, "/admin/dashboard", HomeFor(&domain.User{Role: domain.RoleAdmin}))
}
