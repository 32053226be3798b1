package service

import (
	"context"
	"testing"

	"github.com/jamalparfum/storefront/internal/apiclient"
	"github.com/jamalparfum/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminUserService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes role and trims fields", func(t *testing.T) {
		var got apiclient.UserUpdate
		api := &MockBackend{
			UpdateUserFunc: func(_ context.Context, _ int64, in apiclient.UserUpdate) error {
				got = in
				return nil
			},
		}

		err := NewAdminUserService(nil).Update(ctx, api, 2, UserInput{Name: " Sari ", Email: "sari@jamal.id ", Role: "ADMIN"})

		require.NoError(t, err)
		assert.Equal(t, apiclient.UserUpdate{Name: "Sari", Email: "sari@jamal.id", Role: domain.RoleAdmin}, got)
	})

	t.Run("unknown role", func(t *testing.T) {
		api := &MockBackend{}

		err := NewAdminUserService(nil).Update(ctx, api, 2, UserInput{Name: "Sari", Role: "owner"})

		assert.ErrorIs(t, err, domain.ErrInvalidRole)
		assert.Empty(t, api.Calls)
	})
}

func TestAdminUserService_Delete(t *testing.T) {
	api := &MockBackend{}
	svc := NewAdminUserService(nil)

	assert.NoError(t, svc.Delete(context.Background(), api, 5))
	assert.ErrorIs(t, svc.Delete(context.Background(), api, 0), domain.ErrInvalidUserID)
	assert.Equal(t, 1, api.CallCount("DeleteUser"))
}
