package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jamalparfum/storefront/internal/apiclient"
	"github.com/jamalparfum/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func image(name, contentType string) apiclient.Upload {
	return apiclient.Upload{Filename: name, ContentType: contentType, Size: 1024}
}

func validPerfumeInput() domain.PerfumeInput {
	return domain.PerfumeInput{Name: "Amber Night", Brand: "Jamal", Price: decimal.NewFromInt(150000), Stock: 4}
}

func TestAdminPerfumeService_UploadImages(t *testing.T) {
	ctx := context.Background()

	t.Run("single valid file uses the single endpoint", func(t *testing.T) {
		api := &MockBackend{}

		res, err := NewAdminPerfumeService(nil).UploadImages(ctx, api, 1, []apiclient.Upload{
			image("a.jpg", "image/jpeg"),
			image("notes.txt", "text/plain"),
		})

		require.NoError(t, err)
		assert.Equal(t, 1, res.Uploaded)
		assert.Len(t, res.Rejected, 1)
		assert.Equal(t, 1, api.CallCount("UploadPerfumeImage"))
		assert.Zero(t, api.CallCount("UploadPerfumeImages"))
	})

	t.Run("several valid files use the batch endpoint", func(t *testing.T) {
		var sent []apiclient.Upload
		api := &MockBackend{
			UploadPerfumeImagesFunc: func(_ context.Context, _ int64, imgs []apiclient.Upload) error {
				sent = imgs
				return nil
			},
		}

		res, err := NewAdminPerfumeService(nil).UploadImages(ctx, api, 1, []apiclient.Upload{
			image("a.jpg", "image/jpeg"),
			image("b.gif", "image/gif"),
			image("c.webp", "image/webp"),
		})

		require.NoError(t, err)
		assert.Equal(t, 3, res.Uploaded)
		assert.Len(t, sent, 3)
		assert.Zero(t, api.CallCount("UploadPerfumeImage"))
	})

	t.Run("nothing valid makes no call", func(t *testing.T) {
		api := &MockBackend{}

		res, err := NewAdminPerfumeService(nil).UploadImages(ctx, api, 1, []apiclient.Upload{image("x.bmp", "image/bmp")})

		require.NoError(t, err)
		assert.Zero(t, res.Uploaded)
		assert.Empty(t, api.Calls)
	})

	t.Run("backend failure keeps rejections", func(t *testing.T) {
		api := &MockBackend{
			UploadPerfumeImageFunc: func(context.Context, int64, apiclient.Upload) error {
				return errors.New("413")
			},
		}

		res, err := NewAdminPerfumeService(nil).UploadImages(ctx, api, 1, []apiclient.Upload{
			image("a.jpg", "image/jpeg"),
			image("b.pdf", "application/pdf"),
		})

		require.Error(t, err)
		assert.Zero(t, res.Uploaded)
		assert.Len(t, res.Rejected, 1)
	})
}

func TestAdminPerfumeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid form never calls the backend", func(t *testing.T) {
		api := &MockBackend{}
		in := validPerfumeInput()
		in.Name = "  "

		_, err := NewAdminPerfumeService(nil).Create(ctx, api, in, nil)

		assert.ErrorIs(t, err, domain.ErrNameRequired)
		assert.Equal(t, "Nama, harga, dan stok wajib diisi.", PerfumeFormErrorMessage(err, "x"))
		assert.Empty(t, api.Calls)
	})

	t.Run("uploads images to the created perfume", func(t *testing.T) {
		var target int64
		api := &MockBackend{
			CreatePerfumeFunc: func(_ context.Context, in domain.PerfumeInput) (*domain.Perfume, error) {
				return &domain.Perfume{ID: 77, Name: in.Name}, nil
			},
			UploadPerfumeImageFunc: func(_ context.Context, id int64, _ apiclient.Upload) error {
				target = id
				return nil
			},
		}

		res, err := NewAdminPerfumeService(nil).Create(ctx, api, validPerfumeInput(), []apiclient.Upload{image("a.png", "image/png")})

		require.NoError(t, err)
		assert.Equal(t, int64(77), res.Perfume.ID)
		assert.Equal(t, int64(77), target)
		assert.Equal(t, 1, res.Images.Uploaded)
		assert.NoError(t, res.ImageErr)
	})

	t.Run("image failure does not fail creation", func(t *testing.T) {
		api := &MockBackend{
			UploadPerfumeImageFunc: func(context.Context, int64, apiclient.Upload) error {
				return errors.New("storage full")
			},
		}

		res, err := NewAdminPerfumeService(nil).Create(ctx, api, validPerfumeInput(), []apiclient.Upload{image("a.png", "image/png")})

		require.NoError(t, err)
		assert.NotNil(t, res.Perfume)
		assert.Error(t, res.ImageErr)
	})
}

func TestAdminPerfumeService_Mutations(t *testing.T) {
	ctx := context.Background()
	svc := NewAdminPerfumeService(nil)
	api := &MockBackend{}

	require.NoError(t, svc.Update(ctx, api, 3, validPerfumeInput()))
	require.NoError(t, svc.Delete(ctx, api, 3))
	require.NoError(t, svc.SetPrimaryImage(ctx, api, 3, 8))
	require.NoError(t, svc.DeleteImage(ctx, api, 3, 8))
	assert.Equal(t, []string{"UpdatePerfume", "DeletePerfume", "SetPrimaryImage", "DeletePerfumeImage"}, api.Calls)

	assert.ErrorIs(t, svc.Delete(ctx, api, 0), domain.ErrInvalidPerfumeID)
	assert.ErrorIs(t, svc.SetPrimaryImage(ctx, api, 3, 0), domain.ErrInvalidPerfumeID)

	bad := validPerfumeInput()
	bad.Stock = -1
	assert.ErrorIs(t, svc.Update(ctx, api, 3, bad), domain.ErrInvalidStock)
	assert.Len(t, api.Calls, 4)
}
