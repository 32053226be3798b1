package service

import (
	"context"
	"fmt"

	"github.com/jamalparfum/storefront/internal/apiclient"
	"github.com/jamalparfum/storefront/internal/domain"
	"go.uber.org/zap"
)

// ImageUploadResult reports what happened to a set of selected images
type ImageUploadResult struct {
	Uploaded int             `json:"uploaded"`
	Rejected []FileRejection `json:"rejected,omitempty"`
}

// CreatePerfumeResult is the outcome of creating a perfume with images
type CreatePerfumeResult struct {
	Perfume *domain.Perfume   `json:"perfume"`
	Images  ImageUploadResult `json:"images"`
	// ImageErr is set when the perfume was created but the image upload failed
	ImageErr error `json:"-"`
}

// AdminPerfumeService defines catalog management
type AdminPerfumeService interface {
	List(ctx context.Context, api AdminPerfumeAPI) ([]domain.Perfume, error)
	Get(ctx context.Context, api AdminPerfumeAPI, id int64) (*domain.Perfume, error)

	// Create validates the form, creates the perfume, then uploads the valid images
	Create(ctx context.Context, api AdminPerfumeAPI, in domain.PerfumeInput, images []apiclient.Upload) (*CreatePerfumeResult, error)

	Update(ctx context.Context, api AdminPerfumeAPI, id int64, in domain.PerfumeInput) error
	Delete(ctx context.Context, api AdminPerfumeAPI, id int64) error

	Images(ctx context.Context, api AdminPerfumeAPI, id int64) ([]domain.PerfumeImage, error)

	// UploadImages sends one valid file to /images and several to /images/batch
	UploadImages(ctx context.Context, api AdminPerfumeAPI, id int64, images []apiclient.Upload) (*ImageUploadResult, error)

	SetPrimaryImage(ctx context.Context, api AdminPerfumeAPI, perfumeID, imageID int64) error
	DeleteImage(ctx context.Context, api AdminPerfumeAPI, perfumeID, imageID int64) error
}

type adminPerfumeService struct {
	logger *zap.Logger
}

// NewAdminPerfumeService creates a new admin perfume service
func NewAdminPerfumeService(logger *zap.Logger) AdminPerfumeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &adminPerfumeService{logger: logger}
}

func (s *adminPerfumeService) List(ctx context.Context, api AdminPerfumeAPI) ([]domain.Perfume, error) {
	return api.ListPerfumes(ctx)
}

func (s *adminPerfumeService) Get(ctx context.Context, api AdminPerfumeAPI, id int64) (*domain.Perfume, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidPerfumeID
	}
	return api.GetPerfume(ctx, id)
}

func (s *adminPerfumeService) Create(ctx context.Context, api AdminPerfumeAPI, in domain.PerfumeInput, images []apiclient.Upload) (*CreatePerfumeResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	perfume, err := api.CreatePerfume(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info("perfume created", zap.Int64("perfume_id", perfume.ID), zap.String("name", perfume.Name))

	result := &CreatePerfumeResult{Perfume: perfume}
	if len(images) == 0 {
		return result, nil
	}

	uploaded, err := s.UploadImages(ctx, api, perfume.ID, images)
	if uploaded != nil {
		result.Images = *uploaded
	}
	if err != nil {
		result.ImageErr = err
	}
	return result, nil
}

func (s *adminPerfumeService) Update(ctx context.Context, api AdminPerfumeAPI, id int64, in domain.PerfumeInput) error {
	if id <= 0 {
		return domain.ErrInvalidPerfumeID
	}
	if err := in.Validate(); err != nil {
		return err
	}
	return api.UpdatePerfume(ctx, id, in)
}

func (s *adminPerfumeService) Delete(ctx context.Context, api AdminPerfumeAPI, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidPerfumeID
	}
	if err := api.DeletePerfume(ctx, id); err != nil {
		return err
	}
	s.logger.Info("perfume deleted", zap.Int64("perfume_id", id))
	return nil
}

func (s *adminPerfumeService) Images(ctx context.Context, api AdminPerfumeAPI, id int64) ([]domain.PerfumeImage, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidPerfumeID
	}
	return api.ListPerfumeImages(ctx, id)
}

func (s *adminPerfumeService) UploadImages(ctx context.Context, api AdminPerfumeAPI, id int64, images []apiclient.Upload) (*ImageUploadResult, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidPerfumeID
	}

	valid, rejected := PerfumeImagePolicy.Partition(images)
	result := &ImageUploadResult{Rejected: rejected}

	var err error
	switch len(valid) {
	case 0:
		return result, nil
	case 1:
		err = api.UploadPerfumeImage(ctx, id, valid[0])
	default:
		err = api.UploadPerfumeImages(ctx, id, valid)
	}
	if err != nil {
		return result, fmt.Errorf("failed to upload %d image(s): %w", len(valid), err)
	}

	result.Uploaded = len(valid)
	return result, nil
}

func (s *adminPerfumeService) SetPrimaryImage(ctx context.Context, api AdminPerfumeAPI, perfumeID, imageID int64) error {
	if perfumeID <= 0 || imageID <= 0 {
		return domain.ErrInvalidPerfumeID
	}
	return api.SetPrimaryImage(ctx, perfumeID, imageID)
}

func (s *adminPerfumeService) DeleteImage(ctx context.Context, api AdminPerfumeAPI, perfumeID, imageID int64) error {
	if perfumeID <= 0 || imageID <= 0 {
		return domain.ErrInvalidPerfumeID
	}
	return api.DeletePerfumeImage(ctx, perfumeID, imageID)
}

// PerfumeFormErrorMessage is shown when creating or editing fails
func PerfumeFormErrorMessage(err error, fallback string) string {
	if domain.IsValidationError(err) {
		return "Nama, harga, dan stok wajib diisi."
	}
	return apiclient.Message(err, fallback)
}
