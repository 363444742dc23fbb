package service

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"github.com/vbonduro/vitrine/internal/assetstore"
	"github.com/vbonduro/vitrine/internal/domain"
)

// imageRepository is the subset of store.ImageStore that ImageService requires.
type imageRepository interface {
	Create(ctx context.Context, img *domain.Image) (*domain.Image, error)
	GetByID(ctx context.Context, id int64) (*domain.Image, error)
	List(ctx context.Context, filter domain.ImageFilter) ([]*domain.Image, error)
	Delete(ctx context.Context, id int64) error
	IncrementViews(ctx context.Context, id int64) (*domain.Image, error)
}

// NewImage is an upload request: the asset bytes plus catalog metadata.
type NewImage struct {
	Title         string
	Data          []byte
	MimeType      string
	CategoryID    int64
	SubcategoryID *int64
	Price         *float64
}

type ImageService struct {
	images   imageRepository
	uploader assetstore.Uploader
	newCode  func() (string, error)
	logger   *slog.Logger
}

func NewImageService(images imageRepository, uploader assetstore.Uploader, logger *slog.Logger) *ImageService {
	return &ImageService{
		images:   images,
		uploader: uploader,
		newCode:  NewDisplayCode,
		logger:   logger,
	}
}

func (s *ImageService) List(ctx context.Context, filter domain.ImageFilter) ([]*domain.Image, error) {
	return s.images.List(ctx, filter)
}

func (s *ImageService) Get(ctx context.Context, id int64) (*domain.Image, error) {
	img, err := s.images.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, domain.NotFound("Image not found")
	}
	return img, nil
}

// Create uploads the asset and, only if that succeeds, records the image
// with the returned URL and a fresh display code.
func (s *ImageService) Create(ctx context.Context, in NewImage) (*domain.Image, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || len(in.Data) == 0 || in.CategoryID <= 0 {
		return nil, domain.Validation("Missing required fields")
	}

	s.logger.Info("image upload started", "category_id", in.CategoryID, "mime_type", in.MimeType, "bytes", len(in.Data))

	url, err := s.uploader.Upload(ctx, in.MimeType, bytes.NewReader(in.Data))
	if err != nil {
		s.logger.Error("asset upload failed", "error", err)
		return nil, domain.Upstream("Failed to upload image", err)
	}

	code, err := s.newCode()
	if err != nil {
		return nil, err
	}

	img, err := s.images.Create(ctx, &domain.Image{
		Title:         title,
		URL:           url,
		CategoryID:    in.CategoryID,
		SubcategoryID: in.SubcategoryID,
		Price:         in.Price,
		Code:          code,
	})
	if err != nil {
		s.logger.Error("image record not saved, asset orphaned", "url", url, "error", err)
		return nil, err
	}

	s.logger.Info("image upload complete", "image_id", img.ID, "code", img.Code)
	return img, nil
}

// Delete removes the image record. Deleting an unknown id succeeds. The
// hosted asset is left in place.
func (s *ImageService) Delete(ctx context.Context, id int64) error {
	if err := s.images.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("image deleted", "image_id", id)
	return nil
}

// IncrementViews records one view and returns the updated image.
func (s *ImageService) IncrementViews(ctx context.Context, id int64) (*domain.Image, error) {
	img, err := s.images.IncrementViews(ctx, id)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, domain.NotFound("Image not found")
	}
	return img, nil
}
