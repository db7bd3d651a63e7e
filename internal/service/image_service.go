package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"
	"time"

	"github.com/dafibh/paydue/paydue-backend/internal/repository/storage"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	MaxImageSize   = 5 * 1024 * 1024 // 5MB
	MinImageWidth  = 50
	MinImageHeight = 50
	ThumbnailWidth = 200
	DisplayWidth   = 800
	JPEGQuality    = 85

	// PhotoURLExpiry is how long a presigned photo URL stays valid
	PhotoURLExpiry = 1 * time.Hour
)

// Photo variant names
const (
	VariantThumb   = "thumb"
	VariantDisplay = "display"
)

var (
	ErrImageTooLarge    = errors.New("file too large. Maximum size is 5MB")
	ErrInvalidFormat    = errors.New("invalid format. Supported: JPEG, PNG")
	ErrImageTooSmall    = errors.New("image too small. Minimum 50x50 pixels")
	ErrInvalidImageData = errors.New("invalid image data")
)

// AllowedExtensions maps extensions to content types
var AllowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// PhotoURLs are presigned URLs of a stored photo's variants
type PhotoURLs struct {
	ThumbnailURL string `json:"thumbnailUrl"`
	DisplayURL   string `json:"displayUrl"`
}

// ImageService validates, resizes and stores profile photos
type ImageService struct {
	storage storage.PhotoStore
}

// NewImageService creates a new ImageService; a nil store disables uploads
func NewImageService(store storage.PhotoStore) *ImageService {
	return &ImageService{storage: store}
}

// IsEnabled indicates whether photo storage is configured
func (s *ImageService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

// ValidateImage validates image format and size
func (s *ImageService) ValidateImage(data []byte, filename string) error {
	_, err := s.validateAndDecode(data, filename)
	return err
}

func (s *ImageService) validateAndDecode(data []byte, filename string) (image.Image, error) {
	if len(data) > MaxImageSize {
		return nil, ErrImageTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := AllowedExtensions[ext]; !ok {
		return nil, ErrInvalidFormat
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidImageData
	}

	bounds := img.Bounds()
	if bounds.Dx() < MinImageWidth || bounds.Dy() < MinImageHeight {
		return nil, ErrImageTooSmall
	}

	return img, nil
}

// ProcessAndUpload resizes the photo into its variants, uploads them and returns the photo key
func (s *ImageService) ProcessAndUpload(ctx context.Context, userID uuid.UUID, data []byte, filename string) (string, error) {
	if !s.IsEnabled() {
		return "", ErrPhotoStorageDisabled
	}

	img, err := s.validateAndDecode(data, filename)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("profiles/%s/%s", userID, uuid.New())
	variants := []struct {
		name     string
		maxWidth int
	}{
		{VariantThumb, ThumbnailWidth},
		{VariantDisplay, DisplayWidth},
	}

	var uploaded []string
	for _, variant := range variants {
		processed := img
		if img.Bounds().Dx() > variant.maxWidth {
			processed = imaging.Resize(img, variant.maxWidth, 0, imaging.Lanczos)
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, processed, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			s.deletePaths(ctx, uploaded)
			return "", fmt.Errorf("failed to encode image: %w", err)
		}

		path := variantPath(key, variant.name)
		if _, err := s.storage.Upload(ctx, path, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len())); err != nil {
			s.deletePaths(ctx, uploaded)
			return "", fmt.Errorf("failed to upload %s variant: %w", variant.name, err)
		}
		uploaded = append(uploaded, path)
	}

	return key, nil
}

// PresignedURLs returns short-lived URLs of the photo's variants
func (s *ImageService) PresignedURLs(ctx context.Context, key string) (*PhotoURLs, error) {
	if key == "" || !s.IsEnabled() {
		return nil, nil
	}

	thumb, err := s.storage.GeneratePresignedURL(ctx, variantPath(key, VariantThumb), PhotoURLExpiry)
	if err != nil {
		return nil, err
	}
	display, err := s.storage.GeneratePresignedURL(ctx, variantPath(key, VariantDisplay), PhotoURLExpiry)
	if err != nil {
		return nil, err
	}
	return &PhotoURLs{ThumbnailURL: thumb, DisplayURL: display}, nil
}

// DeleteVariants removes every variant of a stored photo, best effort
func (s *ImageService) DeleteVariants(ctx context.Context, key string) {
	if key == "" || !s.IsEnabled() {
		return
	}
	s.deletePaths(ctx, []string{variantPath(key, VariantThumb), variantPath(key, VariantDisplay)})
}

func (s *ImageService) deletePaths(ctx context.Context, paths []string) {
	for _, path := range paths {
		if err := s.storage.Delete(ctx, path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Failed to delete photo variant")
		}
	}
}

func variantPath(key, variant string) string {
	return key + "_" + variant + ".jpg"
}

// GetContentType returns the content type for a file extension
func GetContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ct, ok := AllowedExtensions[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
