package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/dafibh/paydue/paydue-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestImage creates a solid test image of the specified size and format
func createTestImage(t *testing.T, width, height int, format string) ([]byte, string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 0, G: 128, B: 255, A: 255})
		}
	}

	var buf bytes.Buffer
	if format == "png" {
		require.NoError(t, png.Encode(&buf, img))
		return buf.Bytes(), "photo.png"
	}
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}))
	return buf.Bytes(), "photo.jpg"
}

func TestValidateImage(t *testing.T) {
	svc := NewImageService(nil)
	validJPEG, _ := createTestImage(t, 100, 100, "jpeg")
	validPNG, _ := createTestImage(t, 100, 100, "png")
	tiny, _ := createTestImage(t, 30, 30, "jpeg")

	tests := []struct {
		name     string
		data     []byte
		filename string
		expected error
	}{
		{"valid jpeg", validJPEG, "photo.jpg", nil},
		{"valid png", validPNG, "photo.PNG", nil},
		{"too large", make([]byte, MaxImageSize+1), "photo.jpg", ErrImageTooLarge},
		{"unsupported extension", validJPEG, "photo.webp", ErrInvalidFormat},
		{"too small", tiny, "photo.jpg", ErrImageTooSmall},
		{"not an image", []byte("not an image"), "photo.jpg", ErrInvalidImageData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidateImage(tt.data, tt.filename)
			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestProcessAndUpload(t *testing.T) {
	store := testutil.NewMockPhotoStore()
	svc := NewImageService(store)
	userID := uuid.New()
	data, filename := createTestImage(t, 1200, 600, "png")

	key, err := svc.ProcessAndUpload(context.Background(), userID, data, filename)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "profiles/"+userID.String()+"/"))
	require.Len(t, store.Objects, 2)

	thumb, _, err := image.Decode(bytes.NewReader(store.Objects[variantPath(key, VariantThumb)]))
	require.NoError(t, err)
	assert.Equal(t, ThumbnailWidth, thumb.Bounds().Dx())
	assert.Equal(t, 100, thumb.Bounds().Dy())

	display, _, err := image.Decode(bytes.NewReader(store.Objects[variantPath(key, VariantDisplay)]))
	require.NoError(t, err)
	assert.Equal(t, DisplayWidth, display.Bounds().Dx())

	urls, err := svc.PresignedURLs(context.Background(), key)
	require.NoError(t, err)
	assert.Contains(t, urls.ThumbnailURL, "_thumb.jpg?expires=3600")
	assert.Contains(t, urls.DisplayURL, "_display.jpg")

	svc.DeleteVariants(context.Background(), key)
	assert.Empty(t, store.Objects)
}

func TestProcessAndUpload_SmallImageNotUpscaled(t *testing.T) {
	store := testutil.NewMockPhotoStore()
	svc := NewImageService(store)
	data, filename := createTestImage(t, 120, 120, "jpeg")

	key, err := svc.ProcessAndUpload(context.Background(), uuid.New(), data, filename)
	require.NoError(t, err)

	display, _, err := image.Decode(bytes.NewReader(store.Objects[variantPath(key, VariantDisplay)]))
	require.NoError(t, err)
	assert.Equal(t, 120, display.Bounds().Dx())
}

func TestProcessAndUpload_Errors(t *testing.T) {
	data, filename := createTestImage(t, 100, 100, "jpeg")

	_, err := NewImageService(nil).ProcessAndUpload(context.Background(), uuid.New(), data, filename)
	assert.ErrorIs(t, err, ErrPhotoStorageDisabled)

	store := testutil.NewMockPhotoStore()
	store.UploadErr = errors.New("bucket missing")
	_, err = NewImageService(store).ProcessAndUpload(context.Background(), uuid.New(), data, filename)
	assert.Error(t, err)
	assert.Empty(t, store.Objects)
}

func TestGetContentType(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"test.jpg", "image/jpeg"},
		{"test.JPEG", "image/jpeg"},
		{"test.png", "image/png"},
		{"test.gif", "application/octet-stream"},
		{"test", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetContentType(tt.filename))
		})
	}
}
