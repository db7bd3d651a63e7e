package service

import (
	"context"
	"strings"
	"testing"

	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/dafibh/paydue/paydue-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile_CreatesOnFirstAccess(t *testing.T) {
	users := testutil.NewMockUserRepository()
	svc := NewProfileService(users, NewImageService(nil))
	userID := uuid.New()

	profile, err := svc.GetProfile(context.Background(), userID, "priya@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDisplayName, profile.User.DisplayName)
	assert.Nil(t, profile.Photo)
	assert.Contains(t, users.ByID, userID)
}

func TestUpdateDisplayName(t *testing.T) {
	users := testutil.NewMockUserRepository()
	publisher := testutil.NewMockEventPublisher()
	svc := NewProfileService(users, NewImageService(nil))
	svc.SetEventPublisher(publisher)
	userID := uuid.New()
	users.AddUser(&domain.User{ID: userID, Email: "priya@example.com", DisplayName: domain.DefaultDisplayName})

	profile, err := svc.UpdateDisplayName(context.Background(), userID, "  Priya  ")
	require.NoError(t, err)
	assert.Equal(t, "Priya", profile.User.DisplayName)
	assert.Equal(t, []string{"profile.updated"}, publisher.Types())

	_, err = svc.UpdateDisplayName(context.Background(), userID, "   ")
	assert.ErrorIs(t, err, domain.ErrNameRequired)

	_, err = svc.UpdateDisplayName(context.Background(), userID, strings.Repeat("a", domain.MaxDisplayNameLength+1))
	assert.ErrorIs(t, err, domain.ErrNameTooLong)
}

func TestUploadPhoto_ReplacesPrevious(t *testing.T) {
	users := testutil.NewMockUserRepository()
	store := testutil.NewMockPhotoStore()
	svc := NewProfileService(users, NewImageService(store))
	userID := uuid.New()
	users.AddUser(&domain.User{ID: userID, Email: "priya@example.com"})
	data, filename := createTestImage(t, 300, 300, "jpeg")

	first, err := svc.UploadPhoto(context.Background(), userID, data, filename)
	require.NoError(t, err)
	firstKey := first.User.PhotoURL
	require.NotNil(t, first.Photo)
	assert.Contains(t, first.Photo.DisplayURL, firstKey)

	second, err := svc.UploadPhoto(context.Background(), userID, data, filename)
	require.NoError(t, err)
	assert.NotEqual(t, firstKey, second.User.PhotoURL)
	assert.Len(t, store.Objects, 2, "variants of the previous photo are removed")
	assert.NotContains(t, store.Objects, variantPath(firstKey, VariantThumb))
}

// sharedUserRepository hands out the stored record itself, so later updates show through earlier reads
type sharedUserRepository struct {
	*testutil.MockUserRepository
}

func (r sharedUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := r.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

func TestUploadPhoto_KeepsNewPhotoWithSharedRecords(t *testing.T) {
	users := sharedUserRepository{testutil.NewMockUserRepository()}
	store := testutil.NewMockPhotoStore()
	svc := NewProfileService(users, NewImageService(store))
	userID := uuid.New()
	users.AddUser(&domain.User{ID: userID, Email: "priya@example.com"})
	data, filename := createTestImage(t, 300, 300, "jpeg")

	first, err := svc.UploadPhoto(context.Background(), userID, data, filename)
	require.NoError(t, err)
	firstKey := first.User.PhotoURL

	second, err := svc.UploadPhoto(context.Background(), userID, data, filename)
	require.NoError(t, err)

	require.Len(t, store.Objects, 2)
	assert.Contains(t, store.Objects, variantPath(second.User.PhotoURL, VariantThumb))
	assert.Contains(t, store.Objects, variantPath(second.User.PhotoURL, VariantDisplay))
	assert.NotContains(t, store.Objects, variantPath(firstKey, VariantDisplay))
}

func TestUploadPhoto_StorageDisabled(t *testing.T) {
	users := testutil.NewMockUserRepository()
	svc := NewProfileService(users, NewImageService(nil))

	_, err := svc.UploadPhoto(context.Background(), uuid.New(), []byte("x"), "photo.jpg")
	assert.ErrorIs(t, err, ErrPhotoStorageDisabled)
}
