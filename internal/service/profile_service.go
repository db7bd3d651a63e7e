package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/dafibh/paydue/paydue-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrPhotoStorageDisabled is returned for photo uploads when no storage is configured
var ErrPhotoStorageDisabled = domain.ErrStorageMissing

// Profile is a user with resolved photo URLs
type Profile struct {
	User  *domain.User `json:"user"`
	Photo *PhotoURLs   `json:"photo,omitempty"`
}

// ProfileService handles profile-related business logic
type ProfileService struct {
	userRepo       domain.UserRepository
	images         *ImageService
	eventPublisher websocket.EventPublisher
}

// NewProfileService creates a new ProfileService
func NewProfileService(userRepo domain.UserRepository, images *ImageService) *ProfileService {
	return &ProfileService{userRepo: userRepo, images: images}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *ProfileService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// GetProfile returns the user's profile, creating it on first access
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID, email string) (*Profile, error) {
	user, err := s.userRepo.GetByID(userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		user, err = s.userRepo.CreateOrGet(userID, email)
	}
	if err != nil {
		return nil, err
	}
	return s.withPhoto(ctx, user), nil
}

// UpdateDisplayName validates and stores a new display name
func (s *ProfileService) UpdateDisplayName(ctx context.Context, userID uuid.UUID, name string) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxDisplayNameLength {
		return nil, domain.ErrNameTooLong
	}

	user, err := s.userRepo.UpdateDisplayName(userID, name)
	if err != nil {
		return nil, err
	}

	profile := s.withPhoto(ctx, user)
	s.publish(userID, profile)
	return profile, nil
}

// UploadPhoto replaces the user's profile photo
func (s *ProfileService) UploadPhoto(ctx context.Context, userID uuid.UUID, data []byte, filename string) (*Profile, error) {
	if !s.images.IsEnabled() {
		return nil, ErrPhotoStorageDisabled
	}

	existing, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	// read before the update; the repository may hand back a shared record
	previousKey := existing.PhotoURL

	key, err := s.images.ProcessAndUpload(ctx, userID, data, filename)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpdatePhotoURL(userID, key)
	if err != nil {
		s.images.DeleteVariants(ctx, key)
		return nil, err
	}
	if previousKey != key {
		s.images.DeleteVariants(ctx, previousKey)
	}

	log.Info().Str("user_id", userID.String()).Msg("Profile photo updated")
	profile := s.withPhoto(ctx, user)
	s.publish(userID, profile)
	return profile, nil
}

// withPhoto resolves the stored photo key into presigned URLs.
// A failure is logged and the profile is returned without a photo.
func (s *ProfileService) withPhoto(ctx context.Context, user *domain.User) *Profile {
	profile := &Profile{User: user}
	if user.PhotoURL == "" || !s.images.IsEnabled() {
		return profile
	}

	urls, err := s.images.PresignedURLs(ctx, user.PhotoURL)
	if err != nil {
		log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("Failed to presign profile photo")
		return profile
	}
	profile.Photo = urls
	return profile
}

func (s *ProfileService) publish(userID uuid.UUID, profile *Profile) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, websocket.ProfileUpdated(profile))
	}
}
