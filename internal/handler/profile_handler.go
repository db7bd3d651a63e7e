package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/dafibh/paydue/paydue-backend/internal/middleware"
	"github.com/dafibh/paydue/paydue-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProfileHandler handles profile-related HTTP requests
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// ProfileResponse represents the profile response
type ProfileResponse struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	DisplayName  string  `json:"displayName"`
	ThumbnailURL *string `json:"thumbnailUrl"`
	PhotoURL     *string `json:"photoUrl"`
}

// UpdateProfileRequest represents the update profile request
type UpdateProfileRequest struct {
	DisplayName string `json:"displayName"`
}

// GetProfile handles GET /profile
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	profile, err := h.profileService.GetProfile(c.Request().Context(), userID, middleware.GetEmail(c))
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get profile")
		return NewInternalError(c, "Failed to get profile")
	}

	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// UpdateProfile handles PUT /profile
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	profile, err := h.profileService.UpdateDisplayName(c.Request().Context(), userID, req.DisplayName)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNameRequired):
			return NewFieldError(c, "displayName", "Name is required")
		case errors.Is(err, domain.ErrNameTooLong):
			return NewFieldError(c, "displayName", "Name must be 100 characters or less")
		case errors.Is(err, domain.ErrUserNotFound):
			return NewNotFoundError(c, "User not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to update profile")
		return NewInternalError(c, "Failed to update profile")
	}

	log.Info().Str("user_id", userID.String()).Msg("Profile updated")
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// UploadPhoto godoc
// @Summary Upload profile photo
// @Description Multipart upload of a JPEG or PNG photo (max 5MB, min 50x50). Stored as a thumbnail and a display variant.
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Photo"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /profile/photo [post]
func (h *ProfileHandler) UploadPhoto(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewFieldError(c, "file", "File is required")
	}
	if file.Size > service.MaxImageSize {
		return NewFieldError(c, "file", "File too large. Maximum size is 5MB")
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to process file")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, service.MaxImageSize+1))
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		return NewInternalError(c, "Failed to read file")
	}

	profile, err := h.profileService.UploadPhoto(c.Request().Context(), userID, data, file.Filename)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPhotoStorageDisabled):
			return NewServiceUnavailableError(c, "Photo uploads are disabled (storage not configured)")
		case errors.Is(err, service.ErrImageTooLarge):
			return NewFieldError(c, "file", "File too large. Maximum size is 5MB")
		case errors.Is(err, service.ErrInvalidFormat):
			return NewFieldError(c, "file", "Invalid format. Supported: JPEG, PNG")
		case errors.Is(err, service.ErrImageTooSmall):
			return NewFieldError(c, "file", "Image too small. Minimum 50x50 pixels")
		case errors.Is(err, service.ErrInvalidImageData):
			return NewFieldError(c, "file", "Invalid image data")
		case errors.Is(err, domain.ErrUserNotFound):
			return NewNotFoundError(c, "User not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to upload profile photo")
		return NewInternalError(c, "Failed to upload photo")
	}

	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

func toProfileResponse(profile *service.Profile) ProfileResponse {
	response := ProfileResponse{
		ID:          profile.User.ID.String(),
		Email:       profile.User.Email,
		DisplayName: profile.User.DisplayName,
	}
	if profile.Photo != nil {
		response.ThumbnailURL = &profile.Photo.ThumbnailURL
		response.PhotoURL = &profile.Photo.DisplayURL
	}
	return response
}
