package handler

import (
	"net/http"

	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/dafibh/paydue/paydue-backend/internal/middleware"
	"github.com/dafibh/paydue/paydue-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles the password based account flows
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// CredentialsRequest is the body of sign-up and sign-in
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest is the body of forgot-password
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// UpdatePasswordRequest is the body of update-password
type UpdatePasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// SessionResponse carries the tokens issued on sign-in
type SessionResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresAt    string `json:"expiresAt"`
}

// AuthResponse is the outcome of every auth flow
type AuthResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	User    *UserResponse    `json:"user,omitempty"`
	Session *SessionResponse `json:"session,omitempty"`
}

// SignUp godoc
// @Summary Sign up
// @Description Register with email and password. The account must be confirmed by email before signing in.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} AuthResponse
// @Failure 429 {object} ProblemDetails
// @Router /auth/sign-up [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, AuthResponse{Message: "Invalid request body"})
	}

	return respondAuth(c, h.authService.SignUp(req.Email, req.Password), http.StatusBadRequest)
}

// SignIn godoc
// @Summary Sign in
// @Description Exchange credentials for a session. The profile is created on first sign-in.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} AuthResponse
// @Failure 401 {object} AuthResponse
// @Failure 429 {object} ProblemDetails
// @Router /auth/sign-in [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, AuthResponse{Message: "Invalid request body"})
	}

	result, err := h.authService.SignIn(req.Email, req.Password)
	if err != nil {
		return NewInternalError(c, "Failed to load profile")
	}
	if !result.Success && result.Message == service.MsgCredentialsRequired {
		return c.JSON(http.StatusBadRequest, toAuthResponse(result))
	}
	return respondAuth(c, result, http.StatusUnauthorized)
}

// SignOut handles POST /api/v1/auth/sign-out
func (h *AuthHandler) SignOut(c echo.Context) error {
	token := middleware.GetAccessToken(c)
	if token == "" {
		return c.JSON(http.StatusUnauthorized, AuthResponse{Message: "Authentication required"})
	}

	if err := h.authService.SignOut(token); err != nil {
		return c.JSON(http.StatusBadRequest, AuthResponse{Message: "Could not sign out"})
	}

	log.Info().Str("user_id", middleware.GetUserID(c).String()).Msg("User signed out")
	return c.JSON(http.StatusOK, AuthResponse{Success: true, Message: service.MsgSignedOut})
}

// ForgotPassword handles POST /api/v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, AuthResponse{Message: "Invalid request body"})
	}

	return respondAuth(c, h.authService.ForgotPassword(req.Email), http.StatusBadRequest)
}

// UpdatePassword handles POST /api/v1/auth/update-password for the signed-in user
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	token := middleware.GetAccessToken(c)
	if token == "" {
		return c.JSON(http.StatusUnauthorized, AuthResponse{Message: "Authentication required"})
	}

	var req UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, AuthResponse{Message: "Invalid request body"})
	}

	return respondAuth(c, h.authService.UpdatePassword(token, req.Password, req.ConfirmPassword), http.StatusBadRequest)
}

func respondAuth(c echo.Context, result *service.AuthResult, failureStatus int) error {
	if !result.Success {
		return c.JSON(failureStatus, toAuthResponse(result))
	}
	return c.JSON(http.StatusOK, toAuthResponse(result))
}

func toAuthResponse(result *service.AuthResult) AuthResponse {
	response := AuthResponse{Success: result.Success, Message: result.Message}
	if result.User != nil {
		response.User = toUserResponse(result.User)
	}
	if s := result.Session; s != nil {
		response.Session = &SessionResponse{
			AccessToken:  s.AccessToken,
			RefreshToken: s.RefreshToken,
			ExpiresAt:    formatTimestamp(s.ExpiresAt),
		}
	}
	return response
}

func toUserResponse(user *domain.User) *UserResponse {
	return &UserResponse{
		ID:          user.ID.String(),
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}
}
