package service

import (
	"errors"
	"strings"

	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Messages returned to the client by the auth flows
const (
	MsgCredentialsRequired     = "Email and password are required"
	MsgEmailRequired           = "Email is required"
	MsgSignUpSuccess           = "Thanks for signing up! Please check your email for a verification link."
	MsgSignInUserMissing       = "User not found after login."
	MsgResetSent               = "Check your email for a link to reset your password."
	MsgResetFailed             = "Could not reset password"
	MsgPasswordConfirmRequired = "Password and confirm password are required"
	MsgPasswordMismatch        = "Passwords do not match"
	MsgPasswordUpdateFailed    = "Password update failed"
	MsgPasswordUpdated         = "Password updated"
	MsgSignedOut               = "Signed out"
)

// AuthResult is the tagged outcome of an auth flow.
// A failed flow carries Success false and a message for the user; it is not an error.
type AuthResult struct {
	Success bool
	Message string
	Session *domain.Session
	User    *domain.User
}

func authFailure(message string) *AuthResult {
	return &AuthResult{Success: false, Message: message}
}

// AuthService runs the password based account flows against the identity provider
type AuthService struct {
	identity domain.IdentityProvider
	userRepo domain.UserRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(identity domain.IdentityProvider, userRepo domain.UserRepository) *AuthService {
	return &AuthService{
		identity: identity,
		userRepo: userRepo,
	}
}

// SignUp registers an account. The user confirms their email before signing in.
func (s *AuthService) SignUp(email, password string) *AuthResult {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return authFailure(MsgCredentialsRequired)
	}

	if err := s.identity.SignUp(email, password); err != nil {
		log.Warn().Err(err).Str("email", email).Msg("Sign up rejected")
		return authFailure(providerMessage(err))
	}

	log.Info().Str("email", email).Msg("User signed up")
	return &AuthResult{Success: true, Message: MsgSignUpSuccess}
}

// SignIn exchanges credentials for a session and returns the user's profile,
// creating it with default values on first sign-in
func (s *AuthService) SignIn(email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return authFailure(MsgCredentialsRequired), nil
	}

	session, err := s.identity.SignIn(email, password)
	if err != nil {
		log.Debug().Err(err).Str("email", email).Msg("Sign in rejected")
		return authFailure(providerMessage(err)), nil
	}
	if session == nil || session.UserID == uuid.Nil {
		return authFailure(MsgSignInUserMissing), nil
	}

	user, err := s.userRepo.CreateOrGet(session.UserID, session.Email)
	if err != nil {
		log.Error().Err(err).Str("user_id", session.UserID.String()).Msg("Failed to create or get profile")
		return nil, err
	}

	log.Info().Str("user_id", user.ID.String()).Msg("User signed in")
	return &AuthResult{Success: true, Session: session, User: user}, nil
}

// SignOut revokes the session behind accessToken
func (s *AuthService) SignOut(accessToken string) error {
	if err := s.identity.SignOut(accessToken); err != nil {
		log.Warn().Err(err).Msg("Sign out failed")
		return err
	}
	return nil
}

// ForgotPassword mails a password reset link
func (s *AuthService) ForgotPassword(email string) *AuthResult {
	email = normalizeEmail(email)
	if email == "" {
		return authFailure(MsgEmailRequired)
	}

	if err := s.identity.SendPasswordReset(email); err != nil {
		log.Warn().Err(err).Str("email", email).Msg("Password reset request failed")
		return authFailure(MsgResetFailed)
	}
	return &AuthResult{Success: true, Message: MsgResetSent}
}

// UpdatePassword sets a new password for the signed-in user
func (s *AuthService) UpdatePassword(accessToken, password, confirmPassword string) *AuthResult {
	if password == "" || confirmPassword == "" {
		return authFailure(MsgPasswordConfirmRequired)
	}
	if password != confirmPassword {
		return authFailure(MsgPasswordMismatch)
	}

	if err := s.identity.UpdatePassword(accessToken, password); err != nil {
		log.Warn().Err(err).Msg("Password update failed")
		return authFailure(MsgPasswordUpdateFailed)
	}
	return &AuthResult{Success: true, Message: MsgPasswordUpdated}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// providerMessage strips the wrapping added by the identity adapter
func providerMessage(err error) string {
	for {
		inner := errors.Unwrap(err)
		if inner == nil {
			return err.Error()
		}
		err = inner
	}
}
