package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is an authenticated identity provider session
type Session struct {
	UserID       uuid.UUID `json:"userId"`
	Email        string    `json:"email"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// IdentityProvider performs password based account flows against the hosted auth service
type IdentityProvider interface {
	SignUp(email, password string) error
	SignIn(email, password string) (*Session, error)
	SignOut(accessToken string) error
	SendPasswordReset(email string) error
	UpdatePassword(accessToken, newPassword string) error
}
