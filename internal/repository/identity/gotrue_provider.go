// Package identity adapts the hosted GoTrue auth service to domain.IdentityProvider.
package identity

import (
	"fmt"
	"strings"
	"time"

	"github.com/dafibh/paydue/paydue-backend/internal/config"
	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"
)

// GoTrueProvider implements domain.IdentityProvider with the Supabase GoTrue client
type GoTrueProvider struct {
	client gotrue.Client
}

// NewGoTrueProvider creates a provider for the configured project
func NewGoTrueProvider(cfg config.SupabaseConfig) *GoTrueProvider {
	client := gotrue.New("", cfg.AnonKey).WithCustomGoTrueURL(authURL(cfg.URL))
	return &GoTrueProvider{client: client}
}

// SignUp registers an account; the user must confirm their email before signing in
func (p *GoTrueProvider) SignUp(email, password string) error {
	if _, err := p.client.Signup(types.SignupRequest{Email: email, Password: password}); err != nil {
		return fmt.Errorf("sign up: %w", err)
	}
	return nil
}

// SignIn exchanges credentials for a session
func (p *GoTrueProvider) SignIn(email, password string) (*domain.Session, error) {
	resp, err := p.client.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}

	session := &domain.Session{
		UserID:       resp.User.ID,
		Email:        resp.User.Email,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}
	if resp.ExpiresAt > 0 {
		session.ExpiresAt = time.Unix(resp.ExpiresAt, 0).UTC()
	}
	return session, nil
}

// SignOut revokes the session behind accessToken
func (p *GoTrueProvider) SignOut(accessToken string) error {
	if err := p.client.WithToken(accessToken).Logout(); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// SendPasswordReset mails a password recovery link
func (p *GoTrueProvider) SendPasswordReset(email string) error {
	if err := p.client.Recover(types.RecoverRequest{Email: email}); err != nil {
		return fmt.Errorf("recover: %w", err)
	}
	return nil
}

// UpdatePassword sets a new password for the user behind accessToken
func (p *GoTrueProvider) UpdatePassword(accessToken, newPassword string) error {
	if _, err := p.client.WithToken(accessToken).UpdateUser(types.UpdateUserRequest{Password: &newPassword}); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// authURL returns the GoTrue endpoint of a Supabase project URL
func authURL(projectURL string) string {
	base := strings.TrimRight(projectURL, "/")
	if strings.HasSuffix(base, "/auth/v1") {
		return base
	}
	return base + "/auth/v1"
}
