package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/dafibh/paydue/paydue-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (*AuthService, *testutil.MockIdentityProvider, *testutil.MockUserRepository) {
	identity := testutil.NewMockIdentityProvider()
	users := testutil.NewMockUserRepository()
	return NewAuthService(identity, users), identity, users
}

func TestSignUp(t *testing.T) {
	svc, identity, _ := newAuthFixture()

	result := svc.SignUp("  Priya@Example.com ", "secret123")
	assert.True(t, result.Success)
	assert.Equal(t, MsgSignUpSuccess, result.Message)
	assert.Contains(t, identity.Accounts, "priya@example.com")

	result = svc.SignUp("priya@example.com", "secret123")
	assert.False(t, result.Success)
	assert.Equal(t, "user already registered", result.Message)
}

func TestSignUp_MissingFields(t *testing.T) {
	svc, _, _ := newAuthFixture()

	for _, creds := range [][2]string{{"", "pw"}, {"a@b.c", ""}, {"   ", "pw"}} {
		result := svc.SignUp(creds[0], creds[1])
		assert.False(t, result.Success)
		assert.Equal(t, MsgCredentialsRequired, result.Message)
	}
}

func TestSignIn_CreatesProfile(t *testing.T) {
	svc, identity, users := newAuthFixture()
	require.True(t, svc.SignUp("priya@example.com", "secret123").Success)

	result, err := svc.SignIn("priya@example.com", "secret123")
	require.NoError(t, err)
	require.True(t, result.Success)
	require.NotNil(t, result.Session)

	userID := identity.UserIDs["priya@example.com"]
	assert.Equal(t, userID, result.User.ID)
	assert.Equal(t, domain.DefaultDisplayName, result.User.DisplayName)
	assert.Contains(t, users.ByID, userID)

	// second sign-in keeps the existing profile
	users.ByID[userID].DisplayName = "Priya"
	result, err = svc.SignIn("priya@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "Priya", result.User.DisplayName)
}

func TestSignIn_Rejected(t *testing.T) {
	svc, _, _ := newAuthFixture()
	require.True(t, svc.SignUp("priya@example.com", "secret123").Success)

	result, err := svc.SignIn("priya@example.com", "wrong")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "invalid login credentials", result.Message)

	result, err = svc.SignIn("", "")
	require.NoError(t, err)
	assert.Equal(t, MsgCredentialsRequired, result.Message)
}

func TestSignIn_ProviderMessageUnwrapped(t *testing.T) {
	svc, identity, _ := newAuthFixture()
	identity.SignInErr = fmt.Errorf("sign in: %w", errors.New("Email not confirmed"))

	result, err := svc.SignIn("priya@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "Email not confirmed", result.Message)
}

func TestSignIn_ProfileStoreError(t *testing.T) {
	svc, _, users := newAuthFixture()
	require.True(t, svc.SignUp("priya@example.com", "secret123").Success)
	users.CreateFn = func(id uuid.UUID, email string) (*domain.User, error) {
		return nil, errors.New("db down")
	}

	result, err := svc.SignIn("priya@example.com", "secret123")
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestForgotPassword(t *testing.T) {
	svc, identity, _ := newAuthFixture()

	result := svc.ForgotPassword(" Priya@Example.com")
	assert.True(t, result.Success)
	assert.Equal(t, MsgResetSent, result.Message)
	assert.Equal(t, []string{"priya@example.com"}, identity.ResetRequests)

	assert.Equal(t, MsgEmailRequired, svc.ForgotPassword("").Message)

	identity.ResetErr = errors.New("rate limited")
	result = svc.ForgotPassword("priya@example.com")
	assert.False(t, result.Success)
	assert.Equal(t, MsgResetFailed, result.Message)
}

func TestUpdatePassword(t *testing.T) {
	svc, identity, _ := newAuthFixture()
	require.True(t, svc.SignUp("priya@example.com", "secret123").Success)
	signIn, err := svc.SignIn("priya@example.com", "secret123")
	require.NoError(t, err)
	token := signIn.Session.AccessToken

	tests := []struct {
		name     string
		password string
		confirm  string
		success  bool
		message  string
	}{
		{"missing confirm", "newpass", "", false, MsgPasswordConfirmRequired},
		{"mismatch", "newpass", "other", false, MsgPasswordMismatch},
		{"updated", "newpass", "newpass", true, MsgPasswordUpdated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := svc.UpdatePassword(token, tt.password, tt.confirm)
			assert.Equal(t, tt.success, result.Success)
			assert.Equal(t, tt.message, result.Message)
		})
	}
	assert.Equal(t, "newpass", identity.Accounts["priya@example.com"])

	result := svc.UpdatePassword("bogus", "x", "x")
	assert.False(t, result.Success)
	assert.Equal(t, MsgPasswordUpdateFailed, result.Message)
}

func TestSignOut(t *testing.T) {
	svc, identity, _ := newAuthFixture()

	require.NoError(t, svc.SignOut("token-1"))
	assert.Equal(t, []string{"token-1"}, identity.SignedOut)

	identity.SignOutErr = errors.New("session not found")
	assert.Error(t, svc.SignOut("token-2"))
}
