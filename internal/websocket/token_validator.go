package websocket

import (
	"context"
	"errors"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned when JWT validation fails
var ErrInvalidToken = errors.New("invalid token")

// TokenValidator resolves a bearer token into the user it was issued to
type TokenValidator interface {
	ValidateToken(token string) (uuid.UUID, error)
}

// claimsValidator is the subset of *validator.Validator used here
type claimsValidator interface {
	ValidateToken(ctx context.Context, token string) (interface{}, error)
}

// JWTValidator validates access tokens passed on the WebSocket query string
type JWTValidator struct {
	validator claimsValidator
}

// NewJWTValidator wraps the same validator the HTTP middleware uses
func NewJWTValidator(v claimsValidator) *JWTValidator {
	return &JWTValidator{validator: v}
}

// ValidateToken validates a JWT and returns the subject as a user ID
func (v *JWTValidator) ValidateToken(token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, ErrInvalidToken
	}

	claims, err := v.validator.ValidateToken(context.Background(), token)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	validated, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(validated.RegisteredClaims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}
