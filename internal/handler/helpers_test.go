package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/dafibh/paydue/paydue-backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// setupAuthContext fills the request context the way the auth middleware does
func setupAuthContext(c echo.Context, userID uuid.UUID, email string) {
	claims := &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{Subject: userID.String()},
		CustomClaims:     &middleware.CustomClaims{Email: email, Role: "authenticated"},
	}
	ctx := context.WithValue(c.Request().Context(), middleware.ClaimsKey, claims)
	ctx = context.WithValue(ctx, middleware.UserIDKey, userID)
	ctx = context.WithValue(ctx, middleware.AccessTokenKey, "token-"+userID.String())
	c.SetRequest(c.Request().WithContext(ctx))
}

// newContext builds an echo context for method and target; body is sent as JSON when non-empty
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func setParams(c echo.Context, names []string, values ...string) {
	c.SetParamNames(names...)
	c.SetParamValues(values...)
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func jsonUnmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func fieldNames(problem ProblemDetails) []string {
	names := make([]string, len(problem.Errors))
	for i, e := range problem.Errors {
		names[i] = e.Field
	}
	return names
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
