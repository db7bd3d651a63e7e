package handler

import (
	"net/http"
	"time"

	"github.com/dafibh/paydue/paydue-backend/internal/util"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation         = "https://paydue.app/errors/validation"
	ErrorTypeNotFound           = "https://paydue.app/errors/not-found"
	ErrorTypeUnauthorized       = "https://paydue.app/errors/unauthorized"
	ErrorTypeConflict           = "https://paydue.app/errors/conflict"
	ErrorTypeServiceUnavailable = "https://paydue.app/errors/service-unavailable"
	ErrorTypeInternal           = "https://paydue.app/errors/internal"
)

const dateLayout = "2006-01-02"

func problem(c echo.Context, status int, errorType, title, detail string, errors []ValidationError) error {
	return c.JSON(status, ProblemDetails{
		Type:     errorType,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return problem(c, http.StatusBadRequest, ErrorTypeValidation, "Validation Error", detail, errors)
}

// NewFieldError is a validation error for a single field
func NewFieldError(c echo.Context, field, message string) error {
	return NewValidationError(c, "Validation failed", []ValidationError{{Field: field, Message: message}})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return problem(c, http.StatusNotFound, ErrorTypeNotFound, "Not Found", detail, nil)
}

// NewUnauthorizedError creates an unauthorized error response
func NewUnauthorizedError(c echo.Context, detail string) error {
	return problem(c, http.StatusUnauthorized, ErrorTypeUnauthorized, "Unauthorized", detail, nil)
}

// NewConflictError creates a conflict error response
func NewConflictError(c echo.Context, detail string) error {
	return problem(c, http.StatusConflict, ErrorTypeConflict, "Conflict", detail, nil)
}

// NewServiceUnavailableError is returned when an optional backend is not configured
func NewServiceUnavailableError(c echo.Context, detail string) error {
	return problem(c, http.StatusServiceUnavailable, ErrorTypeServiceUnavailable, "Service Unavailable", detail, nil)
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return problem(c, http.StatusInternalServerError, ErrorTypeInternal, "Internal Server Error", detail, nil)
}

// Money is an amount in whole rupees with its display form
type Money struct {
	Amount    string `json:"amount"`
	Formatted string `json:"formatted"`
}

func toMoney(d decimal.Decimal) Money {
	return Money{Amount: d.StringFixed(0), Formatted: util.FormatINR(d)}
}

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDate(*t)
	return &s
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// paramUUID parses a uuid path parameter
func paramUUID(c echo.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// amountMessage is the field error for a malformed amount
const amountMessage = "Must be a whole number of rupees"

// parseDecimal parses a decimal form value; empty is zero unless required
func parseDecimal(value string, required bool) (decimal.Decimal, bool) {
	if value == "" {
		return decimal.Zero, !required
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// parseAmount parses a money form value. Amounts are whole rupees.
func parseAmount(value string, required bool) (decimal.Decimal, bool) {
	d, ok := parseDecimal(value, required)
	if !ok || !d.Equal(d.Truncate(0)) {
		return decimal.Zero, false
	}
	return d, true
}
