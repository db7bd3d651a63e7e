package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/dafibh/paydue/paydue-backend/internal/middleware"
	"github.com/dafibh/paydue/paydue-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// PaymentHandler handles recording payments and reading a payable's history
type PaymentHandler struct {
	paymentService *service.PaymentService
	payableService *service.PayableService
	now            func() time.Time
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *service.PaymentService, payableService *service.PayableService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, payableService: payableService, now: time.Now}
}

// RecordPaymentRequest is the mark-as-paid form
type RecordPaymentRequest struct {
	AmountPaid      string `json:"amountPaid"`
	RemainingAmount string `json:"remainingAmount"`
	ExtraAmount     string `json:"extraAmount"`
	Month           string `json:"month,omitempty"` // YYYY-MM, defaults to the current month
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID              string `json:"id"`
	PayableID       string `json:"payableId"`
	PayableTitle    string `json:"payableTitle,omitempty"`
	PayableType     string `json:"payableType,omitempty"`
	AmountPaid      string `json:"amountPaid"`
	ExtraAmount     string `json:"extraAmount"`
	RemainingAmount string `json:"remainingAmount"`
	PaymentDate     string `json:"paymentDate"`
	CreatedAt       string `json:"createdAt"`
}

// RecordPaymentResponse carries the stored payment and the refreshed payable
type RecordPaymentResponse struct {
	Payment PaymentResponse `json:"payment"`
	Payable PayableResponse `json:"payable"`
}

// PaymentDefaultsResponse pre-fills the mark-as-paid form
type PaymentDefaultsResponse struct {
	AmountPaid      string `json:"amountPaid"`
	RemainingAmount string `json:"remainingAmount"`
	ExtraAmount     string `json:"extraAmount"`
}

// HistoryPointResponse is one point of a payable's payment history chart
type HistoryPointResponse struct {
	Label           string `json:"label"`
	Date            string `json:"date"`
	AmountPaid      string `json:"amountPaid"`
	ExtraAmount     string `json:"extraAmount"`
	RemainingAmount string `json:"remainingAmount"`
}

// PaymentHistoryResponse is a payable with every payment recorded against it
type PaymentHistoryResponse struct {
	Payable  PayableResponse        `json:"payable"`
	Payments []PaymentResponse      `json:"payments"`
	Points   []HistoryPointResponse `json:"points"`
}

// GetPaymentDefaults handles GET /api/v1/payables/:id/payment-defaults
func (h *PaymentHandler) GetPaymentDefaults(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, ok := paramUUID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid payable ID", nil)
	}

	defaults, err := h.paymentService.PaymentDefaults(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrPayableNotFound) {
			return NewNotFoundError(c, "Payable not found")
		}
		log.Error().Err(err).Str("payable_id", id.String()).Msg("Failed to get payment defaults")
		return NewInternalError(c, "Failed to get payment defaults")
	}

	return c.JSON(http.StatusOK, PaymentDefaultsResponse{
		AmountPaid:      defaults.AmountPaid.StringFixed(0),
		RemainingAmount: defaults.RemainingAmount.StringFixed(0),
		ExtraAmount:     defaults.ExtraAmount.StringFixed(0),
	})
}

// RecordPayment godoc
// @Summary Record payment
// @Description Store a payment and refresh the payable's EMI, remaining and extra amounts.
// @Description Not idempotent: every call stores a new payment.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payable ID"
// @Param payment body RecordPaymentRequest true "Payment"
// @Success 201 {object} RecordPaymentResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /payables/{id}/payments [post]
func (h *PaymentHandler) RecordPayment(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, ok := paramUUID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid payable ID", nil)
	}

	var req RecordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var fieldErrors []ValidationError
	amountPaid, ok := parseAmount(req.AmountPaid, true)
	if !ok {
		fieldErrors = append(fieldErrors, ValidationError{Field: "amountPaid", Message: amountMessage})
	}
	remaining, ok := parseAmount(req.RemainingAmount, true)
	if !ok {
		fieldErrors = append(fieldErrors, ValidationError{Field: "remainingAmount", Message: amountMessage})
	}
	extra, ok := parseAmount(req.ExtraAmount, false)
	if !ok {
		fieldErrors = append(fieldErrors, ValidationError{Field: "extraAmount", Message: amountMessage})
	}
	if len(fieldErrors) > 0 {
		return NewValidationError(c, "Validation failed", fieldErrors)
	}

	result, err := h.paymentService.RecordPayment(userID, id, domain.RecordPaymentInput{
		AmountPaid:      amountPaid,
		RemainingAmount: remaining,
		ExtraAmount:     extra,
		Month:           req.Month,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPaymentAmountInvalid):
			return NewFieldError(c, "amountPaid", "Amount paid must be positive")
		case errors.Is(err, domain.ErrPaymentRemainingNegative):
			return NewFieldError(c, "remainingAmount", "Remaining amount cannot be negative")
		case errors.Is(err, domain.ErrPaymentExtraNegative):
			return NewFieldError(c, "extraAmount", "Extra amount cannot be negative")
		case errors.Is(err, domain.ErrPaymentMonthInvalid):
			return NewFieldError(c, "month", "Must be in YYYY-MM format")
		case errors.Is(err, domain.ErrPayableNotFound):
			return NewNotFoundError(c, "Payable not found")
		case errors.Is(err, domain.ErrPaymentPayableClosed):
			return NewConflictError(c, "Payable is closed")
		case errors.Is(err, domain.ErrPaymentPartiallyRecorded):
			return NewInternalError(c, "Payment recorded but payable update failed")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("payable_id", id.String()).Msg("Failed to record payment")
		return NewInternalError(c, "Failed to record payment")
	}

	return c.JSON(http.StatusCreated, RecordPaymentResponse{
		Payment: toPaymentResponse(result.Payment),
		Payable: toPayableResponse(result.Payable, h.now()),
	})
}

// GetPaymentHistory handles GET /api/v1/payables/:id/payments
func (h *PaymentHandler) GetPaymentHistory(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, ok := paramUUID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid payable ID", nil)
	}

	history, err := h.payableService.GetPaymentHistory(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrPayableNotFound) {
			return NewNotFoundError(c, "Payable not found")
		}
		log.Error().Err(err).Str("payable_id", id.String()).Msg("Failed to get payment history")
		return NewInternalError(c, "Failed to get payment history")
	}

	response := PaymentHistoryResponse{
		Payable:  toPayableResponse(history.Payable, h.now()),
		Payments: make([]PaymentResponse, len(history.Payments)),
		Points:   make([]HistoryPointResponse, len(history.Points)),
	}
	for i, p := range history.Payments {
		response.Payments[i] = toPaymentResponse(p)
	}
	for i, p := range history.Points {
		response.Points[i] = HistoryPointResponse{
			Label:           p.Label,
			Date:            formatDate(p.Date),
			AmountPaid:      p.AmountPaid.StringFixed(0),
			ExtraAmount:     p.ExtraAmount.StringFixed(0),
			RemainingAmount: p.RemainingAmount.StringFixed(0),
		}
	}
	return c.JSON(http.StatusOK, response)
}

func toPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:              p.ID.String(),
		PayableID:       p.PayableID.String(),
		PayableTitle:    p.PayableTitle,
		PayableType:     string(p.PayableType),
		AmountPaid:      p.AmountPaid.StringFixed(0),
		ExtraAmount:     p.ExtraAmount.StringFixed(0),
		RemainingAmount: p.RemainingAmount.StringFixed(0),
		PaymentDate:     formatDate(p.PaymentDate),
		CreatedAt:       formatTimestamp(p.CreatedAt),
	}
}
