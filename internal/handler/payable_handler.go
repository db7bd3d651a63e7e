package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/dafibh/paydue/paydue-backend/internal/middleware"
	"github.com/dafibh/paydue/paydue-backend/internal/service"
	"github.com/dafibh/paydue/paydue-backend/internal/util"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// PayableHandler handles payable-related HTTP requests
type PayableHandler struct {
	payableService *service.PayableService
	now            func() time.Time
}

// NewPayableHandler creates a new PayableHandler
func NewPayableHandler(payableService *service.PayableService) *PayableHandler {
	return &PayableHandler{payableService: payableService, now: time.Now}
}

// PayableRequest is the body of create and update requests.
// Amounts are decimal strings; dates are YYYY-MM-DD.
type PayableRequest struct {
	Title            string  `json:"title"`
	Type             string  `json:"type"`
	TotalAmount      string  `json:"totalAmount"`
	RemainingAmount  *string `json:"remainingAmount,omitempty"`
	EmiAmount        string  `json:"emiAmount"`
	EmiDay           int     `json:"emiDay"`
	ExtraPay         string  `json:"extraPay"`
	InterestPerMonth string  `json:"interestPerMonth"`
	Payee            string  `json:"payee"`
	PaymentBank      string  `json:"paymentBank"`
	PayType          string  `json:"payType"`
	StartDate        *string `json:"startDate,omitempty"`
	EndDate          *string `json:"endDate,omitempty"`
}

// PayableResponse represents a payable in API responses
type PayableResponse struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Type             string           `json:"type"`
	TypeLabel        string           `json:"typeLabel"`
	TotalAmount      string           `json:"totalAmount"`
	RemainingAmount  string           `json:"remainingAmount"`
	EmiAmount        string           `json:"emiAmount"`
	EmiDay           int              `json:"emiDay"`
	ExtraPay         string           `json:"extraPay"`
	InterestPerMonth string           `json:"interestPerMonth"`
	Payee            string           `json:"payee"`
	PaymentBank      string           `json:"paymentBank"`
	PayType          string           `json:"payType"`
	StartDate        *string          `json:"startDate,omitempty"`
	EndDate          *string          `json:"endDate,omitempty"`
	IsClosed         bool             `json:"isClosed"`
	Status           string           `json:"status"`
	ClosedAt         *string          `json:"closedAt,omitempty"`
	NextDueDate      string           `json:"nextDueDate"`
	Formatted        PayableFormatted `json:"formatted"`
	CreatedAt        string           `json:"createdAt"`
	UpdatedAt        string           `json:"updatedAt"`
}

// PayableFormatted holds the INR display strings of a payable's amounts
type PayableFormatted struct {
	EmiAmount       string `json:"emiAmount"`
	RemainingAmount string `json:"remainingAmount"`
}

// PayableListResponse is one page of payables
type PayableListResponse struct {
	Items   []PayableResponse `json:"items"`
	Page    int               `json:"page"`
	HasMore bool              `json:"hasMore"`
}

// CreatePayable godoc
// @Summary Create payable
// @Description Create a recurring payable. Remaining defaults to the total amount.
// @Tags payables
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payable body PayableRequest true "Payable"
// @Success 201 {object} PayableResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /payables [post]
func (h *PayableHandler) CreatePayable(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req PayableRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, fieldErrors := req.toInput()
	if len(fieldErrors) > 0 {
		return NewValidationError(c, "Validation failed", fieldErrors)
	}

	payable, err := h.payableService.CreatePayable(userID, input)
	if err != nil {
		return h.payableError(c, err, userID, "create")
	}

	return c.JSON(http.StatusCreated, toPayableResponse(payable, h.now()))
}

// GetPayables godoc
// @Summary List payables
// @Description Page through the user's payables
// @Tags payables
// @Produce json
// @Security BearerAuth
// @Param payee query string false "Payee filter; all or empty for every payee"
// @Param sort query string false "emi_day or remaining_amount" default(emi_day)
// @Param page query int false "Page number" default(1)
// @Param includeClosed query bool false "Include closed payables"
// @Success 200 {object} PayableListResponse
// @Failure 401 {object} ProblemDetails
// @Router /payables [get]
func (h *PayableHandler) GetPayables(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	params := service.ListPayablesParams{
		Payee:         c.QueryParam("payee"),
		SortBy:        c.QueryParam("sort"),
		IncludeClosed: c.QueryParam("includeClosed") == "true",
	}
	if sort := params.SortBy; sort != "" && sort != domain.PayableSortEmiDay && sort != domain.PayableSortRemaining {
		return NewFieldError(c, "sort", "Must be 'emi_day' or 'remaining_amount'")
	}
	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return NewFieldError(c, "page", "Must be a positive integer")
		}
		params.Page = page
	}

	result, err := h.payableService.ListPayables(userID, params)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list payables")
		return NewInternalError(c, "Failed to list payables")
	}

	response := PayableListResponse{
		Items:   make([]PayableResponse, len(result.Items)),
		Page:    result.Page,
		HasMore: result.HasMore,
	}
	for i, p := range result.Items {
		response.Items[i] = toPayableResponse(p, h.now())
	}
	return c.JSON(http.StatusOK, response)
}

// GetPayees handles GET /api/v1/payables/payees
func (h *PayableHandler) GetPayees(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	payees, err := h.payableService.ListPayees(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list payees")
		return NewInternalError(c, "Failed to list payees")
	}
	if payees == nil {
		payees = []string{}
	}
	return c.JSON(http.StatusOK, payees)
}

// GetPayable handles GET /api/v1/payables/:id
func (h *PayableHandler) GetPayable(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, ok := paramUUID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid payable ID", nil)
	}

	payable, err := h.payableService.GetPayable(userID, id)
	if err != nil {
		return h.payableError(c, err, userID, "get")
	}
	return c.JSON(http.StatusOK, toPayableResponse(payable, h.now()))
}

// UpdatePayable handles PUT /api/v1/payables/:id
// An omitted remainingAmount keeps the stored balance
func (h *PayableHandler) UpdatePayable(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, ok := paramUUID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid payable ID", nil)
	}

	var req PayableRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, fieldErrors := req.toInput()
	if len(fieldErrors) > 0 {
		return NewValidationError(c, "Validation failed", fieldErrors)
	}

	payable, err := h.payableService.UpdatePayable(userID, id, input)
	if err != nil {
		return h.payableError(c, err, userID, "update")
	}
	return c.JSON(http.StatusOK, toPayableResponse(payable, h.now()))
}

// ClosePayable godoc
// @Summary Close payable
// @Description Mark a payable closed. Closing an already closed payable is a conflict.
// @Tags payables
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payable ID"
// @Success 200 {object} PayableResponse
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /payables/{id}/close [post]
func (h *PayableHandler) ClosePayable(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, ok := paramUUID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid payable ID", nil)
	}

	payable, err := h.payableService.ClosePayable(userID, id)
	if err != nil {
		return h.payableError(c, err, userID, "close")
	}
	return c.JSON(http.StatusOK, toPayableResponse(payable, h.now()))
}

// payableError maps service errors to problem details
func (h *PayableHandler) payableError(c echo.Context, err error, userID uuid.UUID, action string) error {
	if field, message, ok := payableFieldError(err); ok {
		return NewFieldError(c, field, message)
	}
	switch {
	case errors.Is(err, domain.ErrPayableNotFound):
		return NewNotFoundError(c, "Payable not found")
	case errors.Is(err, domain.ErrPayableAlreadyClosed):
		return NewConflictError(c, "Payable is already closed")
	}

	log.Error().Err(err).Str("user_id", userID.String()).Str("action", action).Msg("Payable request failed")
	return NewInternalError(c, "Failed to "+action+" payable")
}

func payableFieldError(err error) (field, message string, ok bool) {
	switch {
	case errors.Is(err, domain.ErrPayableTitleEmpty):
		return "title", "Title is required", true
	case errors.Is(err, domain.ErrPayableTitleTooLong):
		return "title", "Title must be 200 characters or less", true
	case errors.Is(err, domain.ErrPayableTypeRequired):
		return "type", "Type is required", true
	case errors.Is(err, domain.ErrPayableTypeInvalid):
		return "type", "Type must be one of: " + payableTypeChoices(), true
	case errors.Is(err, domain.ErrPayablePayTypeInvalid):
		return "payType", "Must be 'auto_debit' or 'manual'", true
	case errors.Is(err, domain.ErrPayableAmountInvalid):
		return "emiAmount", "Total and EMI amounts must be positive", true
	case errors.Is(err, domain.ErrPayableRemainingNegative):
		return "remainingAmount", "Remaining amount cannot be negative", true
	case errors.Is(err, domain.ErrPayableExtraNegative):
		return "extraPay", "Extra pay cannot be negative", true
	case errors.Is(err, domain.ErrPayableInterestNegative):
		return "interestPerMonth", "Interest cannot be negative", true
	case errors.Is(err, domain.ErrPayableEmiDayInvalid):
		return "emiDay", "EMI day must be between 1 and 31", true
	case errors.Is(err, domain.ErrPayableDateRangeInvalid):
		return "endDate", "End date cannot be before start date", true
	}
	return "", "", false
}

// payableTypeChoices lists every type as its form name and value, e.g. "Loan On Interest (loan)"
func payableTypeChoices() string {
	choices := make([]string, len(domain.PayableTypes))
	for i, t := range domain.PayableTypes {
		choices[i] = fmt.Sprintf("%s (%s)", t.FormLabel(), t)
	}
	return strings.Join(choices, ", ")
}

// toInput parses the request's strings, collecting one error per malformed field
func (r PayableRequest) toInput() (service.PayableInput, []ValidationError) {
	var fieldErrors []ValidationError
	amount := func(field, value string, required bool) decimal.Decimal {
		d, ok := parseAmount(value, required)
		if !ok {
			fieldErrors = append(fieldErrors, ValidationError{Field: field, Message: amountMessage})
		}
		return d
	}
	rate := func(field, value string) decimal.Decimal {
		d, ok := parseDecimal(value, false)
		if !ok {
			fieldErrors = append(fieldErrors, ValidationError{Field: field, Message: "Must be a valid decimal number"})
		}
		return d
	}
	date := func(field string, value *string) *time.Time {
		if value == nil || *value == "" {
			return nil
		}
		t, err := time.Parse(dateLayout, *value)
		if err != nil {
			fieldErrors = append(fieldErrors, ValidationError{Field: field, Message: "Must be in YYYY-MM-DD format"})
			return nil
		}
		return &t
	}

	input := service.PayableInput{
		Title:            r.Title,
		Type:             domain.PayableType(r.Type),
		TotalAmount:      amount("totalAmount", r.TotalAmount, true),
		EmiAmount:        amount("emiAmount", r.EmiAmount, true),
		EmiDay:           r.EmiDay,
		ExtraPay:         amount("extraPay", r.ExtraPay, false),
		InterestPerMonth: rate("interestPerMonth", r.InterestPerMonth),
		Payee:            r.Payee,
		PaymentBank:      r.PaymentBank,
		PayType:          domain.PayType(r.PayType),
		StartDate:        date("startDate", r.StartDate),
		EndDate:          date("endDate", r.EndDate),
	}
	if r.RemainingAmount != nil {
		remaining := amount("remainingAmount", *r.RemainingAmount, true)
		input.RemainingAmount = &remaining
	}
	return input, fieldErrors
}

func toPayableResponse(p *domain.Payable, now time.Time) PayableResponse {
	response := PayableResponse{
		ID:               p.ID.String(),
		Title:            p.Title,
		Type:             string(p.Type),
		TypeLabel:        p.Type.Label(),
		TotalAmount:      p.TotalAmount.StringFixed(0),
		RemainingAmount:  p.RemainingAmount.StringFixed(0),
		EmiAmount:        p.EmiAmount.StringFixed(0),
		EmiDay:           p.EmiDay,
		ExtraPay:         p.ExtraPay.StringFixed(0),
		InterestPerMonth: p.InterestPerMonth.String(),
		Payee:            p.Payee,
		PaymentBank:      p.PaymentBank,
		PayType:          string(p.PayType),
		StartDate:        formatOptionalDate(p.StartDate),
		EndDate:          formatOptionalDate(p.EndDate),
		IsClosed:         p.IsClosed,
		Status:           p.Status,
		NextDueDate:      formatDate(p.NextDueDate(now)),
		CreatedAt:        formatTimestamp(p.CreatedAt),
		UpdatedAt:        formatTimestamp(p.UpdatedAt),
	}
	if p.ClosedAt != nil {
		closedAt := formatTimestamp(*p.ClosedAt)
		response.ClosedAt = &closedAt
	}
	response.Formatted = PayableFormatted{
		EmiAmount:       util.FormatINR(p.EmiAmount),
		RemainingAmount: util.FormatINR(p.RemainingAmount),
	}
	return response
}
