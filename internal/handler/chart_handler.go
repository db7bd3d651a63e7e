package handler

import (
	"net/http"

	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/dafibh/paydue/paydue-backend/internal/middleware"
	"github.com/dafibh/paydue/paydue-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ChartHandler serves the six-month trend charts
type ChartHandler struct {
	chartService *service.ChartService
}

// NewChartHandler creates a new ChartHandler
func NewChartHandler(chartService *service.ChartService) *ChartHandler {
	return &ChartHandler{chartService: chartService}
}

// ChartSeriesResponse is one series; values align with the chart's months
type ChartSeriesResponse struct {
	Key    string   `json:"key"`
	Label  string   `json:"label"`
	Values []string `json:"values"`
	Total  Money    `json:"total"`
}

// ChartResponse is a set of monthly series
type ChartResponse struct {
	Months []string              `json:"months"`
	Series []ChartSeriesResponse `json:"series"`
}

// SplitResponse compares installments with extra payments in the current month
type SplitResponse struct {
	Month     string `json:"month"`
	Principal Money  `json:"principal"`
	Extra     Money  `json:"extra"`
}

// ExtraPaidResponse is the extra paid chart with the current month split
type ExtraPaidResponse struct {
	Chart        ChartResponse `json:"chart"`
	CurrentSplit SplitResponse `json:"currentSplit"`
}

// GetPaymentsByType handles GET /api/v1/charts/payments-by-type
func (h *ChartHandler) GetPaymentsByType(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	chart, err := h.chartService.PaymentsByType(userID)
	if err != nil {
		return chartError(c, err, userID, "payments-by-type")
	}
	return c.JSON(http.StatusOK, toChartResponse(chart))
}

// GetRemainingByType handles GET /api/v1/charts/remaining-by-type
func (h *ChartHandler) GetRemainingByType(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	chart, err := h.chartService.RemainingByType(userID)
	if err != nil {
		return chartError(c, err, userID, "remaining-by-type")
	}
	return c.JSON(http.StatusOK, toChartResponse(chart))
}

// GetExtraPaid handles GET /api/v1/charts/extra-paid?payee=
func (h *ChartHandler) GetExtraPaid(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	report, err := h.chartService.ExtraPaid(userID, c.QueryParam("payee"))
	if err != nil {
		return chartError(c, err, userID, "extra-paid")
	}
	return c.JSON(http.StatusOK, ExtraPaidResponse{
		Chart: toChartResponse(&report.Chart),
		CurrentSplit: SplitResponse{
			Month:     report.CurrentSplit.Month,
			Principal: toMoney(report.CurrentSplit.Principal),
			Extra:     toMoney(report.CurrentSplit.Extra),
		},
	})
}

// GetTotalDebt handles GET /api/v1/charts/total-debt?payee=
func (h *ChartHandler) GetTotalDebt(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	chart, err := h.chartService.TotalDebt(userID, c.QueryParam("payee"))
	if err != nil {
		return chartError(c, err, userID, "total-debt")
	}
	return c.JSON(http.StatusOK, toChartResponse(chart))
}

func chartError(c echo.Context, err error, userID uuid.UUID, chart string) error {
	log.Error().Err(err).Str("user_id", userID.String()).Str("chart", chart).Msg("Failed to build chart")
	return NewInternalError(c, "Failed to build chart")
}

func toChartResponse(chart *domain.MonthlyChart) ChartResponse {
	series := make([]ChartSeriesResponse, len(chart.Series))
	for i, s := range chart.Series {
		values := make([]string, len(s.Values))
		for j, v := range s.Values {
			values[j] = v.StringFixed(0)
		}
		series[i] = ChartSeriesResponse{
			Key:    s.Key,
			Label:  s.Label,
			Values: values,
			Total:  toMoney(s.Total),
		}
	}
	return ChartResponse{Months: chart.Months, Series: series}
}
