package handler

import (
	"net/http"

	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/dafibh/paydue/paydue-backend/internal/middleware"
	"github.com/dafibh/paydue/paydue-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// BreakdownEntryResponse is one bucket of a breakdown
type BreakdownEntryResponse struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Amount  Money  `json:"amount"`
	Count   int    `json:"count"`
	Percent string `json:"percent"`
}

// BreakdownResponse lists buckets by amount descending, or chronologically for months
type BreakdownResponse struct {
	Entries []BreakdownEntryResponse `json:"entries"`
	Total   Money                    `json:"total"`
}

// DashboardSummaryResponse is the home screen payload
type DashboardSummaryResponse struct {
	Month     MonthViewResponse `json:"month"`
	Upcoming  UpcomingResponse  `json:"upcoming"`
	ByType    BreakdownResponse `json:"byType"`
	OpenCount int               `json:"openCount"`
}

// GetSummary godoc
// @Summary Dashboard summary
// @Description Current month totals, upcoming dues and the installment split by type
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DashboardSummaryResponse
// @Failure 401 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	summary, err := h.dashboardService.GetSummary(c.Request().Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get dashboard summary")
		return NewInternalError(c, "Failed to get dashboard summary")
	}

	return c.JSON(http.StatusOK, DashboardSummaryResponse{
		Month:     toMonthViewResponse(&summary.Month),
		Upcoming:  toUpcomingResponse(&summary.Upcoming),
		ByType:    toBreakdownResponse(summary.ByType),
		OpenCount: summary.OpenCount,
	})
}

// GetBreakdown handles GET /api/v1/dashboard/breakdown?by=type|payee|month
func (h *DashboardHandler) GetBreakdown(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	by := c.QueryParam("by")
	switch by {
	case "":
		by = service.BreakdownByType
	case service.BreakdownByType, service.BreakdownByPayee, service.BreakdownByMonth:
	default:
		return NewFieldError(c, "by", "Must be 'type', 'payee' or 'month'")
	}

	breakdown, err := h.dashboardService.GetBreakdown(userID, by)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Str("by", by).Msg("Failed to get breakdown")
		return NewInternalError(c, "Failed to get breakdown")
	}

	return c.JSON(http.StatusOK, toBreakdownResponse(*breakdown))
}

func toBreakdownResponse(b domain.Breakdown) BreakdownResponse {
	hundred := decimal.NewFromInt(100)
	entries := make([]BreakdownEntryResponse, len(b.Sorted))
	for i, e := range b.Sorted {
		percent := decimal.Zero
		if b.Total.IsPositive() {
			percent = e.Amount.Mul(hundred).Div(b.Total)
		}
		entries[i] = BreakdownEntryResponse{
			Key:     e.Key,
			Label:   e.Label,
			Amount:  toMoney(e.Amount),
			Count:   e.Count,
			Percent: percent.StringFixed(1),
		}
	}
	return BreakdownResponse{Entries: entries, Total: toMoney(b.Total)}
}
