package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/dafibh/paydue/paydue-backend/internal/middleware"
	"github.com/dafibh/paydue/paydue-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// MonthHandler serves the grouped month and upcoming views
type MonthHandler struct {
	dashboardService *service.DashboardService
}

// NewMonthHandler creates a new MonthHandler
func NewMonthHandler(dashboardService *service.DashboardService) *MonthHandler {
	return &MonthHandler{dashboardService: dashboardService}
}

// DueItemResponse is a payable placed on its due date
type DueItemResponse struct {
	PayableID       string `json:"payableId"`
	Title           string `json:"title"`
	Type            string `json:"type"`
	TypeLabel       string `json:"typeLabel"`
	Payee           string `json:"payee"`
	PayType         string `json:"payType"`
	EmiAmount       Money  `json:"emiAmount"`
	RemainingAmount Money  `json:"remainingAmount"`
	DueDate         string `json:"dueDate"`
	Paid            bool   `json:"paid"`
}

// DueGroupResponse collects the payables due on one day
type DueGroupResponse struct {
	Day     int               `json:"day"`
	DueDate string            `json:"dueDate"`
	Label   string            `json:"label"`
	Total   Money             `json:"total"`
	Items   []DueItemResponse `json:"items"`
}

// TotalsResponse are the headline figures of a grouped view
type TotalsResponse struct {
	TotalPayable  Money `json:"totalPayable"`
	TotalPaid     Money `json:"totalPaid"`
	TotalYetToPay Money `json:"totalYetToPay"`
	TotalBills    Money `json:"totalBills"`
	TotalDebt     Money `json:"totalDebt"`
	PayableCount  int   `json:"payableCount"`
	UnpaidCount   int   `json:"unpaidCount"`
}

// MonthViewResponse is everything due in one month grouped by EMI day
type MonthViewResponse struct {
	Year   int                `json:"year"`
	Month  int                `json:"month"`
	Payee  string             `json:"payee,omitempty"`
	Groups []DueGroupResponse `json:"groups"`
	Totals TotalsResponse     `json:"totals"`
}

// UpcomingResponse is what falls due from today within the horizon
type UpcomingResponse struct {
	From             string             `json:"from"`
	To               string             `json:"to"`
	Groups           []DueGroupResponse `json:"groups"`
	Totals           TotalsResponse     `json:"totals"`
	NextDue          *DueGroupResponse  `json:"nextDue,omitempty"`
	DaysUntilNextDue int                `json:"daysUntilNextDue"`
}

// GetByYearMonth godoc
// @Summary Month view
// @Description Payables due in the month grouped by EMI day, with paid flags and totals
// @Tags months
// @Produce json
// @Security BearerAuth
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Param payee query string false "Payee filter"
// @Success 200 {object} MonthViewResponse
// @Failure 400 {object} ProblemDetails
// @Router /months/{year}/{month} [get]
func (h *MonthHandler) GetByYearMonth(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 2000 || year > 2100 {
		return NewFieldError(c, "year", "Must be a valid year (2000-2100)")
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		return NewFieldError(c, "month", "Must be between 1 and 12")
	}

	view, err := h.dashboardService.GetMonthView(c.Request().Context(), userID, year, time.Month(month), c.QueryParam("payee"))
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Int("year", year).Int("month", month).Msg("Failed to get month view")
		return NewInternalError(c, "Failed to get month view")
	}

	return c.JSON(http.StatusOK, toMonthViewResponse(view))
}

// GetCurrent handles GET /api/v1/months/current
func (h *MonthHandler) GetCurrent(c echo.Context) error {
	now := time.Now().UTC()
	c.SetParamNames("year", "month")
	c.SetParamValues(strconv.Itoa(now.Year()), strconv.Itoa(int(now.Month())))
	return h.GetByYearMonth(c)
}

// GetUpcoming handles GET /api/v1/months/upcoming
func (h *MonthHandler) GetUpcoming(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	view, err := h.dashboardService.GetUpcoming(c.Request().Context(), userID, c.QueryParam("payee"))
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get upcoming payables")
		return NewInternalError(c, "Failed to get upcoming payables")
	}

	return c.JSON(http.StatusOK, toUpcomingResponse(view))
}

// GetAvailableMonths handles GET /api/v1/payments/months
// Returns YYYY-MM keys with payments plus the current month, newest first
func (h *MonthHandler) GetAvailableMonths(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	months, err := h.dashboardService.GetAvailableMonths(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get payment months")
		return NewInternalError(c, "Failed to get payment months")
	}

	return c.JSON(http.StatusOK, months)
}

func toMonthViewResponse(view *domain.MonthView) MonthViewResponse {
	return MonthViewResponse{
		Year:   view.Year,
		Month:  int(view.Month),
		Payee:  view.Payee,
		Groups: toGroupResponses(view.Groups),
		Totals: toTotalsResponse(view.Totals),
	}
}

func toUpcomingResponse(view *domain.UpcomingView) UpcomingResponse {
	response := UpcomingResponse{
		From:             formatDate(view.From),
		To:               formatDate(view.To),
		Groups:           toGroupResponses(view.Groups),
		Totals:           toTotalsResponse(view.Totals),
		DaysUntilNextDue: view.DaysUntilNextDue,
	}
	if len(response.Groups) > 0 {
		response.NextDue = &response.Groups[0]
	}
	return response
}

func toGroupResponses(groups []domain.DueGroup) []DueGroupResponse {
	response := make([]DueGroupResponse, len(groups))
	for i, g := range groups {
		items := make([]DueItemResponse, len(g.Items))
		for j, item := range g.Items {
			p := item.Payable
			items[j] = DueItemResponse{
				PayableID:       p.ID.String(),
				Title:           p.Title,
				Type:            string(p.Type),
				TypeLabel:       p.Type.Label(),
				Payee:           p.Payee,
				PayType:         string(p.PayType),
				EmiAmount:       toMoney(p.EmiAmount),
				RemainingAmount: toMoney(p.RemainingAmount),
				DueDate:         formatDate(item.DueDate),
				Paid:            item.Paid,
			}
		}
		response[i] = DueGroupResponse{
			Day:     g.Day,
			DueDate: formatDate(g.DueDate),
			Label:   g.Label,
			Total:   toMoney(g.Total),
			Items:   items,
		}
	}
	return response
}

func toTotalsResponse(t domain.MonthTotals) TotalsResponse {
	return TotalsResponse{
		TotalPayable:  toMoney(t.TotalPayable),
		TotalPaid:     toMoney(t.TotalPaid),
		TotalYetToPay: toMoney(t.TotalYetToPay),
		TotalBills:    toMoney(t.TotalBills),
		TotalDebt:     toMoney(t.TotalDebt),
		PayableCount:  t.PayableCount,
		UnpaidCount:   t.UnpaidCount,
	}
}
