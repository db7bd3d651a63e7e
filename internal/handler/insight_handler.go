package handler

import (
	"net/http"

	"github.com/dafibh/paydue/paydue-backend/internal/aggregate"
	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/dafibh/paydue/paydue-backend/internal/middleware"
	"github.com/dafibh/paydue/paydue-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// InsightHandler serves the strategic rankings
type InsightHandler struct {
	insightService *service.InsightService
}

// NewInsightHandler creates a new InsightHandler
func NewInsightHandler(insightService *service.InsightService) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

// RankedPayableResponse is one row of a ranking. Metric is the value the row was ranked by.
type RankedPayableResponse struct {
	PayableID       string `json:"payableId"`
	Title           string `json:"title"`
	Type            string `json:"type"`
	Payee           string `json:"payee"`
	EmiAmount       Money  `json:"emiAmount"`
	RemainingAmount Money  `json:"remainingAmount"`
	ExtraPay        Money  `json:"extraPay"`
	Metric          string `json:"metric"`
}

// ClosingSoonResponse is a payable whose end date is near
type ClosingSoonResponse struct {
	PayableID       string `json:"payableId"`
	Title           string `json:"title"`
	EndDate         string `json:"endDate"`
	EmiAmount       Money  `json:"emiAmount"`
	RemainingAmount Money  `json:"remainingAmount"`
}

// InsightsResponse holds every ranking
type InsightsResponse struct {
	TopExtraPay       []RankedPayableResponse `json:"topExtraPay"`
	TotalExtraPay     Money                   `json:"totalExtraPay"`
	TopInterest       []RankedPayableResponse `json:"topInterest"`
	TopEmi            []RankedPayableResponse `json:"topEmi"`
	StrategicClosures []RankedPayableResponse `json:"strategicClosures"`
	ClosureRemaining  Money                   `json:"closureRemaining"`
	ClosureEmi        Money                   `json:"closureEmi"`
	ClosingSoon       []ClosingSoonResponse   `json:"closingSoon"`
}

// GetInsights godoc
// @Summary Strategic insights
// @Description Top 10 open payables by extra pay, yearly interest, EMI and closure impact, plus payables ending within three months
// @Tags insights
// @Produce json
// @Security BearerAuth
// @Success 200 {object} InsightsResponse
// @Failure 401 {object} ProblemDetails
// @Router /insights [get]
func (h *InsightHandler) GetInsights(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	report, err := h.insightService.GetInsights(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get insights")
		return NewInternalError(c, "Failed to get insights")
	}

	// interest is stored per month and shown per year
	interest := toRankedResponses(report.TopInterest, 0)
	for i, r := range report.TopInterest {
		interest[i].Metric = aggregate.AnnualizedInterest(r.Metric).StringFixed(2)
	}

	closingSoon := make([]ClosingSoonResponse, len(report.ClosingSoon))
	for i, p := range report.ClosingSoon {
		closingSoon[i] = ClosingSoonResponse{
			PayableID:       p.ID.String(),
			Title:           p.Title,
			EndDate:         formatDate(*p.EndDate),
			EmiAmount:       toMoney(p.EmiAmount),
			RemainingAmount: toMoney(p.RemainingAmount),
		}
	}

	return c.JSON(http.StatusOK, InsightsResponse{
		TopExtraPay:       toRankedResponses(report.TopExtraPay, 0),
		TotalExtraPay:     toMoney(report.TotalExtraPay),
		TopInterest:       interest,
		TopEmi:            toRankedResponses(report.TopEmi, 0),
		StrategicClosures: toRankedResponses(report.StrategicClosures, 4),
		ClosureRemaining:  toMoney(report.ClosureRemaining),
		ClosureEmi:        toMoney(report.ClosureEmi),
		ClosingSoon:       closingSoon,
	})
}

func toRankedResponses(ranked []domain.RankedPayable, places int32) []RankedPayableResponse {
	response := make([]RankedPayableResponse, len(ranked))
	for i, r := range ranked {
		p := r.Payable
		response[i] = RankedPayableResponse{
			PayableID:       p.ID.String(),
			Title:           p.Title,
			Type:            string(p.Type),
			Payee:           p.Payee,
			EmiAmount:       toMoney(p.EmiAmount),
			RemainingAmount: toMoney(p.RemainingAmount),
			ExtraPay:        toMoney(p.ExtraPay),
			Metric:          r.Metric.StringFixed(places),
		}
	}
	return response
}
