package handler

import (
	"github.com/dafibh/paydue/paydue-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// Handlers groups every HTTP handler mounted by RegisterRoutes
type Handlers struct {
	Auth      *AuthHandler
	Profile   *ProfileHandler
	Payable   *PayableHandler
	Payment   *PaymentHandler
	Month     *MonthHandler
	Dashboard *DashboardHandler
	Insight   *InsightHandler
	Chart     *ChartHandler
	Export    *ExportHandler
	WebSocket *WebSocketHandler
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, authLimiter *middleware.RateLimiter, h Handlers) {
	// WebSocket authenticates with ?token= since browsers cannot send headers on upgrade
	e.GET("/ws", h.WebSocket.HandleWS)

	api := e.Group("/api/v1")

	// Auth routes (rate limited; sign-out and update-password need a session)
	auth := api.Group("/auth")
	auth.Use(middleware.RateLimitMiddleware(authLimiter))
	auth.POST("/sign-up", h.Auth.SignUp)
	auth.POST("/sign-in", h.Auth.SignIn)
	auth.POST("/forgot-password", h.Auth.ForgotPassword)
	auth.POST("/sign-out", h.Auth.SignOut, authMiddleware.Authenticate())
	auth.POST("/update-password", h.Auth.UpdatePassword, authMiddleware.Authenticate())

	protected := api.Group("")
	protected.Use(authMiddleware.Authenticate())

	// Profile routes
	protected.GET("/profile", h.Profile.GetProfile)
	protected.PUT("/profile", h.Profile.UpdateProfile)
	protected.POST("/profile/photo", h.Profile.UploadPhoto)

	// Payable routes (static paths before /:id)
	payables := protected.Group("/payables")
	payables.GET("", h.Payable.GetPayables)
	payables.POST("", h.Payable.CreatePayable)
	payables.GET("/payees", h.Payable.GetPayees)
	payables.GET("/:id", h.Payable.GetPayable)
	payables.PUT("/:id", h.Payable.UpdatePayable)
	payables.POST("/:id/close", h.Payable.ClosePayable)
	payables.GET("/:id/payments", h.Payment.GetPaymentHistory)
	payables.GET("/:id/payment-defaults", h.Payment.GetPaymentDefaults)
	payables.POST("/:id/payments", h.Payment.RecordPayment)

	protected.GET("/payments/months", h.Month.GetAvailableMonths)

	// Month routes
	months := protected.Group("/months")
	months.GET("/current", h.Month.GetCurrent)
	months.GET("/upcoming", h.Month.GetUpcoming)
	months.GET("/:year/:month", h.Month.GetByYearMonth)

	// Dashboard routes
	protected.GET("/dashboard/summary", h.Dashboard.GetSummary)
	protected.GET("/dashboard/breakdown", h.Dashboard.GetBreakdown)
	protected.GET("/insights", h.Insight.GetInsights)

	// Chart routes
	charts := protected.Group("/charts")
	charts.GET("/payments-by-type", h.Chart.GetPaymentsByType)
	charts.GET("/remaining-by-type", h.Chart.GetRemainingByType)
	charts.GET("/extra-paid", h.Chart.GetExtraPaid)
	charts.GET("/total-debt", h.Chart.GetTotalDebt)

	protected.GET("/export/payments.xlsx", h.Export.ExportPayments)
}
