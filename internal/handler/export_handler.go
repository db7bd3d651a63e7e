package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/dafibh/paydue/paydue-backend/internal/middleware"
	"github.com/dafibh/paydue/paydue-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ExportHandler streams the spreadsheet export
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportPayments godoc
// @Summary Export payables and payments
// @Description Download an xlsx workbook with a Payables sheet and a Payments sheet
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 401 {object} ProblemDetails
// @Router /export/payments.xlsx [get]
func (h *ExportHandler) ExportPayments(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	// buffered so a failure can still be reported as problem details
	var buf bytes.Buffer
	if err := h.exportService.WriteWorkbook(userID, &buf); err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to export workbook")
		return NewInternalError(c, "Failed to export payments")
	}

	filename := fmt.Sprintf("paydue-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, service.XLSXContentType, buf.Bytes())
}
