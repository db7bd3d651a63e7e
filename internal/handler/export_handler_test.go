package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/dafibh/paydue/paydue-backend/internal/service"
	"github.com/dafibh/paydue/paydue-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportPayments(t *testing.T) {
	payables := testutil.NewMockPayableRepository()
	payments := testutil.NewMockPaymentRepository(payables)
	userID := uuid.New()

	phone := seedPayable(payables, userID, "Phone EMI", domain.PayableTypeEMI, 15, 5000, 45000, "HDFC")
	seedPayable(payables, userID, "Electricity", domain.PayableTypeBill, 5, 1200, 0, "BESCOM")
	seedPayable(payables, uuid.New(), "Someone else", domain.PayableTypeRent, 1, 20000, 0, "")
	payments.AddPayment(&domain.Payment{
		UserID:          userID,
		PayableID:       phone.ID,
		PayableTitle:    phone.Title,
		PayableType:     phone.Type,
		PayablePayee:    phone.Payee,
		AmountPaid:      phone.EmiAmount,
		RemainingAmount: phone.RemainingAmount,
		PaymentDate:     date(2025, 5, 15),
	})

	h := NewExportHandler(service.NewExportService(payables, payments))
	c, rec := newContext(http.MethodGet, "/api/v1/export/payments.xlsx", "")
	setupAuthContext(c, userID, "")

	require.NoError(t, h.ExportPayments(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.XLSXContentType, rec.Header().Get(echo.HeaderContentType))
	assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderContentDisposition), `attachment; filename="paydue-`))

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	payableRows, err := f.GetRows(service.SheetPayables)
	require.NoError(t, err)
	require.Len(t, payableRows, 3, "header plus the user's two payables")
	assert.Equal(t, "Title", payableRows[0][0])

	paymentRows, err := f.GetRows(service.SheetPayments)
	require.NoError(t, err)
	require.Len(t, paymentRows, 2)
	assert.Equal(t, []string{"2025-05-15", "Phone EMI", "EMI", "HDFC"}, paymentRows[1][:4])
}

func TestExportPayments_RepositoryFailure(t *testing.T) {
	payables := testutil.NewMockPayableRepository()
	payables.GetAllByUserFn = func(userID uuid.UUID) ([]*domain.Payable, error) {
		return nil, errors.New("connection reset")
	}

	h := NewExportHandler(service.NewExportService(payables, testutil.NewMockPaymentRepository(payables)))
	c, rec := newContext(http.MethodGet, "/api/v1/export/payments.xlsx", "")
	setupAuthContext(c, uuid.New(), "")

	require.NoError(t, h.ExportPayments(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Header().Get(echo.HeaderContentDisposition))
}
