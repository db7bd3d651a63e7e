package service

import (
	"fmt"
	"io"

	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names
const (
	SheetPayables = "Payables"
	SheetPayments = "Payments"
)

// XLSXContentType is the MIME type of the exported workbook
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const exportDateLayout = "2006-01-02"

var (
	payableHeaders = []string{"Title", "Type", "Payee", "Payment Bank", "Pay Type", "EMI Day", "EMI Amount", "Remaining", "Total", "Extra Pay", "Interest / Month", "Status"}
	paymentHeaders = []string{"Payment Date", "Payable", "Type", "Payee", "Amount Paid", "Extra", "Remaining After"}
)

// ExportService writes the user's payables and payments as an xlsx workbook
type ExportService struct {
	payableRepo domain.PayableRepository
	paymentRepo domain.PaymentRepository
}

// NewExportService creates a new ExportService
func NewExportService(payableRepo domain.PayableRepository, paymentRepo domain.PaymentRepository) *ExportService {
	return &ExportService{payableRepo: payableRepo, paymentRepo: paymentRepo}
}

// WriteWorkbook renders the workbook into w
func (s *ExportService) WriteWorkbook(userID uuid.UUID, w io.Writer) error {
	payables, err := s.payableRepo.GetAllByUser(userID)
	if err != nil {
		return err
	}
	payments, err := s.paymentRepo.GetByUser(userID)
	if err != nil {
		return err
	}

	f, err := buildWorkbook(payables, payments)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close workbook")
		}
	}()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func buildWorkbook(payables []*domain.Payable, payments []*domain.Payment) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetPayables); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetPayments); err != nil {
		return nil, err
	}

	payableRows := make([][]interface{}, 0, len(payables))
	for _, p := range payables {
		status := p.Status
		if status == "" {
			status = domain.PayableStatusActive
		}
		payableRows = append(payableRows, []interface{}{
			p.Title,
			p.Type.Label(),
			p.Payee,
			p.PaymentBank,
			p.PayType.Label(),
			p.EmiDay,
			p.EmiAmount.InexactFloat64(),
			p.RemainingAmount.InexactFloat64(),
			p.TotalAmount.InexactFloat64(),
			p.ExtraPay.InexactFloat64(),
			p.InterestPerMonth.InexactFloat64(),
			status,
		})
	}
	if err := writeSheet(f, SheetPayables, payableHeaders, payableRows); err != nil {
		return nil, err
	}

	paymentRows := make([][]interface{}, 0, len(payments))
	for _, p := range payments {
		paymentRows = append(paymentRows, []interface{}{
			p.PaymentDate.UTC().Format(exportDateLayout),
			p.PayableTitle,
			p.PayableType.Label(),
			p.PayablePayee,
			p.AmountPaid.InexactFloat64(),
			p.ExtraAmount.InexactFloat64(),
			p.RemainingAmount.InexactFloat64(),
		})
	}
	if err := writeSheet(f, SheetPayments, paymentHeaders, paymentRows); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}) error {
	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 16)
}
