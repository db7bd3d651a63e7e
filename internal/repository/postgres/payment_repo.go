package postgres

import (
	"context"
	"time"

	"github.com/dafibh/paydue/paydue-backend/db/sqlc"
	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PaymentRepository implements domain.PaymentRepository using PostgreSQL.
// Payments are append-only; there is no update or delete.
type PaymentRepository struct {
	pool    *pgxpool.Pool
	queries *sqlc.Queries
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{
		pool:    pool,
		queries: sqlc.New(pool),
	}
}

// Create inserts a payment
func (r *PaymentRepository) Create(payment *domain.Payment) (*domain.Payment, error) {
	amountPaid, err := decimalToPgNumeric(payment.AmountPaid)
	if err != nil {
		return nil, err
	}
	extraAmount, err := decimalToPgNumeric(payment.ExtraAmount)
	if err != nil {
		return nil, err
	}
	remainingAmount, err := decimalToPgNumeric(payment.RemainingAmount)
	if err != nil {
		return nil, err
	}

	created, err := r.queries.CreatePayment(context.Background(), sqlc.CreatePaymentParams{
		UserID:           uuidToPg(payment.UserID),
		MonthlyPayableID: uuidToPg(payment.PayableID),
		AmountPaid:       amountPaid,
		ExtraAmount:      extraAmount,
		RemainingAmount:  remainingAmount,
		PaymentDate:      timeToPgTimestamptz(payment.PaymentDate),
	})
	if err != nil {
		return nil, err
	}

	return &domain.Payment{
		ID:              pgToUUID(created.ID),
		UserID:          pgToUUID(created.UserID),
		PayableID:       pgToUUID(created.MonthlyPayableID),
		AmountPaid:      pgNumericToDecimal(created.AmountPaid),
		ExtraAmount:     pgNumericToDecimal(created.ExtraAmount),
		RemainingAmount: pgNumericToDecimal(created.RemainingAmount),
		PaymentDate:     created.PaymentDate.Time.UTC(),
		CreatedAt:       created.CreatedAt.Time,
	}, nil
}

// GetByUser retrieves every payment of the user, newest first
func (r *PaymentRepository) GetByUser(userID uuid.UUID) ([]*domain.Payment, error) {
	payments, err := r.queries.ListPaymentDetailsByUser(context.Background(), uuidToPg(userID))
	if err != nil {
		return nil, err
	}
	return sqlcPaymentDetailsToDomain(payments), nil
}

// GetByUserBetween retrieves payments dated in [from, to), newest first
func (r *PaymentRepository) GetByUserBetween(userID uuid.UUID, from, to time.Time) ([]*domain.Payment, error) {
	payments, err := r.queries.ListPaymentDetailsByUserBetween(context.Background(), sqlc.ListPaymentDetailsByUserBetweenParams{
		UserID:   uuidToPg(userID),
		DateFrom: timeToPgTimestamptz(from),
		DateTo:   timeToPgTimestamptz(to),
	})
	if err != nil {
		return nil, err
	}
	return sqlcPaymentDetailsToDomain(payments), nil
}

// GetByPayable retrieves the payment history of one payable, oldest first
func (r *PaymentRepository) GetByPayable(userID uuid.UUID, payableID uuid.UUID) ([]*domain.Payment, error) {
	payments, err := r.queries.ListPaymentDetailsByPayable(context.Background(), sqlc.ListPaymentDetailsByPayableParams{
		UserID:           uuidToPg(userID),
		MonthlyPayableID: uuidToPg(payableID),
	})
	if err != nil {
		return nil, err
	}
	return sqlcPaymentDetailsToDomain(payments), nil
}

// GetPaymentMonths retrieves the first day of every month with at least one payment
func (r *PaymentRepository) GetPaymentMonths(userID uuid.UUID) ([]time.Time, error) {
	months, err := r.queries.ListPaymentMonths(context.Background(), uuidToPg(userID))
	if err != nil {
		return nil, err
	}
	result := make([]time.Time, 0, len(months))
	for _, m := range months {
		if m.Valid {
			result = append(result, m.Time)
		}
	}
	return result, nil
}

func sqlcPaymentDetailsToDomain(payments []sqlc.PaymentDetail) []*domain.Payment {
	result := make([]*domain.Payment, len(payments))
	for i, p := range payments {
		result[i] = &domain.Payment{
			ID:              pgToUUID(p.ID),
			UserID:          pgToUUID(p.UserID),
			PayableID:       pgToUUID(p.MonthlyPayableID),
			AmountPaid:      pgNumericToDecimal(p.AmountPaid),
			ExtraAmount:     pgNumericToDecimal(p.ExtraAmount),
			RemainingAmount: pgNumericToDecimal(p.RemainingAmount),
			PaymentDate:     p.PaymentDate.Time.UTC(),
			CreatedAt:       p.CreatedAt.Time,
			PayableTitle:    p.PayableTitle,
			PayableType:     domain.PayableType(p.PayableType),
			PayablePayee:    p.PayablePayee,
		}
	}
	return result
}
