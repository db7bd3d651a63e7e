package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/dafibh/paydue/paydue-backend/db/sqlc"
	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PayableRepository implements domain.PayableRepository using PostgreSQL
type PayableRepository struct {
	pool    *pgxpool.Pool
	queries *sqlc.Queries
}

// NewPayableRepository creates a new PayableRepository
func NewPayableRepository(pool *pgxpool.Pool) *PayableRepository {
	return &PayableRepository{
		pool:    pool,
		queries: sqlc.New(pool),
	}
}

// Create creates a new payable
func (r *PayableRepository) Create(payable *domain.Payable) (*domain.Payable, error) {
	params, err := createPayableParams(payable)
	if err != nil {
		return nil, err
	}

	created, err := r.queries.CreatePayable(context.Background(), params)
	if err != nil {
		return nil, err
	}
	return sqlcPayableToDomain(created), nil
}

// GetByID retrieves a payable owned by the user
func (r *PayableRepository) GetByID(userID uuid.UUID, id uuid.UUID) (*domain.Payable, error) {
	payable, err := r.queries.GetPayableByID(context.Background(), sqlc.GetPayableByIDParams{
		ID:     uuidToPg(id),
		UserID: uuidToPg(userID),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPayableNotFound
		}
		return nil, err
	}
	return sqlcPayableToDomain(payable), nil
}

// List retrieves a page of the user's payables
func (r *PayableRepository) List(userID uuid.UUID, filter domain.PayableFilter) ([]*domain.Payable, error) {
	payee := ""
	if domain.HasPayeeFilter(filter.Payee) {
		payee = filter.Payee
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = domain.PayablePageSize
	}

	payables, err := r.queries.ListPayables(context.Background(), sqlc.ListPayablesParams{
		UserID:        uuidToPg(userID),
		IncludeClosed: filter.IncludeClosed,
		Payee:         stringToPgText(payee),
		SortBy:        filter.SortBy,
		PageLimit:     int32(limit),
		PageOffset:    int32(filter.Offset),
	})
	if err != nil {
		return nil, err
	}
	return sqlcPayablesToDomain(payables), nil
}

// GetOpenByUser retrieves every payable of the user that is not closed
func (r *PayableRepository) GetOpenByUser(userID uuid.UUID) ([]*domain.Payable, error) {
	payables, err := r.queries.ListOpenPayables(context.Background(), uuidToPg(userID))
	if err != nil {
		return nil, err
	}
	return sqlcPayablesToDomain(payables), nil
}

// GetAllByUser retrieves every payable of the user, closed ones included
func (r *PayableRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Payable, error) {
	payables, err := r.queries.ListAllPayables(context.Background(), uuidToPg(userID))
	if err != nil {
		return nil, err
	}
	return sqlcPayablesToDomain(payables), nil
}

// ListPayees retrieves the distinct non-empty payees of the user
func (r *PayableRepository) ListPayees(userID uuid.UUID) ([]string, error) {
	payees, err := r.queries.ListPayees(context.Background(), uuidToPg(userID))
	if err != nil {
		return nil, err
	}
	if payees == nil {
		payees = []string{}
	}
	return payees, nil
}

// Update overwrites the editable fields of a payable
func (r *PayableRepository) Update(payable *domain.Payable) (*domain.Payable, error) {
	params, err := createPayableParams(payable)
	if err != nil {
		return nil, err
	}

	updated, err := r.queries.UpdatePayable(context.Background(), sqlc.UpdatePayableParams{
		ID:               uuidToPg(payable.ID),
		UserID:           params.UserID,
		Title:            params.Title,
		Type:             params.Type,
		TotalAmount:      params.TotalAmount,
		RemainingAmount:  params.RemainingAmount,
		EmiAmount:        params.EmiAmount,
		EmiDay:           params.EmiDay,
		ExtraPay:         params.ExtraPay,
		InterestPerMonth: params.InterestPerMonth,
		Payee:            params.Payee,
		PaymentBank:      params.PaymentBank,
		PayType:          params.PayType,
		StartDate:        params.StartDate,
		EndDate:          params.EndDate,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPayableNotFound
		}
		return nil, err
	}
	return sqlcPayableToDomain(updated), nil
}

// UpdateSnapshot refreshes the installment, balance and extra pay after a payment
func (r *PayableRepository) UpdateSnapshot(userID uuid.UUID, id uuid.UUID, emiAmount, remainingAmount, extraPay decimal.Decimal) (*domain.Payable, error) {
	emi, err := decimalToPgNumeric(emiAmount)
	if err != nil {
		return nil, err
	}
	remaining, err := decimalToPgNumeric(remainingAmount)
	if err != nil {
		return nil, err
	}
	extra, err := decimalToPgNumeric(extraPay)
	if err != nil {
		return nil, err
	}

	updated, err := r.queries.UpdatePayableSnapshot(context.Background(), sqlc.UpdatePayableSnapshotParams{
		ID:              uuidToPg(id),
		UserID:          uuidToPg(userID),
		EmiAmount:       emi,
		RemainingAmount: remaining,
		ExtraPay:        extra,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPayableNotFound
		}
		return nil, err
	}
	return sqlcPayableToDomain(updated), nil
}

// Close soft-deletes a payable. Closing an already closed payable returns ErrPayableAlreadyClosed.
func (r *PayableRepository) Close(userID uuid.UUID, id uuid.UUID, closedAt time.Time) (*domain.Payable, error) {
	ctx := context.Background()
	closed, err := r.queries.ClosePayable(ctx, sqlc.ClosePayableParams{
		ID:       uuidToPg(id),
		UserID:   uuidToPg(userID),
		ClosedAt: timeToPgTimestamptz(closedAt),
	})
	if err == nil {
		return sqlcPayableToDomain(closed), nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// No row updated: either missing or closed already
	if _, getErr := r.GetByID(userID, id); getErr != nil {
		return nil, getErr
	}
	return nil, domain.ErrPayableAlreadyClosed
}

func createPayableParams(p *domain.Payable) (sqlc.CreatePayableParams, error) {
	total, err := decimalToPgNumeric(p.TotalAmount)
	if err != nil {
		return sqlc.CreatePayableParams{}, err
	}
	remaining, err := decimalToPgNumeric(p.RemainingAmount)
	if err != nil {
		return sqlc.CreatePayableParams{}, err
	}
	emi, err := decimalToPgNumeric(p.EmiAmount)
	if err != nil {
		return sqlc.CreatePayableParams{}, err
	}
	extra, err := decimalToPgNumeric(p.ExtraPay)
	if err != nil {
		return sqlc.CreatePayableParams{}, err
	}
	interest, err := decimalToPgNumeric(p.InterestPerMonth)
	if err != nil {
		return sqlc.CreatePayableParams{}, err
	}

	payType := p.PayType
	if payType == "" {
		payType = domain.PayTypeManual
	}

	return sqlc.CreatePayableParams{
		UserID:           uuidToPg(p.UserID),
		Title:            p.Title,
		Type:             string(p.Type),
		TotalAmount:      total,
		RemainingAmount:  remaining,
		EmiAmount:        emi,
		EmiDay:           int32(p.EmiDay),
		ExtraPay:         extra,
		InterestPerMonth: interest,
		Payee:            p.Payee,
		PaymentBank:      p.PaymentBank,
		PayType:          string(payType),
		StartDate:        timePtrToPgDate(p.StartDate),
		EndDate:          timePtrToPgDate(p.EndDate),
	}, nil
}

func sqlcPayablesToDomain(payables []sqlc.MonthlyPayable) []*domain.Payable {
	result := make([]*domain.Payable, len(payables))
	for i, p := range payables {
		result[i] = sqlcPayableToDomain(p)
	}
	return result
}

func sqlcPayableToDomain(p sqlc.MonthlyPayable) *domain.Payable {
	return &domain.Payable{
		ID:               pgToUUID(p.ID),
		UserID:           pgToUUID(p.UserID),
		Title:            p.Title,
		Type:             domain.PayableType(p.Type),
		TotalAmount:      pgNumericToDecimal(p.TotalAmount),
		RemainingAmount:  pgNumericToDecimal(p.RemainingAmount),
		EmiAmount:        pgNumericToDecimal(p.EmiAmount),
		EmiDay:           int(p.EmiDay),
		ExtraPay:         pgNumericToDecimal(p.ExtraPay),
		InterestPerMonth: pgNumericToDecimal(p.InterestPerMonth),
		Payee:            p.Payee,
		PaymentBank:      p.PaymentBank,
		PayType:          domain.PayType(p.PayType),
		StartDate:        pgDateToTimePtr(p.StartDate),
		EndDate:          pgDateToTimePtr(p.EndDate),
		IsClosed:         p.IsClosed,
		Status:           p.Status,
		ClosedAt:         pgTimestamptzToTimePtr(p.ClosedAt),
		CreatedAt:        p.CreatedAt.Time,
		UpdatedAt:        p.UpdatedAt.Time,
	}
}
