package service

import (
	"time"

	"github.com/dafibh/paydue/paydue-backend/internal/aggregate"
	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/google/uuid"
)

// InsightService ranks open payables for the strategy screen
type InsightService struct {
	payableRepo domain.PayableRepository
	now         func() time.Time
}

// NewInsightService creates a new InsightService
func NewInsightService(payableRepo domain.PayableRepository) *InsightService {
	return &InsightService{payableRepo: payableRepo, now: time.Now}
}

// GetInsights returns the top extra pay, interest, EMI and closure rankings plus payables closing soon
func (s *InsightService) GetInsights(userID uuid.UUID) (*domain.InsightReport, error) {
	payables, err := s.payableRepo.GetOpenByUser(userID)
	if err != nil {
		return nil, err
	}

	report := aggregate.BuildInsights(payables, s.now().UTC())
	return &report, nil
}
