package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizfolio/biz_management_app/internal/apperrors"
	"github.com/bizfolio/biz_management_app/internal/core/domain"
	portsrepo "github.com/bizfolio/biz_management_app/internal/core/ports/repositories"
	portssvc "github.com/bizfolio/biz_management_app/internal/core/ports/services"
	"github.com/bizfolio/biz_management_app/internal/dto"
)

type fiscalPeriodService struct {
	periodRepo portsrepo.FiscalPeriodRepositoryFacade
}

// NewFiscalPeriodService creates the fiscal period administration service.
func NewFiscalPeriodService(periodRepo portsrepo.FiscalPeriodRepositoryFacade) portssvc.FiscalPeriodSvcFacade {
	return &fiscalPeriodService{periodRepo: periodRepo}
}

var _ portssvc.FiscalPeriodSvcFacade = (*fiscalPeriodService)(nil)

// UpsertPeriod opens or closes a calendar month for posting. Creating a row
// with status OPEN is allowed and makes the default-open state explicit.
func (s *fiscalPeriodService) UpsertPeriod(ctx context.Context, companyID string, req dto.UpsertFiscalPeriodRequest, userID string) (*domain.FiscalPeriod, error) {
	if _, err := time.Parse("2006-01", req.PeriodKey); err != nil {
		return nil, fmt.Errorf("%w: periodKey %q is not a YYYY-MM month", apperrors.ErrValidation, req.PeriodKey)
	}

	now := time.Now().UTC()
	period := domain.FiscalPeriod{
		PeriodKey: req.PeriodKey,
		CompanyID: companyID,
		Status:    domain.PeriodStatus(req.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if existing, err := s.periodRepo.FindPeriodByKey(ctx, companyID, req.PeriodKey); err == nil {
		period.CreatedAt = existing.CreatedAt
		period.CreatedBy = existing.CreatedBy
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check period %s: %w", req.PeriodKey, err)
	}

	if err := s.periodRepo.UpsertPeriod(ctx, period); err != nil {
		return nil, fmt.Errorf("failed to upsert period %s: %w", req.PeriodKey, err)
	}
	return &period, nil
}

// ListPeriods retrieves all recorded periods, newest first. Months with no
// row are open and do not appear here.
func (s *fiscalPeriodService) ListPeriods(ctx context.Context, companyID string) ([]domain.FiscalPeriod, error) {
	periods, err := s.periodRepo.ListPeriods(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fiscal periods: %w", err)
	}
	return periods, nil
}
