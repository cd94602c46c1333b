package repositories

import (
	"context"

	"github.com/bizfolio/biz_management_app/internal/core/domain"
)

// FiscalPeriodRepositoryFacade provides access to fiscal period records.
// The posting engine only reads; administrative flows upsert.
type FiscalPeriodRepositoryFacade interface {
	// FindPeriodByKey retrieves the fiscal period record for a YYYY-MM key.
	// Returns apperrors.ErrNotFound when no record exists, which callers must
	// treat as an open period.
	FindPeriodByKey(ctx context.Context, companyID, periodKey string) (*domain.FiscalPeriod, error)

	// UpsertPeriod creates or updates the status of a fiscal period record.
	UpsertPeriod(ctx context.Context, period domain.FiscalPeriod) error

	// ListPeriods retrieves all recorded periods for a company, newest first.
	ListPeriods(ctx context.Context, companyID string) ([]domain.FiscalPeriod, error)
}
