package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizfolio/biz_management_app/internal/apperrors"
	"github.com/bizfolio/biz_management_app/internal/core/domain"
	portsrepo "github.com/bizfolio/biz_management_app/internal/core/ports/repositories"
	"github.com/bizfolio/biz_management_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFiscalPeriodRepository struct {
	pool *pgxpool.Pool
}

// newPgxFiscalPeriodRepository creates a new repository for fiscal period data.
func newPgxFiscalPeriodRepository(pool *pgxpool.Pool) portsrepo.FiscalPeriodRepositoryFacade {
	return &PgxFiscalPeriodRepository{pool: pool}
}

var _ portsrepo.FiscalPeriodRepositoryFacade = (*PgxFiscalPeriodRepository)(nil)

// FindPeriodByKey retrieves the period record for a YYYY-MM key. Returns
// apperrors.ErrNotFound when no row exists; callers treat that as open.
func (r *PgxFiscalPeriodRepository) FindPeriodByKey(ctx context.Context, companyID, periodKey string) (*domain.FiscalPeriod, error) {
	query := `
		SELECT period_key, company_id, status, created_at, created_by, last_updated_at, last_updated_by
		FROM fiscal_periods
		WHERE company_id = $1 AND period_key = $2;
	`
	var m models.FiscalPeriod
	err := r.pool.QueryRow(ctx, query, companyID, periodKey).Scan(
		&m.PeriodKey,
		&m.CompanyID,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fiscal period %s: %w", periodKey, err)
	}

	period := domain.FiscalPeriod{
		PeriodKey: m.PeriodKey,
		CompanyID: m.CompanyID,
		Status:    domain.PeriodStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	return &period, nil
}

// UpsertPeriod creates or updates the status of a fiscal period record.
func (r *PgxFiscalPeriodRepository) UpsertPeriod(ctx context.Context, period domain.FiscalPeriod) error {
	query := `
		INSERT INTO fiscal_periods (period_key, company_id, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (company_id, period_key)
		DO UPDATE SET status = EXCLUDED.status,
		              last_updated_at = EXCLUDED.last_updated_at,
		              last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.pool.Exec(ctx, query,
		period.PeriodKey,
		period.CompanyID,
		period.Status,
		period.CreatedAt,
		period.CreatedBy,
		period.LastUpdatedAt,
		period.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert fiscal period %s: %w", period.PeriodKey, err)
	}
	return nil
}

// ListPeriods retrieves all recorded periods for a company, newest first.
func (r *PgxFiscalPeriodRepository) ListPeriods(ctx context.Context, companyID string) ([]domain.FiscalPeriod, error) {
	query := `
		SELECT period_key, company_id, status, created_at, created_by, last_updated_at, last_updated_by
		FROM fiscal_periods
		WHERE company_id = $1
		ORDER BY period_key DESC;
	`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fiscal periods for company %s: %w", companyID, err)
	}
	defer rows.Close()

	periods := []domain.FiscalPeriod{}
	for rows.Next() {
		var m models.FiscalPeriod
		if err := rows.Scan(
			&m.PeriodKey,
			&m.CompanyID,
			&m.Status,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan fiscal period row: %w", err)
		}
		periods = append(periods, domain.FiscalPeriod{
			PeriodKey: m.PeriodKey,
			CompanyID: m.CompanyID,
			Status:    domain.PeriodStatus(m.Status),
			AuditFields: domain.AuditFields{
				CreatedAt:     m.CreatedAt,
				CreatedBy:     m.CreatedBy,
				LastUpdatedAt: m.LastUpdatedAt,
				LastUpdatedBy: m.LastUpdatedBy,
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fiscal period rows: %w", err)
	}
	return periods, nil
}
