package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/bizfolio/biz_management_app/internal/core/domain"
	portsrepo "github.com/bizfolio/biz_management_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the read-only ledger folds behind reports.
// Reversed originals and their reversal batches cancel each other, so every
// query filters to POSTED batches that are not reversals.
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetTrialBalanceData sums debits and credits per account as of a date.
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context, companyID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.account_type,
			COALESCE(SUM(e.debit), 0) AS total_debit,
			COALESCE(SUM(e.credit), 0) AS total_credit
		FROM journal_entries e
		JOIN accounts a ON e.account_id = a.account_id
		JOIN journal_batches j ON e.journal_id = j.journal_id
		WHERE j.journal_date <= $1
			AND a.company_id = $2
			AND j.status = 'POSTED'
			AND j.original_journal_id IS NULL
		GROUP BY a.account_id, a.code, a.name, a.account_type
	`

	rows, err := r.Pool.Query(ctx, query, asOf, companyID)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string

		if err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&accountType,
			&row.Debit,
			&row.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}

		row.AccountType = domain.AccountType(accountType)
		net := row.Debit.Sub(row.Credit)
		if row.AccountType.NormalBalance() == domain.CreditNormal {
			net = net.Neg()
		}
		row.Balance = net
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}
	return result, nil
}

// GetProfitAndLossData returns net amounts for revenue and expense accounts
// over a date range. Revenue nets are credit-positive, expense nets
// debit-positive, so both come out positive for normal activity.
func (r *reportingRepository) GetProfitAndLossData(ctx context.Context, companyID string, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	query := `
		SELECT
			a.account_type,
			a.account_id,
			a.code,
			a.name,
			COALESCE(SUM(e.debit - e.credit), 0) AS net
		FROM journal_entries e
		JOIN accounts a ON e.account_id = a.account_id
		JOIN journal_batches j ON e.journal_id = j.journal_id
		WHERE j.journal_date BETWEEN $1 AND $2
			AND a.company_id = $3
			AND j.status = 'POSTED'
			AND j.original_journal_id IS NULL
			AND a.account_type IN ('REVENUE', 'EXPENSE')
		GROUP BY a.account_type, a.account_id, a.code, a.name
		ORDER BY a.code
	`

	rows, err := r.Pool.Query(ctx, query, from, to, companyID)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying profit and loss data: %w", err)
	}
	defer rows.Close()

	revenue := []domain.AccountAmount{}
	expenses := []domain.AccountAmount{}

	for rows.Next() {
		var accountType string
		var aa domain.AccountAmount
		var net decimal.Decimal

		if err := rows.Scan(&accountType, &aa.AccountID, &aa.AccountCode, &aa.Name, &net); err != nil {
			return nil, nil, fmt.Errorf("error scanning profit and loss row: %w", err)
		}

		switch accountType {
		case string(domain.Revenue):
			// Credits increase revenue, so invert the debit-minus-credit net.
			aa.NetAmount = net.Neg()
			revenue = append(revenue, aa)
		case string(domain.Expense):
			aa.NetAmount = net
			expenses = append(expenses, aa)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating profit and loss rows: %w", err)
	}
	return revenue, expenses, nil
}

// GetBalanceSheetData returns net amounts for asset, liability and equity
// accounts as of a date, signed positive on each type's normal side. Revenue
// and expense activity up to the date folds into a single current-earnings
// figure (credit-positive), since those nets are equity not yet closed out.
func (r *reportingRepository) GetBalanceSheetData(ctx context.Context, companyID string, asOf time.Time) ([]domain.AccountAmount, []domain.AccountAmount, []domain.AccountAmount, decimal.Decimal, error) {
	query := `
		SELECT
			a.account_type,
			a.account_id,
			a.code,
			a.name,
			COALESCE(SUM(e.debit - e.credit), 0) AS net
		FROM journal_entries e
		JOIN accounts a ON e.account_id = a.account_id
		JOIN journal_batches j ON e.journal_id = j.journal_id
		WHERE j.journal_date <= $1
			AND a.company_id = $2
			AND j.status = 'POSTED'
			AND j.original_journal_id IS NULL
		GROUP BY a.account_type, a.account_id, a.code, a.name
		ORDER BY a.code
	`

	rows, err := r.Pool.Query(ctx, query, asOf, companyID)
	if err != nil {
		return nil, nil, nil, decimal.Zero, fmt.Errorf("error querying balance sheet data: %w", err)
	}
	defer rows.Close()

	assets := []domain.AccountAmount{}
	liabilities := []domain.AccountAmount{}
	equity := []domain.AccountAmount{}
	currentEarnings := decimal.Zero

	for rows.Next() {
		var accountType string
		var aa domain.AccountAmount
		var net decimal.Decimal

		if err := rows.Scan(&accountType, &aa.AccountID, &aa.AccountCode, &aa.Name, &net); err != nil {
			return nil, nil, nil, decimal.Zero, fmt.Errorf("error scanning balance sheet row: %w", err)
		}

		switch accountType {
		case string(domain.Asset):
			aa.NetAmount = net
			assets = append(assets, aa)
		case string(domain.Liability):
			aa.NetAmount = net.Neg()
			liabilities = append(liabilities, aa)
		case string(domain.Equity):
			aa.NetAmount = net.Neg()
			equity = append(equity, aa)
		case string(domain.Revenue), string(domain.Expense):
			currentEarnings = currentEarnings.Add(net.Neg())
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, nil, decimal.Zero, fmt.Errorf("error iterating balance sheet rows: %w", err)
	}
	return assets, liabilities, equity, currentEarnings, nil
}
