package repositories

import (
	"context"
	"time"

	"github.com/bizfolio/biz_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository provides the read-only ledger folds behind the
// reporting aggregators. All methods operate on posted entries only.
type ReportingRepository interface {
	// GetTrialBalanceData sums debits and credits per account as of a date.
	GetTrialBalanceData(ctx context.Context, companyID string, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// GetProfitAndLossData returns net amounts for revenue and expense
	// accounts over a date range.
	GetProfitAndLossData(ctx context.Context, companyID string, from, to time.Time) (revenue, expenses []domain.AccountAmount, err error)

	// GetBalanceSheetData returns net amounts for asset, liability and equity
	// accounts as of a date, plus the net revenue-minus-expense activity over
	// the same window (earnings not yet closed into an equity account).
	GetBalanceSheetData(ctx context.Context, companyID string, asOf time.Time) (assets, liabilities, equity []domain.AccountAmount, currentEarnings decimal.Decimal, err error)
}
