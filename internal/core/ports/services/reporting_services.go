package services

import (
	"context"
	"time"

	"github.com/bizfolio/biz_management_app/internal/core/domain"
)

// ReportingSvcFacade produces read-only report folds over posted entries.
type ReportingSvcFacade interface {
	// TrialBalance lists every account's debit/credit totals as of a date,
	// sorted by account code, with grand totals.
	TrialBalance(ctx context.Context, companyID string, asOf time.Time) (*domain.TrialBalanceReport, error)

	// ProfitAndLoss aggregates revenue, COGS and expenses over a date range.
	ProfitAndLoss(ctx context.Context, companyID string, from, to time.Time) (*domain.PAndLReport, error)

	// BalanceSheet sums account balances by type as of a date.
	BalanceSheet(ctx context.Context, companyID string, asOf time.Time) (*domain.BalanceSheetReport, error)

	// ARAging buckets unpaid invoices by days overdue relative to today.
	ARAging(ctx context.Context, companyID string, today time.Time) (*domain.ARAgingReport, error)
}
