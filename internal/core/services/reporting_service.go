package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizfolio/biz_management_app/internal/core/domain"
	portsrepo "github.com/bizfolio/biz_management_app/internal/core/ports/repositories"
	portssvc "github.com/bizfolio/biz_management_app/internal/core/ports/services"
	"github.com/bizfolio/biz_management_app/internal/utils/accounting"
)

// reportingService folds posted entries into the standard reports. Nothing
// here mutates state; every method is a pure aggregation over the repository
// reads.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	invoiceRepo   portsrepo.InvoiceRepositoryFacade
	resolver      *accountResolver
}

// NewReportingService creates the reporting aggregators.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, invoiceRepo portsrepo.InvoiceRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		invoiceRepo:   invoiceRepo,
		resolver:      newAccountResolver(accountRepo),
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TrialBalance lists per-account debit and credit totals as of a date,
// sorted by account code. For books whose batches all balanced, the grand
// totals are equal; a mismatch signals data corruption, not a user error.
func (s *reportingService) TrialBalance(ctx context.Context, companyID string, asOf time.Time) (*domain.TrialBalanceReport, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, companyID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to get trial balance data: %w", err)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].AccountCode < rows[j].AccountCode
	})

	report := &domain.TrialBalanceReport{
		Rows:        rows,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, row := range rows {
		report.TotalDebit = report.TotalDebit.Add(row.Debit)
		report.TotalCredit = report.TotalCredit.Add(row.Credit)
	}
	report.TotalDebit = accounting.RoundCurrency(report.TotalDebit)
	report.TotalCredit = accounting.RoundCurrency(report.TotalCredit)
	return report, nil
}

// ProfitAndLoss aggregates revenue and expense activity over a date range.
// The cost-of-goods-sold account is separated from other expenses so the
// report can show gross profit before operating expenses.
func (s *reportingService) ProfitAndLoss(ctx context.Context, companyID string, from, to time.Time) (*domain.PAndLReport, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("invalid range: %s is before %s", to.Format("2006-01-02"), from.Format("2006-01-02"))
	}

	revenue, expenses, err := s.reportingRepo.GetProfitAndLossData(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get profit and loss data: %w", err)
	}

	// A chart without a COGS account still produces a valid report; every
	// expense just lands below the gross profit line.
	cogsAccountID := ""
	if cogsAccount, err := s.resolver.Resolve(ctx, companyID, AccountCostOfGoodsSold); err == nil {
		cogsAccountID = cogsAccount.AccountID
	} else if !errors.Is(err, ErrAccountNotFound) {
		return nil, err
	}

	report := &domain.PAndLReport{
		Revenue:         revenue,
		CostOfGoodsSold: make([]domain.AccountAmount, 0, 1),
		Expenses:        make([]domain.AccountAmount, 0, len(expenses)),
	}
	for _, r := range revenue {
		report.TotalRevenue = report.TotalRevenue.Add(r.NetAmount)
	}
	for _, e := range expenses {
		if e.AccountID == cogsAccountID {
			report.CostOfGoodsSold = append(report.CostOfGoodsSold, e)
			report.TotalCOGS = report.TotalCOGS.Add(e.NetAmount)
			continue
		}
		report.Expenses = append(report.Expenses, e)
		report.TotalExpenses = report.TotalExpenses.Add(e.NetAmount)
	}

	report.TotalRevenue = accounting.RoundCurrency(report.TotalRevenue)
	report.TotalCOGS = accounting.RoundCurrency(report.TotalCOGS)
	report.TotalExpenses = accounting.RoundCurrency(report.TotalExpenses)
	report.GrossProfit = report.TotalRevenue.Sub(report.TotalCOGS)
	report.NetProfit = report.GrossProfit.Sub(report.TotalExpenses)
	return report, nil
}

// BalanceSheet sums account balances by type as of a date. Revenue and
// expense activity not yet closed into an equity account is carried as a
// synthesized current-earnings equity line, so assets always equal
// liabilities plus equity when the underlying batches balanced.
func (s *reportingService) BalanceSheet(ctx context.Context, companyID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	assets, liabilities, equity, currentEarnings, err := s.reportingRepo.GetBalanceSheetData(ctx, companyID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance sheet data: %w", err)
	}

	if !currentEarnings.IsZero() {
		equity = append(equity, domain.AccountAmount{
			Name:      domain.CurrentEarningsLine,
			NetAmount: currentEarnings,
		})
	}

	report := &domain.BalanceSheetReport{
		Assets:      assets,
		Liabilities: liabilities,
		Equity:      equity,
	}
	for _, a := range assets {
		report.TotalAssets = report.TotalAssets.Add(a.NetAmount)
	}
	for _, l := range liabilities {
		report.TotalLiabilities = report.TotalLiabilities.Add(l.NetAmount)
	}
	for _, e := range equity {
		report.TotalEquity = report.TotalEquity.Add(e.NetAmount)
	}
	report.TotalAssets = accounting.RoundCurrency(report.TotalAssets)
	report.TotalLiabilities = accounting.RoundCurrency(report.TotalLiabilities)
	report.TotalEquity = accounting.RoundCurrency(report.TotalEquity)
	return report, nil
}

// agingBucket classifies days overdue. Day 30 itself is current (0-30);
// day 31 starts the next bucket.
func agingBucket(daysOverdue int) string {
	switch {
	case daysOverdue <= 30:
		return domain.Bucket0To30
	case daysOverdue <= 60:
		return domain.Bucket31To60
	case daysOverdue <= 90:
		return domain.Bucket61To90
	default:
		return domain.Bucket90Plus
	}
}

// ARAging buckets unpaid invoices by days overdue relative to today.
func (s *reportingService) ARAging(ctx context.Context, companyID string, today time.Time) (*domain.ARAgingReport, error) {
	invoices, err := s.invoiceRepo.ListOpenInvoices(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list open invoices: %w", err)
	}

	report := &domain.ARAgingReport{
		Rows: make([]domain.ARAgingRow, 0, len(invoices)),
	}
	for _, inv := range invoices {
		outstanding := inv.Outstanding()
		if !outstanding.IsPositive() {
			continue
		}
		days := inv.DaysOverdue(today)
		bucket := agingBucket(days)
		report.Rows = append(report.Rows, domain.ARAgingRow{
			InvoiceID:    inv.InvoiceID,
			Number:       inv.Number,
			CustomerName: inv.CustomerName,
			DueDate:      inv.DueDate,
			Outstanding:  outstanding,
			DaysOverdue:  days,
			Bucket:       bucket,
		})

		switch bucket {
		case domain.Bucket0To30:
			report.Total0To30 = report.Total0To30.Add(outstanding)
		case domain.Bucket31To60:
			report.Total31To60 = report.Total31To60.Add(outstanding)
		case domain.Bucket61To90:
			report.Total61To90 = report.Total61To90.Add(outstanding)
		default:
			report.Total90Plus = report.Total90Plus.Add(outstanding)
		}
		report.TotalOverall = report.TotalOverall.Add(outstanding)
	}

	sort.Slice(report.Rows, func(i, j int) bool {
		return report.Rows[i].DaysOverdue > report.Rows[j].DaysOverdue
	})
	return report, nil
}
