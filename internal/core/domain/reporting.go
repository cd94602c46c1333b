package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single account line in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"` // Normal-balance signed
}

// TrialBalanceReport lists every account's totals, sorted by account code.
// TotalDebit must equal TotalCredit for a book whose batches all balanced.
type TrialBalanceReport struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// CurrentEarningsLine labels the synthesized balance sheet equity line that
// carries revenue and expense activity not yet closed into an equity account.
const CurrentEarningsLine = "Current Earnings"

// AccountAmount represents an account with its net amount for financial reports.
type AccountAmount struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	NetAmount   decimal.Decimal `json:"netAmount"`
}

// PAndLReport represents a profit and loss report for a date range.
type PAndLReport struct {
	Revenue         []AccountAmount `json:"revenue"`
	CostOfGoodsSold []AccountAmount `json:"costOfGoodsSold"`
	Expenses        []AccountAmount `json:"expenses"` // Non-COGS expenses
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TotalCOGS       decimal.Decimal `json:"totalCOGS"`
	GrossProfit     decimal.Decimal `json:"grossProfit"` // Revenue - COGS
	TotalExpenses   decimal.Decimal `json:"totalExpenses"`
	NetProfit       decimal.Decimal `json:"netProfit"` // GrossProfit - Expenses
}

// BalanceSheetReport represents a balance sheet as-of snapshot.
// TotalAssets must equal TotalLiabilities + TotalEquity for valid books.
type BalanceSheetReport struct {
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
}

// AgingBucket labels for the AR aging report.
const (
	Bucket0To30  = "0-30"
	Bucket31To60 = "31-60"
	Bucket61To90 = "61-90"
	Bucket90Plus = "90+"
)

// ARAgingRow is one unpaid invoice with its overdue classification.
type ARAgingRow struct {
	InvoiceID    string          `json:"invoiceID"`
	Number       string          `json:"number"`
	CustomerName string          `json:"customerName"`
	DueDate      time.Time       `json:"dueDate"`
	Outstanding  decimal.Decimal `json:"outstanding"`
	DaysOverdue  int             `json:"daysOverdue"`
	Bucket       string          `json:"bucket"`
}

// ARAgingReport buckets unpaid receivables by how overdue they are.
type ARAgingReport struct {
	Rows         []ARAgingRow    `json:"rows"`
	Total0To30   decimal.Decimal `json:"total0To30"`
	Total31To60  decimal.Decimal `json:"total31To60"`
	Total61To90  decimal.Decimal `json:"total61To90"`
	Total90Plus  decimal.Decimal `json:"total90Plus"`
	TotalOverall decimal.Decimal `json:"totalOverall"`
}
