package models

import "github.com/shopspring/decimal"

// JournalEntry is the journal_entries table row.
type JournalEntry struct {
	EntryID   string          `db:"entry_id"`
	JournalID string          `db:"journal_id"`
	LineNo    int             `db:"line_no"`
	AccountID string          `db:"account_id"`
	Debit     decimal.Decimal `db:"debit"`
	Credit    decimal.Decimal `db:"credit"`
	Memo      string          `db:"memo"`
	TaxCode   string          `db:"tax_code"`
	AuditFields
	RunningBalance decimal.Decimal `db:"running_balance"`
}
