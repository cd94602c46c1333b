package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal batch.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// Journal is the journal_batches table row.
type Journal struct {
	JournalID          string          `db:"journal_id"`
	CompanyID          string          `db:"company_id"`
	JournalDate        time.Time       `db:"journal_date"`
	Description        string          `db:"description"`
	SourceType         string          `db:"source_type"`
	SourceID           string          `db:"source_id"`
	Status             JournalStatus   `db:"status"`
	OriginalJournalID  *string         `db:"original_journal_id"`  // Nullable
	ReversingJournalID *string         `db:"reversing_journal_id"` // Nullable
	Amount             decimal.Decimal `db:"amount"`
	AuditFields
}
