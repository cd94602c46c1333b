package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal batch.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// SourceType tags a journal batch with the business event that produced it.
type SourceType string

const (
	SourceARInvoice  SourceType = "AR_INVOICE"
	SourceARPayment  SourceType = "AR_PAYMENT"
	SourceCOGS       SourceType = "COGS"
	SourceSale       SourceType = "SALE"
	SourceManual     SourceType = "MANUAL"
	reversalPrefix              = "REVERSAL:"
)

// ReversalOf builds the source type for a batch that reverses one tagged orig.
func ReversalOf(orig SourceType) SourceType {
	return SourceType(reversalPrefix + string(orig))
}

// IsReversal reports whether the source type tags a reversal batch.
func (s SourceType) IsReversal() bool {
	return strings.HasPrefix(string(s), reversalPrefix)
}

// Journal represents a journal batch: an atomic, balanced group of debit and
// credit entries recording one business event. Batches are immutable once
// committed; corrections happen via a reversal batch.
type Journal struct {
	JournalID   string        `json:"journalID"` // Primary Key (UUID)
	CompanyID   string        `json:"companyID"` // Owning tenant (NON-NULL)
	JournalDate time.Time     `json:"journalDate"`
	Description string        `json:"description"`
	SourceType  SourceType    `json:"sourceType"` // Originating business event tag
	SourceID    string        `json:"sourceID"`   // Reference to the originating record
	Status      JournalStatus `json:"status"`     // Default: Posted
	// Reversal linkage: set when this batch reverses another, or was reversed.
	OriginalJournalID  *string         `json:"originalJournalID,omitempty"`
	ReversingJournalID *string         `json:"reversingJournalID,omitempty"`
	Amount             decimal.Decimal `json:"amount"` // Total of the debit side
	Entries            []JournalEntry  `json:"entries,omitempty"`
	AuditFields
}

// PeriodKey returns the fiscal period key (YYYY-MM) the batch is dated in.
func (j Journal) PeriodKey() string {
	return PeriodKeyForDate(j.JournalDate)
}
