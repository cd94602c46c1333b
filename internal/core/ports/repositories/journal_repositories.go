package repositories

import (
	"context"
	"time"

	"github.com/bizfolio/biz_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalReader defines read operations for journal batch data.
type JournalReader interface {
	// FindJournalByID retrieves a specific journal batch by its identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournalsByCompany retrieves a paginated list of batches for a company
	// using token-based pagination. Returns the batches, a token for the next
	// page, and an error.
	ListJournalsByCompany(ctx context.Context, companyID string, limit int, nextToken *string, includeReversals bool) ([]domain.Journal, *string, error)
}

// JournalWriter defines write operations for journal batch data.
type JournalWriter interface {
	// SaveJournal persists a batch header and its entry lines and applies the
	// account balance deltas, all within one database transaction. Either
	// every row becomes visible or none do.
	SaveJournal(ctx context.Context, journal domain.Journal, entries []domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error

	// UpdateJournalStatusAndLinks updates the status and reversal linkage of a batch.
	UpdateJournalStatusAndLinks(ctx context.Context, journalID string, status domain.JournalStatus, reversingJournalID *string, updatedByUserID string, updatedAt time.Time) error
}

// EntryReader defines read operations for journal entry lines.
type EntryReader interface {
	// FindEntriesByJournalID retrieves all entry lines of a single batch.
	FindEntriesByJournalID(ctx context.Context, journalID string) ([]domain.JournalEntry, error)

	// ListEntriesByAccountID retrieves a paginated ledger of entries for an
	// account using token-based pagination.
	ListEntriesByAccountID(ctx context.Context, companyID, accountID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	EntryReader
}
