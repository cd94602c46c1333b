package services

import (
	"context"

	"github.com/bizfolio/biz_management_app/internal/core/domain"
	"github.com/bizfolio/biz_management_app/internal/dto"
)

// JournalSvcFacade is the journal posting engine: it validates and atomically
// commits balanced batches of debit/credit entries, enforces fiscal period
// locks, and supports reversal.
type JournalSvcFacade interface {
	// CreateJournalBatch validates (balance, period lock) and commits a batch.
	CreateJournalBatch(ctx context.Context, companyID string, req dto.CreateJournalBatchRequest, creatorUserID string) (*domain.Journal, error)

	// ReverseJournalBatch creates a new batch with every entry's debit/credit
	// swapped, cancelling the original's effect on every account balance.
	ReverseJournalBatch(ctx context.Context, companyID, journalID string, req dto.ReverseJournalBatchRequest, userID string) (*domain.Journal, error)

	// GetJournalBatch retrieves a batch with its entry lines.
	GetJournalBatch(ctx context.Context, companyID, journalID string) (*domain.Journal, error)

	// ListJournalBatches retrieves a paginated batch listing.
	ListJournalBatches(ctx context.Context, companyID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)

	// ListEntriesByAccount retrieves the paginated ledger of one account.
	ListEntriesByAccount(ctx context.Context, companyID, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}
