package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizfolio/biz_management_app/internal/apperrors"
	"github.com/bizfolio/biz_management_app/internal/core/domain"
	portsrepo "github.com/bizfolio/biz_management_app/internal/core/ports/repositories"
	portssvc "github.com/bizfolio/biz_management_app/internal/core/ports/services"
	"github.com/bizfolio/biz_management_app/internal/dto"
	"github.com/bizfolio/biz_management_app/internal/middleware"
	"github.com/bizfolio/biz_management_app/internal/utils/accounting"
)

var (
	// ErrJournalUnbalanced indicates the batch's debit and credit sums differ
	// at currency precision. The batch is never persisted.
	ErrJournalUnbalanced = accounting.ErrUnbalanced

	// ErrPeriodClosed indicates the batch is dated inside a closed fiscal period.
	ErrPeriodClosed = errors.New("posting locked: fiscal period is closed")

	// ErrBatchNotFound indicates a reversal was requested for a batch that
	// does not exist or has no entries.
	ErrBatchNotFound = errors.New("journal batch not found")

	// ErrAlreadyReversed indicates the target batch was reversed before.
	ErrAlreadyReversed = errors.New("journal batch is already reversed")

	// ErrJournalMinEntries indicates the batch carried no entry lines.
	ErrJournalMinEntries = fmt.Errorf("%w: batch must have at least one entry", apperrors.ErrValidation)
)

// journalService implements the journal posting engine. Its only domain
// knowledge is the balance rule and the period lock rule; resolving valid,
// active accounts is the posting helpers' responsibility.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountReader
	periodRepo  portsrepo.FiscalPeriodRepositoryFacade
}

// NewJournalService creates a new journal posting engine.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountReader, periodRepo portsrepo.FiscalPeriodRepositoryFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		periodRepo:  periodRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// checkPeriodOpen enforces the fiscal period lock for a posting date. The
// period key is the first seven characters of the ISO date (YYYY-MM). A
// missing period record means the month is open (domain.DefaultPeriodStatus).
func (s *journalService) checkPeriodOpen(ctx context.Context, companyID, isoDate string) error {
	periodKey := isoDate[:7]
	period, err := s.periodRepo.FindPeriodByKey(ctx, companyID, periodKey)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Default-open policy: no record means posting is allowed.
			return nil
		}
		return fmt.Errorf("failed to check fiscal period %s: %w", periodKey, err)
	}
	if period.Status == domain.PeriodClosed {
		return fmt.Errorf("%w: period %s", ErrPeriodClosed, periodKey)
	}
	return nil
}

// CreateJournalBatch validates and atomically commits a journal batch.
// Preconditions are enforced before any persistence: the balance invariant
// (sum of debits equals sum of credits at currency precision) and the fiscal
// period lock. Account existence is deliberately not validated here.
func (s *journalService) CreateJournalBatch(ctx context.Context, companyID string, req dto.CreateJournalBatchRequest, creatorUserID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journalDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, req.Date)
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}
	if len(req.Entries) == 0 {
		return nil, ErrJournalMinEntries
	}

	sourceType := domain.SourceType(req.SourceType)
	if sourceType == "" {
		sourceType = domain.SourceManual
	}

	now := time.Now().UTC()
	journalID := uuid.NewString()

	entries := make([]domain.JournalEntry, len(req.Entries))
	for i, line := range req.Entries {
		entries[i] = domain.JournalEntry{
			EntryID:   uuid.NewString(),
			JournalID: journalID,
			LineNo:    i + 1,
			AccountID: line.AccountID,
			Debit:     line.Debit,
			Credit:    line.Credit,
			Memo:      line.Memo,
			TaxCode:   line.TaxCode,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
			// RunningBalance is calculated and set by the repository.
		}
	}

	// Precondition 1: the double-entry balance invariant.
	if err := accounting.ValidateBatchBalance(entries); err != nil {
		return nil, err
	}

	// Precondition 2: the fiscal period lock.
	if err := s.checkPeriodOpen(ctx, companyID, req.Date); err != nil {
		return nil, err
	}

	// Fetch the referenced accounts to compute per-account balance deltas.
	// Accounts missing here are not an error at this layer: the entry insert
	// will fail on its foreign key and the store error propagates, leaving no
	// partial batch behind.
	accountIDs := make([]string, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.AccountID]; !ok {
			seen[e.AccountID] = struct{}{}
			accountIDs = append(accountIDs, e.AccountID)
		}
	}
	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, companyID, accountIDs)
	if err != nil {
		logger.Error("Failed to fetch accounts for batch posting", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	changes := make(map[string]decimal.Decimal, len(accountsMap))
	for _, e := range entries {
		acc, ok := accountsMap[e.AccountID]
		if !ok {
			continue
		}
		changes[e.AccountID] = changes[e.AccountID].Add(e.SignedAmount(acc.AccountType))
	}

	debits, _ := accounting.SumEntries(entries)
	journal := domain.Journal{
		JournalID:   journalID,
		CompanyID:   companyID,
		JournalDate: journalDate,
		Description: req.Description,
		SourceType:  sourceType,
		SourceID:    req.SourceID,
		Status:      domain.Posted,
		Amount:      accounting.RoundCurrency(debits),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveJournal(ctx, journal, entries, changes); err != nil {
		logger.Error("Failed to save journal batch", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save journal batch: %w", err)
	}

	logger.Info("Journal batch posted",
		slog.String("journal_id", journal.JournalID),
		slog.String("source_type", string(journal.SourceType)),
		slog.String("company_id", companyID))
	journal.Entries = nil
	return &journal, nil
}

// ReverseJournalBatch creates a brand-new batch with every entry's debit and
// credit swapped, so that the original and the reversal cancel exactly on
// every account. The reversal is submitted through CreateJournalBatch using
// the new date, so it is subject to the same balance and period rules.
func (s *journalService) ReverseJournalBatch(ctx context.Context, companyID, journalID string, req dto.ReverseJournalBatchRequest, userID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, journalID)
		}
		return nil, fmt.Errorf("failed to retrieve batch for reversal: %w", err)
	}
	if original.CompanyID != companyID {
		// Obscure existence across tenants.
		return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, journalID)
	}
	if original.Status == domain.Reversed {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyReversed, journalID)
	}
	if original.SourceType.IsReversal() {
		return nil, fmt.Errorf("%w: cannot reverse a reversal batch", apperrors.ErrConflict)
	}

	originalEntries, err := s.journalRepo.FindEntriesByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve entries for reversal: %w", err)
	}
	if len(originalEntries) == 0 {
		return nil, fmt.Errorf("%w: batch %s has no entries", ErrBatchNotFound, journalID)
	}

	reversalDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, req.Date)
	}
	// The reversal is dated on its own date and must land in an open period.
	if err := s.checkPeriodOpen(ctx, companyID, req.Date); err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Reversal of: %s", original.Description)
	if req.Reason != "" {
		description = fmt.Sprintf("%s (%s)", description, req.Reason)
	}

	now := time.Now().UTC()
	reversingID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	reversingEntries := make([]domain.JournalEntry, len(originalEntries))
	accountIDs := make([]string, 0, len(originalEntries))
	for i, e := range originalEntries {
		accountIDs = append(accountIDs, e.AccountID)
		reversingEntries[i] = domain.JournalEntry{
			EntryID:     uuid.NewString(),
			JournalID:   reversingID,
			LineNo:      e.LineNo,
			AccountID:   e.AccountID,
			Debit:       e.Credit, // swapped
			Credit:      e.Debit,  // swapped
			Memo:        fmt.Sprintf("Reversal of entry %s", e.EntryID),
			TaxCode:     e.TaxCode,
			AuditFields: audit,
		}
	}

	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, companyID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts for reversal: %w", err)
	}
	changes := make(map[string]decimal.Decimal, len(accountsMap))
	for _, e := range reversingEntries {
		acc, ok := accountsMap[e.AccountID]
		if !ok {
			return nil, fmt.Errorf("internal error: account %s missing during reversal", e.AccountID)
		}
		changes[e.AccountID] = changes[e.AccountID].Add(e.SignedAmount(acc.AccountType))
	}

	reversing := &domain.Journal{
		JournalID:         reversingID,
		CompanyID:         companyID,
		JournalDate:       reversalDate,
		Description:       description,
		SourceType:        domain.ReversalOf(original.SourceType),
		SourceID:          original.SourceID,
		Status:            domain.Posted,
		OriginalJournalID: &original.JournalID,
		Amount:            original.Amount,
		AuditFields:       audit,
	}

	if err := s.journalRepo.SaveJournal(ctx, *reversing, reversingEntries, changes); err != nil {
		return nil, fmt.Errorf("failed to save reversal batch: %w", err)
	}

	if err := s.journalRepo.UpdateJournalStatusAndLinks(ctx, original.JournalID, domain.Reversed, &reversing.JournalID, userID, now); err != nil {
		logger.Error("Failed to mark original batch reversed",
			slog.String("original_journal_id", original.JournalID),
			slog.String("reversing_journal_id", reversing.JournalID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update original batch status: %w", err)
	}

	logger.Info("Journal batch reversed",
		slog.String("original_journal_id", original.JournalID),
		slog.String("reversing_journal_id", reversing.JournalID))
	return reversing, nil
}

// GetJournalBatch retrieves a batch together with its entry lines.
func (s *journalService) GetJournalBatch(ctx context.Context, companyID, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal batch %s: %w", journalID, err)
	}
	if journal.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}

	entries, err := s.journalRepo.FindEntriesByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve entries for batch %s: %w", journalID, err)
	}
	journal.Entries = entries
	return journal, nil
}

// ListJournalBatches retrieves a paginated list of batches for a company.
func (s *journalService) ListJournalBatches(ctx context.Context, companyID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	journals, nextToken, err := s.journalRepo.ListJournalsByCompany(ctx, companyID, params.Limit, params.NextToken, params.IncludeReversals)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve journal batches: %w", err)
	}

	responses := make([]dto.JournalResponse, len(journals))
	for i := range journals {
		if params.IncludeEntries {
			entries, err := s.journalRepo.FindEntriesByJournalID(ctx, journals[i].JournalID)
			if err != nil {
				return nil, fmt.Errorf("failed to retrieve entries for batch %s: %w", journals[i].JournalID, err)
			}
			journals[i].Entries = entries
		}
		responses[i] = dto.ToJournalResponse(&journals[i])
	}

	return &dto.ListJournalsResponse{Journals: responses, NextToken: nextToken}, nil
}

// ListEntriesByAccount retrieves a paginated ledger of entries for one account.
func (s *journalService) ListEntriesByAccount(ctx context.Context, companyID, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.journalRepo.ListEntriesByAccountID(ctx, companyID, accountID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve ledger for account %s: %w", accountID, err)
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}
