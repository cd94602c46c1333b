package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/bizfolio/biz_management_app/internal/apperrors"
	"github.com/bizfolio/biz_management_app/internal/core/domain"
	portsrepo "github.com/bizfolio/biz_management_app/internal/core/ports/repositories"
	"github.com/bizfolio/biz_management_app/internal/models"
	"github.com/bizfolio/biz_management_app/internal/utils/mapping"
	"github.com/bizfolio/biz_management_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const journalColumns = `journal_id, company_id, journal_date, description, source_type, source_id, status, original_journal_id, reversing_journal_id, amount, created_at, created_by, last_updated_at, last_updated_by`

const entryColumns = `entry_id, journal_id, line_no, account_id, debit, credit, memo, tax_code, created_at, created_by, last_updated_at, last_updated_by, running_balance`

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxJournalRepository creates a new repository for journal batch and
// entry data.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveJournal persists the batch header and its entry lines and applies the
// account balance deltas, all within one database transaction. Rows become
// visible together or not at all.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, entries []domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once committed

	now := journal.CreatedAt
	userID := journal.CreatedBy

	modelJournal := mapping.ToModelJournal(journal)
	journalQuery := `
		INSERT INTO journal_batches (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, journalQuery,
		modelJournal.JournalID,
		modelJournal.CompanyID,
		modelJournal.JournalDate,
		modelJournal.Description,
		modelJournal.SourceType,
		modelJournal.SourceID,
		modelJournal.Status,
		modelJournal.OriginalJournalID,
		modelJournal.ReversingJournalID,
		modelJournal.Amount,
		modelJournal.CreatedAt,
		modelJournal.CreatedBy,
		modelJournal.LastUpdatedAt,
		modelJournal.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal batch "+modelJournal.JournalID, err)
	}

	// Lock the affected accounts so concurrent batches serialize their
	// balance updates and running balances stay consistent.
	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}
	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: batch %s references missing accounts", apperrors.ErrNotFound, modelJournal.JournalID)
		}
		return apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}

	// Running balance per line starts from the pre-batch balance of the
	// locked account row and accumulates in entry order.
	currentRunningBalances := make(map[string]decimal.Decimal, len(lockedAccounts))
	for accID, lockedAcc := range lockedAccounts {
		currentRunningBalances[accID] = lockedAcc.Balance
	}

	// Batch order is the caller's line order; running balances accumulate
	// in the same order the lines will be read back.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LineNo < entries[j].LineNo
	})

	batch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for _, entry := range entries {
		modelEntry := mapping.ToModelEntry(entry)
		modelEntry.CreatedAt = now
		modelEntry.LastUpdatedAt = now
		modelEntry.CreatedBy = userID
		modelEntry.LastUpdatedBy = userID

		lockedAccount, ok := lockedAccounts[entry.AccountID]
		if !ok {
			return apperrors.NewAppError(500, "internal error: locked account "+entry.AccountID+" missing during entry processing", nil)
		}
		newRunningBalance := currentRunningBalances[entry.AccountID].Add(entry.SignedAmount(lockedAccount.AccountType))
		modelEntry.RunningBalance = newRunningBalance
		currentRunningBalances[entry.AccountID] = newRunningBalance

		batch.Queue(entryQuery,
			modelEntry.EntryID,
			modelEntry.JournalID,
			modelEntry.LineNo,
			modelEntry.AccountID,
			modelEntry.Debit,
			modelEntry.Credit,
			modelEntry.Memo,
			modelEntry.TaxCode,
			modelEntry.CreatedAt,
			modelEntry.CreatedBy,
			modelEntry.LastUpdatedAt,
			modelEntry.LastUpdatedBy,
			modelEntry.RunningBalance,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute entry batch for journal "+modelJournal.JournalID, err)
	}

	return r.Commit(ctx, tx)
}

func scanJournal(row pgx.Row) (*domain.Journal, error) {
	var m models.Journal
	var originalID, reversingID sql.NullString

	err := row.Scan(
		&m.JournalID,
		&m.CompanyID,
		&m.JournalDate,
		&m.Description,
		&m.SourceType,
		&m.SourceID,
		&m.Status,
		&originalID,
		&reversingID,
		&m.Amount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if originalID.Valid {
		m.OriginalJournalID = &originalID.String
	}
	if reversingID.Valid {
		m.ReversingJournalID = &reversingID.String
	}
	j := mapping.ToDomainJournal(m)
	return &j, nil
}

// FindJournalByID retrieves a journal batch header by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journal_batches
		WHERE journal_id = $1;
	`
	journal, err := scanJournal(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal batch "+journalID, err)
	}
	return journal, nil
}

// ListJournalsByCompany retrieves a paginated list of batches ordered by
// (journal_date, created_at) descending, using an opaque cursor token.
func (r *PgxJournalRepository) ListJournalsByCompany(ctx context.Context, companyID string, limit int, nextToken *string, includeReversals bool) ([]domain.Journal, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + journalColumns + `
		FROM journal_batches
	`
	filterClause := `WHERE company_id = $1`
	if !includeReversals {
		filterClause += ` AND status != 'REVERSED' AND reversing_journal_id IS NULL AND original_journal_id IS NULL`
	}
	orderByClause := `ORDER BY journal_date DESC, created_at DESC`

	args := []interface{}{companyID}
	query := baseQuery + " " + filterClause
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (journal_date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal batches for company "+companyID, err)
	}
	defer rows.Close()

	journals := make([]domain.Journal, 0, fetchLimit)
	for rows.Next() {
		j, scanErr := scanJournal(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal batch row", scanErr)
		}
		journals = append(journals, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal batch rows", err)
	}

	var nextTokenVal *string
	if len(journals) > limit {
		last := journals[limit-1]
		token := pagination.EncodeToken(last.JournalDate, last.CreatedAt)
		nextTokenVal = &token
		journals = journals[:limit]
	}
	return journals, nextTokenVal, nil
}

// FindEntriesByJournalID retrieves all entry lines of a single batch in
// their original line order.
func (r *PgxJournalRepository) FindEntriesByJournalID(ctx context.Context, journalID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE journal_id = $1
		ORDER BY line_no;
	`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for journal "+journalID, err)
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		var e models.JournalEntry
		if err := rows.Scan(
			&e.EntryID,
			&e.JournalID,
			&e.LineNo,
			&e.AccountID,
			&e.Debit,
			&e.Credit,
			&e.Memo,
			&e.TaxCode,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
			&e.RunningBalance,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row for journal "+journalID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows for journal "+journalID, err)
	}
	return mapping.ToDomainEntrySlice(entries), nil
}

// ListEntriesByAccountID retrieves a paginated ledger of entries for an
// account, ordered by (journal_date, created_at) descending. Reversed
// originals and reversal batches are excluded so the ledger shows net activity.
func (r *PgxJournalRepository) ListEntriesByAccountID(ctx context.Context, companyID, accountID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT e.entry_id, e.journal_id, e.line_no, e.account_id, e.debit, e.credit, e.memo, e.tax_code,
		       e.created_at, e.created_by, e.last_updated_at, e.last_updated_by, e.running_balance,
		       j.journal_date
		FROM journal_entries e
		JOIN journal_batches j ON e.journal_id = j.journal_id
		WHERE e.account_id = $1 AND j.company_id = $2 AND j.status = 'POSTED' AND j.original_journal_id IS NULL
	`
	orderByClause := `ORDER BY j.journal_date DESC, e.created_at DESC, e.line_no DESC`

	args := []interface{}{accountID, companyID}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (j.journal_date, e.created_at) < ($3, $4)`
		args = append(args, lastDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query ledger for account "+accountID, err)
	}
	defer rows.Close()

	type entryWithDate struct {
		entry models.JournalEntry
		date  time.Time
	}
	scanned := make([]entryWithDate, 0, fetchLimit)
	for rows.Next() {
		var e models.JournalEntry
		var journalDate time.Time
		if err := rows.Scan(
			&e.EntryID,
			&e.JournalID,
			&e.LineNo,
			&e.AccountID,
			&e.Debit,
			&e.Credit,
			&e.Memo,
			&e.TaxCode,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
			&e.RunningBalance,
			&journalDate,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger row for account "+accountID, err)
		}
		scanned = append(scanned, entryWithDate{entry: e, date: journalDate})
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating ledger rows for account "+accountID, err)
	}

	var nextTokenVal *string
	results := make([]models.JournalEntry, 0, limit)
	if len(scanned) > limit {
		last := scanned[limit-1]
		token := pagination.EncodeToken(last.date, last.entry.CreatedAt)
		nextTokenVal = &token
		scanned = scanned[:limit]
	}
	for _, s := range scanned {
		results = append(results, s.entry)
	}
	return mapping.ToDomainEntrySlice(results), nextTokenVal, nil
}

// UpdateJournalStatusAndLinks updates the status and reversal linkage of a batch.
func (r *PgxJournalRepository) UpdateJournalStatusAndLinks(ctx context.Context, journalID string, status domain.JournalStatus, reversingJournalID *string, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE journal_batches
		SET status = $2,
		    reversing_journal_id = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE journal_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, journalID, status, reversingJournalID, updatedAt, updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal status/links for "+journalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
