package repositories

import (
	"context"
	"time"

	"github.com/bizfolio/biz_management_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByID retrieves a single account by its unique identifier.
	FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error)

	// FindAccountByName retrieves a single account by its exact name.
	FindAccountByName(ctx context.Context, companyID, name string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by account ID.
	FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves all accounts for a company, ordered by code.
	ListAccounts(ctx context.Context, companyID string, includeInactive bool) ([]domain.Account, error)

	// HasEntries reports whether any journal entries reference the account.
	HasEntries(ctx context.Context, accountID string) (bool, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount persists changes to an account's mutable fields
	// (name, description, active flag).
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount hard-deletes an account. Callers must first check HasEntries.
	DeleteAccount(ctx context.Context, companyID, accountID string) error
}

// AccountTxOperations are account operations that run inside a caller-owned
// database transaction, used by the journal posting engine.
type AccountTxOperations interface {
	// FindAccountsByIDsForUpdate retrieves accounts by IDs and locks the rows.
	// Must be called within a transaction.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalancesInTx applies balance deltas for multiple accounts
	// within the given transaction.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTxOperations
}
