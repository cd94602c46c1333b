package services

import (
	"context"

	"github.com/bizfolio/biz_management_app/internal/core/domain"
	"github.com/bizfolio/biz_management_app/internal/dto"
)

// AccountSvcFacade manages the chart of accounts.
type AccountSvcFacade interface {
	// CreateAccount creates an account after validating the code range
	// convention for its type.
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// GetAccountByID retrieves a single account.
	GetAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error)

	// GetAccountByIDs retrieves multiple accounts keyed by ID.
	GetAccountByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the chart of accounts ordered by code.
	ListAccounts(ctx context.Context, companyID string, includeInactive bool) ([]domain.Account, error)

	// UpdateAccount changes mutable fields (name, description, active flag).
	UpdateAccount(ctx context.Context, companyID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount soft-disables an account.
	DeactivateAccount(ctx context.Context, companyID, accountID string, userID string) error

	// DeleteAccount hard-deletes an account, rejecting the delete when posted
	// entries reference it.
	DeleteAccount(ctx context.Context, companyID, accountID string) error
}

// FiscalPeriodSvcFacade manages fiscal period open/close administration.
type FiscalPeriodSvcFacade interface {
	// UpsertPeriod opens or closes a period.
	UpsertPeriod(ctx context.Context, companyID string, req dto.UpsertFiscalPeriodRequest, userID string) (*domain.FiscalPeriod, error)

	// ListPeriods retrieves all recorded periods, newest first.
	ListPeriods(ctx context.Context, companyID string) ([]domain.FiscalPeriod, error)
}
