package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizfolio/biz_management_app/internal/apperrors"
	"github.com/bizfolio/biz_management_app/internal/core/domain"
	portsrepo "github.com/bizfolio/biz_management_app/internal/core/ports/repositories"
	portssvc "github.com/bizfolio/biz_management_app/internal/core/ports/services"
	"github.com/bizfolio/biz_management_app/internal/dto"
)

// ErrAccountHasEntries indicates a delete was rejected because posted
// journal entries reference the account.
var ErrAccountHasEntries = errors.New("account has journal entries and cannot be deleted")

type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new service for chart-of-accounts management.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates an account after validating its code against the
// numbering convention for its type.
func (s *accountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	accountType := domain.AccountType(req.AccountType)
	if err := domain.ValidateAccountCode(req.Code, accountType); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		CompanyID:       companyID,
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     accountType,
		ParentAccountID: req.ParentAccountID,
		Description:     req.Description,
		IsActive:        true,
		Balance:         decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: code or name already in use", apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	return &account, nil
}

// GetAccountByID retrieves a single account.
func (s *accountService) GetAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountByIDs retrieves multiple accounts keyed by ID.
func (s *accountService) GetAccountByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, companyID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	return accounts, nil
}

// ListAccounts retrieves the chart of accounts ordered by code.
func (s *accountService) ListAccounts(ctx context.Context, companyID string, includeInactive bool) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, companyID, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount changes mutable fields. Code and account type never change
// once entries may reference the account; renumbering is a migration concern,
// not an API one.
func (s *accountService) UpdateAccount(ctx context.Context, companyID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, companyID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, fmt.Errorf("failed to update account %s: %w", accountID, err)
	}
	return account, nil
}

// DeactivateAccount soft-disables an account. Existing entries keep their
// reference; new postings through the helpers will refuse to resolve it.
func (s *accountService) DeactivateAccount(ctx context.Context, companyID, accountID string, userID string) error {
	inactive := false
	_, err := s.UpdateAccount(ctx, companyID, accountID, dto.UpdateAccountRequest{IsActive: &inactive}, userID)
	return err
}

// DeleteAccount hard-deletes an account that no journal entry references.
func (s *accountService) DeleteAccount(ctx context.Context, companyID, accountID string) error {
	account, err := s.GetAccountByID(ctx, companyID, accountID)
	if err != nil {
		return err
	}

	hasEntries, err := s.accountRepo.HasEntries(ctx, account.AccountID)
	if err != nil {
		return fmt.Errorf("failed to check entries for account %s: %w", accountID, err)
	}
	if hasEntries {
		return fmt.Errorf("%w: %s", ErrAccountHasEntries, accountID)
	}

	if err := s.accountRepo.DeleteAccount(ctx, companyID, accountID); err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	return nil
}
