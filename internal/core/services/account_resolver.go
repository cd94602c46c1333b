package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizfolio/biz_management_app/internal/apperrors"
	"github.com/bizfolio/biz_management_app/internal/core/domain"
	portsrepo "github.com/bizfolio/biz_management_app/internal/core/ports/repositories"
	gocache "github.com/patrickmn/go-cache"
)

// ErrAccountNotFound indicates a posting helper could not resolve a required
// named account. This is a chart-of-accounts configuration error: it is fatal
// to the posting and never retried.
var ErrAccountNotFound = errors.New("required account not found in chart of accounts")

// Stable names of the accounts the posting helpers resolve. Postings couple
// to these names, so the seed chart of accounts creates all of them and
// VerifyRequiredAccounts checks them at startup rather than discovering a
// missing account at posting time.
const (
	AccountCash            = "Cash"
	AccountAR              = "Accounts Receivable"
	AccountInventory       = "Inventory"
	AccountTaxPayable      = "Tax Payable"
	AccountSalesRevenue    = "Sales Revenue"
	AccountCostOfGoodsSold = "Cost of Goods Sold"
)

// RequiredAccountNames lists every account role the posting helpers depend on.
var RequiredAccountNames = []string{
	AccountCash,
	AccountAR,
	AccountInventory,
	AccountTaxPayable,
	AccountSalesRevenue,
	AccountCostOfGoodsSold,
}

// accountResolver resolves accounts by stable name with a short-lived cache.
// Accounts are read-mostly reference data, so a small TTL keeps lookups off
// the hot posting path while still picking up administrative changes.
type accountResolver struct {
	accountRepo portsrepo.AccountReader
	cache       *gocache.Cache
}

func newAccountResolver(accountRepo portsrepo.AccountReader) *accountResolver {
	return &accountResolver{
		accountRepo: accountRepo,
		cache:       gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// Resolve returns the account with the given name, or ErrAccountNotFound.
func (r *accountResolver) Resolve(ctx context.Context, companyID, name string) (*domain.Account, error) {
	cacheKey := companyID + "/" + name
	if cached, found := r.cache.Get(cacheKey); found {
		acc := cached.(domain.Account)
		return &acc, nil
	}

	account, err := r.accountRepo.FindAccountByName(ctx, companyID, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrAccountNotFound, name)
		}
		return nil, fmt.Errorf("failed to resolve account %q: %w", name, err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: %q is inactive", ErrAccountNotFound, name)
	}

	r.cache.Set(cacheKey, *account, gocache.DefaultExpiration)
	return account, nil
}

// VerifyRequired checks that every required account exists and is active.
func (r *accountResolver) VerifyRequired(ctx context.Context, companyID string) error {
	for _, name := range RequiredAccountNames {
		if _, err := r.Resolve(ctx, companyID, name); err != nil {
			return err
		}
	}
	return nil
}
