package domain

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance is the side on which an account type's balance is conventionally positive.
type NormalBalance string

const (
	DebitNormal  NormalBalance = "DEBIT"
	CreditNormal NormalBalance = "CREDIT"
)

// NormalBalance returns the conventional balance side for the account type.
// Asset and Expense accounts carry debit-normal balances, everything else credit-normal.
func (t AccountType) NormalBalance() NormalBalance {
	switch t {
	case Asset, Expense:
		return DebitNormal
	default:
		return CreditNormal
	}
}

// codeRanges maps each account type to its inclusive numeric code range.
var codeRanges = map[AccountType][2]int{
	Asset:     {1000, 1999},
	Liability: {2000, 2999},
	Equity:    {3000, 3999},
	Revenue:   {4000, 4999},
	Expense:   {5000, 5999},
}

// ValidateAccountCode checks that the code is numeric and falls inside the
// range conventionally assigned to the account type (1000s assets, 2000s
// liabilities, 3000s equity, 4000s revenue, 5000s expenses).
func ValidateAccountCode(code string, accountType AccountType) error {
	n, err := strconv.Atoi(code)
	if err != nil {
		return fmt.Errorf("account code %q is not numeric", code)
	}
	r, ok := codeRanges[accountType]
	if !ok {
		return fmt.Errorf("unknown account type %q", accountType)
	}
	if n < r[0] || n > r[1] {
		return fmt.Errorf("account code %s is outside the %d-%d range for type %s", code, r[0], r[1], accountType)
	}
	return nil
}

// Account represents a single account in the chart of accounts.
// Code and AccountType are immutable after creation; name, description and
// the active flag may change. Accounts referenced by posted entries are never
// hard-deleted, only deactivated.
type Account struct {
	AccountID       string          `json:"accountID"`       // Primary Key (UUID)
	CompanyID       string          `json:"companyID"`       // Owning tenant (NON-NULL)
	Code            string          `json:"code"`            // Unique short numeric code per company
	Name            string          `json:"name"`            // Unique name per company
	AccountType     AccountType     `json:"accountType"`     // ASSET, LIABILITY, etc.
	ParentAccountID *string         `json:"parentAccountID"` // Nullable self-reference, forms a tree
	Description     string          `json:"description"`
	IsActive        bool            `json:"isActive"`
	AuditFields
	Balance decimal.Decimal `json:"balance"` // Persisted signed balance (normal-balance positive)
}
