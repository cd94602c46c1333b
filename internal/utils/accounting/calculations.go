package accounting

import (
	"errors"
	"fmt"

	"github.com/bizfolio/biz_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyPrecision is the number of decimal places at which debit and credit
// sums are compared. Journal amounts are currency values, so two places.
const CurrencyPrecision = 2

// ErrUnbalanced indicates that a batch's debit and credit sums do not match at
// currency precision. A batch that fails this check must never be persisted.
var ErrUnbalanced = errors.New("journal batch debits and credits do not balance")

// SumEntries returns the debit and credit totals of a set of entry lines.
func SumEntries(entries []domain.JournalEntry) (debits, credits decimal.Decimal) {
	for _, e := range entries {
		debits = debits.Add(e.Debit)
		credits = credits.Add(e.Credit)
	}
	return debits, credits
}

// ValidateBatchBalance checks the double-entry invariant for a batch:
// sum(debit) == sum(credit) rounded to currency precision. It also rejects
// negative amounts on any line, since debit and credit are magnitudes.
func ValidateBatchBalance(entries []domain.JournalEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("journal batch must have at least one entry line")
	}

	for _, e := range entries {
		if e.Debit.IsNegative() || e.Credit.IsNegative() {
			return fmt.Errorf("entry amounts must be non-negative for account %s", e.AccountID)
		}
	}

	debits, credits := SumEntries(entries)
	if !debits.Round(CurrencyPrecision).Equal(credits.Round(CurrencyPrecision)) {
		return fmt.Errorf("%w: debits sum is %s and credits sum is %s",
			ErrUnbalanced, debits.String(), credits.String())
	}
	return nil
}

// BalanceChanges folds a batch's entries into a per-account net balance delta
// under the normal-balance convention. The account types map must contain
// every account referenced by the entries.
func BalanceChanges(entries []domain.JournalEntry, accountTypes map[string]domain.AccountType) (map[string]decimal.Decimal, error) {
	changes := make(map[string]decimal.Decimal, len(entries))
	for _, e := range entries {
		accountType, ok := accountTypes[e.AccountID]
		if !ok {
			return nil, fmt.Errorf("account type not found for account ID %s", e.AccountID)
		}
		changes[e.AccountID] = changes[e.AccountID].Add(e.SignedAmount(accountType))
	}
	return changes, nil
}

// WeightedAverageCost blends a new receipt into the running average unit cost.
// When the combined quantity is not positive (receiving into empty or negative
// stock) the receipt's own unit cost becomes the new average.
func WeightedAverageCost(oldQty, oldAvg, qty, unitCost decimal.Decimal) decimal.Decimal {
	combined := oldQty.Add(qty)
	if !combined.IsPositive() {
		return unitCost
	}
	total := oldQty.Mul(oldAvg).Add(qty.Mul(unitCost))
	return total.Div(combined)
}

// RoundCurrency rounds an amount to currency precision.
func RoundCurrency(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(CurrencyPrecision)
}
