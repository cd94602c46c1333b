package domain

import "github.com/shopspring/decimal"

// JournalEntry represents a single line item within a journal batch, affecting
// one account. Each line carries a debit amount and a credit amount, both
// non-negative; callers normally populate exactly one of the two.
// Entries are immutable once committed.
type JournalEntry struct {
	EntryID   string          `json:"entryID"`   // Primary Key (UUID)
	JournalID string          `json:"journalID"` // FK -> Journal.journalID (Not Null)
	LineNo    int             `json:"lineNo"`    // 1-based position within the batch, caller order
	AccountID string          `json:"accountID"` // FK -> Account.accountID (Not Null)
	Debit     decimal.Decimal `json:"debit"`     // >= 0
	Credit    decimal.Decimal `json:"credit"`    // >= 0
	Memo      string          `json:"memo"`      // Nullable
	TaxCode   string          `json:"taxCode"`   // Structured tax code reference, nullable
	AuditFields
	RunningBalance decimal.Decimal `json:"runningBalance"` // Account balance after this entry
}

// SignedAmount returns the entry's effect on its account's balance under the
// normal-balance convention: positive when the entry lands on the account's
// normal side.
func (e JournalEntry) SignedAmount(accountType AccountType) decimal.Decimal {
	net := e.Debit.Sub(e.Credit)
	if accountType.NormalBalance() == CreditNormal {
		return net.Neg()
	}
	return net
}
